package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "testsecret")
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "eduorb", cfg.Mongo.DBName)
	assert.Equal(t, "gpt-4o", cfg.AI.Model)
	assert.Equal(t, 30*time.Second, cfg.AI.ChatMaxDuration)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Empty(t, cfg.Auth.AdminEmails)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("CHAT_MAX_DURATION", "45s")
	t.Setenv("ADMIN_EMAILS", "root@eduorb.dev, ops@eduorb.dev")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, 45*time.Second, cfg.AI.ChatMaxDuration)
	assert.Equal(t, []string{"root@eduorb.dev", "ops@eduorb.dev"}, cfg.Auth.AdminEmails)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadRequiresSecrets(t *testing.T) {
	cases := map[string]string{
		"MONGODB_URI":    "MONGODB_URI is required",
		"JWT_SECRET":     "JWT_SECRET is required",
		"OPENAI_API_KEY": "OPENAI_API_KEY is required",
	}
	for missing, msg := range cases {
		t.Run(missing, func(t *testing.T) {
			setRequired(t)
			t.Setenv(missing, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), msg)
		})
	}
}
