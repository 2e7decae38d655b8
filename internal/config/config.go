package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config aggregates every setting the server reads at startup.
type Config struct {
	Env      string      `mapstructure:"env"`
	LogLevel string      `mapstructure:"log_level"`
	HTTP     HTTPConfig  `mapstructure:"http"`
	Mongo    MongoConfig `mapstructure:"mongo"`
	Auth     AuthConfig  `mapstructure:"auth"`
	Redis    RedisConfig `mapstructure:"redis"`
	AI       AIConfig    `mapstructure:"ai"`
	Mail     MailConfig  `mapstructure:"mail"`
}

type HTTPConfig struct {
	Port        string   `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"db_name"`
}

// AuthConfig controls session tokens and the admin allow-list.
type AuthConfig struct {
	JWTSecret   string        `mapstructure:"jwt_secret"`
	SessionTTL  time.Duration `mapstructure:"session_ttl"`
	AdminEmails []string      `mapstructure:"admin_emails"`
}

// RedisConfig is optional; an empty Addr disables login throttling.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AIConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	Model           string        `mapstructure:"model"`
	Timeout         time.Duration `mapstructure:"timeout"`
	ChatMaxDuration time.Duration `mapstructure:"chat_max_duration"`
}

// MailConfig is optional; without an API key notifications are only logged.
type MailConfig struct {
	ResendAPIKey string `mapstructure:"resend_api_key"`
	FromEmail    string `mapstructure:"from_email"`
}

// IsDevelopment reports whether the server runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "" || c.Env == "development"
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	// .env is optional; in production the variables are set directly
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Auth.AdminEmails = normalizeList(cfg.Auth.AdminEmails)
	cfg.HTTP.CORSOrigins = normalizeList(cfg.HTTP.CORSOrigins)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.cors_origins", []string{"*"})
	v.SetDefault("mongo.db_name", "eduorb")
	v.SetDefault("auth.session_ttl", 30*24*time.Hour)
	v.SetDefault("auth.admin_emails", []string{})
	v.SetDefault("redis.db", 0)
	v.SetDefault("ai.model", "gpt-4o")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.chat_max_duration", 30*time.Second)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"env":                  "ENV",
		"log_level":            "LOG_LEVEL",
		"http.port":            "PORT",
		"http.cors_origins":    "CORS_ORIGINS",
		"mongo.uri":            "MONGODB_URI",
		"mongo.db_name":        "DB_NAME",
		"auth.jwt_secret":      "JWT_SECRET",
		"auth.session_ttl":     "SESSION_TTL",
		"auth.admin_emails":    "ADMIN_EMAILS",
		"redis.addr":           "REDIS_ADDR",
		"redis.password":       "REDIS_PASSWORD",
		"redis.db":             "REDIS_DB",
		"ai.api_key":           "OPENAI_API_KEY",
		"ai.base_url":          "OPENAI_BASE_URL",
		"ai.model":             "OPENAI_MODEL",
		"ai.timeout":           "AI_TIMEOUT",
		"ai.chat_max_duration": "CHAT_MAX_DURATION",
		"mail.resend_api_key":  "RESEND_API_KEY",
		"mail.from_email":      "FROM_EMAIL",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}
	return nil
}

func validate(cfg Config) error {
	if cfg.Mongo.URI == "" {
		return errors.New("MONGODB_URI is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if cfg.AI.APIKey == "" {
		return errors.New("OPENAI_API_KEY is required")
	}
	if cfg.Auth.SessionTTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if cfg.AI.ChatMaxDuration <= 0 {
		return errors.New("chat max duration must be positive")
	}
	if cfg.AI.Timeout <= 0 {
		return errors.New("ai timeout must be positive")
	}
	return nil
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
