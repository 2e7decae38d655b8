package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"eduorb-backend/internal/database"
	"eduorb-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestConn connects to MONGODB_TEST_URI and uses a throwaway database.
func newTestConn(t *testing.T) *database.Conn {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	conn := database.New(uri, "eduorb_test_"+uuid.NewString()[:8])
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, db, err := conn.Get(ctx); err == nil {
			_ = db.Drop(ctx)
		}
		_ = conn.Close(ctx)
	})
	return conn
}

func TestUserRepoLifecycle(t *testing.T) {
	conn := newTestConn(t)
	repo := NewUserRepo(conn)
	ctx := context.Background()
	require.NoError(t, repo.EnsureIndexes(ctx))

	user := &models.User{Name: "Ada", Email: "ada@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.False(t, user.ID.IsZero())
	assert.Equal(t, models.RoleStudent, user.Role)

	dup := &models.User{Name: "Ada 2", Email: "ada@example.com", Password: "hash"}
	assert.ErrorIs(t, repo.Create(ctx, dup), ErrEmailTaken)

	found, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.False(t, found.OnboardingCompleted)
	assert.Nil(t, found.Profile)

	profile := &models.Profile{
		Education: models.Education{Level: "undergraduate", Field: "Physics"},
		Goals:     models.Goals{PrimaryGoal: "exam-prep", Subjects: []string{"Physics", "Math"}},
	}
	matched, err := repo.CompleteOnboarding(ctx, "ada@example.com", profile)
	require.NoError(t, err)
	assert.True(t, matched)

	found, err = repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, found.OnboardingCompleted)
	assert.Equal(t, profile, found.Profile)

	matched, err = repo.CompleteOnboarding(ctx, "nobody@example.com", profile)
	require.NoError(t, err)
	assert.False(t, matched)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].Password)
}

func TestSessionRepoRevoke(t *testing.T) {
	conn := newTestConn(t)
	repo := NewSessionRepo(conn)
	ctx := context.Background()
	require.NoError(t, repo.EnsureIndexes(ctx))

	session := &models.Session{
		TokenID:   uuid.NewString(),
		Email:     "ada@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, session))

	found, err := repo.FindByTokenID(ctx, session.TokenID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.Active())

	require.NoError(t, repo.Revoke(ctx, session.TokenID))
	found, err = repo.FindByTokenID(ctx, session.TokenID)
	require.NoError(t, err)
	assert.False(t, found.Active())

	missing, err := repo.FindByTokenID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
