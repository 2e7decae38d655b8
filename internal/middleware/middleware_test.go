package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eduorb-backend/internal/auth"
	"eduorb-backend/internal/database"
	"eduorb-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	sessions map[string]*models.Session
	err      error
}

func (f *fakeSessions) FindByTokenID(ctx context.Context, tokenID string) (*models.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[tokenID], nil
}

type fakeUsers map[string]*models.User

func (f fakeUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f[email], nil
}

func echoEmail(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(GetEmail(r.Context())))
}

func issue(t *testing.T, tm *auth.TokenManager, store *fakeSessions, email string) string {
	t.Helper()
	token, claims, err := tm.Issue("64b7f0c2a1b2c3d4e5f60718", email, "Test")
	require.NoError(t, err)
	store.sessions[claims.SessionID()] = &models.Session{
		TokenID:   claims.SessionID(),
		Email:     email,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return token
}

func TestSessionAuth(t *testing.T) {
	tm := auth.NewTokenManager("testsecret", time.Hour)
	store := &fakeSessions{sessions: map[string]*models.Session{}}
	handler := SessionAuth(tm, store)(http.HandlerFunc(echoEmail))

	token := issue(t, tm, store, "ada@example.com")

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ada@example.com", rec.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
	})

	t.Run("revoked session", func(t *testing.T) {
		revoked := issue(t, tm, store, "bob@example.com")
		claims, err := tm.Parse(revoked)
		require.NoError(t, err)
		store.sessions[claims.SessionID()].Revoked = true

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+revoked)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("database down", func(t *testing.T) {
		down := &fakeSessions{err: fmt.Errorf("find session: %w", database.ErrUnavailable)}
		h := SessionAuth(tm, down)(http.HandlerFunc(echoEmail))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("lookup error", func(t *testing.T) {
		broken := &fakeSessions{err: errors.New("decode failed")}
		h := SessionAuth(tm, broken)(http.HandlerFunc(echoEmail))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	users := fakeUsers{
		"root@example.com":    {Email: "root@example.com", Role: models.RoleAdmin},
		"student@example.com": {Email: "student@example.com", Role: models.RoleStudent},
	}
	handler := RequireAdmin(users, []string{"Ops@Example.com"})(http.HandlerFunc(echoEmail))

	cases := []struct {
		email  string
		status int
	}{
		{"root@example.com", http.StatusOK},
		{"ops@example.com", http.StatusOK},
		{"student@example.com", http.StatusForbidden},
		{"ghost@example.com", http.StatusForbidden},
		{"", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.email != "" {
				req = req.WithContext(WithClaims(req.Context(), &auth.Claims{Email: tc.email}))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
}
