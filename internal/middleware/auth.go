package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"eduorb-backend/internal/auth"
	"eduorb-backend/internal/database"
	"eduorb-backend/internal/models"

	"github.com/rs/zerolog/log"
)

type contextKey string

const claimsKey = contextKey("claims")

// TokenCookie is the cookie the login handler sets alongside the JSON token.
const TokenCookie = "token"

// SessionStore looks up the stored session behind a token.
type SessionStore interface {
	FindByTokenID(ctx context.Context, tokenID string) (*models.Session, error)
}

// SessionAuth requires a valid, unrevoked session token from the
// Authorization header or, failing that, the token cookie.
func SessionAuth(tokens *auth.TokenManager, sessions SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := TokenFromRequest(r)
			if tokenStr == "" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
				return
			}

			claims, err := tokens.Parse(tokenStr)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
				return
			}

			session, err := sessions.FindByTokenID(r.Context(), claims.SessionID())
			if err != nil {
				log.Ctx(r.Context()).Error().Err(err).Msg("session lookup failed")
				if database.IsUnavailable(err) {
					writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "Database connection failed. Please try again later."})
					return
				}
				writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
				return
			}
			if session == nil || !session.Active() {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest extracts a bearer token or the session cookie.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// GetClaims returns the authenticated claims, or nil outside SessionAuth.
func GetClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// GetEmail returns the authenticated user's email, or "".
func GetEmail(ctx context.Context) string {
	if claims := GetClaims(ctx); claims != nil {
		return claims.Email
	}
	return ""
}

// WithClaims attaches claims to ctx the same way SessionAuth does.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
