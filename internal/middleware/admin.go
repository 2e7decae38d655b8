package middleware

import (
	"context"
	"net/http"
	"strings"

	"eduorb-backend/internal/database"
	"eduorb-backend/internal/models"

	"github.com/rs/zerolog/log"
)

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// RequireAdmin lets through users whose role is admin or whose email is on
// the configured allow-list. It must run after SessionAuth.
func RequireAdmin(users UserFinder, adminEmails []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		allowed[strings.ToLower(email)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := GetEmail(r.Context())
			if email == "" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
				return
			}

			if _, ok := allowed[strings.ToLower(email)]; ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.FindByEmail(r.Context(), email)
			if err != nil {
				log.Ctx(r.Context()).Error().Err(err).Str("email", email).Msg("admin lookup failed")
				if database.IsUnavailable(err) {
					writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "Database connection failed. Please try again later."})
					return
				}
				writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
				return
			}
			if user == nil || !user.IsAdmin() {
				writeJSON(w, http.StatusForbidden, map[string]string{"message": "Forbidden"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
