package handlers

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"eduorb-backend/internal/auth"
	"eduorb-backend/internal/database"
	"eduorb-backend/internal/middleware"
	"eduorb-backend/internal/models"
	"eduorb-backend/internal/notify"
	"eduorb-backend/internal/ratelimit"
	"eduorb-backend/internal/repository"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthHandler struct {
	users        UserStore
	sessions     SessionStore
	tokens       *auth.TokenManager
	limiter      *ratelimit.Limiter
	notifier     notify.Notifier
	secureCookie bool
}

// NewAuthHandler wires the account handlers. limiter may be nil.
func NewAuthHandler(users UserStore, sessions SessionStore, tokens *auth.TokenManager, limiter *ratelimit.Limiter, notifier notify.Notifier, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		users:        users,
		sessions:     sessions,
		tokens:       tokens,
		limiter:      limiter,
		notifier:     notifier,
		secureCookie: secureCookie,
	}
}

// --- Request / Response types ---

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// --- POST /api/auth/register ---

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !emailPattern.MatchString(email) {
		writeMessage(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeMessage(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	logger := log.Ctx(r.Context()).With().Str("email", email).Logger()

	existing, err := h.users.FindByEmail(r.Context(), email)
	if err != nil {
		logger.Error().Err(err).Msg("registration lookup failed")
		writeStoreError(w, err)
		return
	}
	if existing != nil {
		writeMessage(w, http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("hash password failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			writeMessage(w, http.StatusBadRequest, "User already exists")
			return
		}
		logger.Error().Err(err).Msg("create user failed")
		writeStoreError(w, err)
		return
	}

	publish(h.notifier, notify.Welcome(user.Name, user.Email))

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"userId":  user.ID.Hex(),
	})
}

// --- POST /api/auth/login ---

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	logger := log.Ctx(r.Context()).With().Str("email", email).Logger()

	// Rate limiting: max 5 failed attempts per email in 10 minutes
	allowed, err := h.limiter.Allow(r.Context(), email)
	if err != nil {
		logger.Warn().Err(err).Msg("login throttle unavailable, allowing attempt")
		allowed = true
	}
	if !allowed {
		writeMessage(w, http.StatusTooManyRequests, "Too many login attempts, please try again later")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), email)
	if err != nil {
		logger.Error().Err(err).Msg("login lookup failed")
		writeStoreError(w, err)
		return
	}
	if user == nil || !auth.CheckPassword(req.Password, user.Password) {
		logger.Warn().Msg("failed authentication attempt")
		if err := h.limiter.Fail(r.Context(), email); err != nil {
			logger.Warn().Err(err).Msg("recording failed login")
		}
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, claims, err := h.tokens.Issue(user.ID.Hex(), user.Email, user.Name)
	if err != nil {
		logger.Error().Err(err).Msg("issue token failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	session := &models.Session{
		TokenID:   claims.SessionID(),
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := h.sessions.Create(r.Context(), session); err != nil {
		logger.Error().Err(err).Msg("create session failed")
		writeStoreError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: user})
}

// --- POST /api/auth/logout ---

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.sessions.Revoke(r.Context(), claims.SessionID()); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("revoke session failed")
		writeStoreError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeMessage(w, http.StatusOK, "Signed out")
}

// --- Helpers ---

// publish fires a notification in the background; delivery is best-effort.
func publish(notifier notify.Notifier, msg notify.Message) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := notifier.Publish(ctx, msg); err != nil {
			log.Error().Err(err).Str("to", msg.To).Msg("notification failed")
		}
	}()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// writeStoreError maps a persistence failure to 503 or 500.
func writeStoreError(w http.ResponseWriter, err error) {
	if database.IsUnavailable(err) {
		writeMessage(w, http.StatusServiceUnavailable, "Database connection failed. Please try again later.")
		return
	}
	writeMessage(w, http.StatusInternalServerError, "Internal server error")
}

func objectIDHex(id bson.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}
