package handlers

import (
	"math/rand/v2"
	"net/http"

	"eduorb-backend/internal/middleware"
	"eduorb-backend/internal/models"
	"eduorb-backend/internal/notify"

	"github.com/rs/zerolog/log"
)

type UserHandler struct {
	users    UserStore
	notifier notify.Notifier
}

func NewUserHandler(users UserStore, notifier notify.Notifier) *UserHandler {
	return &UserHandler{
		users:    users,
		notifier: notifier,
	}
}

type ProfileResponse struct {
	Profile *models.Profile     `json:"profile"`
	Stats   models.ProfileStats `json:"stats"`
}

// --- GET /api/user/profile ---

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmail(r.Context())
	if email == "" {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), email)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("email", email).Msg("profile lookup failed")
		writeStoreError(w, err)
		return
	}
	if user == nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if !user.OnboardingCompleted || user.Profile == nil {
		writeMessage(w, http.StatusNotFound, "Onboarding not completed")
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{
		Profile: user.Profile,
		Stats:   placeholderProfileStats(),
	})
}

// --- POST /api/onboarding ---

func (h *UserHandler) Onboarding(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmail(r.Context())
	if email == "" {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var profile models.Profile
	if err := decodeJSON(w, r, &profile); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	matched, err := h.users.CompleteOnboarding(r.Context(), email, &profile)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("email", email).Msg("onboarding update failed")
		writeStoreError(w, err)
		return
	}
	if !matched {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	publish(h.notifier, notify.OnboardingComplete(email))

	writeMessage(w, http.StatusOK, "Onboarding completed successfully")
}

// Usage tracking does not exist yet; the dashboard shows these instead.
func placeholderProfileStats() models.ProfileStats {
	return models.ProfileStats{
		TotalSessions:  between(10, 59),
		HoursLearned:   between(20, 119),
		QuestionsAsked: between(50, 249),
		ExamsGenerated: between(5, 24),
		CurrentStreak:  between(1, 30),
		WeeklyProgress: between(1, 100),
	}
}

// between returns a uniform integer in [lo, hi].
func between(lo, hi int) int {
	return lo + rand.IntN(hi-lo+1)
}
