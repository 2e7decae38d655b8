package handlers

import (
	"net/http"

	"eduorb-backend/internal/auth"
	customMiddleware "eduorb-backend/internal/middleware"
	"eduorb-backend/internal/metrics"
	"eduorb-backend/internal/study"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterDeps struct {
	Auth  *AuthHandler
	User  *UserHandler
	Admin *AdminHandler
	Study *StudyHandler

	Users       UserStore
	Sessions    SessionStore
	Tokens      *auth.TokenManager
	AdminEmails []string
	CORSOrigins []string
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "eduorb-backend"})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/register", d.Auth.Register)
		r.Post("/auth/login", d.Auth.Login)

		r.Post("/exam-generator", d.Study.GenerateExam)
		r.Post("/exam-generator/export", d.Study.ExportExam)
		r.Post("/mind-map", d.Study.GenerateMindMap)
		r.Post("/career-advisor", d.Study.AdviseCareer)
		r.Post("/reading-simplifier", d.Study.Simplify)
		r.Post("/doubt-solver", d.Study.Chat(study.DoubtSolver))
		r.Post("/mock-interview", d.Study.Chat(study.MockInterview))
		r.Post("/mock-interview/questions", d.Study.InterviewQuestions)
		r.Post("/mock-interview/score", d.Study.ScoreAnswer)

		// Protected routes (session required)
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.SessionAuth(d.Tokens, d.Sessions))

			r.Post("/auth/logout", d.Auth.Logout)
			r.Get("/user/profile", d.User.Profile)
			r.Post("/onboarding", d.User.Onboarding)

			r.Group(func(r chi.Router) {
				r.Use(customMiddleware.RequireAdmin(d.Users, d.AdminEmails))

				r.Get("/admin/stats", d.Admin.Stats)
				r.Get("/admin/users", d.Admin.Users)
			})
		})
	})

	return r
}
