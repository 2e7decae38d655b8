package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eduorb-backend/internal/ai"
	"eduorb-backend/internal/auth"
	"eduorb-backend/internal/config"
	"eduorb-backend/internal/database"
	"eduorb-backend/internal/handlers"
	"eduorb-backend/internal/logger"
	"eduorb-backend/internal/notify"
	"eduorb-backend/internal/ratelimit"
	"eduorb-backend/internal/repository"
	"eduorb-backend/internal/study"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet; the default zerolog writer still works
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.LogLevel, cfg.IsDevelopment())

	// MongoDB connects lazily on first use
	conn := database.New(cfg.Mongo.URI, cfg.Mongo.DBName)

	// Initialize repositories
	userRepo := repository.NewUserRepo(conn)
	sessionRepo := repository.NewSessionRepo(conn)

	// Ensure indexes
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to create user indexes")
	}
	if err := sessionRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to create session indexes")
	}
	cancel()

	// Login throttling is optional
	var limiter *ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := ratelimit.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
		} else {
			defer rdb.Close()
			limiter = ratelimit.New(rdb, "eduorb:login:", 5, 10*time.Minute)
		}
	}

	notifier := notify.New(cfg.Mail.ResendAPIKey, cfg.Mail.FromEmail)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)

	provider := ai.NewOpenAI(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model)
	studyService := study.NewService(provider, study.Options{
		Timeout:         cfg.AI.Timeout,
		ChatMaxDuration: cfg.AI.ChatMaxDuration,
	})

	// Initialize handlers
	router := handlers.NewRouter(handlers.RouterDeps{
		Auth:        handlers.NewAuthHandler(userRepo, sessionRepo, tokens, limiter, notifier, !cfg.IsDevelopment()),
		User:        handlers.NewUserHandler(userRepo, notifier),
		Admin:       handlers.NewAdminHandler(userRepo),
		Study:       handlers.NewStudyHandler(studyService),
		Users:       userRepo,
		Sessions:    sessionRepo,
		Tokens:      tokens,
		AdminEmails: cfg.Auth.AdminEmails,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      max(cfg.AI.Timeout, cfg.AI.ChatMaxDuration) + 10*time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("port", cfg.HTTP.Port).Str("model", cfg.AI.Model).Msg("EduOrb backend starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := conn.Close(ctx); err != nil {
		log.Error().Err(err).Msg("closing mongo connection")
	}

	log.Info().Msg("server exiting")
}
