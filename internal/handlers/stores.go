package handlers

import (
	"context"

	"eduorb-backend/internal/models"
)

// UserStore is the slice of the user repository the handlers need.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	CompleteOnboarding(ctx context.Context, email string, profile *models.Profile) (bool, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]models.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindByTokenID(ctx context.Context, tokenID string) (*models.Session, error)
	Revoke(ctx context.Context, tokenID string) error
}
