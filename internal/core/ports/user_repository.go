package ports

import (
	"context"
	"time"

	"github.com/staffhub/staffhub-api/internal/core/domain"
)

// UserRepository defines persistence for identity records.
// Email matching is case-sensitive.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByRefreshToken(ctx context.Context, token string) (*domain.User, error)
	// SaveRefreshToken persists the opaque refresh token and its expiry on the user.
	SaveRefreshToken(ctx context.Context, userID, token string, expiry time.Time) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	UpdateName(ctx context.Context, userID, firstName, lastName string) error
}
