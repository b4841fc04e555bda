package ports

import (
	"context"
	"time"
)

// TokenPair is a freshly minted credential set: a signed short-lived access
// token and an opaque longer-lived refresh token.
type TokenPair struct {
	AccessToken   string
	AccessExpiry  time.Time
	RefreshToken  string
	RefreshExpiry time.Time
}

// Session is the identity summary returned by login and session checks.
type Session struct {
	FullName string
	Email    string
	Role     string
}

// RegisterInput carries the self-service registration fields.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// ResetPasswordInput carries the unauthenticated password reset fields. The
// submitted first and last name must both match the stored identity. This is a
// deliberately weak verification kept for client parity; hardening it means an
// emailed one-time link.
type ResetPasswordInput struct {
	Email       string
	FirstName   string
	LastName    string
	NewPassword string
}

// AuthService issues and validates credentials. The role baked into a token is
// derived at issuance time; a profile created afterwards only shows up once the
// client re-logs-in, refreshes, or calls CheckSession.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*Session, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*Session, *TokenPair, error)
	CheckSession(ctx context.Context, userID string) (*Session, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, *TokenPair, error)
	ResetPassword(ctx context.Context, in ResetPasswordInput) error
}
