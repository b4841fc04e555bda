package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffhub/staffhub-api/internal/core/domain"
	"github.com/staffhub/staffhub-api/internal/core/ports"
)

// AuthService implements registration, login, session checks, token refresh
// and the password reset flow.
type AuthService struct {
	users     ports.UserRepository
	employees ports.EmployeeRepository
	managers  ports.ManagerRepository

	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	employees ports.EmployeeRepository,
	managers ports.ManagerRepository,
	jwtSecret string,
	accessTTL, refreshTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 2 * time.Hour
	}
	return &AuthService{
		users:      users,
		employees:  employees,
		managers:   managers,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.Session, *ports.TokenPair, error) {
	if in.Email == "" || in.Password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	if existing, err := s.users.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, nil, domain.ErrUserExists
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("email", created.Email).Msg("user registered")

	// Auto-login: a fresh user has no profile yet, so the role is RoleUser.
	return s.issue(ctx, created, domain.RoleUser)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, *ports.TokenPair, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Deliberately vague: an unknown email reads the same as a bad
		// password so accounts cannot be enumerated.
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	role, err := s.deriveRole(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("email", user.Email).Str("role", role).Msg("user logged in")

	return s.issue(ctx, user, role)
}

// CheckSession re-validates an already-authenticated identity, re-derives the
// role from current profile state and rotates the token pair.
func (s *AuthService) CheckSession(ctx context.Context, userID string) (*ports.Session, *ports.TokenPair, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidSession
		}
		return nil, nil, fmt.Errorf("check session: %w", err)
	}

	role, err := s.deriveRole(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("check session: %w", err)
	}

	return s.issue(ctx, user, role)
}

// Refresh exchanges a stored, unexpired refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.Session, *ports.TokenPair, error) {
	if refreshToken == "" {
		return nil, nil, domain.ErrInvalidSession
	}

	user, err := s.users.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidSession
		}
		return nil, nil, fmt.Errorf("refresh: %w", err)
	}
	if time.Now().UTC().After(user.RefreshTokenExpiry) {
		return nil, nil, domain.ErrInvalidSession
	}

	role, err := s.deriveRole(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("refresh: %w", err)
	}

	return s.issue(ctx, user, role)
}

func (s *AuthService) ResetPassword(ctx context.Context, in ports.ResetPasswordInput) error {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return err
	}

	// Weak identity check: both submitted names must match the stored record.
	// Known weakness kept for client parity; see DESIGN.md.
	if user.FirstName != in.FirstName || user.LastName != in.LastName {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("reset password: hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.log.Info().Str("email", user.Email).Msg("password reset")
	return nil
}

// deriveRole computes the role from current profile existence.
func (s *AuthService) deriveRole(ctx context.Context, userID string) (string, error) {
	hasManager, err := s.hasProfile(func() error {
		_, err := s.managers.FindByUserID(ctx, userID)
		return err
	})
	if err != nil {
		return "", err
	}
	hasEmployee, err := s.hasProfile(func() error {
		_, err := s.employees.FindByUserID(ctx, userID)
		return err
	})
	if err != nil {
		return "", err
	}
	return domain.DeriveRole(hasEmployee, hasManager), nil
}

func (s *AuthService) hasProfile(lookup func() error) (bool, error) {
	switch err := lookup(); {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrManagerNotFound):
		return false, nil
	default:
		return false, err
	}
}

// issue mints a token pair for the user with the given role and persists the
// refresh half.
func (s *AuthService) issue(ctx context.Context, user *domain.User, role string) (*ports.Session, *ports.TokenPair, error) {
	accessExpiry := time.Now().UTC().Add(s.accessTTL)
	access, err := s.generateAccessToken(user, role, accessExpiry)
	if err != nil {
		return nil, nil, fmt.Errorf("issue token: %w", err)
	}

	refresh, err := generateRefreshToken()
	if err != nil {
		return nil, nil, fmt.Errorf("issue token: %w", err)
	}
	refreshExpiry := time.Now().UTC().Add(s.refreshTTL)

	if err := s.users.SaveRefreshToken(ctx, user.ID, refresh, refreshExpiry); err != nil {
		return nil, nil, fmt.Errorf("issue token: %w", err)
	}

	session := &ports.Session{
		FullName: user.FullName(),
		Email:    user.Email,
		Role:     role,
	}
	pair := &ports.TokenPair{
		AccessToken:   access,
		AccessExpiry:  accessExpiry,
		RefreshToken:  refresh,
		RefreshExpiry: refreshExpiry,
	}
	return session, pair, nil
}

func (s *AuthService) generateAccessToken(user *domain.User, role string, expiry time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"jti":   uuid.NewString(),
		"email": user.Email,
		"role":  role,
		"exp":   expiry.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateRefreshToken returns 64 bytes of randomness, base64 encoded.
func generateRefreshToken() (string, error) {
	b := make([]byte, 64)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
