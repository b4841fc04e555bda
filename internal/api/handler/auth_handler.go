package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/staffhub-api/internal/api/metrics"
	"github.com/staffhub/staffhub-api/internal/api/middleware"
	"github.com/staffhub/staffhub-api/internal/core/domain"
	"github.com/staffhub/staffhub-api/internal/core/ports"
)

// RefreshTokenCookie carries the opaque refresh token. Paired with
// middleware.AccessTokenCookie on every credential-issuing response.
const RefreshTokenCookie = "REFRESH_TOKEN"

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	FirstName   string `json:"first_name"   validate:"required"`
	LastName    string `json:"last_name"    validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type sessionResponse struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Register creates a user account and logs it in immediately. The fresh
// account has no profile yet, so the issued token always carries the User role.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, pair, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	writeAuthCookies(c, pair)
	return c.JSON(http.StatusCreated, toSessionResponse(session))
}

// Login authenticates and issues a fresh credential pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, pair, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	writeAuthCookies(c, pair)
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// CheckSession re-derives the caller's role from current profile state and
// rotates the credential pair, so a profile created after login takes effect
// without a fresh password entry.
func (h *AuthHandler) CheckSession(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	session, pair, err := h.authService.CheckSession(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	writeAuthCookies(c, pair)
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Refresh exchanges the refresh-token cookie for a new credential pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	session, pair, err := h.authService.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		return err
	}

	writeAuthCookies(c, pair)
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// ResetPassword is the unauthenticated recovery path. Both submitted names
// must match the stored identity; any mismatch reads as invalid credentials.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ResetPassword(c.Request().Context(), ports.ResetPasswordInput{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		NewPassword: req.NewPassword,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "password updated"})
}

func toSessionResponse(s *ports.Session) sessionResponse {
	return sessionResponse{FullName: s.FullName, Email: s.Email, Role: s.Role}
}

// writeAuthCookies sets the ACCESS_TOKEN / REFRESH_TOKEN pair. Both are
// HttpOnly + Secure + SameSite=Strict so scripts never see them and they stay
// off cross-site requests.
func writeAuthCookies(c echo.Context, pair *ports.TokenPair) {
	setAuthCookie(c, middleware.AccessTokenCookie, pair.AccessToken, pair.AccessExpiry)
	setAuthCookie(c, RefreshTokenCookie, pair.RefreshToken, pair.RefreshExpiry)
}

func setAuthCookie(c echo.Context, name, value string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
