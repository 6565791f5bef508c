package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapi/internal/config"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/middleware"
	"blogapi/internal/model"
	"blogapi/internal/password"
	"blogapi/internal/service"
)

// AuthHandler serves registration, login and token lifecycle endpoints.
type AuthHandler struct {
	svc service.AuthService
	cfg *config.Config
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(svc service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg}
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest optionally carries the refresh token in the body for
// clients that do not use cookies.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest is the password change payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// AuthResponse is returned by login and refresh.
type AuthResponse struct {
	Message      string      `json:"message"`
	User         *model.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}

// RegisterResponse extends AuthResponse with an advisory strength score for
// the accepted password.
type RegisterResponse struct {
	AuthResponse
	PasswordStrength int `json:"password_strength"`
}

// Register godoc
// @Summary Register a new account
// @Description Creates a user with the USER role and signs them in.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("body", "", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, tokens, err := h.svc.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}
	setTokenCookies(c, tokens, h.cfg.AccessTokenTTL, h.cfg.RefreshTokenTTL)
	return c.JSON(http.StatusCreated, RegisterResponse{
		AuthResponse: AuthResponse{
			Message:      "registration successful",
			User:         user,
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
		},
		PasswordStrength: password.Strength(req.Password),
	})
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and issues an access/refresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("body", "", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, tokens, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	setTokenCookies(c, tokens, h.cfg.AccessTokenTTL, h.cfg.RefreshTokenTTL)
	return c.JSON(http.StatusOK, AuthResponse{
		Message:      "login successful",
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// Refresh godoc
// @Summary Rotate the refresh token
// @Description Consumes the presented refresh token and issues a new token pair. Each refresh token is single use.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest false "Refresh token (optional when the cookie is set)"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	raw := ""
	if cookie, err := c.Cookie(refreshCookieName); err == nil {
		raw = cookie.Value
	}
	if raw == "" {
		var req RefreshRequest
		if err := c.Bind(&req); err == nil {
			raw = req.RefreshToken
		}
	}
	if raw == "" {
		return apperrors.ErrInvalidRefreshToken
	}

	user, tokens, err := h.svc.Refresh(c.Request().Context(), raw)
	if err != nil {
		return err
	}
	setTokenCookies(c, tokens, h.cfg.AccessTokenTTL, h.cfg.RefreshTokenTTL)
	return c.JSON(http.StatusOK, AuthResponse{
		Message:      "token refreshed",
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// Logout godoc
// @Summary Log out
// @Description Revokes the presented access token for its remaining lifetime and clears token cookies.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} messageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return apperrors.ErrUnauthorized
	}
	if err := h.svc.Logout(c.Request().Context(), sess.Token); err != nil {
		return err
	}
	clearTokenCookies(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Me godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return apperrors.ErrUnauthorized
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Description Requires the current password. The new password must satisfy the password policy.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Password change data"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return apperrors.ErrUnauthorized
	}
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("body", "", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.svc.ChangePassword(c.Request().Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password changed"})
}
