// Package middleware provides the HTTP middleware chain: token
// authentication, user loading, role checks and request logging.
package middleware

import (
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/service"
)

// Context keys under which authentication state is stored on the echo
// context.
const (
	SessionContextKey = "auth_session"
	UserContextKey    = "current_user"
)

// Session is the verified token state attached to authenticated requests.
// The raw token is kept so logout can revoke exactly what was presented.
type Session struct {
	Token  string
	Claims *auth.Claims
}

// AccessToken authenticates requests with an access token taken from the
// access_token cookie or an Authorization bearer header. Failures map to a
// uniform 401.
func AccessToken(jwtSvc *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  SessionContextKey,
		TokenLookup: "cookie:access_token,header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, raw string) (interface{}, error) {
			claims, err := jwtSvc.VerifyAccessToken(c.Request().Context(), raw)
			if err != nil {
				return nil, err
			}
			return &Session{Token: raw, Claims: claims}, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.ErrUnauthorized
		},
	})
}

// CurrentSession returns the verified session, or nil outside the
// authenticated chain.
func CurrentSession(c echo.Context) *Session {
	if s, ok := c.Get(SessionContextKey).(*Session); ok {
		return s
	}
	return nil
}

// LoadUser resolves the session's subject to a live user record. Runs after
// AccessToken; deleted and deactivated accounts fail here even though their
// token signature still verifies.
func LoadUser(authSvc service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			if sess == nil {
				return apperrors.ErrUnauthorized
			}
			user, err := authSvc.ResolveUser(c.Request().Context(), sess.Claims)
			if err != nil {
				return err
			}
			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the loaded user, or nil when LoadUser did not run.
func CurrentUser(c echo.Context) *model.User {
	if u, ok := c.Get(UserContextKey).(*model.User); ok {
		return u
	}
	return nil
}

// RequireRole rejects users that do not hold the given role. Runs after
// LoadUser.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return apperrors.ErrUnauthorized
			}
			if user.Role != role {
				return apperrors.ErrForbidden
			}
			return next(c)
		}
	}
}

// OptionalUser loads the current user when a valid access token is present
// and proceeds anonymously otherwise. Used on public endpoints whose
// response depends on who is asking.
func OptionalUser(jwtSvc *auth.JWTService, authSvc service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)
			if raw == "" {
				return next(c)
			}
			claims, err := jwtSvc.VerifyAccessToken(c.Request().Context(), raw)
			if err != nil {
				return next(c)
			}
			user, err := authSvc.ResolveUser(c.Request().Context(), claims)
			if err != nil {
				return next(c)
			}
			c.Set(SessionContextKey, &Session{Token: raw, Claims: claims})
			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
