package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"blogapi/internal/service"
)

// Cookie names under which tokens travel. Tokens are also returned in
// response bodies for clients that cannot use cookies.
const (
	accessCookieName  = "access_token"
	refreshCookieName = "refresh_token"
)

func newTokenCookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func setTokenCookies(c echo.Context, tokens service.TokenPair, accessTTL, refreshTTL time.Duration) {
	c.SetCookie(newTokenCookie(accessCookieName, tokens.AccessToken, accessTTL))
	c.SetCookie(newTokenCookie(refreshCookieName, tokens.RefreshToken, refreshTTL))
}

func clearTokenCookies(c echo.Context) {
	for _, name := range []string{accessCookieName, refreshCookieName} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
