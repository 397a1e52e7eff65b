package utils

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SetSessionCookie writes the opaque session carrier to the client.  The
// cookie is HttpOnly and SameSite=Lax; Secure should be true outside dev.
// Expiry mirrors the refresh-token lifetime so the carrier dies with the
// last usable refresh token.
func SetSessionCookie(c echo.Context, name, token string, expires time.Time, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
}

// ClearSessionCookie expires the session carrier immediately (sign-out or a
// rejected session).
func ClearSessionCookie(c echo.Context, name string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
}
