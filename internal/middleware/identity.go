package middleware

// identity.go holds helpers shared across middleware files for reading the
// identity that SessionAuth stored in the echo context.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// UserID returns the authenticated user's id, or 0 for guests.
func UserID(c echo.Context) uint64 {
	if v, ok := c.Get("user_id").(uint64); ok {
		return v
	}
	return 0
}

// currentUserID renders the user id for rate-limit keys. Guests share the
// "anon" bucket keyed by IP.
func currentUserID(c echo.Context) string {
	if id := UserID(c); id != 0 {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
