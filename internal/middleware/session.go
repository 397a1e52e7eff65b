package middleware // middleware provides shared request processing for handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/auth"
	"github.com/iliyamo/portfolio-api/internal/utils"
)

// SessionAuth returns the authorization gate applied to every protected
// route group.  It extracts the opaque carrier token (Authorization: Bearer
// first, then the session cookie), resolves it through the auth service's
// refresh policy, and on allow stores the identity in the echo context under
// "user_id", "email" and "role" plus the X-User-Id / X-User-Role response
// headers for downstream consumers.  When the policy rotated the token
// bundle, the session cookie is re-set so the client keeps a live carrier.
//
// Denials fail closed: any store failure is a 500, never a pass.
func SessionAuth(svc *auth.Service, cookieName string, secureCookies bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := carrierToken(c, cookieName)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}

			res, err := svc.Authenticate(c.Request().Context(), raw)
			if err != nil {
				if errors.Is(err, auth.ErrStoreUnavailable) {
					c.Logger().Errorf("session auth: %v", err)
					return c.JSON(http.StatusInternalServerError, echo.Map{"error": "authorization unavailable"})
				}
				// Invalid or expired session: drop the dead cookie with the 401.
				utils.ClearSessionCookie(c, cookieName, secureCookies)
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}

			c.Set("user_id", res.Identity.ID)
			c.Set("email", res.Identity.Email)
			c.Set("role", res.Identity.Role)
			c.Response().Header().Set("X-User-Id", strconv.FormatUint(res.Identity.ID, 10))
			c.Response().Header().Set("X-User-Role", res.Identity.Role)

			if res.Rotated {
				utils.SetSessionCookie(c, cookieName, raw, res.CarrierExpiresAt, secureCookies)
			}
			return next(c)
		}
	}
}

// carrierToken pulls the session token from the request: a Bearer header
// takes precedence, then the session cookie.  API clients use the header,
// browsers the cookie.
func carrierToken(c echo.Context, cookieName string) string {
	if h := c.Request().Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if ck, err := c.Cookie(cookieName); err == nil {
		return ck.Value
	}
	return ""
}
