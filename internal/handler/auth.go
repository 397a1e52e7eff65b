package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/auth"
	"github.com/iliyamo/portfolio-api/internal/config"
	"github.com/iliyamo/portfolio-api/internal/model"
	"github.com/iliyamo/portfolio-api/internal/repository"
	"github.com/iliyamo/portfolio-api/internal/utils"
)

// UserRegistry is the slice of the user store that registration needs.  The
// MySQL repo satisfies it in production; tests use an in-memory fake.
type UserRegistry interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, email, password, name, role string, cost int) (uint64, string, error)
}

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Auth  *auth.Service
	Users UserRegistry
}

func NewAuthHandler(cfg config.Config, svc *auth.Service, users UserRegistry) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Auth: svc, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
type sessionPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type loginResp struct {
	User           userPart    `json:"user"`
	Session        sessionPart `json:"session"`
	AccessExpires  time.Time   `json:"access_expires"`
	RefreshExpires time.Time   `json:"refresh_expires"`
}

func (h *AuthHandler) secureCookies() bool { return h.Cfg.Env != "dev" }

// Register creates a user account.  The very first account becomes the ADMIN
// who owns the portfolio; everyone after that registers as USER.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	role := model.RoleUser
	n, err := h.Users.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if n == 0 {
		role = model.RoleAdmin
	}

	// The store reports the role it actually wrote: a registration racing
	// another first sign-up may be demoted to USER by the store's guard.
	uid, stored, err := h.Users.Create(ctx, req.Email, req.Password, strings.TrimSpace(req.Name), role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	return c.JSON(http.StatusCreated, userPart{ID: uid, Email: req.Email, Name: req.Name, Role: stored})
}

// Login verifies credentials, issues a token bundle and hands the client an
// opaque session cookie.  Invalid credentials and an inactive account map to
// the same response body so the two are indistinguishable from outside.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, handle, err := h.Auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		case errors.Is(err, auth.ErrAccountInactive):
			// Same body as invalid credentials; the sentinel only feeds logs.
			c.Logger().Infof("login rejected: inactive account %s", req.Email)
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		default:
			c.Logger().Errorf("login: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sign-in failed"})
		}
	}

	// Cookie lifetime mirrors the refresh token: once the refresh token is
	// dead the carrier is useless anyway.
	utils.SetSessionCookie(c, h.Cfg.CookieName, handle.Token, handle.Bundle.RefreshExpiresAt, h.secureCookies())

	return c.JSON(http.StatusOK, loginResp{
		User:           userPart{ID: id.ID, Email: id.Email, Name: id.Name, Role: id.Role},
		Session:        sessionPart{Token: handle.Token, Expires: handle.ExpiresAt},
		AccessExpires:  handle.Bundle.AccessExpiresAt,
		RefreshExpires: handle.Bundle.RefreshExpiresAt,
	})
}

// Logout destroys every session of the calling user and clears the carrier
// cookie.  It accepts the carrier from either the Authorization header or
// the cookie and is idempotent: an unknown token still returns 204.
func (h *AuthHandler) Logout(c echo.Context) error {
	raw := ""
	if hdr := c.Request().Header.Get("Authorization"); strings.HasPrefix(hdr, "Bearer ") {
		raw = strings.TrimSpace(strings.TrimPrefix(hdr, "Bearer "))
	} else if ck, err := c.Cookie(h.Cfg.CookieName); err == nil {
		raw = ck.Value
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Auth.SignOut(ctx, raw); err != nil {
		c.Logger().Errorf("logout: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	utils.ClearSessionCookie(c, h.Cfg.CookieName, h.secureCookies())
	return c.NoContent(http.StatusNoContent)
}

// Me returns the identity the authorization gate resolved.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": c.Get("user_id"),
		"email":   c.Get("email"),
		"role":    c.Get("role"),
	})
}
