package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/portfolio-api/internal/model"
	"github.com/iliyamo/portfolio-api/internal/repository"
	"github.com/iliyamo/portfolio-api/internal/utils"
)

// Identity is the verified {id, email, name, role} tuple produced by
// credential verification and carried through the request context.
type Identity struct {
	ID    uint64
	Email string
	Name  string
	Role  string
}

// TokenBundle is the access/refresh pair issued for one session.  It is
// mirrored into the session row and the account binding; the client only
// ever holds the opaque carrier token that references it.
type TokenBundle struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// SessionHandle is what sign-in hands back to the transport layer: the raw
// carrier token for the cookie, its expiry, and the bundle for the response
// body.
type SessionHandle struct {
	Token     string
	ExpiresAt time.Time
	Bundle    TokenBundle
}

// Service wires the verifier, issuer and refresh policy onto the stores.
// It holds no mutable state of its own; everything cross-request lives in
// the stores.
type Service struct {
	users    UserStore
	sessions SessionStore
	accounts AccountStore

	secret        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	sessionMaxAge time.Duration

	now func() time.Time // overridable in tests
}

// NewService builds a Service.  TTLs are given in seconds to match the
// ACCESS_TOKEN_TTL_SECONDS family of configuration keys.
func NewService(users UserStore, sessions SessionStore, accounts AccountStore,
	secret string, accessTTLSec, refreshTTLSec, sessionMaxAgeSec int) *Service {
	return &Service{
		users:         users,
		sessions:      sessions,
		accounts:      accounts,
		secret:        secret,
		accessTTL:     time.Duration(accessTTLSec) * time.Second,
		refreshTTL:    time.Duration(refreshTTLSec) * time.Second,
		sessionMaxAge: time.Duration(sessionMaxAgeSec) * time.Second,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Verify checks a submitted email/password pair against the user store.
// Unknown email, a record without a password hash, and a wrong password all
// collapse into ErrInvalidCredentials.  A matching but deactivated account
// returns ErrAccountInactive.  Verify has no side effects.
func (s *Service) Verify(ctx context.Context, email, password string) (Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Identity{}, ErrInvalidCredentials
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, ErrStoreUnavailable
	}
	// Records created by an external provider flow carry no hash and can
	// never sign in with credentials.
	if u.PasswordHash == "" {
		return Identity{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return Identity{}, ErrAccountInactive
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}, nil
}

// Issue mints a fresh access/refresh pair for a verified identity and
// overwrites the account binding for the credentials provider.  Called once
// per sign-in and again by the refresh policy on silent rotation.
func (s *Service) Issue(ctx context.Context, id Identity) (TokenBundle, error) {
	now := s.now()
	access, err := NewAccessToken(s.secret, id.ID, id.Role, s.accessTTL, now)
	if err != nil {
		return TokenBundle{}, err
	}
	refresh, err := NewRefreshToken(s.refreshTTL, now)
	if err != nil {
		return TokenBundle{}, err
	}
	b := TokenBundle{
		AccessToken:      access.Token,
		AccessExpiresAt:  access.Exp,
		RefreshToken:     refresh.Raw,
		RefreshExpiresAt: refresh.Exp,
	}
	if err := s.accounts.UpsertCredentials(ctx, id.ID, b.AccessToken, b.AccessExpiresAt, b.RefreshToken, b.RefreshExpiresAt); err != nil {
		return TokenBundle{}, ErrStoreUnavailable
	}
	return b, nil
}

// SignIn runs the verifier and the issuer, then creates the session record
// the carrier token resolves to.  The raw carrier token exists only in the
// returned handle; the store keeps its digest.
func (s *Service) SignIn(ctx context.Context, email, password string) (Identity, SessionHandle, error) {
	id, err := s.Verify(ctx, email, password)
	if err != nil {
		return Identity{}, SessionHandle{}, err
	}
	bundle, err := s.Issue(ctx, id)
	if err != nil {
		return Identity{}, SessionHandle{}, err
	}
	carrier, err := NewSessionToken(s.sessionMaxAge, s.now())
	if err != nil {
		return Identity{}, SessionHandle{}, err
	}
	sess := &model.Session{
		UserID:           id.ID,
		TokenHash:        HashToken(carrier.Raw),
		AccessToken:      bundle.AccessToken,
		AccessExpiresAt:  bundle.AccessExpiresAt,
		RefreshToken:     bundle.RefreshToken,
		RefreshExpiresAt: bundle.RefreshExpiresAt,
		ExpiresAt:        carrier.Exp,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return Identity{}, SessionHandle{}, ErrStoreUnavailable
	}
	return id, SessionHandle{Token: carrier.Raw, ExpiresAt: carrier.Exp, Bundle: bundle}, nil
}

// AuthResult is what the authorization gate receives for an allowed request.
// Rotated reports that the refresh policy replaced the token bundle, in which
// case the gate must re-propagate the session cookie with CarrierExpiresAt.
type AuthResult struct {
	Identity         Identity
	Rotated          bool
	CarrierExpiresAt time.Time
}

// Authenticate resolves a raw carrier token into an identity, applying the
// refresh policy to the session's token bundle:
//
//	access unexpired            -> passthrough
//	access expired, refresh not -> silent rotation, at most once per request
//	both expired                -> session deleted, ErrUnauthenticated
//
// Expiry comparisons are strict: a token expiring exactly now is expired.
// The owning user is re-checked first; a session never outlives its account.
func (s *Service) Authenticate(ctx context.Context, rawToken string) (AuthResult, error) {
	if rawToken == "" {
		return AuthResult{}, ErrUnauthenticated
	}
	sess, err := s.sessions.GetByTokenHash(ctx, HashToken(rawToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return AuthResult{}, ErrUnauthenticated
		}
		return AuthResult{}, ErrStoreUnavailable
	}
	now := s.now()
	if !now.Before(sess.ExpiresAt) {
		_ = s.sessions.DeleteByID(ctx, sess.ID)
		return AuthResult{}, ErrUnauthenticated
	}

	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = s.sessions.DeleteByID(ctx, sess.ID)
			return AuthResult{}, ErrUnauthenticated
		}
		return AuthResult{}, ErrStoreUnavailable
	}
	if !u.IsActive {
		// Deactivation invalidates every live session, unexpired or not.
		_ = s.sessions.DeleteAllForUser(ctx, u.ID)
		return AuthResult{}, ErrUnauthenticated
	}
	id := Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}

	if now.Before(sess.AccessExpiresAt) {
		return AuthResult{Identity: id, CarrierExpiresAt: sess.RefreshExpiresAt}, nil // FRESH
	}
	if !now.Before(sess.RefreshExpiresAt) {
		_ = s.sessions.DeleteByID(ctx, sess.ID)
		return AuthResult{}, ErrUnauthenticated
	}

	// Access expired, refresh still valid: rotate silently.
	bundle, err := s.Issue(ctx, id)
	if err != nil {
		return AuthResult{}, ErrStoreUnavailable
	}
	if err := s.sessions.UpdateTokens(ctx, sess.ID,
		bundle.AccessToken, bundle.AccessExpiresAt,
		bundle.RefreshToken, bundle.RefreshExpiresAt); err != nil {
		return AuthResult{}, ErrStoreUnavailable
	}
	return AuthResult{Identity: id, Rotated: true, CarrierExpiresAt: bundle.RefreshExpiresAt}, nil
}

// SignOut destroys every session of the user owning the carrier token and
// nulls the account binding's stored values.  An unknown token is a no-op:
// sign-out is idempotent.
func (s *Service) SignOut(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	sess, err := s.sessions.GetByTokenHash(ctx, HashToken(rawToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return ErrStoreUnavailable
	}
	if err := s.sessions.DeleteAllForUser(ctx, sess.UserID); err != nil {
		return ErrStoreUnavailable
	}
	if err := s.accounts.ClearForUser(ctx, sess.UserID); err != nil {
		return ErrStoreUnavailable
	}
	return nil
}
