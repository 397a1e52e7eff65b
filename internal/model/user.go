package model

import "time"

// Role names stored in users.role.  The first registered user becomes the
// ADMIN who owns the portfolio; everyone else registers as USER.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User represents an application user record as stored in the `users` table.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique email address (stored lower-cased).
//	PasswordHash – bcrypt hashed password.  Empty for records created by an
//	               external provider flow; such users cannot sign in with
//	               credentials.
//	Name         – display name shown on the public site.
//	Role         – role name (ADMIN or USER).
//	IsActive     – whether the account is active.  Sessions of a deactivated
//	               user are treated as invalid even when unexpired.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Name         string    // users.name
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Session models a row in the `sessions` table: one authenticated browser
// session.  The carrier token handed to the client is never stored; only its
// SHA-256 hash.  The access/refresh pair issued for the session lives on the
// row so the refresh policy can evaluate and rotate it server-side.
//
// Fields:
//
//	ID               – primary key identifier.
//	UserID           – owner of the session.
//	TokenHash        – SHA-256 hex digest of the carrier token.
//	AccessToken      – current access-token value (HS256 JWT).
//	AccessExpiresAt  – access-token expiry.
//	RefreshToken     – current refresh-token value.
//	RefreshExpiresAt – refresh-token expiry.
//	ExpiresAt        – hard expiry of the session carrier itself.
//	CreatedAt        – timestamp of creation.
//	UpdatedAt        – timestamp of last rotation.
type Session struct {
	ID               uint64    // sessions.id
	UserID           uint64    // sessions.user_id
	TokenHash        string    // sessions.token_hash
	AccessToken      string    // sessions.access_token
	AccessExpiresAt  time.Time // sessions.access_expires_at
	RefreshToken     string    // sessions.refresh_token
	RefreshExpiresAt time.Time // sessions.refresh_expires_at
	ExpiresAt        time.Time // sessions.expires_at
	CreatedAt        time.Time // sessions.created_at
	UpdatedAt        time.Time // sessions.updated_at
}

// Account models a row in the `accounts` table: the per-provider credential
// binding for a user.  With the single "credentials" provider there is at
// most one row per user; each sign-in or rotation overwrites the stored pair
// (last write wins), and sign-out nulls the values without deleting the row.
//
// Fields:
//
//	ID               – primary key identifier.
//	UserID           – owner of the binding.
//	Provider         – provider name, currently always "credentials".
//	AccessToken      – most recently issued access-token value (nullable).
//	RefreshToken     – most recently issued refresh-token value (nullable).
//	AccessExpiresAt  – expiry of the stored access token (nullable).
//	RefreshExpiresAt – expiry of the stored refresh token (nullable).
//	UpdatedAt        – timestamp of last overwrite.
type Account struct {
	ID               uint64     // accounts.id
	UserID           uint64     // accounts.user_id
	Provider         string     // accounts.provider
	AccessToken      *string    // accounts.access_token
	RefreshToken     *string    // accounts.refresh_token
	AccessExpiresAt  *time.Time // accounts.access_expires_at
	RefreshExpiresAt *time.Time // accounts.refresh_expires_at
	UpdatedAt        time.Time  // accounts.updated_at
}

// ProviderCredentials is the provider name for email/password sign-in.
const ProviderCredentials = "credentials"
