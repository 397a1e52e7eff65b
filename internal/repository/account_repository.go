package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/portfolio-api/internal/model"
)

// AccountRepo maintains the per-provider credential binding rows.  The
// {user_id, provider} pair is unique, so the upsert below is atomic per key
// and last-write-wins under concurrent rotations.
type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

// UpsertCredentials creates the credentials binding on first sign-in and
// overwrites its token values on every subsequent issue.
func (r *AccountRepo) UpsertCredentials(ctx context.Context, userID uint64, access string, accessExp time.Time, refresh string, refreshExp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO accounts (user_id, provider, access_token, access_expires_at, refresh_token, refresh_expires_at)
		 VALUES (?,?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE
		   access_token=VALUES(access_token),
		   access_expires_at=VALUES(access_expires_at),
		   refresh_token=VALUES(refresh_token),
		   refresh_expires_at=VALUES(refresh_expires_at),
		   updated_at=NOW()`,
		userID, model.ProviderCredentials, access, accessExp, refresh, refreshExp)
	return err
}

// ClearForUser nulls the stored token values at sign-out.  The row itself is
// kept so the binding's history of existence survives.
func (r *AccountRepo) ClearForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE accounts
		 SET access_token=NULL, access_expires_at=NULL, refresh_token=NULL, refresh_expires_at=NULL, updated_at=NOW()
		 WHERE user_id=? AND provider=?`,
		userID, model.ProviderCredentials)
	return err
}

// GetForUser fetches the credentials binding of a user.
func (r *AccountRepo) GetForUser(ctx context.Context, userID uint64) (model.Account, error) {
	var a model.Account
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, provider, access_token, access_expires_at, refresh_token, refresh_expires_at, updated_at
		 FROM accounts WHERE user_id=? AND provider=? LIMIT 1`,
		userID, model.ProviderCredentials).
		Scan(&a.ID, &a.UserID, &a.Provider, &a.AccessToken, &a.AccessExpiresAt, &a.RefreshToken, &a.RefreshExpiresAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, ErrNotFound
	}
	return a, err
}
