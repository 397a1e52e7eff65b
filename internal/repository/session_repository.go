package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/portfolio-api/internal/model"
)

// SessionRepo persists session records keyed by carrier-token hash.  Only
// digests of carrier tokens are stored; the access/refresh values live on the
// row so the refresh policy can evaluate them server-side.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Create inserts a session row and backfills the generated id.
func (r *SessionRepo) Create(ctx context.Context, s *model.Session) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO sessions
		 (user_id, token_hash, access_token, access_expires_at, refresh_token, refresh_expires_at, expires_at)
		 VALUES (?,?,?,?,?,?,?)`,
		s.UserID, s.TokenHash, s.AccessToken, s.AccessExpiresAt, s.RefreshToken, s.RefreshExpiresAt, s.ExpiresAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByTokenHash fetches a session by the digest of its carrier token.
func (r *SessionRepo) GetByTokenHash(ctx context.Context, hash string) (model.Session, error) {
	var s model.Session
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, access_token, access_expires_at,
		        refresh_token, refresh_expires_at, expires_at, created_at, updated_at
		 FROM sessions WHERE token_hash=? LIMIT 1`, hash).
		Scan(&s.ID, &s.UserID, &s.TokenHash, &s.AccessToken, &s.AccessExpiresAt,
			&s.RefreshToken, &s.RefreshExpiresAt, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Session{}, ErrNotFound
	}
	return s, err
}

// UpdateTokens overwrites the session's access/refresh pair after a silent
// rotation.  Last write wins when two refreshes race.
func (r *SessionRepo) UpdateTokens(ctx context.Context, id uint64, access string, accessExp time.Time, refresh string, refreshExp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE sessions
		 SET access_token=?, access_expires_at=?, refresh_token=?, refresh_expires_at=?, updated_at=NOW()
		 WHERE id=?`,
		access, accessExp, refresh, refreshExp, id)
	return err
}

// DeleteByID removes one session.
func (r *SessionRepo) DeleteByID(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM sessions WHERE id=?", id)
	return err
}

// DeleteAllForUser removes every session of a user (sign-out, deactivation).
func (r *SessionRepo) DeleteAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM sessions WHERE user_id=?", userID)
	return err
}

// DeleteExpired sweeps sessions whose carrier expiry has passed.  Run
// opportunistically; correctness never depends on it because reads check
// expiry themselves.
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= NOW()")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
