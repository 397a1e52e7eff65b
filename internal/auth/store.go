package auth

import (
	"context"
	"time"

	"github.com/iliyamo/portfolio-api/internal/model"
)

// The stores below are the only collaborators the auth core talks to.  The
// MySQL repositories satisfy them in production; tests use in-memory fakes.
// Implementations must map a missing row onto repository.ErrNotFound so the
// service can distinguish "no such record" from infrastructure failure.

// UserStore looks up user records for verification and session validation.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// SessionStore persists session records keyed by carrier-token hash.
type SessionStore interface {
	Create(ctx context.Context, s *model.Session) error
	GetByTokenHash(ctx context.Context, hash string) (model.Session, error)
	UpdateTokens(ctx context.Context, id uint64, access string, accessExp time.Time, refresh string, refreshExp time.Time) error
	DeleteByID(ctx context.Context, id uint64) error
	DeleteAllForUser(ctx context.Context, userID uint64) error
}

// AccountStore maintains the per-provider credential binding.  Upsert is
// last-write-wins per {user, provider}; the store's own atomicity guarantees
// resolve concurrent rotations.
type AccountStore interface {
	UpsertCredentials(ctx context.Context, userID uint64, access string, accessExp time.Time, refresh string, refreshExp time.Time) error
	ClearForUser(ctx context.Context, userID uint64) error
}
