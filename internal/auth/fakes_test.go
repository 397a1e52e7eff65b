package auth

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/portfolio-api/internal/model"
	"github.com/iliyamo/portfolio-api/internal/repository"
)

// memStore is an in-memory implementation of UserStore, SessionStore and
// AccountStore used across the service tests.  Setting failAll simulates an
// unreachable backing store.
type memStore struct {
	users    map[uint64]model.User
	sessions map[string]model.Session // keyed by token hash
	accounts map[uint64]accountRow
	nextID   uint64
	failAll  bool
}

type accountRow struct {
	access     string
	accessExp  time.Time
	refresh    string
	refreshExp time.Time
	cleared    bool
}

var errStoreDown = errors.New("store down")

func newMemStore() *memStore {
	return &memStore{
		users:    map[uint64]model.User{},
		sessions: map[string]model.Session{},
		accounts: map[uint64]accountRow{},
	}
}

func (m *memStore) addUser(u model.User) {
	m.users[u.ID] = u
}

func (m *memStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	if m.failAll {
		return model.User{}, errStoreDown
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	if m.failAll {
		return model.User{}, errStoreDown
	}
	u, ok := m.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (m *memStore) Create(_ context.Context, s *model.Session) error {
	if m.failAll {
		return errStoreDown
	}
	m.nextID++
	s.ID = m.nextID
	m.sessions[s.TokenHash] = *s
	return nil
}

func (m *memStore) GetByTokenHash(_ context.Context, hash string) (model.Session, error) {
	if m.failAll {
		return model.Session{}, errStoreDown
	}
	s, ok := m.sessions[hash]
	if !ok {
		return model.Session{}, repository.ErrNotFound
	}
	return s, nil
}

func (m *memStore) UpdateTokens(_ context.Context, id uint64, access string, accessExp time.Time, refresh string, refreshExp time.Time) error {
	if m.failAll {
		return errStoreDown
	}
	for hash, s := range m.sessions {
		if s.ID == id {
			s.AccessToken = access
			s.AccessExpiresAt = accessExp
			s.RefreshToken = refresh
			s.RefreshExpiresAt = refreshExp
			m.sessions[hash] = s
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) DeleteByID(_ context.Context, id uint64) error {
	for hash, s := range m.sessions {
		if s.ID == id {
			delete(m.sessions, hash)
		}
	}
	return nil
}

func (m *memStore) DeleteAllForUser(_ context.Context, userID uint64) error {
	for hash, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, hash)
		}
	}
	return nil
}

func (m *memStore) UpsertCredentials(_ context.Context, userID uint64, access string, accessExp time.Time, refresh string, refreshExp time.Time) error {
	if m.failAll {
		return errStoreDown
	}
	m.accounts[userID] = accountRow{
		access: access, accessExp: accessExp,
		refresh: refresh, refreshExp: refreshExp,
	}
	return nil
}

func (m *memStore) ClearForUser(_ context.Context, userID uint64) error {
	row := m.accounts[userID]
	row.access, row.refresh = "", ""
	row.cleared = true
	m.accounts[userID] = row
	return nil
}
