package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/portfolio-api/internal/model"
	"github.com/iliyamo/portfolio-api/internal/utils"
)

const (
	testSecret   = "test-secret"
	testPassword = "s3cret-pass"
)

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	store := newMemStore()
	hash, err := utils.HashPassword(testPassword, 4)
	require.NoError(t, err)
	store.addUser(model.User{
		ID: 1, Email: "owner@example.com", PasswordHash: hash,
		Name: "Owner", Role: model.RoleAdmin, IsActive: true,
	})
	svc := NewService(store, store, store, testSecret, 900, 7*24*3600, 30*24*3600)
	return svc, store
}

func TestVerify(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		id, err := svc.Verify(ctx, "owner@example.com", testPassword)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), id.ID)
		assert.Equal(t, model.RoleAdmin, id.Role)
	})

	t.Run("email is normalized", func(t *testing.T) {
		_, err := svc.Verify(ctx, "  OWNER@Example.COM ", testPassword)
		assert.NoError(t, err)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, errWrong := svc.Verify(ctx, "owner@example.com", "nope")
		_, errUnknown := svc.Verify(ctx, "ghost@example.com", testPassword)
		assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.Equal(t, errWrong, errUnknown)
	})

	t.Run("empty inputs rejected", func(t *testing.T) {
		_, err := svc.Verify(ctx, "", testPassword)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = svc.Verify(ctx, "owner@example.com", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("record without hash cannot sign in", func(t *testing.T) {
		store.addUser(model.User{ID: 2, Email: "oauth@example.com", IsActive: true, Role: model.RoleUser})
		_, err := svc.Verify(ctx, "oauth@example.com", testPassword)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		hash, err := utils.HashPassword(testPassword, 4)
		require.NoError(t, err)
		store.addUser(model.User{ID: 3, Email: "gone@example.com", PasswordHash: hash, Role: model.RoleUser})
		_, err = svc.Verify(ctx, "gone@example.com", testPassword)
		assert.ErrorIs(t, err, ErrAccountInactive)
	})

	t.Run("store outage", func(t *testing.T) {
		store.failAll = true
		defer func() { store.failAll = false }()
		_, err := svc.Verify(ctx, "owner@example.com", testPassword)
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})
}

func TestSignIn(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	id, handle, err := svc.SignIn(ctx, "owner@example.com", testPassword)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id.ID)
	assert.NotEmpty(t, handle.Token)
	assert.True(t, handle.ExpiresAt.After(time.Now()))

	// Only the digest is persisted; it must resolve back to the session row.
	sess, err := store.GetByTokenHash(ctx, HashToken(handle.Token))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), sess.UserID)
	assert.Equal(t, handle.Bundle.AccessToken, sess.AccessToken)
	assert.Equal(t, handle.Bundle.RefreshToken, sess.RefreshToken)
	_, stored := store.sessions[handle.Token]
	assert.False(t, stored, "raw carrier token must never be a storage key")

	// Sign-in binds the bundle to the credentials account row.
	acct := store.accounts[1]
	assert.Equal(t, handle.Bundle.AccessToken, acct.access)
	assert.Equal(t, handle.Bundle.RefreshToken, acct.refresh)
}

func TestSignInTwiceKeepsBothSessions(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, h1, err := svc.SignIn(ctx, "owner@example.com", testPassword)
	require.NoError(t, err)
	_, h2, err := svc.SignIn(ctx, "owner@example.com", testPassword)
	require.NoError(t, err)
	assert.NotEqual(t, h1.Token, h2.Token)
	assert.Len(t, store.sessions, 2)

	// The account binding is last-write-wins.
	assert.Equal(t, h2.Bundle.AccessToken, store.accounts[1].access)

	// Both carriers still authenticate.
	for _, h := range []SessionHandle{h1, h2} {
		res, err := svc.Authenticate(ctx, h.Token)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), res.Identity.ID)
	}
}

func TestSignInStampsExpiriesFromServiceClock(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	_, handle, err := svc.SignIn(ctx, "owner@example.com", testPassword)
	require.NoError(t, err)

	// Every expiry in the lifecycle derives from the one injected clock, so
	// issuance and the refresh policy's checks can never disagree on "now".
	assert.Equal(t, fixed.Add(900*time.Second), handle.Bundle.AccessExpiresAt)
	assert.Equal(t, fixed.Add(7*24*time.Hour), handle.Bundle.RefreshExpiresAt)
	assert.Equal(t, fixed.Add(30*24*time.Hour), handle.ExpiresAt)

	sess := store.sessions[HashToken(handle.Token)]
	assert.Equal(t, handle.Bundle.AccessExpiresAt, sess.AccessExpiresAt)
	assert.Equal(t, handle.Bundle.RefreshExpiresAt, sess.RefreshExpiresAt)

	// Rotation mints from the same clock: advance it past the access expiry
	// and the new bundle's expiries are anchored to the advanced instant.
	later := fixed.Add(901 * time.Second)
	svc.now = func() time.Time { return later }
	res, err := svc.Authenticate(ctx, handle.Token)
	require.NoError(t, err)
	require.True(t, res.Rotated)
	rotated := store.sessions[HashToken(handle.Token)]
	assert.Equal(t, later.Add(900*time.Second), rotated.AccessExpiresAt)
	assert.Equal(t, later.Add(7*24*time.Hour), rotated.RefreshExpiresAt)
}

func TestAuthenticateFresh(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, handle, err := svc.SignIn(ctx, "owner@example.com", testPassword)
	require.NoError(t, err)

	res, err := svc.Authenticate(ctx, handle.Token)
	require.NoError(t, err)
	assert.False(t, res.Rotated)
	assert.Equal(t, "owner@example.com", res.Identity.Email)
	assert.Equal(t, handle.Bundle.RefreshExpiresAt, res.CarrierExpiresAt)

	// Passthrough must leave the bundle untouched.
	sess, err := store.GetByTokenHash(ctx, HashToken(handle.Token))
	require.NoError(t, err)
	assert.Equal(t, handle.Bundle.AccessToken, sess.AccessToken)
	assert.Equal(t, handle.Bundle.RefreshToken, sess.RefreshToken)
}

func TestAuthenticateRotatesExpiredAccess(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, handle, err := svc.SignIn(ctx, "owner@example.com", testPassword)
	require.NoError(t, err)

	// Age the access token past its expiry while the refresh token lives on.
	hash := HashToken(handle.Token)
	sess := store.sessions[hash]
	sess.AccessExpiresAt = time.Now().UTC().Add(-time.Minute)
	store.sessions[hash] = sess

	res, err := svc.Authenticate(ctx, handle.Token)
	require.NoError(t, err)
	assert.True(t, res.Rotated)
	assert.Equal(t, uint64(1), res.Identity.ID)

	rotated := store.sessions[hash]
	assert.NotEqual(t, handle.Bundle.AccessToken, rotated.AccessToken)
	assert.NotEqual(t, handle.Bundle.RefreshToken, rotated.RefreshToken)
	assert.True(t, rotated.AccessExpiresAt.After(time.Now()))
	assert.Equal(t, rotated.RefreshExpiresAt, res.CarrierExpiresAt)

	// The account binding follows the rotation.
	assert.Equal(t, rotated.AccessToken, store.accounts[1].access)

	// The same carrier keeps working and is not rotated again while fresh.
	res2, err := svc.Authenticate(ctx, handle.Token)
	require.NoError(t, err)
	assert.False(t, res2.Rotated)
}

func TestAuthenticateDeniesWhenRefreshExpired(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, handle, err := svc.SignIn(ctx, "owner@example.com", testPassword)
	require.NoError(t, err)

	hash := HashToken(handle.Token)
	sess := store.sessions[hash]
	sess.AccessExpiresAt = time.Now().UTC().Add(-2 * time.Hour)
	sess.RefreshExpiresAt = time.Now().UTC().Add(-time.Hour)
	store.sessions[hash] = sess

	_, err = svc.Authenticate(ctx, handle.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, ok := store.sessions[hash]
	assert.False(t, ok, "dead session must be deleted")
}

func TestAuthenticateExpiryIsStrict(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, handle, err := svc.SignIn(ctx, "owner@example.com", testPassword)
	require.NoError(t, err)

	fixed := time.Now().UTC()
	svc.now = func() time.Time { return fixed }
	hash := HashToken(handle.Token)

	// A token expiring exactly now is already expired: access at the instant
	// triggers rotation rather than passthrough.
	sess := store.sessions[hash]
	sess.AccessExpiresAt = fixed
	store.sessions[hash] = sess
	res, err := svc.Authenticate(ctx, handle.Token)
	require.NoError(t, err)
	assert.True(t, res.Rotated)

	// Refresh expiring exactly now denies outright.
	sess = store.sessions[hash]
	sess.AccessExpiresAt = fixed.Add(-time.Minute)
	sess.RefreshExpiresAt = fixed
	store.sessions[hash] = sess
	_, err = svc.Authenticate(ctx, handle.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticateCarrierHardExpiry(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, handle, err := svc.SignIn(ctx, "owner@example.com", testPassword)
	require.NoError(t, err)

	// Even with a live bundle, a carrier past its hard expiry is dead.
	hash := HashToken(handle.Token)
	sess := store.sessions[hash]
	sess.ExpiresAt = time.Now().UTC().Add(-time.Second)
	store.sessions[hash] = sess

	_, err = svc.Authenticate(ctx, handle.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, ok := store.sessions[hash]
	assert.False(t, ok)
}

func TestAuthenticateDeactivatedUser(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, handle, err := svc.SignIn(ctx, "owner@example.com", testPassword)
	require.NoError(t, err)

	u := store.users[1]
	u.IsActive = false
	store.users[1] = u

	_, err = svc.Authenticate(ctx, handle.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Empty(t, store.sessions, "deactivation must purge every session")
}

func TestAuthenticateDeletedUser(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, handle, err := svc.SignIn(ctx, "owner@example.com", testPassword)
	require.NoError(t, err)

	delete(store.users, 1)

	_, err = svc.Authenticate(ctx, handle.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Empty(t, store.sessions)
}

func TestAuthenticateRejectsUnknownAndEmptyTokens(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.Authenticate(ctx, "deadbeef")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticateStoreOutageFailsClosed(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, handle, err := svc.SignIn(ctx, "owner@example.com", testPassword)
	require.NoError(t, err)

	store.failAll = true
	_, err = svc.Authenticate(ctx, handle.Token)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestSignOut(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, h1, err := svc.SignIn(ctx, "owner@example.com", testPassword)
	require.NoError(t, err)
	_, h2, err := svc.SignIn(ctx, "owner@example.com", testPassword)
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, h1.Token))
	assert.Empty(t, store.sessions, "sign-out removes every session of the user")
	assert.True(t, store.accounts[1].cleared)
	assert.Empty(t, store.accounts[1].access)

	// Idempotent: the second carrier now resolves to nothing and that is fine.
	assert.NoError(t, svc.SignOut(ctx, h2.Token))
	assert.NoError(t, svc.SignOut(ctx, ""))
}
