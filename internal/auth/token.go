package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed HS256 JWT plus its expiry.  Access tokens are
// short-lived and carry only what revocation needs: subject and role.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// OpaqueToken is a random value with an expiry, used for refresh tokens and
// session carrier tokens.  Only the SHA-256 digest of Raw is ever persisted.
type OpaqueToken struct {
	Raw string    // raw token string returned to the client
	Exp time.Time // UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  The claims are
// subject (sub), role, expiration (exp) and issued-at (iat).  Nothing beyond
// the subject and role is recoverable from the token, and the signature makes
// it unforgeable without the server secret.  The caller supplies the issue
// time so minting and later expiry checks share one clock.
func NewAccessToken(secret string, userID uint64, role string, ttl time.Duration, now time.Time) (AccessToken, error) {
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken returns a cryptographically random refresh token and its
// expiration time.  Refresh tokens outlive access tokens and let the refresh
// policy rotate an expired access token without user interaction.
func NewRefreshToken(ttl time.Duration, now time.Time) (OpaqueToken, error) {
	raw, err := randomHex(48) // 48 bytes -> 96 hex chars
	if err != nil {
		return OpaqueToken{}, err
	}
	return OpaqueToken{Raw: raw, Exp: now.Add(ttl)}, nil
}

// NewSessionToken returns the opaque carrier token placed in the session
// cookie.  The client never sees the raw access/refresh pair; it holds only
// this reference, which resolves server-side to a session row.
func NewSessionToken(ttl time.Duration, now time.Time) (OpaqueToken, error) {
	raw, err := randomHex(32)
	if err != nil {
		return OpaqueToken{}, err
	}
	return OpaqueToken{Raw: raw, Exp: now.Add(ttl)}, nil
}

// HashToken returns the SHA-256 digest of a raw token as a hex string.
// Storing only digests keeps stolen database rows from being replayed as
// live sessions.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
