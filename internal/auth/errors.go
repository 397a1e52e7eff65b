// Package auth implements the credential verifier, the token/session issuer
// and the session refresh policy.  Handlers and middleware translate its
// sentinel errors into HTTP responses; the package itself never writes to the
// wire.
package auth

import "errors"

// ErrInvalidCredentials is returned when the email is unknown, the record has
// no password hash, or the password does not match.  The three cases are
// deliberately indistinguishable to callers so responses cannot be used to
// enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrAccountInactive is returned when credentials match but the account is
// deactivated.  The sign-in handler collapses it into the same response body
// as ErrInvalidCredentials; the distinct sentinel exists for logging.
var ErrAccountInactive = errors.New("account inactive")

// ErrUnauthenticated is returned when no session can be resolved for a
// request: missing carrier, expired tokens, or an owning account that no
// longer exists or is inactive.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrForbidden is returned when an authenticated caller lacks the role a
// route requires.
var ErrForbidden = errors.New("forbidden")

// ErrStoreUnavailable wraps transient store failures.  Authorization always
// fails closed on it; it is never treated as "allow".
var ErrStoreUnavailable = errors.New("store unavailable")
