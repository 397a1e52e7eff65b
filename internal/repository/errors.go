// Package repository implements the MySQL-backed stores.  Sentinel errors
// defined here let handlers and the auth core distinguish failure scenarios
// without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row.  The auth core maps
// it onto its own fail-closed sentinels; handlers translate it into 404.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when registration collides with an existing
// email. Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")
