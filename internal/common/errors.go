// Package common defines shared constants and sentinel errors used across
// the gophauth server and client. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Credential errors. A single value covers both an unknown username and a
	// wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token errors. ErrInvalidToken covers malformed, forged, expired and
	// revoked tokens alike.
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrUnauthenticated = errors.New("no token provided")
	ErrForbidden       = errors.New("access denied")
)
