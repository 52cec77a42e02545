// Package common defines shared constants and sentinel errors used across
// the authcore components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Validation errors (rejected before any store is touched).
	ErrorValidation = errors.New("validation error")

	// Authentication errors.
	ErrorIncorrectCredentials = errors.New("incorrect credentials")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")

	// Corrupt or foreign password-hash encoding. Never distinguished from
	// a wrong password outside the hashing component.
	ErrMalformedHash = errors.New("malformed password hash")

	// Generic internal failure. The underlying cause is wrapped for
	// diagnostics but never shown to an external caller.
	ErrorInternal = errors.New("internal error")
)
