// Package users owns credential records. Implementations hash candidate
// passwords on insert and verify candidates on login through the password
// hasher; stored hashes re-hydrated from a backing store must pass the
// strict encoding gate before they are accepted as users.
package users

import (
	"context"

	"github.com/dmitrijs2005/authcore/internal/server/domain"
)

// PasswordHasher is the hashing capability the store depends on.
// Satisfied by hashing.Argon2Hasher.
type PasswordHasher interface {
	Hash(ctx context.Context, candidate string) (string, error)
	Verify(ctx context.Context, encoded, candidate string) error
}

type Repository interface {
	// Add persists a new user, hashing the candidate password. It fails
	// with common.ErrorAlreadyExists when the email is present.
	Add(ctx context.Context, user *domain.User) error

	// Get returns the stored user or common.ErrorNotFound.
	Get(ctx context.Context, email domain.Email) (*domain.User, error)

	// Exists reports whether a user record exists for the email.
	Exists(ctx context.Context, email domain.Email) (bool, error)

	// Validate authenticates a candidate password. It fails with
	// common.ErrorNotFound when the email is absent and
	// common.ErrorIncorrectCredentials when verification fails.
	//
	// Known limitation, preserved deliberately: the two failures are
	// distinct, and hash verification only runs on the found-user path,
	// so response latency differs between them. The sessions boundary
	// collapses both into one generic rejection; this store does not.
	Validate(ctx context.Context, email domain.Email, password domain.Password) (*domain.User, error)
}
