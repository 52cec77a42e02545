// Package twofacodes holds pending 2FA challenges keyed by email. A
// challenge is a (login attempt id, 6-digit code) pair with a fixed TTL;
// at most one challenge is live per email, and creating a new one
// overwrites any prior pending challenge.
//
// Consumption is single-attempt: Consume deletes the stored pair before
// comparing it to the supplied values, so one verification attempt, right
// or wrong, spends the challenge. A brute-force guess therefore costs the
// attacker the challenge itself.
package twofacodes

import (
	"context"

	"github.com/dmitrijs2005/authcore/internal/server/domain"
)

type Store interface {
	// Create generates a fresh random attempt id and code and stores them
	// for the email, overwriting any existing challenge.
	Create(ctx context.Context, email domain.Email) (domain.LoginAttemptID, domain.TwoFACode, error)

	// Consume fetches and deletes the pending challenge, then compares
	// both the attempt id and the code for exact equality. It returns
	// common.ErrorNotFound when no challenge exists (expired, spent, or
	// never created) and common.ErrorIncorrectCredentials on a mismatch.
	Consume(ctx context.Context, email domain.Email, id domain.LoginAttemptID, code domain.TwoFACode) error

	// Remove deletes any pending challenge for the email. Idempotent.
	Remove(ctx context.Context, email domain.Email) error
}
