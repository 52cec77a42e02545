// Package bannedtokens tracks explicitly revoked session tokens. An entry
// lives exactly as long as the token it revokes, which bounds the size of
// the deny-list independent of traffic volume.
package bannedtokens

import (
	"context"
	"time"
)

// Store is the revocation deny-list. A Contains racing an in-flight Add
// may transiently return false; the cost of the miss is bounded by the
// token's own TTL.
type Store interface {
	// Add records a revoked token. The entry expires at expiresAt, which
	// callers set to the token's own expiry.
	Add(ctx context.Context, token string, expiresAt time.Time) error

	// Contains reports whether the token has been revoked.
	Contains(ctx context.Context, token string) (bool, error)
}
