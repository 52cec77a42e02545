package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authcore/internal/common"
	"github.com/dmitrijs2005/authcore/internal/secret"
	"github.com/dmitrijs2005/authcore/internal/server/bannedtokens"
	"github.com/dmitrijs2005/authcore/internal/server/config"
)

// Service is the token service. The signing key is process-wide and
// read-only after construction; it must never be logged or serialized.
type Service struct {
	secretKey             []byte
	tokenValidityDuration time.Duration
	banned                bannedtokens.Store
}

func NewService(banned bannedtokens.Store, cfg *config.Config) *Service {
	return &Service{
		secretKey:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		banned:                banned,
	}
}

// Issue produces a signed session token with subject = email and
// expiry = now + the configured validity duration.
func (s *Service) Issue(_ context.Context, email string) (secret.String, error) {
	token, err := GenerateToken(email, s.secretKey, s.tokenValidityDuration)
	if err != nil {
		return secret.String{}, fmt.Errorf("%w: signing token: %w", common.ErrorInternal, err)
	}

	return secret.New(token), nil
}

// Validate checks a token and returns the embedded email. Cryptographic
// integrity and expiry are checked before the revocation store is
// consulted, so tokens that are already invalid cost no store round trip.
func (s *Service) Validate(ctx context.Context, token string) (string, error) {
	claims, err := ParseToken(token, s.secretKey)
	if err != nil {
		return "", err
	}

	banned, err := s.banned.Contains(ctx, token)
	if err != nil {
		return "", err
	}
	if banned {
		return "", common.ErrTokenRevoked
	}

	return claims.Email, nil
}

// Revoke inserts the token into the deny-list. The entry expires at the
// token's own (already-verified) expiry, so it never outlives the token
// it revokes. Revoking the same token twice is not an error.
func (s *Service) Revoke(ctx context.Context, token string) error {
	claims, err := ParseToken(token, s.secretKey)
	if err != nil {
		return err
	}

	return s.banned.Add(ctx, token, claims.ExpiresAt.Time)
}
