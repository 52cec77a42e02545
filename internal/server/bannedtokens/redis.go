package bannedtokens

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authcore/internal/common"
	"github.com/redis/go-redis/v9"
)

// Key prefix prevents collisions with other keyspaces sharing the instance.
const bannedTokenKeyPrefix = "banned_token:"

// RedisStore keeps revocation entries in Redis with a per-entry TTL equal
// to the revoked token's remaining lifetime.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func makeTokenKey(token string) string {
	return bannedTokenKeyPrefix + token
}

func (s *RedisStore) Add(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// The token is already past expiry; validation will reject it
		// without consulting the deny-list.
		return nil
	}

	if err := s.client.Set(ctx, makeTokenKey(token), true, ttl).Err(); err != nil {
		return fmt.Errorf("%w: setting banned token: %w", common.ErrorInternal, err)
	}

	return nil
}

func (s *RedisStore) Contains(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, makeTokenKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: checking banned token: %w", common.ErrorInternal, err)
	}

	return n > 0, nil
}
