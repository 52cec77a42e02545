package twofacodes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authcore/internal/common"
	"github.com/dmitrijs2005/authcore/internal/server/domain"
	"github.com/redis/go-redis/v9"
)

// Key prefix prevents collisions with other keyspaces sharing the instance.
const twoFACodeKeyPrefix = "two_fa_code:"

// RedisStore keeps pending challenges in Redis. The stored value is a
// two-element JSON array ["<attempt-id>","<code>"] and the key expires
// after the configured TTL. GETDEL gives Consume per-key atomicity: two
// racing verification attempts cannot both observe the same challenge.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func make2FAKey(email domain.Email) string {
	return twoFACodeKeyPrefix + email.String()
}

func (s *RedisStore) Create(ctx context.Context, email domain.Email) (domain.LoginAttemptID, domain.TwoFACode, error) {
	id := domain.NewLoginAttemptID()
	code := domain.NewTwoFACode()

	value, err := json.Marshal([2]string{id.String(), code.Expose()})
	if err != nil {
		return domain.LoginAttemptID{}, domain.TwoFACode{}, fmt.Errorf("%w: encoding 2FA tuple: %w", common.ErrorInternal, err)
	}

	if err := s.client.Set(ctx, make2FAKey(email), value, s.ttl).Err(); err != nil {
		return domain.LoginAttemptID{}, domain.TwoFACode{}, fmt.Errorf("%w: setting 2FA code: %w", common.ErrorInternal, err)
	}

	return id, code, nil
}

func (s *RedisStore) Consume(ctx context.Context, email domain.Email, id domain.LoginAttemptID, code domain.TwoFACode) error {
	value, err := s.client.GetDel(ctx, make2FAKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("%w: fetching 2FA code: %w", common.ErrorInternal, err)
	}

	var tuple [2]string
	if err := json.Unmarshal([]byte(value), &tuple); err != nil {
		return fmt.Errorf("%w: decoding 2FA tuple: %w", common.ErrorInternal, err)
	}

	storedID, err := domain.ParseLoginAttemptID(tuple[0])
	if err != nil {
		return fmt.Errorf("%w: stored attempt id is corrupt", common.ErrorInternal)
	}

	storedCode, err := domain.ParseTwoFACode(tuple[1])
	if err != nil {
		return fmt.Errorf("%w: stored 2FA code is corrupt", common.ErrorInternal)
	}

	if !storedID.Equal(id) || !storedCode.Equal(code) {
		return common.ErrorIncorrectCredentials
	}

	return nil
}

func (s *RedisStore) Remove(ctx context.Context, email domain.Email) error {
	if err := s.client.Del(ctx, make2FAKey(email)).Err(); err != nil {
		return fmt.Errorf("%w: deleting 2FA code: %w", common.ErrorInternal, err)
	}
	return nil
}
