package users

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/authcore/internal/common"
	"github.com/dmitrijs2005/authcore/internal/server/domain"
)

type memoryRecord struct {
	passwordHash string
	requires2FA  bool
}

// MemoryRepository is a map-backed credential store for tests and
// development runs. Safe for concurrent readers; writes are exclusive.
type MemoryRepository struct {
	mu     sync.RWMutex
	users  map[string]memoryRecord
	hasher PasswordHasher
}

func NewMemoryRepository(hasher PasswordHasher) *MemoryRepository {
	return &MemoryRepository{
		users:  make(map[string]memoryRecord),
		hasher: hasher,
	}
}

func (r *MemoryRepository) Add(ctx context.Context, user *domain.User) error {
	passwordHash, err := r.storedHash(ctx, user.Password)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email.String()]; ok {
		return common.ErrorAlreadyExists
	}

	r.users[user.Email.String()] = memoryRecord{
		passwordHash: passwordHash,
		requires2FA:  user.Requires2FA,
	}

	return nil
}

func (r *MemoryRepository) Get(_ context.Context, email domain.Email) (*domain.User, error) {
	r.mu.RLock()
	record, ok := r.users[email.String()]
	r.mu.RUnlock()

	if !ok {
		return nil, common.ErrorNotFound
	}

	stored, err := domain.NewStoredPassword(record.passwordHash)
	if err != nil {
		return nil, fmt.Errorf("%w: rehydrating user %q: %w", common.ErrorInternal, email.String(), err)
	}

	return domain.NewUser(email, stored, record.requires2FA), nil
}

func (r *MemoryRepository) Exists(_ context.Context, email domain.Email) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[email.String()]
	return ok, nil
}

func (r *MemoryRepository) Validate(ctx context.Context, email domain.Email, password domain.Password) (*domain.User, error) {
	user, err := r.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := r.hasher.Verify(ctx, user.Password.Expose(), password.Expose()); err != nil {
		if errors.Is(err, common.ErrorInternal) {
			return nil, err
		}
		return nil, common.ErrorIncorrectCredentials
	}

	return user, nil
}

// storedHash hashes a candidate password, or passes a stored hash through
// unchanged when the user was built from an already-hashed value.
func (r *MemoryRepository) storedHash(ctx context.Context, password domain.Password) (string, error) {
	if password.IsStoredHash() {
		return password.Expose(), nil
	}

	hash, err := r.hasher.Hash(ctx, password.Expose())
	if err != nil {
		return "", err
	}

	return hash, nil
}
