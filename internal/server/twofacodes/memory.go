package twofacodes

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/authcore/internal/common"
	"github.com/dmitrijs2005/authcore/internal/server/domain"
)

type memoryEntry struct {
	id       domain.LoginAttemptID
	code     domain.TwoFACode
	deadline time.Time
}

// MemoryStore keeps pending challenges in a mutex-guarded map. Expired
// entries are treated as absent on read; nothing sweeps them in the
// background, so this implementation is for tests and development runs.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, email domain.Email) (domain.LoginAttemptID, domain.TwoFACode, error) {
	id := domain.NewLoginAttemptID()
	code := domain.NewTwoFACode()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[email.String()] = memoryEntry{
		id:       id,
		code:     code,
		deadline: s.now().Add(s.ttl),
	}

	return id, code, nil
}

func (s *MemoryStore) Consume(_ context.Context, email domain.Email, id domain.LoginAttemptID, code domain.TwoFACode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email.String()]
	if !ok {
		return common.ErrorNotFound
	}

	// Spent regardless of the comparison outcome below.
	delete(s.entries, email.String())

	if s.now().After(entry.deadline) {
		return common.ErrorNotFound
	}

	if !entry.id.Equal(id) || !entry.code.Equal(code) {
		return common.ErrorIncorrectCredentials
	}

	return nil
}

func (s *MemoryStore) Remove(_ context.Context, email domain.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, email.String())
	return nil
}
