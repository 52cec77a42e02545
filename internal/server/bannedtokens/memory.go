package bannedtokens

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a plain in-process set. It never expires entries, so it
// is only suitable for tests and single-node development runs.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]time.Time)}
}

func (s *MemoryStore) Add(_ context.Context, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[token] = expiresAt
	return nil
}

func (s *MemoryStore) Contains(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.tokens[token]
	return ok, nil
}

// ExpiresAt returns the recorded expiry for a banned token. Test helper.
func (s *MemoryStore) ExpiresAt(token string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exp, ok := s.tokens[token]
	return exp, ok
}
