package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authcore/internal/server/bannedtokens"
	"github.com/dmitrijs2005/authcore/internal/server/config"
	"github.com/dmitrijs2005/authcore/internal/server/twofacodes"
	"github.com/dmitrijs2005/authcore/internal/server/users"
)

// InMemoryRepositoryManager backs everything with process-local maps.
// State is lost on restart; any configured Redis address is ignored.
type InMemoryRepositoryManager struct {
	users        users.Repository
	bannedTokens bannedtokens.Store
	twoFACodes   twofacodes.Store
}

func (m InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m InMemoryRepositoryManager) BannedTokens() bannedtokens.Store {
	return m.bannedTokens
}

func (m InMemoryRepositoryManager) TwoFACodes() twofacodes.Store {
	return m.twoFACodes
}

func (m InMemoryRepositoryManager) Close() error {
	return nil
}

func NewInMemoryRepositoryManager(cfg *config.Config, hasher users.PasswordHasher) RepositoryManager {
	return InMemoryRepositoryManager{
		users:        users.NewMemoryRepository(hasher),
		bannedTokens: bannedtokens.NewMemoryStore(),
		twoFACodes:   twofacodes.NewMemoryStore(cfg.TwoFACodeValidityDuration),
	}
}
