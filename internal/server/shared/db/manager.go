// Package db selects and wires the storage backends: PostgreSQL plus
// Redis in production, pure in-memory stores for development and tests.
package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authcore/internal/server/bannedtokens"
	"github.com/dmitrijs2005/authcore/internal/server/config"
	"github.com/dmitrijs2005/authcore/internal/server/twofacodes"
	"github.com/dmitrijs2005/authcore/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	BannedTokens() bannedtokens.Store
	TwoFACodes() twofacodes.Store
	Close() error
}

// NewRepositoryManager picks the backend from configuration: an empty
// database DSN selects the in-memory manager.
func NewRepositoryManager(cfg *config.Config, hasher users.PasswordHasher) (RepositoryManager, error) {
	if cfg.DatabaseDSN == "" {
		return NewInMemoryRepositoryManager(cfg, hasher), nil
	}
	return NewPostgresRepositoryManager(cfg, hasher)
}
