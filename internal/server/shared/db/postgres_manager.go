package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/authcore/internal/server/bannedtokens"
	"github.com/dmitrijs2005/authcore/internal/server/config"
	"github.com/dmitrijs2005/authcore/internal/server/migrations"
	"github.com/dmitrijs2005/authcore/internal/server/twofacodes"
	"github.com/dmitrijs2005/authcore/internal/server/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
)

// PostgresRepositoryManager keeps users in PostgreSQL. Banned tokens and
// pending 2FA codes live in Redis when an address is configured; both
// stores rely on key TTLs for expiry, which memory fallbacks emulate.
type PostgresRepositoryManager struct {
	db           *sql.DB
	redisClient  *redis.Client
	users        users.Repository
	bannedTokens bannedtokens.Store
	twoFACodes   twofacodes.Store
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) BannedTokens() bannedtokens.Store {
	return m.bannedTokens
}

func (m *PostgresRepositoryManager) TwoFACodes() twofacodes.Store {
	return m.twoFACodes
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func (m *PostgresRepositoryManager) Close() error {
	if m.redisClient != nil {
		if err := m.redisClient.Close(); err != nil {
			return err
		}
	}
	return m.db.Close()
}

func NewPostgresRepositoryManager(cfg *config.Config, hasher users.PasswordHasher) (RepositoryManager, error) {

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	users, err := users.NewPostgresRepository(db, hasher)
	if err != nil {
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:    db,
		users: users,
	}

	if cfg.RedisAddr != "" {
		m.redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		m.bannedTokens = bannedtokens.NewRedisStore(m.redisClient)
		m.twoFACodes = twofacodes.NewRedisStore(m.redisClient, cfg.TwoFACodeValidityDuration)
	} else {
		m.bannedTokens = bannedtokens.NewMemoryStore()
		m.twoFACodes = twofacodes.NewMemoryStore(cfg.TwoFACodeValidityDuration)
	}

	err = m.RunMigrations(context.Background())
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
