package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authcore/internal/common"
	"github.com/dmitrijs2005/authcore/internal/server/domain"
)

// PostgresRepository persists users in the relational users table:
// email (unique key), password_hash (Argon2id-encoded), requires_2fa.
type PostgresRepository struct {
	db     *sql.DB
	hasher PasswordHasher
}

func NewPostgresRepository(db *sql.DB, hasher PasswordHasher) (*PostgresRepository, error) {
	return &PostgresRepository{db: db, hasher: hasher}, nil
}

func (r *PostgresRepository) Add(ctx context.Context, user *domain.User) error {

	exists, err := r.Exists(ctx, user.Email)
	if err != nil {
		return err
	}
	if exists {
		return common.ErrorAlreadyExists
	}

	passwordHash := user.Password.Expose()
	if !user.Password.IsStoredHash() {
		passwordHash, err = r.hasher.Hash(ctx, user.Password.Expose())
		if err != nil {
			return err
		}
	}

	query :=
		`INSERT INTO users (email, password_hash, requires_2fa)
         VALUES ($1, $2, $3)
		 `

	_, err = r.db.ExecContext(ctx, query, user.Email.String(), passwordHash, user.Requires2FA)
	if err != nil {
		return fmt.Errorf("%w: error performing sql request: %w", common.ErrorInternal, err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, email domain.Email) (*domain.User, error) {
	query :=
		`SELECT password_hash, requires_2fa FROM users
		 WHERE email = $1
		 `

	var passwordHash string
	var requires2FA bool

	err := r.db.QueryRowContext(ctx, query, email.String()).Scan(&passwordHash, &requires2FA)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: error performing sql request: %w", common.ErrorInternal, err)
	}

	stored, err := domain.NewStoredPassword(passwordHash)
	if err != nil {
		return nil, fmt.Errorf("%w: rehydrating user %q: %w", common.ErrorInternal, email.String(), err)
	}

	return domain.NewUser(email, stored, requires2FA), nil
}

func (r *PostgresRepository) Exists(ctx context.Context, email domain.Email) (bool, error) {
	query := `SELECT 1 FROM users WHERE email = $1`

	var one int
	err := r.db.QueryRowContext(ctx, query, email.String()).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%w: error performing sql request: %w", common.ErrorInternal, err)
	}

	return true, nil
}

func (r *PostgresRepository) Validate(ctx context.Context, email domain.Email, password domain.Password) (*domain.User, error) {
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
