package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/authcore/internal/common"
	"github.com/dmitrijs2005/authcore/internal/server/domain"
	"github.com/dmitrijs2005/authcore/internal/server/hashing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHasher keeps sqlmock tests fast: the emitted hash has the exact
// stored shape the re-hydration gate expects, without Argon2id cost.
type fakeHasher struct{}

func validShapedHash() string {
	return "$argon2id$v=19$m=65536,t=4,p=1$" +
		strings.Repeat("a", 22) + "$" + strings.Repeat("A", 43)
}

func (fakeHasher) Hash(_ context.Context, _ string) (string, error) {
	return validShapedHash(), nil
}

func (fakeHasher) Verify(_ context.Context, _, candidate string) error {
	if candidate != "Valid1@Password" {
		return hashing.ErrMismatch
	}
	return nil
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newPostgresRepo(t *testing.T, db *sql.DB) *PostgresRepository {
	t.Helper()
	r, err := NewPostgresRepository(db, fakeHasher{})
	require.NoError(t, err)
	return r
}

const (
	selectOneQuery  = `SELECT 1 FROM users WHERE email = $1`
	selectUserQuery = `SELECT password_hash, requires_2fa FROM users`
	insertUserQuery = `INSERT INTO users (email, password_hash, requires_2fa)`
)

func TestPostgresRepository_Add(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	r := newPostgresRepo(t, db)

	user := newTestUser(t, "email@example.com", "Valid1@Password", false)

	mock.ExpectQuery(regexp.QuoteMeta(selectOneQuery)).
		WithArgs("email@example.com").
		WillReturnError(sql.ErrNoRows)

	mock.ExpectExec(regexp.QuoteMeta(insertUserQuery)).
		WithArgs("email@example.com", validShapedHash(), false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Add(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_AddDuplicate(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	r := newPostgresRepo(t, db)

	user := newTestUser(t, "email@example.com", "Valid1@Password", false)

	mock.ExpectQuery(regexp.QuoteMeta(selectOneQuery)).
		WithArgs("email@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	err := r.Add(context.Background(), user)
	assert.True(t, errors.Is(err, common.ErrorAlreadyExists))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Get(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	r := newPostgresRepo(t, db)

	email, err := domain.ParseEmail("email@example.com")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserQuery)).
		WithArgs("email@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"password_hash", "requires_2fa"}).
			AddRow(validShapedHash(), true))

	user, err := r.Get(context.Background(), email)
	require.NoError(t, err)
	assert.Equal(t, email, user.Email)
	assert.True(t, user.Requires2FA)
	assert.True(t, user.Password.IsStoredHash())
}

func TestPostgresRepository_GetMissing(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	r := newPostgresRepo(t, db)

	email, err := domain.ParseEmail("missing@example.com")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserQuery)).
		WithArgs("missing@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err = r.Get(context.Background(), email)
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestPostgresRepository_GetRejectsMalformedStoredHash(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	r := newPostgresRepo(t, db)

	email, err := domain.ParseEmail("email@example.com")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserQuery)).
		WithArgs("email@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"password_hash", "requires_2fa"}).
			AddRow("$2a$12$not-an-argon2id-hash", false))

	_, err = r.Get(context.Background(), email)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrMalformedHash))
}

func TestPostgresRepository_Validate(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	r := newPostgresRepo(t, db)

	email, err := domain.ParseEmail("email@example.com")
	require.NoError(t, err)

	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"password_hash", "requires_2fa"}).
			AddRow(validShapedHash(), false)
	}

	mock.ExpectQuery(regexp.QuoteMeta(selectUserQuery)).
		WithArgs("email@example.com").
		WillReturnRows(rows())

	correct := newTestUser(t, "email@example.com", "Valid1@Password", false).Password
	wrong := newTestUser(t, "email@example.com", "Other1@Password", false).Password

	user, err := r.Validate(context.Background(), email, correct)
	require.NoError(t, err)
	assert.Equal(t, email, user.Email)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserQuery)).
		WithArgs("email@example.com").
		WillReturnRows(rows())

	_, err = r.Validate(context.Background(), email, wrong)
	assert.True(t, errors.Is(err, common.ErrorIncorrectCredentials))
}
