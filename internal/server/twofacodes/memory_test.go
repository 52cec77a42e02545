package twofacodes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/authcore/internal/common"
	"github.com/dmitrijs2005/authcore/internal/server/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEmail(t *testing.T) domain.Email {
	t.Helper()
	email, err := domain.ParseEmail("email@example.com")
	require.NoError(t, err)
	return email
}

func TestMemoryStore_CreateConsume(t *testing.T) {
	s := NewMemoryStore(600 * time.Second)
	ctx := context.Background()
	email := testEmail(t)

	id, code, err := s.Create(ctx, email)
	require.NoError(t, err)

	assert.NoError(t, s.Consume(ctx, email, id, code))
}

func TestMemoryStore_ConsumeWithoutChallenge(t *testing.T) {
	s := NewMemoryStore(600 * time.Second)

	err := s.Consume(context.Background(), testEmail(t), domain.NewLoginAttemptID(), domain.NewTwoFACode())
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestMemoryStore_SingleAttemptPolicy(t *testing.T) {
	s := NewMemoryStore(600 * time.Second)
	ctx := context.Background()
	email := testEmail(t)

	id, code, err := s.Create(ctx, email)
	require.NoError(t, err)

	// A failed attempt spends the challenge: retrying afterwards with the
	// correct values is rejected as not found.
	wrongID := domain.NewLoginAttemptID()
	err = s.Consume(ctx, email, wrongID, code)
	assert.True(t, errors.Is(err, common.ErrorIncorrectCredentials))

	err = s.Consume(ctx, email, id, code)
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestMemoryStore_RepeatConsumeAfterSuccess(t *testing.T) {
	s := NewMemoryStore(600 * time.Second)
	ctx := context.Background()
	email := testEmail(t)

	id, code, err := s.Create(ctx, email)
	require.NoError(t, err)

	require.NoError(t, s.Consume(ctx, email, id, code))

	err = s.Consume(ctx, email, id, code)
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestMemoryStore_CreateOverwritesPendingChallenge(t *testing.T) {
	s := NewMemoryStore(600 * time.Second)
	ctx := context.Background()
	email := testEmail(t)

	oldID, oldCode, err := s.Create(ctx, email)
	require.NoError(t, err)

	newID, newCode, err := s.Create(ctx, email)
	require.NoError(t, err)

	// The old attempt id and code are permanently unusable.
	err = s.Consume(ctx, email, oldID, oldCode)
	assert.True(t, errors.Is(err, common.ErrorIncorrectCredentials))

	// The new pair would have succeeded, but the failed attempt above
	// already spent the challenge.
	err = s.Consume(ctx, email, newID, newCode)
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestMemoryStore_ExpiredChallengeIsAbsent(t *testing.T) {
	s := NewMemoryStore(600 * time.Second)
	ctx := context.Background()
	email := testEmail(t)

	id, code, err := s.Create(ctx, email)
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(601 * time.Second) }

	err = s.Consume(ctx, email, id, code)
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestMemoryStore_RemoveIsIdempotent(t *testing.T) {
	s := NewMemoryStore(600 * time.Second)
	ctx := context.Background()
	email := testEmail(t)

	_, _, err := s.Create(ctx, email)
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, email))
	require.NoError(t, s.Remove(ctx, email))

	err = s.Consume(ctx, email, domain.NewLoginAttemptID(), domain.NewTwoFACode())
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}
