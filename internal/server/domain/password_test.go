package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/authcore/internal/common"
	"github.com/dmitrijs2005/authcore/internal/secret"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStoredHash() string {
	return "$argon2id$v=19$m=65536,t=4,p=1$" +
		strings.Repeat("a", 22) + "$" + strings.Repeat("A", 43)
}

func TestParsePassword_Valid(t *testing.T) {
	valid := []string{
		"Valid1@Password",
		"AnotherValid2#Password",
		"Abc12345!",
	}

	for _, raw := range valid {
		p, err := ParsePassword(secret.New(raw))
		require.NoError(t, err, "expected %q to satisfy the policy", raw)
		assert.Equal(t, raw, p.Expose())
		assert.False(t, p.IsStoredHash())
	}
}

func TestParsePassword_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"short",
		"NoDigits@Password",
		"nouppercase1@",
		"NOLOWERCASE1@",
		"NoSpecialChar1",
	}

	for _, raw := range invalid {
		_, err := ParsePassword(secret.New(raw))
		require.Error(t, err, "expected %q to be rejected", raw)
		assert.True(t, errors.Is(err, common.ErrorValidation))
	}
}

func TestParsePassword_RejectsHashAsCandidate(t *testing.T) {
	_, err := ParsePassword(secret.New(sampleStoredHash()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func TestNewStoredPassword(t *testing.T) {
	p, err := NewStoredPassword(sampleStoredHash())
	require.NoError(t, err)
	assert.True(t, p.IsStoredHash())
	assert.Equal(t, sampleStoredHash(), p.Expose())
}

func TestNewStoredPassword_RejectsForeignFormats(t *testing.T) {
	malformed := []string{
		"",
		"Valid1@Password",
		"$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW",
		"$argon2i$v=19$m=65536,t=4,p=1$" + strings.Repeat("a", 22) + "$" + strings.Repeat("A", 43),
		"$argon2id$v=19$m=65536,t=4,p=1$tooshort$hash",
	}

	for _, raw := range malformed {
		_, err := NewStoredPassword(raw)
		require.Error(t, err, "expected %q to be rejected", raw)
		assert.True(t, errors.Is(err, common.ErrMalformedHash))
	}
}
