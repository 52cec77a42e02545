package domain

import (
	"errors"
	"regexp"
	"testing"

	"github.com/dmitrijs2005/authcore/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoginAttemptID_IsRandomUUID(t *testing.T) {
	a := NewLoginAttemptID()
	b := NewLoginAttemptID()

	assert.False(t, a.Equal(b))

	parsed, err := ParseLoginAttemptID(a.String())
	require.NoError(t, err)
	assert.True(t, a.Equal(parsed))
}

func TestParseLoginAttemptID_Invalid(t *testing.T) {
	for _, raw := range []string{"", "not-a-uuid", "123456"} {
		_, err := ParseLoginAttemptID(raw)
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrorValidation))
	}
}

func TestNewTwoFACode_Format(t *testing.T) {
	re := regexp.MustCompile(`^\d{6}$`)

	for i := 0; i < 100; i++ {
		code := NewTwoFACode()
		assert.Regexp(t, re, code.Expose())
		assert.GreaterOrEqual(t, code.Expose(), "100000")
	}
}

func TestParseTwoFACode(t *testing.T) {
	code, err := ParseTwoFACode("123456")
	require.NoError(t, err)
	assert.Equal(t, "123456", code.Expose())

	for _, raw := range []string{"", "12345", "1234567", "12345a", "abcdef"} {
		_, err := ParseTwoFACode(raw)
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrorValidation))
	}
}

func TestTwoFACode_DoesNotPrintValue(t *testing.T) {
	code := NewTwoFACode()
	assert.NotContains(t, code.String(), code.Expose())
}

func TestTwoFACode_Equal(t *testing.T) {
	a, err := ParseTwoFACode("123456")
	require.NoError(t, err)
	b, err := ParseTwoFACode("123456")
	require.NoError(t, err)
	c, err := ParseTwoFACode("654321")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
