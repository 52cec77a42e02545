package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/authcore/internal/common"
	"github.com/dmitrijs2005/authcore/internal/secret"
)

// StoredHashPattern is the exact shape of an Argon2id hash this service
// produces and accepts back from storage. Anything else is rejected when
// re-hydrating a user.
const StoredHashPattern = `^\$argon2id\$v=19\$m=65536,t=4,p=1\$[A-Za-z0-9+/]{22}\$[A-Za-z0-9+/]{43}$`

var storedHashRegexp = regexp.MustCompile(StoredHashPattern)

// Password is either a plaintext candidate that satisfied the password
// policy, or an already-hashed stored form. The stored form is only
// constructible through NewStoredPassword; a hash submitted as user input
// is rejected so a leaked hash can never be replayed as a password.
type Password struct {
	value  secret.String
	stored bool
}

// ParsePassword validates a plaintext candidate against the policy:
// non-empty, at least 8 characters, at least one lowercase letter, one
// uppercase letter, one digit and one non-alphanumeric character.
func ParsePassword(raw secret.String) (Password, error) {
	pw := strings.TrimSpace(raw.Expose())

	if storedHashRegexp.MatchString(pw) {
		return Password{}, fmt.Errorf("%w: password hash is not accepted as a candidate", common.ErrorValidation)
	}

	switch {
	case pw == "":
		return Password{}, fmt.Errorf("%w: password cannot be empty", common.ErrorValidation)
	case len([]rune(pw)) < 8:
		return Password{}, fmt.Errorf("%w: password must be at least 8 characters long", common.ErrorValidation)
	case !containsFunc(pw, unicode.IsLower):
		return Password{}, fmt.Errorf("%w: password must contain a lowercase letter", common.ErrorValidation)
	case !containsFunc(pw, unicode.IsUpper):
		return Password{}, fmt.Errorf("%w: password must contain an uppercase letter", common.ErrorValidation)
	case !containsFunc(pw, unicode.IsDigit):
		return Password{}, fmt.Errorf("%w: password must contain a digit", common.ErrorValidation)
	case !containsFunc(pw, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }):
		return Password{}, fmt.Errorf("%w: password must contain a special character", common.ErrorValidation)
	}

	return Password{value: secret.New(pw)}, nil
}

// NewStoredPassword wraps an Argon2id hash string loaded from storage.
// The encoding must match StoredHashPattern exactly.
func NewStoredPassword(encoded string) (Password, error) {
	if !storedHashRegexp.MatchString(encoded) {
		return Password{}, common.ErrMalformedHash
	}
	return Password{value: secret.New(encoded), stored: true}, nil
}

// Expose returns the wrapped value: the plaintext candidate or the
// encoded hash, depending on how the Password was constructed.
func (p Password) Expose() string {
	return p.value.Expose()
}

// IsStoredHash reports whether this Password carries an encoded hash
// rather than a plaintext candidate.
func (p Password) IsStoredHash() bool {
	return p.stored
}

func containsFunc(s string, f func(rune) bool) bool {
	for _, r := range s {
		if f(r) {
			return true
		}
	}
	return false
}
