package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"

	"github.com/dmitrijs2005/authcore/internal/common"
	"github.com/dmitrijs2005/authcore/internal/secret"
	"github.com/google/uuid"
)

// LoginAttemptID names one pending 2FA challenge. It is a random UUIDv4
// and is the only challenge component that crosses the external boundary.
type LoginAttemptID struct {
	id string
}

func NewLoginAttemptID() LoginAttemptID {
	return LoginAttemptID{id: uuid.NewString()}
}

// ParseLoginAttemptID validates a client-supplied attempt id.
func ParseLoginAttemptID(raw string) (LoginAttemptID, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return LoginAttemptID{}, fmt.Errorf("%w: invalid login attempt id", common.ErrorValidation)
	}
	return LoginAttemptID{id: parsed.String()}, nil
}

func (l LoginAttemptID) String() string {
	return l.id
}

func (l LoginAttemptID) Equal(other LoginAttemptID) bool {
	return l.id == other.id
}

var twoFACodeRegexp = regexp.MustCompile(`^\d{6}$`)

// TwoFACode is a 6-digit challenge code, uniformly random over
// 100000–999999. The value is secret: it travels to the user through the
// notification channel only and never appears in logs or responses.
type TwoFACode struct {
	code secret.String
}

func NewTwoFACode() TwoFACode {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		panic(err)
	}
	return TwoFACode{code: secret.New(fmt.Sprintf("%06d", n.Int64()+100000))}
}

// ParseTwoFACode validates a client-supplied code.
func ParseTwoFACode(raw string) (TwoFACode, error) {
	if !twoFACodeRegexp.MatchString(raw) {
		return TwoFACode{}, fmt.Errorf("%w: invalid 2FA code", common.ErrorValidation)
	}
	return TwoFACode{code: secret.New(raw)}, nil
}

// Expose returns the code digits for delivery or storage.
func (c TwoFACode) Expose() string {
	return c.code.Expose()
}

func (c TwoFACode) Equal(other TwoFACode) bool {
	return c.code.Equal(other.code)
}

func (c TwoFACode) String() string {
	return c.code.String()
}
