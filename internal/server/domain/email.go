// Package domain contains the value types of the identity core: validated
// email addresses, password candidates and stored hashes, users, and the
// two pieces of a pending 2FA challenge.
package domain

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/authcore/internal/common"
)

// Email is a validated, trimmed address. It is comparable and used as the
// primary key for users and for pending 2FA challenges; equality is
// case-sensitive on the normalized form.
type Email struct {
	addr string
}

// ParseEmail trims the input and validates it as an address. An empty or
// malformed value is a validation error.
func ParseEmail(raw string) (Email, error) {
	addr := strings.TrimSpace(raw)

	if addr == "" {
		return Email{}, fmt.Errorf("%w: email cannot be empty", common.ErrorValidation)
	}

	if _, err := mail.ParseAddress(addr); err != nil {
		return Email{}, fmt.Errorf("%w: invalid email format", common.ErrorValidation)
	}

	return Email{addr: addr}, nil
}

func (e Email) String() string {
	return e.addr
}

func (e Email) IsZero() bool {
	return e.addr == ""
}
