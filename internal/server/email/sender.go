// Package email delivers one-time codes to users. The production
// implementation posts through the Postmark transactional API; the mock
// records messages for tests.
package email

import (
	"context"

	"github.com/dmitrijs2005/authcore/internal/server/domain"
)

type Sender interface {
	Send(ctx context.Context, recipient domain.Email, subject string, body string) error
}
