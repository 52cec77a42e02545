package email

import (
	"context"

	"github.com/dmitrijs2005/authcore/internal/logging"
	"github.com/dmitrijs2005/authcore/internal/server/domain"
)

// LogSender writes messages to the log instead of delivering them. Used
// when no server token is configured, so local runs can complete the 2FA
// flow by reading the code off the log.
type LogSender struct {
	logger logging.Logger
}

func NewLogSender(l logging.Logger) *LogSender {
	return &LogSender{logger: l.With("module", "email")}
}

func (s *LogSender) Send(ctx context.Context, recipient domain.Email, subject string, body string) error {
	s.logger.Info(ctx, "email not configured, logging message instead",
		"to", recipient.String(), "subject", subject, "body", body)
	return nil
}
