package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authcore/internal/common"
	"github.com/dmitrijs2005/authcore/internal/server/config"
	"github.com/dmitrijs2005/authcore/internal/server/domain"
)

const (
	serverTokenHeader  = "X-Postmark-Server-Token"
	defaultSendTimeout = 10 * time.Second
)

// PostmarkSender posts single transactional messages to the Postmark
// /email endpoint. The server token authenticates every request.
type PostmarkSender struct {
	client      *http.Client
	baseURL     string
	serverToken string
	sender      string
}

type postmarkMessage struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	TextBody string `json:"TextBody"`
}

func NewPostmarkSender(cfg *config.Config) *PostmarkSender {
	return &PostmarkSender{
		client:      &http.Client{Timeout: defaultSendTimeout},
		baseURL:     cfg.EmailBaseURL,
		serverToken: cfg.EmailServerToken,
		sender:      cfg.EmailSender,
	}
}

func (s *PostmarkSender) Send(ctx context.Context, recipient domain.Email, subject string, body string) error {
	message := postmarkMessage{
		From:     s.sender,
		To:       recipient.String(),
		Subject:  subject,
		TextBody: body,
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%w: error marshalling email payload: %w", common.ErrorInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: error creating email request: %w", common.ErrorInternal, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(serverTokenHeader, s.serverToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: error sending email request: %w", common.ErrorInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: email endpoint returned %d: %s", common.ErrorInternal, resp.StatusCode, detail)
	}

	return nil
}
