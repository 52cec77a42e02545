package email

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/authcore/internal/server/domain"
)

// SentMessage is one message captured by the mock sender.
type SentMessage struct {
	Recipient domain.Email
	Subject   string
	Body      string
}

// MockSender records messages instead of delivering them. Setting Err
// makes every Send fail with that error.
type MockSender struct {
	mu       sync.Mutex
	messages []SentMessage
	Err      error
}

func NewMockSender() *MockSender {
	return &MockSender{}
}

func (s *MockSender) Send(_ context.Context, recipient domain.Email, subject string, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	s.messages = append(s.messages, SentMessage{
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
	})

	return nil
}

// Messages returns a copy of everything sent so far.
func (s *MockSender) Messages() []SentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SentMessage, len(s.messages))
	copy(out, s.messages)
	return out
}
