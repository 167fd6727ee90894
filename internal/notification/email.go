package notification

import (
	"context"
	"fmt"
	"sync"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/greensweep/backend/internal/common/logger"
)

// EmailSender delivers a single outbound email.
type EmailSender interface {
	Send(ctx context.Context, msg *EmailMessage) error
}

// SendGridSender sends email through the SendGrid API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	log       logger.Logger
}

func NewSendGridSender(apiKey, fromEmail, fromName string, log logger.Logger) (*SendGridSender, error) {
	if apiKey == "" || fromEmail == "" {
		return nil, fmt.Errorf("incomplete SendGrid configuration")
	}

	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		log:       log,
	}, nil
}

func (s *SendGridSender) Send(ctx context.Context, msg *EmailMessage) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, msg.Body)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected email: status %d", resp.StatusCode)
	}

	s.log.WithFields(map[string]interface{}{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Debug("email sent", nil)

	return nil
}

// MockSender records emails instead of sending them. Used in tests and as the
// default when no email provider is configured.
type MockSender struct {
	mu   sync.Mutex
	Sent []*EmailMessage
}

func NewMockSender() *MockSender {
	return &MockSender{}
}

func (m *MockSender) Send(ctx context.Context, msg *EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, msg)
	return nil
}
