package mailer

import (
	"context"
	"fmt"

	mailgun "github.com/mailgun/mailgun-go/v5"
)

// MailgunSender delivers mail through the Mailgun HTTP API.
type MailgunSender struct {
	domain string
	mg     mailgun.Mailgun
}

// NewMailgunSender creates a Mailgun-backed Sender for domain.
func NewMailgunSender(domain, apiKey string) (*MailgunSender, error) {
	if domain == "" || apiKey == "" {
		return nil, fmt.Errorf("%w: mailgun domain and API key are required", ErrNotConfigured)
	}
	return &MailgunSender{domain: domain, mg: mailgun.NewMailgun(apiKey)}, nil
}

func (s *MailgunSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("%w: no recipient", ErrNotConfigured)
	}

	m := mailgun.NewMessage(s.domain, msg.From, headerValue(msg.Subject), msg.Body)
	for _, to := range msg.To {
		if err := m.AddRecipient(to); err != nil {
			return fmt.Errorf("add recipient: %w", err)
		}
	}
	if msg.ReplyTo != "" {
		m.SetReplyTo(headerValue(msg.ReplyTo))
	}

	if _, err := s.mg.Send(ctx, m); err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	return nil
}
