// Package mailer sends the notification email for a contact submission.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/model"
)

// ErrNotConfigured is returned when a sender lacks the settings it needs.
var ErrNotConfigured = errors.New("mailer: not configured")

// Message is a plain-text email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Body    string
}

// Sender abstracts email delivery for DI and testing.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender builds the Sender selected by cfg.Provider.
func NewSender(cfg config.MailConfig) (Sender, error) {
	switch cfg.Provider {
	case config.MailProviderSMTP, "":
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password)
	case config.MailProviderMailgun:
		return NewMailgunSender(cfg.MailgunDomain, cfg.MailgunAPIKey)
	default:
		return nil, fmt.Errorf("mailer: unknown provider %q", cfg.Provider)
	}
}

// ContactNotification builds the owner notification for msg.
func ContactNotification(from, to string, msg *model.ContactMessage) Message {
	var b strings.Builder
	b.WriteString("Name: ")
	b.WriteString(msg.Name)
	b.WriteString("\nEmail: ")
	b.WriteString(msg.Email)
	b.WriteString("\nSubject: ")
	b.WriteString(msg.Subject)
	b.WriteString("\n\nMessage:\n")
	b.WriteString(msg.Message)
	b.WriteString("\n")

	return Message{
		From:    from,
		To:      []string{to},
		ReplyTo: msg.Email,
		Subject: "New Portfolio Contact: " + msg.Subject,
		Body:    b.String(),
	}
}

// headerValue strips line breaks so user input cannot add headers.
func headerValue(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool { return r == '\r' || r == '\n' }), " ")
}
