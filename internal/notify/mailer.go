package notify

import (
	"context"
	"log/slog"
)

// Email is a rendered message ready for delivery
type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers emails
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// LogMailer writes emails to the log instead of sending them
type LogMailer struct {
	Logger *slog.Logger
}

func (m LogMailer) Send(ctx context.Context, email Email) error {
	log := m.Logger
	if log == nil {
		log = slog.Default()
	}
	log.InfoContext(ctx, "Sending email",
		"to", email.To,
		"subject", email.Subject,
		"body", email.Body,
	)
	return nil
}
