// Package notify produces and delivers booking confirmation emails.
package notify

import (
	"context"
	"strings"
	"text/template"

	"gilded/internal/ai"
	"gilded/internal/logger"
	"gilded/internal/metrics"
	"gilded/internal/models"
)

const (
	fieldSubject = "subject"
	fieldBody    = "body"
)

var promptTemplate = template.Must(template.New("confirmation").Parse(
	`You are an event booking confirmation assistant.
Generate a subject and a friendly and professional email body for an event booking confirmation.

Event Name: {{.EventName}}
Event Date: {{.EventDate}}
Event Location: {{.EventLocation}}

The user's email is {{.UserEmail}}.

The email should confirm their booking, thank them for their reservation, and provide the key event details.

Output the subject and body in JSON format.`))

// Notifier sends confirmation emails. It never returns an error: the outcome
// is reported through ConfirmationEmailResult.Success.
type Notifier struct {
	generator ai.Generator
	mailer    Mailer
}

func NewNotifier(generator ai.Generator, mailer Mailer) *Notifier {
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &Notifier{generator: generator, mailer: mailer}
}

func (n *Notifier) SendConfirmation(ctx context.Context, req models.ConfirmationEmailRequest) models.ConfirmationEmailResult {
	log := logger.WithContext(ctx).With("event_name", req.EventName)

	var prompt strings.Builder
	if err := promptTemplate.Execute(&prompt, req); err != nil {
		log.Error("Failed to render confirmation prompt", "error", err)
		return n.result(false)
	}

	out, err := n.generator.Generate(ctx, prompt.String(), fieldSubject, fieldBody)
	metrics.Generations.WithLabelValues("confirmation_email", metrics.Outcome(err)).Inc()
	if err != nil {
		log.Error("Failed to generate email content", "error", err)
		return n.result(false)
	}

	if err := n.mailer.Send(ctx, Email{
		To:      req.UserEmail,
		Subject: out[fieldSubject],
		Body:    out[fieldBody],
	}); err != nil {
		log.Error("Failed to send confirmation email", "error", err)
		return n.result(false)
	}

	return n.result(true)
}

func (n *Notifier) result(success bool) models.ConfirmationEmailResult {
	if success {
		metrics.Notifications.WithLabelValues(metrics.OutcomeSuccess).Inc()
	} else {
		metrics.Notifications.WithLabelValues(metrics.OutcomeFailure).Inc()
	}
	return models.ConfirmationEmailResult{Success: success}
}
