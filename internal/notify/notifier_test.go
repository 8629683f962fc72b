package notify

import (
	"context"
	"errors"
	"testing"

	"gilded/internal/ai"
	"gilded/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent []Email
	err  error
}

func (m *recordingMailer) Send(_ context.Context, email Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

var request = models.ConfirmationEmailRequest{
	UserEmail:     "ada@example.com",
	EventName:     "Starlight Symphony Orchestra",
	EventDate:     "2025-12-15",
	EventLocation: "Grand Park Amphitheater",
}

func TestSendConfirmation_Success(t *testing.T) {
	var prompt string
	gen := ai.GeneratorFunc(func(_ context.Context, p string, fields ...string) (map[string]string, error) {
		prompt = p
		assert.Equal(t, []string{"subject", "body"}, fields)
		return map[string]string{"subject": "You're going!", "body": "See you there."}, nil
	})
	mailer := &recordingMailer{}

	result := NewNotifier(gen, mailer).SendConfirmation(context.Background(), request)

	assert.True(t, result.Success)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, Email{To: "ada@example.com", Subject: "You're going!", Body: "See you there."}, mailer.sent[0])
	assert.Contains(t, prompt, "Event Name: Starlight Symphony Orchestra")
	assert.Contains(t, prompt, "The user's email is ada@example.com.")
}

func TestSendConfirmation_GeneratorFailure(t *testing.T) {
	gen := ai.GeneratorFunc(func(context.Context, string, ...string) (map[string]string, error) {
		return nil, ai.ErrMalformedOutput
	})
	mailer := &recordingMailer{}

	result := NewNotifier(gen, mailer).SendConfirmation(context.Background(), request)

	assert.False(t, result.Success)
	assert.Empty(t, mailer.sent)
}

func TestSendConfirmation_MailerFailure(t *testing.T) {
	gen := ai.GeneratorFunc(func(context.Context, string, ...string) (map[string]string, error) {
		return map[string]string{"subject": "s", "body": "b"}, nil
	})

	result := NewNotifier(gen, &recordingMailer{err: errors.New("smtp down")}).SendConfirmation(context.Background(), request)

	assert.False(t, result.Success)
}

func TestSendConfirmation_DefaultMailerLogs(t *testing.T) {
	gen := ai.GeneratorFunc(func(context.Context, string, ...string) (map[string]string, error) {
		return map[string]string{"subject": "s", "body": "b"}, nil
	})

	result := NewNotifier(gen, nil).SendConfirmation(context.Background(), request)

	assert.True(t, result.Success)
}
