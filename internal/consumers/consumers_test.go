package consumers

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"gilded/internal/messaging"
	"gilded/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu       sync.Mutex
	requests []models.ConfirmationEmailRequest
	success  bool
}

func (n *recordingNotifier) SendConfirmation(_ context.Context, req models.ConfirmationEmailRequest) models.ConfirmationEmailResult {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests = append(n.requests, req)
	return models.ConfirmationEmailResult{Success: n.success}
}

type fakeBroker struct {
	handlers map[string]messaging.Handler
	closed   bool
}

func (b *fakeBroker) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return b.handlers[subject](payload)
}

func (b *fakeBroker) Subscribe(subject, _ string, handler messaging.Handler) error {
	if b.handlers == nil {
		b.handlers = map[string]messaging.Handler{}
	}
	b.handlers[subject] = handler
	return nil
}

func (b *fakeBroker) Close() error {
	b.closed = true
	return nil
}

func TestHandleBookingConfirmed(t *testing.T) {
	notifier := &recordingNotifier{success: true}
	h := NewHandlers(notifier)

	payload, err := json.Marshal(models.BookingConfirmedEvent{
		UserID:        "u1",
		UserEmail:     "ada@example.com",
		EventID:       "1",
		EventName:     "Starlight Symphony Orchestra",
		EventDate:     "2025-12-15",
		EventLocation: "Grand Park Amphitheater",
		Timestamp:     time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, h.HandleBookingConfirmed(payload))

	require.Len(t, notifier.requests, 1)
	assert.Equal(t, models.ConfirmationEmailRequest{
		UserEmail:     "ada@example.com",
		EventName:     "Starlight Symphony Orchestra",
		EventDate:     "2025-12-15",
		EventLocation: "Grand Park Amphitheater",
	}, notifier.requests[0])
}

func TestHandleBookingConfirmed_DropsBadPayloads(t *testing.T) {
	notifier := &recordingNotifier{}
	h := NewHandlers(notifier)

	assert.NoError(t, h.HandleBookingConfirmed([]byte("{not json")))
	assert.NoError(t, h.HandleBookingConfirmed([]byte(`{"user_id":"u1"}`)))
	assert.Empty(t, notifier.requests)
}

func TestHandleBookingConfirmed_NotifierFailureIsAcked(t *testing.T) {
	h := NewHandlers(&recordingNotifier{success: false})

	payload := []byte(`{"user_email":"ada@example.com","event_name":"Gala"}`)
	assert.NoError(t, h.HandleBookingConfirmed(payload))
}

func TestConsumerService_SubscribesAndShutsDown(t *testing.T) {
	notifier := &recordingNotifier{success: true}
	broker := &fakeBroker{}
	cs := NewConsumerServiceWith(broker, NewHandlers(notifier))

	require.NoError(t, cs.Start())
	require.NoError(t, broker.Publish(models.EventBookingConfirmed, models.BookingConfirmedEvent{
		UserEmail: "ada@example.com",
		EventName: "Gala",
	}))
	assert.Len(t, notifier.requests, 1)

	require.NoError(t, cs.Shutdown(context.Background()))
	assert.True(t, broker.closed)
}
