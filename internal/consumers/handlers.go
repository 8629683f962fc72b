package consumers

import (
	"context"
	"encoding/json"
	"log/slog"

	"gilded/internal/logger"
	"gilded/internal/models"
)

// ConfirmationSender is the Confirmation Notifier
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, req models.ConfirmationEmailRequest) models.ConfirmationEmailResult
}

type Handlers struct {
	notifier ConfirmationSender
}

func NewHandlers(notifier ConfirmationSender) *Handlers {
	return &Handlers{notifier: notifier}
}

// HandleBookingConfirmed sends the confirmation email for a booking.
// Malformed payloads are dropped; a failed email is logged but still
// acknowledged since the notifier outcome never affects the booking.
func (h *Handlers) HandleBookingConfirmed(data []byte) error {
	var event models.BookingConfirmedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		slog.Error("Failed to unmarshal booking confirmed event", "error", err)
		return nil
	}
	if event.UserEmail == "" || event.EventName == "" {
		slog.Error("Booking confirmed event is incomplete", "event", event)
		return nil
	}

	log := logger.WithFields("user_id", event.UserID, "event_id", event.EventID)
	log.Info("Processing booking confirmed event")

	result := h.notifier.SendConfirmation(context.Background(), event.EmailRequest())
	if !result.Success {
		log.Warn("Confirmation email was not sent")
	}
	return nil
}
