package service

import (
	"context"
	"sync"

	"gilded/internal/logger"
	"gilded/internal/messaging"
	"gilded/internal/models"
)

// ConfirmationSender is the Confirmation Notifier
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, req models.ConfirmationEmailRequest) models.ConfirmationEmailResult
}

// ConfirmationDispatcher hands booking confirmations to the broker, or to
// the in-process notifier when no broker is configured or publishing fails.
// The booking never waits for the email.
type ConfirmationDispatcher struct {
	publisher messaging.Publisher
	notifier  ConfirmationSender
	wg        sync.WaitGroup
}

func NewConfirmationDispatcher(publisher messaging.Publisher, notifier ConfirmationSender) *ConfirmationDispatcher {
	return &ConfirmationDispatcher{publisher: publisher, notifier: notifier}
}

func (d *ConfirmationDispatcher) Dispatch(ctx context.Context, event models.BookingConfirmedEvent) {
	log := logger.WithContext(ctx)

	if d.publisher != nil {
		err := d.publisher.Publish(models.EventBookingConfirmed, event)
		if err == nil {
			return
		}
		log.Warn("Failed to publish booking confirmation, notifying in-process", "error", err)
	}

	if d.notifier == nil {
		log.Warn("No notifier configured, confirmation email skipped")
		return
	}

	d.wg.Add(1)
	go func(ctx context.Context) {
		defer d.wg.Done()
		d.notifier.SendConfirmation(ctx, event.EmailRequest())
	}(context.WithoutCancel(ctx))
}

// Wait blocks until in-process notifications finish or ctx is done
func (d *ConfirmationDispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
