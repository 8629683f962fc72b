package consumers

import (
	"context"
	"fmt"
	"log/slog"

	"gilded/internal/ai"
	"gilded/internal/config"
	apperrors "gilded/internal/errors"
	"gilded/internal/messaging"
	"gilded/internal/models"
	"gilded/internal/notify"
)

const queueName = "consumers"

type ConsumerService struct {
	broker   messaging.Broker
	handlers *Handlers
}

func NewConsumerService(ctx context.Context, cfg *config.Config) (*ConsumerService, error) {
	broker, err := messaging.Connect(cfg.Broker)
	if err != nil {
		return nil, err
	}
	if broker == nil {
		return nil, fmt.Errorf("%w: BROKER is %q", apperrors.ErrBrokerNotConfigured, cfg.Broker.Kind)
	}

	var generator ai.Generator = ai.Disabled{}
	if gemini, err := ai.NewGeminiClient(ctx, cfg.GenAI); err == nil {
		generator = gemini
	} else {
		slog.Warn("Generator is not available, confirmation emails will fail", "error", err)
	}

	notifier := notify.NewNotifier(generator, notify.LogMailer{Logger: slog.Default()})

	return NewConsumerServiceWith(broker, NewHandlers(notifier)), nil
}

// NewConsumerServiceWith wires an existing subscriber
func NewConsumerServiceWith(broker messaging.Broker, handlers *Handlers) *ConsumerService {
	return &ConsumerService{broker: broker, handlers: handlers}
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting consumers...")

	if err := cs.broker.Subscribe(models.EventBookingConfirmed, queueName, cs.handlers.HandleBookingConfirmed); err != nil {
		return err
	}

	slog.Info("All consumers started successfully")
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	done := make(chan error, 1)
	go func() { done <- cs.broker.Close() }()

	select {
	case err := <-done:
		if err != nil {
			slog.Error("Error closing broker connection", "error", err)
		}
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
