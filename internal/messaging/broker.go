package messaging

import (
	"fmt"
	"strings"
)

// Broker kinds accepted by Config.Kind
const (
	KindNone     = "none"
	KindNATS     = "nats"
	KindRabbitMQ = "rabbitmq"
)

// Handler processes one message payload. A nil error acknowledges it.
type Handler func(data []byte) error

// Publisher publishes JSON-encoded messages
type Publisher interface {
	Publish(subject string, data any) error
	Close() error
}

// Subscriber delivers messages of a subject to a handler, load-balanced across
// consumers sharing the same queue name.
type Subscriber interface {
	Subscribe(subject, queue string, handler Handler) error
	Close() error
}

// Broker is both sides of a message bus connection
type Broker interface {
	Publisher
	Subscriber
}

type Config struct {
	Kind string

	NATS     NATSConfig
	RabbitMQ RabbitMQConfig
}

// Connect opens the configured broker. Kind "none" (or empty) returns nil, nil.
func Connect(cfg Config) (Broker, error) {
	switch strings.ToLower(cfg.Kind) {
	case "", KindNone:
		return nil, nil
	case KindNATS:
		client, err := NewNATSClient(cfg.NATS)
		if err != nil {
			return nil, err
		}
		return client, nil
	case KindRabbitMQ:
		client, err := NewRabbitMQClient(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown broker kind %q", cfg.Kind)
	}
}
