package messaging

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeKind = "topic"

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

type RabbitMQClient struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewRabbitMQClient(cfg RabbitMQConfig) (*RabbitMQClient, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, exchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	slog.Info("Connected to RabbitMQ", "exchange", cfg.Exchange)
	return &RabbitMQClient{conn: conn, channel: ch, exchange: cfg.Exchange}, nil
}

func (r *RabbitMQClient) Publish(subject string, data any) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	if err := r.channel.Publish(r.exchange, subject, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	slog.Debug("Published message", "exchange", r.exchange, "routing_key", subject)
	return nil
}

// Subscribe binds a durable queue to the subject and consumes it in the
// background until the channel is closed. Failed messages are requeued once.
func (r *RabbitMQClient) Subscribe(subject, queue string, handler Handler) error {
	q, err := r.channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	if err := r.channel.QueueBind(q.Name, subject, r.exchange, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue bind: %w", err)
	}

	msgs, err := r.channel.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq consume: %w", err)
	}

	go func() {
		for d := range msgs {
			if err := handler(d.Body); err != nil {
				slog.Error("Message handler failed",
					"routing_key", d.RoutingKey, "redelivered", d.Redelivered, "error", err)
				_ = d.Nack(false, !d.Redelivered)
				continue
			}
			_ = d.Ack(false)
		}
		slog.Info("RabbitMQ delivery channel closed", "queue", q.Name)
	}()

	slog.Info("Subscribed to subject", "subject", subject, "queue", q.Name)
	return nil
}

func (r *RabbitMQClient) Close() error {
	var errs []error
	if r.channel != nil {
		errs = append(errs, r.channel.Close())
	}
	if r.conn != nil {
		errs = append(errs, r.conn.Close())
	}
	return errors.Join(errs...)
}
