package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// RoutingKey is the routing key every notification is published with.
const RoutingKey = "notifications"

// publisher is the subset of *amqp091.Channel used by AMQPSink.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// Message is the JSON body published for each notification.
type Message struct {
	Notification
	Timestamp time.Time `json:"timestamp"`
}

// AMQPSink publishes notifications to a RabbitMQ exchange so that other
// processes (mailers, desktop notifiers) can render them.
// Publishing failures are logged and never reach the caller.
type AMQPSink struct {
	conn     *amqp091.Connection
	channel  publisher
	closer   func() error
	exchange string
	logger   *slog.Logger
}

// DialAMQP connects to url and declares a durable fanout exchange.
func DialAMQP(url, exchange string, logger *slog.Logger) (*AMQPSink, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPSink{
		conn:     conn,
		channel:  channel,
		closer:   channel.Close,
		exchange: exchange,
		logger:   logger,
	}, nil
}

func newAMQPSink(p publisher, exchange string, logger *slog.Logger) *AMQPSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &AMQPSink{channel: p, exchange: exchange, logger: logger}
}

// Notify publishes n as a persistent JSON message.
func (s *AMQPSink) Notify(ctx context.Context, n Notification) {
	body, err := json.Marshal(Message{Notification: n, Timestamp: time.Now()})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to marshal notification", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = s.channel.PublishWithContext(
		ctx,
		s.exchange, // exchange
		RoutingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish notification",
			"title", n.Title,
			"exchange", s.exchange,
			"error", err)
		return
	}

	s.logger.DebugContext(ctx, "Published notification", "title", n.Title, "exchange", s.exchange)
}

// Close closes the channel and the connection, reporting both failures.
func (s *AMQPSink) Close() error {
	var errs []error
	if s.closer != nil {
		if err := s.closer(); err != nil {
			errs = append(errs, fmt.Errorf("close channel: %w", err))
		}
	}
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}
