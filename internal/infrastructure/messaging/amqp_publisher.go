package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Mathmagicians/theslope/internal/domain/events"
	"github.com/Mathmagicians/theslope/internal/pkg/config"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"

	"github.com/streadway/amqp"
)

// AMQPPublisher publishes events as persistent JSON messages to a topic exchange
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   logger.Logger
}

// NewAMQPPublisher dials the broker and declares the exchange
func NewAMQPPublisher(settings config.MessagingSettings, logger logger.Logger) (*AMQPPublisher, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	conn, err := amqp.Dial(settings.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	if err := ch.ExchangeDeclare(settings.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", settings.Exchange, err)
	}

	logger.Info("Connected event publisher to exchange ", settings.Exchange)
	return &AMQPPublisher{conn: conn, ch: ch, exchange: settings.Exchange, logger: logger}, nil
}

// Publish sends the event with its type as routing key
func (p *AMQPPublisher) Publish(ctx context.Context, event events.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Publish(p.exchange, event.Type, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

// Close closes channel and connection
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var closeErrs []error
	if err := p.ch.Close(); err != nil {
		closeErrs = append(closeErrs, fmt.Errorf("error closing RabbitMQ channel: %w", err))
	}
	if err := p.conn.Close(); err != nil {
		closeErrs = append(closeErrs, fmt.Errorf("error closing RabbitMQ connection: %w", err))
	}
	if len(closeErrs) > 0 {
		return fmt.Errorf("errors occurred during RabbitMQ shutdown: %v", closeErrs)
	}
	return nil
}

func newPublishing(event events.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to encode %s: %w", event.Type, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         event.Type,
		MessageId:    event.AggregateID,
		Body:         body,
	}, nil
}
