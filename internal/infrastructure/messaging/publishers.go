package messaging

import (
	"context"
	"sync"

	"github.com/Mathmagicians/theslope/internal/domain/events"
	"github.com/Mathmagicians/theslope/internal/pkg/config"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"
)

// NopPublisher drops every event
type NopPublisher struct{}

// Publish does nothing
func (NopPublisher) Publish(context.Context, events.Event) error {
	return nil
}

// MemoryPublisher keeps published events in memory
type MemoryPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

// Publish records the event
func (p *MemoryPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns a copy of the recorded events
func (p *MemoryPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

// OfType returns the recorded events of one type
func (p *MemoryPublisher) OfType(eventType string) []events.Event {
	var matching []events.Event
	for _, event := range p.Events() {
		if event.Type == eventType {
			matching = append(matching, event)
		}
	}
	return matching
}

// NewPublisher returns the AMQP publisher when messaging is enabled and a
// NopPublisher otherwise. The returned close function is never nil.
func NewPublisher(settings config.MessagingSettings, logger logger.Logger) (events.Publisher, func() error, error) {
	if !settings.Enabled {
		logger.Info("Messaging disabled, domain events are not published")
		return NopPublisher{}, func() error { return nil }, nil
	}

	publisher, err := NewAMQPPublisher(settings, logger)
	if err != nil {
		return nil, nil, err
	}
	return publisher, publisher.Close, nil
}
