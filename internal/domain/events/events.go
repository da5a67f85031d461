// Package events defines the domain events published when orders and billing
// periods change state.
package events

import (
	"context"
	"time"
)

// Event types
const (
	TypeOrderBooked            = "order.booked"
	TypeOrderCancelled         = "order.cancelled"
	TypeOrderReleased          = "order.released"
	TypeOrderClaimed           = "order.claimed"
	TypeOrdersScaffolded       = "orders.scaffolded"
	TypeOrdersClosed           = "orders.closed"
	TypeDinnerCancelled        = "dinner.cancelled"
	TypeSeasonActivated        = "season.activated"
	TypeBillingPeriodGenerated = "billing.period_generated"
)

// Event is a fact about the system other services may react to.
type Event struct {
	Type        string                 `json:"type"`
	AggregateID string                 `json:"aggregate_id"`
	OccurredAt  time.Time              `json:"occurred_at"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
}

// Publisher delivers events. Publishing is best effort: callers log failures
// and carry on, the database stays the system of record.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
