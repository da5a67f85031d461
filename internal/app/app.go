// Package app holds the application services: the booking rules, the scaffold
// reconciliation runner, the billing pipeline and the CRUD services around
// them. Services depend on the domain contracts only.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/billing"
	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/events"
	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/Mathmagicians/theslope/internal/domain/season"
	"github.com/Mathmagicians/theslope/internal/domain/team"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"

	"github.com/google/uuid"
)

// UnitOfWork runs fn in one transaction. Repositories called with the ctx
// handed to fn take part in it.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repositories bundles the repositories the services are built from
type Repositories struct {
	Seasons        season.SeasonRepository
	DinnerEvents   dinner.DinnerEventRepository
	CookingTeams   team.CookingTeamRepository
	Households     household.HouseholdRepository
	Inhabitants    household.InhabitantRepository
	Allergies      household.AllergyRepository
	Orders         booking.OrderRepository
	OrderHistory   booking.OrderHistoryRepository
	Transactions   billing.TransactionRepository
	BillingPeriods billing.BillingPeriodRepository
}

// ErrMissingDependency is returned by constructors given a nil dependency
var ErrMissingDependency = errors.New("missing dependency")

func (r Repositories) validate() error {
	switch {
	case r.Seasons == nil, r.DinnerEvents == nil, r.CookingTeams == nil,
		r.Households == nil, r.Inhabitants == nil, r.Allergies == nil,
		r.Orders == nil, r.OrderHistory == nil, r.Transactions == nil, r.BillingPeriods == nil:
		return fmt.Errorf("%w: repositories", ErrMissingDependency)
	}
	return nil
}

// notifier publishes events after the fact. A failed publish is logged and
// never fails the operation that caused it.
type notifier struct {
	publisher events.Publisher
	logger    logger.Logger
}

func (n notifier) notify(ctx context.Context, eventType, aggregateID string, at time.Time, payload map[string]interface{}) {
	if n.publisher == nil {
		return
	}
	event := events.Event{Type: eventType, AggregateID: aggregateID, OccurredAt: at.UTC(), Payload: payload}
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.Warnf("failed to publish %s for %s: %v", eventType, aggregateID, err)
	}
}

// appendHistory writes an audit row for order
func appendHistory(ctx context.Context, repo booking.OrderHistoryRepository, order *booking.Order, action, userID string, at time.Time, extra map[string]interface{}) error {
	data := order.Snapshot()
	for k, v := range extra {
		data[k] = v
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode audit data: %w", err)
	}

	orderID := order.ID
	entry := &booking.OrderHistory{
		ID:                uuid.NewString(),
		OrderID:           &orderID,
		Action:            action,
		PerformedByUserID: userID,
		AuditData:         raw,
		Timestamp:         at.UTC(),
	}
	return repo.Append(ctx, entry)
}

// seasonLookup memoizes seasons by id for loops over many events
type seasonLookup struct {
	repo    season.SeasonRepository
	seasons map[string]*season.Season
}

func newSeasonLookup(repo season.SeasonRepository) *seasonLookup {
	return &seasonLookup{repo: repo, seasons: make(map[string]*season.Season)}
}

func (l *seasonLookup) get(ctx context.Context, seasonID string) (*season.Season, error) {
	if s, ok := l.seasons[seasonID]; ok {
		return s, nil
	}
	s, err := l.repo.GetByID(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	l.seasons[seasonID] = s
	return s, nil
}
