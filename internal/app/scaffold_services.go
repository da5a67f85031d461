package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/errs"
	"github.com/Mathmagicians/theslope/internal/domain/events"
	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/Mathmagicians/theslope/internal/domain/season"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"
	"github.com/Mathmagicians/theslope/internal/pkg/timeutil"

	"github.com/google/uuid"
)

// scaffoldService implements the ScaffoldService interface by applying
// booking.PlanScaffold to the stored orders.
type scaffoldService struct {
	repos    Repositories
	uow      UnitOfWork
	clock    timeutil.Clock
	notifier notifier
	logger   logger.Logger
}

// NewScaffoldService creates a new scaffoldService instance
func NewScaffoldService(
	repos Repositories,
	uow UnitOfWork,
	publisher events.Publisher,
	clock timeutil.Clock,
	logger logger.Logger,
) (booking.ScaffoldService, error) {
	if err := repos.validate(); err != nil {
		return nil, err
	}
	if uow == nil || clock == nil {
		return nil, fmt.Errorf("%w: scaffold service", ErrMissingDependency)
	}
	return &scaffoldService{
		repos:    repos,
		uow:      uow,
		clock:    clock,
		notifier: notifier{publisher: publisher, logger: logger},
		logger:   logger,
	}, nil
}

// activeSeason returns nil without error when no season is active.
func (s *scaffoldService) activeSeason(ctx context.Context) (*season.Season, error) {
	active, err := s.repos.Seasons.GetActive(ctx)
	if errs.IsKind(err, errs.KindNotFound) {
		return nil, nil
	}
	return active, err
}

func (s *scaffoldService) ScaffoldHousehold(ctx context.Context, householdID string) (*booking.ScaffoldResult, error) {
	active, err := s.activeSeason(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		if _, err := s.repos.Households.GetByID(ctx, householdID); err != nil {
			return nil, err
		}
		return &booking.ScaffoldResult{HouseholdID: householdID}, nil
	}

	upcoming, err := s.upcomingDinners(ctx, active)
	if err != nil {
		return nil, err
	}
	return s.scaffold(ctx, active, upcoming, householdID)
}

// ScaffoldAll reconciles every household. A failing household does not stop
// the others; the errors are joined.
func (s *scaffoldService) ScaffoldAll(ctx context.Context) ([]*booking.ScaffoldResult, error) {
	active, err := s.activeSeason(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		s.logger.Info("No active season, nothing to scaffold")
		return []*booking.ScaffoldResult{}, nil
	}

	upcoming, err := s.upcomingDinners(ctx, active)
	if err != nil {
		return nil, err
	}
	households, err := s.repos.Households.List(ctx, household.NewHouseholdQuery())
	if err != nil {
		return nil, err
	}

	results := make([]*booking.ScaffoldResult, 0, len(households))
	var failures []error
	totals := booking.ScaffoldResult{}
	for _, h := range households {
		result, err := s.scaffold(ctx, active, upcoming, h.ID)
		if err != nil {
			s.logger.Errorf("Scaffolding household %s failed: %v", h.ID, err)
			failures = append(failures, fmt.Errorf("household %s: %w", h.ID, err))
			continue
		}
		results = append(results, result)
		totals.Created += result.Created
		totals.Updated += result.Updated
		totals.Released += result.Released
		totals.Deleted += result.Deleted
		totals.Unchanged += result.Unchanged
	}

	s.logger.Infof("Scaffolded %d households: %d created, %d updated, %d released, %d deleted, %d unchanged",
		len(results), totals.Created, totals.Updated, totals.Released, totals.Deleted, totals.Unchanged)
	if totals.Changes() > 0 {
		s.notifier.notify(ctx, events.TypeOrdersScaffolded, active.ID, s.clock.Now(), map[string]interface{}{
			"households": len(results),
			"created":    totals.Created,
			"updated":    totals.Updated,
			"released":   totals.Released,
			"deleted":    totals.Deleted,
		})
	}
	return results, errors.Join(failures...)
}

// upcomingDinners lists the bookable dinners of the season from today on.
func (s *scaffoldService) upcomingDinners(ctx context.Context, active *season.Season) ([]*dinner.DinnerEvent, error) {
	today := calendar.DateOf(s.clock.Now(), s.clock.Location())
	return s.repos.DinnerEvents.List(ctx, &dinner.DinnerEventQuery{
		SeasonID: active.ID,
		From:     today,
		States:   []string{dinner.StateScheduled, dinner.StateAnnounced},
	})
}

// scaffold plans and applies the reconciliation of one household in a single transaction.
func (s *scaffoldService) scaffold(ctx context.Context, active *season.Season, upcoming []*dinner.DinnerEvent, householdID string) (*booking.ScaffoldResult, error) {
	var result *booking.ScaffoldResult
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		h, err := s.repos.Households.GetByID(ctx, householdID)
		if err != nil {
			return err
		}

		var existing []*booking.Order
		if len(upcoming) > 0 && len(h.Inhabitants) > 0 {
			eventIDs := make([]string, len(upcoming))
			for i, event := range upcoming {
				eventIDs[i] = event.ID
			}
			inhabitantIDs := make([]string, len(h.Inhabitants))
			for i, inhabitant := range h.Inhabitants {
				inhabitantIDs[i] = inhabitant.ID
			}
			existing, err = s.repos.Orders.List(ctx, &booking.OrderQuery{
				DinnerEventIDs: eventIDs,
				InhabitantIDs:  inhabitantIDs,
				ExcludeGuests:  true,
			})
			if err != nil {
				return err
			}
		}

		now := s.clock.Now()
		plan, err := booking.PlanScaffold(booking.ScaffoldInput{
			Season:    active,
			Household: h,
			Events:    upcoming,
			Orders:    existing,
			Now:       now,
			Location:  s.clock.Location(),
		})
		if err != nil {
			return err
		}

		for _, op := range plan.Operations {
			if err := s.apply(ctx, op, now); err != nil {
				return err
			}
		}
		result = plan.Result()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Changes() > 0 {
		s.logger.Infof("Scaffolded household %s: %d created, %d updated, %d released, %d deleted",
			householdID, result.Created, result.Updated, result.Released, result.Deleted)
	}
	return result, nil
}

func (s *scaffoldService) apply(ctx context.Context, op booking.ScaffoldOperation, now time.Time) error {
	order := op.Order
	switch op.Action {
	case booking.ScaffoldCreate:
		order.ID = uuid.NewString()
		if err := s.repos.Orders.Create(ctx, order); err != nil {
			return err
		}
		return appendHistory(ctx, s.repos.OrderHistory, order, booking.ActionSystemCreated, booking.SystemUserID, now, nil)

	case booking.ScaffoldUpdate:
		if err := s.repos.Orders.UpdateByID(ctx, order); err != nil {
			return err
		}
		return appendHistory(ctx, s.repos.OrderHistory, order, booking.ActionSystemUpdated, booking.SystemUserID, now, map[string]interface{}{
			"previous": op.Previous.Snapshot(),
		})

	case booking.ScaffoldRelease:
		if err := s.repos.Orders.UpdateByID(ctx, order); err != nil {
			return err
		}
		return appendHistory(ctx, s.repos.OrderHistory, order, booking.ActionSystemReleased, booking.SystemUserID, now, nil)

	case booking.ScaffoldDelete:
		// history first, deleting the order detaches it
		if err := appendHistory(ctx, s.repos.OrderHistory, order, booking.ActionSystemDeleted, booking.SystemUserID, now, nil); err != nil {
			return err
		}
		return s.repos.Orders.DeleteByID(ctx, order.ID)
	}
	return fmt.Errorf("unknown scaffold action %q", op.Action)
}
