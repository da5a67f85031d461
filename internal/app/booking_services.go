package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/errs"
	"github.com/Mathmagicians/theslope/internal/domain/events"
	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/Mathmagicians/theslope/internal/domain/season"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"
	"github.com/Mathmagicians/theslope/internal/pkg/timeutil"

	"github.com/google/uuid"
)

// bookingService implements the BookingService interface
type bookingService struct {
	repos    Repositories
	uow      UnitOfWork
	clock    timeutil.Clock
	notifier notifier
	logger   logger.Logger
}

// NewBookingService creates a new bookingService instance
func NewBookingService(
	repos Repositories,
	uow UnitOfWork,
	publisher events.Publisher,
	clock timeutil.Clock,
	logger logger.Logger,
) (booking.BookingService, error) {
	if err := repos.validate(); err != nil {
		return nil, err
	}
	if uow == nil || clock == nil {
		return nil, fmt.Errorf("%w: booking service", ErrMissingDependency)
	}
	return &bookingService{
		repos:    repos,
		uow:      uow,
		clock:    clock,
		notifier: notifier{publisher: publisher, logger: logger},
		logger:   logger,
	}, nil
}

// bookingContext is what every ticket operation needs to know about its dinner.
type bookingContext struct {
	event  *dinner.DinnerEvent
	season *season.Season
	now    time.Time
	loc    *time.Location
}

func (b *bookingContext) started() bool {
	return !b.now.Before(b.season.DinnerStart(b.event.Date, b.loc))
}

func (b *bookingContext) cancellable() bool {
	return b.now.Before(b.season.CancellationDeadline(b.event.Date, b.loc))
}

func (b *bookingContext) modeEditable() bool {
	return b.now.Before(b.season.DiningModeDeadline(b.event.Date, b.loc))
}

func (s *bookingService) loadContext(ctx context.Context, eventID string) (*bookingContext, error) {
	event, err := s.repos.DinnerEvents.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	sn, err := s.repos.Seasons.GetByID(ctx, event.SeasonID)
	if err != nil {
		return nil, err
	}
	return &bookingContext{event: event, season: sn, now: s.clock.Now(), loc: s.clock.Location()}, nil
}

// claim records that a released ticket went to a new order.
type claim struct {
	order    *booking.Order
	released *booking.Order
}

// Book books every requested ticket or none. Before the cancellation deadline
// tickets are created at the season's price. After it, each ticket must claim
// a released ticket of the same type; the oldest release goes first and its
// order is cancelled so the original household is not billed.
func (s *bookingService) Book(ctx context.Context, userID, dinnerEventID string, request *booking.BookingRequest) ([]*booking.Order, error) {
	const op = "book dinner"
	if err := request.Validate(); err != nil {
		return nil, errs.Validation(op, err)
	}

	var created []*booking.Order
	var claims []claim
	var bc *bookingContext

	err := s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		bc, err = s.loadContext(ctx, dinnerEventID)
		if err != nil {
			return err
		}
		if !bc.event.IsBookable() {
			return errs.Conflict(op, dinnerEventID, "dinner is %s", bc.event.State)
		}
		if bc.started() {
			return errs.DeadlinePassed(op, dinnerEventID, "dinner has started")
		}

		h, err := s.repos.Households.GetByID(ctx, request.HouseholdID)
		if err != nil {
			return err
		}
		if !h.LivesHereOn(bc.event.Date) {
			return errs.Conflict(op, h.ID, "household does not live here on the dinner date")
		}

		existing, err := s.repos.Orders.List(ctx, &booking.OrderQuery{
			DinnerEventIDs: []string{dinnerEventID},
			States:         []string{booking.StateBooked, booking.StateReleased},
		})
		if err != nil {
			return err
		}
		holding := make(map[string]bool)
		var available []*booking.Order
		for _, order := range existing {
			if order.State == booking.StateBooked && order.InhabitantID != nil {
				holding[*order.InhabitantID] = true
			}
			if order.State == booking.StateReleased {
				available = append(available, order)
			}
		}
		sort.SliceStable(available, func(i, j int) bool {
			return releasedAt(available[i]).Before(releasedAt(available[j]))
		})

		for _, ticket := range request.Tickets {
			order, err := s.newOrder(bc, h, userID, ticket, holding)
			if err != nil {
				return err
			}

			if !bc.cancellable() {
				idx := claimable(available, order.TicketType)
				if idx < 0 {
					return errs.DeadlinePassed(op, dinnerEventID, "booking closed and no released %s ticket to claim", order.TicketType)
				}
				claimed := available[idx]
				available = append(available[:idx], available[idx+1:]...)

				claimed.State = booking.StateCancelled
				claimed.UpdatedAt = bc.now
				if err := s.repos.Orders.UpdateByID(ctx, claimed); err != nil {
					return err
				}
				if err := appendHistory(ctx, s.repos.OrderHistory, claimed, booking.ActionUserClaimed, userID, bc.now, map[string]interface{}{
					"claimed_by_order_id":     order.ID,
					"claimed_by_household_id": h.ID,
				}); err != nil {
					return err
				}
				if err := s.repos.Orders.Create(ctx, order); err != nil {
					return err
				}
				if err := appendHistory(ctx, s.repos.OrderHistory, order, booking.ActionUserClaimed, userID, bc.now, map[string]interface{}{
					"claimed_order_id": claimed.ID,
				}); err != nil {
					return err
				}
				claims = append(claims, claim{order: order, released: claimed})
				created = append(created, order)
				continue
			}

			if err := s.repos.Orders.Create(ctx, order); err != nil {
				return err
			}
			if err := appendHistory(ctx, s.repos.OrderHistory, order, booking.ActionUserBooked, userID, bc.now, nil); err != nil {
				return err
			}
			created = append(created, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("User %s booked %d tickets for household %s on dinner %s (%d claimed)",
		userID, len(created), request.HouseholdID, dinnerEventID, len(claims))
	for _, c := range claims {
		s.notifier.notify(ctx, events.TypeOrderClaimed, c.order.ID, bc.now, map[string]interface{}{
			"dinner_event_id":  dinnerEventID,
			"claimed_order_id": c.released.ID,
			"household_id":     c.order.HouseholdID,
		})
	}
	if len(created) > len(claims) {
		s.notifier.notify(ctx, events.TypeOrderBooked, dinnerEventID, bc.now, map[string]interface{}{
			"household_id": request.HouseholdID,
			"tickets":      len(created) - len(claims),
		})
	}
	return created, nil
}

// newOrder prices one requested ticket.
func (s *bookingService) newOrder(bc *bookingContext, h *household.Household, userID string, ticket booking.TicketRequest, holding map[string]bool) (*booking.Order, error) {
	const op = "book dinner"
	var price *season.TicketPrice
	var inhabitantID *string

	if ticket.InhabitantID != nil {
		var inhabitant *household.Inhabitant
		for _, candidate := range h.Inhabitants {
			if candidate.ID == *ticket.InhabitantID {
				inhabitant = candidate
				break
			}
		}
		if inhabitant == nil {
			return nil, errs.Validation(op, fmt.Errorf("inhabitant %s does not belong to household %s", *ticket.InhabitantID, h.ID))
		}
		if holding[inhabitant.ID] {
			return nil, errs.Conflict(op, inhabitant.ID, "inhabitant already holds a ticket for the dinner")
		}
		holding[inhabitant.ID] = true

		var err error
		price, err = bc.season.PriceForAge(inhabitant.AgeOn(bc.event.Date))
		if err != nil {
			return nil, errs.Validation(op, err)
		}
		id := inhabitant.ID
		inhabitantID = &id
	} else {
		var err error
		price, err = bc.season.PriceForType(ticket.GuestTicketType)
		if err != nil {
			return nil, errs.Validation(op, err)
		}
	}

	return &booking.Order{
		ID:             uuid.NewString(),
		DinnerEventID:  bc.event.ID,
		InhabitantID:   inhabitantID,
		HouseholdID:    h.ID,
		BookedByUserID: userID,
		TicketPriceID:  price.ID,
		TicketType:     price.TicketType,
		PriceAtBooking: price.Price,
		DinnerMode:     ticket.DinnerMode,
		State:          booking.StateBooked,
		IsGuestTicket:  inhabitantID == nil,
		CreatedAt:      bc.now,
		UpdatedAt:      bc.now,
	}, nil
}

func releasedAt(order *booking.Order) time.Time {
	if order.ReleasedAt == nil {
		return order.UpdatedAt
	}
	return *order.ReleasedAt
}

func claimable(available []*booking.Order, ticketType season.TicketType) int {
	for i, order := range available {
		if order.TicketType == ticketType {
			return i
		}
	}
	return -1
}

// Cancel cancels a booked ticket before the cancellation deadline. Later it
// is released instead: the household still pays unless someone claims it.
func (s *bookingService) Cancel(ctx context.Context, userID, orderID string) (*booking.Order, error) {
	const op = "cancel order"
	var order *booking.Order
	var bc *bookingContext

	err := s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repos.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.State != booking.StateBooked {
			return errs.Conflict(op, orderID, "order is %s", order.State)
		}
		bc, err = s.loadContext(ctx, order.DinnerEventID)
		if err != nil {
			return err
		}
		if bc.started() {
			return errs.DeadlinePassed(op, orderID, "dinner has started")
		}

		action := booking.ActionUserCancelled
		if bc.cancellable() {
			order.State = booking.StateCancelled
		} else {
			now := bc.now
			order.State = booking.StateReleased
			order.ReleasedAt = &now
			action = booking.ActionUserReleased
		}
		order.UpdatedAt = bc.now
		if err := s.repos.Orders.UpdateByID(ctx, order); err != nil {
			return err
		}
		return appendHistory(ctx, s.repos.OrderHistory, order, action, userID, bc.now, nil)
	})
	if err != nil {
		return nil, err
	}

	eventType := events.TypeOrderCancelled
	if order.State == booking.StateReleased {
		eventType = events.TypeOrderReleased
	}
	s.logger.Infof("User %s set order %s to %s", userID, orderID, order.State)
	s.notifier.notify(ctx, eventType, order.ID, bc.now, map[string]interface{}{
		"dinner_event_id": order.DinnerEventID,
		"household_id":    order.HouseholdID,
		"ticket_type":     string(order.TicketType),
	})
	return order, nil
}

// ChangeDinnerMode switches the mode of a booked ticket until the dining mode deadline.
func (s *bookingService) ChangeDinnerMode(ctx context.Context, userID, orderID string, mode dinner.Mode) (*booking.Order, error) {
	const op = "change dinner mode"
	if !mode.Attending() {
		return nil, errs.Validation(op, fmt.Errorf("invalid dinner mode %q", mode))
	}

	var order *booking.Order
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repos.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.State != booking.StateBooked {
			return errs.Conflict(op, orderID, "order is %s", order.State)
		}
		bc, err := s.loadContext(ctx, order.DinnerEventID)
		if err != nil {
			return err
		}
		if !bc.modeEditable() {
			return errs.DeadlinePassed(op, orderID, "dinner mode can no longer change")
		}
		if order.DinnerMode == mode {
			return nil
		}

		previous := order.DinnerMode
		order.DinnerMode = mode
		order.UpdatedAt = bc.now
		if err := s.repos.Orders.UpdateByID(ctx, order); err != nil {
			return err
		}
		return appendHistory(ctx, s.repos.OrderHistory, order, booking.ActionUserModeChanged, userID, bc.now, map[string]interface{}{
			"previous_dinner_mode": previous,
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *bookingService) GetByID(ctx context.Context, orderID string) (*booking.Order, error) {
	return s.repos.Orders.GetByID(ctx, orderID)
}

func (s *bookingService) List(ctx context.Context, query *booking.OrderQuery) ([]*booking.Order, error) {
	if query == nil {
		query = booking.NewOrderQuery()
	}
	return s.repos.Orders.List(ctx, query)
}

func (s *bookingService) History(ctx context.Context, orderID string) ([]*booking.OrderHistory, error) {
	if _, err := s.repos.Orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repos.OrderHistory.ListByOrder(ctx, orderID)
}
