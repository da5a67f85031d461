package app

import (
	"context"
	"fmt"
	"io"
	"sort"
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

// calendarName is the title of exported dinner calendars
const calendarName = "Fællesspisning"

// dinnerEventService implements the DinnerEventService interface
type dinnerEventService struct {
	repos    Repositories
	uow      UnitOfWork
	encoder  dinner.CalendarEncoder
	clock    timeutil.Clock
	notifier notifier
	logger   logger.Logger
}

// NewDinnerEventService creates a new dinnerEventService instance
func NewDinnerEventService(
	repos Repositories,
	uow UnitOfWork,
	encoder dinner.CalendarEncoder,
	publisher events.Publisher,
	clock timeutil.Clock,
	logger logger.Logger,
) (dinner.DinnerEventService, error) {
	if err := repos.validate(); err != nil {
		return nil, err
	}
	if uow == nil || encoder == nil || clock == nil {
		return nil, fmt.Errorf("%w: dinner event service", ErrMissingDependency)
	}
	return &dinnerEventService{
		repos:    repos,
		uow:      uow,
		encoder:  encoder,
		clock:    clock,
		notifier: notifier{publisher: publisher, logger: logger},
		logger:   logger,
	}, nil
}

// GenerateForSeason creates a scheduled event for every cooking day of the
// season that has none yet and returns the events it created.
func (s *dinnerEventService) GenerateForSeason(ctx context.Context, seasonID string) ([]*dinner.DinnerEvent, error) {
	var created []*dinner.DinnerEvent
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		sn, err := s.repos.Seasons.GetByID(ctx, seasonID)
		if err != nil {
			return err
		}

		existing, err := s.repos.DinnerEvents.List(ctx, &dinner.DinnerEventQuery{SeasonID: seasonID})
		if err != nil {
			return err
		}
		taken := make(map[string]bool, len(existing))
		for _, event := range existing {
			taken[event.Date.Format(calendar.DateLayout)] = true
		}

		for _, date := range sn.DinnerDates() {
			if taken[date.Format(calendar.DateLayout)] {
				continue
			}
			created = append(created, &dinner.DinnerEvent{
				ID:       uuid.NewString(),
				SeasonID: seasonID,
				Date:     date,
				State:    dinner.StateScheduled,
			})
		}
		if len(created) == 0 {
			return nil
		}
		return s.repos.DinnerEvents.CreateBatch(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Generated %d dinner events for season %s", len(created), seasonID)
	return created, nil
}

func (s *dinnerEventService) List(ctx context.Context, query *dinner.DinnerEventQuery) ([]*dinner.DinnerEvent, error) {
	if query == nil {
		query = dinner.NewDinnerEventQuery()
	}
	return s.repos.DinnerEvents.List(ctx, query)
}

func (s *dinnerEventService) GetByID(ctx context.Context, eventID string) (*dinner.DinnerEvent, error) {
	return s.repos.DinnerEvents.GetByID(ctx, eventID)
}

func (s *dinnerEventService) UpdateMenu(ctx context.Context, eventID string, update *dinner.MenuUpdate) (*dinner.DinnerEvent, error) {
	if err := update.Validate(); err != nil {
		return nil, errs.Validation("update menu", err)
	}

	event, err := s.repos.DinnerEvents.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsBookable() {
		return nil, errs.Conflict("update menu", eventID, "dinner is %s", event.State)
	}

	event.MenuTitle = update.MenuTitle
	event.MenuDescription = update.MenuDescription
	event.TotalCost = update.TotalCost
	if update.ChefID != nil {
		event.ChefID = update.ChefID
	}
	if err := s.repos.DinnerEvents.UpdateByID(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Announce moves a scheduled event with a menu to ANNOUNCED.
func (s *dinnerEventService) Announce(ctx context.Context, eventID string) (*dinner.DinnerEvent, error) {
	event, err := s.repos.DinnerEvents.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.State != dinner.StateScheduled {
		return nil, errs.Conflict("announce dinner", eventID, "dinner is %s", event.State)
	}
	if event.MenuTitle == "" {
		return nil, errs.Conflict("announce dinner", eventID, "dinner has no menu")
	}

	event.State = dinner.StateAnnounced
	if err := s.repos.DinnerEvents.UpdateByID(ctx, event); err != nil {
		return nil, err
	}
	s.logger.Infof("Dinner %s on %s announced", event.ID, event.Date.Format(calendar.DateLayout))
	return event, nil
}

// Cancel cancels the dinner. Active tickets are cancelled with it and are not billed.
func (s *dinnerEventService) Cancel(ctx context.Context, userID, eventID string) (*dinner.DinnerEvent, error) {
	var event *dinner.DinnerEvent
	cancelled := 0
	now := s.clock.Now()

	err := s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		event, err = s.repos.DinnerEvents.GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		if !event.IsBookable() {
			return errs.Conflict("cancel dinner", eventID, "dinner is %s", event.State)
		}

		event.State = dinner.StateCancelled
		if err := s.repos.DinnerEvents.UpdateByID(ctx, event); err != nil {
			return err
		}

		orders, err := s.repos.Orders.List(ctx, &booking.OrderQuery{
			DinnerEventIDs: []string{eventID},
			States:         []string{booking.StateBooked, booking.StateReleased},
		})
		if err != nil {
			return err
		}
		for _, order := range orders {
			order.State = booking.StateCancelled
			order.UpdatedAt = now
			if err := s.repos.Orders.UpdateByID(ctx, order); err != nil {
				return err
			}
			if err := appendHistory(ctx, s.repos.OrderHistory, order, booking.ActionAdminCancelled, userID, now, nil); err != nil {
				return err
			}
		}
		cancelled = len(orders)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Dinner %s cancelled by %s, %d orders cancelled", eventID, userID, cancelled)
	s.notifier.notify(ctx, events.TypeDinnerCancelled, eventID, now, map[string]interface{}{
		"date":             event.Date.Format(calendar.DateLayout),
		"cancelled_orders": cancelled,
	})
	return event, nil
}

// attends reports whether the order counts as a plate to cook: booked, or
// closed without having been released.
func attends(order *booking.Order) bool {
	return order.State == booking.StateBooked || (order.State == booking.StateClosed && order.ReleasedAt == nil)
}

func released(order *booking.Order) bool {
	return order.State == booking.StateReleased || (order.State == booking.StateClosed && order.ReleasedAt != nil)
}

// ChefReport counts the plates of an event and lists the allergies of the
// inhabitants eating.
func (s *dinnerEventService) ChefReport(ctx context.Context, eventID string) (*dinner.ChefReport, error) {
	event, err := s.repos.DinnerEvents.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	orders, err := s.repos.Orders.List(ctx, &booking.OrderQuery{DinnerEventIDs: []string{eventID}})
	if err != nil {
		return nil, err
	}

	report := &dinner.ChefReport{
		DinnerEventID: event.ID,
		Date:          event.Date,
		MenuTitle:     event.MenuTitle,
		State:         event.State,
		ByMode:        make(map[dinner.Mode]int),
		ByTicketType:  make(map[string]int),
		Allergies:     []dinner.AttendeeAllergy{},
	}

	var inhabitantIDs []string
	for _, order := range orders {
		if released(order) {
			report.ReleasedTickets++
			continue
		}
		if !attends(order) {
			continue
		}
		report.TotalTickets++
		report.ByMode[order.DinnerMode]++
		report.ByTicketType[string(order.TicketType)]++
		if order.IsGuestTicket {
			report.Guests++
		} else {
			inhabitantIDs = append(inhabitantIDs, *order.InhabitantID)
		}
	}
	if len(inhabitantIDs) == 0 {
		return report, nil
	}

	allergies, err := s.repos.Allergies.ListByInhabitants(ctx, inhabitantIDs)
	if err != nil {
		return nil, err
	}
	if len(allergies) == 0 {
		return report, nil
	}
	types, err := s.repos.Allergies.ListTypes(ctx)
	if err != nil {
		return nil, err
	}
	inhabitants, err := s.repos.Inhabitants.ListByIDs(ctx, inhabitantIDs)
	if err != nil {
		return nil, err
	}

	typeNames := make(map[string]string, len(types))
	for _, t := range types {
		typeNames[t.ID] = t.Name
	}
	names := make(map[string]*household.Inhabitant, len(inhabitants))
	for _, inhabitant := range inhabitants {
		names[inhabitant.ID] = inhabitant
	}
	for _, allergy := range allergies {
		entry := dinner.AttendeeAllergy{
			InhabitantID: allergy.InhabitantID,
			AllergyName:  typeNames[allergy.AllergyTypeID],
			Comment:      allergy.Comment,
		}
		if inhabitant, ok := names[allergy.InhabitantID]; ok {
			entry.InhabitantName = inhabitant.FullName()
		}
		report.Allergies = append(report.Allergies, entry)
	}
	sort.Slice(report.Allergies, func(i, j int) bool {
		a, b := report.Allergies[i], report.Allergies[j]
		if a.InhabitantName != b.InhabitantName {
			return a.InhabitantName < b.InhabitantName
		}
		return a.AllergyName < b.AllergyName
	})
	return report, nil
}

// ExportCalendar writes every dinner of the season to w.
func (s *dinnerEventService) ExportCalendar(ctx context.Context, seasonID string, w io.Writer) error {
	sn, err := s.repos.Seasons.GetByID(ctx, seasonID)
	if err != nil {
		return err
	}
	dinners, err := s.repos.DinnerEvents.List(ctx, &dinner.DinnerEventQuery{SeasonID: seasonID})
	if err != nil {
		return err
	}

	entries := make([]dinner.CalendarEntry, len(dinners))
	for i, event := range dinners {
		entries[i] = calendarEntry(sn, event, s.clock)
	}
	return s.encoder.Encode(w, fmt.Sprintf("%s %s", calendarName, sn.ShortName), entries)
}

func calendarEntry(sn *season.Season, event *dinner.DinnerEvent, clock timeutil.Clock) dinner.CalendarEntry {
	start := sn.DinnerStart(event.Date, clock.Location())
	summary := calendarName
	if event.MenuTitle != "" {
		summary = fmt.Sprintf("%s: %s", calendarName, event.MenuTitle)
	}
	return dinner.CalendarEntry{
		UID:         event.ID + "@theslope",
		Summary:     summary,
		Description: event.MenuDescription,
		Start:       start,
		End:         start.Add(season.DinnerDuration * time.Hour),
		Cancelled:   event.State == dinner.StateCancelled,
	}
}
