package booking

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/Mathmagicians/theslope/internal/domain/season"
)

// ScaffoldAction is what reconciliation does to one order.
type ScaffoldAction string

// Scaffold actions
const (
	ScaffoldCreate  ScaffoldAction = "CREATE"
	ScaffoldUpdate  ScaffoldAction = "UPDATE"
	ScaffoldRelease ScaffoldAction = "RELEASE"
	ScaffoldDelete  ScaffoldAction = "DELETE"
)

// ErrIncompleteScaffoldInput is returned when season or household is missing.
var ErrIncompleteScaffoldInput = errors.New("scaffold needs a season and a household")

// ScaffoldInput is everything reconciliation looks at. Orders must contain every
// order of the household's inhabitants on the given events; other orders are ignored.
type ScaffoldInput struct {
	Season    *season.Season
	Household *household.Household
	Events    []*dinner.DinnerEvent
	Orders    []*Order
	Now       time.Time
	Location  *time.Location
}

// ScaffoldOperation is one change of the plan. Order is the state to write
// (a new order without ID for CREATE, the order to remove for DELETE) and
// Previous the stored order it replaces.
type ScaffoldOperation struct {
	Action   ScaffoldAction
	Order    *Order
	Previous *Order
}

// ScaffoldPlan is the ordered list of changes for one household.
type ScaffoldPlan struct {
	HouseholdID string
	Operations  []ScaffoldOperation
	Unchanged   int
}

// ScaffoldResult counts what a reconciliation run did to a household.
type ScaffoldResult struct {
	HouseholdID string
	Created     int
	Updated     int
	Released    int
	Deleted     int
	Unchanged   int
}

// Changes is the number of orders written.
func (r *ScaffoldResult) Changes() int {
	return r.Created + r.Updated + r.Released + r.Deleted
}

// Result tallies the plan.
func (p *ScaffoldPlan) Result() *ScaffoldResult {
	result := &ScaffoldResult{HouseholdID: p.HouseholdID, Unchanged: p.Unchanged}
	for _, op := range p.Operations {
		switch op.Action {
		case ScaffoldCreate:
			result.Created++
		case ScaffoldUpdate:
			result.Updated++
		case ScaffoldRelease:
			result.Released++
		case ScaffoldDelete:
			result.Deleted++
		}
	}
	return result
}

type slotKey struct {
	eventID      string
	inhabitantID string
}

// PlanScaffold diffs the orders a household should have, according to its
// inhabitants' weekly preferences, against the orders it has.
//
// Only bookable events whose dinner has not started are considered. Orders
// that are released, cancelled or closed record a decision already taken and
// are never touched; a slot holding one is not re-booked. New orders are only
// created before the cancellation deadline, dinner modes only change before
// the dining-mode deadline, and an unwanted order is deleted before the
// cancellation deadline and released after it.
//
// The plan depends on nothing but its input, so planning against the result
// of applying a plan yields an empty plan.
func PlanScaffold(in ScaffoldInput) (*ScaffoldPlan, error) {
	if in.Season == nil || in.Household == nil {
		return nil, ErrIncompleteScaffoldInput
	}
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}

	events := upcomingEvents(in.Season, in.Events, in.Now, loc)
	inhabitants := make([]*household.Inhabitant, len(in.Household.Inhabitants))
	copy(inhabitants, in.Household.Inhabitants)
	sort.Slice(inhabitants, func(i, j int) bool { return inhabitants[i].ID < inhabitants[j].ID })

	existing := make(map[slotKey][]*Order)
	for _, order := range in.Orders {
		if order.IsGuestTicket || order.InhabitantID == nil {
			continue
		}
		key := slotKey{eventID: order.DinnerEventID, inhabitantID: *order.InhabitantID}
		existing[key] = append(existing[key], order)
	}

	plan := &ScaffoldPlan{HouseholdID: in.Household.ID}
	for _, event := range events {
		beforeCancellation := in.Now.Before(in.Season.CancellationDeadline(event.Date, loc))
		beforeModeChange := in.Now.Before(in.Season.DiningModeDeadline(event.Date, loc))

		for _, inhabitant := range inhabitants {
			wanted := dinner.ModeNone
			if in.Household.LivesHereOn(event.Date) {
				wanted = inhabitant.DinnerPreferences.ModeOn(event.Date)
			}

			booked, decided := currentOrder(existing[slotKey{eventID: event.ID, inhabitantID: inhabitant.ID}])
			if booked == nil {
				if decided {
					plan.Unchanged++
					continue
				}
				if !wanted.Attending() || !beforeCancellation {
					continue
				}
				price, err := in.Season.PriceForAge(inhabitant.AgeOn(event.Date))
				if err != nil {
					return nil, fmt.Errorf("pricing inhabitant %s: %w", inhabitant.ID, err)
				}
				plan.Operations = append(plan.Operations, ScaffoldOperation{
					Action: ScaffoldCreate,
					Order:  newScaffoldOrder(in.Household.ID, event.ID, inhabitant.ID, wanted, price, in.Now),
				})
				continue
			}

			if !wanted.Attending() {
				if beforeCancellation {
					plan.Operations = append(plan.Operations, ScaffoldOperation{Action: ScaffoldDelete, Order: booked, Previous: booked})
					continue
				}
				released := *booked
				releasedAt := in.Now
				released.State = StateReleased
				released.ReleasedAt = &releasedAt
				released.UpdatedAt = in.Now
				plan.Operations = append(plan.Operations, ScaffoldOperation{Action: ScaffoldRelease, Order: &released, Previous: booked})
				continue
			}

			updated := *booked
			changed := false
			if booked.DinnerMode != wanted && beforeModeChange {
				updated.DinnerMode = wanted
				changed = true
			}
			if beforeCancellation {
				price, err := in.Season.PriceForAge(inhabitant.AgeOn(event.Date))
				if err != nil {
					return nil, fmt.Errorf("pricing inhabitant %s: %w", inhabitant.ID, err)
				}
				if booked.TicketPriceID != price.ID || booked.PriceAtBooking != price.Price {
					updated.TicketPriceID = price.ID
					updated.TicketType = price.TicketType
					updated.PriceAtBooking = price.Price
					changed = true
				}
			}
			if !changed {
				plan.Unchanged++
				continue
			}
			updated.UpdatedAt = in.Now
			plan.Operations = append(plan.Operations, ScaffoldOperation{Action: ScaffoldUpdate, Order: &updated, Previous: booked})
		}
	}

	return plan, nil
}

func upcomingEvents(s *season.Season, events []*dinner.DinnerEvent, now time.Time, loc *time.Location) []*dinner.DinnerEvent {
	upcoming := make([]*dinner.DinnerEvent, 0, len(events))
	for _, event := range events {
		if event.SeasonID != s.ID || !event.IsBookable() {
			continue
		}
		if !now.Before(s.DinnerStart(event.Date, loc)) {
			continue
		}
		upcoming = append(upcoming, event)
	}
	sort.Slice(upcoming, func(i, j int) bool {
		if upcoming[i].Date.Equal(upcoming[j].Date) {
			return upcoming[i].ID < upcoming[j].ID
		}
		return upcoming[i].Date.Before(upcoming[j].Date)
	})
	return upcoming
}

// currentOrder returns the booked order of a slot, oldest first if there are
// several, and whether the slot holds any order at all.
func currentOrder(orders []*Order) (*Order, bool) {
	var booked *Order
	for _, order := range orders {
		if order.State != StateBooked {
			continue
		}
		if booked == nil || order.CreatedAt.Before(booked.CreatedAt) {
			booked = order
		}
	}
	return booked, len(orders) > 0
}

func newScaffoldOrder(householdID, eventID, inhabitantID string, mode dinner.Mode, price *season.TicketPrice, now time.Time) *Order {
	id := inhabitantID
	return &Order{
		DinnerEventID:  eventID,
		InhabitantID:   &id,
		HouseholdID:    householdID,
		BookedByUserID: SystemUserID,
		TicketPriceID:  price.ID,
		TicketType:     price.TicketType,
		PriceAtBooking: price.Price,
		DinnerMode:     mode,
		State:          StateBooked,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
