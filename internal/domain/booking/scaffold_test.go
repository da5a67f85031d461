//go:build unit
// +build unit

package booking

import (
	"testing"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/Mathmagicians/theslope/internal/domain/season"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scaffoldFixture struct {
	loc       *time.Location
	season    *season.Season
	household *household.Household
	adult     *household.Inhabitant
	child     *household.Inhabitant
	monday    *dinner.DinnerEvent
	thursday  *dinner.DinnerEvent
}

func intPtr(i int) *int { return &i }

func datePtr(y int, m time.Month, d int) *time.Time {
	date := calendar.Date(y, m, d)
	return &date
}

func newScaffoldFixture(t *testing.T) *scaffoldFixture {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Copenhagen")
	require.NoError(t, err)

	seasonID := uuid.NewString()
	s := &season.Season{
		ID:          seasonID,
		ShortName:   "Spring 2025",
		StartDate:   calendar.Date(2025, time.March, 1),
		EndDate:     calendar.Date(2025, time.June, 30),
		CookingDays: []calendar.Weekday{calendar.Monday, calendar.Thursday},
		TicketPrices: []season.TicketPrice{
			{ID: uuid.NewString(), SeasonID: seasonID, TicketType: season.TicketTypeAdult, Price: 4000},
			{ID: uuid.NewString(), SeasonID: seasonID, TicketType: season.TicketTypeChild, Price: 2000, MaximumAgeLimit: intPtr(12)},
			{ID: uuid.NewString(), SeasonID: seasonID, TicketType: season.TicketTypeBaby, Price: 0, MaximumAgeLimit: intPtr(2)},
		},
		CancellableDaysBefore:           10,
		DiningModeEditableMinutesBefore: 90,
		ConsecutiveCookingDays:          1,
		DinnerStartTime:                 "18:00",
		IsActive:                        true,
	}

	householdID := uuid.NewString()
	adult := &household.Inhabitant{
		ID:          uuid.NewString(),
		HouseholdID: householdID,
		Name:        "Anna",
		LastName:    "Berg",
		BirthDate:   datePtr(1980, time.May, 1),
		DinnerPreferences: household.DinnerPreferences{
			calendar.Monday:   dinner.ModeDineIn,
			calendar.Thursday: dinner.ModeTakeaway,
		},
	}
	// turns 13 between the two dinners
	child := &household.Inhabitant{
		ID:          uuid.NewString(),
		HouseholdID: householdID,
		Name:        "Bo",
		LastName:    "Berg",
		BirthDate:   datePtr(2012, time.March, 19),
		DinnerPreferences: household.DinnerPreferences{
			calendar.Monday: dinner.ModeDineIn,
		},
	}

	return &scaffoldFixture{
		loc:    loc,
		season: s,
		household: &household.Household{
			ID:          householdID,
			Name:        "Berg",
			Address:     "Skråningen 12",
			PbsID:       1012,
			MovedInDate: calendar.Date(2020, time.January, 1),
			Inhabitants: []*household.Inhabitant{adult, child},
		},
		adult: adult,
		child: child,
		monday: &dinner.DinnerEvent{
			ID: uuid.NewString(), SeasonID: seasonID, Date: calendar.Date(2025, time.March, 17), State: dinner.StateScheduled,
		},
		thursday: &dinner.DinnerEvent{
			ID: uuid.NewString(), SeasonID: seasonID, Date: calendar.Date(2025, time.March, 20), State: dinner.StateScheduled,
		},
	}
}

func (f *scaffoldFixture) at(y int, m time.Month, d, hour, minute int) time.Time {
	return time.Date(y, m, d, hour, minute, 0, 0, f.loc)
}

func (f *scaffoldFixture) input(now time.Time, orders ...*Order) ScaffoldInput {
	return ScaffoldInput{
		Season:    f.season,
		Household: f.household,
		Events:    []*dinner.DinnerEvent{f.monday, f.thursday},
		Orders:    orders,
		Now:       now,
		Location:  f.loc,
	}
}

func (f *scaffoldFixture) order(event *dinner.DinnerEvent, inhabitant *household.Inhabitant, mode dinner.Mode, ticketType season.TicketType, state string) *Order {
	price, _ := f.season.PriceForType(ticketType)
	id := inhabitant.ID
	created := f.at(2025, time.March, 1, 8, 0)
	return &Order{
		ID:             uuid.NewString(),
		DinnerEventID:  event.ID,
		InhabitantID:   &id,
		HouseholdID:    f.household.ID,
		BookedByUserID: SystemUserID,
		TicketPriceID:  price.ID,
		TicketType:     price.TicketType,
		PriceAtBooking: price.Price,
		DinnerMode:     mode,
		State:          state,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

// apply mimics what the scaffold service stores for a plan.
func apply(orders []*Order, plan *ScaffoldPlan) []*Order {
	byID := make(map[string]*Order, len(orders))
	for _, order := range orders {
		byID[order.ID] = order
	}
	for _, op := range plan.Operations {
		switch op.Action {
		case ScaffoldCreate:
			created := *op.Order
			created.ID = uuid.NewString()
			byID[created.ID] = &created
		case ScaffoldUpdate, ScaffoldRelease:
			updated := *op.Order
			byID[updated.ID] = &updated
		case ScaffoldDelete:
			delete(byID, op.Order.ID)
		}
	}
	result := make([]*Order, 0, len(byID))
	for _, order := range byID {
		result = append(result, order)
	}
	return result
}

func findOp(plan *ScaffoldPlan, eventID, inhabitantID string) *ScaffoldOperation {
	for i := range plan.Operations {
		op := &plan.Operations[i]
		if op.Order.DinnerEventID == eventID && op.Order.InhabitantID != nil && *op.Order.InhabitantID == inhabitantID {
			return op
		}
	}
	return nil
}

func TestPlanScaffold_CreatesOrdersFromPreferences(t *testing.T) {
	f := newScaffoldFixture(t)
	now := f.at(2025, time.March, 1, 12, 0)

	plan, err := PlanScaffold(f.input(now))
	require.NoError(t, err)

	result := plan.Result()
	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 0, result.Unchanged)

	adultMonday := findOp(plan, f.monday.ID, f.adult.ID)
	require.NotNil(t, adultMonday)
	assert.Equal(t, ScaffoldCreate, adultMonday.Action)
	assert.Empty(t, adultMonday.Order.ID)
	assert.Equal(t, dinner.ModeDineIn, adultMonday.Order.DinnerMode)
	assert.Equal(t, season.TicketTypeAdult, adultMonday.Order.TicketType)
	assert.Equal(t, 4000, adultMonday.Order.PriceAtBooking)
	assert.Equal(t, SystemUserID, adultMonday.Order.BookedByUserID)
	assert.Equal(t, StateBooked, adultMonday.Order.State)

	adultThursday := findOp(plan, f.thursday.ID, f.adult.ID)
	require.NotNil(t, adultThursday)
	assert.Equal(t, dinner.ModeTakeaway, adultThursday.Order.DinnerMode)

	childMonday := findOp(plan, f.monday.ID, f.child.ID)
	require.NotNil(t, childMonday)
	assert.Equal(t, season.TicketTypeChild, childMonday.Order.TicketType)
	assert.Equal(t, 2000, childMonday.Order.PriceAtBooking)

	assert.Nil(t, findOp(plan, f.thursday.ID, f.child.ID))
}

func TestPlanScaffold_PricesByAgeOnDinnerDate(t *testing.T) {
	f := newScaffoldFixture(t)
	f.child.DinnerPreferences[calendar.Thursday] = dinner.ModeDineIn

	plan, err := PlanScaffold(f.input(f.at(2025, time.March, 1, 12, 0)))
	require.NoError(t, err)

	monday := findOp(plan, f.monday.ID, f.child.ID)
	thursday := findOp(plan, f.thursday.ID, f.child.ID)
	require.NotNil(t, monday)
	require.NotNil(t, thursday)
	assert.Equal(t, season.TicketTypeChild, monday.Order.TicketType)
	assert.Equal(t, season.TicketTypeAdult, thursday.Order.TicketType)
}

func TestPlanScaffold_IsIdempotent(t *testing.T) {
	f := newScaffoldFixture(t)
	now := f.at(2025, time.March, 1, 12, 0)

	first, err := PlanScaffold(f.input(now))
	require.NoError(t, err)
	require.NotEmpty(t, first.Operations)

	orders := apply(nil, first)
	second, err := PlanScaffold(f.input(now, orders...))
	require.NoError(t, err)

	assert.Empty(t, second.Operations)
	assert.Equal(t, 3, second.Unchanged)
}

func TestPlanScaffold_IgnoresInputOrder(t *testing.T) {
	f := newScaffoldFixture(t)
	now := f.at(2025, time.March, 1, 12, 0)

	sorted, err := PlanScaffold(f.input(now))
	require.NoError(t, err)

	shuffledHousehold := *f.household
	shuffledHousehold.Inhabitants = []*household.Inhabitant{f.child, f.adult}
	in := f.input(now)
	in.Household = &shuffledHousehold
	in.Events = []*dinner.DinnerEvent{f.thursday, f.monday}

	shuffled, err := PlanScaffold(in)
	require.NoError(t, err)

	if diff := cmp.Diff(sorted, shuffled); diff != "" {
		t.Errorf("plan depends on input order (-sorted +shuffled):\n%s", diff)
	}
}

func TestPlanScaffold_NoCreateAfterCancellationDeadline(t *testing.T) {
	f := newScaffoldFixture(t)
	// Monday's deadline is March 7th, Thursday's March 10th
	now := f.at(2025, time.March, 12, 12, 0)

	plan, err := PlanScaffold(f.input(now))
	require.NoError(t, err)
	assert.Empty(t, plan.Operations)
}

func TestPlanScaffold_CreatesUntilLocalMidnightDeadline(t *testing.T) {
	f := newScaffoldFixture(t)

	plan, err := PlanScaffold(f.input(f.at(2025, time.March, 6, 23, 59)))
	require.NoError(t, err)
	assert.NotNil(t, findOp(plan, f.monday.ID, f.adult.ID))

	plan, err = PlanScaffold(f.input(f.at(2025, time.March, 7, 0, 0)))
	require.NoError(t, err)
	assert.Nil(t, findOp(plan, f.monday.ID, f.adult.ID))
	assert.NotNil(t, findOp(plan, f.thursday.ID, f.adult.ID))
}

func TestPlanScaffold_ModeChangeRespectsDiningModeDeadline(t *testing.T) {
	f := newScaffoldFixture(t)
	f.adult.DinnerPreferences[calendar.Monday] = dinner.ModeTakeaway
	f.child.DinnerPreferences = household.DinnerPreferences{}
	existing := f.order(f.monday, f.adult, dinner.ModeDineIn, season.TicketTypeAdult, StateBooked)

	// past the cancellation deadline, before 16:30
	plan, err := PlanScaffold(f.input(f.at(2025, time.March, 17, 16, 0), existing))
	require.NoError(t, err)
	require.Len(t, plan.Operations, 1)
	op := plan.Operations[0]
	assert.Equal(t, ScaffoldUpdate, op.Action)
	assert.Equal(t, existing.ID, op.Order.ID)
	assert.Equal(t, dinner.ModeTakeaway, op.Order.DinnerMode)
	assert.Equal(t, dinner.ModeDineIn, op.Previous.DinnerMode)
	assert.Equal(t, dinner.ModeDineIn, existing.DinnerMode, "the stored order is not mutated")

	plan, err = PlanScaffold(f.input(f.at(2025, time.March, 17, 16, 30), existing))
	require.NoError(t, err)
	assert.Empty(t, plan.Operations)
	assert.Equal(t, 1, plan.Unchanged)
}

func TestPlanScaffold_RepricesBeforeCancellationDeadline(t *testing.T) {
	f := newScaffoldFixture(t)
	f.adult.DinnerPreferences = household.DinnerPreferences{}
	f.child.DinnerPreferences[calendar.Thursday] = dinner.ModeDineIn
	// booked while still a child
	existing := f.order(f.thursday, f.child, dinner.ModeDineIn, season.TicketTypeChild, StateBooked)
	monday := f.order(f.monday, f.child, dinner.ModeDineIn, season.TicketTypeChild, StateBooked)

	plan, err := PlanScaffold(f.input(f.at(2025, time.March, 1, 12, 0), existing, monday))
	require.NoError(t, err)
	require.Len(t, plan.Operations, 1)
	op := plan.Operations[0]
	assert.Equal(t, ScaffoldUpdate, op.Action)
	assert.Equal(t, season.TicketTypeAdult, op.Order.TicketType)
	assert.Equal(t, 4000, op.Order.PriceAtBooking)

	plan, err = PlanScaffold(f.input(f.at(2025, time.March, 15, 12, 0), existing, monday))
	require.NoError(t, err)
	assert.Empty(t, plan.Operations)
}

func TestPlanScaffold_DeletesOrReleasesUnwantedOrders(t *testing.T) {
	f := newScaffoldFixture(t)
	f.adult.DinnerPreferences = household.DinnerPreferences{}
	f.child.DinnerPreferences = household.DinnerPreferences{}
	existing := f.order(f.thursday, f.adult, dinner.ModeDineIn, season.TicketTypeAdult, StateBooked)

	plan, err := PlanScaffold(f.input(f.at(2025, time.March, 9, 12, 0), existing))
	require.NoError(t, err)
	require.Len(t, plan.Operations, 1)
	assert.Equal(t, ScaffoldDelete, plan.Operations[0].Action)
	assert.Equal(t, existing.ID, plan.Operations[0].Order.ID)

	now := f.at(2025, time.March, 10, 12, 0)
	plan, err = PlanScaffold(f.input(now, existing))
	require.NoError(t, err)
	require.Len(t, plan.Operations, 1)
	op := plan.Operations[0]
	assert.Equal(t, ScaffoldRelease, op.Action)
	assert.Equal(t, StateReleased, op.Order.State)
	require.NotNil(t, op.Order.ReleasedAt)
	assert.True(t, op.Order.ReleasedAt.Equal(now))
	assert.Equal(t, StateBooked, op.Previous.State)
}

func TestPlanScaffold_LeavesDecidedSlotsAlone(t *testing.T) {
	f := newScaffoldFixture(t)
	f.child.DinnerPreferences = household.DinnerPreferences{}
	f.adult.DinnerPreferences = household.DinnerPreferences{calendar.Monday: dinner.ModeDineIn}

	for _, state := range []string{StateCancelled, StateReleased, StateClosed} {
		t.Run(state, func(t *testing.T) {
			existing := f.order(f.monday, f.adult, dinner.ModeDineIn, season.TicketTypeAdult, state)

			plan, err := PlanScaffold(f.input(f.at(2025, time.March, 1, 12, 0), existing))
			require.NoError(t, err)
			assert.Empty(t, plan.Operations)
			assert.Equal(t, 1, plan.Unchanged)
		})
	}
}

func TestPlanScaffold_IgnoresGuestTickets(t *testing.T) {
	f := newScaffoldFixture(t)
	f.adult.DinnerPreferences = household.DinnerPreferences{}
	f.child.DinnerPreferences = household.DinnerPreferences{}
	price, err := f.season.PriceForType(season.TicketTypeAdult)
	require.NoError(t, err)
	guest := &Order{
		ID:             uuid.NewString(),
		DinnerEventID:  f.monday.ID,
		HouseholdID:    f.household.ID,
		BookedByUserID: "user-1",
		TicketPriceID:  price.ID,
		TicketType:     price.TicketType,
		PriceAtBooking: price.Price,
		DinnerMode:     dinner.ModeDineIn,
		State:          StateBooked,
		IsGuestTicket:  true,
	}

	plan, err := PlanScaffold(f.input(f.at(2025, time.March, 1, 12, 0), guest))
	require.NoError(t, err)
	assert.Empty(t, plan.Operations)
}

func TestPlanScaffold_StopsAtMoveOut(t *testing.T) {
	f := newScaffoldFixture(t)
	f.household.MoveOutDate = datePtr(2025, time.March, 18)
	f.child.DinnerPreferences = household.DinnerPreferences{}
	existing := f.order(f.thursday, f.adult, dinner.ModeTakeaway, season.TicketTypeAdult, StateBooked)

	plan, err := PlanScaffold(f.input(f.at(2025, time.March, 1, 12, 0), existing))
	require.NoError(t, err)
	require.Len(t, plan.Operations, 2)

	monday := findOp(plan, f.monday.ID, f.adult.ID)
	require.NotNil(t, monday)
	assert.Equal(t, ScaffoldCreate, monday.Action)

	thursday := findOp(plan, f.thursday.ID, f.adult.ID)
	require.NotNil(t, thursday)
	assert.Equal(t, ScaffoldDelete, thursday.Action)
}

func TestPlanScaffold_SkipsUnbookableEvents(t *testing.T) {
	f := newScaffoldFixture(t)
	f.thursday.State = dinner.StateCancelled
	other := &dinner.DinnerEvent{
		ID: uuid.NewString(), SeasonID: uuid.NewString(), Date: calendar.Date(2025, time.March, 24), State: dinner.StateScheduled,
	}
	in := f.input(f.at(2025, time.March, 1, 12, 0))
	in.Events = append(in.Events, other)

	plan, err := PlanScaffold(in)
	require.NoError(t, err)
	assert.Equal(t, 2, plan.Result().Created)
	for _, op := range plan.Operations {
		assert.Equal(t, f.monday.ID, op.Order.DinnerEventID)
	}
}

func TestPlanScaffold_SkipsStartedDinners(t *testing.T) {
	f := newScaffoldFixture(t)
	f.adult.DinnerPreferences = household.DinnerPreferences{}
	f.child.DinnerPreferences = household.DinnerPreferences{}
	existing := f.order(f.monday, f.adult, dinner.ModeDineIn, season.TicketTypeAdult, StateBooked)

	plan, err := PlanScaffold(f.input(f.at(2025, time.March, 17, 18, 0), existing))
	require.NoError(t, err)
	assert.Empty(t, plan.Operations)
	assert.Equal(t, 0, plan.Unchanged)
}

func TestPlanScaffold_IncompleteInput(t *testing.T) {
	_, err := PlanScaffold(ScaffoldInput{})
	assert.ErrorIs(t, err, ErrIncompleteScaffoldInput)
}

func TestScaffoldResult_Changes(t *testing.T) {
	result := &ScaffoldResult{Created: 2, Updated: 1, Released: 1, Deleted: 3, Unchanged: 9}
	assert.Equal(t, 7, result.Changes())
}
