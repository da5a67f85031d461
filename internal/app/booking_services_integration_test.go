//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/errs"
	"github.com/Mathmagicians/theslope/internal/domain/events"
	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/Mathmagicians/theslope/internal/domain/season"
	"github.com/Mathmagicians/theslope/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	seasonStart = calendar.Date(2025, time.March, 1)
	seasonEnd   = calendar.Date(2025, time.June, 30)
)

// setupServices starts the clock on the morning of the season's first day
func setupServices(t *testing.T) *TestServices {
	ts := SetupTestServices(t, config.SqliteDbType, time.Time{})
	ts.Clock.Set(ts.At(2025, time.March, 1, 10, 0))
	return ts
}

// prebookedMondays counts the Mondays a Monday diner is booked for when the season is activated now
func prebookedMondays(ts *TestServices, s *season.Season) int {
	count := 0
	for _, d := range s.DinnerDates() {
		if calendar.WeekdayOf(d) == calendar.Monday && ts.Clock.Now().Before(s.CancellationDeadline(d, ts.Clock.Loc)) {
			count++
		}
	}
	return count
}

func orderOn(t *testing.T, ts *TestServices, householdID, eventID string) *booking.Order {
	t.Helper()
	orders, err := ts.BookingService.List(context.Background(), &booking.OrderQuery{
		HouseholdID:    householdID,
		DinnerEventIDs: []string{eventID},
		States:         []string{booking.StateBooked, booking.StateReleased},
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	return orders[0]
}

func TestScaffoldService_ActivateSeason_PreBooksHouseholds(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	h, _ := ts.CreateHousehold(t, 1001)
	assert.Empty(t, ts.OrdersOf(t, h.ID), "nothing is booked without an active season")

	s := ts.CreateActiveSeason(t, seasonStart, seasonEnd)

	booked := ts.OrdersOf(t, h.ID, booking.StateBooked)
	require.Equal(t, prebookedMondays(ts, s), len(booked))
	require.NotEmpty(t, booked)
	for _, order := range booked {
		assert.Equal(t, booking.SystemUserID, order.BookedByUserID)
		assert.Equal(t, 4000, order.PriceAtBooking)
		assert.Equal(t, dinner.ModeDineIn, order.DinnerMode)
	}
	assert.Len(t, ts.Publisher.OfType(events.TypeSeasonActivated), 1)

	history, err := ts.BookingService.History(ctx, booked[0].ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, booking.ActionSystemCreated, history[0].Action)

	// running again changes nothing
	results, err := ts.ScaffoldService.ScaffoldAll(ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].Changes())
	assert.Equal(t, len(booked), results[0].Unchanged)
}

func TestScaffoldService_NewHouseholdIsBookedRightAway(t *testing.T) {
	ts := setupServices(t)
	s := ts.CreateActiveSeason(t, seasonStart, seasonEnd)

	h, _ := ts.CreateHousehold(t, 1002)

	assert.Len(t, ts.OrdersOf(t, h.ID, booking.StateBooked), prebookedMondays(ts, s))
}

func TestScaffoldService_PreferenceChanges(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	h, inhabitant := ts.CreateHousehold(t, 1001)
	s := ts.CreateActiveSeason(t, seasonStart, seasonEnd)

	march17 := ts.EventOn(t, s.ID, calendar.Date(2025, time.March, 17))
	march24 := ts.EventOn(t, s.ID, calendar.Date(2025, time.March, 24))
	march31 := ts.EventOn(t, s.ID, calendar.Date(2025, time.March, 31))

	t.Run("mode change before the deadline updates the orders", func(t *testing.T) {
		inhabitant.DinnerPreferences = household.DinnerPreferences{calendar.Monday: dinner.ModeTakeaway}
		_, err := ts.HouseholdService.UpdateInhabitant(ctx, inhabitant)
		require.NoError(t, err)

		for _, order := range ts.OrdersOf(t, h.ID, booking.StateBooked) {
			assert.Equal(t, dinner.ModeTakeaway, order.DinnerMode)
		}
	})

	t.Run("opting out after the cancellation deadline releases", func(t *testing.T) {
		ts.Clock.Set(ts.At(2025, time.March, 15, 12, 0))
		inhabitant.DinnerPreferences = household.DinnerPreferences{}
		_, err := ts.HouseholdService.UpdateInhabitant(ctx, inhabitant)
		require.NoError(t, err)

		assert.Equal(t, booking.StateReleased, orderOn(t, ts, h.ID, march17.ID).State)
		assert.Equal(t, booking.StateReleased, orderOn(t, ts, h.ID, march24.ID).State)

		later, err := ts.BookingService.List(ctx, &booking.OrderQuery{HouseholdID: h.ID, DinnerEventIDs: []string{march31.ID}})
		require.NoError(t, err)
		assert.Empty(t, later, "cancellable orders are deleted")
	})

	t.Run("opting in again only books what is still open", func(t *testing.T) {
		inhabitant.DinnerPreferences = household.DinnerPreferences{calendar.Monday: dinner.ModeDineIn}
		_, err := ts.HouseholdService.UpdateInhabitant(ctx, inhabitant)
		require.NoError(t, err)

		assert.Equal(t, booking.StateReleased, orderOn(t, ts, h.ID, march24.ID).State, "released tickets stay released")
		assert.Equal(t, booking.StateBooked, orderOn(t, ts, h.ID, march31.ID).State)
	})
}

func TestHouseholdService_DeleteInhabitant(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	h, inhabitant := ts.CreateHousehold(t, 1001)
	s := ts.CreateActiveSeason(t, seasonStart, seasonEnd)
	march24 := ts.EventOn(t, s.ID, calendar.Date(2025, time.March, 24))

	ts.Clock.Set(ts.At(2025, time.March, 15, 12, 0))
	require.NoError(t, ts.HouseholdService.DeleteInhabitant(ctx, inhabitant.ID))

	_, err := ts.HouseholdService.GetInhabitant(ctx, inhabitant.ID)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))

	assert.Len(t, ts.OrdersOf(t, h.ID, booking.StateBooked), 0)
	assert.Equal(t, booking.StateReleased, orderOn(t, ts, h.ID, march24.ID).State)
}

func TestHouseholdService_DeleteByID(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	booked, _ := ts.CreateHousehold(t, 1001)
	ts.CreateActiveSeason(t, seasonStart, seasonEnd)
	require.NotEmpty(t, ts.OrdersOf(t, booked.ID, booking.StateBooked))

	err := ts.HouseholdService.DeleteByID(ctx, booked.ID)
	assert.True(t, errs.IsKind(err, errs.KindConflict))

	empty, err := ts.HouseholdService.Create(ctx, &household.Household{
		Name:        "Tomt",
		Address:     "Skråningen 99",
		PbsID:       1099,
		MovedInDate: seasonStart,
	})
	require.NoError(t, err)
	require.NoError(t, ts.HouseholdService.DeleteByID(ctx, empty.ID))

	_, err = ts.HouseholdService.GetByID(ctx, empty.ID)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
}

func TestBookingService_BookAndCancel(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	h, inhabitant := ts.CreateHousehold(t, 1001)
	s := ts.CreateActiveSeason(t, seasonStart, seasonEnd)
	march20 := ts.EventOn(t, s.ID, calendar.Date(2025, time.March, 20))
	march17 := ts.EventOn(t, s.ID, calendar.Date(2025, time.March, 17))

	tests := []struct {
		name    string
		eventID string
		request *booking.BookingRequest
		kind    errs.Kind
	}{
		{
			name:    "inhabitant already holding a ticket",
			eventID: march17.ID,
			request: &booking.BookingRequest{HouseholdID: h.ID, Tickets: []booking.TicketRequest{
				{InhabitantID: &inhabitant.ID, DinnerMode: dinner.ModeDineIn},
			}},
			kind: errs.KindConflict,
		},
		{
			name:    "no tickets",
			eventID: march20.ID,
			request: &booking.BookingRequest{HouseholdID: h.ID},
			kind:    errs.KindValidation,
		},
		{
			name:    "unknown dinner",
			eventID: "0b7a4b7e-8f0e-4c1c-9a64-1a1a1a1a1a1a",
			request: &booking.BookingRequest{HouseholdID: h.ID, Tickets: []booking.TicketRequest{
				{GuestTicketType: season.TicketTypeAdult, DinnerMode: dinner.ModeDineIn},
			}},
			kind: errs.KindNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.BookingService.Book(ctx, "user-1", tt.eventID, tt.request)
			require.Error(t, err)
			assert.Equal(t, tt.kind, errs.KindOf(err))
		})
	}

	orders, err := ts.BookingService.Book(ctx, "user-1", march20.ID, &booking.BookingRequest{
		HouseholdID: h.ID,
		Tickets: []booking.TicketRequest{
			{InhabitantID: &inhabitant.ID, DinnerMode: dinner.ModeDineInLate},
			{GuestTicketType: season.TicketTypeChild, DinnerMode: dinner.ModeTakeaway},
		},
	})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, 4000, orders[0].PriceAtBooking)
	assert.False(t, orders[0].IsGuestTicket)
	assert.Equal(t, season.TicketTypeChild, orders[1].TicketType)
	assert.Equal(t, 2000, orders[1].PriceAtBooking)
	assert.True(t, orders[1].IsGuestTicket)
	assert.Len(t, ts.Publisher.OfType(events.TypeOrderBooked), 1)

	ts.Clock.Set(ts.At(2025, time.March, 1, 10, 5))
	cancelled, err := ts.BookingService.Cancel(ctx, "user-1", orders[1].ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StateCancelled, cancelled.State)

	_, err = ts.BookingService.Cancel(ctx, "user-1", orders[1].ID)
	assert.True(t, errs.IsKind(err, errs.KindConflict), "a cancelled ticket can not be cancelled again")

	history, err := ts.BookingService.History(ctx, orders[1].ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, booking.ActionUserBooked, history[0].Action)
	assert.Equal(t, booking.ActionUserCancelled, history[1].Action)
	assert.Equal(t, "user-1", history[1].PerformedByUserID)
}

func TestBookingService_ReleaseAndClaim(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	first, _ := ts.CreateHousehold(t, 1001)
	second, _ := ts.CreateHousehold(t, 1002)
	s := ts.CreateActiveSeason(t, seasonStart, seasonEnd)
	march24 := ts.EventOn(t, s.ID, calendar.Date(2025, time.March, 24))

	ts.Clock.Set(ts.At(2025, time.March, 15, 12, 0))
	guest := func(ticketType season.TicketType) *booking.BookingRequest {
		return &booking.BookingRequest{HouseholdID: second.ID, Tickets: []booking.TicketRequest{
			{GuestTicketType: ticketType, DinnerMode: dinner.ModeDineIn},
		}}
	}

	_, err := ts.BookingService.Book(ctx, "user-2", march24.ID, guest(season.TicketTypeAdult))
	assert.True(t, errs.IsKind(err, errs.KindDeadlinePassed), "nothing released yet")

	releasedOrder, err := ts.BookingService.Cancel(ctx, "user-1", orderOn(t, ts, first.ID, march24.ID).ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StateReleased, releasedOrder.State)
	require.NotNil(t, releasedOrder.ReleasedAt)

	_, err = ts.BookingService.Book(ctx, "user-2", march24.ID, guest(season.TicketTypeChild))
	assert.True(t, errs.IsKind(err, errs.KindDeadlinePassed), "a claim needs a released ticket of the same type")

	ts.Clock.Set(ts.At(2025, time.March, 15, 12, 5))
	claimed, err := ts.BookingService.Book(ctx, "user-2", march24.ID, guest(season.TicketTypeAdult))
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, booking.StateBooked, claimed[0].State)
	assert.Equal(t, second.ID, claimed[0].HouseholdID)

	original, err := ts.BookingService.GetByID(ctx, releasedOrder.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StateCancelled, original.State, "the releasing household is not billed")

	history, err := ts.BookingService.History(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ActionUserClaimed, history[len(history)-1].Action)
	assert.Len(t, ts.Publisher.OfType(events.TypeOrderClaimed), 1)
	assert.Len(t, ts.Publisher.OfType(events.TypeOrderReleased), 1)

	_, err = ts.BookingService.Book(ctx, "user-2", march24.ID, guest(season.TicketTypeAdult))
	assert.True(t, errs.IsKind(err, errs.KindDeadlinePassed), "the released ticket is gone")
}

func TestBookingService_ChangeDinnerMode(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	h, _ := ts.CreateHousehold(t, 1001)
	s := ts.CreateActiveSeason(t, seasonStart, seasonEnd)
	order := orderOn(t, ts, h.ID, ts.EventOn(t, s.ID, calendar.Date(2025, time.March, 17)).ID)

	_, err := ts.BookingService.ChangeDinnerMode(ctx, "user-1", order.ID, dinner.ModeNone)
	assert.True(t, errs.IsKind(err, errs.KindValidation))

	ts.Clock.Set(ts.At(2025, time.March, 17, 16, 0))
	changed, err := ts.BookingService.ChangeDinnerMode(ctx, "user-1", order.ID, dinner.ModeTakeaway)
	require.NoError(t, err)
	assert.Equal(t, dinner.ModeTakeaway, changed.DinnerMode)

	ts.Clock.Set(ts.At(2025, time.March, 17, 16, 45))
	_, err = ts.BookingService.ChangeDinnerMode(ctx, "user-1", order.ID, dinner.ModeDineIn)
	assert.True(t, errs.IsKind(err, errs.KindDeadlinePassed))

	released, err := ts.BookingService.Cancel(ctx, "user-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StateReleased, released.State)

	ts.Clock.Set(ts.At(2025, time.March, 17, 18, 30))
	_, err = ts.BookingService.Book(ctx, "user-1", order.DinnerEventID, &booking.BookingRequest{
		HouseholdID: h.ID,
		Tickets:     []booking.TicketRequest{{GuestTicketType: season.TicketTypeAdult, DinnerMode: dinner.ModeDineIn}},
	})
	assert.True(t, errs.IsKind(err, errs.KindDeadlinePassed), "dinner has started")
}
