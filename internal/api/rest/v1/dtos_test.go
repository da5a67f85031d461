//go:build unit
// +build unit

package v1

import (
	"testing"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/billing"
	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/season"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSeasonRequest() SeasonRequest {
	childLimit := 12
	return SeasonRequest{
		ShortName:   "F25",
		StartDate:   "2025-03-01",
		EndDate:     "2025-06-30",
		CookingDays: []string{"monday", "thursday"},
		Holidays:    []DateRangeDTO{{Start: "2025-04-14", End: "2025-04-21"}},
		TicketPrices: []TicketPriceDTO{
			{TicketType: "ADULT", Price: 4500},
			{TicketType: "CHILD", Price: 2200, MaximumAgeLimit: &childLimit},
		},
	}
}

func TestSeasonRequest_Validate(t *testing.T) {
	zero := 0
	tests := []struct {
		name      string
		mutate    func(r *SeasonRequest)
		shouldErr bool
	}{
		{"Valid request", func(r *SeasonRequest) {}, false},
		{"Explicit zero deadline", func(r *SeasonRequest) { r.CancellableDaysBefore = &zero }, false},
		{"Missing short name", func(r *SeasonRequest) { r.ShortName = "" }, true},
		{"Malformed start date", func(r *SeasonRequest) { r.StartDate = "01-03-2025" }, true},
		{"Unknown weekday", func(r *SeasonRequest) { r.CookingDays = []string{"funday"} }, true},
		{"No cooking days", func(r *SeasonRequest) { r.CookingDays = nil }, true},
		{"Unknown ticket type", func(r *SeasonRequest) { r.TicketPrices[0].TicketType = "SENIOR" }, true},
		{"Negative price", func(r *SeasonRequest) { r.TicketPrices[0].Price = -1 }, true},
		{"Bad dinner time", func(r *SeasonRequest) { r.DinnerStartTime = "25:00" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := validSeasonRequest()
			tt.mutate(&request)
			err := request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestSeasonRequest_ToDomain(t *testing.T) {
	t.Run("applies default deadlines", func(t *testing.T) {
		request := validSeasonRequest()

		s, err := request.ToDomain("")
		require.NoError(t, err)

		assert.Equal(t, calendar.Date(2025, time.March, 1), s.StartDate)
		assert.Equal(t, calendar.Date(2025, time.June, 30), s.EndDate)
		assert.Equal(t, []calendar.Weekday{calendar.Monday, calendar.Thursday}, s.CookingDays)
		assert.Equal(t, season.DefaultCancellableDaysBefore, s.CancellableDaysBefore)
		assert.Equal(t, season.DefaultDiningModeEditableMinutesBefore, s.DiningModeEditableMinutesBefore)
		require.Len(t, s.Holidays, 1)
		assert.Equal(t, calendar.Date(2025, time.April, 21), s.Holidays[0].End)
		require.Len(t, s.TicketPrices, 2)
		assert.Equal(t, season.TicketTypeChild, s.TicketPrices[1].TicketType)
		assert.Equal(t, 12, *s.TicketPrices[1].MaximumAgeLimit)
	})

	t.Run("keeps explicit deadlines", func(t *testing.T) {
		zero, minutes := 0, 30
		request := validSeasonRequest()
		request.CancellableDaysBefore = &zero
		request.DiningModeEditableMinutesBefore = &minutes

		s, err := request.ToDomain("7f0d5a47-52a4-4b5e-a1c1-4a6cf1f4e9a1")
		require.NoError(t, err)

		assert.Equal(t, "7f0d5a47-52a4-4b5e-a1c1-4a6cf1f4e9a1", s.ID)
		assert.Equal(t, 0, s.CancellableDaysBefore)
		assert.Equal(t, 30, s.DiningModeEditableMinutesBefore)
		assert.Equal(t, s.ID, s.TicketPrices[0].SeasonID)
	})
}

func TestNewSeasonResponse_RoundTripsDates(t *testing.T) {
	request := validSeasonRequest()
	s, err := request.ToDomain("")
	require.NoError(t, err)

	response := NewSeasonResponse(s)

	assert.Equal(t, "2025-03-01", response.StartDate)
	assert.Equal(t, "2025-06-30", response.EndDate)
	assert.Equal(t, []string{"monday", "thursday"}, response.CookingDays)
	assert.Equal(t, []DateRangeDTO{{Start: "2025-04-14", End: "2025-04-21"}}, response.Holidays)
}

func TestInhabitantRequest_Validate(t *testing.T) {
	birth := "2015-06-01"
	badBirth := "june 2015"
	tests := []struct {
		name      string
		request   InhabitantRequest
		shouldErr bool
	}{
		{"Valid", InhabitantRequest{Name: "Karen", LastName: "Blixen", BirthDate: &birth,
			DinnerPreferences: map[string]string{"monday": "DINEIN", "thursday": "TAKEAWAY"}}, false},
		{"Without preferences", InhabitantRequest{Name: "Karen", LastName: "Blixen"}, false},
		{"Unknown weekday", InhabitantRequest{Name: "Karen", LastName: "Blixen",
			DinnerPreferences: map[string]string{"someday": "DINEIN"}}, true},
		{"Unknown mode", InhabitantRequest{Name: "Karen", LastName: "Blixen",
			DinnerPreferences: map[string]string{"monday": "PICNIC"}}, true},
		{"Bad birth date", InhabitantRequest{Name: "Karen", LastName: "Blixen", BirthDate: &badBirth}, true},
		{"Missing last name", InhabitantRequest{Name: "Karen"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestHouseholdRequest_ToDomain(t *testing.T) {
	moveOut := "2025-12-31"
	request := HouseholdRequest{
		Name:        "Blixen",
		Address:     "Skråningen 12",
		PbsID:       1012,
		MovedInDate: "2020-01-01",
		MoveOutDate: &moveOut,
		Inhabitants: []InhabitantRequest{
			{Name: "Karen", LastName: "Blixen", DinnerPreferences: map[string]string{"monday": "DINEINLATE"}},
		},
	}
	require.NoError(t, request.Validate())

	h, err := request.ToDomain("")
	require.NoError(t, err)

	assert.Equal(t, calendar.Date(2020, time.January, 1), h.MovedInDate)
	require.NotNil(t, h.MoveOutDate)
	assert.Equal(t, calendar.Date(2025, time.December, 31), *h.MoveOutDate)
	require.Len(t, h.Inhabitants, 1)
	assert.Equal(t, dinner.ModeDineInLate, h.Inhabitants[0].DinnerPreferences[calendar.Monday])

	response := NewHouseholdResponse(h)
	assert.Equal(t, "2025-12-31", *response.MoveOutDate)
	assert.Equal(t, "DINEINLATE", response.Inhabitants[0].DinnerPreferences["monday"])
}

func TestDinnerModeRequest_Validate(t *testing.T) {
	require.NoError(t, (&DinnerModeRequest{DinnerMode: "TAKEAWAY"}).Validate())
	require.Error(t, (&DinnerModeRequest{DinnerMode: "NONE"}).Validate(), "NONE is not a ticket mode")
	require.Error(t, (&DinnerModeRequest{}).Validate())
}

func TestGenerateBillingPeriodRequest_Validate(t *testing.T) {
	require.NoError(t, (&GenerateBillingPeriodRequest{CutoffDate: "2025-05-17"}).Validate())
	require.Error(t, (&GenerateBillingPeriodRequest{CutoffDate: "2025-05"}).Validate())
}

func TestNewOrderResponse(t *testing.T) {
	inhabitantID := "5b0a8d1e-8b6f-4a55-9a35-55d8a3e6a7c2"
	now := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	order := &booking.Order{
		ID:             "0e7f8c3a-1f1a-4f0e-9b6d-3f1c7e2d9a10",
		DinnerEventID:  "9d3b5b1c-2b55-4d7e-8b0a-7a4c0f0b6c21",
		InhabitantID:   &inhabitantID,
		HouseholdID:    "a6f7e6a0-3c4e-4c83-9a62-1c8e1a1e0b55",
		BookedByUserID: booking.SystemUserID,
		TicketType:     season.TicketTypeAdult,
		PriceAtBooking: 4500,
		DinnerMode:     dinner.ModeTakeaway,
		State:          booking.StateReleased,
		ReleasedAt:     &now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	response := NewOrderResponse(order)

	assert.Equal(t, "ADULT", response.TicketType)
	assert.Equal(t, "TAKEAWAY", response.DinnerMode)
	assert.Equal(t, booking.StateReleased, response.State)
	assert.Equal(t, &inhabitantID, response.InhabitantID)
	assert.Equal(t, &now, response.ReleasedAt)
}

func TestNewBillingPeriodResponse_IncludesInvoices(t *testing.T) {
	summary := &billing.BillingPeriodSummary{
		ID:            "c1c7d7a2-6f0e-4a7b-bf1f-0c8f2d1e4a33",
		BillingPeriod: "2025-05",
		PeriodStart:   calendar.Date(2025, time.April, 18),
		PeriodEnd:     calendar.Date(2025, time.May, 17),
		PaymentDate:   calendar.Date(2025, time.June, 1),
		TotalAmount:   9000,
		Invoices: []*billing.Invoice{
			{HouseholdID: "a6f7e6a0-3c4e-4c83-9a62-1c8e1a1e0b55", PbsID: 1012, Amount: 9000,
				CutoffDate: calendar.Date(2025, time.May, 17), PaymentDate: calendar.Date(2025, time.June, 1)},
		},
	}

	response := NewBillingPeriodResponse(summary)

	assert.Equal(t, "2025-04-18", response.PeriodStart)
	assert.Equal(t, "2025-06-01", response.PaymentDate)
	require.Len(t, response.Invoices, 1)
	assert.Equal(t, 1012, response.Invoices[0].PbsID)
	assert.Equal(t, "2025-05-17", response.Invoices[0].CutoffDate)
}
