//go:build unit
// +build unit

package season

import (
	"testing"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func newTestSeason() *Season {
	id := uuid.NewString()
	return &Season{
		ID:          id,
		ShortName:   "Autumn 2025",
		StartDate:   calendar.Date(2025, time.August, 1),
		EndDate:     calendar.Date(2025, time.December, 19),
		CookingDays: []calendar.Weekday{calendar.Monday, calendar.Tuesday, calendar.Wednesday, calendar.Thursday},
		Holidays: []calendar.DateRange{
			{Start: calendar.Date(2025, time.October, 13), End: calendar.Date(2025, time.October, 17)},
		},
		TicketPrices: []TicketPrice{
			{ID: uuid.NewString(), SeasonID: id, TicketType: TicketTypeAdult, Price: 4000},
			{ID: uuid.NewString(), SeasonID: id, TicketType: TicketTypeChild, Price: 2000, MaximumAgeLimit: intPtr(12)},
			{ID: uuid.NewString(), SeasonID: id, TicketType: TicketTypeChild, Price: 1500, MaximumAgeLimit: intPtr(6)},
			{ID: uuid.NewString(), SeasonID: id, TicketType: TicketTypeBaby, Price: 0, MaximumAgeLimit: intPtr(2)},
		},
		CancellableDaysBefore:           10,
		DiningModeEditableMinutesBefore: 90,
		ConsecutiveCookingDays:          2,
		DinnerStartTime:                 "18:00",
	}
}

func TestSeason_Validate(t *testing.T) {
	s := newTestSeason()
	require.NoError(t, s.Validate())
}

func TestSeason_ValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Season)
		target error
	}{
		{"end before start", func(s *Season) { s.EndDate = calendar.Date(2025, time.July, 1) }, nil},
		{"no cooking days", func(s *Season) { s.CookingDays = nil }, nil},
		{"unknown weekday", func(s *Season) { s.CookingDays = []calendar.Weekday{"mandag"} }, nil},
		{"bad dinner time", func(s *Season) { s.DinnerStartTime = "25:00" }, nil},
		{"holiday outside", func(s *Season) {
			s.Holidays = []calendar.DateRange{{Start: calendar.Date(2025, time.December, 20), End: calendar.Date(2025, time.December, 31)}}
		}, ErrHolidayOutsideSeason},
		{"missing adult price", func(s *Season) { s.TicketPrices = s.TicketPrices[1:] }, ErrMissingAdultPrice},
		{"duplicate price", func(s *Season) {
			s.TicketPrices = append(s.TicketPrices, TicketPrice{ID: uuid.NewString(), SeasonID: s.ID, TicketType: TicketTypeChild, Price: 1, MaximumAgeLimit: intPtr(12)})
		}, ErrDuplicateTicketPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSeason()
			tt.mutate(s)
			err := s.Validate()
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestSeason_IsCookingDay(t *testing.T) {
	s := newTestSeason()

	assert.True(t, s.IsCookingDay(calendar.Date(2025, time.August, 4)), "monday")
	assert.False(t, s.IsCookingDay(calendar.Date(2025, time.August, 8)), "friday")
	assert.False(t, s.IsCookingDay(calendar.Date(2025, time.October, 14)), "holiday")
	assert.False(t, s.IsCookingDay(calendar.Date(2025, time.December, 22)), "after season")
}

func TestSeason_DinnerDates(t *testing.T) {
	s := newTestSeason()
	s.StartDate = calendar.Date(2025, time.October, 6)
	s.EndDate = calendar.Date(2025, time.October, 19)

	dates := s.DinnerDates()
	require.Len(t, dates, 4)
	assert.Equal(t, calendar.Date(2025, time.October, 6), dates[0])
	assert.Equal(t, calendar.Date(2025, time.October, 9), dates[3])
}

func TestSeason_Deadlines(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Copenhagen")
	require.NoError(t, err)
	s := newTestSeason()
	d := calendar.Date(2025, time.November, 3)

	assert.True(t, time.Date(2025, time.November, 3, 18, 0, 0, 0, loc).Equal(s.DinnerStart(d, loc)))
	assert.True(t, time.Date(2025, time.October, 24, 0, 0, 0, 0, loc).Equal(s.CancellationDeadline(d, loc)))
	assert.True(t, time.Date(2025, time.November, 3, 16, 30, 0, 0, loc).Equal(s.DiningModeDeadline(d, loc)))
}

func TestSeason_PriceForAge(t *testing.T) {
	s := newTestSeason()

	tests := []struct {
		name  string
		age   *int
		want  TicketType
		price int
	}{
		{"unknown age", nil, TicketTypeAdult, 4000},
		{"baby", intPtr(0), TicketTypeBaby, 0},
		{"baby limit inclusive", intPtr(2), TicketTypeBaby, 0},
		{"small child", intPtr(3), TicketTypeChild, 1500},
		{"child", intPtr(7), TicketTypeChild, 2000},
		{"child limit inclusive", intPtr(12), TicketTypeChild, 2000},
		{"adult", intPtr(13), TicketTypeAdult, 4000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := s.PriceForAge(tt.age)
			require.NoError(t, err)
			assert.Equal(t, tt.want, price.TicketType)
			assert.Equal(t, tt.price, price.Price)
		})
	}
}

func TestSeason_PriceForType(t *testing.T) {
	s := newTestSeason()

	price, err := s.PriceForType(TicketTypeChild)
	require.NoError(t, err)
	assert.Equal(t, 2000, price.Price, "highest age limit wins")

	s.TicketPrices = s.TicketPrices[:1]
	_, err = s.PriceForType(TicketTypeBaby)
	assert.ErrorIs(t, err, ErrNoMatchingPrice)
}

func TestSeason_ApplyDefaults(t *testing.T) {
	s := &Season{
		StartDate: time.Date(2025, time.August, 1, 13, 45, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.December, 19, 8, 0, 0, 0, time.UTC),
	}
	s.ApplyDefaults()

	assert.Equal(t, DefaultConsecutiveCookingDays, s.ConsecutiveCookingDays)
	assert.Equal(t, DefaultDinnerStartTime, s.DinnerStartTime)
	assert.Equal(t, calendar.Date(2025, time.August, 1), s.StartDate)
}
