package season

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/pkg/validators"
)

// TicketPrice is the price of one ticket type in a season, in øre.
// MaximumAgeLimit is the oldest age (inclusive) the price applies to; nil means no limit.
type TicketPrice struct {
	ID              string     `validate:"required,uuid4"`
	SeasonID        string     `validate:"required,uuid4"`
	TicketType      TicketType `validate:"required,oneof=ADULT CHILD BABY"`
	Price           int        `validate:"min=0"`
	MaximumAgeLimit *int       `validate:"omitempty,min=0,max=120"`
	Description     string     `validate:"max=255"`
}

// Season entity
type Season struct {
	ID                              string               `validate:"required,uuid4"`
	ShortName                       string               `validate:"required,min=1,max=50"`
	StartDate                       time.Time            `validate:"required"`
	EndDate                         time.Time            `validate:"required,gtefield=StartDate"`
	CookingDays                     []calendar.Weekday   `validate:"required,min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Holidays                        []calendar.DateRange `validate:"dive"`
	TicketPrices                    []TicketPrice        `validate:"required,min=1,dive"`
	CancellableDaysBefore           int                  `validate:"min=0,max=60"`
	DiningModeEditableMinutesBefore int                  `validate:"min=0,max=1440"`
	ConsecutiveCookingDays          int                  `validate:"min=1,max=14"`
	DinnerStartTime                 string               `validate:"required,timeofday"`
	IsActive                        bool
}

// Validation errors beyond the field tags
var (
	ErrHolidayOutsideSeason = errors.New("holiday lies outside the season")
	ErrMissingAdultPrice    = errors.New("season has no ADULT ticket price")
	ErrDuplicateTicketPrice = errors.New("ticket type and age limit used twice")
	ErrNoMatchingPrice      = errors.New("no ticket price matches")
)

// Validate for validating Season struct
func (s *Season) Validate() error {
	if err := validators.ValidateStruct(s); err != nil {
		return err
	}

	period := s.Period()
	for _, holiday := range s.Holidays {
		if !period.Contains(holiday.Start) || !period.Contains(holiday.End) {
			return fmt.Errorf("%w: %s - %s", ErrHolidayOutsideSeason,
				holiday.Start.Format(calendar.DateLayout), holiday.End.Format(calendar.DateLayout))
		}
	}

	seen := make(map[string]bool)
	hasAdult := false
	for _, price := range s.TicketPrices {
		if price.TicketType == TicketTypeAdult {
			hasAdult = true
		}
		key := string(price.TicketType)
		if price.MaximumAgeLimit != nil {
			key = fmt.Sprintf("%s/%d", key, *price.MaximumAgeLimit)
		}
		if seen[key] {
			return fmt.Errorf("%w: %s", ErrDuplicateTicketPrice, key)
		}
		seen[key] = true
	}
	if !hasAdult {
		return ErrMissingAdultPrice
	}

	return nil
}

// Period returns the season's dates as a range.
func (s *Season) Period() calendar.DateRange {
	return calendar.DateRange{Start: s.StartDate, End: s.EndDate}
}

// IsCookingDay reports whether dinner is served on date d.
func (s *Season) IsCookingDay(d time.Time) bool {
	if !s.Period().Contains(d) {
		return false
	}

	weekday := calendar.WeekdayOf(d)
	cooking := false
	for _, day := range s.CookingDays {
		if day == weekday {
			cooking = true
			break
		}
	}
	if !cooking {
		return false
	}

	for _, holiday := range s.Holidays {
		if holiday.Contains(d) {
			return false
		}
	}
	return true
}

// DinnerDates lists every cooking day of the season in order.
func (s *Season) DinnerDates() []time.Time {
	var dates []time.Time
	for _, d := range s.Period().Dates() {
		if s.IsCookingDay(d) {
			dates = append(dates, d)
		}
	}
	return dates
}

// DinnerStart is the wall-clock start of dinner on date d.
func (s *Season) DinnerStart(d time.Time, loc *time.Location) time.Time {
	start, err := calendar.At(d, s.DinnerStartTime, loc)
	if err != nil {
		// DinnerStartTime is validated on every write
		start, _ = calendar.At(d, DefaultDinnerStartTime, loc)
	}
	return start
}

// CancellationDeadline is the last instant a ticket for date d can be cancelled
// without being charged: local midnight CancellableDaysBefore days ahead of the dinner.
func (s *Season) CancellationDeadline(d time.Time, loc *time.Location) time.Time {
	return calendar.Midnight(d, loc).AddDate(0, 0, -s.CancellableDaysBefore)
}

// DiningModeDeadline is the last instant the dinner mode of a ticket for date d can change.
func (s *Season) DiningModeDeadline(d time.Time, loc *time.Location) time.Time {
	return s.DinnerStart(d, loc).Add(-time.Duration(s.DiningModeEditableMinutesBefore) * time.Minute)
}

// PriceForAge picks the ticket price of an inhabitant of the given age: the
// price with the lowest age limit still covering the age, otherwise the
// unlimited ADULT price. A nil age (unknown birth date) always gets ADULT.
func (s *Season) PriceForAge(age *int) (*TicketPrice, error) {
	if age != nil {
		limited := make([]TicketPrice, 0, len(s.TicketPrices))
		for _, price := range s.TicketPrices {
			if price.MaximumAgeLimit != nil && *price.MaximumAgeLimit >= *age {
				limited = append(limited, price)
			}
		}
		sort.SliceStable(limited, func(i, j int) bool {
			return *limited[i].MaximumAgeLimit < *limited[j].MaximumAgeLimit
		})
		if len(limited) > 0 {
			return &limited[0], nil
		}
	}

	return s.PriceForType(TicketTypeAdult)
}

// PriceForType returns the price of a ticket type, preferring the entry without an
// age limit. Used for guest tickets where no birth date is known.
func (s *Season) PriceForType(ticketType TicketType) (*TicketPrice, error) {
	var match *TicketPrice
	for i := range s.TicketPrices {
		price := &s.TicketPrices[i]
		if price.TicketType != ticketType {
			continue
		}
		if price.MaximumAgeLimit == nil {
			return price, nil
		}
		if match == nil || *price.MaximumAgeLimit > *match.MaximumAgeLimit {
			match = price
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoMatchingPrice, ticketType)
	}
	return match, nil
}

// ApplyDefaults fills in zero-valued settings.
func (s *Season) ApplyDefaults() {
	if s.ConsecutiveCookingDays == 0 {
		s.ConsecutiveCookingDays = DefaultConsecutiveCookingDays
	}
	if s.DinnerStartTime == "" {
		s.DinnerStartTime = DefaultDinnerStartTime
	}
	s.StartDate = calendar.Normalize(s.StartDate)
	s.EndDate = calendar.Normalize(s.EndDate)
	for i := range s.Holidays {
		s.Holidays[i].Start = calendar.Normalize(s.Holidays[i].Start)
		s.Holidays[i].End = calendar.Normalize(s.Holidays[i].End)
	}
}

// SeasonQuery paginates season listings.
type SeasonQuery struct {
	Limit     int    `validate:"omitempty,min=1"`
	Offset    int    `validate:"omitempty,min=0"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewSeasonQuery creates a SeasonQuery with default values
func NewSeasonQuery() *SeasonQuery {
	return &SeasonQuery{SortOrder: "desc"}
}

// Validate for validating SeasonQuery struct
func (q *SeasonQuery) Validate() error {
	return validators.ValidateStruct(q)
}
