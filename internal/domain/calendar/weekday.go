package calendar

import "time"

// Weekday is a lower-case English day name as stored in preferences and season plans.
type Weekday string

// Weekday values
const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists the days starting on Monday.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var fromTime = map[time.Weekday]Weekday{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// WeekdayOf returns the weekday of the calendar date d.
func WeekdayOf(d time.Time) Weekday {
	return fromTime[d.Weekday()]
}

// Valid reports whether w is one of the seven known days.
func (w Weekday) Valid() bool {
	for _, day := range Weekdays {
		if day == w {
			return true
		}
	}
	return false
}
