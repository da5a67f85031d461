package export

import (
	"fmt"
	"io"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/dinner"

	ics "github.com/arran4/golang-ical"
)

// ICalEncoder writes dinner events as an iCalendar feed
type ICalEncoder struct {
	ProductID string
	// Now stamps DTSTAMP; defaults to time.Now
	Now func() time.Time
}

// NewICalEncoder creates an encoder
func NewICalEncoder() *ICalEncoder {
	return &ICalEncoder{ProductID: "-//Skraaningen//Faellesspisning//DA", Now: time.Now}
}

// Encode writes one VEVENT per entry
func (e *ICalEncoder) Encode(w io.Writer, calendarName string, entries []dinner.CalendarEntry) error {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	stamp := now().UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(e.ProductID)
	cal.SetXWRCalName(calendarName)

	for _, entry := range entries {
		event := cal.AddEvent(entry.UID)
		event.SetDtStampTime(stamp)
		event.SetStartAt(entry.Start.UTC())
		event.SetEndAt(entry.End.UTC())
		event.SetSummary(entry.Summary)
		if entry.Description != "" {
			event.SetDescription(entry.Description)
		}
		if entry.Cancelled {
			event.SetStatus(ics.ObjectStatusCancelled)
		} else {
			event.SetStatus(ics.ObjectStatusConfirmed)
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}
