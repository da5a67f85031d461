package dinner

import (
	"context"
	"io"
)

// DinnerEventService defines the dinner calendar operations.
type DinnerEventService interface {
	// GenerateForSeason creates the events of a season's cooking days.
	// Dates that already have an event are skipped, so the call is idempotent.
	GenerateForSeason(ctx context.Context, seasonID string) ([]*DinnerEvent, error)

	// List retrieves dinner events considering a query filter when set.
	List(ctx context.Context, query *DinnerEventQuery) ([]*DinnerEvent, error)

	// GetByID retrieves a dinner event by ID.
	GetByID(ctx context.Context, eventID string) (*DinnerEvent, error)

	// UpdateMenu sets menu, chef and cost of an event that has not been consumed or cancelled.
	UpdateMenu(ctx context.Context, eventID string, update *MenuUpdate) (*DinnerEvent, error)

	// Announce publishes the menu of a scheduled event.
	Announce(ctx context.Context, eventID string) (*DinnerEvent, error)

	// Cancel cancels the event and every order that is still active on it.
	Cancel(ctx context.Context, userID, eventID string) (*DinnerEvent, error)

	// ChefReport summarises tickets, modes and allergies for the kitchen.
	ChefReport(ctx context.Context, eventID string) (*ChefReport, error)

	// ExportCalendar writes the season's dinners as an iCalendar feed.
	ExportCalendar(ctx context.Context, seasonID string, w io.Writer) error
}

// DinnerEventRepository defines the interface for DinnerEvent-related operations
type DinnerEventRepository interface {
	// CreateBatch adds new events to the database
	CreateBatch(ctx context.Context, events []*DinnerEvent) error
	// List lists events ordered by date with optional filter
	List(ctx context.Context, query *DinnerEventQuery) ([]*DinnerEvent, error)
	// GetByID retrieves an event by ID
	GetByID(ctx context.Context, eventID string) (*DinnerEvent, error)
	// UpdateByID updates an event by ID
	UpdateByID(ctx context.Context, event *DinnerEvent) error
	// DeleteByID deletes an event by ID
	DeleteByID(ctx context.Context, eventID string) error
}

// CalendarEncoder renders calendar entries in a calendar exchange format.
type CalendarEncoder interface {
	Encode(w io.Writer, calendarName string, entries []CalendarEntry) error
}
