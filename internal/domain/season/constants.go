package season

// TicketType classifies a ticket price.
type TicketType string

// Ticket types
const (
	TicketTypeAdult TicketType = "ADULT"
	TicketTypeChild TicketType = "CHILD"
	TicketTypeBaby  TicketType = "BABY"
)

// Defaults applied to new seasons when the planner leaves them out
const (
	DefaultCancellableDaysBefore           = 10
	DefaultDiningModeEditableMinutesBefore = 90
	DefaultConsecutiveCookingDays          = 1
	DefaultDinnerStartTime                 = "18:00"
	DinnerDuration                         = 2 // hours, used for calendar exports
)
