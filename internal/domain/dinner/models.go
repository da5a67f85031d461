package dinner

import (
	"time"

	"github.com/Mathmagicians/theslope/internal/pkg/validators"
)

// DinnerEvent entity
type DinnerEvent struct {
	ID              string    `validate:"required,uuid4"`
	SeasonID        string    `validate:"required,uuid4"`
	Date            time.Time `validate:"required"`
	MenuTitle       string    `validate:"max=255"`
	MenuDescription string    `validate:"max=2000"`
	ChefID          *string   `validate:"omitempty,uuid4"`
	CookingTeamID   *string   `validate:"omitempty,uuid4"`
	State           string    `validate:"required,oneof=SCHEDULED ANNOUNCED CANCELLED CONSUMED"`
	TotalCost       int       `validate:"min=0"`
}

// Validate for validating DinnerEvent struct
func (e *DinnerEvent) Validate() error {
	return validators.ValidateStruct(e)
}

// IsBookable reports whether orders may still be placed or changed for the event.
func (e *DinnerEvent) IsBookable() bool {
	return e.State == StateScheduled || e.State == StateAnnounced
}

// MenuUpdate carries the chef's menu for an event.
type MenuUpdate struct {
	MenuTitle       string  `json:"menu_title" validate:"required,min=1,max=255"`
	MenuDescription string  `json:"menu_description" validate:"max=2000"`
	ChefID          *string `json:"chef_id" validate:"omitempty,uuid4"`
	TotalCost       int     `json:"total_cost" validate:"min=0"`
}

// Validate for validating MenuUpdate struct
func (u *MenuUpdate) Validate() error {
	return validators.ValidateStruct(u)
}

// DinnerEventQuery filters dinner events. Zero values mean no filter.
type DinnerEventQuery struct {
	SeasonID string    `validate:"omitempty,uuid4"`
	From     time.Time // inclusive
	To       time.Time // inclusive
	States   []string  `validate:"dive,oneof=SCHEDULED ANNOUNCED CANCELLED CONSUMED"`
	IDs      []string  `validate:"dive,uuid4"`
	Limit    int       `validate:"omitempty,min=1"`
	Offset   int       `validate:"omitempty,min=0"`
}

// NewDinnerEventQuery creates a DinnerEventQuery without filters.
func NewDinnerEventQuery() *DinnerEventQuery {
	return &DinnerEventQuery{}
}

// Validate for validating DinnerEventQuery struct
func (q *DinnerEventQuery) Validate() error {
	if err := validators.ValidateStruct(q); err != nil {
		return err
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.To.Before(q.From) {
		return ErrInvertedRange
	}
	return nil
}

// ChefReport is the kitchen's view of an event: how many to cook for and what to watch out for.
type ChefReport struct {
	DinnerEventID   string
	Date            time.Time
	MenuTitle       string
	State           string
	TotalTickets    int
	Guests          int
	ReleasedTickets int
	ByMode          map[Mode]int
	ByTicketType    map[string]int
	Allergies       []AttendeeAllergy
}

// AttendeeAllergy is one allergy of an inhabitant holding a ticket.
type AttendeeAllergy struct {
	InhabitantID   string
	InhabitantName string
	AllergyName    string
	Comment        string
}

// CalendarEntry is the exported form of one dinner.
type CalendarEntry struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Cancelled   bool
}
