package booking

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/season"
	"github.com/Mathmagicians/theslope/internal/pkg/validators"
)

// Validation errors beyond the field tags
var (
	ErrTicketHolder    = errors.New("a ticket belongs either to an inhabitant or is a guest ticket")
	ErrDuplicateTicket = errors.New("inhabitant requested twice in one booking")
)

// Order is one ticket for one dinner. Guest tickets have no inhabitant.
type Order struct {
	ID             string            `validate:"required,uuid4"`
	DinnerEventID  string            `validate:"required,uuid4"`
	InhabitantID   *string           `validate:"omitempty,uuid4"`
	HouseholdID    string            `validate:"required,uuid4"`
	BookedByUserID string            `validate:"required,max=255"`
	TicketPriceID  string            `validate:"required,uuid4"`
	TicketType     season.TicketType `validate:"required,oneof=ADULT CHILD BABY"`
	PriceAtBooking int               `validate:"min=0"`
	DinnerMode     dinner.Mode       `validate:"required,oneof=DINEIN DINEINLATE TAKEAWAY"`
	State          string            `validate:"required,oneof=BOOKED RELEASED CLOSED CANCELLED"`
	IsGuestTicket  bool
	ReleasedAt     *time.Time
	ClosedAt       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate for validating Order struct
func (o *Order) Validate() error {
	if err := validators.ValidateStruct(o); err != nil {
		return err
	}
	if o.IsGuestTicket != (o.InhabitantID == nil) {
		return ErrTicketHolder
	}
	return nil
}

// IsActive reports whether the order still holds a seat.
func (o *Order) IsActive() bool {
	return o.State == StateBooked || o.State == StateReleased
}

// IsBillable reports whether the order ends up on an invoice once closed.
func (o *Order) IsBillable() bool {
	return o.State == StateClosed
}

// Snapshot captures the order for audit rows that must outlive it.
func (o *Order) Snapshot() map[string]interface{} {
	snapshot := map[string]interface{}{
		"id":               o.ID,
		"dinner_event_id":  o.DinnerEventID,
		"household_id":     o.HouseholdID,
		"ticket_price_id":  o.TicketPriceID,
		"ticket_type":      o.TicketType,
		"price_at_booking": o.PriceAtBooking,
		"dinner_mode":      o.DinnerMode,
		"state":            o.State,
		"is_guest_ticket":  o.IsGuestTicket,
	}
	if o.InhabitantID != nil {
		snapshot["inhabitant_id"] = *o.InhabitantID
	}
	return snapshot
}

// OrderHistory is an audit row. OrderID is nil once the order has been deleted;
// AuditData keeps the snapshot.
type OrderHistory struct {
	ID                string  `validate:"required,uuid4"`
	OrderID           *string `validate:"omitempty,uuid4"`
	Action            string  `validate:"required,max=50"`
	PerformedByUserID string  `validate:"required,max=255"`
	AuditData         json.RawMessage
	Timestamp         time.Time `validate:"required"`
}

// Validate for validating OrderHistory struct
func (h *OrderHistory) Validate() error {
	return validators.ValidateStruct(h)
}

// OrderQuery filters orders. Empty slices mean no filter.
type OrderQuery struct {
	DinnerEventIDs []string `validate:"dive,uuid4"`
	InhabitantIDs  []string `validate:"dive,uuid4"`
	HouseholdID    string   `validate:"omitempty,uuid4"`
	States         []string `validate:"dive,oneof=BOOKED RELEASED CLOSED CANCELLED"`
	ExcludeGuests  bool
	Limit          int `validate:"omitempty,min=1"`
	Offset         int `validate:"omitempty,min=0"`
}

// NewOrderQuery creates an OrderQuery without filters.
func NewOrderQuery() *OrderQuery {
	return &OrderQuery{}
}

// Validate for validating OrderQuery struct
func (q *OrderQuery) Validate() error {
	return validators.ValidateStruct(q)
}

// TicketRequest asks for one ticket. Either InhabitantID or GuestTicketType is set.
type TicketRequest struct {
	InhabitantID    *string           `json:"inhabitant_id" validate:"omitempty,uuid4"`
	GuestTicketType season.TicketType `json:"guest_ticket_type" validate:"omitempty,oneof=ADULT CHILD BABY"`
	DinnerMode      dinner.Mode       `json:"dinner_mode" validate:"required,oneof=DINEIN DINEINLATE TAKEAWAY"`
}

// BookingRequest books tickets for one household on one dinner.
type BookingRequest struct {
	HouseholdID string          `json:"household_id" validate:"required,uuid4"`
	Tickets     []TicketRequest `json:"tickets" validate:"required,min=1,max=20,dive"`
}

// Validate for validating BookingRequest struct
func (r *BookingRequest) Validate() error {
	if err := validators.ValidateStruct(r); err != nil {
		return err
	}
	seen := make(map[string]bool, len(r.Tickets))
	for _, ticket := range r.Tickets {
		if (ticket.InhabitantID == nil) == (ticket.GuestTicketType == "") {
			return ErrTicketHolder
		}
		if ticket.InhabitantID != nil {
			if seen[*ticket.InhabitantID] {
				return ErrDuplicateTicket
			}
			seen[*ticket.InhabitantID] = true
		}
	}
	return nil
}
