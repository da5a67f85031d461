package models

import (
	"encoding/json"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/season"
)

// OrderModel is the GORM database model for orders
type OrderModel struct {
	ID             string  `gorm:"primaryKey;type:uuid"`
	DinnerEventID  string  `gorm:"not null;index:idx_orders_event_inhabitant;type:uuid"`
	InhabitantID   *string `gorm:"index:idx_orders_event_inhabitant;type:uuid"`
	HouseholdID    string  `gorm:"not null;index;type:uuid"`
	BookedByUserID string  `gorm:"not null;type:varchar(255)"`
	TicketPriceID  string  `gorm:"not null;type:uuid"`
	TicketType     string  `gorm:"not null;type:varchar(10)"`
	PriceAtBooking int     `gorm:"not null"`
	DinnerMode     string  `gorm:"not null;type:varchar(20)"`
	State          string  `gorm:"not null;index;type:varchar(20)"`
	IsGuestTicket  bool    `gorm:"not null;default:false"`
	ReleasedAt     *time.Time
	ClosedAt       *time.Time
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts GORM model to domain entity
func (m *OrderModel) ToDomain() *booking.Order {
	return &booking.Order{
		ID:             m.ID,
		DinnerEventID:  m.DinnerEventID,
		InhabitantID:   m.InhabitantID,
		HouseholdID:    m.HouseholdID,
		BookedByUserID: m.BookedByUserID,
		TicketPriceID:  m.TicketPriceID,
		TicketType:     season.TicketType(m.TicketType),
		PriceAtBooking: m.PriceAtBooking,
		DinnerMode:     dinner.Mode(m.DinnerMode),
		State:          m.State,
		IsGuestTicket:  m.IsGuestTicket,
		ReleasedAt:     utcPtr(m.ReleasedAt),
		ClosedAt:       utcPtr(m.ClosedAt),
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

// FromDomain converts domain entity to GORM model
func (m *OrderModel) FromDomain(o *booking.Order) {
	m.ID = o.ID
	m.DinnerEventID = o.DinnerEventID
	m.InhabitantID = o.InhabitantID
	m.HouseholdID = o.HouseholdID
	m.BookedByUserID = o.BookedByUserID
	m.TicketPriceID = o.TicketPriceID
	m.TicketType = string(o.TicketType)
	m.PriceAtBooking = o.PriceAtBooking
	m.DinnerMode = string(o.DinnerMode)
	m.State = o.State
	m.IsGuestTicket = o.IsGuestTicket
	m.ReleasedAt = utcPtr(o.ReleasedAt)
	m.ClosedAt = utcPtr(o.ClosedAt)
	m.CreatedAt = o.CreatedAt.UTC()
	m.UpdatedAt = o.UpdatedAt.UTC()
}

// OrderHistoryModel is the GORM database model for the order audit trail.
// OrderID is nulled when the order is deleted.
type OrderHistoryModel struct {
	ID                string    `gorm:"primaryKey;type:uuid"`
	OrderID           *string   `gorm:"index;type:uuid"`
	Action            string    `gorm:"not null;type:varchar(50)"`
	PerformedByUserID string    `gorm:"not null;type:varchar(255)"`
	AuditData         string    `gorm:"type:text"`
	Timestamp         time.Time `gorm:"column:recorded_at;not null;index"`
	// Sequence numbers the entries of one order in the order they were written.
	Sequence          int64     `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (OrderHistoryModel) TableName() string {
	return "order_history"
}

// ToDomain converts GORM model to domain entity
func (m *OrderHistoryModel) ToDomain() *booking.OrderHistory {
	var data json.RawMessage
	if m.AuditData != "" {
		data = json.RawMessage(m.AuditData)
	}
	return &booking.OrderHistory{
		ID:                m.ID,
		OrderID:           m.OrderID,
		Action:            m.Action,
		PerformedByUserID: m.PerformedByUserID,
		AuditData:         data,
		Timestamp:         m.Timestamp.UTC(),
	}
}

// FromDomain converts domain entity to GORM model
func (m *OrderHistoryModel) FromDomain(h *booking.OrderHistory) {
	m.ID = h.ID
	m.OrderID = h.OrderID
	m.Action = h.Action
	m.PerformedByUserID = h.PerformedByUserID
	m.AuditData = string(h.AuditData)
	m.Timestamp = h.Timestamp.UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
