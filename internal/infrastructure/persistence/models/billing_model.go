package models

import (
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/billing"
	"github.com/Mathmagicians/theslope/internal/domain/calendar"
)

// TransactionModel is the GORM database model for transactions.
// OrderID is unique so an order is charged at most once.
type TransactionModel struct {
	ID            string                `gorm:"primaryKey;type:uuid"`
	OrderID       *string               `gorm:"uniqueIndex;type:uuid"`
	HouseholdID   string                `gorm:"not null;index;type:uuid"`
	Amount        int                   `gorm:"not null"`
	DinnerDate    time.Time             `gorm:"not null;index"`
	OrderSnapshot billing.OrderSnapshot `gorm:"serializer:json;type:text"`
	InvoiceID     *string               `gorm:"index;type:uuid"`
	CreatedAt     time.Time             `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts GORM model to domain entity
func (m *TransactionModel) ToDomain() *billing.Transaction {
	return &billing.Transaction{
		ID:            m.ID,
		OrderID:       m.OrderID,
		HouseholdID:   m.HouseholdID,
		Amount:        m.Amount,
		DinnerDate:    calendar.Normalize(m.DinnerDate.UTC()),
		OrderSnapshot: m.OrderSnapshot,
		InvoiceID:     m.InvoiceID,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}

// FromDomain converts domain entity to GORM model
func (m *TransactionModel) FromDomain(t *billing.Transaction) {
	m.ID = t.ID
	m.OrderID = t.OrderID
	m.HouseholdID = t.HouseholdID
	m.Amount = t.Amount
	m.DinnerDate = calendar.Normalize(t.DinnerDate)
	m.OrderSnapshot = t.OrderSnapshot
	m.InvoiceID = t.InvoiceID
	m.CreatedAt = t.CreatedAt.UTC()
}

// BillingPeriodModel is the GORM database model for billing period summaries
type BillingPeriodModel struct {
	ID             string         `gorm:"primaryKey;type:uuid"`
	BillingPeriod  string         `gorm:"not null;uniqueIndex;type:varchar(7)"`
	PeriodStart    time.Time      `gorm:"not null"`
	PeriodEnd      time.Time      `gorm:"not null"`
	PaymentDate    time.Time      `gorm:"not null"`
	TotalAmount    int            `gorm:"not null"`
	HouseholdCount int            `gorm:"not null"`
	TicketCount    int            `gorm:"not null"`
	CreatedAt      time.Time      `gorm:"not null"`
	Invoices       []InvoiceModel `gorm:"foreignKey:BillingPeriodID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (BillingPeriodModel) TableName() string {
	return "billing_periods"
}

// InvoiceModel is the GORM database model for invoices
type InvoiceModel struct {
	ID               string    `gorm:"primaryKey;type:uuid"`
	BillingPeriodID  string    `gorm:"not null;index;type:uuid"`
	HouseholdID      string    `gorm:"not null;index;type:uuid"`
	PbsID            int       `gorm:"not null"`
	BillingPeriod    string    `gorm:"not null;type:varchar(7)"`
	Amount           int       `gorm:"not null"`
	TransactionCount int       `gorm:"not null"`
	CutoffDate       time.Time `gorm:"not null"`
	PaymentDate      time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts GORM model to domain entity
func (m *BillingPeriodModel) ToDomain() *billing.BillingPeriodSummary {
	invoices := make([]*billing.Invoice, len(m.Invoices))
	for i := range m.Invoices {
		invoices[i] = m.Invoices[i].ToDomain()
	}
	return &billing.BillingPeriodSummary{
		ID:             m.ID,
		BillingPeriod:  m.BillingPeriod,
		PeriodStart:    calendar.Normalize(m.PeriodStart.UTC()),
		PeriodEnd:      calendar.Normalize(m.PeriodEnd.UTC()),
		PaymentDate:    calendar.Normalize(m.PaymentDate.UTC()),
		TotalAmount:    m.TotalAmount,
		HouseholdCount: m.HouseholdCount,
		TicketCount:    m.TicketCount,
		CreatedAt:      m.CreatedAt.UTC(),
		Invoices:       invoices,
	}
}

// FromDomain converts domain entity to GORM model
func (m *BillingPeriodModel) FromDomain(s *billing.BillingPeriodSummary) {
	m.ID = s.ID
	m.BillingPeriod = s.BillingPeriod
	m.PeriodStart = calendar.Normalize(s.PeriodStart)
	m.PeriodEnd = calendar.Normalize(s.PeriodEnd)
	m.PaymentDate = calendar.Normalize(s.PaymentDate)
	m.TotalAmount = s.TotalAmount
	m.HouseholdCount = s.HouseholdCount
	m.TicketCount = s.TicketCount
	m.CreatedAt = s.CreatedAt.UTC()
	m.Invoices = make([]InvoiceModel, len(s.Invoices))
	for i, invoice := range s.Invoices {
		m.Invoices[i].FromDomain(invoice)
	}
}

// ToDomain converts GORM model to domain entity
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		ID:               m.ID,
		BillingPeriodID:  m.BillingPeriodID,
		HouseholdID:      m.HouseholdID,
		PbsID:            m.PbsID,
		BillingPeriod:    m.BillingPeriod,
		Amount:           m.Amount,
		TransactionCount: m.TransactionCount,
		CutoffDate:       calendar.Normalize(m.CutoffDate.UTC()),
		PaymentDate:      calendar.Normalize(m.PaymentDate.UTC()),
	}
}

// FromDomain converts domain entity to GORM model
func (m *InvoiceModel) FromDomain(i *billing.Invoice) {
	m.ID = i.ID
	m.BillingPeriodID = i.BillingPeriodID
	m.HouseholdID = i.HouseholdID
	m.PbsID = i.PbsID
	m.BillingPeriod = i.BillingPeriod
	m.Amount = i.Amount
	m.TransactionCount = i.TransactionCount
	m.CutoffDate = calendar.Normalize(i.CutoffDate)
	m.PaymentDate = calendar.Normalize(i.PaymentDate)
}
