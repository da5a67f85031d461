package billing

import (
	"fmt"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/pkg/validators"
)

// BillingPeriodLayout formats the key of a billing period.
const BillingPeriodLayout = "2006-01"

// OrderSnapshot keeps what an invoice line needs after the order is gone.
type OrderSnapshot struct {
	OrderID        string `json:"order_id"`
	DinnerEventID  string `json:"dinner_event_id"`
	DinnerDate     string `json:"dinner_date"`
	InhabitantID   string `json:"inhabitant_id,omitempty"`
	InhabitantName string `json:"inhabitant_name,omitempty"`
	TicketType     string `json:"ticket_type"`
	DinnerMode     string `json:"dinner_mode"`
	IsGuestTicket  bool   `json:"is_guest_ticket"`
	WasReleased    bool   `json:"was_released"`
}

// Transaction is the charge of one closed order, in øre.
type Transaction struct {
	ID            string        `validate:"required,uuid4"`
	OrderID       *string       `validate:"omitempty,uuid4"`
	HouseholdID   string        `validate:"required,uuid4"`
	Amount        int           `validate:"min=0"`
	DinnerDate    time.Time     `validate:"required"`
	OrderSnapshot OrderSnapshot `validate:"-"`
	InvoiceID     *string       `validate:"omitempty,uuid4"`
	CreatedAt     time.Time     `validate:"required"`
}

// Validate for validating Transaction struct
func (t *Transaction) Validate() error {
	return validators.ValidateStruct(t)
}

// Invoice is what one household pays for one billing period.
type Invoice struct {
	ID               string    `validate:"required,uuid4"`
	BillingPeriodID  string    `validate:"required,uuid4"`
	HouseholdID      string    `validate:"required,uuid4"`
	PbsID            int       `validate:"required,min=1"`
	BillingPeriod    string    `validate:"required,len=7"`
	Amount           int       `validate:"min=0"`
	TransactionCount int       `validate:"min=0"`
	CutoffDate       time.Time `validate:"required"`
	PaymentDate      time.Time `validate:"required"`
}

// Validate for validating Invoice struct
func (i *Invoice) Validate() error {
	return validators.ValidateStruct(i)
}

// BillingPeriodSummary aggregates one billing run.
type BillingPeriodSummary struct {
	ID             string    `validate:"required,uuid4"`
	BillingPeriod  string    `validate:"required,len=7"`
	PeriodStart    time.Time `validate:"required"`
	PeriodEnd      time.Time `validate:"required,gtefield=PeriodStart"`
	PaymentDate    time.Time `validate:"required,gtfield=PeriodEnd"`
	TotalAmount    int       `validate:"min=0"`
	HouseholdCount int       `validate:"min=0"`
	TicketCount    int       `validate:"min=0"`
	CreatedAt      time.Time `validate:"required"`
	Invoices       []*Invoice
}

// Validate for validating BillingPeriodSummary struct
func (s *BillingPeriodSummary) Validate() error {
	return validators.ValidateStruct(s)
}

// Period describes the dates of the billing period cut on cutoff: it runs from
// the day after the previous month's cutoff through the cutoff, and is paid on
// the first day of the following month.
type Period struct {
	Key         string
	Start       time.Time
	End         time.Time
	PaymentDate time.Time
}

// PeriodFor returns the billing period whose cutoff is the date cutoff. The
// period starts the day after the same day of the previous month, clamped to
// that month's last day.
func PeriodFor(cutoff time.Time) Period {
	end := calendar.Normalize(cutoff)
	start := previousCutoff(end).AddDate(0, 0, 1)
	payment := calendar.Date(end.Year(), end.Month(), 1).AddDate(0, 1, 0)
	return Period{
		Key:         end.Format(BillingPeriodLayout),
		Start:       start,
		End:         end,
		PaymentDate: payment,
	}
}

func previousCutoff(end time.Time) time.Time {
	lastDay := calendar.Date(end.Year(), end.Month(), 0).Day()
	day := end.Day()
	if day > lastDay {
		day = lastDay
	}
	return calendar.Date(end.Year(), end.Month()-1, day)
}

// CutoffFor returns the cutoff date of the month of d for the given cutoff day.
func CutoffFor(d time.Time, cutoffDay int) time.Time {
	return calendar.Date(d.Year(), d.Month(), cutoffDay)
}

// Kroner formats an amount in øre as kroner with two decimals.
func Kroner(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
