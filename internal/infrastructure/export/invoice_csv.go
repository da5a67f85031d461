package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Mathmagicians/theslope/internal/domain/billing"
)

var invoiceHeader = []string{"pbs_id", "household", "address", "tickets", "amount_dkk", "billing_period", "payment_date"}

// InvoiceCSVEncoder writes one row per household invoice
type InvoiceCSVEncoder struct {
	// Comma defaults to ','
	Comma rune
}

// NewInvoiceCSVEncoder creates an encoder with the default separator
func NewInvoiceCSVEncoder() *InvoiceCSVEncoder {
	return &InvoiceCSVEncoder{Comma: ','}
}

// Encode writes the header and the lines of period
func (e *InvoiceCSVEncoder) Encode(w io.Writer, period *billing.BillingPeriodSummary, lines []billing.InvoiceLine) error {
	cw := csv.NewWriter(w)
	if e.Comma != 0 {
		cw.Comma = e.Comma
	}

	if err := cw.Write(invoiceHeader); err != nil {
		return fmt.Errorf("failed to write invoice header: %w", err)
	}
	paymentDate := period.PaymentDate.Format("2006-01-02")
	for _, line := range lines {
		record := []string{
			strconv.Itoa(line.PbsID),
			line.HouseholdName,
			line.Address,
			strconv.Itoa(line.Tickets),
			billing.Kroner(line.Amount),
			period.BillingPeriod,
			paymentDate,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write invoice of %d: %w", line.PbsID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush invoices: %w", err)
	}
	return nil
}
