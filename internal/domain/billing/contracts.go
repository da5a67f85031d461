package billing

import (
	"context"
	"io"
	"time"
)

// BillingService runs the billing pipeline and exposes its results.
type BillingService interface {
	// CloseOrders consumes every dinner that has started and closes its
	// booked and released orders. It returns the number of closed orders.
	CloseOrders(ctx context.Context) (int, error)

	// CreateTransactions creates the missing transaction of every closed order.
	CreateTransactions(ctx context.Context) (int, error)

	// GenerateBillingPeriod invoices all unbilled transactions up to cutoff.
	// An existing period is returned unchanged with created=false.
	GenerateBillingPeriod(ctx context.Context, cutoff time.Time) (summary *BillingPeriodSummary, created bool, err error)

	ListPeriods(ctx context.Context) ([]*BillingPeriodSummary, error)
	// GetPeriod returns the summary with its invoices
	GetPeriod(ctx context.Context, periodID string) (*BillingPeriodSummary, error)
	ExportInvoices(ctx context.Context, periodID string, w io.Writer) error
	ListHouseholdInvoices(ctx context.Context, householdID string) ([]*Invoice, error)
	ListHouseholdTransactions(ctx context.Context, householdID string) ([]*Transaction, error)
}

// TransactionRepository defines the interface for Transaction-related operations
type TransactionRepository interface {
	Create(ctx context.Context, transaction *Transaction) error
	// OrderIDsWithTransactions returns the subset of orderIDs that already have a transaction
	OrderIDsWithTransactions(ctx context.Context, orderIDs []string) (map[string]bool, error)
	// ListUnbilled returns transactions without invoice for dinners up to and including cutoff
	ListUnbilled(ctx context.Context, cutoff time.Time) ([]*Transaction, error)
	ListByHousehold(ctx context.Context, householdID string) ([]*Transaction, error)
	AssignInvoice(ctx context.Context, transactionIDs []string, invoiceID string) error
}

// BillingPeriodRepository defines the interface for billing periods and their invoices
type BillingPeriodRepository interface {
	// Create stores the summary together with its invoices
	Create(ctx context.Context, summary *BillingPeriodSummary) error
	GetByID(ctx context.Context, periodID string) (*BillingPeriodSummary, error)
	GetByPeriod(ctx context.Context, billingPeriod string) (*BillingPeriodSummary, error)
	List(ctx context.Context) ([]*BillingPeriodSummary, error)
	ListInvoicesByHousehold(ctx context.Context, householdID string) ([]*Invoice, error)
}

// InvoiceLine is one row of an invoice export.
type InvoiceLine struct {
	PbsID         int
	HouseholdName string
	Address       string
	Amount        int
	Tickets       int
}

// InvoiceEncoder writes invoice lines for the payment service.
type InvoiceEncoder interface {
	Encode(w io.Writer, period *BillingPeriodSummary, lines []InvoiceLine) error
}
