// Package maintenance defines the scheduled job that keeps bookings and
// billing up to date.
package maintenance

import (
	"context"
	"time"
)

// DailyReport counts what one maintenance run did.
type DailyReport struct {
	StartedAt            time.Time
	FinishedAt           time.Time
	ClosedOrders         int
	CreatedTransactions  int
	ScaffoldedHouseholds int
	ScaffoldChanges      int
	// ScaffoldFailures holds one message per scaffolding error. Billing runs regardless.
	ScaffoldFailures     []string
	BillingPeriod        string
	BillingPeriodCreated bool
}

// Service runs maintenance. Every step is idempotent, so the job may run any
// number of times a day and a missed day is caught up by the next run.
type Service interface {
	RunDaily(ctx context.Context) (*DailyReport, error)
}
