package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mathmagicians/theslope/internal/domain/billing"
	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/maintenance"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"
	"github.com/Mathmagicians/theslope/internal/pkg/timeutil"
)

// maintenanceService implements the maintenance.Service interface
type maintenanceService struct {
	billing   billing.BillingService
	scaffold  booking.ScaffoldService
	clock     timeutil.Clock
	cutoffDay int
	logger    logger.Logger
}

// NewMaintenanceService creates a new maintenanceService instance. Billing
// periods are cut on cutoffDay of each month.
func NewMaintenanceService(
	billingService billing.BillingService,
	scaffold booking.ScaffoldService,
	clock timeutil.Clock,
	cutoffDay int,
	logger logger.Logger,
) (maintenance.Service, error) {
	if billingService == nil || scaffold == nil || clock == nil {
		return nil, fmt.Errorf("%w: maintenance service", ErrMissingDependency)
	}
	if cutoffDay < 1 || cutoffDay > 28 {
		return nil, fmt.Errorf("cutoff day must be between 1 and 28, got %d", cutoffDay)
	}
	return &maintenanceService{
		billing:   billingService,
		scaffold:  scaffold,
		clock:     clock,
		cutoffDay: cutoffDay,
		logger:    logger,
	}, nil
}

// RunDaily closes consumed dinners, charges them, re-scaffolds every
// household and, from the cutoff day on, generates the month's billing period.
func (s *maintenanceService) RunDaily(ctx context.Context) (*maintenance.DailyReport, error) {
	report := &maintenance.DailyReport{StartedAt: s.clock.Now()}

	closed, err := s.billing.CloseOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("closing orders: %w", err)
	}
	report.ClosedOrders = closed

	created, err := s.billing.CreateTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating transactions: %w", err)
	}
	report.CreatedTransactions = created

	results, err := s.scaffold.ScaffoldAll(ctx)
	report.ScaffoldedHouseholds = len(results)
	for _, result := range results {
		report.ScaffoldChanges += result.Changes()
	}
	if err != nil {
		report.ScaffoldFailures = scaffoldFailures(err)
		s.logger.Errorf("Scaffolding failed for %d households, continuing with billing: %v", len(report.ScaffoldFailures), err)
	}

	today := calendar.DateOf(s.clock.Now(), s.clock.Location())
	if today.Day() >= s.cutoffDay {
		summary, generated, err := s.billing.GenerateBillingPeriod(ctx, billing.CutoffFor(today, s.cutoffDay))
		if err != nil {
			return nil, fmt.Errorf("generating billing period: %w", err)
		}
		report.BillingPeriod = summary.BillingPeriod
		report.BillingPeriodCreated = generated
	}

	report.FinishedAt = s.clock.Now()
	s.logger.Infof("Daily maintenance done: %d orders closed, %d transactions, %d households scaffolded with %d changes, billing period %q (new: %t)",
		report.ClosedOrders, report.CreatedTransactions, report.ScaffoldedHouseholds, report.ScaffoldChanges,
		report.BillingPeriod, report.BillingPeriodCreated)
	return report, nil
}

// scaffoldFailures splits a joined scaffolding error into one message per failure.
func scaffoldFailures(err error) []string {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return []string{err.Error()}
	}
	failures := make([]string, 0, len(joined.Unwrap()))
	for _, failure := range joined.Unwrap() {
		failures = append(failures, failure.Error())
	}
	return failures
}
