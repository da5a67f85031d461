package commands

import (
	"fmt"
	"time"

	"github.com/Mathmagicians/theslope/internal/bootstrap"
	"github.com/Mathmagicians/theslope/internal/domain/billing"
	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// MaintenanceCommandHandler runs the scheduled jobs from the command line.
// Every command opens the application, runs one step and closes it again.
type MaintenanceCommandHandler struct {
	open func(cmd *cobra.Command) (*bootstrap.Application, logger.Logger, error)
}

// NewMaintenanceCommandHandler returns a handler that builds the application
// from the config named by --config.
func NewMaintenanceCommandHandler() *MaintenanceCommandHandler {
	return &MaintenanceCommandHandler{open: openApplication}
}

func (commandHandler *MaintenanceCommandHandler) withApplication(cmd *cobra.Command, step func(*bootstrap.Application, logger.Logger) error) error {
	application, log, err := commandHandler.open(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Warn("failed to close application: ", err)
		}
	}()

	if err := step(application, log); err != nil {
		log.Error(err)
		return err
	}
	return nil
}

// DailyCmd runs the whole daily pipeline.
func (commandHandler *MaintenanceCommandHandler) DailyCmd(cmd *cobra.Command, _ []string) error {
	return commandHandler.withApplication(cmd, func(application *bootstrap.Application, log logger.Logger) error {
		report, err := application.Maintenance.RunDaily(cmd.Context())
		if err != nil {
			return fmt.Errorf("daily maintenance failed: %w", err)
		}
		log.Infof("Daily maintenance: %d orders closed, %d transactions, %d households scaffolded with %d changes",
			report.ClosedOrders, report.CreatedTransactions, report.ScaffoldedHouseholds, report.ScaffoldChanges)
		for _, failure := range report.ScaffoldFailures {
			log.Warn("Scaffolding failed: ", failure)
		}
		if report.BillingPeriod != "" {
			log.Infof("Billing period %s (created: %t)", report.BillingPeriod, report.BillingPeriodCreated)
		}
		return nil
	})
}

// ScaffoldCmd reconciles the bookings of every household with their preferences.
func (commandHandler *MaintenanceCommandHandler) ScaffoldCmd(cmd *cobra.Command, _ []string) error {
	return commandHandler.withApplication(cmd, func(application *bootstrap.Application, log logger.Logger) error {
		results, err := application.Scaffold.ScaffoldAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("scaffolding failed: %w", err)
		}
		changes := 0
		for _, result := range results {
			changes += result.Changes()
		}
		log.Infof("Scaffolded %d households with %d changes", len(results), changes)
		return nil
	})
}

// CloseCmd closes the orders of past dinners and turns them into transactions.
func (commandHandler *MaintenanceCommandHandler) CloseCmd(cmd *cobra.Command, _ []string) error {
	return commandHandler.withApplication(cmd, func(application *bootstrap.Application, log logger.Logger) error {
		closed, err := application.Billing.CloseOrders(cmd.Context())
		if err != nil {
			return fmt.Errorf("closing orders failed: %w", err)
		}
		created, err := application.Billing.CreateTransactions(cmd.Context())
		if err != nil {
			return fmt.Errorf("creating transactions failed: %w", err)
		}
		log.Infof("Closed %d orders and created %d transactions", closed, created)
		return nil
	})
}

// BillCmd generates the billing period ending on --cutoff, or on this month's
// cutoff day when the flag is empty.
func (commandHandler *MaintenanceCommandHandler) BillCmd(cmd *cobra.Command, _ []string) error {
	cutoffFlag, err := cmd.Flags().GetString("cutoff")
	if err != nil {
		return fmt.Errorf("invalid cutoff flag: %w", err)
	}

	return commandHandler.withApplication(cmd, func(application *bootstrap.Application, log logger.Logger) error {
		cutoff, err := resolveCutoff(cutoffFlag, application.Clock.Now(), application.CutoffDay)
		if err != nil {
			return err
		}
		summary, created, err := application.Billing.GenerateBillingPeriod(cmd.Context(), cutoff)
		if err != nil {
			return fmt.Errorf("billing failed: %w", err)
		}
		if !created {
			log.Infof("Billing period %s already exists", summary.BillingPeriod)
			return nil
		}
		log.Infof("Billing period %s: %s kr for %d households, %d tickets",
			summary.BillingPeriod, billing.Kroner(summary.TotalAmount), summary.HouseholdCount, summary.TicketCount)
		return nil
	})
}

func resolveCutoff(flag string, now time.Time, cutoffDay int) (time.Time, error) {
	if flag == "" {
		return billing.CutoffFor(now, cutoffDay), nil
	}
	cutoff, err := calendar.ParseDate(flag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cutoff date %q: %w", flag, err)
	}
	return cutoff, nil
}

// InitMaintenanceCommands registers the scheduled jobs with the root command.
func InitMaintenanceCommands(rootCmd *cobra.Command) error {
	handler := NewMaintenanceCommandHandler()

	var dailyCmd = &cobra.Command{
		Use:   "daily",
		Short: "Close past dinners, create transactions, scaffold bookings and bill on cutoff",
		RunE:  handler.DailyCmd,
	}
	rootCmd.AddCommand(dailyCmd)

	var scaffoldCmd = &cobra.Command{
		Use:   "scaffold",
		Short: "Reconcile every household's bookings with its dinner preferences",
		RunE:  handler.ScaffoldCmd,
	}
	rootCmd.AddCommand(scaffoldCmd)

	var closeCmd = &cobra.Command{
		Use:   "close",
		Short: "Close the orders of past dinners and create their transactions",
		RunE:  handler.CloseCmd,
	}
	rootCmd.AddCommand(closeCmd)

	var billCmd = &cobra.Command{
		Use:   "bill",
		Short: "Generate the billing period for a cutoff date",
		RunE:  handler.BillCmd,
	}
	billCmd.Flags().StringP("cutoff", "", "", "Cutoff date (YYYY-MM-DD), defaults to this month's cutoff day")
	rootCmd.AddCommand(billCmd)

	return nil
}
