// Package main is the entry point for theslope-maintenance, the binary the
// scheduler runs to close dinners, reconcile bookings and bill households.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	commands "github.com/Mathmagicians/theslope/cmd/theslope-maintenance/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "theslope-maintenance",
		Short: "Scheduled jobs for the communal dining backend",
		Long: `theslope-maintenance runs the jobs that keep bookings and billing current.
Run "daily" from cron once or more a day; every step is idempotent.
The other commands run single steps by hand.

The config file is taken from --config, then CONFIG_PATH, then ../../configs/app.yaml.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringP(commands.ConfigFlag, "c", "", "Path to the YAML config file")

	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitMaintenanceCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize maintenance commands: %w", err)
	}

	if err := commands.InitSeedCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize seed commands: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
