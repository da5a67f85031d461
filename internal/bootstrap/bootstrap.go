// Package bootstrap wires configuration, persistence, messaging and the
// application services for the binaries under cmd/.
package bootstrap

import (
	"errors"
	"fmt"

	"github.com/Mathmagicians/theslope/internal/app"
	"github.com/Mathmagicians/theslope/internal/domain/billing"
	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/events"
	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/Mathmagicians/theslope/internal/domain/maintenance"
	"github.com/Mathmagicians/theslope/internal/domain/season"
	"github.com/Mathmagicians/theslope/internal/domain/team"
	"github.com/Mathmagicians/theslope/internal/infrastructure/export"
	"github.com/Mathmagicians/theslope/internal/infrastructure/messaging"
	"github.com/Mathmagicians/theslope/internal/infrastructure/persistence"
	"github.com/Mathmagicians/theslope/internal/pkg/config"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"
	"github.com/Mathmagicians/theslope/internal/pkg/timeutil"

	"gorm.io/gorm"

	// Embedded zone database so Europe/Copenhagen resolves in minimal containers
	_ "time/tzdata"
)

// Application holds the initialized services and the resources to release on shutdown
type Application struct {
	Seasons      season.SeasonService
	DinnerEvents dinner.DinnerEventService
	CookingTeams team.CookingTeamService
	Households   household.HouseholdService
	Allergies    household.AllergyService
	Bookings     booking.BookingService
	Scaffold     booking.ScaffoldService
	Billing      billing.BillingService
	Maintenance  maintenance.Service

	Clock     timeutil.Clock
	CutoffDay int

	db             *gorm.DB
	closePublisher func() error
	log            logger.Logger
}

// New connects to the database, migrates the schema and builds every service.
func New(cfg *config.AppConfig, log logger.Logger) (*Application, error) {
	loc, err := cfg.Billing.Location()
	if err != nil {
		return nil, err
	}
	clock := timeutil.NewSystemClock(loc)

	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	if err := persistence.Migrate(db); err != nil {
		_ = persistence.CloseDB(db)
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	repos, err := newRepositories(db, log)
	if err != nil {
		_ = persistence.CloseDB(db)
		return nil, err
	}

	publisher, closePublisher, err := messaging.NewPublisher(cfg.Messaging, log)
	if err != nil {
		_ = persistence.CloseDB(db)
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}

	application := &Application{
		Clock:          clock,
		CutoffDay:      cfg.Billing.CutoffDay,
		db:             db,
		closePublisher: closePublisher,
		log:            log,
	}
	if err := application.initializeServices(repos, persistence.NewGormUnitOfWork(db), publisher, clock, cfg.Billing.CutoffDay); err != nil {
		_ = application.Close()
		return nil, err
	}

	log.Info("Application services initialized successfully")
	return application, nil
}

// Close releases the publisher connection and the database.
func (a *Application) Close() error {
	return errors.Join(a.closePublisher(), persistence.CloseDB(a.db))
}

func newRepositories(db *gorm.DB, log logger.Logger) (app.Repositories, error) {
	var repos app.Repositories
	var err error

	if repos.Seasons, err = persistence.NewGormSeasonRepository(db, log); err != nil {
		return repos, fmt.Errorf("failed to create season repository: %w", err)
	}
	if repos.DinnerEvents, err = persistence.NewGormDinnerEventRepository(db, log); err != nil {
		return repos, fmt.Errorf("failed to create dinner event repository: %w", err)
	}
	if repos.CookingTeams, err = persistence.NewGormCookingTeamRepository(db, log); err != nil {
		return repos, fmt.Errorf("failed to create cooking team repository: %w", err)
	}
	if repos.Households, err = persistence.NewGormHouseholdRepository(db, log); err != nil {
		return repos, fmt.Errorf("failed to create household repository: %w", err)
	}
	if repos.Inhabitants, err = persistence.NewGormInhabitantRepository(db, log); err != nil {
		return repos, fmt.Errorf("failed to create inhabitant repository: %w", err)
	}
	if repos.Allergies, err = persistence.NewGormAllergyRepository(db, log); err != nil {
		return repos, fmt.Errorf("failed to create allergy repository: %w", err)
	}
	if repos.Orders, err = persistence.NewGormOrderRepository(db, log); err != nil {
		return repos, fmt.Errorf("failed to create order repository: %w", err)
	}
	if repos.OrderHistory, err = persistence.NewGormOrderHistoryRepository(db, log); err != nil {
		return repos, fmt.Errorf("failed to create order history repository: %w", err)
	}
	if repos.Transactions, err = persistence.NewGormTransactionRepository(db, log); err != nil {
		return repos, fmt.Errorf("failed to create transaction repository: %w", err)
	}
	if repos.BillingPeriods, err = persistence.NewGormBillingPeriodRepository(db, log); err != nil {
		return repos, fmt.Errorf("failed to create billing period repository: %w", err)
	}
	return repos, nil
}

func (a *Application) initializeServices(repos app.Repositories, uow app.UnitOfWork, publisher events.Publisher, clock timeutil.Clock, cutoffDay int) error {
	var err error
	log := a.log

	if a.Scaffold, err = app.NewScaffoldService(repos, uow, publisher, clock, log); err != nil {
		return fmt.Errorf("failed to create scaffold service: %w", err)
	}
	if a.Seasons, err = app.NewSeasonService(repos, uow, a.Scaffold, publisher, clock, log); err != nil {
		return fmt.Errorf("failed to create season service: %w", err)
	}
	if a.DinnerEvents, err = app.NewDinnerEventService(repos, uow, export.NewICalEncoder(), publisher, clock, log); err != nil {
		return fmt.Errorf("failed to create dinner event service: %w", err)
	}
	if a.CookingTeams, err = app.NewCookingTeamService(repos, uow, log); err != nil {
		return fmt.Errorf("failed to create cooking team service: %w", err)
	}
	if a.Households, err = app.NewHouseholdService(repos, uow, a.Scaffold, log); err != nil {
		return fmt.Errorf("failed to create household service: %w", err)
	}
	if a.Allergies, err = app.NewAllergyService(repos, log); err != nil {
		return fmt.Errorf("failed to create allergy service: %w", err)
	}
	if a.Bookings, err = app.NewBookingService(repos, uow, publisher, clock, log); err != nil {
		return fmt.Errorf("failed to create booking service: %w", err)
	}
	if a.Billing, err = app.NewBillingService(repos, uow, export.NewInvoiceCSVEncoder(), publisher, clock, log); err != nil {
		return fmt.Errorf("failed to create billing service: %w", err)
	}
	if a.Maintenance, err = app.NewMaintenanceService(a.Billing, a.Scaffold, clock, cutoffDay, log); err != nil {
		return fmt.Errorf("failed to create maintenance service: %w", err)
	}
	return nil
}
