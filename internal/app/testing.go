//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/billing"
	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/Mathmagicians/theslope/internal/domain/maintenance"
	"github.com/Mathmagicians/theslope/internal/domain/season"
	"github.com/Mathmagicians/theslope/internal/domain/team"
	"github.com/Mathmagicians/theslope/internal/infrastructure/export"
	"github.com/Mathmagicians/theslope/internal/infrastructure/messaging"
	"github.com/Mathmagicians/theslope/internal/infrastructure/persistence"
	"github.com/Mathmagicians/theslope/internal/pkg/config"
	"github.com/Mathmagicians/theslope/internal/pkg/testutil"
	"github.com/Mathmagicians/theslope/internal/pkg/timeutil"

	"github.com/stretchr/testify/require"
)

// TestLocation is the time zone the test clock runs in
const TestLocation = "Europe/Copenhagen"

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	SeasonService      season.SeasonService
	DinnerEventService dinner.DinnerEventService
	CookingTeamService team.CookingTeamService
	HouseholdService   household.HouseholdService
	AllergyService     household.AllergyService
	BookingService     booking.BookingService
	ScaffoldService    booking.ScaffoldService
	BillingService     billing.BillingService
	MaintenanceService maintenance.Service

	// Infrastructure
	Clock     *timeutil.FixedClock
	Publisher *messaging.MemoryPublisher
	DBContext *persistence.TestContext
}

// RepositoriesOf bundles the repositories of a test database
func RepositoriesOf(tc *persistence.TestContext) Repositories {
	return Repositories{
		Seasons:        tc.SeasonRepo,
		DinnerEvents:   tc.DinnerEventRepo,
		CookingTeams:   tc.CookingTeamRepo,
		Households:     tc.HouseholdRepo,
		Inhabitants:    tc.InhabitantRepo,
		Allergies:      tc.AllergyRepo,
		Orders:         tc.OrderRepo,
		OrderHistory:   tc.OrderHistoryRepo,
		Transactions:   tc.TransactionRepo,
		BillingPeriods: tc.BillingPeriodRepo,
	}
}

// SetupTestServices initializes all application services for integration tests.
// The clock stands still at now until a test moves it.
func SetupTestServices(t *testing.T, dbType string, now time.Time) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)
	repos := RepositoriesOf(dbContext)
	uow := dbContext.UnitOfWork

	loc, err := time.LoadLocation(TestLocation)
	require.NoError(t, err)
	clock := &timeutil.FixedClock{T: now, Loc: loc}
	publisher := &messaging.MemoryPublisher{}

	scaffoldService, err := NewScaffoldService(repos, uow, publisher, clock, logger)
	require.NoError(t, err, "Failed to create ScaffoldService")

	seasonService, err := NewSeasonService(repos, uow, scaffoldService, publisher, clock, logger)
	require.NoError(t, err, "Failed to create SeasonService")

	dinnerEventService, err := NewDinnerEventService(repos, uow, export.NewICalEncoder(), publisher, clock, logger)
	require.NoError(t, err, "Failed to create DinnerEventService")

	cookingTeamService, err := NewCookingTeamService(repos, uow, logger)
	require.NoError(t, err, "Failed to create CookingTeamService")

	householdService, err := NewHouseholdService(repos, uow, scaffoldService, logger)
	require.NoError(t, err, "Failed to create HouseholdService")

	allergyService, err := NewAllergyService(repos, logger)
	require.NoError(t, err, "Failed to create AllergyService")

	bookingService, err := NewBookingService(repos, uow, publisher, clock, logger)
	require.NoError(t, err, "Failed to create BookingService")

	billingService, err := NewBillingService(repos, uow, export.NewInvoiceCSVEncoder(), publisher, clock, logger)
	require.NoError(t, err, "Failed to create BillingService")

	maintenanceService, err := NewMaintenanceService(billingService, scaffoldService, clock, config.DefaultCutoffDay, logger)
	require.NoError(t, err, "Failed to create MaintenanceService")

	return &TestServices{
		SeasonService:      seasonService,
		DinnerEventService: dinnerEventService,
		CookingTeamService: cookingTeamService,
		HouseholdService:   householdService,
		AllergyService:     allergyService,
		BookingService:     bookingService,
		ScaffoldService:    scaffoldService,
		BillingService:     billingService,
		MaintenanceService: maintenanceService,
		Clock:              clock,
		Publisher:          publisher,
		DBContext:          dbContext,
	}
}

// At returns the wall-clock instant in the test location
func (ts *TestServices) At(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, ts.Clock.Loc)
}

// CreateActiveSeason stores a Monday and Thursday season, generates its
// dinners and activates it
func (ts *TestServices) CreateActiveSeason(t *testing.T, start, end time.Time) *season.Season {
	t.Helper()
	ctx := context.Background()

	created, err := ts.SeasonService.Create(ctx, persistence.CreateTestSeason(t, start, end))
	require.NoError(t, err)
	_, err = ts.DinnerEventService.GenerateForSeason(ctx, created.ID)
	require.NoError(t, err)
	activated, err := ts.SeasonService.Activate(ctx, created.ID)
	require.NoError(t, err)
	return activated
}

// CreateHousehold stores a household with one adult eating in on Mondays
func (ts *TestServices) CreateHousehold(t *testing.T, pbsID int) (*household.Household, *household.Inhabitant) {
	t.Helper()

	h := persistence.CreateTestHousehold(t, pbsID)
	h.Inhabitants = []*household.Inhabitant{persistence.CreateTestInhabitant(t, h.ID)}
	created, err := ts.HouseholdService.Create(context.Background(), h)
	require.NoError(t, err)
	require.Len(t, created.Inhabitants, 1)
	return created, created.Inhabitants[0]
}

// EventOn returns the dinner of the active season on date
func (ts *TestServices) EventOn(t *testing.T, seasonID string, date time.Time) *dinner.DinnerEvent {
	t.Helper()

	found, err := ts.DinnerEventService.List(context.Background(), &dinner.DinnerEventQuery{SeasonID: seasonID, From: date, To: date})
	require.NoError(t, err)
	require.Len(t, found, 1, "no dinner on %s", date)
	return found[0]
}

// OrdersOf lists the orders of a household in the given states
func (ts *TestServices) OrdersOf(t *testing.T, householdID string, states ...string) []*booking.Order {
	t.Helper()

	orders, err := ts.BookingService.List(context.Background(), &booking.OrderQuery{HouseholdID: householdID, States: states})
	require.NoError(t, err)
	return orders
}
