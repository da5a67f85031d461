//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/billing"
	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/Mathmagicians/theslope/internal/domain/season"
	"github.com/Mathmagicians/theslope/internal/domain/team"
	"github.com/Mathmagicians/theslope/internal/pkg/config"
	"github.com/Mathmagicians/theslope/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB                *gorm.DB
	UnitOfWork        *GormUnitOfWork
	SeasonRepo        season.SeasonRepository
	DinnerEventRepo   dinner.DinnerEventRepository
	CookingTeamRepo   team.CookingTeamRepository
	HouseholdRepo     household.HouseholdRepository
	InhabitantRepo    household.InhabitantRepository
	AllergyRepo       household.AllergyRepository
	OrderRepo         booking.OrderRepository
	OrderHistoryRepo  booking.OrderHistoryRepository
	TransactionRepo   billing.TransactionRepository
	BillingPeriodRepo billing.BillingPeriodRepository
}

// SetupTestDB initializes a migrated test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		}
		cleanupFunc = func() {}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type:   config.PostgresDbType,
			DSN:    "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			DBName: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	log := testutil.SetupTestLogger(t)
	tc := &TestContext{DB: db, UnitOfWork: NewGormUnitOfWork(db)}

	tc.SeasonRepo, err = NewGormSeasonRepository(db, log)
	require.NoError(t, err)
	tc.DinnerEventRepo, err = NewGormDinnerEventRepository(db, log)
	require.NoError(t, err)
	tc.CookingTeamRepo, err = NewGormCookingTeamRepository(db, log)
	require.NoError(t, err)
	tc.HouseholdRepo, err = NewGormHouseholdRepository(db, log)
	require.NoError(t, err)
	tc.InhabitantRepo, err = NewGormInhabitantRepository(db, log)
	require.NoError(t, err)
	tc.AllergyRepo, err = NewGormAllergyRepository(db, log)
	require.NoError(t, err)
	tc.OrderRepo, err = NewGormOrderRepository(db, log)
	require.NoError(t, err)
	tc.OrderHistoryRepo, err = NewGormOrderHistoryRepository(db, log)
	require.NoError(t, err)
	tc.TransactionRepo, err = NewGormTransactionRepository(db, log)
	require.NoError(t, err)
	tc.BillingPeriodRepo, err = NewGormBillingPeriodRepository(db, log)
	require.NoError(t, err)

	return tc
}

func intPtr(i int) *int { return &i }

// CreateTestSeason returns an unsaved season with ADULT, CHILD and BABY prices
// cooking on Mondays and Thursdays
func CreateTestSeason(t *testing.T, start, end time.Time) *season.Season {
	t.Helper()

	id := uuid.NewString()
	return &season.Season{
		ID:          id,
		ShortName:   "Season " + start.Format("2006-01"),
		StartDate:   start,
		EndDate:     end,
		CookingDays: []calendar.Weekday{calendar.Monday, calendar.Thursday},
		TicketPrices: []season.TicketPrice{
			{ID: uuid.NewString(), SeasonID: id, TicketType: season.TicketTypeAdult, Price: 4000},
			{ID: uuid.NewString(), SeasonID: id, TicketType: season.TicketTypeChild, Price: 2000, MaximumAgeLimit: intPtr(12)},
			{ID: uuid.NewString(), SeasonID: id, TicketType: season.TicketTypeBaby, Price: 0, MaximumAgeLimit: intPtr(2)},
		},
		CancellableDaysBefore:           10,
		DiningModeEditableMinutesBefore: 90,
		ConsecutiveCookingDays:          1,
		DinnerStartTime:                 "18:00",
	}
}

// CreateTestHousehold returns an unsaved household
func CreateTestHousehold(t *testing.T, pbsID int) *household.Household {
	t.Helper()

	return &household.Household{
		ID:          uuid.NewString(),
		Name:        "Household " + uuid.NewString()[:8],
		Address:     "Skråningen 1",
		PbsID:       pbsID,
		MovedInDate: calendar.Date(2020, time.January, 1),
	}
}

// CreateTestInhabitant returns an unsaved inhabitant eating in on Mondays
func CreateTestInhabitant(t *testing.T, householdID string) *household.Inhabitant {
	t.Helper()

	return &household.Inhabitant{
		ID:                uuid.NewString(),
		HouseholdID:       householdID,
		Name:              "Test",
		LastName:          "Inhabitant",
		DinnerPreferences: household.DinnerPreferences{calendar.Monday: dinner.ModeDineIn},
	}
}

// CreateTestEvent returns an unsaved scheduled dinner event
func CreateTestEvent(t *testing.T, seasonID string, date time.Time) *dinner.DinnerEvent {
	t.Helper()

	return &dinner.DinnerEvent{
		ID:       uuid.NewString(),
		SeasonID: seasonID,
		Date:     date,
		State:    dinner.StateScheduled,
	}
}

// CreateTestOrder returns an unsaved booked order of an inhabitant
func CreateTestOrder(t *testing.T, eventID string, inhabitant *household.Inhabitant, price season.TicketPrice) *booking.Order {
	t.Helper()

	id := inhabitant.ID
	now := time.Now().UTC()
	return &booking.Order{
		ID:             uuid.NewString(),
		DinnerEventID:  eventID,
		InhabitantID:   &id,
		HouseholdID:    inhabitant.HouseholdID,
		BookedByUserID: "test-user",
		TicketPriceID:  price.ID,
		TicketType:     price.TicketType,
		PriceAtBooking: price.Price,
		DinnerMode:     dinner.ModeDineIn,
		State:          booking.StateBooked,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
