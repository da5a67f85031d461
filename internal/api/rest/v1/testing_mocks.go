//go:build unit
// +build unit

package v1

import (
	"context"
	"io"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/billing"
	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/Mathmagicians/theslope/internal/domain/maintenance"
	"github.com/Mathmagicians/theslope/internal/domain/season"
	"github.com/Mathmagicians/theslope/internal/domain/team"

	"github.com/stretchr/testify/mock"
)

// MockSeasonService is a mock implementation of SeasonService
type MockSeasonService struct {
	mock.Mock
}

func (m *MockSeasonService) Create(ctx context.Context, s *season.Season) (*season.Season, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*season.Season), args.Error(1)
}

func (m *MockSeasonService) List(ctx context.Context, query *season.SeasonQuery) ([]*season.Season, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*season.Season), args.Error(1)
}

func (m *MockSeasonService) GetByID(ctx context.Context, seasonID string) (*season.Season, error) {
	args := m.Called(ctx, seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*season.Season), args.Error(1)
}

func (m *MockSeasonService) GetActive(ctx context.Context) (*season.Season, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*season.Season), args.Error(1)
}

func (m *MockSeasonService) Update(ctx context.Context, s *season.Season) (*season.Season, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*season.Season), args.Error(1)
}

func (m *MockSeasonService) DeleteByID(ctx context.Context, seasonID string) error {
	args := m.Called(ctx, seasonID)
	return args.Error(0)
}

func (m *MockSeasonService) Activate(ctx context.Context, seasonID string) (*season.Season, error) {
	args := m.Called(ctx, seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*season.Season), args.Error(1)
}

// MockDinnerEventService is a mock implementation of DinnerEventService
type MockDinnerEventService struct {
	mock.Mock
}

func (m *MockDinnerEventService) GenerateForSeason(ctx context.Context, seasonID string) ([]*dinner.DinnerEvent, error) {
	args := m.Called(ctx, seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dinner.DinnerEvent), args.Error(1)
}

func (m *MockDinnerEventService) List(ctx context.Context, query *dinner.DinnerEventQuery) ([]*dinner.DinnerEvent, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dinner.DinnerEvent), args.Error(1)
}

func (m *MockDinnerEventService) GetByID(ctx context.Context, eventID string) (*dinner.DinnerEvent, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dinner.DinnerEvent), args.Error(1)
}

func (m *MockDinnerEventService) UpdateMenu(ctx context.Context, eventID string, update *dinner.MenuUpdate) (*dinner.DinnerEvent, error) {
	args := m.Called(ctx, eventID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dinner.DinnerEvent), args.Error(1)
}

func (m *MockDinnerEventService) Announce(ctx context.Context, eventID string) (*dinner.DinnerEvent, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dinner.DinnerEvent), args.Error(1)
}

func (m *MockDinnerEventService) Cancel(ctx context.Context, userID, eventID string) (*dinner.DinnerEvent, error) {
	args := m.Called(ctx, userID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dinner.DinnerEvent), args.Error(1)
}

func (m *MockDinnerEventService) ChefReport(ctx context.Context, eventID string) (*dinner.ChefReport, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dinner.ChefReport), args.Error(1)
}

func (m *MockDinnerEventService) ExportCalendar(ctx context.Context, seasonID string, w io.Writer) error {
	args := m.Called(ctx, seasonID, w)
	if args.Error(0) == nil {
		_, _ = io.WriteString(w, "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")
	}
	return args.Error(0)
}

// MockCookingTeamService is a mock implementation of CookingTeamService
type MockCookingTeamService struct {
	mock.Mock
}

func (m *MockCookingTeamService) Create(ctx context.Context, t *team.CookingTeam) (*team.CookingTeam, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*team.CookingTeam), args.Error(1)
}

func (m *MockCookingTeamService) ListBySeason(ctx context.Context, seasonID string) ([]*team.CookingTeam, error) {
	args := m.Called(ctx, seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*team.CookingTeam), args.Error(1)
}

func (m *MockCookingTeamService) GetByID(ctx context.Context, teamID string) (*team.CookingTeam, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*team.CookingTeam), args.Error(1)
}

func (m *MockCookingTeamService) Update(ctx context.Context, t *team.CookingTeam) (*team.CookingTeam, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*team.CookingTeam), args.Error(1)
}

func (m *MockCookingTeamService) DeleteByID(ctx context.Context, teamID string) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}

func (m *MockCookingTeamService) AssignToEvents(ctx context.Context, seasonID string) (int, error) {
	args := m.Called(ctx, seasonID)
	return args.Int(0), args.Error(1)
}

// MockHouseholdService is a mock implementation of HouseholdService
type MockHouseholdService struct {
	mock.Mock
}

func (m *MockHouseholdService) Create(ctx context.Context, h *household.Household) (*household.Household, error) {
	args := m.Called(ctx, h)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*household.Household), args.Error(1)
}

func (m *MockHouseholdService) List(ctx context.Context, query *household.HouseholdQuery) ([]*household.Household, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*household.Household), args.Error(1)
}

func (m *MockHouseholdService) GetByID(ctx context.Context, householdID string) (*household.Household, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*household.Household), args.Error(1)
}

func (m *MockHouseholdService) Update(ctx context.Context, h *household.Household) (*household.Household, error) {
	args := m.Called(ctx, h)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*household.Household), args.Error(1)
}

func (m *MockHouseholdService) DeleteByID(ctx context.Context, householdID string) error {
	args := m.Called(ctx, householdID)
	return args.Error(0)
}

func (m *MockHouseholdService) AddInhabitant(ctx context.Context, inhabitant *household.Inhabitant) (*household.Inhabitant, error) {
	args := m.Called(ctx, inhabitant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*household.Inhabitant), args.Error(1)
}

func (m *MockHouseholdService) GetInhabitant(ctx context.Context, inhabitantID string) (*household.Inhabitant, error) {
	args := m.Called(ctx, inhabitantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*household.Inhabitant), args.Error(1)
}

func (m *MockHouseholdService) UpdateInhabitant(ctx context.Context, inhabitant *household.Inhabitant) (*household.Inhabitant, error) {
	args := m.Called(ctx, inhabitant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*household.Inhabitant), args.Error(1)
}

func (m *MockHouseholdService) DeleteInhabitant(ctx context.Context, inhabitantID string) error {
	args := m.Called(ctx, inhabitantID)
	return args.Error(0)
}

// MockAllergyService is a mock implementation of AllergyService
type MockAllergyService struct {
	mock.Mock
}

func (m *MockAllergyService) CreateType(ctx context.Context, allergyType *household.AllergyType) (*household.AllergyType, error) {
	args := m.Called(ctx, allergyType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*household.AllergyType), args.Error(1)
}

func (m *MockAllergyService) ListTypes(ctx context.Context) ([]*household.AllergyType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*household.AllergyType), args.Error(1)
}

func (m *MockAllergyService) DeleteType(ctx context.Context, allergyTypeID string) error {
	args := m.Called(ctx, allergyTypeID)
	return args.Error(0)
}

func (m *MockAllergyService) AddAllergy(ctx context.Context, allergy *household.Allergy) (*household.Allergy, error) {
	args := m.Called(ctx, allergy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*household.Allergy), args.Error(1)
}

func (m *MockAllergyService) ListAllergies(ctx context.Context, inhabitantID string) ([]*household.Allergy, error) {
	args := m.Called(ctx, inhabitantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*household.Allergy), args.Error(1)
}

func (m *MockAllergyService) DeleteAllergy(ctx context.Context, allergyID string) error {
	args := m.Called(ctx, allergyID)
	return args.Error(0)
}

// MockBookingService is a mock implementation of BookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Book(ctx context.Context, userID, dinnerEventID string, request *booking.BookingRequest) ([]*booking.Order, error) {
	args := m.Called(ctx, userID, dinnerEventID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Order), args.Error(1)
}

func (m *MockBookingService) Cancel(ctx context.Context, userID, orderID string) (*booking.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Order), args.Error(1)
}

func (m *MockBookingService) ChangeDinnerMode(ctx context.Context, userID, orderID string, mode dinner.Mode) (*booking.Order, error) {
	args := m.Called(ctx, userID, orderID, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Order), args.Error(1)
}

func (m *MockBookingService) GetByID(ctx context.Context, orderID string) (*booking.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Order), args.Error(1)
}

func (m *MockBookingService) List(ctx context.Context, query *booking.OrderQuery) ([]*booking.Order, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Order), args.Error(1)
}

func (m *MockBookingService) History(ctx context.Context, orderID string) ([]*booking.OrderHistory, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.OrderHistory), args.Error(1)
}

// MockScaffoldService is a mock implementation of ScaffoldService
type MockScaffoldService struct {
	mock.Mock
}

func (m *MockScaffoldService) ScaffoldHousehold(ctx context.Context, householdID string) (*booking.ScaffoldResult, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.ScaffoldResult), args.Error(1)
}

func (m *MockScaffoldService) ScaffoldAll(ctx context.Context) ([]*booking.ScaffoldResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.ScaffoldResult), args.Error(1)
}

// MockBillingService is a mock implementation of BillingService
type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) CloseOrders(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockBillingService) CreateTransactions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockBillingService) GenerateBillingPeriod(ctx context.Context, cutoff time.Time) (*billing.BillingPeriodSummary, bool, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*billing.BillingPeriodSummary), args.Bool(1), args.Error(2)
}

func (m *MockBillingService) ListPeriods(ctx context.Context) ([]*billing.BillingPeriodSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.BillingPeriodSummary), args.Error(1)
}

func (m *MockBillingService) GetPeriod(ctx context.Context, periodID string) (*billing.BillingPeriodSummary, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.BillingPeriodSummary), args.Error(1)
}

func (m *MockBillingService) ExportInvoices(ctx context.Context, periodID string, w io.Writer) error {
	args := m.Called(ctx, periodID, w)
	if args.Error(0) == nil {
		_, _ = io.WriteString(w, "pbs_id,household,address,tickets,amount\n")
	}
	return args.Error(0)
}

func (m *MockBillingService) ListHouseholdInvoices(ctx context.Context, householdID string) ([]*billing.Invoice, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockBillingService) ListHouseholdTransactions(ctx context.Context, householdID string) ([]*billing.Transaction, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Transaction), args.Error(1)
}

// MockMaintenanceService is a mock implementation of the maintenance Service
type MockMaintenanceService struct {
	mock.Mock
}

func (m *MockMaintenanceService) RunDaily(ctx context.Context) (*maintenance.DailyReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*maintenance.DailyReport), args.Error(1)
}

// mockServices bundles one mock per service
type mockServices struct {
	seasons      *MockSeasonService
	dinnerEvents *MockDinnerEventService
	cookingTeams *MockCookingTeamService
	households   *MockHouseholdService
	allergies    *MockAllergyService
	bookings     *MockBookingService
	scaffold     *MockScaffoldService
	billing      *MockBillingService
	maintenance  *MockMaintenanceService
}

func newMockServices() *mockServices {
	return &mockServices{
		seasons:      new(MockSeasonService),
		dinnerEvents: new(MockDinnerEventService),
		cookingTeams: new(MockCookingTeamService),
		households:   new(MockHouseholdService),
		allergies:    new(MockAllergyService),
		bookings:     new(MockBookingService),
		scaffold:     new(MockScaffoldService),
		billing:      new(MockBillingService),
		maintenance:  new(MockMaintenanceService),
	}
}

func (m *mockServices) services() Services {
	return Services{
		Seasons:      m.seasons,
		DinnerEvents: m.dinnerEvents,
		CookingTeams: m.cookingTeams,
		Households:   m.households,
		Allergies:    m.allergies,
		Bookings:     m.bookings,
		Scaffold:     m.scaffold,
		Billing:      m.billing,
		Maintenance:  m.maintenance,
	}
}
