package v1

import (
	"encoding/json"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/billing"
	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/Mathmagicians/theslope/internal/domain/maintenance"
	"github.com/Mathmagicians/theslope/internal/domain/season"
	"github.com/Mathmagicians/theslope/internal/domain/team"
	"github.com/Mathmagicians/theslope/internal/pkg/validators"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

// CountResponse reports how many entities an operation touched
type CountResponse struct {
	Count int `json:"count"`
}

func formatDate(d time.Time) string {
	return d.Format(calendar.DateLayout)
}

func formatDatePtr(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := formatDate(*d)
	return &s
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := calendar.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// DateRangeDTO is an inclusive range of YYYY-MM-DD dates
type DateRangeDTO struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" validate:"required,datetime=2006-01-02"`
}

// TicketPriceDTO is a ticket price in øre
type TicketPriceDTO struct {
	ID              string `json:"id,omitempty"`
	TicketType      string `json:"ticket_type" validate:"required,oneof=ADULT CHILD BABY"`
	Price           int    `json:"price" validate:"min=0"`
	MaximumAgeLimit *int   `json:"maximum_age_limit,omitempty" validate:"omitempty,min=0,max=120"`
	Description     string `json:"description,omitempty" validate:"max=255"`
}

// SeasonRequest creates or replaces a season
type SeasonRequest struct {
	ShortName                       string           `json:"short_name" validate:"required,min=1,max=50"`
	StartDate                       string           `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate                         string           `json:"end_date" validate:"required,datetime=2006-01-02"`
	CookingDays                     []string         `json:"cooking_days" validate:"required,min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Holidays                        []DateRangeDTO   `json:"holidays" validate:"dive"`
	TicketPrices                    []TicketPriceDTO `json:"ticket_prices" validate:"required,min=1,dive"`
	CancellableDaysBefore           *int             `json:"cancellable_days_before" validate:"omitempty,min=0,max=60"`
	DiningModeEditableMinutesBefore *int             `json:"dining_mode_editable_minutes_before" validate:"omitempty,min=0,max=1440"`
	ConsecutiveCookingDays          int              `json:"consecutive_cooking_days" validate:"omitempty,min=1,max=14"`
	DinnerStartTime                 string           `json:"dinner_start_time" validate:"omitempty,timeofday"`
}

// Validate for validating SeasonRequest struct
func (r *SeasonRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// ToDomain converts the request into a season with the given id
func (r *SeasonRequest) ToDomain(id string) (*season.Season, error) {
	start, err := calendar.ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := calendar.ParseDate(r.EndDate)
	if err != nil {
		return nil, err
	}

	s := &season.Season{
		ID:                              id,
		ShortName:                       r.ShortName,
		StartDate:                       start,
		EndDate:                         end,
		CancellableDaysBefore:           season.DefaultCancellableDaysBefore,
		DiningModeEditableMinutesBefore: season.DefaultDiningModeEditableMinutesBefore,
		ConsecutiveCookingDays:          r.ConsecutiveCookingDays,
		DinnerStartTime:                 r.DinnerStartTime,
	}
	if r.CancellableDaysBefore != nil {
		s.CancellableDaysBefore = *r.CancellableDaysBefore
	}
	if r.DiningModeEditableMinutesBefore != nil {
		s.DiningModeEditableMinutesBefore = *r.DiningModeEditableMinutesBefore
	}
	for _, day := range r.CookingDays {
		s.CookingDays = append(s.CookingDays, calendar.Weekday(day))
	}
	for _, holiday := range r.Holidays {
		hs, err := calendar.ParseDate(holiday.Start)
		if err != nil {
			return nil, err
		}
		he, err := calendar.ParseDate(holiday.End)
		if err != nil {
			return nil, err
		}
		s.Holidays = append(s.Holidays, calendar.DateRange{Start: hs, End: he})
	}
	for _, price := range r.TicketPrices {
		s.TicketPrices = append(s.TicketPrices, season.TicketPrice{
			ID:              price.ID,
			SeasonID:        id,
			TicketType:      season.TicketType(price.TicketType),
			Price:           price.Price,
			MaximumAgeLimit: price.MaximumAgeLimit,
			Description:     price.Description,
		})
	}
	return s, nil
}

// SeasonResponse represents a season
type SeasonResponse struct {
	ID                              string           `json:"id"`
	ShortName                       string           `json:"short_name"`
	StartDate                       string           `json:"start_date"`
	EndDate                         string           `json:"end_date"`
	IsActive                        bool             `json:"is_active"`
	CookingDays                     []string         `json:"cooking_days"`
	Holidays                        []DateRangeDTO   `json:"holidays"`
	TicketPrices                    []TicketPriceDTO `json:"ticket_prices"`
	CancellableDaysBefore           int              `json:"cancellable_days_before"`
	DiningModeEditableMinutesBefore int              `json:"dining_mode_editable_minutes_before"`
	ConsecutiveCookingDays          int              `json:"consecutive_cooking_days"`
	DinnerStartTime                 string           `json:"dinner_start_time"`
}

// NewSeasonResponse converts a season
func NewSeasonResponse(s *season.Season) SeasonResponse {
	response := SeasonResponse{
		ID:                              s.ID,
		ShortName:                       s.ShortName,
		StartDate:                       formatDate(s.StartDate),
		EndDate:                         formatDate(s.EndDate),
		IsActive:                        s.IsActive,
		CookingDays:                     []string{},
		Holidays:                        []DateRangeDTO{},
		TicketPrices:                    []TicketPriceDTO{},
		CancellableDaysBefore:           s.CancellableDaysBefore,
		DiningModeEditableMinutesBefore: s.DiningModeEditableMinutesBefore,
		ConsecutiveCookingDays:          s.ConsecutiveCookingDays,
		DinnerStartTime:                 s.DinnerStartTime,
	}
	for _, day := range s.CookingDays {
		response.CookingDays = append(response.CookingDays, string(day))
	}
	for _, holiday := range s.Holidays {
		response.Holidays = append(response.Holidays, DateRangeDTO{Start: formatDate(holiday.Start), End: formatDate(holiday.End)})
	}
	for _, price := range s.TicketPrices {
		response.TicketPrices = append(response.TicketPrices, TicketPriceDTO{
			ID:              price.ID,
			TicketType:      string(price.TicketType),
			Price:           price.Price,
			MaximumAgeLimit: price.MaximumAgeLimit,
			Description:     price.Description,
		})
	}
	return response
}

// DinnerEventResponse represents a dinner event
type DinnerEventResponse struct {
	ID              string  `json:"id"`
	SeasonID        string  `json:"season_id"`
	Date            string  `json:"date"`
	MenuTitle       string  `json:"menu_title"`
	MenuDescription string  `json:"menu_description"`
	ChefID          *string `json:"chef_id"`
	CookingTeamID   *string `json:"cooking_team_id"`
	State           string  `json:"state"`
	TotalCost       int     `json:"total_cost"`
}

// NewDinnerEventResponse converts a dinner event
func NewDinnerEventResponse(e *dinner.DinnerEvent) DinnerEventResponse {
	return DinnerEventResponse{
		ID:              e.ID,
		SeasonID:        e.SeasonID,
		Date:            formatDate(e.Date),
		MenuTitle:       e.MenuTitle,
		MenuDescription: e.MenuDescription,
		ChefID:          e.ChefID,
		CookingTeamID:   e.CookingTeamID,
		State:           e.State,
		TotalCost:       e.TotalCost,
	}
}

// AttendeeAllergyResponse is one allergy on the chef report
type AttendeeAllergyResponse struct {
	InhabitantID   string `json:"inhabitant_id"`
	InhabitantName string `json:"inhabitant_name"`
	AllergyName    string `json:"allergy_name"`
	Comment        string `json:"comment,omitempty"`
}

// ChefReportResponse represents the kitchen's view of a dinner
type ChefReportResponse struct {
	DinnerEventID   string                    `json:"dinner_event_id"`
	Date            string                    `json:"date"`
	MenuTitle       string                    `json:"menu_title"`
	State           string                    `json:"state"`
	TotalTickets    int                       `json:"total_tickets"`
	Guests          int                       `json:"guests"`
	ReleasedTickets int                       `json:"released_tickets"`
	ByMode          map[string]int            `json:"by_mode"`
	ByTicketType    map[string]int            `json:"by_ticket_type"`
	Allergies       []AttendeeAllergyResponse `json:"allergies"`
}

// NewChefReportResponse converts a chef report
func NewChefReportResponse(r *dinner.ChefReport) ChefReportResponse {
	response := ChefReportResponse{
		DinnerEventID:   r.DinnerEventID,
		Date:            formatDate(r.Date),
		MenuTitle:       r.MenuTitle,
		State:           r.State,
		TotalTickets:    r.TotalTickets,
		Guests:          r.Guests,
		ReleasedTickets: r.ReleasedTickets,
		ByMode:          make(map[string]int, len(r.ByMode)),
		ByTicketType:    r.ByTicketType,
		Allergies:       []AttendeeAllergyResponse{},
	}
	for mode, count := range r.ByMode {
		response.ByMode[string(mode)] = count
	}
	for _, allergy := range r.Allergies {
		response.Allergies = append(response.Allergies, AttendeeAllergyResponse(allergy))
	}
	return response
}

// AssignmentDTO places an inhabitant on a cooking team
type AssignmentDTO struct {
	InhabitantID string `json:"inhabitant_id" validate:"required,uuid4"`
	Role         string `json:"role" validate:"required,oneof=CHEF COOK JUNIORHELPER"`
}

// CookingTeamRequest creates or replaces a cooking team
type CookingTeamRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	Assignments []AssignmentDTO `json:"assignments" validate:"dive"`
}

// Validate for validating CookingTeamRequest struct
func (r *CookingTeamRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// ToDomain converts the request
func (r *CookingTeamRequest) ToDomain(id, seasonID string) *team.CookingTeam {
	t := &team.CookingTeam{ID: id, SeasonID: seasonID, Name: r.Name, Assignments: []team.Assignment{}}
	for _, a := range r.Assignments {
		t.Assignments = append(t.Assignments, team.Assignment(a))
	}
	return t
}

// CookingTeamResponse represents a cooking team
type CookingTeamResponse struct {
	ID          string          `json:"id"`
	SeasonID    string          `json:"season_id"`
	Name        string          `json:"name"`
	Assignments []AssignmentDTO `json:"assignments"`
}

// NewCookingTeamResponse converts a cooking team
func NewCookingTeamResponse(t *team.CookingTeam) CookingTeamResponse {
	response := CookingTeamResponse{ID: t.ID, SeasonID: t.SeasonID, Name: t.Name, Assignments: []AssignmentDTO{}}
	for _, a := range t.Assignments {
		response.Assignments = append(response.Assignments, AssignmentDTO(a))
	}
	return response
}

// InhabitantRequest creates or replaces an inhabitant. Preferences map
// weekday names to DINEIN, DINEINLATE, TAKEAWAY or NONE.
type InhabitantRequest struct {
	Name              string            `json:"name" validate:"required,min=1,max=100"`
	LastName          string            `json:"last_name" validate:"required,min=1,max=100"`
	BirthDate         *string           `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	DinnerPreferences map[string]string `json:"dinner_preferences" validate:"dive,keys,oneof=monday tuesday wednesday thursday friday saturday sunday,endkeys,oneof=DINEIN DINEINLATE TAKEAWAY NONE"`
}

// Validate for validating InhabitantRequest struct
func (r *InhabitantRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// ToDomain converts the request
func (r *InhabitantRequest) ToDomain(id, householdID string) (*household.Inhabitant, error) {
	birth, err := parseDatePtr(r.BirthDate)
	if err != nil {
		return nil, err
	}
	preferences := household.DinnerPreferences{}
	for day, mode := range r.DinnerPreferences {
		preferences[calendar.Weekday(day)] = dinner.Mode(mode)
	}
	return &household.Inhabitant{
		ID:                id,
		HouseholdID:       householdID,
		Name:              r.Name,
		LastName:          r.LastName,
		BirthDate:         birth,
		DinnerPreferences: preferences,
	}, nil
}

// InhabitantResponse represents an inhabitant
type InhabitantResponse struct {
	ID                string            `json:"id"`
	HouseholdID       string            `json:"household_id"`
	Name              string            `json:"name"`
	LastName          string            `json:"last_name"`
	BirthDate         *string           `json:"birth_date"`
	DinnerPreferences map[string]string `json:"dinner_preferences"`
}

// NewInhabitantResponse converts an inhabitant
func NewInhabitantResponse(i *household.Inhabitant) InhabitantResponse {
	preferences := make(map[string]string, len(i.DinnerPreferences))
	for day, mode := range i.DinnerPreferences {
		preferences[string(day)] = string(mode)
	}
	return InhabitantResponse{
		ID:                i.ID,
		HouseholdID:       i.HouseholdID,
		Name:              i.Name,
		LastName:          i.LastName,
		BirthDate:         formatDatePtr(i.BirthDate),
		DinnerPreferences: preferences,
	}
}

// HouseholdRequest creates or replaces a household. Inhabitants are only
// read on create.
type HouseholdRequest struct {
	Name        string              `json:"name" validate:"required,min=1,max=255"`
	Address     string              `json:"address" validate:"required,min=1,max=255"`
	PbsID       int                 `json:"pbs_id" validate:"required,min=1"`
	MovedInDate string              `json:"moved_in_date" validate:"required,datetime=2006-01-02"`
	MoveOutDate *string             `json:"move_out_date" validate:"omitempty,datetime=2006-01-02"`
	Inhabitants []InhabitantRequest `json:"inhabitants" validate:"dive"`
}

// Validate for validating HouseholdRequest struct
func (r *HouseholdRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// ToDomain converts the request
func (r *HouseholdRequest) ToDomain(id string) (*household.Household, error) {
	movedIn, err := calendar.ParseDate(r.MovedInDate)
	if err != nil {
		return nil, err
	}
	moveOut, err := parseDatePtr(r.MoveOutDate)
	if err != nil {
		return nil, err
	}
	h := &household.Household{
		ID:          id,
		Name:        r.Name,
		Address:     r.Address,
		PbsID:       r.PbsID,
		MovedInDate: movedIn,
		MoveOutDate: moveOut,
	}
	for i := range r.Inhabitants {
		inhabitant, err := r.Inhabitants[i].ToDomain("", id)
		if err != nil {
			return nil, err
		}
		h.Inhabitants = append(h.Inhabitants, inhabitant)
	}
	return h, nil
}

// HouseholdResponse represents a household with its inhabitants
type HouseholdResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Address     string               `json:"address"`
	PbsID       int                  `json:"pbs_id"`
	MovedInDate string               `json:"moved_in_date"`
	MoveOutDate *string              `json:"move_out_date"`
	Inhabitants []InhabitantResponse `json:"inhabitants"`
}

// NewHouseholdResponse converts a household
func NewHouseholdResponse(h *household.Household) HouseholdResponse {
	response := HouseholdResponse{
		ID:          h.ID,
		Name:        h.Name,
		Address:     h.Address,
		PbsID:       h.PbsID,
		MovedInDate: formatDate(h.MovedInDate),
		MoveOutDate: formatDatePtr(h.MoveOutDate),
		Inhabitants: []InhabitantResponse{},
	}
	for _, inhabitant := range h.Inhabitants {
		response.Inhabitants = append(response.Inhabitants, NewInhabitantResponse(inhabitant))
	}
	return response
}

// AllergyTypeRequest creates an allergy type
type AllergyTypeRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
	Icon        string `json:"icon" validate:"max=20"`
}

// Validate for validating AllergyTypeRequest struct
func (r *AllergyTypeRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// AllergyTypeResponse represents an allergy type
type AllergyTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ToDomain converts the request
func (r *AllergyTypeRequest) ToDomain() *household.AllergyType {
	return &household.AllergyType{Name: r.Name, Description: r.Description, Icon: r.Icon}
}

// NewAllergyTypeResponse converts an allergy type
func NewAllergyTypeResponse(a *household.AllergyType) AllergyTypeResponse {
	return AllergyTypeResponse(*a)
}

// AllergyRequest records an inhabitant's allergy
type AllergyRequest struct {
	AllergyTypeID string `json:"allergy_type_id" validate:"required,uuid4"`
	Comment       string `json:"comment" validate:"max=500"`
}

// Validate for validating AllergyRequest struct
func (r *AllergyRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// AllergyResponse represents an inhabitant's allergy
type AllergyResponse struct {
	ID            string `json:"id"`
	InhabitantID  string `json:"inhabitant_id"`
	AllergyTypeID string `json:"allergy_type_id"`
	Comment       string `json:"comment"`
}

// ToDomain converts the request
func (r *AllergyRequest) ToDomain(inhabitantID string) *household.Allergy {
	return &household.Allergy{InhabitantID: inhabitantID, AllergyTypeID: r.AllergyTypeID, Comment: r.Comment}
}

// NewAllergyResponse converts an allergy
func NewAllergyResponse(a *household.Allergy) AllergyResponse {
	return AllergyResponse(*a)
}

// DinnerModeRequest changes the dinner mode of a ticket
type DinnerModeRequest struct {
	DinnerMode string `json:"dinner_mode" validate:"required,oneof=DINEIN DINEINLATE TAKEAWAY"`
}

// Validate for validating DinnerModeRequest struct
func (r *DinnerModeRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// OrderResponse represents an order
type OrderResponse struct {
	ID             string     `json:"id"`
	DinnerEventID  string     `json:"dinner_event_id"`
	InhabitantID   *string    `json:"inhabitant_id"`
	HouseholdID    string     `json:"household_id"`
	BookedByUserID string     `json:"booked_by_user_id"`
	TicketPriceID  string     `json:"ticket_price_id"`
	TicketType     string     `json:"ticket_type"`
	PriceAtBooking int        `json:"price_at_booking"`
	DinnerMode     string     `json:"dinner_mode"`
	State          string     `json:"state"`
	IsGuestTicket  bool       `json:"is_guest_ticket"`
	ReleasedAt     *time.Time `json:"released_at"`
	ClosedAt       *time.Time `json:"closed_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewOrderResponse converts an order
func NewOrderResponse(o *booking.Order) OrderResponse {
	return OrderResponse{
		ID:             o.ID,
		DinnerEventID:  o.DinnerEventID,
		InhabitantID:   o.InhabitantID,
		HouseholdID:    o.HouseholdID,
		BookedByUserID: o.BookedByUserID,
		TicketPriceID:  o.TicketPriceID,
		TicketType:     string(o.TicketType),
		PriceAtBooking: o.PriceAtBooking,
		DinnerMode:     string(o.DinnerMode),
		State:          o.State,
		IsGuestTicket:  o.IsGuestTicket,
		ReleasedAt:     o.ReleasedAt,
		ClosedAt:       o.ClosedAt,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

// OrderHistoryResponse represents an audit row
type OrderHistoryResponse struct {
	ID                string          `json:"id"`
	OrderID           *string         `json:"order_id"`
	Action            string          `json:"action"`
	PerformedByUserID string          `json:"performed_by_user_id"`
	AuditData         json.RawMessage `json:"audit_data,omitempty"`
	Timestamp         time.Time       `json:"timestamp"`
}

// NewOrderHistoryResponse converts an audit row
func NewOrderHistoryResponse(h *booking.OrderHistory) OrderHistoryResponse {
	return OrderHistoryResponse(*h)
}

// ScaffoldResultResponse counts what a reconciliation did
type ScaffoldResultResponse struct {
	HouseholdID string `json:"household_id"`
	Created     int    `json:"created"`
	Updated     int    `json:"updated"`
	Released    int    `json:"released"`
	Deleted     int    `json:"deleted"`
	Unchanged   int    `json:"unchanged"`
}

// NewScaffoldResultResponse converts a scaffold result
func NewScaffoldResultResponse(r *booking.ScaffoldResult) ScaffoldResultResponse {
	return ScaffoldResultResponse(*r)
}

// GenerateBillingPeriodRequest asks for the billing period cut on CutoffDate
type GenerateBillingPeriodRequest struct {
	CutoffDate string `json:"cutoff_date" validate:"required,datetime=2006-01-02"`
}

// Validate for validating GenerateBillingPeriodRequest struct
func (r *GenerateBillingPeriodRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// InvoiceResponse represents an invoice
type InvoiceResponse struct {
	ID               string `json:"id"`
	BillingPeriodID  string `json:"billing_period_id"`
	HouseholdID      string `json:"household_id"`
	PbsID            int    `json:"pbs_id"`
	BillingPeriod    string `json:"billing_period"`
	Amount           int    `json:"amount"`
	TransactionCount int    `json:"transaction_count"`
	CutoffDate       string `json:"cutoff_date"`
	PaymentDate      string `json:"payment_date"`
}

// NewInvoiceResponse converts an invoice
func NewInvoiceResponse(i *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:               i.ID,
		BillingPeriodID:  i.BillingPeriodID,
		HouseholdID:      i.HouseholdID,
		PbsID:            i.PbsID,
		BillingPeriod:    i.BillingPeriod,
		Amount:           i.Amount,
		TransactionCount: i.TransactionCount,
		CutoffDate:       formatDate(i.CutoffDate),
		PaymentDate:      formatDate(i.PaymentDate),
	}
}

// BillingPeriodResponse represents a billing period summary
type BillingPeriodResponse struct {
	ID             string            `json:"id"`
	BillingPeriod  string            `json:"billing_period"`
	PeriodStart    string            `json:"period_start"`
	PeriodEnd      string            `json:"period_end"`
	PaymentDate    string            `json:"payment_date"`
	TotalAmount    int               `json:"total_amount"`
	HouseholdCount int               `json:"household_count"`
	TicketCount    int               `json:"ticket_count"`
	CreatedAt      time.Time         `json:"created_at"`
	Invoices       []InvoiceResponse `json:"invoices,omitempty"`
}

// NewBillingPeriodResponse converts a billing period summary
func NewBillingPeriodResponse(s *billing.BillingPeriodSummary) BillingPeriodResponse {
	response := BillingPeriodResponse{
		ID:             s.ID,
		BillingPeriod:  s.BillingPeriod,
		PeriodStart:    formatDate(s.PeriodStart),
		PeriodEnd:      formatDate(s.PeriodEnd),
		PaymentDate:    formatDate(s.PaymentDate),
		TotalAmount:    s.TotalAmount,
		HouseholdCount: s.HouseholdCount,
		TicketCount:    s.TicketCount,
		CreatedAt:      s.CreatedAt,
	}
	for _, invoice := range s.Invoices {
		response.Invoices = append(response.Invoices, NewInvoiceResponse(invoice))
	}
	return response
}

// TransactionResponse represents a charge
type TransactionResponse struct {
	ID            string                `json:"id"`
	OrderID       *string               `json:"order_id"`
	HouseholdID   string                `json:"household_id"`
	Amount        int                   `json:"amount"`
	DinnerDate    string                `json:"dinner_date"`
	OrderSnapshot billing.OrderSnapshot `json:"order_snapshot"`
	InvoiceID     *string               `json:"invoice_id"`
	CreatedAt     time.Time             `json:"created_at"`
}

// NewTransactionResponse converts a transaction
func NewTransactionResponse(t *billing.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		OrderID:       t.OrderID,
		HouseholdID:   t.HouseholdID,
		Amount:        t.Amount,
		DinnerDate:    formatDate(t.DinnerDate),
		OrderSnapshot: t.OrderSnapshot,
		InvoiceID:     t.InvoiceID,
		CreatedAt:     t.CreatedAt,
	}
}

// DailyReportResponse represents a maintenance run
type DailyReportResponse struct {
	StartedAt            time.Time `json:"started_at"`
	FinishedAt           time.Time `json:"finished_at"`
	ClosedOrders         int       `json:"closed_orders"`
	CreatedTransactions  int       `json:"created_transactions"`
	ScaffoldedHouseholds int       `json:"scaffolded_households"`
	ScaffoldChanges      int       `json:"scaffold_changes"`
	ScaffoldFailures     []string  `json:"scaffold_failures,omitempty"`
	BillingPeriod        string    `json:"billing_period,omitempty"`
	BillingPeriodCreated bool      `json:"billing_period_created"`
}

// NewDailyReportResponse converts a maintenance report
func NewDailyReportResponse(r *maintenance.DailyReport) DailyReportResponse {
	return DailyReportResponse(*r)
}
