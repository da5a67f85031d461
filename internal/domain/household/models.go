package household

import (
	"errors"
	"strings"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/pkg/validators"
)

// ErrMoveOutBeforeMoveIn is returned when a household would leave before it arrived.
var ErrMoveOutBeforeMoveIn = errors.New("move out date must be after move in date")

// Household entity. PbsID is the household's id at the payment service and
// the key invoices are collected by.
type Household struct {
	ID          string     `validate:"required,uuid4"`
	Name        string     `validate:"required,min=1,max=255"`
	Address     string     `validate:"required,min=1,max=255"`
	PbsID       int        `validate:"required,min=1"`
	MovedInDate time.Time  `validate:"required"`
	MoveOutDate *time.Time
	Inhabitants []*Inhabitant
}

// Validate for validating Household struct
func (h *Household) Validate() error {
	if err := validators.ValidateStruct(h); err != nil {
		return err
	}
	if h.MoveOutDate != nil && !h.MoveOutDate.After(h.MovedInDate) {
		return ErrMoveOutBeforeMoveIn
	}
	return nil
}

// LivesHereOn reports whether the household is resident on date d.
func (h *Household) LivesHereOn(d time.Time) bool {
	d = calendar.Normalize(d)
	if d.Before(calendar.Normalize(h.MovedInDate)) {
		return false
	}
	return h.MoveOutDate == nil || d.Before(calendar.Normalize(*h.MoveOutDate))
}

// DinnerPreferences maps each weekday to the mode an inhabitant normally dines in.
// Missing days mean ModeNone.
type DinnerPreferences map[calendar.Weekday]dinner.Mode

// ModeOn returns the preferred mode for the weekday of date d.
func (p DinnerPreferences) ModeOn(d time.Time) dinner.Mode {
	mode, ok := p[calendar.WeekdayOf(d)]
	if !ok || mode == "" {
		return dinner.ModeNone
	}
	return mode
}

// Inhabitant entity
type Inhabitant struct {
	ID                string            `validate:"required,uuid4"`
	HouseholdID       string            `validate:"required,uuid4"`
	Name              string            `validate:"required,min=1,max=100"`
	LastName          string            `validate:"required,min=1,max=100"`
	BirthDate         *time.Time        `validate:"omitempty"`
	DinnerPreferences DinnerPreferences `validate:"dive,keys,oneof=monday tuesday wednesday thursday friday saturday sunday,endkeys,oneof=DINEIN DINEINLATE TAKEAWAY NONE"`
}

// Validate for validating Inhabitant struct
func (i *Inhabitant) Validate() error {
	return validators.ValidateStruct(i)
}

// FullName joins first and last name.
func (i *Inhabitant) FullName() string {
	return strings.TrimSpace(i.Name + " " + i.LastName)
}

// AgeOn returns the inhabitant's age on date d, or nil when the birth date is unknown.
func (i *Inhabitant) AgeOn(d time.Time) *int {
	if i.BirthDate == nil {
		return nil
	}
	age := calendar.AgeOn(*i.BirthDate, d)
	return &age
}

// AllergyType is an allergen known to the kitchen.
type AllergyType struct {
	ID          string `validate:"required,uuid4"`
	Name        string `validate:"required,min=1,max=100"`
	Description string `validate:"max=500"`
	Icon        string `validate:"max=20"`
}

// Validate for validating AllergyType struct
func (a *AllergyType) Validate() error {
	return validators.ValidateStruct(a)
}

// Allergy links an inhabitant to an allergy type.
type Allergy struct {
	ID            string `validate:"required,uuid4"`
	InhabitantID  string `validate:"required,uuid4"`
	AllergyTypeID string `validate:"required,uuid4"`
	Comment       string `validate:"max=500"`
}

// Validate for validating Allergy struct
func (a *Allergy) Validate() error {
	return validators.ValidateStruct(a)
}

// HouseholdQuery paginates households.
type HouseholdQuery struct {
	Name   string
	Limit  int `validate:"omitempty,min=1"`
	Offset int `validate:"omitempty,min=0"`
}

// NewHouseholdQuery creates a HouseholdQuery without filters.
func NewHouseholdQuery() *HouseholdQuery {
	return &HouseholdQuery{}
}

// Validate for validating HouseholdQuery struct
func (q *HouseholdQuery) Validate() error {
	return validators.ValidateStruct(q)
}
