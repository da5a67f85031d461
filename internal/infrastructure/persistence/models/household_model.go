package models

import (
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/household"
)

// HouseholdModel is the GORM database model for households
type HouseholdModel struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	Name        string    `gorm:"not null;index;type:varchar(255)"`
	Address     string    `gorm:"not null;type:varchar(255)"`
	PbsID       int       `gorm:"not null;uniqueIndex"`
	MovedInDate time.Time `gorm:"not null"`
	MoveOutDate *time.Time
	Inhabitants []InhabitantModel `gorm:"foreignKey:HouseholdID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (HouseholdModel) TableName() string {
	return "households"
}

// InhabitantModel is the GORM database model for inhabitants
type InhabitantModel struct {
	ID                string                          `gorm:"primaryKey;type:uuid"`
	HouseholdID       string                          `gorm:"not null;index;type:uuid"`
	Name              string                          `gorm:"not null;type:varchar(100)"`
	LastName          string                          `gorm:"not null;type:varchar(100)"`
	BirthDate         *time.Time
	DinnerPreferences map[calendar.Weekday]dinner.Mode `gorm:"serializer:json;type:text"`
}

// TableName specifies the table name for GORM
func (InhabitantModel) TableName() string {
	return "inhabitants"
}

// ToDomain converts GORM model to domain entity
func (m *HouseholdModel) ToDomain() *household.Household {
	h := &household.Household{
		ID:          m.ID,
		Name:        m.Name,
		Address:     m.Address,
		PbsID:       m.PbsID,
		MovedInDate: calendar.Normalize(m.MovedInDate.UTC()),
		MoveOutDate: normalizedDate(m.MoveOutDate),
		Inhabitants: make([]*household.Inhabitant, len(m.Inhabitants)),
	}
	for i := range m.Inhabitants {
		h.Inhabitants[i] = m.Inhabitants[i].ToDomain()
	}
	return h
}

// FromDomain converts domain entity to GORM model. Inhabitants are stored
// through their own repository and are not copied.
func (m *HouseholdModel) FromDomain(h *household.Household) {
	m.ID = h.ID
	m.Name = h.Name
	m.Address = h.Address
	m.PbsID = h.PbsID
	m.MovedInDate = calendar.Normalize(h.MovedInDate)
	m.MoveOutDate = normalizedDate(h.MoveOutDate)
}

// ToDomain converts GORM model to domain entity
func (m *InhabitantModel) ToDomain() *household.Inhabitant {
	prefs := make(household.DinnerPreferences, len(m.DinnerPreferences))
	for day, mode := range m.DinnerPreferences {
		prefs[day] = mode
	}
	return &household.Inhabitant{
		ID:                m.ID,
		HouseholdID:       m.HouseholdID,
		Name:              m.Name,
		LastName:          m.LastName,
		BirthDate:         normalizedDate(m.BirthDate),
		DinnerPreferences: prefs,
	}
}

// FromDomain converts domain entity to GORM model
func (m *InhabitantModel) FromDomain(i *household.Inhabitant) {
	m.ID = i.ID
	m.HouseholdID = i.HouseholdID
	m.Name = i.Name
	m.LastName = i.LastName
	m.BirthDate = normalizedDate(i.BirthDate)
	m.DinnerPreferences = make(map[calendar.Weekday]dinner.Mode, len(i.DinnerPreferences))
	for day, mode := range i.DinnerPreferences {
		m.DinnerPreferences[day] = mode
	}
}

func normalizedDate(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	n := calendar.Normalize(d.UTC())
	return &n
}
