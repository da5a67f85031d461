package models

import (
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
)

// DinnerEventModel is the GORM database model for dinner events
type DinnerEventModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	SeasonID        string    `gorm:"not null;uniqueIndex:idx_dinner_events_season_date;type:uuid"`
	Date            time.Time `gorm:"not null;uniqueIndex:idx_dinner_events_season_date;index"`
	MenuTitle       string    `gorm:"type:varchar(255)"`
	MenuDescription string    `gorm:"type:text"`
	ChefID          *string   `gorm:"type:uuid"`
	CookingTeamID   *string   `gorm:"index;type:uuid"`
	State           string    `gorm:"not null;index;type:varchar(20)"`
	TotalCost       int       `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (DinnerEventModel) TableName() string {
	return "dinner_events"
}

// ToDomain converts GORM model to domain entity
func (m *DinnerEventModel) ToDomain() *dinner.DinnerEvent {
	return &dinner.DinnerEvent{
		ID:              m.ID,
		SeasonID:        m.SeasonID,
		Date:            calendar.Normalize(m.Date.UTC()),
		MenuTitle:       m.MenuTitle,
		MenuDescription: m.MenuDescription,
		ChefID:          m.ChefID,
		CookingTeamID:   m.CookingTeamID,
		State:           m.State,
		TotalCost:       m.TotalCost,
	}
}

// FromDomain converts domain entity to GORM model
func (m *DinnerEventModel) FromDomain(e *dinner.DinnerEvent) {
	m.ID = e.ID
	m.SeasonID = e.SeasonID
	m.Date = calendar.Normalize(e.Date)
	m.MenuTitle = e.MenuTitle
	m.MenuDescription = e.MenuDescription
	m.ChefID = e.ChefID
	m.CookingTeamID = e.CookingTeamID
	m.State = e.State
	m.TotalCost = e.TotalCost
}
