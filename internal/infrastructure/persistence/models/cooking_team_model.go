package models

import "github.com/Mathmagicians/theslope/internal/domain/team"

// CookingTeamModel is the GORM database model for cooking teams
type CookingTeamModel struct {
	ID          string                `gorm:"primaryKey;type:uuid"`
	SeasonID    string                `gorm:"not null;index;type:uuid"`
	Name        string                `gorm:"not null;type:varchar(100)"`
	Assignments []TeamAssignmentModel `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (CookingTeamModel) TableName() string {
	return "cooking_teams"
}

// TeamAssignmentModel is the GORM database model for team members
type TeamAssignmentModel struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	TeamID       string `gorm:"not null;index;type:uuid"`
	InhabitantID string `gorm:"not null;index;type:uuid"`
	Role         string `gorm:"not null;type:varchar(20)"`
}

// TableName specifies the table name for GORM
func (TeamAssignmentModel) TableName() string {
	return "team_assignments"
}

// ToDomain converts GORM model to domain entity
func (m *CookingTeamModel) ToDomain() *team.CookingTeam {
	assignments := make([]team.Assignment, len(m.Assignments))
	for i, a := range m.Assignments {
		assignments[i] = team.Assignment{InhabitantID: a.InhabitantID, Role: a.Role}
	}
	return &team.CookingTeam{
		ID:          m.ID,
		SeasonID:    m.SeasonID,
		Name:        m.Name,
		Assignments: assignments,
	}
}

// FromDomain converts domain entity to GORM model
func (m *CookingTeamModel) FromDomain(t *team.CookingTeam) {
	m.ID = t.ID
	m.SeasonID = t.SeasonID
	m.Name = t.Name
	m.Assignments = make([]TeamAssignmentModel, len(t.Assignments))
	for i, a := range t.Assignments {
		m.Assignments[i] = TeamAssignmentModel{TeamID: t.ID, InhabitantID: a.InhabitantID, Role: a.Role}
	}
}
