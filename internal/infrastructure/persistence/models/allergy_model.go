package models

import "github.com/Mathmagicians/theslope/internal/domain/household"

// AllergyTypeModel is the GORM database model for allergy types
type AllergyTypeModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	Name        string `gorm:"not null;uniqueIndex;type:varchar(100)"`
	Description string `gorm:"type:varchar(500)"`
	Icon        string `gorm:"type:varchar(20)"`
}

// TableName specifies the table name for GORM
func (AllergyTypeModel) TableName() string {
	return "allergy_types"
}

// AllergyModel is the GORM database model for inhabitant allergies
type AllergyModel struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	InhabitantID  string `gorm:"not null;uniqueIndex:idx_allergies_inhabitant_type;type:uuid"`
	AllergyTypeID string `gorm:"not null;uniqueIndex:idx_allergies_inhabitant_type;index;type:uuid"`
	Comment       string `gorm:"type:varchar(500)"`
}

// TableName specifies the table name for GORM
func (AllergyModel) TableName() string {
	return "allergies"
}

// ToDomain converts GORM model to domain entity
func (m *AllergyTypeModel) ToDomain() *household.AllergyType {
	return &household.AllergyType{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Icon:        m.Icon,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AllergyTypeModel) FromDomain(a *household.AllergyType) {
	m.ID = a.ID
	m.Name = a.Name
	m.Description = a.Description
	m.Icon = a.Icon
}

// ToDomain converts GORM model to domain entity
func (m *AllergyModel) ToDomain() *household.Allergy {
	return &household.Allergy{
		ID:            m.ID,
		InhabitantID:  m.InhabitantID,
		AllergyTypeID: m.AllergyTypeID,
		Comment:       m.Comment,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AllergyModel) FromDomain(a *household.Allergy) {
	m.ID = a.ID
	m.InhabitantID = a.InhabitantID
	m.AllergyTypeID = a.AllergyTypeID
	m.Comment = a.Comment
}
