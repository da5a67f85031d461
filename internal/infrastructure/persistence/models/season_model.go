package models

import (
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/season"
)

// SeasonModel is the GORM database model for seasons
type SeasonModel struct {
	ID                              string               `gorm:"primaryKey;type:uuid"`
	ShortName                       string               `gorm:"not null;type:varchar(50)"`
	StartDate                       time.Time            `gorm:"not null"`
	EndDate                         time.Time            `gorm:"not null"`
	CookingDays                     []calendar.Weekday   `gorm:"serializer:json;type:text"`
	Holidays                        []calendar.DateRange `gorm:"serializer:json;type:text"`
	CancellableDaysBefore           int                  `gorm:"not null"`
	DiningModeEditableMinutesBefore int                  `gorm:"not null"`
	ConsecutiveCookingDays          int                  `gorm:"not null;default:1"`
	DinnerStartTime                 string               `gorm:"not null;type:varchar(5)"`
	IsActive                        bool                 `gorm:"not null;index"`
	TicketPrices                    []TicketPriceModel   `gorm:"foreignKey:SeasonID;constraint:OnDelete:CASCADE"`
	CreatedAt                       time.Time
}

// TableName specifies the table name for GORM
func (SeasonModel) TableName() string {
	return "seasons"
}

// TicketPriceModel is the GORM database model for ticket prices
type TicketPriceModel struct {
	ID              string `gorm:"primaryKey;type:uuid"`
	SeasonID        string `gorm:"not null;index;type:uuid"`
	TicketType      string `gorm:"not null;type:varchar(10)"`
	Price           int    `gorm:"not null"`
	MaximumAgeLimit *int
	Description     string `gorm:"type:varchar(255)"`
}

// TableName specifies the table name for GORM
func (TicketPriceModel) TableName() string {
	return "ticket_prices"
}

// ToDomain converts GORM model to domain entity
func (m *SeasonModel) ToDomain() *season.Season {
	prices := make([]season.TicketPrice, len(m.TicketPrices))
	for i, p := range m.TicketPrices {
		prices[i] = p.ToDomain()
	}
	holidays := make([]calendar.DateRange, len(m.Holidays))
	for i, h := range m.Holidays {
		holidays[i] = calendar.DateRange{Start: calendar.Normalize(h.Start), End: calendar.Normalize(h.End)}
	}
	return &season.Season{
		ID:                              m.ID,
		ShortName:                       m.ShortName,
		StartDate:                       calendar.Normalize(m.StartDate.UTC()),
		EndDate:                         calendar.Normalize(m.EndDate.UTC()),
		CookingDays:                     append([]calendar.Weekday(nil), m.CookingDays...),
		Holidays:                        holidays,
		TicketPrices:                    prices,
		CancellableDaysBefore:           m.CancellableDaysBefore,
		DiningModeEditableMinutesBefore: m.DiningModeEditableMinutesBefore,
		ConsecutiveCookingDays:          m.ConsecutiveCookingDays,
		DinnerStartTime:                 m.DinnerStartTime,
		IsActive:                        m.IsActive,
	}
}

// FromDomain converts domain entity to GORM model
func (m *SeasonModel) FromDomain(s *season.Season) {
	m.ID = s.ID
	m.ShortName = s.ShortName
	m.StartDate = calendar.Normalize(s.StartDate)
	m.EndDate = calendar.Normalize(s.EndDate)
	m.CookingDays = append([]calendar.Weekday(nil), s.CookingDays...)
	m.Holidays = make([]calendar.DateRange, len(s.Holidays))
	for i, h := range s.Holidays {
		m.Holidays[i] = calendar.DateRange{Start: calendar.Normalize(h.Start), End: calendar.Normalize(h.End)}
	}
	m.CancellableDaysBefore = s.CancellableDaysBefore
	m.DiningModeEditableMinutesBefore = s.DiningModeEditableMinutesBefore
	m.ConsecutiveCookingDays = s.ConsecutiveCookingDays
	m.DinnerStartTime = s.DinnerStartTime
	m.IsActive = s.IsActive
	m.TicketPrices = make([]TicketPriceModel, len(s.TicketPrices))
	for i := range s.TicketPrices {
		m.TicketPrices[i].FromDomain(&s.TicketPrices[i])
		m.TicketPrices[i].SeasonID = s.ID
	}
}

// ToDomain converts GORM model to domain entity
func (m *TicketPriceModel) ToDomain() season.TicketPrice {
	return season.TicketPrice{
		ID:              m.ID,
		SeasonID:        m.SeasonID,
		TicketType:      season.TicketType(m.TicketType),
		Price:           m.Price,
		MaximumAgeLimit: m.MaximumAgeLimit,
		Description:     m.Description,
	}
}

// FromDomain converts domain entity to GORM model
func (m *TicketPriceModel) FromDomain(p *season.TicketPrice) {
	m.ID = p.ID
	m.SeasonID = p.SeasonID
	m.TicketType = string(p.TicketType)
	m.Price = p.Price
	m.MaximumAgeLimit = p.MaximumAgeLimit
	m.Description = p.Description
}
