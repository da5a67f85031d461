//go:build unit
// +build unit

package models

import (
	"testing"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHouseholdModel_ToDomain(t *testing.T) {
	moveOut := time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)
	model := &HouseholdModel{
		ID:          "household-id",
		Name:        "Berg",
		Address:     "Skråningen 12",
		PbsID:       1012,
		MovedInDate: calendar.Date(2020, time.January, 1),
		MoveOutDate: &moveOut,
		Inhabitants: []InhabitantModel{
			{ID: "inhabitant-id", HouseholdID: "household-id", Name: "Anna", LastName: "Berg"},
		},
	}

	h := model.ToDomain()

	assert.Equal(t, model.ID, h.ID)
	assert.Equal(t, 1012, h.PbsID)
	require.NotNil(t, h.MoveOutDate)
	assert.Equal(t, calendar.Date(2026, time.February, 1), *h.MoveOutDate)
	require.Len(t, h.Inhabitants, 1)
	assert.Equal(t, "Anna", h.Inhabitants[0].Name)
	assert.NotNil(t, h.Inhabitants[0].DinnerPreferences)
}

func TestInhabitantModel_FromDomain(t *testing.T) {
	birth := calendar.Date(2012, time.March, 19)
	i := &household.Inhabitant{
		ID:          "inhabitant-id",
		HouseholdID: "household-id",
		Name:        "Bo",
		LastName:    "Berg",
		BirthDate:   &birth,
		DinnerPreferences: household.DinnerPreferences{
			calendar.Monday: dinner.ModeTakeaway,
		},
	}

	model := &InhabitantModel{}
	model.FromDomain(i)

	assert.Equal(t, i.ID, model.ID)
	assert.Equal(t, birth, *model.BirthDate)
	assert.Equal(t, dinner.ModeTakeaway, model.DinnerPreferences[calendar.Monday])

	// the model owns its own copy
	i.DinnerPreferences[calendar.Monday] = dinner.ModeNone
	assert.Equal(t, dinner.ModeTakeaway, model.DinnerPreferences[calendar.Monday])
}
