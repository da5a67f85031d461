//go:build unit
// +build unit

package household

import (
	"testing"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHousehold_Validate(t *testing.T) {
	h := &Household{
		ID:          uuid.NewString(),
		Name:        "Hansen",
		Address:     "Skråningen 3",
		PbsID:       1003,
		MovedInDate: calendar.Date(2019, time.May, 1),
	}
	require.NoError(t, h.Validate())

	moveOut := calendar.Date(2019, time.May, 1)
	h.MoveOutDate = &moveOut
	assert.ErrorIs(t, h.Validate(), ErrMoveOutBeforeMoveIn)

	h.MoveOutDate = nil
	h.PbsID = 0
	assert.Error(t, h.Validate())
}

func TestHousehold_LivesHereOn(t *testing.T) {
	moveOut := calendar.Date(2025, time.June, 1)
	h := &Household{MovedInDate: calendar.Date(2025, time.January, 15), MoveOutDate: &moveOut}

	assert.False(t, h.LivesHereOn(calendar.Date(2025, time.January, 14)))
	assert.True(t, h.LivesHereOn(calendar.Date(2025, time.January, 15)))
	assert.True(t, h.LivesHereOn(calendar.Date(2025, time.May, 31)))
	assert.False(t, h.LivesHereOn(calendar.Date(2025, time.June, 1)))
}

func TestDinnerPreferences_ModeOn(t *testing.T) {
	prefs := DinnerPreferences{calendar.Tuesday: dinner.ModeTakeaway, calendar.Wednesday: ""}

	assert.Equal(t, dinner.ModeTakeaway, prefs.ModeOn(calendar.Date(2025, time.March, 4)))
	assert.Equal(t, dinner.ModeNone, prefs.ModeOn(calendar.Date(2025, time.March, 5)))
	assert.Equal(t, dinner.ModeNone, prefs.ModeOn(calendar.Date(2025, time.March, 3)))
	assert.Equal(t, dinner.ModeNone, DinnerPreferences(nil).ModeOn(calendar.Date(2025, time.March, 3)))
}

func TestInhabitant_Validate(t *testing.T) {
	i := &Inhabitant{
		ID:                uuid.NewString(),
		HouseholdID:       uuid.NewString(),
		Name:              "Ida",
		LastName:          "Hansen",
		DinnerPreferences: DinnerPreferences{calendar.Monday: dinner.ModeDineIn, calendar.Friday: dinner.ModeNone},
	}
	require.NoError(t, i.Validate())
	assert.Equal(t, "Ida Hansen", i.FullName())

	i.DinnerPreferences = DinnerPreferences{"someday": dinner.ModeDineIn}
	assert.Error(t, i.Validate())

	i.DinnerPreferences = DinnerPreferences{calendar.Monday: "BRUNCH"}
	assert.Error(t, i.Validate())
}

func TestInhabitant_AgeOn(t *testing.T) {
	i := &Inhabitant{}
	assert.Nil(t, i.AgeOn(calendar.Date(2025, time.March, 3)))

	birth := calendar.Date(2015, time.March, 4)
	i.BirthDate = &birth
	age := i.AgeOn(calendar.Date(2025, time.March, 3))
	require.NotNil(t, age)
	assert.Equal(t, 9, *age)
}
