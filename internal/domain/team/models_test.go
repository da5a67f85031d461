//go:build unit
// +build unit

package team

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookingTeam_Validate(t *testing.T) {
	chef := uuid.NewString()
	team := &CookingTeam{
		ID:       uuid.NewString(),
		SeasonID: uuid.NewString(),
		Name:     "Hold 1",
		Assignments: []Assignment{
			{InhabitantID: uuid.NewString(), Role: RoleCook},
			{InhabitantID: chef, Role: RoleChef},
		},
	}
	require.NoError(t, team.Validate())
	require.NotNil(t, team.Chef())
	assert.Equal(t, chef, *team.Chef())

	team.Assignments = append(team.Assignments, Assignment{InhabitantID: chef, Role: RoleJuniorHelper})
	assert.ErrorIs(t, team.Validate(), ErrDuplicateMember)

	team.Assignments = []Assignment{{InhabitantID: chef, Role: "WAITER"}}
	assert.Error(t, team.Validate())
}

func TestCookingTeam_ChefMissing(t *testing.T) {
	team := &CookingTeam{Assignments: []Assignment{{InhabitantID: uuid.NewString(), Role: RoleCook}}}
	assert.Nil(t, team.Chef())
}

func TestRotation(t *testing.T) {
	var got []int
	for i := 0; i < 7; i++ {
		got = append(got, Rotation(i, 3, 2))
	}
	assert.Equal(t, []int{0, 0, 1, 1, 2, 2, 0}, got)

	assert.Equal(t, 1, Rotation(1, 3, 0))
	assert.Equal(t, -1, Rotation(0, 0, 1))
}
