// Package team defines cooking teams and their roster for a season.
package team

import (
	"errors"

	"github.com/Mathmagicians/theslope/internal/pkg/validators"
)

// Team roles
const (
	RoleChef         = "CHEF"
	RoleCook         = "COOK"
	RoleJuniorHelper = "JUNIORHELPER"
)

// ErrDuplicateMember is returned when an inhabitant appears twice on one team.
var ErrDuplicateMember = errors.New("inhabitant assigned twice to the team")

// Assignment places an inhabitant on a team in a role.
type Assignment struct {
	InhabitantID string `validate:"required,uuid4"`
	Role         string `validate:"required,oneof=CHEF COOK JUNIORHELPER"`
}

// CookingTeam entity
type CookingTeam struct {
	ID          string       `validate:"required,uuid4"`
	SeasonID    string       `validate:"required,uuid4"`
	Name        string       `validate:"required,min=1,max=100"`
	Assignments []Assignment `validate:"dive"`
}

// Validate for validating CookingTeam struct
func (t *CookingTeam) Validate() error {
	if err := validators.ValidateStruct(t); err != nil {
		return err
	}

	seen := make(map[string]bool, len(t.Assignments))
	for _, a := range t.Assignments {
		if seen[a.InhabitantID] {
			return ErrDuplicateMember
		}
		seen[a.InhabitantID] = true
	}
	return nil
}

// Chef returns the inhabitant id of the team's first chef, if any.
func (t *CookingTeam) Chef() *string {
	for _, a := range t.Assignments {
		if a.Role == RoleChef {
			id := a.InhabitantID
			return &id
		}
	}
	return nil
}

// Rotation hands out teams for a date-ordered sequence of dinners: each team
// cooks `consecutive` dinners in a row before the next team takes over.
// It returns the team index for position i.
func Rotation(i, teams, consecutive int) int {
	if teams == 0 {
		return -1
	}
	if consecutive < 1 {
		consecutive = 1
	}
	return (i / consecutive) % teams
}
