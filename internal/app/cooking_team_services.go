package app

import (
	"context"
	"fmt"

	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/errs"
	"github.com/Mathmagicians/theslope/internal/domain/team"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"

	"github.com/google/uuid"
)

// cookingTeamService implements the CookingTeamService interface
type cookingTeamService struct {
	repos  Repositories
	uow    UnitOfWork
	logger logger.Logger
}

// NewCookingTeamService creates a new cookingTeamService instance
func NewCookingTeamService(repos Repositories, uow UnitOfWork, logger logger.Logger) (team.CookingTeamService, error) {
	if err := repos.validate(); err != nil {
		return nil, err
	}
	if uow == nil {
		return nil, fmt.Errorf("%w: cooking team service", ErrMissingDependency)
	}
	return &cookingTeamService{
		repos:  repos,
		uow:    uow,
		logger: logger,
	}, nil
}

func (s *cookingTeamService) Create(ctx context.Context, newTeam *team.CookingTeam) (*team.CookingTeam, error) {
	if _, err := s.repos.Seasons.GetByID(ctx, newTeam.SeasonID); err != nil {
		return nil, err
	}
	if newTeam.ID == "" {
		newTeam.ID = uuid.NewString()
	}
	if err := s.checkMembers(ctx, newTeam); err != nil {
		return nil, err
	}
	if err := s.repos.CookingTeams.Create(ctx, newTeam); err != nil {
		return nil, err
	}
	return newTeam, nil
}

func (s *cookingTeamService) ListBySeason(ctx context.Context, seasonID string) ([]*team.CookingTeam, error) {
	return s.repos.CookingTeams.ListBySeason(ctx, seasonID)
}

func (s *cookingTeamService) GetByID(ctx context.Context, teamID string) (*team.CookingTeam, error) {
	return s.repos.CookingTeams.GetByID(ctx, teamID)
}

// Update renames the team and replaces its members. A team never changes season.
func (s *cookingTeamService) Update(ctx context.Context, changed *team.CookingTeam) (*team.CookingTeam, error) {
	existing, err := s.repos.CookingTeams.GetByID(ctx, changed.ID)
	if err != nil {
		return nil, err
	}
	changed.SeasonID = existing.SeasonID
	if err := s.checkMembers(ctx, changed); err != nil {
		return nil, err
	}
	if err := s.repos.CookingTeams.UpdateByID(ctx, changed); err != nil {
		return nil, err
	}
	return changed, nil
}

// DeleteByID removes the team and takes it off the dinners it was assigned to.
func (s *cookingTeamService) DeleteByID(ctx context.Context, teamID string) error {
	return s.uow.Do(ctx, func(ctx context.Context) error {
		existing, err := s.repos.CookingTeams.GetByID(ctx, teamID)
		if err != nil {
			return err
		}
		dinners, err := s.repos.DinnerEvents.List(ctx, &dinner.DinnerEventQuery{SeasonID: existing.SeasonID})
		if err != nil {
			return err
		}
		for _, event := range dinners {
			if event.CookingTeamID == nil || *event.CookingTeamID != teamID {
				continue
			}
			event.CookingTeamID = nil
			if err := s.repos.DinnerEvents.UpdateByID(ctx, event); err != nil {
				return err
			}
		}
		return s.repos.CookingTeams.DeleteByID(ctx, teamID)
	})
}

// AssignToEvents walks the season's dinners in date order and hands them out
// to the teams in rotation, ConsecutiveCookingDays dinners at a time. Cancelled
// dinners do not take a turn and dinners that already have a team keep it.
func (s *cookingTeamService) AssignToEvents(ctx context.Context, seasonID string) (int, error) {
	assigned := 0
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		sn, err := s.repos.Seasons.GetByID(ctx, seasonID)
		if err != nil {
			return err
		}
		teams, err := s.repos.CookingTeams.ListBySeason(ctx, seasonID)
		if err != nil {
			return err
		}
		if len(teams) == 0 {
			return errs.Conflict("assign cooking teams", seasonID, "season has no cooking teams")
		}
		dinners, err := s.repos.DinnerEvents.List(ctx, &dinner.DinnerEventQuery{
			SeasonID: seasonID,
			States:   []string{dinner.StateScheduled, dinner.StateAnnounced, dinner.StateConsumed},
		})
		if err != nil {
			return err
		}

		for i, event := range dinners {
			if event.CookingTeamID != nil {
				continue
			}
			cook := teams[team.Rotation(i, len(teams), sn.ConsecutiveCookingDays)]
			teamID := cook.ID
			event.CookingTeamID = &teamID
			if event.ChefID == nil {
				event.ChefID = cook.Chef()
			}
			if err := s.repos.DinnerEvents.UpdateByID(ctx, event); err != nil {
				return err
			}
			assigned++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Infof("Assigned cooking teams to %d dinners of season %s", assigned, seasonID)
	return assigned, nil
}

// checkMembers validates the team and makes sure every member exists.
func (s *cookingTeamService) checkMembers(ctx context.Context, t *team.CookingTeam) error {
	if err := t.Validate(); err != nil {
		return errs.Validation("save cooking team", err)
	}
	if len(t.Assignments) == 0 {
		return nil
	}
	ids := make([]string, len(t.Assignments))
	for i, a := range t.Assignments {
		ids[i] = a.InhabitantID
	}
	found, err := s.repos.Inhabitants.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return errs.Validation("save cooking team", fmt.Errorf("unknown inhabitant among %d members", len(ids)))
	}
	return nil
}
