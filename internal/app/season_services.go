package app

import (
	"context"
	"fmt"

	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/errs"
	"github.com/Mathmagicians/theslope/internal/domain/events"
	"github.com/Mathmagicians/theslope/internal/domain/season"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"
	"github.com/Mathmagicians/theslope/internal/pkg/timeutil"

	"github.com/google/uuid"
)

// seasonService implements the SeasonService interface
type seasonService struct {
	repos    Repositories
	uow      UnitOfWork
	scaffold booking.ScaffoldService
	clock    timeutil.Clock
	notifier notifier
	logger   logger.Logger
}

// NewSeasonService creates a new seasonService instance
func NewSeasonService(
	repos Repositories,
	uow UnitOfWork,
	scaffold booking.ScaffoldService,
	publisher events.Publisher,
	clock timeutil.Clock,
	logger logger.Logger,
) (season.SeasonService, error) {
	if err := repos.validate(); err != nil {
		return nil, err
	}
	if uow == nil || scaffold == nil || clock == nil {
		return nil, fmt.Errorf("%w: season service", ErrMissingDependency)
	}
	return &seasonService{
		repos:    repos,
		uow:      uow,
		scaffold: scaffold,
		clock:    clock,
		notifier: notifier{publisher: publisher, logger: logger},
		logger:   logger,
	}, nil
}

// Create stores a new season. New seasons are never active; use Activate.
func (s *seasonService) Create(ctx context.Context, newSeason *season.Season) (*season.Season, error) {
	if newSeason.ID == "" {
		newSeason.ID = uuid.NewString()
	}
	newSeason.IsActive = false
	prepareSeason(newSeason)

	if err := s.repos.Seasons.Create(ctx, newSeason); err != nil {
		return nil, err
	}
	s.logger.Infof("Season %s (%s) created", newSeason.ShortName, newSeason.ID)
	return newSeason, nil
}

func (s *seasonService) List(ctx context.Context, query *season.SeasonQuery) ([]*season.Season, error) {
	if query == nil {
		query = season.NewSeasonQuery()
	}
	return s.repos.Seasons.List(ctx, query)
}

func (s *seasonService) GetByID(ctx context.Context, seasonID string) (*season.Season, error) {
	return s.repos.Seasons.GetByID(ctx, seasonID)
}

func (s *seasonService) GetActive(ctx context.Context) (*season.Season, error) {
	return s.repos.Seasons.GetActive(ctx)
}

// Update replaces the season settings. The activation flag is not touched and
// the dates are frozen once dinner events exist.
func (s *seasonService) Update(ctx context.Context, changed *season.Season) (*season.Season, error) {
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		existing, err := s.repos.Seasons.GetByID(ctx, changed.ID)
		if err != nil {
			return err
		}

		prepareSeason(changed)
		changed.IsActive = existing.IsActive

		if !changed.StartDate.Equal(existing.StartDate) || !changed.EndDate.Equal(existing.EndDate) {
			scheduled, err := s.repos.DinnerEvents.List(ctx, &dinner.DinnerEventQuery{SeasonID: existing.ID, Limit: 1})
			if err != nil {
				return err
			}
			if len(scheduled) > 0 {
				return errs.Conflict("update season", existing.ID, "season dates can not move once dinner events exist")
			}
		}

		return s.repos.Seasons.UpdateByID(ctx, changed)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Season %s updated", changed.ID)
	return changed, nil
}

// DeleteByID removes a season and its dinner events as long as nobody holds a
// ticket for any of them.
func (s *seasonService) DeleteByID(ctx context.Context, seasonID string) error {
	return s.uow.Do(ctx, func(ctx context.Context) error {
		if _, err := s.repos.Seasons.GetByID(ctx, seasonID); err != nil {
			return err
		}

		dinners, err := s.repos.DinnerEvents.List(ctx, &dinner.DinnerEventQuery{SeasonID: seasonID})
		if err != nil {
			return err
		}
		if len(dinners) > 0 {
			ids := make([]string, len(dinners))
			for i, event := range dinners {
				ids[i] = event.ID
			}
			orders, err := s.repos.Orders.List(ctx, &booking.OrderQuery{DinnerEventIDs: ids, Limit: 1})
			if err != nil {
				return err
			}
			if len(orders) > 0 {
				return errs.Conflict("delete season", seasonID, "season has orders")
			}
			for _, id := range ids {
				if err := s.repos.DinnerEvents.DeleteByID(ctx, id); err != nil {
					return err
				}
			}
		}

		teams, err := s.repos.CookingTeams.ListBySeason(ctx, seasonID)
		if err != nil {
			return err
		}
		for _, t := range teams {
			if err := s.repos.CookingTeams.DeleteByID(ctx, t.ID); err != nil {
				return err
			}
		}

		if err := s.repos.Seasons.DeleteByID(ctx, seasonID); err != nil {
			return err
		}
		s.logger.Infof("Season %s deleted with %d dinner events", seasonID, len(dinners))
		return nil
	})
}

// Activate makes seasonID the only active season and then pre-books every
// household for its remaining dinners.
func (s *seasonService) Activate(ctx context.Context, seasonID string) (*season.Season, error) {
	var activated *season.Season
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		if err := s.repos.Seasons.SetActive(ctx, seasonID); err != nil {
			return err
		}
		var err error
		activated, err = s.repos.Seasons.GetByID(ctx, seasonID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infof("Season %s (%s) activated", activated.ShortName, activated.ID)

	results, err := s.scaffold.ScaffoldAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("season %s activated but pre-booking failed: %w", seasonID, err)
	}

	changes := 0
	for _, result := range results {
		changes += result.Changes()
	}
	s.notifier.notify(ctx, events.TypeSeasonActivated, activated.ID, s.clock.Now(), map[string]interface{}{
		"short_name": activated.ShortName,
		"households": len(results),
		"changes":    changes,
	})
	return activated, nil
}

// prepareSeason fills defaults and gives every ticket price an id in the season.
func prepareSeason(s *season.Season) {
	s.ApplyDefaults()
	for i := range s.TicketPrices {
		if s.TicketPrices[i].ID == "" {
			s.TicketPrices[i].ID = uuid.NewString()
		}
		s.TicketPrices[i].SeasonID = s.ID
	}
}
