package app

import (
	"context"
	"fmt"

	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/errs"
	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"

	"github.com/google/uuid"
)

// householdService implements the HouseholdService interface. Every change
// that can affect who eats when is followed by a scaffold of the household.
type householdService struct {
	repos    Repositories
	uow      UnitOfWork
	scaffold booking.ScaffoldService
	logger   logger.Logger
}

// NewHouseholdService creates a new householdService instance
func NewHouseholdService(repos Repositories, uow UnitOfWork, scaffold booking.ScaffoldService, logger logger.Logger) (household.HouseholdService, error) {
	if err := repos.validate(); err != nil {
		return nil, err
	}
	if uow == nil || scaffold == nil {
		return nil, fmt.Errorf("%w: household service", ErrMissingDependency)
	}
	return &householdService{
		repos:    repos,
		uow:      uow,
		scaffold: scaffold,
		logger:   logger,
	}, nil
}

// Create stores the household together with the inhabitants it carries.
func (s *householdService) Create(ctx context.Context, newHousehold *household.Household) (*household.Household, error) {
	if newHousehold.ID == "" {
		newHousehold.ID = uuid.NewString()
	}
	normalizeHousehold(newHousehold)

	err := s.uow.Do(ctx, func(ctx context.Context) error {
		if err := s.repos.Households.Create(ctx, newHousehold); err != nil {
			return err
		}
		for _, inhabitant := range newHousehold.Inhabitants {
			if inhabitant.ID == "" {
				inhabitant.ID = uuid.NewString()
			}
			inhabitant.HouseholdID = newHousehold.ID
			normalizeInhabitant(inhabitant)
			if err := s.repos.Inhabitants.Create(ctx, inhabitant); err != nil {
				return err
			}
		}
		_, err := s.scaffold.ScaffoldHousehold(ctx, newHousehold.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Household %s (pbs %d) created with %d inhabitants", newHousehold.ID, newHousehold.PbsID, len(newHousehold.Inhabitants))
	return s.repos.Households.GetByID(ctx, newHousehold.ID)
}

func (s *householdService) List(ctx context.Context, query *household.HouseholdQuery) ([]*household.Household, error) {
	if query == nil {
		query = household.NewHouseholdQuery()
	}
	return s.repos.Households.List(ctx, query)
}

func (s *householdService) GetByID(ctx context.Context, householdID string) (*household.Household, error) {
	return s.repos.Households.GetByID(ctx, householdID)
}

// Update changes name, address, pbs id and move dates. Inhabitants are
// managed on their own.
func (s *householdService) Update(ctx context.Context, changed *household.Household) (*household.Household, error) {
	normalizeHousehold(changed)
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		if _, err := s.repos.Households.GetByID(ctx, changed.ID); err != nil {
			return err
		}
		if err := s.repos.Households.UpdateByID(ctx, changed); err != nil {
			return err
		}
		_, err := s.scaffold.ScaffoldHousehold(ctx, changed.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.repos.Households.GetByID(ctx, changed.ID)
}

// DeleteByID removes a household that holds no active tickets and has no
// unbilled charges. Households moving out are given a move out date instead.
func (s *householdService) DeleteByID(ctx context.Context, householdID string) error {
	return s.uow.Do(ctx, func(ctx context.Context) error {
		if _, err := s.repos.Households.GetByID(ctx, householdID); err != nil {
			return err
		}
		active, err := s.repos.Orders.List(ctx, &booking.OrderQuery{
			HouseholdID: householdID,
			States:      []string{booking.StateBooked, booking.StateReleased, booking.StateClosed},
			Limit:       1,
		})
		if err != nil {
			return err
		}
		if len(active) > 0 {
			return errs.Conflict("delete household", householdID, "household has orders that are not settled")
		}
		transactions, err := s.repos.Transactions.ListByHousehold(ctx, householdID)
		if err != nil {
			return err
		}
		for _, transaction := range transactions {
			if transaction.InvoiceID == nil {
				return errs.Conflict("delete household", householdID, "household has unbilled transactions")
			}
		}
		return s.repos.Households.DeleteByID(ctx, householdID)
	})
}

func (s *householdService) AddInhabitant(ctx context.Context, inhabitant *household.Inhabitant) (*household.Inhabitant, error) {
	if inhabitant.ID == "" {
		inhabitant.ID = uuid.NewString()
	}
	normalizeInhabitant(inhabitant)

	err := s.uow.Do(ctx, func(ctx context.Context) error {
		if _, err := s.repos.Households.GetByID(ctx, inhabitant.HouseholdID); err != nil {
			return err
		}
		if err := s.repos.Inhabitants.Create(ctx, inhabitant); err != nil {
			return err
		}
		_, err := s.scaffold.ScaffoldHousehold(ctx, inhabitant.HouseholdID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Inhabitant %s added to household %s", inhabitant.ID, inhabitant.HouseholdID)
	return inhabitant, nil
}

func (s *householdService) GetInhabitant(ctx context.Context, inhabitantID string) (*household.Inhabitant, error) {
	return s.repos.Inhabitants.GetByID(ctx, inhabitantID)
}

// UpdateInhabitant stores the change and reconciles the household. An
// inhabitant stays in its household.
func (s *householdService) UpdateInhabitant(ctx context.Context, changed *household.Inhabitant) (*household.Inhabitant, error) {
	normalizeInhabitant(changed)
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		existing, err := s.repos.Inhabitants.GetByID(ctx, changed.ID)
		if err != nil {
			return err
		}
		changed.HouseholdID = existing.HouseholdID
		if err := s.repos.Inhabitants.UpdateByID(ctx, changed); err != nil {
			return err
		}
		_, err = s.scaffold.ScaffoldHousehold(ctx, changed.HouseholdID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return changed, nil
}

// DeleteInhabitant first drops every preference and reconciles, so tickets
// still cancellable are removed and later ones released, then deletes the
// inhabitant. Orders already decided stay for billing.
func (s *householdService) DeleteInhabitant(ctx context.Context, inhabitantID string) error {
	return s.uow.Do(ctx, func(ctx context.Context) error {
		existing, err := s.repos.Inhabitants.GetByID(ctx, inhabitantID)
		if err != nil {
			return err
		}
		existing.DinnerPreferences = household.DinnerPreferences{}
		if err := s.repos.Inhabitants.UpdateByID(ctx, existing); err != nil {
			return err
		}
		if _, err := s.scaffold.ScaffoldHousehold(ctx, existing.HouseholdID); err != nil {
			return err
		}
		if err := s.repos.Inhabitants.DeleteByID(ctx, inhabitantID); err != nil {
			return err
		}
		s.logger.Infof("Inhabitant %s removed from household %s", inhabitantID, existing.HouseholdID)
		return nil
	})
}

func normalizeHousehold(h *household.Household) {
	h.MovedInDate = calendar.Normalize(h.MovedInDate)
	if h.MoveOutDate != nil {
		moveOut := calendar.Normalize(*h.MoveOutDate)
		h.MoveOutDate = &moveOut
	}
}

func normalizeInhabitant(i *household.Inhabitant) {
	if i.BirthDate != nil {
		birth := calendar.Normalize(*i.BirthDate)
		i.BirthDate = &birth
	}
	if i.DinnerPreferences == nil {
		i.DinnerPreferences = household.DinnerPreferences{}
	}
}

// allergyService implements the AllergyService interface
type allergyService struct {
	repos  Repositories
	logger logger.Logger
}

// NewAllergyService creates a new allergyService instance
func NewAllergyService(repos Repositories, logger logger.Logger) (household.AllergyService, error) {
	if err := repos.validate(); err != nil {
		return nil, err
	}
	return &allergyService{repos: repos, logger: logger}, nil
}

func (s *allergyService) CreateType(ctx context.Context, allergyType *household.AllergyType) (*household.AllergyType, error) {
	if allergyType.ID == "" {
		allergyType.ID = uuid.NewString()
	}
	if err := s.repos.Allergies.CreateType(ctx, allergyType); err != nil {
		return nil, err
	}
	return allergyType, nil
}

func (s *allergyService) ListTypes(ctx context.Context) ([]*household.AllergyType, error) {
	return s.repos.Allergies.ListTypes(ctx)
}

func (s *allergyService) DeleteType(ctx context.Context, allergyTypeID string) error {
	return s.repos.Allergies.DeleteType(ctx, allergyTypeID)
}

func (s *allergyService) AddAllergy(ctx context.Context, allergy *household.Allergy) (*household.Allergy, error) {
	if _, err := s.repos.Inhabitants.GetByID(ctx, allergy.InhabitantID); err != nil {
		return nil, err
	}
	types, err := s.repos.Allergies.ListTypes(ctx)
	if err != nil {
		return nil, err
	}
	known := false
	for _, t := range types {
		if t.ID == allergy.AllergyTypeID {
			known = true
			break
		}
	}
	if !known {
		return nil, errs.NotFound("add allergy", allergy.AllergyTypeID)
	}

	if allergy.ID == "" {
		allergy.ID = uuid.NewString()
	}
	if err := s.repos.Allergies.Create(ctx, allergy); err != nil {
		return nil, err
	}
	return allergy, nil
}

func (s *allergyService) ListAllergies(ctx context.Context, inhabitantID string) ([]*household.Allergy, error) {
	if _, err := s.repos.Inhabitants.GetByID(ctx, inhabitantID); err != nil {
		return nil, err
	}
	return s.repos.Allergies.ListByInhabitants(ctx, []string{inhabitantID})
}

func (s *allergyService) DeleteAllergy(ctx context.Context, allergyID string) error {
	return s.repos.Allergies.DeleteByID(ctx, allergyID)
}
