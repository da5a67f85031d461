package household

import "context"

// HouseholdService manages households and their inhabitants.
type HouseholdService interface {
	Create(ctx context.Context, household *Household) (*Household, error)
	List(ctx context.Context, query *HouseholdQuery) ([]*Household, error)
	// GetByID retrieves a household with its inhabitants.
	GetByID(ctx context.Context, householdID string) (*Household, error)
	Update(ctx context.Context, household *Household) (*Household, error)
	DeleteByID(ctx context.Context, householdID string) error

	// AddInhabitant stores a new inhabitant and pre-books by its preferences.
	AddInhabitant(ctx context.Context, inhabitant *Inhabitant) (*Inhabitant, error)
	GetInhabitant(ctx context.Context, inhabitantID string) (*Inhabitant, error)
	// UpdateInhabitant stores changes and reconciles the household's bookings
	// with the new preferences.
	UpdateInhabitant(ctx context.Context, inhabitant *Inhabitant) (*Inhabitant, error)
	DeleteInhabitant(ctx context.Context, inhabitantID string) error
}

// AllergyService manages allergy types and inhabitant allergies.
type AllergyService interface {
	CreateType(ctx context.Context, allergyType *AllergyType) (*AllergyType, error)
	ListTypes(ctx context.Context) ([]*AllergyType, error)
	DeleteType(ctx context.Context, allergyTypeID string) error
	AddAllergy(ctx context.Context, allergy *Allergy) (*Allergy, error)
	ListAllergies(ctx context.Context, inhabitantID string) ([]*Allergy, error)
	DeleteAllergy(ctx context.Context, allergyID string) error
}

// HouseholdRepository defines the interface for Household-related operations
type HouseholdRepository interface {
	Create(ctx context.Context, household *Household) error
	List(ctx context.Context, query *HouseholdQuery) ([]*Household, error)
	// GetByID returns the household with its inhabitants loaded
	GetByID(ctx context.Context, householdID string) (*Household, error)
	UpdateByID(ctx context.Context, household *Household) error
	DeleteByID(ctx context.Context, householdID string) error
}

// InhabitantRepository defines the interface for Inhabitant-related operations
type InhabitantRepository interface {
	Create(ctx context.Context, inhabitant *Inhabitant) error
	GetByID(ctx context.Context, inhabitantID string) (*Inhabitant, error)
	ListByIDs(ctx context.Context, inhabitantIDs []string) ([]*Inhabitant, error)
	ListByHousehold(ctx context.Context, householdID string) ([]*Inhabitant, error)
	UpdateByID(ctx context.Context, inhabitant *Inhabitant) error
	DeleteByID(ctx context.Context, inhabitantID string) error
}

// AllergyRepository defines the interface for allergy types and allergies
type AllergyRepository interface {
	CreateType(ctx context.Context, allergyType *AllergyType) error
	ListTypes(ctx context.Context) ([]*AllergyType, error)
	DeleteType(ctx context.Context, allergyTypeID string) error
	Create(ctx context.Context, allergy *Allergy) error
	ListByInhabitants(ctx context.Context, inhabitantIDs []string) ([]*Allergy, error)
	DeleteByID(ctx context.Context, allergyID string) error
}
