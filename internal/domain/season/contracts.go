package season

import "context"

// SeasonService defines season planning operations.
type SeasonService interface {
	// Create validates and stores a new, inactive season.
	Create(ctx context.Context, season *Season) (*Season, error)

	// List retrieves seasons, newest first unless the query says otherwise.
	List(ctx context.Context, query *SeasonQuery) ([]*Season, error)

	// GetByID retrieves a season by ID.
	GetByID(ctx context.Context, seasonID string) (*Season, error)

	// GetActive retrieves the single active season.
	GetActive(ctx context.Context) (*Season, error)

	// Update replaces the season's settings and prices. Dates of a season that
	// already has dinner events can not move.
	Update(ctx context.Context, season *Season) (*Season, error)

	// DeleteByID deletes a season that has no booked dinners.
	DeleteByID(ctx context.Context, seasonID string) error

	// Activate makes the season the active one and pre-books every household.
	Activate(ctx context.Context, seasonID string) (*Season, error)
}

// SeasonRepository defines the interface for Season-related operations
type SeasonRepository interface {
	Create(ctx context.Context, season *Season) error
	List(ctx context.Context, query *SeasonQuery) ([]*Season, error)
	GetByID(ctx context.Context, seasonID string) (*Season, error)
	// GetActive returns errs.ErrNotFound when no season is active
	GetActive(ctx context.Context) (*Season, error)
	UpdateByID(ctx context.Context, season *Season) error
	DeleteByID(ctx context.Context, seasonID string) error
	// SetActive deactivates every other season and activates seasonID
	SetActive(ctx context.Context, seasonID string) error
}
