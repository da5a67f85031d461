package team

import "context"

// CookingTeamService defines cooking team rostering.
type CookingTeamService interface {
	Create(ctx context.Context, team *CookingTeam) (*CookingTeam, error)
	ListBySeason(ctx context.Context, seasonID string) ([]*CookingTeam, error)
	GetByID(ctx context.Context, teamID string) (*CookingTeam, error)
	Update(ctx context.Context, team *CookingTeam) (*CookingTeam, error)
	DeleteByID(ctx context.Context, teamID string) error

	// AssignToEvents gives every season dinner without a team a team in
	// rotation and returns the number of events that were assigned.
	AssignToEvents(ctx context.Context, seasonID string) (int, error)
}

// CookingTeamRepository defines the interface for CookingTeam-related operations
type CookingTeamRepository interface {
	Create(ctx context.Context, team *CookingTeam) error
	ListBySeason(ctx context.Context, seasonID string) ([]*CookingTeam, error)
	GetByID(ctx context.Context, teamID string) (*CookingTeam, error)
	// UpdateByID replaces name and assignments
	UpdateByID(ctx context.Context, team *CookingTeam) error
	DeleteByID(ctx context.Context, teamID string) error
}
