package persistence

import (
	"context"
	"fmt"

	"github.com/Mathmagicians/theslope/internal/domain/errs"
	"github.com/Mathmagicians/theslope/internal/domain/team"
	"github.com/Mathmagicians/theslope/internal/infrastructure/persistence/models"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormCookingTeamRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormCookingTeamRepository creates a new GORM-based CookingTeamRepository implementation
func NewGormCookingTeamRepository(db *gorm.DB, logger logger.Logger) (team.CookingTeamRepository, error) {
	return &gormCookingTeamRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormCookingTeamRepository) Create(ctx context.Context, t *team.CookingTeam) error {
	if err := t.Validate(); err != nil {
		return errs.Validation("create cooking team", err)
	}

	model := &models.CookingTeamModel{}
	model.FromDomain(t)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create cooking team: %w", err)
	}

	r.logger.Info("Created cooking team with id ", t.ID)
	return nil
}

func (r *gormCookingTeamRepository) ListBySeason(ctx context.Context, seasonID string) ([]*team.CookingTeam, error) {
	var modelList []*models.CookingTeamModel
	err := conn(ctx, r.db).
		Preload("Assignments", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Where("season_id = ?", seasonID).
		Order("name asc").Order("id asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cooking teams: %w", err)
	}

	domainList := make([]*team.CookingTeam, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormCookingTeamRepository) GetByID(ctx context.Context, teamID string) (*team.CookingTeam, error) {
	var model models.CookingTeamModel
	err := conn(ctx, r.db).
		Preload("Assignments", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Where("id = ?", teamID).
		First(&model).Error
	if err != nil {
		return nil, notFoundOr(err, "get cooking team", teamID)
	}
	return model.ToDomain(), nil
}

func (r *gormCookingTeamRepository) UpdateByID(ctx context.Context, t *team.CookingTeam) error {
	if err := t.Validate(); err != nil {
		return errs.Validation("update cooking team", err)
	}

	model := &models.CookingTeamModel{}
	model.FromDomain(t)

	db := conn(ctx, r.db)
	if err := db.Omit(clause.Associations).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update cooking team: %w", err)
	}
	if err := db.Where("team_id = ?", t.ID).Delete(&models.TeamAssignmentModel{}).Error; err != nil {
		return fmt.Errorf("failed to replace team assignments: %w", err)
	}
	if len(model.Assignments) > 0 {
		if err := db.Create(&model.Assignments).Error; err != nil {
			return fmt.Errorf("failed to replace team assignments: %w", err)
		}
	}

	r.logger.Info("Updated cooking team with id ", t.ID)
	return nil
}

func (r *gormCookingTeamRepository) DeleteByID(ctx context.Context, teamID string) error {
	db := conn(ctx, r.db)
	if err := db.Where("team_id = ?", teamID).Delete(&models.TeamAssignmentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete team assignments: %w", err)
	}
	res := db.Where("id = ?", teamID).Delete(&models.CookingTeamModel{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete cooking team: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("delete cooking team", teamID)
	}

	r.logger.Info("Deleted cooking team with id ", teamID)
	return nil
}
