package persistence

import (
	"context"
	"fmt"

	"github.com/Mathmagicians/theslope/internal/domain/errs"
	"github.com/Mathmagicians/theslope/internal/domain/season"
	"github.com/Mathmagicians/theslope/internal/infrastructure/persistence/models"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormSeasonRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSeasonRepository creates a new GORM-based SeasonRepository implementation
func NewGormSeasonRepository(db *gorm.DB, logger logger.Logger) (season.SeasonRepository, error) {
	return &gormSeasonRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormSeasonRepository) Create(ctx context.Context, s *season.Season) error {
	if err := s.Validate(); err != nil {
		return errs.Validation("create season", err)
	}

	model := &models.SeasonModel{}
	model.FromDomain(s)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create season: %w", err)
	}

	r.logger.Info("Created season with id ", s.ID)
	return nil
}

func (r *gormSeasonRepository) List(ctx context.Context, query *season.SeasonQuery) ([]*season.Season, error) {
	if err := query.Validate(); err != nil {
		return nil, errs.Validation("list seasons", err)
	}

	order := query.SortOrder
	if order == "" {
		order = "desc"
	}
	dbQuery := conn(ctx, r.db).Model(&models.SeasonModel{}).
		Preload("TicketPrices").
		Order(fmt.Sprintf("start_date %s", order))

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	var modelList []*models.SeasonModel
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch seasons: %w", err)
	}

	domainList := make([]*season.Season, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormSeasonRepository) GetByID(ctx context.Context, seasonID string) (*season.Season, error) {
	var model models.SeasonModel
	if err := conn(ctx, r.db).Preload("TicketPrices").Where("id = ?", seasonID).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "get season", seasonID)
	}
	return model.ToDomain(), nil
}

func (r *gormSeasonRepository) GetActive(ctx context.Context) (*season.Season, error) {
	var model models.SeasonModel
	if err := conn(ctx, r.db).Preload("TicketPrices").Where("is_active = ?", true).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "get active season", "")
	}
	return model.ToDomain(), nil
}

// UpdateByID replaces the season row and its full price list
func (r *gormSeasonRepository) UpdateByID(ctx context.Context, s *season.Season) error {
	if err := s.Validate(); err != nil {
		return errs.Validation("update season", err)
	}

	model := &models.SeasonModel{}
	model.FromDomain(s)

	db := conn(ctx, r.db)
	if err := db.Omit(clause.Associations).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update season: %w", err)
	}
	if err := db.Where("season_id = ?", s.ID).Delete(&models.TicketPriceModel{}).Error; err != nil {
		return fmt.Errorf("failed to replace ticket prices: %w", err)
	}
	if len(model.TicketPrices) > 0 {
		if err := db.Create(&model.TicketPrices).Error; err != nil {
			return fmt.Errorf("failed to replace ticket prices: %w", err)
		}
	}

	r.logger.Info("Updated season with id ", s.ID)
	return nil
}

func (r *gormSeasonRepository) DeleteByID(ctx context.Context, seasonID string) error {
	db := conn(ctx, r.db)
	if err := db.Where("season_id = ?", seasonID).Delete(&models.TicketPriceModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete ticket prices: %w", err)
	}
	res := db.Where("id = ?", seasonID).Delete(&models.SeasonModel{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete season: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("delete season", seasonID)
	}

	r.logger.Info("Deleted season with id ", seasonID)
	return nil
}

func (r *gormSeasonRepository) SetActive(ctx context.Context, seasonID string) error {
	db := conn(ctx, r.db)
	// The target must exist before any other season is switched off.
	res := db.Model(&models.SeasonModel{}).Where("id = ?", seasonID).Update("is_active", true)
	if res.Error != nil {
		return fmt.Errorf("failed to activate season: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("activate season", seasonID)
	}
	if err := db.Model(&models.SeasonModel{}).Where("id <> ?", seasonID).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to deactivate seasons: %w", err)
	}

	r.logger.Info("Activated season with id ", seasonID)
	return nil
}
