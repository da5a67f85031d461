package persistence

import (
	"context"
	"fmt"

	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/errs"
	"github.com/Mathmagicians/theslope/internal/infrastructure/persistence/models"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormDinnerEventRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormDinnerEventRepository creates a new GORM-based DinnerEventRepository implementation
func NewGormDinnerEventRepository(db *gorm.DB, logger logger.Logger) (dinner.DinnerEventRepository, error) {
	return &gormDinnerEventRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormDinnerEventRepository) CreateBatch(ctx context.Context, events []*dinner.DinnerEvent) error {
	if len(events) == 0 {
		return nil
	}

	modelList := make([]*models.DinnerEventModel, len(events))
	for i, event := range events {
		if err := event.Validate(); err != nil {
			return errs.Validation("create dinner events", err)
		}
		modelList[i] = &models.DinnerEventModel{}
		modelList[i].FromDomain(event)
	}

	if err := conn(ctx, r.db).CreateInBatches(modelList, 100).Error; err != nil {
		return fmt.Errorf("failed to create dinner events: %w", err)
	}

	r.logger.Infof("Created %d dinner events", len(events))
	return nil
}

func (r *gormDinnerEventRepository) List(ctx context.Context, query *dinner.DinnerEventQuery) ([]*dinner.DinnerEvent, error) {
	if err := query.Validate(); err != nil {
		return nil, errs.Validation("list dinner events", err)
	}

	dbQuery := conn(ctx, r.db).Model(&models.DinnerEventModel{})
	if query.SeasonID != "" {
		dbQuery = dbQuery.Where("season_id = ?", query.SeasonID)
	}
	if !query.From.IsZero() {
		dbQuery = dbQuery.Where("date >= ?", calendar.Normalize(query.From))
	}
	if !query.To.IsZero() {
		dbQuery = dbQuery.Where("date <= ?", calendar.Normalize(query.To))
	}
	if len(query.States) > 0 {
		dbQuery = dbQuery.Where("state IN ?", query.States)
	}
	if len(query.IDs) > 0 {
		dbQuery = dbQuery.Where("id IN ?", query.IDs)
	}
	dbQuery = dbQuery.Order("date asc").Order("id asc")

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	var modelList []*models.DinnerEventModel
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch dinner events: %w", err)
	}

	domainList := make([]*dinner.DinnerEvent, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormDinnerEventRepository) GetByID(ctx context.Context, eventID string) (*dinner.DinnerEvent, error) {
	var model models.DinnerEventModel
	if err := conn(ctx, r.db).Where("id = ?", eventID).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "get dinner event", eventID)
	}
	return model.ToDomain(), nil
}

func (r *gormDinnerEventRepository) UpdateByID(ctx context.Context, event *dinner.DinnerEvent) error {
	if err := event.Validate(); err != nil {
		return errs.Validation("update dinner event", err)
	}

	model := &models.DinnerEventModel{}
	model.FromDomain(event)

	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update dinner event: %w", err)
	}
	return nil
}

func (r *gormDinnerEventRepository) DeleteByID(ctx context.Context, eventID string) error {
	if err := conn(ctx, r.db).Where("id = ?", eventID).Delete(&models.DinnerEventModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete dinner event: %w", err)
	}

	r.logger.Info("Deleted dinner event with id ", eventID)
	return nil
}
