package persistence

import (
	"context"
	"fmt"

	"github.com/Mathmagicians/theslope/internal/domain/errs"
	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/Mathmagicians/theslope/internal/infrastructure/persistence/models"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormAllergyRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAllergyRepository creates a new GORM-based AllergyRepository implementation
func NewGormAllergyRepository(db *gorm.DB, logger logger.Logger) (household.AllergyRepository, error) {
	return &gormAllergyRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAllergyRepository) CreateType(ctx context.Context, allergyType *household.AllergyType) error {
	if err := allergyType.Validate(); err != nil {
		return errs.Validation("create allergy type", err)
	}

	model := &models.AllergyTypeModel{}
	model.FromDomain(allergyType)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create allergy type: %w", err)
	}

	r.logger.Info("Created allergy type with id ", allergyType.ID)
	return nil
}

func (r *gormAllergyRepository) ListTypes(ctx context.Context) ([]*household.AllergyType, error) {
	var modelList []*models.AllergyTypeModel
	if err := conn(ctx, r.db).Order("name asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch allergy types: %w", err)
	}

	domainList := make([]*household.AllergyType, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

// DeleteType removes the type and every allergy of that type
func (r *gormAllergyRepository) DeleteType(ctx context.Context, allergyTypeID string) error {
	db := conn(ctx, r.db)
	if err := db.Where("allergy_type_id = ?", allergyTypeID).Delete(&models.AllergyModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete allergies: %w", err)
	}
	res := db.Where("id = ?", allergyTypeID).Delete(&models.AllergyTypeModel{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete allergy type: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("delete allergy type", allergyTypeID)
	}

	r.logger.Info("Deleted allergy type with id ", allergyTypeID)
	return nil
}

func (r *gormAllergyRepository) Create(ctx context.Context, allergy *household.Allergy) error {
	if err := allergy.Validate(); err != nil {
		return errs.Validation("create allergy", err)
	}

	model := &models.AllergyModel{}
	model.FromDomain(allergy)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create allergy: %w", err)
	}

	r.logger.Info("Created allergy with id ", allergy.ID)
	return nil
}

func (r *gormAllergyRepository) ListByInhabitants(ctx context.Context, inhabitantIDs []string) ([]*household.Allergy, error) {
	if len(inhabitantIDs) == 0 {
		return []*household.Allergy{}, nil
	}

	var modelList []*models.AllergyModel
	err := conn(ctx, r.db).
		Where("inhabitant_id IN ?", inhabitantIDs).
		Order("inhabitant_id asc").Order("id asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allergies: %w", err)
	}

	domainList := make([]*household.Allergy, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormAllergyRepository) DeleteByID(ctx context.Context, allergyID string) error {
	res := conn(ctx, r.db).Where("id = ?", allergyID).Delete(&models.AllergyModel{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete allergy: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("delete allergy", allergyID)
	}

	r.logger.Info("Deleted allergy with id ", allergyID)
	return nil
}
