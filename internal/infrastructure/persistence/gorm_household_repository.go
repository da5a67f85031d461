package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mathmagicians/theslope/internal/domain/errs"
	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/Mathmagicians/theslope/internal/infrastructure/persistence/models"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func orderInhabitants(db *gorm.DB) *gorm.DB {
	return db.Order("id asc")
}

type gormHouseholdRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormHouseholdRepository creates a new GORM-based HouseholdRepository implementation
func NewGormHouseholdRepository(db *gorm.DB, logger logger.Logger) (household.HouseholdRepository, error) {
	return &gormHouseholdRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormHouseholdRepository) Create(ctx context.Context, h *household.Household) error {
	if err := h.Validate(); err != nil {
		return errs.Validation("create household", err)
	}

	model := &models.HouseholdModel{}
	model.FromDomain(h)

	if err := conn(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create household: %w", err)
	}

	r.logger.Info("Created household with id ", h.ID)
	return nil
}

func (r *gormHouseholdRepository) List(ctx context.Context, query *household.HouseholdQuery) ([]*household.Household, error) {
	if err := query.Validate(); err != nil {
		return nil, errs.Validation("list households", err)
	}

	dbQuery := conn(ctx, r.db).Model(&models.HouseholdModel{}).Preload("Inhabitants", orderInhabitants)
	if query.Name != "" {
		dbQuery = dbQuery.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query.Name)+"%")
	}
	dbQuery = dbQuery.Order("pbs_id asc")
	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	var modelList []*models.HouseholdModel
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch households: %w", err)
	}

	domainList := make([]*household.Household, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormHouseholdRepository) GetByID(ctx context.Context, householdID string) (*household.Household, error) {
	var model models.HouseholdModel
	if err := conn(ctx, r.db).Preload("Inhabitants", orderInhabitants).Where("id = ?", householdID).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "get household", householdID)
	}
	return model.ToDomain(), nil
}

func (r *gormHouseholdRepository) UpdateByID(ctx context.Context, h *household.Household) error {
	if err := h.Validate(); err != nil {
		return errs.Validation("update household", err)
	}

	model := &models.HouseholdModel{}
	model.FromDomain(h)

	if err := conn(ctx, r.db).Omit(clause.Associations).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update household: %w", err)
	}

	r.logger.Info("Updated household with id ", h.ID)
	return nil
}

// DeleteByID removes the household with its inhabitants and their allergies
func (r *gormHouseholdRepository) DeleteByID(ctx context.Context, householdID string) error {
	db := conn(ctx, r.db)
	inhabitants := db.Model(&models.InhabitantModel{}).Select("id").Where("household_id = ?", householdID)
	if err := db.Where("inhabitant_id IN (?)", inhabitants).Delete(&models.AllergyModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete allergies: %w", err)
	}
	if err := db.Where("household_id = ?", householdID).Delete(&models.InhabitantModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete inhabitants: %w", err)
	}
	res := db.Where("id = ?", householdID).Delete(&models.HouseholdModel{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete household: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("delete household", householdID)
	}

	r.logger.Info("Deleted household with id ", householdID)
	return nil
}

type gormInhabitantRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormInhabitantRepository creates a new GORM-based InhabitantRepository implementation
func NewGormInhabitantRepository(db *gorm.DB, logger logger.Logger) (household.InhabitantRepository, error) {
	return &gormInhabitantRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormInhabitantRepository) Create(ctx context.Context, i *household.Inhabitant) error {
	if err := i.Validate(); err != nil {
		return errs.Validation("create inhabitant", err)
	}

	model := &models.InhabitantModel{}
	model.FromDomain(i)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create inhabitant: %w", err)
	}

	r.logger.Info("Created inhabitant with id ", i.ID)
	return nil
}

func (r *gormInhabitantRepository) GetByID(ctx context.Context, inhabitantID string) (*household.Inhabitant, error) {
	var model models.InhabitantModel
	if err := conn(ctx, r.db).Where("id = ?", inhabitantID).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "get inhabitant", inhabitantID)
	}
	return model.ToDomain(), nil
}

func (r *gormInhabitantRepository) ListByIDs(ctx context.Context, inhabitantIDs []string) ([]*household.Inhabitant, error) {
	if len(inhabitantIDs) == 0 {
		return []*household.Inhabitant{}, nil
	}
	return r.find(conn(ctx, r.db).Where("id IN ?", inhabitantIDs))
}

func (r *gormInhabitantRepository) ListByHousehold(ctx context.Context, householdID string) ([]*household.Inhabitant, error) {
	return r.find(conn(ctx, r.db).Where("household_id = ?", householdID))
}

func (r *gormInhabitantRepository) find(db *gorm.DB) ([]*household.Inhabitant, error) {
	var modelList []*models.InhabitantModel
	if err := db.Order("id asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch inhabitants: %w", err)
	}

	domainList := make([]*household.Inhabitant, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormInhabitantRepository) UpdateByID(ctx context.Context, i *household.Inhabitant) error {
	if err := i.Validate(); err != nil {
		return errs.Validation("update inhabitant", err)
	}

	model := &models.InhabitantModel{}
	model.FromDomain(i)

	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update inhabitant: %w", err)
	}

	r.logger.Info("Updated inhabitant with id ", i.ID)
	return nil
}

func (r *gormInhabitantRepository) DeleteByID(ctx context.Context, inhabitantID string) error {
	db := conn(ctx, r.db)
	if err := db.Where("inhabitant_id = ?", inhabitantID).Delete(&models.AllergyModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete allergies: %w", err)
	}
	res := db.Where("id = ?", inhabitantID).Delete(&models.InhabitantModel{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete inhabitant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("delete inhabitant", inhabitantID)
	}

	r.logger.Info("Deleted inhabitant with id ", inhabitantID)
	return nil
}
