package persistence

import (
	"context"
	"fmt"

	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/errs"
	"github.com/Mathmagicians/theslope/internal/infrastructure/persistence/models"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormOrderRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormOrderRepository creates a new GORM-based OrderRepository implementation
func NewGormOrderRepository(db *gorm.DB, logger logger.Logger) (booking.OrderRepository, error) {
	return &gormOrderRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormOrderRepository) Create(ctx context.Context, order *booking.Order) error {
	if err := order.Validate(); err != nil {
		return errs.Validation("create order", err)
	}

	model := &models.OrderModel{}
	model.FromDomain(order)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *gormOrderRepository) GetByID(ctx context.Context, orderID string) (*booking.Order, error) {
	var model models.OrderModel
	if err := conn(ctx, r.db).Where("id = ?", orderID).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "get order", orderID)
	}
	return model.ToDomain(), nil
}

func (r *gormOrderRepository) List(ctx context.Context, query *booking.OrderQuery) ([]*booking.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, errs.Validation("list orders", err)
	}

	dbQuery := conn(ctx, r.db).Model(&models.OrderModel{})
	if len(query.DinnerEventIDs) > 0 {
		dbQuery = dbQuery.Where("dinner_event_id IN ?", query.DinnerEventIDs)
	}
	if len(query.InhabitantIDs) > 0 {
		dbQuery = dbQuery.Where("inhabitant_id IN ?", query.InhabitantIDs)
	}
	if query.HouseholdID != "" {
		dbQuery = dbQuery.Where("household_id = ?", query.HouseholdID)
	}
	if len(query.States) > 0 {
		dbQuery = dbQuery.Where("state IN ?", query.States)
	}
	if query.ExcludeGuests {
		dbQuery = dbQuery.Where("is_guest_ticket = ?", false)
	}
	dbQuery = dbQuery.Order("created_at asc").Order("id asc")

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	var modelList []*models.OrderModel
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	domainList := make([]*booking.Order, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormOrderRepository) UpdateByID(ctx context.Context, order *booking.Order) error {
	if err := order.Validate(); err != nil {
		return errs.Validation("update order", err)
	}

	model := &models.OrderModel{}
	model.FromDomain(order)

	res := conn(ctx, r.db).Model(&models.OrderModel{}).Where("id = ?", order.ID).Select("*").Updates(model)
	if res.Error != nil {
		return fmt.Errorf("failed to update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("update order", order.ID)
	}
	return nil
}

func (r *gormOrderRepository) DeleteByID(ctx context.Context, orderID string) error {
	db := conn(ctx, r.db)
	if err := db.Model(&models.OrderHistoryModel{}).Where("order_id = ?", orderID).Update("order_id", nil).Error; err != nil {
		return fmt.Errorf("failed to detach order history: %w", err)
	}
	res := db.Where("id = ?", orderID).Delete(&models.OrderModel{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("delete order", orderID)
	}
	return nil
}

type gormOrderHistoryRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormOrderHistoryRepository creates a new GORM-based OrderHistoryRepository implementation
func NewGormOrderHistoryRepository(db *gorm.DB, logger logger.Logger) (booking.OrderHistoryRepository, error) {
	return &gormOrderHistoryRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormOrderHistoryRepository) Append(ctx context.Context, entry *booking.OrderHistory) error {
	if err := entry.Validate(); err != nil {
		return errs.Validation("append order history", err)
	}

	model := &models.OrderHistoryModel{}
	model.FromDomain(entry)

	db := conn(ctx, r.db)
	if model.OrderID != nil {
		var last int64
		err := db.Model(&models.OrderHistoryModel{}).
			Where("order_id = ?", *model.OrderID).
			Select("COALESCE(MAX(sequence), 0)").
			Scan(&last).Error
		if err != nil {
			return fmt.Errorf("failed to number order history: %w", err)
		}
		model.Sequence = last + 1
	}

	if err := db.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append order history: %w", err)
	}
	return nil
}

func (r *gormOrderHistoryRepository) ListByOrder(ctx context.Context, orderID string) ([]*booking.OrderHistory, error) {
	var modelList []*models.OrderHistoryModel
	err := conn(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("sequence asc").Order("recorded_at asc").Order("id asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order history: %w", err)
	}

	domainList := make([]*booking.OrderHistory, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}
