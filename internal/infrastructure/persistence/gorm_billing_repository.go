package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/billing"
	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/errs"
	"github.com/Mathmagicians/theslope/internal/infrastructure/persistence/models"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormTransactionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormTransactionRepository creates a new GORM-based TransactionRepository implementation
func NewGormTransactionRepository(db *gorm.DB, logger logger.Logger) (billing.TransactionRepository, error) {
	return &gormTransactionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormTransactionRepository) Create(ctx context.Context, transaction *billing.Transaction) error {
	if err := transaction.Validate(); err != nil {
		return errs.Validation("create transaction", err)
	}

	model := &models.TransactionModel{}
	model.FromDomain(transaction)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *gormTransactionRepository) OrderIDsWithTransactions(ctx context.Context, orderIDs []string) (map[string]bool, error) {
	found := make(map[string]bool)
	if len(orderIDs) == 0 {
		return found, nil
	}

	var ids []string
	err := conn(ctx, r.db).Model(&models.TransactionModel{}).
		Where("order_id IN ?", orderIDs).
		Pluck("order_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction orders: %w", err)
	}
	for _, id := range ids {
		found[id] = true
	}
	return found, nil
}

func (r *gormTransactionRepository) ListUnbilled(ctx context.Context, cutoff time.Time) ([]*billing.Transaction, error) {
	return r.find(conn(ctx, r.db).
		Where("invoice_id IS NULL").
		Where("dinner_date <= ?", calendar.Normalize(cutoff)))
}

func (r *gormTransactionRepository) ListByHousehold(ctx context.Context, householdID string) ([]*billing.Transaction, error) {
	return r.find(conn(ctx, r.db).Where("household_id = ?", householdID))
}

func (r *gormTransactionRepository) find(db *gorm.DB) ([]*billing.Transaction, error) {
	var modelList []*models.TransactionModel
	if err := db.Order("dinner_date asc").Order("id asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	domainList := make([]*billing.Transaction, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormTransactionRepository) AssignInvoice(ctx context.Context, transactionIDs []string, invoiceID string) error {
	if len(transactionIDs) == 0 {
		return nil
	}
	err := conn(ctx, r.db).Model(&models.TransactionModel{}).
		Where("id IN ?", transactionIDs).
		Update("invoice_id", invoiceID).Error
	if err != nil {
		return fmt.Errorf("failed to assign invoice: %w", err)
	}
	return nil
}

type gormBillingPeriodRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormBillingPeriodRepository creates a new GORM-based BillingPeriodRepository implementation
func NewGormBillingPeriodRepository(db *gorm.DB, logger logger.Logger) (billing.BillingPeriodRepository, error) {
	return &gormBillingPeriodRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormBillingPeriodRepository) Create(ctx context.Context, summary *billing.BillingPeriodSummary) error {
	if err := summary.Validate(); err != nil {
		return errs.Validation("create billing period", err)
	}
	for _, invoice := range summary.Invoices {
		if err := invoice.Validate(); err != nil {
			return errs.Validation("create invoice", err)
		}
	}

	model := &models.BillingPeriodModel{}
	model.FromDomain(summary)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create billing period: %w", err)
	}

	r.logger.Infof("Created billing period %s with %d invoices", summary.BillingPeriod, len(summary.Invoices))
	return nil
}

func orderInvoices(db *gorm.DB) *gorm.DB {
	return db.Order("pbs_id asc")
}

func (r *gormBillingPeriodRepository) GetByID(ctx context.Context, periodID string) (*billing.BillingPeriodSummary, error) {
	var model models.BillingPeriodModel
	if err := conn(ctx, r.db).Preload("Invoices", orderInvoices).Where("id = ?", periodID).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "get billing period", periodID)
	}
	return model.ToDomain(), nil
}

func (r *gormBillingPeriodRepository) GetByPeriod(ctx context.Context, billingPeriod string) (*billing.BillingPeriodSummary, error) {
	var model models.BillingPeriodModel
	if err := conn(ctx, r.db).Preload("Invoices", orderInvoices).Where("billing_period = ?", billingPeriod).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "get billing period", billingPeriod)
	}
	return model.ToDomain(), nil
}

// List returns summaries without their invoices, newest first
func (r *gormBillingPeriodRepository) List(ctx context.Context) ([]*billing.BillingPeriodSummary, error) {
	var modelList []*models.BillingPeriodModel
	if err := conn(ctx, r.db).Order("billing_period desc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch billing periods: %w", err)
	}

	domainList := make([]*billing.BillingPeriodSummary, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormBillingPeriodRepository) ListInvoicesByHousehold(ctx context.Context, householdID string) ([]*billing.Invoice, error) {
	var modelList []*models.InvoiceModel
	err := conn(ctx, r.db).
		Where("household_id = ?", householdID).
		Order("billing_period desc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	domainList := make([]*billing.Invoice, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}
