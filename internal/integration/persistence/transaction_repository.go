package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
	"github.com/finance-tracker/moneyflow/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// FindByIDAndUser retrieves a transaction owned by the user.
func (r *transactionRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByFilter retrieves transactions based on filter criteria with pagination.
func (r *transactionRepository) FindByFilter(
	ctx context.Context,
	userID uuid.UUID,
	filter *entity.TransactionFilter,
	pagination *entity.TransactionPagination,
) (*entity.TransactionListResult, error) {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ?", userID)

	if filter != nil {
		if filter.Type != nil {
			query = query.Where("type = ?", string(*filter.Type))
		}
		if filter.StartDate != nil {
			query = query.Where("date >= ?", entity.DateOnly(*filter.StartDate))
		}
		if filter.EndDate != nil {
			query = query.Where("date <= ?", entity.DateOnly(*filter.EndDate))
		}
		if filter.CategoryID != nil {
			query = query.Where("category_id = ?", *filter.CategoryID)
		}
		if filter.BankInfoID != nil {
			query = query.Where("(bank_info_id = ? OR destination_bank_info_id = ?)", *filter.BankInfoID, *filter.BankInfoID)
		}
		if filter.CardID != nil {
			query = query.Where("card_id = ?", *filter.CardID)
		}
		if filter.BillID != nil {
			query = query.Where("bill_id = ?", *filter.BillID)
		}
	}

	// Get total count
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	// Calculate pagination
	page, limit := 1, 20
	if pagination != nil {
		if pagination.Page > 0 {
			page = pagination.Page
		}
		if pagination.Limit > 0 {
			limit = pagination.Limit
		}
	}
	offset := entity.TransactionPagination{Page: page, Limit: limit}.Offset()
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages == 0 {
		totalPages = 1
	}

	var transactionModels []model.TransactionModel
	result := query.
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	return &entity.TransactionListResult{
		Transactions: toTransactionEntities(transactionModels),
		Total:        total,
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
	}, nil
}

// FindByBill retrieves the transactions attached to a bill.
func (r *transactionRepository) FindByBill(ctx context.Context, userID, billID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND bill_id = ?", userID, billID).
		Order("date DESC, created_at DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactionEntities(transactionModels), nil
}

// FindUncategorized retrieves up to limit of the user's transactions without a category.
func (r *transactionRepository) FindUncategorized(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND category_id IS NULL", userID).
		Where("type <> ?", string(entity.TransactionTypeTransfer)).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactionEntities(transactionModels), nil
}

func toTransactionEntities(models []model.TransactionModel) []*entity.Transaction {
	transactions := make([]*entity.Transaction, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntity()
	}
	return transactions
}
