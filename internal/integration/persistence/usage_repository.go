package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	"github.com/finance-tracker/moneyflow/internal/integration/persistence/model"
)

// usageRepository implements the adapter.UsageRepository interface.
type usageRepository struct {
	db *gorm.DB
}

// NewUsageRepository creates a new usage repository instance.
func NewUsageRepository(db *gorm.DB) adapter.UsageRepository {
	return &usageRepository{
		db: db,
	}
}

// CountOwned returns how many entities of resource the user owns.
func (r *usageRepository) CountOwned(ctx context.Context, userID uuid.UUID, resource entity.QuotaResource) (int64, error) {
	var target interface{}
	switch resource {
	case entity.QuotaTransactions:
		target = &model.TransactionModel{}
	case entity.QuotaBankAccounts:
		target = &model.BankInfoModel{}
	case entity.QuotaCards:
		target = &model.CardModel{}
	case entity.QuotaCategories:
		target = &model.CategoryModel{}
	default:
		return 0, fmt.Errorf("unknown quota resource %q", resource)
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(target).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
