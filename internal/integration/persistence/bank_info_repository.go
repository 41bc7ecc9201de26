package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
	"github.com/finance-tracker/moneyflow/internal/integration/persistence/model"
)

// bankInfoRepository implements the adapter.BankInfoRepository interface.
type bankInfoRepository struct {
	db *gorm.DB
}

// NewBankInfoRepository creates a new bank account repository instance.
func NewBankInfoRepository(db *gorm.DB) adapter.BankInfoRepository {
	return &bankInfoRepository{
		db: db,
	}
}

// Create creates a new bank account in the database.
func (r *bankInfoRepository) Create(ctx context.Context, bankInfo *entity.BankInfo) error {
	return r.db.WithContext(ctx).Create(model.BankInfoFromEntity(bankInfo)).Error
}

// FindByIDAndUser retrieves a bank account owned by the user.
func (r *bankInfoRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.BankInfo, error) {
	var bankModel model.BankInfoModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&bankModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBankInfoNotFound
		}
		return nil, result.Error
	}
	return bankModel.ToEntity(), nil
}

// FindByUser retrieves all bank accounts of the user ordered by name.
func (r *bankInfoRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BankInfo, error) {
	var bankModels []model.BankInfoModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&bankModels)
	if result.Error != nil {
		return nil, result.Error
	}

	banks := make([]*entity.BankInfo, len(bankModels))
	for i := range bankModels {
		banks[i] = bankModels[i].ToEntity()
	}
	return banks, nil
}

// Update updates the descriptive fields of a bank account.
// The balance is owned by the ledger and never overwritten here.
func (r *bankInfoRepository) Update(ctx context.Context, bankInfo *entity.BankInfo) error {
	result := r.db.WithContext(ctx).
		Model(&model.BankInfoModel{}).
		Where("id = ? AND user_id = ?", bankInfo.ID, bankInfo.UserID).
		Updates(map[string]interface{}{
			"name":             bankInfo.Name,
			"type":             string(bankInfo.Type),
			"bank_institution": bankInfo.BankInstitution,
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBankInfoNotFound
	}
	return nil
}
