package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
	"github.com/finance-tracker/moneyflow/internal/integration/persistence/model"
)

// billRepository implements the adapter.BillRepository interface.
type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository instance.
func NewBillRepository(db *gorm.DB) adapter.BillRepository {
	return &billRepository{
		db: db,
	}
}

// FindByIDAndUser retrieves a bill whose card is owned by the user.
func (r *billRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Bill, error) {
	var billModel model.BillModel
	result := r.db.WithContext(ctx).
		Joins("JOIN cards ON cards.id = bills.card_id AND cards.deleted_at IS NULL").
		Where("bills.id = ? AND cards.user_id = ?", id, userID).
		First(&billModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBillNotFound
		}
		return nil, result.Error
	}
	return billModel.ToEntity(), nil
}

// FindByCard retrieves the bills of a card ordered by due date.
func (r *billRepository) FindByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.Bill, error) {
	return r.find(r.db.WithContext(ctx).Where("card_id = ?", cardID))
}

// FindUnpaid retrieves every bill that is not paid.
func (r *billRepository) FindUnpaid(ctx context.Context) ([]*entity.Bill, error) {
	return r.find(r.db.WithContext(ctx).Where("status <> ?", string(entity.BillStatusPaid)))
}

// FindUnpaidDueBetween retrieves unpaid bills due within [start, end].
func (r *billRepository) FindUnpaidDueBetween(ctx context.Context, start, end time.Time) ([]*entity.Bill, error) {
	return r.find(r.db.WithContext(ctx).
		Where("status <> ?", string(entity.BillStatusPaid)).
		Where("due_date >= ? AND due_date <= ?", entity.DateOnly(start), entity.DateOnly(end)))
}

func (r *billRepository) find(query *gorm.DB) ([]*entity.Bill, error) {
	var billModels []model.BillModel
	if err := query.Order("due_date ASC").Find(&billModels).Error; err != nil {
		return nil, err
	}

	bills := make([]*entity.Bill, len(billModels))
	for i := range billModels {
		bills[i] = billModels[i].ToEntity()
	}
	return bills, nil
}

// CreateIfMissing inserts bills whose (card, reference) pair does not exist yet.
func (r *billRepository) CreateIfMissing(ctx context.Context, bills []*entity.Bill) (int, error) {
	if len(bills) == 0 {
		return 0, nil
	}

	billModels := make([]*model.BillModel, len(bills))
	for i, bill := range bills {
		billModels[i] = model.BillFromEntity(bill)
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "card_id"}, {Name: "reference"}},
			DoNothing: true,
		}).
		Create(&billModels)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

// UpdateStatus changes the status of an unpaid bill.
func (r *billRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BillStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.BillModel{}).
		Where("id = ? AND status <> ?", id, string(entity.BillStatusPaid)).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	return result.Error
}
