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

// cardRepository implements the adapter.CardRepository interface.
type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new card repository instance.
func NewCardRepository(db *gorm.DB) adapter.CardRepository {
	return &cardRepository{
		db: db,
	}
}

// FindByIDAndUser retrieves a card owned by the user.
func (r *cardRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Card, error) {
	var cardModel model.CardModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&cardModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCardNotFound
		}
		return nil, result.Error
	}
	return cardModel.ToEntity(), nil
}

// FindByUser retrieves all cards of the user.
func (r *cardRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Card, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID).Order("description ASC"))
}

// FindAll retrieves every card in the system.
func (r *cardRepository) FindAll(ctx context.Context) ([]*entity.Card, error) {
	return r.find(r.db.WithContext(ctx).Order("created_at ASC"))
}

func (r *cardRepository) find(query *gorm.DB) ([]*entity.Card, error) {
	var cardModels []model.CardModel
	if err := query.Find(&cardModels).Error; err != nil {
		return nil, err
	}

	cards := make([]*entity.Card, len(cardModels))
	for i := range cardModels {
		cards[i] = cardModels[i].ToEntity()
	}
	return cards, nil
}

