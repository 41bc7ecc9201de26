package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// CardModel represents the cards table in the database.
type CardModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(100);not null"`
	Limit       decimal.Decimal `gorm:"column:credit_limit;type:decimal(15,2);not null;default:0"`
	Flag        string          `gorm:"type:varchar(30)"`
	ClosingDay  int             `gorm:"not null"`
	DueDay      int             `gorm:"not null"`
	BankInfoID  *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the CardModel.
func (CardModel) TableName() string {
	return "cards"
}

// ToEntity converts a CardModel to a domain Card entity.
func (m *CardModel) ToEntity() *entity.Card {
	return &entity.Card{
		ID:          m.ID,
		UserID:      m.UserID,
		Description: m.Description,
		Limit:       m.Limit,
		Flag:        m.Flag,
		ClosingDay:  m.ClosingDay,
		DueDay:      m.DueDay,
		BankInfoID:  m.BankInfoID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// CardFromEntity creates a CardModel from a domain Card entity.
func CardFromEntity(card *entity.Card) *CardModel {
	return &CardModel{
		ID:          card.ID,
		UserID:      card.UserID,
		Description: card.Description,
		Limit:       card.Limit,
		Flag:        card.Flag,
		ClosingDay:  card.ClosingDay,
		DueDay:      card.DueDay,
		BankInfoID:  card.BankInfoID,
		CreatedAt:   card.CreatedAt,
		UpdatedAt:   card.UpdatedAt,
	}
}
