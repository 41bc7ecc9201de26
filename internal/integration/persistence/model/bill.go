package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// BillModel represents the bills table in the database.
// A card has at most one bill per reference month.
type BillModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CardID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_bills_card_reference"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(100);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	DueDate     time.Time       `gorm:"type:date;not null;index"`
	Reference   string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_bills_card_reference"`
	Status      string          `gorm:"type:varchar(10);not null;index"`
	PaidAt      *time.Time      `gorm:"type:date"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BillModel.
func (BillModel) TableName() string {
	return "bills"
}

// ToEntity converts a BillModel to a domain Bill entity.
func (m *BillModel) ToEntity() *entity.Bill {
	return &entity.Bill{
		ID:          m.ID,
		CardID:      m.CardID,
		UserID:      m.UserID,
		Description: m.Description,
		Amount:      m.Amount,
		DueDate:     m.DueDate.UTC(),
		Reference:   m.Reference,
		Status:      entity.BillStatus(m.Status),
		PaidAt:      m.PaidAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// BillFromEntity creates a BillModel from a domain Bill entity.
func BillFromEntity(bill *entity.Bill) *BillModel {
	return &BillModel{
		ID:          bill.ID,
		CardID:      bill.CardID,
		UserID:      bill.UserID,
		Description: bill.Description,
		Amount:      bill.Amount,
		DueDate:     bill.DueDate,
		Reference:   bill.Reference,
		Status:      string(bill.Status),
		PaidAt:      bill.PaidAt,
		CreatedAt:   bill.CreatedAt,
		UpdatedAt:   bill.UpdatedAt,
	}
}
