package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// BankInfoModel represents the bank_infos table in the database.
type BankInfoModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name            string          `gorm:"type:varchar(100);not null"`
	Type            string          `gorm:"type:varchar(20);not null"`
	CurrentBalance  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	BankInstitution string          `gorm:"type:varchar(100)"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
	DeletedAt       gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the BankInfoModel.
func (BankInfoModel) TableName() string {
	return "bank_infos"
}

// ToEntity converts a BankInfoModel to a domain BankInfo entity.
func (m *BankInfoModel) ToEntity() *entity.BankInfo {
	return &entity.BankInfo{
		ID:              m.ID,
		UserID:          m.UserID,
		Name:            m.Name,
		Type:            entity.BankAccountType(m.Type),
		CurrentBalance:  m.CurrentBalance,
		BankInstitution: m.BankInstitution,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// BankInfoFromEntity creates a BankInfoModel from a domain BankInfo entity.
func BankInfoFromEntity(bankInfo *entity.BankInfo) *BankInfoModel {
	return &BankInfoModel{
		ID:              bankInfo.ID,
		UserID:          bankInfo.UserID,
		Name:            bankInfo.Name,
		Type:            string(bankInfo.Type),
		CurrentBalance:  bankInfo.CurrentBalance,
		BankInstitution: bankInfo.BankInstitution,
		CreatedAt:       bankInfo.CreatedAt,
		UpdatedAt:       bankInfo.UpdatedAt,
	}
}
