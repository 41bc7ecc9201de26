package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID                uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type                  string          `gorm:"type:varchar(20);not null;index"`
	Status                string          `gorm:"type:varchar(20);not null"`
	Amount                decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description           string          `gorm:"type:varchar(255);not null"`
	CategoryID            *uuid.UUID      `gorm:"type:uuid;index"`
	BankInfoID            *uuid.UUID      `gorm:"type:uuid;index"`
	DestinationBankInfoID *uuid.UUID      `gorm:"type:uuid;index"`
	CardID                *uuid.UUID      `gorm:"type:uuid;index"`
	BillID                *uuid.UUID      `gorm:"type:uuid;index"`
	Date                  time.Time       `gorm:"type:date;not null;index"`
	IsFixed               bool            `gorm:"default:false"`
	Repeat                bool            `gorm:"default:false"`
	NumberRepetitions     int             `gorm:"default:0"`
	RepetitionPeriod      string          `gorm:"type:varchar(10)"`
	CreatedAt             time.Time       `gorm:"not null"`
	UpdatedAt             time.Time       `gorm:"not null"`
	DeletedAt             gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:                    m.ID,
		UserID:                m.UserID,
		Type:                  entity.TransactionType(m.Type),
		Status:                entity.TransactionStatus(m.Status),
		Amount:                m.Amount,
		Description:           m.Description,
		CategoryID:            m.CategoryID,
		BankInfoID:            m.BankInfoID,
		DestinationBankInfoID: m.DestinationBankInfoID,
		CardID:                m.CardID,
		BillID:                m.BillID,
		Date:                  m.Date.UTC(),
		IsFixed:               m.IsFixed,
		Repeat:                m.Repeat,
		NumberRepetitions:     m.NumberRepetitions,
		RepetitionPeriod:      entity.RepetitionPeriod(m.RepetitionPeriod),
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:                    transaction.ID,
		UserID:                transaction.UserID,
		Type:                  string(transaction.Type),
		Status:                string(transaction.Status),
		Amount:                transaction.Amount,
		Description:           transaction.Description,
		CategoryID:            transaction.CategoryID,
		BankInfoID:            transaction.BankInfoID,
		DestinationBankInfoID: transaction.DestinationBankInfoID,
		CardID:                transaction.CardID,
		BillID:                transaction.BillID,
		Date:                  transaction.Date,
		IsFixed:               transaction.IsFixed,
		Repeat:                transaction.Repeat,
		NumberRepetitions:     transaction.NumberRepetitions,
		RepetitionPeriod:      string(transaction.RepetitionPeriod),
		CreatedAt:             transaction.CreatedAt,
		UpdatedAt:             transaction.UpdatedAt,
	}
}
