package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAccountType represents the kind of bank account.
type BankAccountType string

const (
	BankAccountChecking BankAccountType = "checking"
	BankAccountSavings  BankAccountType = "savings"
)

// IsValid reports whether the account type is known.
func (t BankAccountType) IsValid() bool {
	return t == BankAccountChecking || t == BankAccountSavings
}

// BankInfo represents a bank account. CurrentBalance is stored and kept in sync
// by the ledger whenever a completed transaction touches the account.
type BankInfo struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Type            BankAccountType
	CurrentBalance  decimal.Decimal
	BankInstitution string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBankInfo creates a new BankInfo entity.
func NewBankInfo(userID uuid.UUID, name string, accountType BankAccountType, balance decimal.Decimal, institution string) *BankInfo {
	now := time.Now().UTC()

	return &BankInfo{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            name,
		Type:            accountType,
		CurrentBalance:  balance,
		BankInstitution: institution,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
