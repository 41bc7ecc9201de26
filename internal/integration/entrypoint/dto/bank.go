package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// CreateBankRequest represents the request body for creating a bank account.
type CreateBankRequest struct {
	Name            string          `json:"name" binding:"required"`
	Type            string          `json:"type" binding:"required"`
	InitialBalance  decimal.Decimal `json:"initialBalance"`
	BankInstitution string          `json:"bankInstitution"`
}

// UpdateBankRequest represents the request body for updating a bank account.
type UpdateBankRequest struct {
	Name            string `json:"name" binding:"required"`
	Type            string `json:"type" binding:"required"`
	BankInstitution string `json:"bankInstitution"`
}

// BankResponse represents a bank account in API responses.
type BankResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	BankInstitution string          `json:"bankInstitution"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// BankListResponse represents the user's bank accounts and their summed balance.
type BankListResponse struct {
	Banks        []*BankResponse `json:"banks"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
}

// ToBankResponse converts a domain BankInfo entity to a BankResponse DTO.
func ToBankResponse(b *entity.BankInfo) *BankResponse {
	return &BankResponse{
		ID:              b.ID.String(),
		Name:            b.Name,
		Type:            string(b.Type),
		CurrentBalance:  b.CurrentBalance,
		BankInstitution: b.BankInstitution,
		CreatedAt:       b.CreatedAt,
	}
}

// ToBankResponses converts a list of bank accounts.
func ToBankResponses(banks []*entity.BankInfo) []*BankResponse {
	result := make([]*BankResponse, len(banks))
	for i, b := range banks {
		result[i] = ToBankResponse(b)
	}
	return result
}
