package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/application/usecase/transaction"
)

// TransactionRequest represents the fields shared by create and update.
type TransactionRequest struct {
	Type                  string          `json:"type" binding:"required"`
	Status                string          `json:"status"`
	Amount                decimal.Decimal `json:"amount"`
	Description           string          `json:"description"`
	Date                  string          `json:"date" binding:"required"`
	CategoryID            *uuid.UUID      `json:"categoryId"`
	BankInfoID            *uuid.UUID      `json:"bankInfoId"`
	DestinationBankInfoID *uuid.UUID      `json:"destinationBankInfoId"`
	CardID                *uuid.UUID      `json:"cardId"`
	IsFixed               bool            `json:"isFixed"`
}

// CreateTransactionRequest represents the request body for creating transactions.
type CreateTransactionRequest struct {
	TransactionRequest
	Repeat            bool   `json:"repeat"`
	NumberRepetitions int    `json:"numberRepetitions"`
	RepetitionPeriod  string `json:"repetitionPeriod"`
}

// ListTransactionsQuery represents the query string of the transaction listing.
type ListTransactionsQuery struct {
	Type       string `form:"type"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	CategoryID string `form:"category_id"`
	BankInfoID string `form:"bank_info_id"`
	CardID     string `form:"card_id"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

// BulkDeleteRequest represents the request body for deleting several transactions.
type BulkDeleteRequest struct {
	TransactionIDs []uuid.UUID `json:"transactionIds" binding:"required,min=1"`
}

// BulkCategorizeRequest represents the request body for recategorizing transactions.
// A null category clears it.
type BulkCategorizeRequest struct {
	TransactionIDs []uuid.UUID `json:"transactionIds" binding:"required,min=1"`
	CategoryID     *uuid.UUID  `json:"categoryId"`
}

// TransactionCategoryResponse is the resolved category of a transaction.
type TransactionCategoryResponse struct {
	ID   *uuid.UUID `json:"id"`
	Name string     `json:"name"`
	Type string     `json:"type,omitempty"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID                    string                      `json:"id"`
	Type                  string                      `json:"type"`
	Status                string                      `json:"status"`
	Amount                decimal.Decimal             `json:"amount"`
	SignedAmount          decimal.Decimal             `json:"signedAmount"`
	Description           string                      `json:"description"`
	Date                  string                      `json:"date"`
	Category              TransactionCategoryResponse `json:"category"`
	BankInfoID            *uuid.UUID                  `json:"bankInfoId"`
	DestinationBankInfoID *uuid.UUID                  `json:"destinationBankInfoId"`
	CardID                *uuid.UUID                  `json:"cardId"`
	BillID                *uuid.UUID                  `json:"billId"`
	IsFixed               bool                        `json:"isFixed"`
	Repeat                bool                        `json:"repeat"`
	NumberRepetitions     int                         `json:"numberRepetitions"`
	RepetitionPeriod      string                      `json:"repetitionPeriod,omitempty"`
	CreatedAt             time.Time                   `json:"createdAt"`
	UpdatedAt             time.Time                   `json:"updatedAt"`
}

// PaginationResponse represents pagination metadata.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// TransactionListResponse represents one page of transactions.
type TransactionListResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse     `json:"pagination"`
}

// CountResponse reports how many rows a bulk operation touched.
type CountResponse struct {
	Count int `json:"count"`
}

// SuggestionResponse represents one proposed category.
type SuggestionResponse struct {
	TransactionID string  `json:"transactionId"`
	Description   string  `json:"description"`
	CategoryID    string  `json:"categoryId"`
	CategoryName  string  `json:"categoryName"`
	Confidence    float64 `json:"confidence"`
	Reasoning     string  `json:"reasoning"`
}

// ToTransactionResponse converts a transaction output to a response DTO.
func ToTransactionResponse(t *transaction.TransactionOutput) *TransactionResponse {
	return &TransactionResponse{
		ID:           t.ID.String(),
		Type:         string(t.Type),
		Status:       string(t.Status),
		Amount:       t.Amount,
		SignedAmount: t.SignedAmount,
		Description:  t.Description,
		Date:         t.Date.Format(DateLayout),
		Category: TransactionCategoryResponse{
			ID:   t.Category.ID,
			Name: t.Category.Name,
			Type: string(t.Category.Type),
		},
		BankInfoID:            t.BankInfoID,
		DestinationBankInfoID: t.DestinationBankInfoID,
		CardID:                t.CardID,
		BillID:                t.BillID,
		IsFixed:               t.IsFixed,
		Repeat:                t.Repeat,
		NumberRepetitions:     t.NumberRepetitions,
		RepetitionPeriod:      string(t.RepetitionPeriod),
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}

// ToTransactionResponses converts a list of transaction outputs.
func ToTransactionResponses(transactions []*transaction.TransactionOutput) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = ToTransactionResponse(t)
	}
	return result
}

// ToSuggestionResponses converts category suggestions.
func ToSuggestionResponses(suggestions []*transaction.CategorySuggestionOutput) []*SuggestionResponse {
	result := make([]*SuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		result[i] = &SuggestionResponse{
			TransactionID: s.TransactionID.String(),
			Description:   s.Description,
			CategoryID:    s.CategoryID.String(),
			CategoryName:  s.CategoryName,
			Confidence:    s.Confidence,
			Reasoning:     s.Reasoning,
		}
	}
	return result
}
