package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/application/usecase/bill"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// CardRequest represents the request body for creating or updating a card.
type CardRequest struct {
	Description string          `json:"description" binding:"required"`
	Limit       decimal.Decimal `json:"limit"`
	Flag        string          `json:"flag"`
	ClosingDay  int             `json:"closingDay" binding:"required"`
	DueDay      int             `json:"dueDay" binding:"required"`
	BankInfoID  *uuid.UUID      `json:"bankInfoId"`
}

// PayBillRequest represents the request body for paying a bill.
type PayBillRequest struct {
	BankInfoID uuid.UUID `json:"bankInfoId" binding:"required"`
	PaidDate   string    `json:"paidDate" binding:"required"`
}

// CardResponse represents a card in API responses.
type CardResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Limit       decimal.Decimal `json:"limit"`
	Flag        string          `json:"flag"`
	ClosingDay  int             `json:"closingDay"`
	DueDay      int             `json:"dueDay"`
	BankInfoID  *uuid.UUID      `json:"bankInfoId"`
	CreatedAt   time.Time       `json:"createdAt"`
	Bills       []*BillResponse `json:"bills,omitempty"`
}

// BillResponse represents a bill in API responses.
type BillResponse struct {
	ID          string          `json:"id"`
	CardID      string          `json:"cardId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference"`
	DueDate     string          `json:"dueDate"`
	ClosingDate string          `json:"closingDate,omitempty"`
	Status      string          `json:"status"`
	PaidAt      *time.Time      `json:"paidAt"`
}

// BillTransactionResponse represents a purchase inside a bill.
type BillTransactionResponse struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Status       string          `json:"status"`
	CategoryID   *uuid.UUID      `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
}

// BillDetailResponse represents a bill with its purchases and payment.
type BillDetailResponse struct {
	Bill         *BillResponse              `json:"bill"`
	Transactions []*BillTransactionResponse `json:"transactions"`
	Payment      *BillTransactionResponse   `json:"payment"`
}

// PayBillResponse represents a settled bill and the payment booked for it.
type PayBillResponse struct {
	Bill    *BillResponse            `json:"bill"`
	Payment *BillTransactionResponse `json:"payment"`
}

// ToCardResponse converts a domain Card entity to a CardResponse DTO.
func ToCardResponse(c *entity.Card) *CardResponse {
	return &CardResponse{
		ID:          c.ID.String(),
		Description: c.Description,
		Limit:       c.Limit,
		Flag:        c.Flag,
		ClosingDay:  c.ClosingDay,
		DueDay:      c.DueDay,
		BankInfoID:  c.BankInfoID,
		CreatedAt:   c.CreatedAt,
	}
}

// ToCardResponses converts a list of cards.
func ToCardResponses(cards []*entity.Card) []*CardResponse {
	result := make([]*CardResponse, len(cards))
	for i, c := range cards {
		result[i] = ToCardResponse(c)
	}
	return result
}

// ToBillResponse converts a domain Bill entity to a BillResponse DTO.
func ToBillResponse(b *entity.Bill) *BillResponse {
	return &BillResponse{
		ID:          b.ID.String(),
		CardID:      b.CardID.String(),
		Description: b.Description,
		Amount:      b.Amount,
		Reference:   b.Reference,
		DueDate:     b.DueDate.Format(DateLayout),
		Status:      string(b.Status),
		PaidAt:      b.PaidAt,
	}
}

// ToBillResponses converts bills listed with their closing dates.
func ToBillResponses(bills []*bill.BillOutput) []*BillResponse {
	result := make([]*BillResponse, len(bills))
	for i, b := range bills {
		result[i] = ToBillResponse(b.Bill)
		result[i].ClosingDate = b.ClosingDate.Format(DateLayout)
	}
	return result
}

// ToBillTransactionResponse converts a transaction attached to a bill.
func ToBillTransactionResponse(t *entity.Transaction, categoryName string) *BillTransactionResponse {
	if t == nil {
		return nil
	}
	return &BillTransactionResponse{
		ID:           t.ID.String(),
		Description:  t.Description,
		Amount:       t.Amount,
		Date:         t.Date.Format(DateLayout),
		Status:       string(t.Status),
		CategoryID:   t.CategoryID,
		CategoryName: categoryName,
	}
}

// ToBillDetailResponse converts the purchases of a bill.
func ToBillDetailResponse(output *bill.BillTransactionsOutput) *BillDetailResponse {
	items := make([]*BillTransactionResponse, len(output.Transactions))
	for i, item := range output.Transactions {
		items[i] = ToBillTransactionResponse(item.Transaction, item.CategoryName)
	}
	return &BillDetailResponse{
		Bill:         ToBillResponse(output.Bill),
		Transactions: items,
		Payment:      ToBillTransactionResponse(output.Payment, ""),
	}
}
