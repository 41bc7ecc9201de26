package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// DefaultRecentTransactions is the number of transactions shown when none is requested.
const DefaultRecentTransactions = 3

// MaxRecentTransactions caps the number of recent transactions returned.
const MaxRecentTransactions = 50

// LastNTransactionsInput represents the input for listing recent transactions.
type LastNTransactionsInput struct {
	Principal entity.Principal
	N         int
}

// RecentTransactionItem represents a transaction annotated with its category name.
type RecentTransactionItem struct {
	ID           uuid.UUID              `json:"id"`
	Type         entity.TransactionType `json:"type"`
	Description  string                 `json:"description"`
	Amount       decimal.Decimal        `json:"amount"`
	SignedAmount decimal.Decimal        `json:"signedAmount"`
	Date         time.Time              `json:"date"`
	CategoryID   *uuid.UUID             `json:"categoryId"`
	CategoryName string                 `json:"categoryName"`
}

// LastNTransactionsOutput represents the user's most recent transactions.
type LastNTransactionsOutput struct {
	Transactions []RecentTransactionItem `json:"transactions"`
}

// LastNTransactionsUseCase lists the user's latest transactions.
type LastNTransactionsUseCase struct {
	dashboardRepo DashboardRepository
	resolver      CategoryResolver
}

// NewLastNTransactionsUseCase creates a new LastNTransactionsUseCase instance.
func NewLastNTransactionsUseCase(dashboardRepo DashboardRepository, resolver CategoryResolver) *LastNTransactionsUseCase {
	return &LastNTransactionsUseCase{
		dashboardRepo: dashboardRepo,
		resolver:      resolver,
	}
}

// Execute returns the N most recent transactions by date, newest first.
func (uc *LastNTransactionsUseCase) Execute(ctx context.Context, input LastNTransactionsInput) (*LastNTransactionsOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	n := input.N
	if n <= 0 {
		n = DefaultRecentTransactions
	}
	if n > MaxRecentTransactions {
		n = MaxRecentTransactions
	}

	transactions, err := uc.dashboardRepo.GetRecentTransactions(ctx, input.Principal.UserID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent transactions: %w", err)
	}

	categoryIDs := make([]*uuid.UUID, 0, len(transactions))
	for _, txn := range transactions {
		categoryIDs = append(categoryIDs, txn.CategoryID)
	}
	resolutions, err := uc.resolver.ResolveMany(ctx, input.Principal.UserID, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve categories: %w", err)
	}

	items := make([]RecentTransactionItem, 0, len(transactions))
	for _, txn := range transactions {
		items = append(items, RecentTransactionItem{
			ID:           txn.ID,
			Type:         txn.Type,
			Description:  txn.Description,
			Amount:       txn.Amount,
			SignedAmount: txn.SignedAmount(),
			Date:         txn.Date,
			CategoryID:   txn.CategoryID,
			CategoryName: resolutions.For(txn.CategoryID).Name,
		})
	}

	return &LastNTransactionsOutput{Transactions: items}, nil
}
