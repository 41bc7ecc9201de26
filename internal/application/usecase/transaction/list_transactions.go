package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

const (
	// DefaultPageSize is used when no limit is given.
	DefaultPageSize = 20
	// MaxPageSize caps the number of transactions per page.
	MaxPageSize = 100
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	Principal  entity.Principal
	Type       *entity.TransactionType
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
	BankInfoID *uuid.UUID
	CardID     *uuid.UUID
	Page       int
	Limit      int
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Pagination   PaginationOutput
}

// ListTransactionsUseCase handles listing transactions with filters.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	resolver        CategoryResolver
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository, resolver CategoryResolver) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		resolver:        resolver,
	}
}

// Execute lists the user's transactions, newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	if input.Type != nil && !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'income', 'expense', 'card_expense' or 'transfer'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDateRange,
			"end date must be after start date",
			domainerror.ErrInvalidDateRange,
		)
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	filter := &entity.TransactionFilter{
		Type:       input.Type,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		CategoryID: input.CategoryID,
		BankInfoID: input.BankInfoID,
		CardID:     input.CardID,
	}
	result, err := uc.transactionRepo.FindByFilter(ctx, input.Principal.UserID, filter, &entity.TransactionPagination{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	outputs, err := toOutputs(ctx, uc.resolver, input.Principal.UserID, result.Transactions)
	if err != nil {
		return nil, err
	}

	return &ListTransactionsOutput{
		Transactions: outputs,
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}, nil
}
