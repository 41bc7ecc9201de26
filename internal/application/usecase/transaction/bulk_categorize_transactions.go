package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// BulkCategorizeTransactionsInput represents the input for assigning one category
// to several transactions. A nil CategoryID clears the category.
type BulkCategorizeTransactionsInput struct {
	Principal      entity.Principal
	TransactionIDs []uuid.UUID
	CategoryID     *uuid.UUID
}

// BulkCategorizeTransactionsOutput reports how many transactions were updated.
type BulkCategorizeTransactionsOutput struct {
	UpdatedCount int
}

// BulkCategorizeTransactionsUseCase assigns a category to many transactions.
type BulkCategorizeTransactionsUseCase struct {
	ledger   adapter.Ledger
	resolver CategoryResolver
}

// NewBulkCategorizeTransactionsUseCase creates a new BulkCategorizeTransactionsUseCase instance.
func NewBulkCategorizeTransactionsUseCase(
	ledger adapter.Ledger,
	resolver CategoryResolver,
) *BulkCategorizeTransactionsUseCase {
	return &BulkCategorizeTransactionsUseCase{
		ledger:   ledger,
		resolver: resolver,
	}
}

// Execute performs the categorization. Ids the user does not own are skipped.
func (uc *BulkCategorizeTransactionsUseCase) Execute(ctx context.Context, input BulkCategorizeTransactionsInput) (*BulkCategorizeTransactionsOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	if len(input.TransactionIDs) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"at least one transaction id is required",
			nil,
		)
	}

	if input.CategoryID != nil {
		exists, err := uc.resolver.Exists(ctx, input.Principal.UserID, *input.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		if !exists {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
	}

	updated, err := uc.ledger.Recategorize(ctx, input.Principal.UserID, input.TransactionIDs, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to categorize transactions: %w", err)
	}

	return &BulkCategorizeTransactionsOutput{UpdatedCount: int(updated)}, nil
}
