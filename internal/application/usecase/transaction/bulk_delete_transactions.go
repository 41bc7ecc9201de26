package transaction

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// BulkDeleteTransactionsInput represents the input for deleting several transactions.
type BulkDeleteTransactionsInput struct {
	Principal      entity.Principal
	TransactionIDs []uuid.UUID
}

// BulkDeleteTransactionsOutput reports how many transactions were deleted.
type BulkDeleteTransactionsOutput struct {
	DeletedCount int
}

// BulkDeleteTransactionsUseCase deletes transactions one by one through the ledger.
type BulkDeleteTransactionsUseCase struct {
	delete *DeleteTransactionUseCase
}

// NewBulkDeleteTransactionsUseCase creates a new BulkDeleteTransactionsUseCase instance.
func NewBulkDeleteTransactionsUseCase(ledger adapter.Ledger, transactionRepo adapter.TransactionRepository) *BulkDeleteTransactionsUseCase {
	return &BulkDeleteTransactionsUseCase{
		delete: NewDeleteTransactionUseCase(ledger, transactionRepo),
	}
}

// Execute deletes every listed transaction the user owns. Unknown ids are skipped;
// any other failure stops the run.
func (uc *BulkDeleteTransactionsUseCase) Execute(ctx context.Context, input BulkDeleteTransactionsInput) (*BulkDeleteTransactionsOutput, error) {
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

	output := &BulkDeleteTransactionsOutput{}
	for _, id := range input.TransactionIDs {
		err := uc.delete.Execute(ctx, DeleteTransactionInput{Principal: input.Principal, TransactionID: id})
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			continue
		}
		if err != nil {
			return output, err
		}
		output.DeletedCount++
	}

	slog.Info("Transactions deleted", "user_id", input.Principal.UserID, "count", output.DeletedCount)
	return output, nil
}
