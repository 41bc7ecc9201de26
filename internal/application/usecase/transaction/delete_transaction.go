package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// DeleteTransactionInput represents the input for deleting a transaction.
type DeleteTransactionInput struct {
	Principal     entity.Principal
	TransactionID uuid.UUID
}

// DeleteTransactionUseCase handles transaction deletion.
type DeleteTransactionUseCase struct {
	ledger          adapter.Ledger
	transactionRepo adapter.TransactionRepository
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(ledger adapter.Ledger, transactionRepo adapter.TransactionRepository) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		ledger:          ledger,
		transactionRepo: transactionRepo,
	}
}

// Execute deletes the transaction and reverts its balance and bill effects.
// Deleting a bill payment reopens the bill.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	if !input.Principal.Authenticated() {
		return domainerror.NewUnauthorizedError()
	}

	txn, err := findOwned(ctx, uc.transactionRepo, input.TransactionID, input.Principal.UserID)
	if err != nil {
		return err
	}

	if err := uc.ledger.Unbook(ctx, txn); err != nil {
		return mapLedgerError(err, "delete transaction")
	}
	return nil
}
