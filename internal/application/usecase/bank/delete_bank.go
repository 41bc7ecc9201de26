package bank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// DeleteBankInput represents the input for deleting a bank account.
type DeleteBankInput struct {
	Principal  entity.Principal
	BankInfoID uuid.UUID
}

// DeleteBankUseCase deletes a bank account together with everything attached to it.
type DeleteBankUseCase struct {
	ledger adapter.Ledger
}

// NewDeleteBankUseCase creates a new DeleteBankUseCase instance.
func NewDeleteBankUseCase(ledger adapter.Ledger) *DeleteBankUseCase {
	return &DeleteBankUseCase{
		ledger: ledger,
	}
}

// Execute removes the account, its transactions and its cards with their bills.
func (uc *DeleteBankUseCase) Execute(ctx context.Context, input DeleteBankInput) error {
	if !input.Principal.Authenticated() {
		return domainerror.NewUnauthorizedError()
	}

	if err := uc.ledger.DeleteBankCascade(ctx, input.Principal.UserID, input.BankInfoID); err != nil {
		if errors.Is(err, domainerror.ErrBankInfoNotFound) {
			return bankNotFound()
		}
		return fmt.Errorf("failed to delete bank account: %w", err)
	}

	slog.Info("Bank account deleted", "bank_info_id", input.BankInfoID, "user_id", input.Principal.UserID)
	return nil
}
