package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// UpdateTransactionInput represents the input for updating one transaction.
// Occurrences of a repeated transaction are updated one at a time.
type UpdateTransactionInput struct {
	Principal     entity.Principal
	TransactionID uuid.UUID
	Fields
}

// UpdateTransactionOutput represents the output of a transaction update.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase handles transaction updates.
type UpdateTransactionUseCase struct {
	ledger          adapter.Ledger
	transactionRepo adapter.TransactionRepository
	validator       *validator
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	ledger adapter.Ledger,
	transactionRepo adapter.TransactionRepository,
	bankRepo adapter.BankInfoRepository,
	cardRepo adapter.CardRepository,
	resolver CategoryResolver,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		ledger:          ledger,
		transactionRepo: transactionRepo,
		validator:       &validator{bankRepo: bankRepo, cardRepo: cardRepo, resolver: resolver},
	}
}

// Execute reverts the effects of the stored transaction and applies the new ones.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	previous, err := findOwned(ctx, uc.transactionRepo, input.TransactionID, input.Principal.UserID)
	if err != nil {
		return nil, err
	}

	updated, err := uc.validator.build(ctx, input.Principal.UserID, input.Fields)
	if err != nil {
		return nil, err
	}
	if previous.IsBillPayment() && !samePayment(previous, updated) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeBillPaymentLocked,
			"only description, date and category of a bill payment can change; delete it to reopen the bill",
			domainerror.ErrBillPaymentLocked,
		)
	}

	updated.ID = previous.ID
	updated.CreatedAt = previous.CreatedAt
	updated.Repeat = previous.Repeat
	updated.NumberRepetitions = previous.NumberRepetitions
	updated.RepetitionPeriod = previous.RepetitionPeriod
	// Card expenses get their bill from the ledger.
	if previous.IsBillPayment() {
		updated.BillID = previous.BillID
	}

	if err := uc.ledger.Rebook(ctx, previous, updated); err != nil {
		return nil, mapLedgerError(err, "update transaction")
	}

	outputs, err := toOutputs(ctx, uc.validator.resolver, input.Principal.UserID, []*entity.Transaction{updated})
	if err != nil {
		return nil, err
	}
	return &UpdateTransactionOutput{Transaction: outputs[0]}, nil
}

// samePayment reports whether updated keeps the money movement of the payment.
func samePayment(payment, updated *entity.Transaction) bool {
	return updated.Type == payment.Type &&
		updated.Status == payment.Status &&
		updated.Amount.Equal(payment.Amount) &&
		updated.BankInfoID != nil && payment.BankInfoID != nil &&
		*updated.BankInfoID == *payment.BankInfoID
}
