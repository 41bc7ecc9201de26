package bill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// PayBillInput represents the input for settling a bill.
type PayBillInput struct {
	Principal  entity.Principal
	BillID     uuid.UUID
	BankInfoID uuid.UUID
	PaidDate   time.Time
}

// PayBillOutput represents a settled bill and the transaction that paid it.
// Payment is nil when the bill had nothing to pay.
type PayBillOutput struct {
	Bill    *entity.Bill
	Payment *entity.Transaction
}

// PayBillUseCase settles a bill against a bank account.
type PayBillUseCase struct {
	ledger adapter.Ledger
}

// NewPayBillUseCase creates a new PayBillUseCase instance.
func NewPayBillUseCase(ledger adapter.Ledger) *PayBillUseCase {
	return &PayBillUseCase{
		ledger: ledger,
	}
}

// Execute marks the bill paid and debits the bank account in one store transaction.
func (uc *PayBillUseCase) Execute(ctx context.Context, input PayBillInput) (*PayBillOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	if input.PaidDate.IsZero() {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeInvalidPaidDate,
			"paid date is required",
			nil,
		)
	}

	bill, payment, err := uc.ledger.SettleBill(ctx, adapter.SettleBillInput{
		UserID:     input.Principal.UserID,
		BillID:     input.BillID,
		BankInfoID: input.BankInfoID,
		PaidAt:     input.PaidDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainerror.ErrBillNotFound):
			return nil, billNotFound()
		case errors.Is(err, domainerror.ErrBillAlreadyPaid):
			return nil, domainerror.NewBillError(
				domainerror.ErrCodeBillAlreadyPaid,
				"this bill has already been paid",
				domainerror.ErrBillAlreadyPaid,
			)
		case errors.Is(err, domainerror.ErrBankInfoNotFound):
			return nil, domainerror.NewBankError(
				domainerror.ErrCodeBankInfoNotFound,
				"bank account not found",
				domainerror.ErrBankInfoNotFound,
			)
		}
		return nil, fmt.Errorf("failed to pay bill: %w", err)
	}

	slog.Info("Bill paid",
		"bill_id", bill.ID,
		"user_id", input.Principal.UserID,
		"amount", bill.Amount.String(),
	)

	return &PayBillOutput{
		Bill:    bill,
		Payment: payment,
	}, nil
}
