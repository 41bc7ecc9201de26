package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	Principal entity.Principal
	Fields
	Repeat            bool
	NumberRepetitions int
	RepetitionPeriod  entity.RepetitionPeriod
}

// CreateTransactionOutput represents the booked occurrences, in date order.
type CreateTransactionOutput struct {
	Transactions []*TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	ledger    adapter.Ledger
	validator *validator
	quota     adapter.QuotaChecker
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	ledger adapter.Ledger,
	bankRepo adapter.BankInfoRepository,
	cardRepo adapter.CardRepository,
	resolver CategoryResolver,
	quota adapter.QuotaChecker,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		ledger:    ledger,
		validator: &validator{bankRepo: bankRepo, cardRepo: cardRepo, resolver: resolver},
		quota:     quota,
	}
}

// Execute validates and books the transaction. A repeated transaction books
// all of its occurrences together, each description suffixed with "(i/n)".
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	occurrences := 1
	if input.Repeat {
		if input.NumberRepetitions < 2 || input.NumberRepetitions > MaxRepetitions || !input.RepetitionPeriod.IsValid() {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidRecurrence,
				fmt.Sprintf("repeated transactions need between 2 and %d repetitions and a valid period", MaxRepetitions),
				domainerror.ErrInvalidRecurrence,
			)
		}
		occurrences = input.NumberRepetitions
	}

	first, err := uc.validator.build(ctx, input.Principal.UserID, input.Fields)
	if err != nil {
		return nil, err
	}

	if uc.quota != nil {
		release, err := uc.quota.Reserve(ctx, input.Principal.UserID, entity.QuotaTransactions, int64(occurrences))
		if err != nil {
			return nil, err
		}
		defer release()
	}

	transactions := expand(first, input.RepetitionPeriod, occurrences)
	if err := uc.ledger.Book(ctx, transactions); err != nil {
		return nil, mapLedgerError(err, "create transaction")
	}

	if occurrences > 1 {
		slog.Info("Repeated transaction booked",
			"user_id", input.Principal.UserID,
			"occurrences", occurrences,
			"period", input.RepetitionPeriod,
		)
	}

	outputs, err := toOutputs(ctx, uc.validator.resolver, input.Principal.UserID, transactions)
	if err != nil {
		return nil, err
	}
	return &CreateTransactionOutput{Transactions: outputs}, nil
}

// expand returns the n occurrences of first. A single occurrence is first itself.
func expand(first *entity.Transaction, period entity.RepetitionPeriod, n int) []*entity.Transaction {
	if n <= 1 {
		return []*entity.Transaction{first}
	}

	transactions := make([]*entity.Transaction, 0, n)
	for i := 0; i < n; i++ {
		occurrence := entity.NewTransaction(
			first.UserID,
			first.Type,
			first.Status,
			first.Amount,
			fmt.Sprintf("%s (%d/%d)", first.Description, i+1, n),
			period.Advance(first.Date, i),
		)
		occurrence.CategoryID = first.CategoryID
		occurrence.BankInfoID = first.BankInfoID
		occurrence.DestinationBankInfoID = first.DestinationBankInfoID
		occurrence.CardID = first.CardID
		occurrence.IsFixed = first.IsFixed
		occurrence.Repeat = true
		occurrence.NumberRepetitions = n
		occurrence.RepetitionPeriod = period
		transactions = append(transactions, occurrence)
	}
	return transactions
}
