// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/application/usecase/category"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
	// MaxRepetitions caps the occurrences booked by a single repeated transaction.
	MaxRepetitions = 120
)

// CategoryResolver resolves and checks categories of the user.
type CategoryResolver interface {
	ResolveMany(ctx context.Context, userID uuid.UUID, categoryIDs []*uuid.UUID) (category.Resolutions, error)
	Exists(ctx context.Context, userID uuid.UUID, categoryID uuid.UUID) (bool, error)
}

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID                    uuid.UUID
	Type                  entity.TransactionType
	Status                entity.TransactionStatus
	Amount                decimal.Decimal
	SignedAmount          decimal.Decimal
	Description           string
	Date                  time.Time
	Category              CategoryOutput
	BankInfoID            *uuid.UUID
	DestinationBankInfoID *uuid.UUID
	CardID                *uuid.UUID
	BillID                *uuid.UUID
	IsFixed               bool
	Repeat                bool
	NumberRepetitions     int
	RepetitionPeriod      entity.RepetitionPeriod
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// CategoryOutput represents category information in transaction output.
// ID is nil for uncategorized transactions.
type CategoryOutput struct {
	ID   *uuid.UUID
	Name string
	Type entity.CategoryType
}

func toOutput(txn *entity.Transaction, resolution category.Resolution) *TransactionOutput {
	return &TransactionOutput{
		ID:                    txn.ID,
		Type:                  txn.Type,
		Status:                txn.Status,
		Amount:                txn.Amount,
		SignedAmount:          txn.SignedAmount(),
		Description:           txn.Description,
		Date:                  txn.Date,
		Category:              CategoryOutput{ID: resolution.ID, Name: resolution.Name, Type: resolution.Type},
		BankInfoID:            txn.BankInfoID,
		DestinationBankInfoID: txn.DestinationBankInfoID,
		CardID:                txn.CardID,
		BillID:                txn.BillID,
		IsFixed:               txn.IsFixed,
		Repeat:                txn.Repeat,
		NumberRepetitions:     txn.NumberRepetitions,
		RepetitionPeriod:      txn.RepetitionPeriod,
		CreatedAt:             txn.CreatedAt,
		UpdatedAt:             txn.UpdatedAt,
	}
}

// toOutputs resolves the categories of transactions with one lookup.
func toOutputs(ctx context.Context, resolver CategoryResolver, userID uuid.UUID, transactions []*entity.Transaction) ([]*TransactionOutput, error) {
	ids := make([]*uuid.UUID, 0, len(transactions))
	for _, txn := range transactions {
		ids = append(ids, txn.CategoryID)
	}

	resolutions, err := resolver.ResolveMany(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve categories: %w", err)
	}

	outputs := make([]*TransactionOutput, 0, len(transactions))
	for _, txn := range transactions {
		outputs = append(outputs, toOutput(txn, resolutions.For(txn.CategoryID)))
	}
	return outputs, nil
}

// Fields holds the user-editable fields of a transaction.
type Fields struct {
	Type                  entity.TransactionType
	Status                entity.TransactionStatus
	Amount                decimal.Decimal
	Description           string
	Date                  time.Time
	CategoryID            *uuid.UUID
	BankInfoID            *uuid.UUID
	DestinationBankInfoID *uuid.UUID
	CardID                *uuid.UUID
	IsFixed               bool
}

// validator checks fields against the user's accounts, cards and categories.
type validator struct {
	bankRepo adapter.BankInfoRepository
	cardRepo adapter.CardRepository
	resolver CategoryResolver
}

// build validates fields and returns a transaction owned by userID.
// Links that do not apply to the type are dropped.
func (v *validator) build(ctx context.Context, userID uuid.UUID, fields Fields) (*entity.Transaction, error) {
	if fields.Status == "" {
		fields.Status = entity.TransactionStatusCompleted
	}
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	if fields.CategoryID != nil && *fields.CategoryID == uuid.Nil {
		fields.CategoryID = nil
	}
	if fields.CategoryID != nil {
		exists, err := v.resolver.Exists(ctx, userID, *fields.CategoryID)
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

	txn := entity.NewTransaction(
		userID,
		fields.Type,
		fields.Status,
		fields.Amount,
		strings.TrimSpace(fields.Description),
		fields.Date,
	)
	txn.CategoryID = fields.CategoryID
	txn.IsFixed = fields.IsFixed

	switch fields.Type {
	case entity.TransactionTypeCardExpense:
		if fields.CardID == nil {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeMissingCard,
				"card is required for card expenses",
				domainerror.ErrMissingCard,
			)
		}
		if err := v.checkCard(ctx, userID, *fields.CardID); err != nil {
			return nil, err
		}
		txn.CardID = fields.CardID

	case entity.TransactionTypeTransfer:
		if fields.BankInfoID == nil || fields.DestinationBankInfoID == nil ||
			*fields.BankInfoID == *fields.DestinationBankInfoID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransfer,
				"transfers need distinct source and destination accounts",
				domainerror.ErrInvalidTransfer,
			)
		}
		if err := v.checkBank(ctx, userID, *fields.BankInfoID); err != nil {
			return nil, err
		}
		if err := v.checkBank(ctx, userID, *fields.DestinationBankInfoID); err != nil {
			return nil, err
		}
		txn.BankInfoID = fields.BankInfoID
		txn.DestinationBankInfoID = fields.DestinationBankInfoID

	default:
		if fields.BankInfoID == nil {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeMissingBankAccount,
				"bank account is required",
				domainerror.ErrMissingBankAccount,
			)
		}
		if err := v.checkBank(ctx, userID, *fields.BankInfoID); err != nil {
			return nil, err
		}
		txn.BankInfoID = fields.BankInfoID
	}

	return txn, nil
}

func (v *validator) checkBank(ctx context.Context, userID, bankInfoID uuid.UUID) error {
	if _, err := v.bankRepo.FindByIDAndUser(ctx, bankInfoID, userID); err != nil {
		if errors.Is(err, domainerror.ErrBankInfoNotFound) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTxnBankInfoNotFound,
				"bank account not found",
				domainerror.ErrBankInfoNotFound,
			)
		}
		return fmt.Errorf("failed to find bank account: %w", err)
	}
	return nil
}

func (v *validator) checkCard(ctx context.Context, userID, cardID uuid.UUID) error {
	if _, err := v.cardRepo.FindByIDAndUser(ctx, cardID, userID); err != nil {
		if errors.Is(err, domainerror.ErrCardNotFound) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCardNotFound,
				"card not found",
				domainerror.ErrCardNotFound,
			)
		}
		return fmt.Errorf("failed to find card: %w", err)
	}
	return nil
}

func validateFields(fields Fields) error {
	if !fields.Type.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'income', 'expense', 'card_expense' or 'transfer'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if !fields.Status.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionStatus,
			"transaction status must be 'pending', 'completed' or 'late'",
			domainerror.ErrInvalidTransactionStatus,
		)
	}

	if !fields.Amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if fields.Date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	if len(strings.TrimSpace(fields.Description)) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	return nil
}

// mapLedgerError translates ledger failures into domain errors.
func mapLedgerError(err error, action string) error {
	switch {
	case errors.Is(err, domainerror.ErrBillAlreadyPaid):
		return domainerror.NewBillError(
			domainerror.ErrCodeBillAlreadyPaid,
			"the bill of this purchase has already been paid",
			domainerror.ErrBillAlreadyPaid,
		)
	case errors.Is(err, domainerror.ErrBankInfoNotFound):
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnBankInfoNotFound,
			"bank account not found",
			domainerror.ErrBankInfoNotFound,
		)
	case errors.Is(err, domainerror.ErrCardNotFound):
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCardNotFound,
			"card not found",
			domainerror.ErrCardNotFound,
		)
	case errors.Is(err, domainerror.ErrTransactionNotFound):
		return transactionNotFound()
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

func transactionNotFound() *domainerror.Error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}

// findOwned loads a transaction of the user or fails with a not-found error.
func findOwned(ctx context.Context, repo adapter.TransactionRepository, id, userID uuid.UUID) (*entity.Transaction, error) {
	txn, err := repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, transactionNotFound()
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return txn, nil
}
