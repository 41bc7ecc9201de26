// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// SettleBillInput represents the input for settling a bill.
type SettleBillInput struct {
	UserID     uuid.UUID
	BillID     uuid.UUID
	BankInfoID uuid.UUID
	PaidAt     time.Time
}

// Ledger groups every multi-step write that must happen atomically: balance
// adjustments, bill amounts and cascades run inside a single store transaction.
type Ledger interface {
	// Book persists new transactions, applying their balance effects and
	// attaching card expenses to the bill of their cycle.
	Book(ctx context.Context, transactions []*entity.Transaction) error

	// Rebook replaces previous with updated, reverting and reapplying effects.
	Rebook(ctx context.Context, previous, updated *entity.Transaction) error

	// Unbook deletes a transaction and reverts its effects.
	Unbook(ctx context.Context, transaction *entity.Transaction) error

	// Recategorize sets the category of the user's transactions in ids and
	// returns how many were updated. Categories carry no balance effects.
	Recategorize(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, categoryID *uuid.UUID) (int64, error)

	// SettleBill marks a bill as paid and books the payment against a bank account.
	// The payment transaction is nil when the bill amount is zero.
	SettleBill(ctx context.Context, input SettleBillInput) (*entity.Bill, *entity.Transaction, error)

	// UpdateCard saves the card and moves the due date of its unpaid bills due
	// after from to the card's due day. It returns how many bills moved.
	UpdateCard(ctx context.Context, card *entity.Card, from time.Time) (int, error)

	// CreateCardWithBills persists a card and its initial bills together.
	CreateCardWithBills(ctx context.Context, card *entity.Card, bills []*entity.Bill) error

	// DeleteBankCascade deletes a bank account with its transactions, cards and bills.
	DeleteBankCascade(ctx context.Context, userID, bankInfoID uuid.UUID) error

	// DeleteCardCascade deletes a card with its bills and card expenses.
	// Bill payments stay in history with the bill reference cleared.
	DeleteCardCascade(ctx context.Context, userID, cardID uuid.UUID) error
}
