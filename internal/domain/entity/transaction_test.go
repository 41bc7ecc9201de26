package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestTransaction_BalanceEffects(t *testing.T) {
	userID := uuid.New()
	source := uuid.New()
	destination := uuid.New()
	amount := decimal.NewFromInt(150)

	newTxn := func(txnType TransactionType, status TransactionStatus) *Transaction {
		txn := NewTransaction(userID, txnType, status, amount, "t", date(2025, time.March, 1))
		txn.BankInfoID = &source
		return txn
	}

	t.Run("completed income credits the account", func(t *testing.T) {
		effects := newTxn(TransactionTypeIncome, TransactionStatusCompleted).BalanceEffects()
		if len(effects) != 1 || effects[0].BankInfoID != source || !effects[0].Amount.Equal(amount) {
			t.Errorf("unexpected effects %+v", effects)
		}
	})

	t.Run("completed expense debits the account", func(t *testing.T) {
		effects := newTxn(TransactionTypeExpense, TransactionStatusCompleted).BalanceEffects()
		if len(effects) != 1 || !effects[0].Amount.Equal(amount.Neg()) {
			t.Errorf("unexpected effects %+v", effects)
		}
	})

	t.Run("completed transfer moves money between accounts", func(t *testing.T) {
		txn := newTxn(TransactionTypeTransfer, TransactionStatusCompleted)
		txn.DestinationBankInfoID = &destination

		effects := txn.BalanceEffects()
		if len(effects) != 2 {
			t.Fatalf("expected 2 effects, got %d", len(effects))
		}
		if effects[0].BankInfoID != source || !effects[0].Amount.Equal(amount.Neg()) {
			t.Errorf("unexpected source effect %+v", effects[0])
		}
		if effects[1].BankInfoID != destination || !effects[1].Amount.Equal(amount) {
			t.Errorf("unexpected destination effect %+v", effects[1])
		}
	})

	t.Run("pending transactions do not move money", func(t *testing.T) {
		if effects := newTxn(TransactionTypeExpense, TransactionStatusPending).BalanceEffects(); len(effects) != 0 {
			t.Errorf("expected no effects, got %+v", effects)
		}
	})

	t.Run("card expenses settle through bills", func(t *testing.T) {
		if effects := newTxn(TransactionTypeCardExpense, TransactionStatusCompleted).BalanceEffects(); len(effects) != 0 {
			t.Errorf("expected no effects, got %+v", effects)
		}
	})
}

func TestTransaction_SignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(10)
	tests := []struct {
		txnType TransactionType
		want    decimal.Decimal
	}{
		{TransactionTypeIncome, amount},
		{TransactionTypeExpense, amount.Neg()},
		{TransactionTypeCardExpense, amount.Neg()},
		{TransactionTypeTransfer, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(string(tt.txnType), func(t *testing.T) {
			txn := NewTransaction(uuid.New(), tt.txnType, TransactionStatusCompleted, amount, "t", time.Now())
			if got := txn.SignedAmount(); !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestRepetitionPeriod_Advance(t *testing.T) {
	start := date(2025, time.January, 31)

	tests := []struct {
		period RepetitionPeriod
		n      int
		want   time.Time
	}{
		{RepetitionDaily, 2, date(2025, time.February, 2)},
		{RepetitionWeekly, 1, date(2025, time.February, 7)},
		{RepetitionMonthly, 1, date(2025, time.February, 28)},
		{RepetitionMonthly, 2, date(2025, time.March, 31)},
		{RepetitionYearly, 1, date(2026, time.January, 31)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			if got := tt.period.Advance(start, tt.n); !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestTransactionPagination_Offset(t *testing.T) {
	if got := (TransactionPagination{Page: 3, Limit: 20}).Offset(); got != 40 {
		t.Errorf("expected offset 40, got %d", got)
	}
	if got := (TransactionPagination{Page: 0, Limit: 20}).Offset(); got != 0 {
		t.Errorf("expected offset 0, got %d", got)
	}
}
