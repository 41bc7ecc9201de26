// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of money movement.
type TransactionType string

const (
	TransactionTypeIncome      TransactionType = "income"
	TransactionTypeExpense     TransactionType = "expense"
	TransactionTypeCardExpense TransactionType = "card_expense"
	TransactionTypeTransfer    TransactionType = "transfer"
)

// IsValid reports whether the type is known.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeCardExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// TransactionStatus represents the settlement status of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusLate      TransactionStatus = "late"
)

// IsValid reports whether the status is known.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusLate:
		return true
	}
	return false
}

// RepetitionPeriod is the interval between occurrences of a repeated transaction.
type RepetitionPeriod string

const (
	RepetitionDaily   RepetitionPeriod = "daily"
	RepetitionWeekly  RepetitionPeriod = "weekly"
	RepetitionMonthly RepetitionPeriod = "monthly"
	RepetitionYearly  RepetitionPeriod = "yearly"
)

// IsValid reports whether the period is known.
func (p RepetitionPeriod) IsValid() bool {
	switch p {
	case RepetitionDaily, RepetitionWeekly, RepetitionMonthly, RepetitionYearly:
		return true
	}
	return false
}

// Advance returns the date of the occurrence that is n periods after date.
func (p RepetitionPeriod) Advance(date time.Time, n int) time.Time {
	switch p {
	case RepetitionDaily:
		return date.AddDate(0, 0, n)
	case RepetitionWeekly:
		return date.AddDate(0, 0, 7*n)
	case RepetitionYearly:
		return date.AddDate(n, 0, 0)
	default:
		return AddMonthsClamped(date, n)
	}
}

// Transaction represents a financial transaction owned by a single user.
// Amount is always stored positive; the direction comes from Type.
type Transaction struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	Type                  TransactionType
	Status                TransactionStatus
	Amount                decimal.Decimal
	Description           string
	CategoryID            *uuid.UUID
	BankInfoID            *uuid.UUID
	DestinationBankInfoID *uuid.UUID // transfers only
	CardID                *uuid.UUID // card expenses only
	BillID                *uuid.UUID // card expenses and bill payments
	Date                  time.Time
	IsFixed               bool
	Repeat                bool
	NumberRepetitions     int
	RepetitionPeriod      RepetitionPeriod
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	transactionType TransactionType,
	status TransactionStatus,
	amount decimal.Decimal,
	description string,
	date time.Time,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        transactionType,
		Status:      status,
		Amount:      amount,
		Description: description,
		Date:        DateOnly(date),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsBillPayment reports whether the transaction settles a card bill.
func (t *Transaction) IsBillPayment() bool {
	return t.Type == TransactionTypeExpense && t.BillID != nil
}

// SignedAmount returns the amount with the sign implied by the type.
// Transfers are neutral for the owner and report zero.
func (t *Transaction) SignedAmount() decimal.Decimal {
	switch t.Type {
	case TransactionTypeIncome:
		return t.Amount
	case TransactionTypeExpense, TransactionTypeCardExpense:
		return t.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// BalanceDelta is a change to the stored balance of one bank account.
type BalanceDelta struct {
	BankInfoID uuid.UUID
	Amount     decimal.Decimal
}

// BalanceEffects lists the bank balance changes the transaction causes.
// Only completed transactions move money; card expenses are settled through bills.
func (t *Transaction) BalanceEffects() []BalanceDelta {
	if t.Status != TransactionStatusCompleted || t.BankInfoID == nil {
		return nil
	}

	switch t.Type {
	case TransactionTypeIncome:
		return []BalanceDelta{{BankInfoID: *t.BankInfoID, Amount: t.Amount}}
	case TransactionTypeExpense:
		return []BalanceDelta{{BankInfoID: *t.BankInfoID, Amount: t.Amount.Neg()}}
	case TransactionTypeTransfer:
		if t.DestinationBankInfoID == nil {
			return nil
		}
		return []BalanceDelta{
			{BankInfoID: *t.BankInfoID, Amount: t.Amount.Neg()},
			{BankInfoID: *t.DestinationBankInfoID, Amount: t.Amount},
		}
	}
	return nil
}

// TransactionFilter holds the filters applied when listing transactions.
type TransactionFilter struct {
	Type       *TransactionType
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
	BankInfoID *uuid.UUID
	CardID     *uuid.UUID
	BillID     *uuid.UUID
}

// TransactionPagination holds pagination parameters.
type TransactionPagination struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p TransactionPagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampedDate builds a UTC date, clamping day to the length of the month.
func ClampedDate(year int, month time.Month, day int) time.Time {
	// Normalize overflowing months before clamping.
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	year, month = first.Year(), first.Month()

	if day < 1 {
		day = 1
	}
	if last := DaysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AddMonthsClamped moves date n months, keeping the day within the target month.
func AddMonthsClamped(date time.Time, n int) time.Time {
	return ClampedDate(date.Year(), date.Month()+time.Month(n), date.Day())
}
