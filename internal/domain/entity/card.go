package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Card represents a credit card. Purchases are grouped into monthly bills
// due on DueDay; a bill stops accepting purchases on its closing date.
type Card struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Limit       decimal.Decimal
	Flag        string // card network, e.g. visa, mastercard
	ClosingDay  int
	DueDay      int
	BankInfoID  *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCard creates a new Card entity.
func NewCard(userID uuid.UUID, description string, limit decimal.Decimal, flag string, closingDay, dueDay int, bankInfoID *uuid.UUID) *Card {
	now := time.Now().UTC()

	return &Card{
		ID:          uuid.New(),
		UserID:      userID,
		Description: description,
		Limit:       limit,
		Flag:        flag,
		ClosingDay:  closingDay,
		DueDay:      dueDay,
		BankInfoID:  bankInfoID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsValidCardDay reports whether day can be used as a closing or due day.
func IsValidCardDay(day int) bool {
	return day >= 1 && day <= 31
}

// DueDate returns the due date of the bill for the given month.
func (c *Card) DueDate(year int, month time.Month) time.Time {
	return ClampedDate(year, month, c.DueDay)
}

// ClosingDate returns the closing date of the bill due in the given month.
// When the closing day falls before the due day the bill closes in the due
// month, otherwise it closes in the previous month.
func (c *Card) ClosingDate(year int, month time.Month) time.Time {
	if c.ClosingDay < c.DueDay {
		return ClampedDate(year, month, c.ClosingDay)
	}
	return ClampedDate(year, month-1, c.ClosingDay)
}

// CycleFor returns the due month of the bill a purchase made on date belongs to.
// Purchases on or after a bill's closing date roll into the next bill.
func (c *Card) CycleFor(date time.Time) (int, time.Month) {
	day := DateOnly(date)
	cursor := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)

	for {
		if day.Before(c.ClosingDate(cursor.Year(), cursor.Month())) {
			return cursor.Year(), cursor.Month()
		}
		cursor = cursor.AddDate(0, 1, 0)
	}
}
