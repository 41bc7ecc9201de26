package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewBillForCard(t *testing.T) {
	card := NewCard(uuid.New(), "Nubank", decimal.NewFromInt(5000), "mastercard", 3, 10, nil)

	bill := NewBillForCard(card, time.April, 2025)

	if bill.Description != "Fatura de Abril/2025" {
		t.Errorf("expected description %q, got %q", "Fatura de Abril/2025", bill.Description)
	}
	if !bill.Amount.IsZero() {
		t.Errorf("expected zero amount, got %s", bill.Amount)
	}
	if bill.Status != BillStatusOpen {
		t.Errorf("expected status OPEN, got %s", bill.Status)
	}
	if !bill.DueDate.Equal(date(2025, time.April, 10)) {
		t.Errorf("expected due date 2025-04-10, got %s", bill.DueDate)
	}
	if bill.Reference != "2025-04" {
		t.Errorf("expected reference 2025-04, got %s", bill.Reference)
	}
	if bill.CardID != card.ID || bill.UserID != card.UserID {
		t.Error("expected bill to belong to the card and its owner")
	}
}

func TestNewBillForCard_ClampsDueDay(t *testing.T) {
	card := NewCard(uuid.New(), "Itau", decimal.Zero, "visa", 20, 31, nil)

	tests := []struct {
		month time.Month
		year  int
		want  time.Time
	}{
		{time.February, 2025, date(2025, time.February, 28)},
		{time.February, 2024, date(2024, time.February, 29)},
		{time.April, 2025, date(2025, time.April, 30)},
		{time.January, 2025, date(2025, time.January, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.want.Format("2006-01-02"), func(t *testing.T) {
			bill := NewBillForCard(card, tt.month, tt.year)
			if !bill.DueDate.Equal(tt.want) {
				t.Errorf("expected due date %s, got %s", tt.want, bill.DueDate)
			}
		})
	}
}

func TestNewBillForCard_DecemberRollover(t *testing.T) {
	card := NewCard(uuid.New(), "Inter", decimal.Zero, "visa", 3, 10, nil)

	bill := NewBillForCard(card, time.December+1, 2025)

	if bill.Reference != "2026-01" {
		t.Errorf("expected reference 2026-01, got %s", bill.Reference)
	}
	if bill.Description != "Fatura de Janeiro/2026" {
		t.Errorf("unexpected description %q", bill.Description)
	}
}

func TestBill_StatusAt(t *testing.T) {
	card := NewCard(uuid.New(), "Nubank", decimal.Zero, "mastercard", 3, 10, nil)
	bill := NewBillForCard(card, time.April, 2025)
	closing := card.ClosingDate(2025, time.April)

	tests := []struct {
		name string
		now  time.Time
		want BillStatus
	}{
		{"before closing", date(2025, time.April, 2), BillStatusOpen},
		{"on closing day", date(2025, time.April, 3), BillStatusClosed},
		{"on due day", date(2025, time.April, 10), BillStatusClosed},
		{"after due day", date(2025, time.April, 11), BillStatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bill.StatusAt(tt.now, closing); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	t.Run("paid is terminal", func(t *testing.T) {
		paid := NewBillForCard(card, time.April, 2025)
		paid.MarkPaid(date(2025, time.April, 5))
		if got := paid.StatusAt(date(2025, time.June, 1), closing); got != BillStatusPaid {
			t.Errorf("expected PAID, got %s", got)
		}
		if paid.PaidAt == nil || !paid.PaidAt.Equal(date(2025, time.April, 5)) {
			t.Errorf("expected paid at 2025-04-05, got %v", paid.PaidAt)
		}
	})
}

func TestBill_PaymentDescription(t *testing.T) {
	card := NewCard(uuid.New(), "Nubank", decimal.Zero, "mastercard", 3, 10, nil)
	bill := NewBillForCard(card, time.March, 2025)

	if got := bill.PaymentDescription(); got != "Pagamento Fatura de Março/2025" {
		t.Errorf("unexpected payment description %q", got)
	}
}
