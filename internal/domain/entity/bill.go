package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillStatus represents the lifecycle state of a bill.
type BillStatus string

const (
	BillStatusOpen   BillStatus = "OPEN"
	BillStatusClosed BillStatus = "CLOSED"
	BillStatusLate   BillStatus = "LATE"
	BillStatusPaid   BillStatus = "PAID"
)

// IsTerminal reports whether no further transitions are allowed.
func (s BillStatus) IsTerminal() bool {
	return s == BillStatusPaid
}

// ReferenceLayout formats the month a bill is due in.
const ReferenceLayout = "2006-01"

var monthNames = map[time.Month]string{
	time.January:   "Janeiro",
	time.February:  "Fevereiro",
	time.March:     "Março",
	time.April:     "Abril",
	time.May:       "Maio",
	time.June:      "Junho",
	time.July:      "Julho",
	time.August:    "Agosto",
	time.September: "Setembro",
	time.October:   "Outubro",
	time.November:  "Novembro",
	time.December:  "Dezembro",
}

// MonthName returns the Portuguese name of the month.
func MonthName(month time.Month) string {
	return monthNames[month]
}

// Bill is the monthly billing cycle of a card.
type Bill struct {
	ID          uuid.UUID
	CardID      uuid.UUID
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
	Reference   string
	Status      BillStatus
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBillForCard creates the bill of card due in the given month.
// The amount starts at zero and grows as card expenses are booked.
func NewBillForCard(card *Card, month time.Month, year int) *Bill {
	now := time.Now().UTC()
	dueDate := card.DueDate(year, month)

	return &Bill{
		ID:          uuid.New(),
		CardID:      card.ID,
		UserID:      card.UserID,
		Description: BillDescription(dueDate.Month(), dueDate.Year()),
		Amount:      decimal.Zero,
		DueDate:     dueDate,
		Reference:   dueDate.Format(ReferenceLayout),
		Status:      BillStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// BillDescription returns the display name of a bill due in the given month.
func BillDescription(month time.Month, year int) string {
	return fmt.Sprintf("Fatura de %s/%d", MonthName(month), year)
}

// PaymentDescription returns the description of the transaction settling the bill.
func (b *Bill) PaymentDescription() string {
	return "Pagamento " + b.Description
}

// StatusAt computes the time-driven status of the bill on day now.
// Paid bills never change.
func (b *Bill) StatusAt(now, closingDate time.Time) BillStatus {
	if b.Status == BillStatusPaid {
		return BillStatusPaid
	}

	today := DateOnly(now)
	switch {
	case today.After(DateOnly(b.DueDate)):
		return BillStatusLate
	case !today.Before(DateOnly(closingDate)):
		return BillStatusClosed
	default:
		return BillStatusOpen
	}
}

// MarkPaid settles the bill on paidAt.
func (b *Bill) MarkPaid(paidAt time.Time) {
	paid := DateOnly(paidAt)
	b.Status = BillStatusPaid
	b.PaidAt = &paid
	b.UpdatedAt = time.Now().UTC()
}
