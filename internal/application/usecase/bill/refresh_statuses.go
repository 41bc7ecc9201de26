package bill

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// RefreshStatusesInput represents the day statuses are computed for.
type RefreshStatusesInput struct {
	Now time.Time
}

// RefreshStatusesOutput reports how many bills changed status.
type RefreshStatusesOutput struct {
	Checked int
	Updated int
}

// RefreshStatusesUseCase applies the time-driven status transitions of unpaid bills.
type RefreshStatusesUseCase struct {
	cardRepo adapter.CardRepository
	billRepo adapter.BillRepository
}

// NewRefreshStatusesUseCase creates a new RefreshStatusesUseCase instance.
func NewRefreshStatusesUseCase(cardRepo adapter.CardRepository, billRepo adapter.BillRepository) *RefreshStatusesUseCase {
	return &RefreshStatusesUseCase{
		cardRepo: cardRepo,
		billRepo: billRepo,
	}
}

// Execute moves unpaid bills to LATE past their due date, CLOSED from their
// closing date, and OPEN otherwise.
func (uc *RefreshStatusesUseCase) Execute(ctx context.Context, input RefreshStatusesInput) (*RefreshStatusesOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	bills, err := uc.billRepo.FindUnpaid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unpaid bills: %w", err)
	}

	cards, err := uc.cardRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	cardByID := make(map[uuid.UUID]*entity.Card, len(cards))
	for _, card := range cards {
		cardByID[card.ID] = card
	}

	output := &RefreshStatusesOutput{}
	for _, bill := range bills {
		card, ok := cardByID[bill.CardID]
		if !ok {
			continue
		}
		output.Checked++

		closing := card.ClosingDate(bill.DueDate.Year(), bill.DueDate.Month())
		next := bill.StatusAt(now, closing)
		if next == bill.Status {
			continue
		}

		if err := uc.billRepo.UpdateStatus(ctx, bill.ID, next); err != nil {
			return output, fmt.Errorf("failed to update bill %s: %w", bill.ID, err)
		}
		output.Updated++
	}

	return output, nil
}
