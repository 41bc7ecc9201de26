package bill

import (
	"context"
	"fmt"
	"time"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// EnsureBillsThroughInput represents the last month bills must exist for.
type EnsureBillsThroughInput struct {
	Month time.Month
	Year  int
}

// EnsureBillsThroughOutput reports what a rollover run did.
type EnsureBillsThroughOutput struct {
	CardsProcessed int
	BillsCreated   int
}

// EnsureBillsThroughUseCase generates the monthly bills of every card.
// It is idempotent: bills are unique per card and reference.
type EnsureBillsThroughUseCase struct {
	cardRepo adapter.CardRepository
	billRepo adapter.BillRepository
}

// NewEnsureBillsThroughUseCase creates a new EnsureBillsThroughUseCase instance.
func NewEnsureBillsThroughUseCase(cardRepo adapter.CardRepository, billRepo adapter.BillRepository) *EnsureBillsThroughUseCase {
	return &EnsureBillsThroughUseCase{
		cardRepo: cardRepo,
		billRepo: billRepo,
	}
}

// Execute creates, for every card, the missing bills from the card's creation
// month through input's month.
func (uc *EnsureBillsThroughUseCase) Execute(ctx context.Context, input EnsureBillsThroughInput) (*EnsureBillsThroughOutput, error) {
	if input.Month < time.January || input.Month > time.December || input.Year < 1 {
		return nil, fmt.Errorf("invalid rollover target %d-%02d", input.Year, input.Month)
	}

	cards, err := uc.cardRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	output := &EnsureBillsThroughOutput{}
	for _, card := range cards {
		created := card.CreatedAt.UTC()
		bills := billsBetween(card, created.Year(), created.Month(), input.Year, input.Month)
		if len(bills) == 0 {
			continue
		}

		count, err := uc.billRepo.CreateIfMissing(ctx, bills)
		if err != nil {
			return output, fmt.Errorf("failed to create bills for card %s: %w", card.ID, err)
		}
		output.CardsProcessed++
		output.BillsCreated += count
	}

	return output, nil
}

// FirstBills returns the bills created together with a card: the current and
// the next month relative to now.
func FirstBills(card *entity.Card, now time.Time) []*entity.Bill {
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	next := current.AddDate(0, 1, 0)
	return billsBetween(card, current.Year(), current.Month(), next.Year(), next.Month())
}
