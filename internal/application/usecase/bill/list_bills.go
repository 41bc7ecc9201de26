package bill

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// ListBillsInput represents the input for listing a card's bills.
type ListBillsInput struct {
	Principal entity.Principal
	CardID    uuid.UUID
}

// BillOutput represents a bill with its closing date.
type BillOutput struct {
	*entity.Bill
	ClosingDate time.Time
}

// ListBillsOutput represents the bills of a card ordered by due date.
type ListBillsOutput struct {
	Card  *entity.Card
	Bills []*BillOutput
}

// ListBillsUseCase lists the bills of an owned card.
type ListBillsUseCase struct {
	cardRepo adapter.CardRepository
	billRepo adapter.BillRepository
}

// NewListBillsUseCase creates a new ListBillsUseCase instance.
func NewListBillsUseCase(cardRepo adapter.CardRepository, billRepo adapter.BillRepository) *ListBillsUseCase {
	return &ListBillsUseCase{
		cardRepo: cardRepo,
		billRepo: billRepo,
	}
}

// Execute lists the bills of input.CardID.
func (uc *ListBillsUseCase) Execute(ctx context.Context, input ListBillsInput) (*ListBillsOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	card, err := findOwnedCard(ctx, uc.cardRepo, input.CardID, input.Principal.UserID)
	if err != nil {
		return nil, err
	}

	bills, err := uc.billRepo.FindByCard(ctx, card.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	output := &ListBillsOutput{Card: card, Bills: make([]*BillOutput, 0, len(bills))}
	for _, bill := range bills {
		output.Bills = append(output.Bills, &BillOutput{
			Bill:        bill,
			ClosingDate: card.ClosingDate(bill.DueDate.Year(), bill.DueDate.Month()),
		})
	}
	return output, nil
}
