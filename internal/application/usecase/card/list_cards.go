package card

import (
	"context"
	"fmt"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// ListCardsInput represents the input for listing cards.
type ListCardsInput struct {
	Principal entity.Principal
}

// ListCardsOutput represents the user's cards.
type ListCardsOutput struct {
	Cards []*entity.Card
}

// ListCardsUseCase lists the cards of the user.
type ListCardsUseCase struct {
	cardRepo adapter.CardRepository
}

// NewListCardsUseCase creates a new ListCardsUseCase instance.
func NewListCardsUseCase(cardRepo adapter.CardRepository) *ListCardsUseCase {
	return &ListCardsUseCase{
		cardRepo: cardRepo,
	}
}

// Execute lists the cards.
func (uc *ListCardsUseCase) Execute(ctx context.Context, input ListCardsInput) (*ListCardsOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	cards, err := uc.cardRepo.FindByUser(ctx, input.Principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	return &ListCardsOutput{Cards: cards}, nil
}
