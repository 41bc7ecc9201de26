package card

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// UpdateCardInput represents the input for updating a card.
// A new due day also moves unpaid bills that are not due yet.
type UpdateCardInput struct {
	Principal   entity.Principal
	CardID      uuid.UUID
	Description string
	Limit       decimal.Decimal
	Flag        string
	ClosingDay  int
	DueDay      int
	BankInfoID  *uuid.UUID
}

// UpdateCardOutput represents the output of a card update.
type UpdateCardOutput struct {
	Card *entity.Card
}

// UpdateCardUseCase handles card updates.
type UpdateCardUseCase struct {
	ledger   adapter.Ledger
	cardRepo adapter.CardRepository
	bankRepo adapter.BankInfoRepository
	now      func() time.Time
}

// NewUpdateCardUseCase creates a new UpdateCardUseCase instance.
func NewUpdateCardUseCase(ledger adapter.Ledger, cardRepo adapter.CardRepository, bankRepo adapter.BankInfoRepository) *UpdateCardUseCase {
	return &UpdateCardUseCase{
		ledger:   ledger,
		cardRepo: cardRepo,
		bankRepo: bankRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Execute performs the update.
func (uc *UpdateCardUseCase) Execute(ctx context.Context, input UpdateCardInput) (*UpdateCardOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	if err := validateCardFields(input.Description, input.Limit, input.ClosingDay, input.DueDay); err != nil {
		return nil, err
	}

	card, err := uc.cardRepo.FindByIDAndUser(ctx, input.CardID, input.Principal.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCardNotFound) {
			return nil, cardNotFound()
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}

	if err := checkBank(ctx, uc.bankRepo, input.BankInfoID, input.Principal.UserID); err != nil {
		return nil, err
	}

	card.Description = strings.TrimSpace(input.Description)
	card.Limit = input.Limit
	card.Flag = strings.ToLower(strings.TrimSpace(input.Flag))
	card.ClosingDay = input.ClosingDay
	card.DueDay = input.DueDay
	card.BankInfoID = input.BankInfoID
	card.UpdatedAt = uc.now()

	if _, err := uc.ledger.UpdateCard(ctx, card, card.UpdatedAt); err != nil {
		if errors.Is(err, domainerror.ErrCardNotFound) {
			return nil, cardNotFound()
		}
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	return &UpdateCardOutput{Card: card}, nil
}
