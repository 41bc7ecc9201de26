package card

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// DeleteCardInput represents the input for deleting a card.
type DeleteCardInput struct {
	Principal entity.Principal
	CardID    uuid.UUID
}

// DeleteCardUseCase deletes a card with its bills and purchases.
// Bill payments stay in the bank history.
type DeleteCardUseCase struct {
	ledger adapter.Ledger
}

// NewDeleteCardUseCase creates a new DeleteCardUseCase instance.
func NewDeleteCardUseCase(ledger adapter.Ledger) *DeleteCardUseCase {
	return &DeleteCardUseCase{
		ledger: ledger,
	}
}

// Execute performs the deletion.
func (uc *DeleteCardUseCase) Execute(ctx context.Context, input DeleteCardInput) error {
	if !input.Principal.Authenticated() {
		return domainerror.NewUnauthorizedError()
	}

	if err := uc.ledger.DeleteCardCascade(ctx, input.Principal.UserID, input.CardID); err != nil {
		if errors.Is(err, domainerror.ErrCardNotFound) {
			return cardNotFound()
		}
		return fmt.Errorf("failed to delete card: %w", err)
	}

	slog.Info("Card deleted", "card_id", input.CardID, "user_id", input.Principal.UserID)
	return nil
}
