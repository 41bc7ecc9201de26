// Package bill contains the bill lifecycle use cases.
package bill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/application/usecase/category"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// CategoryResolver resolves category ids to display names in one batch.
type CategoryResolver interface {
	ResolveMany(ctx context.Context, userID uuid.UUID, categoryIDs []*uuid.UUID) (category.Resolutions, error)
}

func billNotFound() *domainerror.Error {
	return domainerror.NewBillError(
		domainerror.ErrCodeBillNotFound,
		"bill not found",
		domainerror.ErrBillNotFound,
	)
}

// findOwnedCard loads a card of the user or fails with a not-found error.
func findOwnedCard(ctx context.Context, cardRepo adapter.CardRepository, cardID, userID uuid.UUID) (*entity.Card, error) {
	card, err := cardRepo.FindByIDAndUser(ctx, cardID, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCardNotFound) {
			return nil, domainerror.NewCardError(
				domainerror.ErrCodeCardNotFound,
				"card not found",
				domainerror.ErrCardNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	return card, nil
}

// billsBetween returns the bills of card due from the first month through the last, inclusive.
func billsBetween(card *entity.Card, fromYear int, fromMonth time.Month, toYear int, toMonth time.Month) []*entity.Bill {
	var bills []*entity.Bill

	cursor := time.Date(fromYear, fromMonth, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(toYear, toMonth, 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(last) {
		bills = append(bills, entity.NewBillForCard(card, cursor.Month(), cursor.Year()))
		cursor = cursor.AddDate(0, 1, 0)
	}
	return bills
}
