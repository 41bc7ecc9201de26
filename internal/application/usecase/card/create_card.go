// Package card contains credit card use cases.
package card

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/application/usecase/bill"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// MaxDescriptionLength is the maximum length of a card description.
const MaxDescriptionLength = 100

// CreateCardInput represents the input for card creation.
type CreateCardInput struct {
	Principal   entity.Principal
	Description string
	Limit       decimal.Decimal
	Flag        string
	ClosingDay  int
	DueDay      int
	BankInfoID  *uuid.UUID
}

// CreateCardOutput represents the card and the bills created with it.
type CreateCardOutput struct {
	Card  *entity.Card
	Bills []*entity.Bill
}

// CreateCardUseCase handles card creation.
type CreateCardUseCase struct {
	ledger   adapter.Ledger
	bankRepo adapter.BankInfoRepository
	quota    adapter.QuotaChecker
	now      func() time.Time
}

// NewCreateCardUseCase creates a new CreateCardUseCase instance.
func NewCreateCardUseCase(ledger adapter.Ledger, bankRepo adapter.BankInfoRepository, quota adapter.QuotaChecker) *CreateCardUseCase {
	return &CreateCardUseCase{
		ledger:   ledger,
		bankRepo: bankRepo,
		quota:    quota,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Execute creates the card with its current and next month bills in one store transaction.
func (uc *CreateCardUseCase) Execute(ctx context.Context, input CreateCardInput) (*CreateCardOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	if err := validateCardFields(input.Description, input.Limit, input.ClosingDay, input.DueDay); err != nil {
		return nil, err
	}

	if err := checkBank(ctx, uc.bankRepo, input.BankInfoID, input.Principal.UserID); err != nil {
		return nil, err
	}

	if uc.quota != nil {
		release, err := uc.quota.Reserve(ctx, input.Principal.UserID, entity.QuotaCards, 1)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	card := entity.NewCard(
		input.Principal.UserID,
		strings.TrimSpace(input.Description),
		input.Limit,
		strings.ToLower(strings.TrimSpace(input.Flag)),
		input.ClosingDay,
		input.DueDay,
		input.BankInfoID,
	)
	card.CreatedAt = uc.now()
	card.UpdatedAt = card.CreatedAt

	bills := bill.FirstBills(card, card.CreatedAt)
	if err := uc.ledger.CreateCardWithBills(ctx, card, bills); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	slog.Info("Card created", "card_id", card.ID, "user_id", card.UserID, "bills", len(bills))

	return &CreateCardOutput{
		Card:  card,
		Bills: bills,
	}, nil
}

func validateCardFields(description string, limit decimal.Decimal, closingDay, dueDay int) error {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return domainerror.NewCardError(
			domainerror.ErrCodeMissingCardFields,
			"card description is required",
			nil,
		)
	}

	if len(trimmed) > MaxDescriptionLength {
		return domainerror.NewCardError(
			domainerror.ErrCodeInvalidCardDescription,
			fmt.Sprintf("card description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrInvalidCardDescription,
		)
	}

	if limit.IsNegative() {
		return domainerror.NewCardError(
			domainerror.ErrCodeInvalidCardLimit,
			"card limit must not be negative",
			domainerror.ErrInvalidCardLimit,
		)
	}

	if !entity.IsValidCardDay(closingDay) || !entity.IsValidCardDay(dueDay) {
		return domainerror.NewCardError(
			domainerror.ErrCodeInvalidCardDay,
			"closing and due days must be between 1 and 31",
			domainerror.ErrInvalidCardDay,
		)
	}

	return nil
}

// checkBank verifies the optional paying account belongs to the user.
func checkBank(ctx context.Context, bankRepo adapter.BankInfoRepository, bankInfoID *uuid.UUID, userID uuid.UUID) error {
	if bankInfoID == nil {
		return nil
	}

	if _, err := bankRepo.FindByIDAndUser(ctx, *bankInfoID, userID); err != nil {
		if errors.Is(err, domainerror.ErrBankInfoNotFound) {
			return domainerror.NewBankError(
				domainerror.ErrCodeBankInfoNotFound,
				"bank account not found",
				domainerror.ErrBankInfoNotFound,
			)
		}
		return fmt.Errorf("failed to find bank account: %w", err)
	}
	return nil
}

func cardNotFound() *domainerror.Error {
	return domainerror.NewCardError(
		domainerror.ErrCodeCardNotFound,
		"card not found",
		domainerror.ErrCardNotFound,
	)
}
