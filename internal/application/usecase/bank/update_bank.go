package bank

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// UpdateBankInput represents the input for updating a bank account.
// The stored balance is owned by the ledger and cannot be edited here.
type UpdateBankInput struct {
	Principal       entity.Principal
	BankInfoID      uuid.UUID
	Name            string
	Type            entity.BankAccountType
	BankInstitution string
}

// UpdateBankOutput represents the output of a bank account update.
type UpdateBankOutput struct {
	BankInfo *entity.BankInfo
}

// UpdateBankUseCase handles bank account updates.
type UpdateBankUseCase struct {
	bankRepo adapter.BankInfoRepository
}

// NewUpdateBankUseCase creates a new UpdateBankUseCase instance.
func NewUpdateBankUseCase(bankRepo adapter.BankInfoRepository) *UpdateBankUseCase {
	return &UpdateBankUseCase{
		bankRepo: bankRepo,
	}
}

// Execute performs the update.
func (uc *UpdateBankUseCase) Execute(ctx context.Context, input UpdateBankInput) (*UpdateBankOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	if err := validateBankFields(input.Name, input.Type); err != nil {
		return nil, err
	}

	bankInfo, err := uc.bankRepo.FindByIDAndUser(ctx, input.BankInfoID, input.Principal.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBankInfoNotFound) {
			return nil, bankNotFound()
		}
		return nil, fmt.Errorf("failed to find bank account: %w", err)
	}

	bankInfo.Name = strings.TrimSpace(input.Name)
	bankInfo.Type = input.Type
	bankInfo.BankInstitution = strings.TrimSpace(input.BankInstitution)
	bankInfo.UpdatedAt = time.Now().UTC()

	if err := uc.bankRepo.Update(ctx, bankInfo); err != nil {
		return nil, fmt.Errorf("failed to update bank account: %w", err)
	}

	return &UpdateBankOutput{
		BankInfo: bankInfo,
	}, nil
}
