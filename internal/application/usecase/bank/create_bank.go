// Package bank contains bank account use cases.
package bank

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// MaxNameLength is the maximum length of a bank account name.
const MaxNameLength = 100

// CreateBankInput represents the input for bank account creation.
type CreateBankInput struct {
	Principal       entity.Principal
	Name            string
	Type            entity.BankAccountType
	InitialBalance  decimal.Decimal
	BankInstitution string
}

// CreateBankOutput represents the output of bank account creation.
type CreateBankOutput struct {
	BankInfo *entity.BankInfo
}

// CreateBankUseCase handles bank account creation.
type CreateBankUseCase struct {
	bankRepo adapter.BankInfoRepository
	quota    adapter.QuotaChecker
}

// NewCreateBankUseCase creates a new CreateBankUseCase instance.
func NewCreateBankUseCase(bankRepo adapter.BankInfoRepository, quota adapter.QuotaChecker) *CreateBankUseCase {
	return &CreateBankUseCase{
		bankRepo: bankRepo,
		quota:    quota,
	}
}

// Execute performs the bank account creation.
func (uc *CreateBankUseCase) Execute(ctx context.Context, input CreateBankInput) (*CreateBankOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	if err := validateBankFields(input.Name, input.Type); err != nil {
		return nil, err
	}

	if uc.quota != nil {
		release, err := uc.quota.Reserve(ctx, input.Principal.UserID, entity.QuotaBankAccounts, 1)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	bankInfo := entity.NewBankInfo(
		input.Principal.UserID,
		strings.TrimSpace(input.Name),
		input.Type,
		input.InitialBalance,
		strings.TrimSpace(input.BankInstitution),
	)
	if err := uc.bankRepo.Create(ctx, bankInfo); err != nil {
		return nil, fmt.Errorf("failed to create bank account: %w", err)
	}

	return &CreateBankOutput{
		BankInfo: bankInfo,
	}, nil
}

func validateBankFields(name string, accountType entity.BankAccountType) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return domainerror.NewBankError(
			domainerror.ErrCodeMissingBankFields,
			"bank account name is required",
			nil,
		)
	}

	if len(trimmed) > MaxNameLength {
		return domainerror.NewBankError(
			domainerror.ErrCodeInvalidBankName,
			fmt.Sprintf("bank account name must not exceed %d characters", MaxNameLength),
			domainerror.ErrInvalidBankName,
		)
	}

	if !accountType.IsValid() {
		return domainerror.NewBankError(
			domainerror.ErrCodeInvalidBankAccountType,
			"account type must be 'checking' or 'savings'",
			domainerror.ErrInvalidBankAccountType,
		)
	}

	return nil
}

func bankNotFound() *domainerror.Error {
	return domainerror.NewBankError(
		domainerror.ErrCodeBankInfoNotFound,
		"bank account not found",
		domainerror.ErrBankInfoNotFound,
	)
}
