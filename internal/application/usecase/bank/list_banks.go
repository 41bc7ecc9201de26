package bank

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// ListBanksInput represents the input for listing bank accounts.
type ListBanksInput struct {
	Principal entity.Principal
}

// ListBanksOutput represents the user's bank accounts and their summed balance.
type ListBanksOutput struct {
	BankInfos    []*entity.BankInfo
	TotalBalance decimal.Decimal
}

// ListBanksUseCase lists the bank accounts of the user.
type ListBanksUseCase struct {
	bankRepo adapter.BankInfoRepository
}

// NewListBanksUseCase creates a new ListBanksUseCase instance.
func NewListBanksUseCase(bankRepo adapter.BankInfoRepository) *ListBanksUseCase {
	return &ListBanksUseCase{
		bankRepo: bankRepo,
	}
}

// Execute lists the bank accounts.
func (uc *ListBanksUseCase) Execute(ctx context.Context, input ListBanksInput) (*ListBanksOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	banks, err := uc.bankRepo.FindByUser(ctx, input.Principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}

	total := decimal.Zero
	for _, bank := range banks {
		total = total.Add(bank.CurrentBalance)
	}

	return &ListBanksOutput{
		BankInfos:    banks,
		TotalBalance: total,
	}, nil
}
