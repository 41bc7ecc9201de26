package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// BalanceOverviewInput represents the input for the balance overview.
type BalanceOverviewInput struct {
	Principal entity.Principal
}

// AccountBalance represents the stored balance of one bank account.
type AccountBalance struct {
	ID              uuid.UUID              `json:"id"`
	Name            string                 `json:"name"`
	Type            entity.BankAccountType `json:"type"`
	BankInstitution string                 `json:"bankInstitution"`
	CurrentBalance  decimal.Decimal        `json:"currentBalance"`
}

// BalanceOverviewOutput represents all account balances and their sum.
type BalanceOverviewOutput struct {
	Total    decimal.Decimal  `json:"total"`
	Accounts []AccountBalance `json:"accounts"`
}

// BalanceOverviewUseCase reports the user's bank balances.
type BalanceOverviewUseCase struct {
	dashboardRepo DashboardRepository
}

// NewBalanceOverviewUseCase creates a new BalanceOverviewUseCase instance.
func NewBalanceOverviewUseCase(dashboardRepo DashboardRepository) *BalanceOverviewUseCase {
	return &BalanceOverviewUseCase{
		dashboardRepo: dashboardRepo,
	}
}

// Execute returns each account's stored balance and the total.
func (uc *BalanceOverviewUseCase) Execute(ctx context.Context, input BalanceOverviewInput) (*BalanceOverviewOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	accounts, err := uc.dashboardRepo.GetBankAccounts(ctx, input.Principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bank accounts: %w", err)
	}

	output := &BalanceOverviewOutput{
		Total:    decimal.Zero,
		Accounts: make([]AccountBalance, 0, len(accounts)),
	}
	for _, account := range accounts {
		output.Total = output.Total.Add(account.CurrentBalance)
		output.Accounts = append(output.Accounts, AccountBalance{
			ID:              account.ID,
			Name:            account.Name,
			Type:            account.Type,
			BankInstitution: account.BankInstitution,
			CurrentBalance:  account.CurrentBalance,
		})
	}

	return output, nil
}
