package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// TotalForPeriodInput represents the input for summing one transaction type.
type TotalForPeriodInput struct {
	Principal entity.Principal
	Type      entity.TransactionType
	StartDate time.Time
	EndDate   time.Time
}

// TotalForPeriodOutput represents the sum of a transaction type over a period.
type TotalForPeriodOutput struct {
	Total decimal.Decimal `json:"total"`
}

// TotalForPeriodUseCase sums the amounts of a transaction type within a date range.
type TotalForPeriodUseCase struct {
	dashboardRepo DashboardRepository
}

// NewTotalForPeriodUseCase creates a new TotalForPeriodUseCase instance.
func NewTotalForPeriodUseCase(dashboardRepo DashboardRepository) *TotalForPeriodUseCase {
	return &TotalForPeriodUseCase{
		dashboardRepo: dashboardRepo,
	}
}

// Execute sums the transactions of input.Type dated in [StartDate, EndDate].
// An empty period yields zero.
func (uc *TotalForPeriodUseCase) Execute(ctx context.Context, input TotalForPeriodInput) (*TotalForPeriodOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	if !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'income', 'expense', 'card_expense' or 'transfer'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	start, end, err := normalizePeriod(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	total, err := totalOf(ctx, uc.dashboardRepo, input.Principal, input.Type, start, end)
	if err != nil {
		return nil, err
	}

	return &TotalForPeriodOutput{Total: total}, nil
}

// SavingsForPeriodInput represents the input for computing savings.
type SavingsForPeriodInput struct {
	Principal entity.Principal
	StartDate time.Time
	EndDate   time.Time
}

// SavingsForPeriodOutput represents income minus expenses over a period.
type SavingsForPeriodOutput struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Savings decimal.Decimal `json:"savings"`
}

// SavingsForPeriodUseCase computes income minus expenses within a date range.
type SavingsForPeriodUseCase struct {
	dashboardRepo DashboardRepository
}

// NewSavingsForPeriodUseCase creates a new SavingsForPeriodUseCase instance.
func NewSavingsForPeriodUseCase(dashboardRepo DashboardRepository) *SavingsForPeriodUseCase {
	return &SavingsForPeriodUseCase{
		dashboardRepo: dashboardRepo,
	}
}

// Execute computes the savings. Overspending yields a negative result.
func (uc *SavingsForPeriodUseCase) Execute(ctx context.Context, input SavingsForPeriodInput) (*SavingsForPeriodOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	start, end, err := normalizePeriod(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	income, err := totalOf(ctx, uc.dashboardRepo, input.Principal, entity.TransactionTypeIncome, start, end)
	if err != nil {
		return nil, err
	}
	expense, err := totalOf(ctx, uc.dashboardRepo, input.Principal, entity.TransactionTypeExpense, start, end)
	if err != nil {
		return nil, err
	}

	return &SavingsForPeriodOutput{
		Income:  income,
		Expense: expense,
		Savings: income.Sub(expense),
	}, nil
}

func totalOf(
	ctx context.Context,
	repo DashboardRepository,
	principal entity.Principal,
	txnType entity.TransactionType,
	start, end time.Time,
) (decimal.Decimal, error) {
	transactions, err := repo.GetTransactionsInPeriod(ctx, principal.UserID, &txnType, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get %s transactions: %w", txnType, err)
	}
	return sumAmounts(transactions), nil
}

func sumAmounts(transactions []*entity.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range transactions {
		total = total.Add(txn.Amount)
	}
	return total
}
