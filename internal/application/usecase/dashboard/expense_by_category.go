package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/application/usecase/category"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// CategoryResolver resolves category ids to display names in one batch.
type CategoryResolver interface {
	ResolveMany(ctx context.Context, userID uuid.UUID, categoryIDs []*uuid.UUID) (category.Resolutions, error)
}

// ExpensePercentageByCategoryInput represents the input for the category breakdown.
type ExpensePercentageByCategoryInput struct {
	Principal entity.Principal
	StartDate time.Time
	EndDate   time.Time
}

// CategoryExpense represents one category's share of the period's spending.
type CategoryExpense struct {
	CategoryID *uuid.UUID      `json:"categoryId"`
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// ExpensePercentageByCategoryOutput represents the category breakdown of a period.
type ExpensePercentageByCategoryOutput struct {
	PeriodLabel   string            `json:"periodLabel"`
	TotalExpenses decimal.Decimal   `json:"totalExpenses"`
	Categories    []CategoryExpense `json:"categories"`
}

// ExpensePercentageByCategoryUseCase computes how expenses split across categories.
// It counts the same expense transactions as SavingsForPeriod, bill payments
// included; card purchases reach it through the payment of their bill.
type ExpensePercentageByCategoryUseCase struct {
	dashboardRepo DashboardRepository
	resolver      CategoryResolver
}

// NewExpensePercentageByCategoryUseCase creates a new ExpensePercentageByCategoryUseCase instance.
func NewExpensePercentageByCategoryUseCase(
	dashboardRepo DashboardRepository,
	resolver CategoryResolver,
) *ExpensePercentageByCategoryUseCase {
	return &ExpensePercentageByCategoryUseCase{
		dashboardRepo: dashboardRepo,
		resolver:      resolver,
	}
}

// Execute aggregates the period's expenses per resolved category, largest first.
// A period without expenses yields an empty list.
func (uc *ExpensePercentageByCategoryUseCase) Execute(
	ctx context.Context,
	input ExpensePercentageByCategoryInput,
) (*ExpensePercentageByCategoryOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	start, end, err := normalizePeriod(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	expenseType := entity.TransactionTypeExpense
	expenses, err := uc.dashboardRepo.GetTransactionsInPeriod(ctx, input.Principal.UserID, &expenseType, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense transactions: %w", err)
	}

	categoryIDs := make([]*uuid.UUID, 0, len(expenses))
	for _, txn := range expenses {
		categoryIDs = append(categoryIDs, txn.CategoryID)
	}

	output := &ExpensePercentageByCategoryOutput{
		PeriodLabel:   PeriodLabel(start, end),
		TotalExpenses: sumAmounts(expenses),
		Categories:    []CategoryExpense{},
	}
	if output.TotalExpenses.IsZero() {
		return output, nil
	}

	resolutions, err := uc.resolver.ResolveMany(ctx, input.Principal.UserID, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve categories: %w", err)
	}

	output.Categories = breakdown(expenses, resolutions, output.TotalExpenses)
	return output, nil
}

// breakdown groups transactions by resolved category. Unknown and missing
// categories share the Uncategorized entry.
func breakdown(transactions []*entity.Transaction, resolutions category.Resolutions, total decimal.Decimal) []CategoryExpense {
	const uncategorizedKey = "uncategorized"

	byKey := make(map[string]*CategoryExpense)
	keys := make([]string, 0)
	for _, txn := range transactions {
		res := resolutions.For(txn.CategoryID)

		key := uncategorizedKey
		if res.ID != nil {
			key = res.ID.String()
		}

		item, ok := byKey[key]
		if !ok {
			item = &CategoryExpense{CategoryID: res.ID, Category: res.Name, Amount: decimal.Zero}
			byKey[key] = item
			keys = append(keys, key)
		}
		item.Amount = item.Amount.Add(txn.Amount)
	}

	items := make([]CategoryExpense, 0, len(keys))
	for _, key := range keys {
		items = append(items, *byKey[key])
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Amount.Equal(items[j].Amount) {
			return items[i].Amount.GreaterThan(items[j].Amount)
		}
		return items[i].Category < items[j].Category
	})

	hundred := decimal.NewFromInt(100)
	assigned := decimal.Zero
	for i := range items {
		pct := items[i].Amount.Mul(hundred).Div(total).Round(2)
		assigned = assigned.Add(pct)
		items[i].Percentage, _ = pct.Float64()
	}

	// Rounding drift goes to the largest entry so the shares add up to 100.
	if drift := hundred.Sub(assigned); !drift.IsZero() {
		first, _ := decimal.NewFromFloat(items[0].Percentage).Add(drift).Round(2).Float64()
		items[0].Percentage = first
	}

	return items
}
