package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// MonthlySeriesInput represents the input for the yearly chart.
type MonthlySeriesInput struct {
	Principal entity.Principal
	Year      int
}

// MonthPoint represents one month of the yearly chart.
type MonthPoint struct {
	Month   time.Month      `json:"month"`
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Savings decimal.Decimal `json:"savings"`
}

// MonthlySeriesOutput represents twelve months of income and expenses.
type MonthlySeriesOutput struct {
	Year   int          `json:"year"`
	Months []MonthPoint `json:"months"`
}

// MonthlySeriesUseCase builds per-month income, expense and savings for a year.
type MonthlySeriesUseCase struct {
	dashboardRepo DashboardRepository
}

// NewMonthlySeriesUseCase creates a new MonthlySeriesUseCase instance.
func NewMonthlySeriesUseCase(dashboardRepo DashboardRepository) *MonthlySeriesUseCase {
	return &MonthlySeriesUseCase{
		dashboardRepo: dashboardRepo,
	}
}

// Execute returns all twelve months of input.Year, empty months included.
func (uc *MonthlySeriesUseCase) Execute(ctx context.Context, input MonthlySeriesInput) (*MonthlySeriesOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	if input.Year < 1 || input.Year > 9999 {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDateFormat,
			"year must be between 1 and 9999",
			nil,
		)
	}

	start, _ := MonthBounds(input.Year, time.January)
	_, end := MonthBounds(input.Year, time.December)

	transactions, err := uc.dashboardRepo.GetTransactionsInPeriod(ctx, input.Principal.UserID, nil, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	income := make(map[time.Month]decimal.Decimal)
	expense := make(map[time.Month]decimal.Decimal)
	for _, txn := range transactions {
		month := txn.Date.Month()
		switch txn.Type {
		case entity.TransactionTypeIncome:
			income[month] = income[month].Add(txn.Amount)
		case entity.TransactionTypeExpense:
			expense[month] = expense[month].Add(txn.Amount)
		}
	}

	periods := GenerateMonthSeries(start, end)
	months := make([]MonthPoint, 0, len(periods))
	for _, period := range periods {
		month := period.PeriodStart.Month()
		months = append(months, MonthPoint{
			Month:   month,
			Label:   period.PeriodLabel,
			Income:  income[month],
			Expense: expense[month],
			Savings: income[month].Sub(expense[month]),
		})
	}

	return &MonthlySeriesOutput{Year: input.Year, Months: months}, nil
}
