package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// OverviewInput represents the input for the dashboard overview.
type OverviewInput struct {
	Principal entity.Principal
	StartDate time.Time
	EndDate   time.Time
	RecentN   int
}

// OverviewOutput gathers every dashboard widget for one period.
type OverviewOutput struct {
	Savings    *SavingsForPeriodOutput            `json:"savings"`
	Categories *ExpensePercentageByCategoryOutput `json:"categories"`
	Recent     *LastNTransactionsOutput           `json:"recent"`
	Balances   *BalanceOverviewOutput             `json:"balances"`
}

// OverviewUseCase computes the dashboard widgets concurrently.
type OverviewUseCase struct {
	savings    *SavingsForPeriodUseCase
	categories *ExpensePercentageByCategoryUseCase
	recent     *LastNTransactionsUseCase
	balances   *BalanceOverviewUseCase
}

// NewOverviewUseCase creates a new OverviewUseCase instance.
func NewOverviewUseCase(dashboardRepo DashboardRepository, resolver CategoryResolver) *OverviewUseCase {
	return &OverviewUseCase{
		savings:    NewSavingsForPeriodUseCase(dashboardRepo),
		categories: NewExpensePercentageByCategoryUseCase(dashboardRepo, resolver),
		recent:     NewLastNTransactionsUseCase(dashboardRepo, resolver),
		balances:   NewBalanceOverviewUseCase(dashboardRepo),
	}
}

// Execute runs the widgets in parallel and fails if any of them fails.
func (uc *OverviewUseCase) Execute(ctx context.Context, input OverviewInput) (*OverviewOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	if _, _, err := normalizePeriod(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	var output OverviewOutput
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out, err := uc.savings.Execute(ctx, SavingsForPeriodInput{
			Principal: input.Principal,
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
		})
		output.Savings = out
		return err
	})
	g.Go(func() error {
		out, err := uc.categories.Execute(ctx, ExpensePercentageByCategoryInput{
			Principal: input.Principal,
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
		})
		output.Categories = out
		return err
	})
	g.Go(func() error {
		out, err := uc.recent.Execute(ctx, LastNTransactionsInput{Principal: input.Principal, N: input.RecentN})
		output.Recent = out
		return err
	})
	g.Go(func() error {
		out, err := uc.balances.Execute(ctx, BalanceOverviewInput{Principal: input.Principal})
		output.Balances = out
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &output, nil
}
