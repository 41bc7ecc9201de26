package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/moneyflow/internal/application/usecase/dashboard"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/middleware"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	totalUseCase      *dashboard.TotalForPeriodUseCase
	savingsUseCase    *dashboard.SavingsForPeriodUseCase
	categoriesUseCase *dashboard.ExpensePercentageByCategoryUseCase
	recentUseCase     *dashboard.LastNTransactionsUseCase
	balancesUseCase   *dashboard.BalanceOverviewUseCase
	monthlyUseCase    *dashboard.MonthlySeriesUseCase
	overviewUseCase   *dashboard.OverviewUseCase
	dataRangeUseCase  *dashboard.GetDataRangeUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	totalUseCase *dashboard.TotalForPeriodUseCase,
	savingsUseCase *dashboard.SavingsForPeriodUseCase,
	categoriesUseCase *dashboard.ExpensePercentageByCategoryUseCase,
	recentUseCase *dashboard.LastNTransactionsUseCase,
	balancesUseCase *dashboard.BalanceOverviewUseCase,
	monthlyUseCase *dashboard.MonthlySeriesUseCase,
	overviewUseCase *dashboard.OverviewUseCase,
	dataRangeUseCase *dashboard.GetDataRangeUseCase,
) *DashboardController {
	return &DashboardController{
		totalUseCase:      totalUseCase,
		savingsUseCase:    savingsUseCase,
		categoriesUseCase: categoriesUseCase,
		recentUseCase:     recentUseCase,
		balancesUseCase:   balancesUseCase,
		monthlyUseCase:    monthlyUseCase,
		overviewUseCase:   overviewUseCase,
		dataRangeUseCase:  dataRangeUseCase,
	}
}

// Total handles GET /dashboard/total?type=&start_date=&end_date= requests.
func (c *DashboardController) Total(ctx *gin.Context) {
	start, end, ok := bindPeriod(ctx)
	if !ok {
		return
	}

	output, err := c.totalUseCase.Execute(ctx.Request.Context(), dashboard.TotalForPeriodInput{
		Principal: middleware.GetPrincipal(ctx),
		Type:      entity.TransactionType(ctx.Query("type")),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, output, "")
}

// Savings handles GET /dashboard/savings requests.
func (c *DashboardController) Savings(ctx *gin.Context) {
	start, end, ok := bindPeriod(ctx)
	if !ok {
		return
	}

	output, err := c.savingsUseCase.Execute(ctx.Request.Context(), dashboard.SavingsForPeriodInput{
		Principal: middleware.GetPrincipal(ctx),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, output, "")
}

// ExpensesByCategory handles GET /dashboard/categories requests.
func (c *DashboardController) ExpensesByCategory(ctx *gin.Context) {
	start, end, ok := bindPeriod(ctx)
	if !ok {
		return
	}

	output, err := c.categoriesUseCase.Execute(ctx.Request.Context(), dashboard.ExpensePercentageByCategoryInput{
		Principal: middleware.GetPrincipal(ctx),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, output, "")
}

// Recent handles GET /dashboard/recent?n= requests.
func (c *DashboardController) Recent(ctx *gin.Context) {
	n, ok := intQuery(ctx, "n", dashboard.DefaultRecentTransactions)
	if !ok {
		return
	}

	output, err := c.recentUseCase.Execute(ctx.Request.Context(), dashboard.LastNTransactionsInput{
		Principal: middleware.GetPrincipal(ctx),
		N:         n,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, output, "")
}

// Balances handles GET /dashboard/balances requests.
func (c *DashboardController) Balances(ctx *gin.Context) {
	output, err := c.balancesUseCase.Execute(ctx.Request.Context(), dashboard.BalanceOverviewInput{
		Principal: middleware.GetPrincipal(ctx),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, output, "")
}

// MonthlySeries handles GET /dashboard/monthly?year= requests. The year defaults to the current one.
func (c *DashboardController) MonthlySeries(ctx *gin.Context) {
	year, ok := intQuery(ctx, "year", time.Now().UTC().Year())
	if !ok {
		return
	}

	output, err := c.monthlyUseCase.Execute(ctx.Request.Context(), dashboard.MonthlySeriesInput{
		Principal: middleware.GetPrincipal(ctx),
		Year:      year,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, output, "")
}

// Overview handles GET /dashboard/overview requests.
func (c *DashboardController) Overview(ctx *gin.Context) {
	start, end, ok := bindPeriod(ctx)
	if !ok {
		return
	}
	recentN, ok := intQuery(ctx, "n", dashboard.DefaultRecentTransactions)
	if !ok {
		return
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), dashboard.OverviewInput{
		Principal: middleware.GetPrincipal(ctx),
		StartDate: start,
		EndDate:   end,
		RecentN:   recentN,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, output, "")
}

// DataRange handles GET /dashboard/data-range requests.
func (c *DashboardController) DataRange(ctx *gin.Context) {
	output, err := c.dataRangeUseCase.Execute(ctx.Request.Context(), dashboard.GetDataRangeInput{
		Principal: middleware.GetPrincipal(ctx),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, output, "")
}

// bindPeriod reads start_date and end_date. Missing dates are left zero for the use case to reject.
func bindPeriod(ctx *gin.Context) (time.Time, time.Time, bool) {
	var query dto.PeriodQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindError(ctx, err)
		return time.Time{}, time.Time{}, false
	}

	var start, end time.Time
	for _, field := range []struct {
		value  string
		target *time.Time
	}{
		{query.StartDate, &start},
		{query.EndDate, &end},
	} {
		date, err := dto.ParseOptionalDate(field.value)
		if err != nil {
			respondError(ctx, domainerror.NewDashboardError(
				domainerror.ErrCodeInvalidDateFormat,
				"dates must be YYYY-MM-DD",
				err,
			))
			return time.Time{}, time.Time{}, false
		}
		if date != nil {
			*field.target = *date
		}
	}
	return start, end, true
}

func intQuery(ctx *gin.Context, name string, fallback int) (int, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		respondBindError(ctx, err)
		return 0, false
	}
	return value, true
}
