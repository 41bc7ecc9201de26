package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// GetDataRangeInput represents the input for getting data range.
type GetDataRangeInput struct {
	Principal entity.Principal
}

// GetDataRangeOutput represents the output of getting data range.
type GetDataRangeOutput struct {
	OldestDate        *time.Time `json:"oldestDate"`
	NewestDate        *time.Time `json:"newestDate"`
	TotalTransactions int        `json:"totalTransactions"`
	HasData           bool       `json:"hasData"`
}

// GetDataRangeUseCase handles getting the date range of user's transactions.
type GetDataRangeUseCase struct {
	dashboardRepo DashboardRepository
}

// NewGetDataRangeUseCase creates a new GetDataRangeUseCase instance.
func NewGetDataRangeUseCase(dashboardRepo DashboardRepository) *GetDataRangeUseCase {
	return &GetDataRangeUseCase{
		dashboardRepo: dashboardRepo,
	}
}

// Execute retrieves the date range of user's transactions.
func (uc *GetDataRangeUseCase) Execute(ctx context.Context, input GetDataRangeInput) (*GetDataRangeOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	dateRange, err := uc.dashboardRepo.GetDateRange(ctx, input.Principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get date range: %w", err)
	}

	return &GetDataRangeOutput{
		OldestDate:        dateRange.OldestDate,
		NewestDate:        dateRange.NewestDate,
		TotalTransactions: dateRange.TotalTransactions,
		HasData:           dateRange.OldestDate != nil && dateRange.NewestDate != nil,
	}, nil
}
