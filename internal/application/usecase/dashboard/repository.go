// Package dashboard contains the aggregation use cases behind the dashboard.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// DashboardRepository defines the read operations the aggregations run on.
// Sums are computed in Go over decimal amounts.
type DashboardRepository interface {
	// GetDateRange returns the date range of user's transactions.
	GetDateRange(ctx context.Context, userID uuid.UUID) (*DateRange, error)

	// GetTransactionsInPeriod returns the user's transactions dated within
	// [startDate, endDate], optionally restricted to one type.
	GetTransactionsInPeriod(
		ctx context.Context,
		userID uuid.UUID,
		txnType *entity.TransactionType,
		startDate, endDate time.Time,
	) ([]*entity.Transaction, error)

	// GetRecentTransactions returns the user's latest transactions by date,
	// newest created first on the same date.
	GetRecentTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error)

	// GetBankAccounts returns the user's bank accounts with stored balances.
	GetBankAccounts(ctx context.Context, userID uuid.UUID) ([]*entity.BankInfo, error)
}

// DateRange represents the date boundaries of a user's transaction history.
type DateRange struct {
	OldestDate        *time.Time
	NewestDate        *time.Time
	TotalTransactions int
}
