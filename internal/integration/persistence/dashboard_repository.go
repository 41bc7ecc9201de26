package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/moneyflow/internal/application/usecase/dashboard"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	"github.com/finance-tracker/moneyflow/internal/integration/persistence/model"
)

// dashboardRepository implements the dashboard.DashboardRepository interface.
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository instance.
func NewDashboardRepository(db *gorm.DB) dashboard.DashboardRepository {
	return &dashboardRepository{
		db: db,
	}
}

// GetDateRange returns the date range of user's transactions.
func (r *dashboardRepository) GetDateRange(
	ctx context.Context,
	userID uuid.UUID,
) (*dashboard.DateRange, error) {
	var oldest, newest model.TransactionModel
	var total int64

	base := r.db.WithContext(ctx).Model(&model.TransactionModel{}).Where("user_id = ?", userID)
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to get date range: %w", err)
	}
	if total == 0 {
		return &dashboard.DateRange{}, nil
	}

	if err := base.Session(&gorm.Session{}).Order("date ASC").Limit(1).Find(&oldest).Error; err != nil {
		return nil, fmt.Errorf("failed to get date range: %w", err)
	}
	if err := base.Session(&gorm.Session{}).Order("date DESC").Limit(1).Find(&newest).Error; err != nil {
		return nil, fmt.Errorf("failed to get date range: %w", err)
	}

	oldestDate := oldest.Date.UTC()
	newestDate := newest.Date.UTC()
	return &dashboard.DateRange{
		OldestDate:        &oldestDate,
		NewestDate:        &newestDate,
		TotalTransactions: int(total),
	}, nil
}

// GetTransactionsInPeriod returns the user's transactions within the inclusive period.
func (r *dashboardRepository) GetTransactionsInPeriod(
	ctx context.Context,
	userID uuid.UUID,
	txnType *entity.TransactionType,
	startDate, endDate time.Time,
) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", entity.DateOnly(startDate), entity.DateOnly(endDate))
	if txnType != nil {
		query = query.Where("type = ?", string(*txnType))
	}

	var transactionModels []model.TransactionModel
	if err := query.Order("date ASC, created_at ASC").Find(&transactionModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions in period: %w", err)
	}
	return toTransactionEntities(transactionModels), nil
}

// GetRecentTransactions returns the user's latest transactions.
func (r *dashboardRepository) GetRecentTransactions(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&transactionModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent transactions: %w", err)
	}
	return toTransactionEntities(transactionModels), nil
}

// GetBankAccounts returns the user's bank accounts with stored balances.
func (r *dashboardRepository) GetBankAccounts(ctx context.Context, userID uuid.UUID) ([]*entity.BankInfo, error) {
	return NewBankInfoRepository(r.db).FindByUser(ctx, userID)
}
