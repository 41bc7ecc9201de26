// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// TransactionRepository defines the read side of transaction persistence.
// Writes that move balances or bills go through the Ledger.
type TransactionRepository interface {
	// FindByIDAndUser retrieves a transaction owned by the user.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Transaction, error)

	// FindByFilter lists the user's transactions matching filter, newest first.
	FindByFilter(
		ctx context.Context,
		userID uuid.UUID,
		filter *entity.TransactionFilter,
		pagination *entity.TransactionPagination,
	) (*entity.TransactionListResult, error)

	// FindByBill retrieves the transactions attached to a bill.
	FindByBill(ctx context.Context, userID, billID uuid.UUID) ([]*entity.Transaction, error)

	// FindUncategorized retrieves up to limit of the user's transactions without a category.
	FindUncategorized(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error)
}
