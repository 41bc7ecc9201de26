// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// BankInfoRepository defines the interface for bank account persistence operations.
// Every lookup is scoped to the owning user.
type BankInfoRepository interface {
	// Create creates a new bank account in the database.
	Create(ctx context.Context, bankInfo *entity.BankInfo) error

	// FindByIDAndUser retrieves a bank account owned by the user.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.BankInfo, error)

	// FindByUser retrieves all bank accounts of the user ordered by name.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BankInfo, error)

	// Update updates the descriptive fields of a bank account.
	Update(ctx context.Context, bankInfo *entity.BankInfo) error
}
