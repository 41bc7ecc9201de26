// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// BillRepository defines the interface for bill persistence operations.
type BillRepository interface {
	// FindByIDAndUser retrieves a bill whose card is owned by the user.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Bill, error)

	// FindByCard retrieves the bills of a card ordered by due date.
	FindByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.Bill, error)

	// FindUnpaid retrieves every bill that is not paid.
	FindUnpaid(ctx context.Context) ([]*entity.Bill, error)

	// FindUnpaidDueBetween retrieves unpaid bills due within [start, end].
	FindUnpaidDueBetween(ctx context.Context, start, end time.Time) ([]*entity.Bill, error)

	// CreateIfMissing inserts bills whose (card, reference) pair does not exist yet.
	// It returns the number of bills created.
	CreateIfMissing(ctx context.Context, bills []*entity.Bill) (int, error)

	// UpdateStatus changes the status of an unpaid bill.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BillStatus) error
}
