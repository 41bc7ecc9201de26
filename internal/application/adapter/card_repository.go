// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// CardRepository defines the interface for card persistence operations.
type CardRepository interface {
	// FindByIDAndUser retrieves a card owned by the user.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Card, error)

	// FindByUser retrieves all cards of the user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Card, error)

	// FindAll retrieves every card in the system. Used by the bill rollover job.
	FindAll(ctx context.Context) ([]*entity.Card, error)
}
