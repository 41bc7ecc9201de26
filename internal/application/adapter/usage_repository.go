// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// UsageRepository counts the entities a user owns for quota checks.
type UsageRepository interface {
	// CountOwned returns how many entities of resource the user owns.
	CountOwned(ctx context.Context, userID uuid.UUID, resource entity.QuotaResource) (int64, error)
}
