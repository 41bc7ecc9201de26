package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// QuotaChecker rejects creations that would exceed the user's plan.
type QuotaChecker interface {
	// Reserve fails with a limit-exceeded error when adding entities of resource
	// would go beyond the user's plan. Otherwise the caller holds the user's
	// quota until it calls release, which must happen after the insert.
	Reserve(ctx context.Context, userID uuid.UUID, resource entity.QuotaResource, adding int64) (release func(), err error)
}
