// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// CategoryRepository defines the interface for user-defined category persistence.
// Built-in categories are never stored.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByIDAndUser retrieves a category owned by the user.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Category, error)

	// FindByIDs retrieves the categories of the user among ids.
	FindByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*entity.Category, error)

	// FindByUser retrieves the categories of the user, optionally filtered by type.
	FindByUser(ctx context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error)

	// ExistsByNameAndUser checks if the user already has a category with the name.
	// excludeID skips the category being renamed.
	ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID, excludeID *uuid.UUID) (bool, error)

	// Update updates an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes the category and clears it from the user's transactions.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
