package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	Principal  entity.Principal
	CategoryID uuid.UUID
}

// DeleteCategoryUseCase handles category deletion logic.
// Transactions of a deleted category become uncategorized.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	if !input.Principal.Authenticated() {
		return domainerror.NewUnauthorizedError()
	}

	if _, isBuiltin := entity.LookupBuiltinCategory(input.CategoryID); isBuiltin {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeBuiltinCategoryReadOnly,
			"default categories cannot be deleted",
			domainerror.ErrBuiltinCategoryReadOnly,
		)
	}

	if err := uc.categoryRepo.Delete(ctx, input.CategoryID, input.Principal.UserID); err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
