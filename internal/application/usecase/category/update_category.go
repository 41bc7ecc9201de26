package category

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// UpdateCategoryInput represents the input for category update.
// Nil fields are left unchanged.
type UpdateCategoryInput struct {
	Principal  entity.Principal
	CategoryID uuid.UUID
	Name       *string
	Type       *entity.CategoryType
	Value      *decimal.Decimal
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	if _, isBuiltin := entity.LookupBuiltinCategory(input.CategoryID); isBuiltin {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeBuiltinCategoryReadOnly,
			"default categories cannot be modified",
			domainerror.ErrBuiltinCategoryReadOnly,
		)
	}

	category, err := uc.categoryRepo.FindByIDAndUser(ctx, input.CategoryID, input.Principal.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	// Apply changes
	if input.Name != nil {
		category.Name = strings.TrimSpace(*input.Name)
	}
	if input.Type != nil {
		category.Type = *input.Type
	}
	if input.Value != nil {
		category.Value = *input.Value
	}

	if err := validateCategoryFields(category.Name, category.Type, category.Value); err != nil {
		return nil, err
	}

	if input.Name != nil {
		exists, err := uc.categoryRepo.ExistsByNameAndUser(ctx, category.Name, category.UserID, &category.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check category name existence: %w", err)
		}
		if exists {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNameExists,
				"a category with this name already exists",
				domainerror.ErrCategoryNameExists,
			)
		}
	}

	category.UpdatedAt = time.Now().UTC()
	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &UpdateCategoryOutput{
		Category: category,
	}, nil
}
