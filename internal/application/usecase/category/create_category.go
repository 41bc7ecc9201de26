package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Principal entity.Principal
	Name      string
	Type      entity.CategoryType
	Value     decimal.Decimal
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	quota        adapter.QuotaChecker
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository, quota adapter.QuotaChecker) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
		quota:        quota,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	if err := validateCategoryFields(input.Name, input.Type, input.Value); err != nil {
		return nil, err
	}

	// Check if category name already exists for this user
	exists, err := uc.categoryRepo.ExistsByNameAndUser(ctx, input.Name, input.Principal.UserID, nil)
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

	if uc.quota != nil {
		release, err := uc.quota.Reserve(ctx, input.Principal.UserID, entity.QuotaCategories, 1)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	category := entity.NewCategory(input.Principal.UserID, input.Name, input.Type, input.Value)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}

// validateCategoryFields validates the user-editable fields of a category.
func validateCategoryFields(name string, categoryType entity.CategoryType, value decimal.Decimal) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"category name is required",
			nil,
		)
	}

	if len(trimmed) > entity.MaxCategoryNameLength {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", entity.MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}

	if !categoryType.IsValid() {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be 'INCOME' or 'EXPENSE'",
			domainerror.ErrInvalidCategoryType,
		)
	}

	if value.IsNegative() {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryValue,
			"category value must not be negative",
			domainerror.ErrInvalidCategoryValue,
		)
	}

	return nil
}
