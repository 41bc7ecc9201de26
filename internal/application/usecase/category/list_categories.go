package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	Principal    entity.Principal
	CategoryType *entity.CategoryType // Optional filter by category type
}

// CategoryOutput represents a single category in the output.
type CategoryOutput struct {
	ID       uuid.UUID
	Name     string
	Type     entity.CategoryType
	Value    decimal.Decimal
	Source   entity.CategorySource
	ReadOnly bool
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// ListCategoriesUseCase lists built-in and user categories together.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category listing. Built-ins come first and win on id collision.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	if input.CategoryType != nil && !input.CategoryType.IsValid() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be 'INCOME' or 'EXPENSE'",
			domainerror.ErrInvalidCategoryType,
		)
	}

	output := make([]*CategoryOutput, 0)
	for _, builtin := range entity.BuiltinCategories() {
		if input.CategoryType != nil && builtin.Type != *input.CategoryType {
			continue
		}
		output = append(output, &CategoryOutput{
			ID:       builtin.ID,
			Name:     builtin.Name,
			Type:     builtin.Type,
			Value:    decimal.Zero,
			Source:   entity.CategorySourceBuiltin,
			ReadOnly: true,
		})
	}

	categories, err := uc.categoryRepo.FindByUser(ctx, input.Principal.UserID, input.CategoryType)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	for _, category := range categories {
		if _, isBuiltin := entity.LookupBuiltinCategory(category.ID); isBuiltin {
			continue
		}
		output = append(output, &CategoryOutput{
			ID:     category.ID,
			Name:   category.Name,
			Type:   category.Type,
			Value:  category.Value,
			Source: entity.CategorySourceUserDefined,
		})
	}

	return &ListCategoriesOutput{Categories: output}, nil
}
