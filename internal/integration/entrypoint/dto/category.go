package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/application/usecase/category"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for creating a category.
type CreateCategoryRequest struct {
	Name  string          `json:"name" binding:"required"`
	Type  string          `json:"type" binding:"required"`
	Value decimal.Decimal `json:"value"`
}

// UpdateCategoryRequest represents the request body for updating a category.
// Absent fields are left unchanged.
type UpdateCategoryRequest struct {
	Name  *string          `json:"name"`
	Type  *string          `json:"type"`
	Value *decimal.Decimal `json:"value"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Value    decimal.Decimal `json:"value"`
	Source   string          `json:"source"`
	ReadOnly bool            `json:"readOnly"`
}

// ToCategoryResponse converts a user category entity.
func ToCategoryResponse(c *entity.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:     c.ID.String(),
		Name:   c.Name,
		Type:   string(c.Type),
		Value:  c.Value,
		Source: string(entity.CategorySourceUserDefined),
	}
}

// ToCategoryResponses converts the merged category listing.
func ToCategoryResponses(categories []*category.CategoryOutput) []*CategoryResponse {
	result := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = &CategoryResponse{
			ID:       c.ID.String(),
			Name:     c.Name,
			Type:     string(c.Type),
			Value:    c.Value,
			Source:   string(c.Source),
			ReadOnly: c.ReadOnly,
		}
	}
	return result
}
