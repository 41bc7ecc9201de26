// Package category contains category-related use cases.
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

// Resolution is the display form of a transaction's category.
type Resolution struct {
	ID     *uuid.UUID
	Name   string
	Type   entity.CategoryType
	Source entity.CategorySource
}

// Uncategorized returns the resolution used for missing or unknown categories.
func Uncategorized() Resolution {
	return Resolution{
		Name:   entity.UncategorizedName,
		Source: entity.CategorySourceUnknown,
	}
}

// Resolutions holds the results of ResolveMany keyed by category id.
type Resolutions map[uuid.UUID]Resolution

// For returns the resolution of id, falling back to Uncategorized.
func (r Resolutions) For(id *uuid.UUID) Resolution {
	if id == nil {
		return Uncategorized()
	}
	if res, ok := r[*id]; ok {
		return res
	}
	return Uncategorized()
}

// Resolver maps category ids to display names.
// The built-in catalog always wins over the user's store, so a user category
// can never shadow a default one.
type Resolver struct {
	categoryRepo adapter.CategoryRepository
}

// NewResolver creates a new Resolver instance.
func NewResolver(categoryRepo adapter.CategoryRepository) *Resolver {
	return &Resolver{
		categoryRepo: categoryRepo,
	}
}

// Resolve looks categoryID up in the built-in catalog, then in the user's
// categories, and falls back to Uncategorized.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) (Resolution, error) {
	if categoryID == nil || *categoryID == uuid.Nil {
		return Uncategorized(), nil
	}

	if builtin, ok := entity.LookupBuiltinCategory(*categoryID); ok {
		return fromBuiltin(builtin), nil
	}

	category, err := r.categoryRepo.FindByIDAndUser(ctx, *categoryID, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return Uncategorized(), nil
		}
		return Resolution{}, fmt.Errorf("failed to resolve category: %w", err)
	}
	return fromUserCategory(category), nil
}

// ResolveMany resolves a batch of ids with a single store lookup.
func (r *Resolver) ResolveMany(ctx context.Context, userID uuid.UUID, categoryIDs []*uuid.UUID) (Resolutions, error) {
	resolutions := make(Resolutions, len(categoryIDs))
	pending := make([]uuid.UUID, 0, len(categoryIDs))
	seen := make(map[uuid.UUID]bool, len(categoryIDs))

	for _, id := range categoryIDs {
		if id == nil || *id == uuid.Nil || seen[*id] {
			continue
		}
		seen[*id] = true

		if builtin, ok := entity.LookupBuiltinCategory(*id); ok {
			resolutions[*id] = fromBuiltin(builtin)
			continue
		}
		pending = append(pending, *id)
	}

	if len(pending) == 0 {
		return resolutions, nil
	}

	categories, err := r.categoryRepo.FindByIDs(ctx, userID, pending)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve categories: %w", err)
	}
	for _, category := range categories {
		resolutions[category.ID] = fromUserCategory(category)
	}
	return resolutions, nil
}

// Exists reports whether categoryID resolves to a built-in or owned category.
func (r *Resolver) Exists(ctx context.Context, userID uuid.UUID, categoryID uuid.UUID) (bool, error) {
	id := categoryID
	res, err := r.Resolve(ctx, userID, &id)
	if err != nil {
		return false, err
	}
	return res.Source != entity.CategorySourceUnknown, nil
}

func fromBuiltin(builtin entity.BuiltinCategory) Resolution {
	id := builtin.ID
	return Resolution{
		ID:     &id,
		Name:   builtin.Name,
		Type:   builtin.Type,
		Source: entity.CategorySourceBuiltin,
	}
}

func fromUserCategory(category *entity.Category) Resolution {
	id := category.ID
	return Resolution{
		ID:     &id,
		Name:   category.Name,
		Type:   category.Type,
		Source: entity.CategorySourceUserDefined,
	}
}
