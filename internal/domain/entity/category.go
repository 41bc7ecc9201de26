package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryType represents the type of category.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "INCOME"
	CategoryTypeExpense CategoryType = "EXPENSE"
)

// IsValid reports whether the category type is known.
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// CategoryTypeFor returns the category type matching a transaction type.
// Card expenses and transfers are treated as expenses.
func CategoryTypeFor(t TransactionType) CategoryType {
	if t == TransactionTypeIncome {
		return CategoryTypeIncome
	}
	return CategoryTypeExpense
}

// CategorySource tells where a resolved category came from.
type CategorySource string

const (
	CategorySourceBuiltin     CategorySource = "builtin"
	CategorySourceUserDefined CategorySource = "user_defined"
	CategorySourceUnknown     CategorySource = "unknown"
)

// UncategorizedName is the display name for missing or unknown categories.
const UncategorizedName = "Uncategorized"

// MaxCategoryNameLength is the maximum length of a category name.
const MaxCategoryNameLength = 50

// Category represents a user-defined transaction category.
// Value is the optional monthly target for the category.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      CategoryType
	Value     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(userID uuid.UUID, name string, categoryType CategoryType, value decimal.Decimal) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Type:      categoryType,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// builtinNamespace seeds the deterministic ids of built-in categories.
var builtinNamespace = uuid.MustParse("6f1d2c0e-5b7a-4c1e-9a57-3f0b8d2e4a11")

// BuiltinCategoryID returns the stable id of the built-in category with slug.
func BuiltinCategoryID(slug string) uuid.UUID {
	return uuid.NewSHA1(builtinNamespace, []byte("moneyflow:category:"+slug))
}

// BuiltinCategory is a category shipped with the application and shared by all users.
type BuiltinCategory struct {
	ID   uuid.UUID
	Slug string
	Name string
	Type CategoryType
}

var builtinCatalog = []BuiltinCategory{
	{Slug: "food", Name: "Food", Type: CategoryTypeExpense},
	{Slug: "housing", Name: "Housing", Type: CategoryTypeExpense},
	{Slug: "transport", Name: "Transport", Type: CategoryTypeExpense},
	{Slug: "health", Name: "Health", Type: CategoryTypeExpense},
	{Slug: "education", Name: "Education", Type: CategoryTypeExpense},
	{Slug: "leisure", Name: "Leisure", Type: CategoryTypeExpense},
	{Slug: "shopping", Name: "Shopping", Type: CategoryTypeExpense},
	{Slug: "services", Name: "Services", Type: CategoryTypeExpense},
	{Slug: "other-expenses", Name: "Other expenses", Type: CategoryTypeExpense},
	{Slug: "salary", Name: "Salary", Type: CategoryTypeIncome},
	{Slug: "investments", Name: "Investments", Type: CategoryTypeIncome},
	{Slug: "freelance", Name: "Freelance", Type: CategoryTypeIncome},
	{Slug: "other-income", Name: "Other income", Type: CategoryTypeIncome},
}

var builtinByID map[uuid.UUID]BuiltinCategory

func init() {
	builtinByID = make(map[uuid.UUID]BuiltinCategory, len(builtinCatalog))
	for i := range builtinCatalog {
		builtinCatalog[i].ID = BuiltinCategoryID(builtinCatalog[i].Slug)
		builtinByID[builtinCatalog[i].ID] = builtinCatalog[i]
	}
}

// LookupBuiltinCategory returns the built-in category with id, if any.
func LookupBuiltinCategory(id uuid.UUID) (BuiltinCategory, bool) {
	c, ok := builtinByID[id]
	return c, ok
}

// BuiltinCategories returns a copy of the catalog in display order.
func BuiltinCategories() []BuiltinCategory {
	out := make([]BuiltinCategory, len(builtinCatalog))
	copy(out, builtinCatalog)
	return out
}
