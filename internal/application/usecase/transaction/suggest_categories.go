package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

const (
	// DefaultSuggestionLimit is the number of transactions sent when no limit is given.
	DefaultSuggestionLimit = 20
	// MaxSuggestionLimit caps the transactions sent in one request.
	MaxSuggestionLimit = 50
)

// SuggestCategoriesInput represents the input for category suggestions.
type SuggestCategoriesInput struct {
	Principal entity.Principal
	Limit     int
}

// CategorySuggestionOutput is a proposed category for one transaction.
type CategorySuggestionOutput struct {
	TransactionID uuid.UUID
	Description   string
	CategoryID    uuid.UUID
	CategoryName  string
	Confidence    float64
	Reasoning     string
}

// SuggestCategoriesOutput represents the output of category suggestions.
type SuggestCategoriesOutput struct {
	Suggestions []*CategorySuggestionOutput
}

// SuggestCategoriesUseCase proposes categories for uncategorized transactions.
type SuggestCategoriesUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	suggester       adapter.CategorySuggestionService
}

// NewSuggestCategoriesUseCase creates a new SuggestCategoriesUseCase instance.
func NewSuggestCategoriesUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	suggester adapter.CategorySuggestionService,
) *SuggestCategoriesUseCase {
	return &SuggestCategoriesUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		suggester:       suggester,
	}
}

// Execute sends the uncategorized transactions with the available categories to
// the suggestion service. Suggestions naming unknown categories or transactions are dropped.
func (uc *SuggestCategoriesUseCase) Execute(ctx context.Context, input SuggestCategoriesInput) (*SuggestCategoriesOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	if uc.suggester == nil || !uc.suggester.IsAvailable() {
		return nil, suggestionsUnavailable(nil)
	}

	limit := input.Limit
	if limit < 1 {
		limit = DefaultSuggestionLimit
	}
	if limit > MaxSuggestionLimit {
		limit = MaxSuggestionLimit
	}

	transactions, err := uc.transactionRepo.FindUncategorized(ctx, input.Principal.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list uncategorized transactions: %w", err)
	}

	output := &SuggestCategoriesOutput{Suggestions: make([]*CategorySuggestionOutput, 0)}
	if len(transactions) == 0 {
		return output, nil
	}

	categories, err := uc.availableCategories(ctx, input.Principal.UserID)
	if err != nil {
		return nil, err
	}

	request := &adapter.CategorySuggestionRequest{
		UserID:       input.Principal.UserID,
		Transactions: make([]*adapter.TransactionForAI, 0, len(transactions)),
		Categories:   make([]*adapter.CategoryForAI, 0, len(categories)),
	}
	byID := make(map[uuid.UUID]*entity.Transaction, len(transactions))
	for _, txn := range transactions {
		byID[txn.ID] = txn
		request.Transactions = append(request.Transactions, &adapter.TransactionForAI{
			ID:          txn.ID,
			Description: txn.Description,
			Amount:      txn.Amount.StringFixed(2),
			Date:        txn.Date.Format("2006-01-02"),
			Type:        string(txn.Type),
		})
	}
	for _, c := range categories {
		request.Categories = append(request.Categories, c)
	}

	suggestions, err := uc.suggester.Suggest(ctx, request)
	if err != nil {
		slog.Warn("Category suggestion failed", "user_id", input.Principal.UserID, "error", err)
		return nil, suggestionsUnavailable(err)
	}

	for _, suggestion := range suggestions {
		txn, ok := byID[suggestion.TransactionID]
		if !ok {
			continue
		}
		c, ok := categories[suggestion.CategoryID]
		if !ok {
			continue
		}
		if c.Type != string(entity.CategoryTypeFor(txn.Type)) {
			continue
		}
		output.Suggestions = append(output.Suggestions, &CategorySuggestionOutput{
			TransactionID: txn.ID,
			Description:   txn.Description,
			CategoryID:    c.ID,
			CategoryName:  c.Name,
			Confidence:    suggestion.Confidence,
			Reasoning:     suggestion.Reasoning,
		})
	}

	return output, nil
}

// availableCategories returns the built-in and user categories keyed by id.
// Built-ins win on id collision.
func (uc *SuggestCategoriesUseCase) availableCategories(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]*adapter.CategoryForAI, error) {
	userCategories, err := uc.categoryRepo.FindByUser(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make(map[uuid.UUID]*adapter.CategoryForAI)
	for _, c := range userCategories {
		categories[c.ID] = &adapter.CategoryForAI{ID: c.ID, Name: c.Name, Type: string(c.Type)}
	}
	for _, builtin := range entity.BuiltinCategories() {
		categories[builtin.ID] = &adapter.CategoryForAI{ID: builtin.ID, Name: builtin.Name, Type: string(builtin.Type)}
	}
	return categories, nil
}

func suggestionsUnavailable(err error) *domainerror.Error {
	if err == nil {
		err = domainerror.ErrSuggestionsUnavailable
	}
	return domainerror.NewBillingError(
		domainerror.ErrCodeSuggestionsUnavailable,
		"category suggestions are not available right now",
		err,
	)
}
