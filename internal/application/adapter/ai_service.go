// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// TransactionForAI represents transaction data for AI processing.
type TransactionForAI struct {
	ID          uuid.UUID
	Description string
	Amount      string
	Date        string
	Type        string
}

// CategoryForAI represents category data for AI processing.
type CategoryForAI struct {
	ID   uuid.UUID
	Name string
	Type string
}

// CategorySuggestionRequest represents a request to categorize transactions.
type CategorySuggestionRequest struct {
	UserID       uuid.UUID
	Transactions []*TransactionForAI
	Categories   []*CategoryForAI
}

// CategorySuggestion is the AI's proposed category for one transaction.
type CategorySuggestion struct {
	TransactionID uuid.UUID
	CategoryID    uuid.UUID
	Confidence    float64
	Reasoning     string
}

// CategorySuggestionService defines the interface for AI categorization operations.
type CategorySuggestionService interface {
	// Suggest analyzes transactions and proposes one of the given categories for each.
	Suggest(ctx context.Context, request *CategorySuggestionRequest) ([]*CategorySuggestion, error)

	// IsAvailable checks if the AI service is available and properly configured.
	IsAvailable() bool
}
