package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/finance-tracker/moneyflow/config"
	"github.com/finance-tracker/moneyflow/internal/application/adapter"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiService implements adapter.CategorySuggestionService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(cfg config.GeminiConfig) *GeminiService {
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	return &GeminiService{
		apiKey:    cfg.APIKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Suggest asks the model to pick one of the given categories for each transaction.
func (s *GeminiService) Suggest(ctx context.Context, request *adapter.CategorySuggestionRequest) ([]*adapter.CategorySuggestion, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}
	if len(request.Transactions) == 0 || len(request.Categories) == 0 {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildSuggestionPrompt(request)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	suggestions, err := parseSuggestions(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return suggestions, nil
}

func buildSuggestionPrompt(request *adapter.CategorySuggestionRequest) string {
	var sb strings.Builder

	sb.WriteString(`Voce e um especialista em categorizacao de transacoes financeiras pessoais.
Para cada transacao abaixo, escolha a categoria mais adequada SOMENTE entre as categorias listadas.
Transacoes de receita (income) so podem receber categorias INCOME; as demais, categorias EXPENSE.
Se nenhuma categoria for adequada, omita a transacao da resposta.

CATEGORIAS:
`)
	for _, c := range request.Categories {
		fmt.Fprintf(&sb, "- ID: %s, Name: %s, Type: %s\n", c.ID, c.Name, c.Type)
	}

	sb.WriteString("\nTRANSACOES:\n")
	for _, tx := range request.Transactions {
		fmt.Fprintf(&sb, "- ID: %s, Description: %q, Amount: %s, Date: %s, Type: %s\n",
			tx.ID, tx.Description, tx.Amount, tx.Date, tx.Type)
	}

	sb.WriteString(`
Responda apenas com um array JSON, sem texto adicional, no formato:
[{"transaction_id": "uuid", "category_id": "uuid", "confidence": 0.0-1.0, "reasoning": "breve explicacao em Portugues"}]
`)
	return sb.String()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && text != "" {
			return string(text), nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}

// geminiSuggestion represents the raw response from Gemini.
type geminiSuggestion struct {
	TransactionID string  `json:"transaction_id"`
	CategoryID    string  `json:"category_id"`
	Confidence    float64 `json:"confidence"`
	Reasoning     string  `json:"reasoning"`
}

// parseSuggestions decodes the model output. Entries with malformed ids are skipped.
func parseSuggestions(text string) ([]*adapter.CategorySuggestion, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw []geminiSuggestion
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	suggestions := make([]*adapter.CategorySuggestion, 0, len(raw))
	for _, r := range raw {
		txID, err := uuid.Parse(r.TransactionID)
		if err != nil {
			continue
		}
		categoryID, err := uuid.Parse(r.CategoryID)
		if err != nil {
			continue
		}

		confidence := r.Confidence
		switch {
		case confidence < 0:
			confidence = 0
		case confidence > 1:
			confidence = 1
		}

		suggestions = append(suggestions, &adapter.CategorySuggestion{
			TransactionID: txID,
			CategoryID:    categoryID,
			Confidence:    confidence,
			Reasoning:     r.Reasoning,
		})
	}
	return suggestions, nil
}
