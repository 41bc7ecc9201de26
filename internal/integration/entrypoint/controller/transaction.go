package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/usecase/transaction"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase           *transaction.ListTransactionsUseCase
	createUseCase         *transaction.CreateTransactionUseCase
	updateUseCase         *transaction.UpdateTransactionUseCase
	deleteUseCase         *transaction.DeleteTransactionUseCase
	bulkDeleteUseCase     *transaction.BulkDeleteTransactionsUseCase
	bulkCategorizeUseCase *transaction.BulkCategorizeTransactionsUseCase
	suggestUseCase        *transaction.SuggestCategoriesUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	bulkDeleteUseCase *transaction.BulkDeleteTransactionsUseCase,
	bulkCategorizeUseCase *transaction.BulkCategorizeTransactionsUseCase,
	suggestUseCase *transaction.SuggestCategoriesUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:           listUseCase,
		createUseCase:         createUseCase,
		updateUseCase:         updateUseCase,
		deleteUseCase:         deleteUseCase,
		bulkDeleteUseCase:     bulkDeleteUseCase,
		bulkCategorizeUseCase: bulkCategorizeUseCase,
		suggestUseCase:        suggestUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	var query dto.ListTransactionsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindError(ctx, err)
		return
	}

	input := transaction.ListTransactionsInput{
		Principal: middleware.GetPrincipal(ctx),
		Page:      query.Page,
		Limit:     query.Limit,
	}
	if query.Type != "" {
		txnType := entity.TransactionType(query.Type)
		input.Type = &txnType
	}

	var err error
	if input.StartDate, err = dto.ParseOptionalDate(query.StartDate); err != nil {
		respondError(ctx, invalidDate(err))
		return
	}
	if input.EndDate, err = dto.ParseOptionalDate(query.EndDate); err != nil {
		respondError(ctx, invalidDate(err))
		return
	}
	for _, filter := range []struct {
		value  string
		target **uuid.UUID
	}{
		{query.CategoryID, &input.CategoryID},
		{query.BankInfoID, &input.BankInfoID},
		{query.CardID, &input.CardID},
	} {
		if filter.value == "" {
			continue
		}
		id, err := uuid.Parse(filter.value)
		if err != nil {
			respondBindError(ctx, err)
			return
		}
		*filter.target = &id
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, dto.TransactionListResponse{
		Transactions: dto.ToTransactionResponses(output.Transactions),
		Pagination: dto.PaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
	}, "")
}

// Create handles POST /transactions requests.
// A repeated transaction answers with every booked occurrence.
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	fields, err := toFields(req.TransactionRequest)
	if err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		Principal:         middleware.GetPrincipal(ctx),
		Fields:            fields,
		Repeat:            req.Repeat,
		NumberRepetitions: req.NumberRepetitions,
		RepetitionPeriod:  entity.RepetitionPeriod(req.RepetitionPeriod),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusCreated, dto.ToTransactionResponses(output.Transactions), "Transacao criada com sucesso")
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	transactionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	fields, err := toFields(req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), transaction.UpdateTransactionInput{
		Principal:     middleware.GetPrincipal(ctx),
		TransactionID: transactionID,
		Fields:        fields,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, dto.ToTransactionResponse(output.Transaction), "Transacao atualizada com sucesso")
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	transactionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		Principal:     middleware.GetPrincipal(ctx),
		TransactionID: transactionID,
	}); err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, nil, "Transacao removida com sucesso")
}

// BulkDelete handles POST /transactions/bulk-delete requests.
func (c *TransactionController) BulkDelete(ctx *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	output, err := c.bulkDeleteUseCase.Execute(ctx.Request.Context(), transaction.BulkDeleteTransactionsInput{
		Principal:      middleware.GetPrincipal(ctx),
		TransactionIDs: req.TransactionIDs,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, dto.CountResponse{Count: output.DeletedCount}, "Transacoes removidas com sucesso")
}

// BulkCategorize handles POST /transactions/bulk-categorize requests.
func (c *TransactionController) BulkCategorize(ctx *gin.Context) {
	var req dto.BulkCategorizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	output, err := c.bulkCategorizeUseCase.Execute(ctx.Request.Context(), transaction.BulkCategorizeTransactionsInput{
		Principal:      middleware.GetPrincipal(ctx),
		TransactionIDs: req.TransactionIDs,
		CategoryID:     req.CategoryID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, dto.CountResponse{Count: output.UpdatedCount}, "Transacoes categorizadas com sucesso")
}

// SuggestCategories handles GET /transactions/category-suggestions requests.
func (c *TransactionController) SuggestCategories(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(transaction.DefaultSuggestionLimit)))
	if err != nil {
		respondBindError(ctx, err)
		return
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), transaction.SuggestCategoriesInput{
		Principal: middleware.GetPrincipal(ctx),
		Limit:     limit,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, dto.ToSuggestionResponses(output.Suggestions), "")
}

func toFields(req dto.TransactionRequest) (transaction.Fields, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return transaction.Fields{}, invalidDate(err)
	}
	return transaction.Fields{
		Type:                  entity.TransactionType(req.Type),
		Status:                entity.TransactionStatus(req.Status),
		Amount:                req.Amount,
		Description:           req.Description,
		Date:                  date,
		CategoryID:            req.CategoryID,
		BankInfoID:            req.BankInfoID,
		DestinationBankInfoID: req.DestinationBankInfoID,
		CardID:                req.CardID,
		IsFixed:               req.IsFixed,
	}, nil
}

func invalidDate(err error) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeInvalidTransactionDate,
		"dates must be YYYY-MM-DD",
		err,
	)
}
