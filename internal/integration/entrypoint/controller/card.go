package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/moneyflow/internal/application/usecase/bill"
	"github.com/finance-tracker/moneyflow/internal/application/usecase/card"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/middleware"
)

// CardController handles card and bill endpoints.
type CardController struct {
	createUseCase           *card.CreateCardUseCase
	listUseCase             *card.ListCardsUseCase
	updateUseCase           *card.UpdateCardUseCase
	deleteUseCase           *card.DeleteCardUseCase
	listBillsUseCase        *bill.ListBillsUseCase
	billTransactionsUseCase *bill.BillTransactionsUseCase
	payBillUseCase          *bill.PayBillUseCase
}

// NewCardController creates a new card controller instance.
func NewCardController(
	createUseCase *card.CreateCardUseCase,
	listUseCase *card.ListCardsUseCase,
	updateUseCase *card.UpdateCardUseCase,
	deleteUseCase *card.DeleteCardUseCase,
	listBillsUseCase *bill.ListBillsUseCase,
	billTransactionsUseCase *bill.BillTransactionsUseCase,
	payBillUseCase *bill.PayBillUseCase,
) *CardController {
	return &CardController{
		createUseCase:           createUseCase,
		listUseCase:             listUseCase,
		updateUseCase:           updateUseCase,
		deleteUseCase:           deleteUseCase,
		listBillsUseCase:        listBillsUseCase,
		billTransactionsUseCase: billTransactionsUseCase,
		payBillUseCase:          payBillUseCase,
	}
}

// Create handles POST /cards requests. The response carries the two bills opened with the card.
func (c *CardController) Create(ctx *gin.Context) {
	var req dto.CardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), card.CreateCardInput{
		Principal:   middleware.GetPrincipal(ctx),
		Description: req.Description,
		Limit:       req.Limit,
		Flag:        req.Flag,
		ClosingDay:  req.ClosingDay,
		DueDay:      req.DueDay,
		BankInfoID:  req.BankInfoID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := dto.ToCardResponse(output.Card)
	for _, b := range output.Bills {
		response.Bills = append(response.Bills, dto.ToBillResponse(b))
	}
	respondOK(ctx, http.StatusCreated, response, "Cartao criado com sucesso")
}

// List handles GET /cards requests.
func (c *CardController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context(), card.ListCardsInput{
		Principal: middleware.GetPrincipal(ctx),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, dto.ToCardResponses(output.Cards), "")
}

// Update handles PUT /cards/:id requests.
func (c *CardController) Update(ctx *gin.Context) {
	cardID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), card.UpdateCardInput{
		Principal:   middleware.GetPrincipal(ctx),
		CardID:      cardID,
		Description: req.Description,
		Limit:       req.Limit,
		Flag:        req.Flag,
		ClosingDay:  req.ClosingDay,
		DueDay:      req.DueDay,
		BankInfoID:  req.BankInfoID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, dto.ToCardResponse(output.Card), "Cartao atualizado com sucesso")
}

// Delete handles DELETE /cards/:id requests.
func (c *CardController) Delete(ctx *gin.Context) {
	cardID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), card.DeleteCardInput{
		Principal: middleware.GetPrincipal(ctx),
		CardID:    cardID,
	}); err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, nil, "Cartao removido com sucesso")
}

// ListBills handles GET /cards/:id/bills requests.
func (c *CardController) ListBills(ctx *gin.Context) {
	cardID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.listBillsUseCase.Execute(ctx.Request.Context(), bill.ListBillsInput{
		Principal: middleware.GetPrincipal(ctx),
		CardID:    cardID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := dto.ToCardResponse(output.Card)
	response.Bills = dto.ToBillResponses(output.Bills)
	respondOK(ctx, http.StatusOK, response, "")
}

// BillTransactions handles GET /bills/:id/transactions requests.
func (c *CardController) BillTransactions(ctx *gin.Context) {
	billID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.billTransactionsUseCase.Execute(ctx.Request.Context(), bill.BillTransactionsInput{
		Principal: middleware.GetPrincipal(ctx),
		BillID:    billID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, dto.ToBillDetailResponse(output), "")
}

// PayBill handles POST /bills/:id/pay requests.
func (c *CardController) PayBill(ctx *gin.Context) {
	billID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.PayBillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	paidDate, err := dto.ParseDate(req.PaidDate)
	if err != nil {
		respondError(ctx, domainerror.NewBillError(domainerror.ErrCodeInvalidPaidDate, "paidDate must be YYYY-MM-DD", err))
		return
	}

	output, err := c.payBillUseCase.Execute(ctx.Request.Context(), bill.PayBillInput{
		Principal:  middleware.GetPrincipal(ctx),
		BillID:     billID,
		BankInfoID: req.BankInfoID,
		PaidDate:   paidDate,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, dto.PayBillResponse{
		Bill:    dto.ToBillResponse(output.Bill),
		Payment: dto.ToBillTransactionResponse(output.Payment, ""),
	}, "Fatura paga com sucesso")
}
