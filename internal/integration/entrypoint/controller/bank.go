package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/moneyflow/internal/application/usecase/bank"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/middleware"
)

// BankController handles bank account endpoints.
type BankController struct {
	createUseCase *bank.CreateBankUseCase
	listUseCase   *bank.ListBanksUseCase
	updateUseCase *bank.UpdateBankUseCase
	deleteUseCase *bank.DeleteBankUseCase
}

// NewBankController creates a new bank controller instance.
func NewBankController(
	createUseCase *bank.CreateBankUseCase,
	listUseCase *bank.ListBanksUseCase,
	updateUseCase *bank.UpdateBankUseCase,
	deleteUseCase *bank.DeleteBankUseCase,
) *BankController {
	return &BankController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /banks requests.
func (c *BankController) Create(ctx *gin.Context) {
	var req dto.CreateBankRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), bank.CreateBankInput{
		Principal:       middleware.GetPrincipal(ctx),
		Name:            req.Name,
		Type:            entity.BankAccountType(req.Type),
		InitialBalance:  req.InitialBalance,
		BankInstitution: req.BankInstitution,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusCreated, dto.ToBankResponse(output.BankInfo), "Conta criada com sucesso")
}

// List handles GET /banks requests.
func (c *BankController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context(), bank.ListBanksInput{
		Principal: middleware.GetPrincipal(ctx),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, dto.BankListResponse{
		Banks:        dto.ToBankResponses(output.BankInfos),
		TotalBalance: output.TotalBalance,
	}, "")
}

// Update handles PUT /banks/:id requests.
func (c *BankController) Update(ctx *gin.Context) {
	bankInfoID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateBankRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), bank.UpdateBankInput{
		Principal:       middleware.GetPrincipal(ctx),
		BankInfoID:      bankInfoID,
		Name:            req.Name,
		Type:            entity.BankAccountType(req.Type),
		BankInstitution: req.BankInstitution,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, dto.ToBankResponse(output.BankInfo), "Conta atualizada com sucesso")
}

// Delete handles DELETE /banks/:id requests.
func (c *BankController) Delete(ctx *gin.Context) {
	bankInfoID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), bank.DeleteBankInput{
		Principal:  middleware.GetPrincipal(ctx),
		BankInfoID: bankInfoID,
	}); err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, nil, "Conta removida com sucesso")
}
