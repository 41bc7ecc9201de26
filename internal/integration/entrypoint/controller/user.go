package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/moneyflow/internal/application/usecase/auth"
	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/dto"
)

// UserController handles user registration.
type UserController struct {
	registerUseCase *auth.RegisterUserUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(registerUseCase *auth.RegisterUserUseCase) *UserController {
	return &UserController{
		registerUseCase: registerUseCase,
	}
}

// Register handles POST /user requests.
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusCreated, dto.ToUserResponse(output.User), "Usuario criado com sucesso")
}
