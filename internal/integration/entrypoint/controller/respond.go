// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/dto"
)

const genericErrorMessage = "Ocorreu um erro inesperado. Tente novamente em instantes."

// kindTitles holds the toast title shown for each error kind.
var kindTitles = map[domainerror.Kind]string{
	domainerror.KindValidation:      "Dados invalidos",
	domainerror.KindNotFound:        "Nao encontrado",
	domainerror.KindUnauthorized:    "Nao autorizado",
	domainerror.KindLimitExceeded:   "Limite do plano atingido",
	domainerror.KindExternalService: "Servico indisponivel",
	domainerror.KindUnknown:         "Erro inesperado",
}

// kindStatus maps error kinds to HTTP status codes.
var kindStatus = map[domainerror.Kind]int{
	domainerror.KindValidation:      http.StatusBadRequest,
	domainerror.KindNotFound:        http.StatusNotFound,
	domainerror.KindUnauthorized:    http.StatusUnauthorized,
	domainerror.KindLimitExceeded:   http.StatusForbidden,
	domainerror.KindExternalService: http.StatusBadGateway,
	domainerror.KindUnknown:         http.StatusInternalServerError,
}

func respondOK(ctx *gin.Context, status int, data interface{}, message string) {
	ctx.JSON(status, dto.Envelope{
		Data:    data,
		Title:   "Sucesso",
		Message: message,
	})
}

func respondError(ctx *gin.Context, err error) {
	domainErr, ok := domainerror.As(err)
	if !ok || domainErr.Kind() == domainerror.KindUnknown {
		slog.Error("Request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(http.StatusInternalServerError, dto.Envelope{
			Title:   kindTitles[domainerror.KindUnknown],
			Message: genericErrorMessage,
			Error:   true,
		})
		return
	}

	kind := domainErr.Kind()
	status := kindStatus[kind]
	if domainErr.Code == domainerror.ErrCodeRateLimited {
		status = http.StatusTooManyRequests
	}

	ctx.JSON(status, dto.Envelope{
		Title:   kindTitles[kind],
		Message: domainErr.Message,
		Error:   true,
	})
}

// respondBindError reports a malformed request body or query.
func respondBindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.Envelope{
		Title:   kindTitles[domainerror.KindValidation],
		Message: "Requisicao invalida: " + err.Error(),
		Error:   true,
	})
}

// parseIDParam parses a uuid path parameter and reports a validation error when malformed.
func parseIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Envelope{
			Title:   kindTitles[domainerror.KindValidation],
			Message: "Identificador invalido: " + name,
			Error:   true,
		})
		return uuid.Nil, false
	}
	return id, true
}
