// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

// PrincipalKey is the context key for the authenticated principal.
const PrincipalKey ContextKey = "principal"

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, domainerror.ErrCodeMissingToken, "Cabecalho Authorization ausente")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, domainerror.ErrCodeInvalidToken, "Formato do cabecalho Authorization invalido")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			abortUnauthorized(c, domainerror.ErrCodeMissingToken, "Token ausente")
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, domainerror.ErrCodeInvalidToken, "Token invalido ou expirado")
			return
		}

		c.Set(string(PrincipalKey), claims.Principal())
		c.Next()
	}
}

// GetPrincipal returns the authenticated principal, or the zero Principal
// when the request did not pass through Authenticate.
func GetPrincipal(c *gin.Context) entity.Principal {
	value, exists := c.Get(string(PrincipalKey))
	if !exists {
		return entity.Principal{}
	}
	principal, _ := value.(entity.Principal)
	return principal
}

func abortUnauthorized(c *gin.Context, code domainerror.Code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Envelope{
		Title:   "Nao autorizado",
		Message: string(code) + ": " + message,
		Error:   true,
	})
}
