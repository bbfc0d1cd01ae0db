package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"fuel-quota-service/internal/domain/auth"
	"fuel-quota-service/internal/handler/httperr"
	"fuel-quota-service/internal/pkg/errs"
	"fuel-quota-service/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const ctxPrincipalKey = "principal"

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		principal, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			// Expired sessions get a machine-readable code so station
			// terminals can re-authenticate instead of surfacing an error.
			if errs.Is(err, errs.ErrSessionExpired) {
				httperr.AbortWithCode(c, http.StatusUnauthorized, err, "SESSION_EXPIRED", "Session expired, please re-authenticate")
				return
			}
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			c.Abort()
			return
		}

		c.Set(ctxPrincipalKey, principal)
		c.Set("jwt_claims", map[string]any{
			"subject_id": principal.SubjectID.String(),
			"role":       principal.Role.String(),
		})
		c.Next()
	}
}

// RequireCapability must run after RequireAuth.
func (m *AuthMiddleware) RequireCapability(cap auth.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !principal.Role.Can(cap) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetPrincipal(c *gin.Context) (*usecase.Principal, bool) {
	v, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return nil, false
	}

	principal, ok := v.(*usecase.Principal)
	return principal, ok
}
