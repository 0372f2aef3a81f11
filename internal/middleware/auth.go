package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/scheduling-api/internal/audit"
	"github.com/BruksfildServices01/scheduling-api/internal/config"
	"github.com/BruksfildServices01/scheduling-api/internal/httperr"
)

const (
	ContextOperatorID    = "operatorID"
	ContextOperatorEmail = "operatorEmail"
)

// AuthMiddleware requires a valid operator token. The operator id is also
// placed on the request context so audit events carry it.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Cabeçalho Authorization ausente.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Use Authorization: Bearer <token>.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Token inválido ou expirado.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Token inválido.")
			c.Abort()
			return
		}

		operatorID, ok := claims["sub"].(float64)
		if !ok || operatorID <= 0 {
			httperr.Unauthorized(c, "invalid_token_payload", "Token inválido.")
			c.Abort()
			return
		}
		email, _ := claims["email"].(string)

		c.Set(ContextOperatorID, uint(operatorID))
		c.Set(ContextOperatorEmail, email)
		c.Request = c.Request.WithContext(audit.WithOperator(c.Request.Context(), uint(operatorID)))

		c.Next()
	}
}

// WriteGuard returns the auth middleware when authentication is enabled
// and nil otherwise.
func WriteGuard(cfg *config.Config) gin.HandlerFunc {
	if !cfg.AuthEnabled {
		return nil
	}
	return AuthMiddleware(cfg)
}
