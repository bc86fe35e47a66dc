package middleware

import (
	"net/http"
	"strings"

	"github.com/anprojects-core/dto"
	"github.com/anprojects-core/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenValidator is the part of the auth service the middleware needs
type TokenValidator interface {
	TokensEnabled() bool
	ValidateToken(tokenString string) (*dto.TokenClaims, error)
}

// AuthMiddleware requires a valid bearer token and stores userId, email,
// role and projects in the context. Without a signing secret every request
// passes as an admin, matching a single-user local deployment.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	if !validator.TokensEnabled() {
		zap.L().Warn("JWT_SECRET not set, data API is running without authentication")
		return func(c *gin.Context) {
			c.Set("role", string(models.RoleAdmin))
			c.Next()
		}
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("projects", claims.Projects)
		c.Next()
	}
}
