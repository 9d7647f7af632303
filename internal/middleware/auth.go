package middleware

import (
	"net/http"
	"strings"

	"github.com/aurelhaus/backend/internal/models"
	"github.com/aurelhaus/backend/internal/services"
	"github.com/gin-gonic/gin"
)

// Context keys set by Auth for downstream handlers.
const (
	ContextUserID = "userID"
	ContextToken  = "token"
)

// Auth requires a valid Bearer session token and puts the user ID and raw
// token on the request context.
func Auth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := authService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextToken, token)
		c.Next()
	}
}

// AdminOnly requires the authenticated user to be the designated admin
// (the first account created). Composed after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(ContextUserID)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		if userID.(uint) != models.AdminUserID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		c.Next()
	}
}
