package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/threecushion/backend/internal/tables"
)

// TableAuthMiddleware validates a bearer table token and sets table_id in
// the context. On routes with an :id parameter the token must belong to
// that table.
func TableAuthMiddleware(manager *tables.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		token := strings.TrimPrefix(auth, "Bearer ")

		tableID, err := manager.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if id := c.Param("id"); id != "" && id != tableID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token is for another table"})
			return
		}

		c.Set("table_id", tableID)
		c.Next()
	}
}
