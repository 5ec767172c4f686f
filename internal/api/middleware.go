// middleware.go - Bearer token authentication for protected routes.

package api

import (
	"net/http"
	"strings"

	"github.com/agrisense/farm_assist_gemini/internal/storage"
	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// AuthMiddleware resolves the Authorization bearer token to a user id and
// aborts with 401 when the token is missing or unknown.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header must be 'Bearer <token>'",
			})
			return
		}

		session, err := storage.GetAuthSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		c.Set(userIDKey, session.UserID)
		c.Next()
	}
}

// currentUserID returns the authenticated user id set by AuthMiddleware.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
