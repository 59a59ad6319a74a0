package middleware

import (
	"net/http"
	"strings"

	"tasktrack/internal/auth"

	"github.com/gin-gonic/gin"
)

// OwnerGuard checks an optional Authorization header against the
// :username path parameter. Requests without a token pass through (the
// boundary predates tokens); a present token must be valid and issued
// for the path owner.
func OwnerGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		username, err := auth.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if username != c.Param("username") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token does not match owner"})
			return
		}

		c.Next()
	}
}
