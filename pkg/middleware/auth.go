package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/modgate/modgate/internal/tokens"
)

// ModeratorAuth returns a Gin middleware that verifies HS256 Bearer tokens
// signed with the shared secret and requires a "moderator" role claim.
// Verified claims are stored under "claims" for downstream handlers (the rate
// limiter keys on claims.sub when present).
func ModeratorAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		raw, found := strings.CutPrefix(auth, "Bearer ")
		if !found || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		claims, err := tokens.VerifyToken(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "details": err.Error()})
			return
		}
		if role, _ := claims["role"].(string); role != "moderator" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "moderator role required"})
			return
		}

		c.Set("claims", map[string]interface{}(claims))
		c.Next()
	}
}
