package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserAuth validates the session token and injects the userId into the
// context. The token cookie is preferred; a Bearer header is accepted for
// API clients.
func UserAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(TokenCookie)
		if err != nil || strings.TrimSpace(raw) == "" {
			raw = bearerToken(c.GetHeader("Authorization"))
		}
		if raw == "" {
			log.Println("[AUTH] [ERROR] missing token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
			return
		}

		userID, err := ParseToken(raw, secret)
		if err != nil {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		c.Set("userId", userID)
		c.Next()
	}
}
