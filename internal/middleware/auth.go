package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"noteapp-api/internal/auth"
)

const UserIDKey = "uid"

// Auth verifies the bearer token and stashes the user id in the gin
// context. Failures get a 401 with the standard challenge header.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// token from Authorization: Bearer <jwt>
		raw := ""
		if h := c.GetHeader("Authorization"); h != "" {
			raw = strings.TrimPrefix(h, "Bearer ")
		}

		if raw == "" {
			challenge(c, "no token")
			return
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			challenge(c, "bad token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

func challenge(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// UserID reads the authenticated user id set by Auth.
func UserID(c *gin.Context) int64 {
	v, _ := c.Get(UserIDKey)
	id, _ := v.(int64)
	return id
}
