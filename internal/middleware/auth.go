package middleware

import (
	"net/http"
	"strings"

	"tally/config"
	"tally/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and sets operator identity in context.
func AuthRequired(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set("operator_id", claims.OperatorID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// GetOperatorID returns the authenticated operator ID (after AuthRequired).
func GetOperatorID(c *gin.Context) uint {
	v, _ := c.Get("operator_id")
	if v == nil {
		return 0
	}
	return v.(uint)
}
