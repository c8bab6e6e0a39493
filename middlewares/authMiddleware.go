package middlewares

import (
	"net/http"
	"strings"

	authUtils "safaisync-be/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminCookie carries the admin session token.
const AdminCookie = "admin_token"

// AdminAuth accepts a bearer token or the admin cookie.
func AdminAuth(jwtSecret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := c.Cookie(AdminCookie); err == nil {
			tokenString = cookie
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided"})
			c.Abort()
			return
		}

		if jwtSecret == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "JWT secret not configured"})
			c.Abort()
			return
		}

		if err := authUtils.ValidateAdminToken(jwtSecret, tokenString); err != nil {
			logger.Info("Admin token validation failed", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token"})
			c.Abort()
			return
		}

		c.Set("role", "admin")
		c.Next()
	}
}
