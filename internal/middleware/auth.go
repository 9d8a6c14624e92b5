// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/inklight/bookip-backend/internal/i18n"
	"github.com/inklight/bookip-backend/internal/models"
	"github.com/inklight/bookip-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired resolves the caller's wallet principal from a bearer
// token and rejects the request without one.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader("Accept-Language")
		if lang == "" {
			lang = "en"
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthRequired),
			})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthInvalidToken),
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthTokenExpired),
			})
			c.Abort()
			return
		}

		principal, ok := models.NewPrincipal(claims.Principal)
		if !ok || principal.IsZero() {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthInvalidToken),
			})
			c.Abort()
			return
		}

		c.Set("principal", principal.String())
		c.Set("display_name", claims.DisplayName)
		c.Next()
	}
}

// OptionalAuth resolves the principal when a valid token is present and
// lets the request through either way. Payment and read endpoints use
// it; handlers that need a payer identity reject the request themselves.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.Next()
			return
		}

		if principal, ok := models.NewPrincipal(claims.Principal); ok && !principal.IsZero() {
			c.Set("principal", principal.String())
			c.Set("display_name", claims.DisplayName)
		}
		c.Next()
	}
}
