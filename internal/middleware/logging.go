// internal/middleware/logging.go
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/inklight/bookip-backend/internal/models"
)

// AuditLogMiddleware persists one row per mutating request. The domain
// event log is separate; this captures the raw HTTP surface.
func AuditLogMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip logging for GET requests and health checks
		if c.Request.Method == "GET" || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		// Read request body
		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		principal := models.ZeroPrincipal
		if raw, exists := c.Get("principal"); exists {
			if s, ok := raw.(string); ok {
				if p, valid := models.NewPrincipal(s); valid {
					principal = p
				}
			}
		}

		var requestData map[string]interface{}
		if len(requestBody) > 0 {
			json.Unmarshal(requestBody, &requestData)
		}

		auditLog := &models.AuditLog{
			RequestID: uuid.New(),
			Actor:     principal,
			Action:    c.Request.Method + " " + c.Request.URL.Path,
			Resource:  extractResource(c.Request.URL.Path),
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Body:      models.JSONB(requestData),
		}

		// Save audit log asynchronously
		if db != nil {
			go func() {
				if err := db.Create(auditLog).Error; err != nil {
					logrus.WithError(err).Error("Failed to create audit log")
				}
			}()
		}

		// Log the request
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.Milliseconds(),
			"ip":        c.ClientIP(),
			"principal": principal,
		}).Info("Request processed")
	}
}

func extractResource(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "v1" {
		return parts[1]
	}
	if len(parts) >= 1 {
		return parts[0]
	}
	return "unknown"
}

func RequestLogger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return ""
	})
}
