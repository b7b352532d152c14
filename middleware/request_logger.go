package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"insurance-chatbot-backend/logger"
)

// RequestLogger logs one structured line per request.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Error("HTTP request", fields)
		case c.Writer.Status() >= 400:
			log.Warn("HTTP request", fields)
		default:
			log.Debug("HTTP request", fields)
		}
	}
}
