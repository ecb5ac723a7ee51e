package middleware

import (
	"time"

	"github.com/ashcraft-tech/contact-api/internal/logging"
	"github.com/ashcraft-tech/contact-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request when enabled (LOG_REQUESTS=true)
func RequestLogger(logger *logging.Logger, enabled bool) gin.HandlerFunc {
	// If logging is disabled, return a no-op middleware
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.LogHTTPRequest(
			method,
			path,
			utils.GetRealIP(c),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
