package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/ashcraft-tech/contact-api/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodySize comfortably fits the largest valid submission
const DefaultMaxBodySize int64 = 64 * 1024

// PreserveRequestBody reads a POST body once, rejects it when it is larger
// than maxBodySize, and restores it for the handler.
func PreserveRequestBody(maxBodySize int64) gin.HandlerFunc {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}

	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		bodyBytes, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize+1))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, common.NewErrorResponse("Error reading request body"))
			return
		}

		if int64(len(bodyBytes)) > maxBodySize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.NewErrorResponse("Request body too large"))
			return
		}

		// Restore the body for subsequent middleware
		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		c.Next()
	}
}
