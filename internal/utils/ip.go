package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// UnknownClient is the identity used when no proxy header names the client
const UnknownClient = "unknown"

// GetRealIP extracts the client identity from proxy headers. The first
// (leftmost) X-Forwarded-For entry is preferred, then X-Real-IP. Without
// either header every caller shares the "unknown" identity.
func GetRealIP(c *gin.Context) string {
	forwardedFor := c.GetHeader("X-Forwarded-For")
	if forwardedFor != "" {
		// Format: client, proxy1, proxy2, ...
		first, _, _ := strings.Cut(forwardedFor, ",")
		if clientIP := strings.TrimSpace(first); clientIP != "" {
			return clientIP
		}
	}

	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}

	return UnknownClient
}
