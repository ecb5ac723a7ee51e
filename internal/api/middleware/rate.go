package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ashcraft-tech/contact-api/internal/api/constants"
	"github.com/ashcraft-tech/contact-api/internal/api/dto/common"
	"github.com/ashcraft-tech/contact-api/internal/logging"
	"github.com/ashcraft-tech/contact-api/internal/ratelimit"
	"github.com/ashcraft-tech/contact-api/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the global throttle
type RateLimitConfig struct {
	// Requests per second
	RPS int
	// Burst size (number of requests that can be made in a single burst)
	Burst int
}

// RateLimitMiddleware is a coarse process-wide throttle on POSTs shared by
// every client. It is opt-in; per-client quotas are enforced by
// SubmissionLimit.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(config.RPS), config.Burst)

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				common.NewErrorResponse("Rate limit exceeded. Please try again later."))
			return
		}

		c.Next()
	}
}

// TooManySubmissionsMessage renders the 429 text for a rejected decision
func TooManySubmissionsMessage(d ratelimit.Decision) string {
	minutes := d.RetryMinutes()
	unit := "minute"
	if minutes > 1 {
		unit = "minutes"
	}
	return fmt.Sprintf("Too many submissions. Please try again in %d %s.", minutes, unit)
}

// SubmissionLimit enforces the per-client submission quota. It runs first
// in the contact pipeline, before the body is even read.
func SubmissionLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := utils.GetRealIP(c)
		c.Set(constants.ContextKeyClientID, clientID)

		d := limiter.Allow(clientID)
		c.Set(constants.ContextKeyRateLimit, d)

		c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

		if !d.Allowed {
			c.Header("Retry-After", strconv.Itoa(d.RetryAfterSeconds()))
			logging.GetGlobalLogger().Warn("Contact rate limit hit for %s, resets in %s", clientID, d.ResetIn)
			utils.HandleClientError(c, http.StatusTooManyRequests, TooManySubmissionsMessage(d))
			return
		}

		c.Next()
	}
}
