package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/ashcraft-tech/contact-api/internal/api/constants"
	"github.com/ashcraft-tech/contact-api/internal/api/dto/common"
	"github.com/ashcraft-tech/contact-api/internal/logging"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic in any later handler into the generic 500 so one
// bad request can never take the process down.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logging.GetGlobalLogger().Error("[PANIC] %s %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.GetString(constants.ContextKeyRequestID),
					fmt.Sprint(err),
					debug.Stack(),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					common.NewErrorResponse(common.MessageUnexpected))
			}
		}()

		c.Next()
	}
}
