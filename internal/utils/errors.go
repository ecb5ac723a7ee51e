package utils

import (
	"github.com/ashcraft-tech/contact-api/internal/api/dto/common"
	"github.com/ashcraft-tech/contact-api/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError logs err with request context and answers with
// publicMessage only. err never reaches the client.
func HandleAPIError(c *gin.Context, err error, status int, publicMessage string) {
	logger := logging.GetGlobalLogger()
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		status,
		publicMessage,
		err,
	)

	c.AbortWithStatusJSON(status, common.NewErrorResponse(publicMessage))
}
