package utils

import (
	"net/http"

	"github.com/ashcraft-tech/contact-api/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// HandleSuccess sends a success response with data
func HandleSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(message, data))
}

// HandleMessage sends a success response with just a message
func HandleMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, common.NewMessageResponse(message))
}

// HandleClientError sends a 4xx response whose message is meant for the visitor
func HandleClientError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, common.NewErrorResponse(message))
}

// HandleNoContent sends a success response with no content
func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
