package routes

import (
	"github.com/ashcraft-tech/contact-api/internal/api/handlers"
	"github.com/ashcraft-tech/contact-api/internal/api/middleware"
	"github.com/ashcraft-tech/contact-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures contact form routes
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler, m *Middleware) {
	public := router.Group("/contact")
	{
		// The per-client window is counted before the body is read or inspected
		public.POST("",
			middleware.SubmissionLimit(m.Limiter),
			middleware.PreserveRequestBody(m.MaxBodyBytes),
			contact.Submit,
		)
		// Preflight is answered by the CORS middleware; this keeps the route registered
		public.OPTIONS("", utils.HandleNoContent)
	}
}
