package routes

import (
	"github.com/ashcraft-tech/contact-api/internal/api/middleware"
	"github.com/ashcraft-tech/contact-api/internal/logging"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	logger := m.logger()

	SetupHealthRoutes(router, h.Health)

	api := router.Group("/api")
	SetupContactRoutes(api, h.Contact, m)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, m *Middleware) {
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	if m.ServiceName != "" {
		router.Use(otelgin.Middleware(m.ServiceName))
	}
	router.Use(middleware.RequestLogger(m.logger(), m.LogRequests))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(m.AllowedOrigins))
	if m.GlobalRPS > 0 {
		router.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
			RPS:   m.GlobalRPS,
			Burst: m.GlobalBurst,
		}))
	}
}

func (m *Middleware) logger() *logging.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return logging.GetGlobalLogger()
}
