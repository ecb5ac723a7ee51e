package routes

import (
	"github.com/ashcraft-tech/contact-api/internal/api/handlers"
	"github.com/ashcraft-tech/contact-api/internal/logging"
	"github.com/ashcraft-tech/contact-api/internal/ratelimit"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// Middleware contains the settings shared by the middleware chains
type Middleware struct {
	Limiter        *ratelimit.Limiter
	AllowedOrigins []string
	MaxBodyBytes   int64
	GlobalRPS      int
	GlobalBurst    int
	LogRequests    bool
	ServiceName    string
	Logger         *logging.Logger
}
