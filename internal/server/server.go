package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ashcraft-tech/contact-api/internal/antispam"
	"github.com/ashcraft-tech/contact-api/internal/api/handlers"
	"github.com/ashcraft-tech/contact-api/internal/captcha"
	"github.com/ashcraft-tech/contact-api/internal/config"
	"github.com/ashcraft-tech/contact-api/internal/logging"
	"github.com/ashcraft-tech/contact-api/internal/mail"
	"github.com/ashcraft-tech/contact-api/internal/ratelimit"
	"github.com/ashcraft-tech/contact-api/internal/server/routes"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config

	verifier   captcha.Verifier
	transport  mail.Transport
	store      ratelimit.Store
	now        func() time.Time
	limiter    *ratelimit.Limiter
	dispatcher *mail.Dispatcher
}

// NewServer creates a new server instance and resolves its strategies from
// cfg. Options take precedence over configuration.
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalidConfig)
	}

	s := &Server{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if s.verifier == nil {
		s.verifier = captcha.New(captcha.RecaptchaConfig{
			Secret:    cfg.Captcha.Secret,
			VerifyURL: cfg.Captcha.VerifyURL,
			MinScore:  cfg.Captcha.MinScore,
			Timeout:   cfg.Captcha.Timeout,
		})
	}
	if s.transport == nil {
		transport, err := mail.NewTransport(cfg.ResolveTransport(), cfg.Mail)
		if err != nil {
			return nil, err
		}
		s.transport = transport
	}
	if s.store == nil {
		s.store = ratelimit.NewMemoryStore()
	}

	s.limiter = ratelimit.NewLimiter(s.store, ratelimit.Policy{
		Ceiling: cfg.RateLimit.Max,
		Window:  cfg.RateLimit.Window,
	}, ratelimit.WithClock(s.now))

	s.dispatcher = mail.NewDispatcher(s.transport, mail.Sender{
		From:     cfg.Mail.From,
		FromName: cfg.Mail.FromName,
		To:       cfg.Mail.To,
	}, cfg.Mail.Timeout)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	s.router = gin.New()
	return s, nil
}

// Init registers middleware and routes
func (s *Server) Init() error {
	logger := logging.GetGlobalLogger()

	m := &routes.Middleware{
		Limiter:        s.limiter,
		AllowedOrigins: s.cfg.AllowedOrigins,
		MaxBodyBytes:   s.cfg.MaxBodyBytes,
		GlobalRPS:      s.cfg.GlobalRPS,
		GlobalBurst:    s.cfg.GlobalBurst,
		LogRequests:    s.cfg.LogRequests,
		ServiceName:    ServiceName,
		Logger:         logger,
	}

	h := &routes.Handlers{
		Contact: handlers.NewContactHandler(
			antispam.NewGate(s.cfg.Spam.MinFillTime),
			s.verifier,
			s.dispatcher,
			handlers.WithNow(s.now),
		),
		Health: handlers.NewHealthHandler(s.transport.Name(), s.verifier.Name()),
	}

	routes.SetupGlobalMiddleware(s.router, m)
	routes.Setup(s.router, h, m)

	logger.Info("Mail transport: %s, captcha verifier: %s", s.transport.Name(), s.verifier.Name())
	return nil
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Limiter exposes the per-client limiter so the sweep task can share it
func (s *Server) Limiter() *ratelimit.Limiter {
	return s.limiter
}

// Dispatcher exposes the mail dispatcher used by the contact handler
func (s *Server) Dispatcher() *mail.Dispatcher {
	return s.dispatcher
}

// Start serves HTTP until ctx is cancelled, then drains in-flight requests
func (s *Server) Start(ctx context.Context) error {
	logger := logging.GetGlobalLogger()

	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
