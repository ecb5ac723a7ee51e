package server

import (
	"time"

	"github.com/ashcraft-tech/contact-api/internal/captcha"
	"github.com/ashcraft-tech/contact-api/internal/mail"
	"github.com/ashcraft-tech/contact-api/internal/ratelimit"
)

// ServiceName identifies the process in traces and logs
const ServiceName = "contact-api"

// Option overrides a dependency the server would otherwise build from config
type Option func(*Server)

// WithVerifier replaces the captcha strategy chosen from RECAPTCHA_SECRET
func WithVerifier(v captcha.Verifier) Option {
	return func(s *Server) {
		s.verifier = v
	}
}

// WithTransport replaces the mail transport chosen from MAIL_TRANSPORT
func WithTransport(t mail.Transport) Option {
	return func(s *Server) {
		s.transport = t
	}
}

// WithStore replaces the in-memory rate-limit store
func WithStore(store ratelimit.Store) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithClock replaces the clock used by the limiter and the timing check
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}
