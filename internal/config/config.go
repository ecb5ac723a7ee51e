package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ashcraft-tech/contact-api/internal/config/env"

	caarlosenv "github.com/caarlos0/env/v10"
)

// ErrInvalidConfig is returned when a value parses but makes no sense.
var ErrInvalidConfig = errors.New("invalid configuration")

// Transport names accepted by MAIL_TRANSPORT
const (
	TransportAuto     = "auto"
	TransportMailtrap = "mailtrap"
	TransportSMTP     = "smtp"
	TransportTelegram = "telegram"
	TransportLog      = "log"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string   `env:"ENV" envDefault:"development"`
	Port           string   `env:"API_PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	// Process-wide flood guard, off unless GLOBAL_RPS is set
	GlobalRPS      int      `env:"GLOBAL_RPS" envDefault:"0"`
	GlobalBurst    int      `env:"GLOBAL_BURST" envDefault:"20"`
	MaxBodyBytes   int64    `env:"MAX_BODY_BYTES" envDefault:"65536"`

	// Logging Configuration
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"` // empty logs to stdout only
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	Captcha   CaptchaConfig
	Mail      MailConfig
	RateLimit RateLimitConfig
	Spam      SpamConfig
}

// CaptchaConfig configures reCAPTCHA verification. An empty secret disables it.
type CaptchaConfig struct {
	Secret    string        `env:"RECAPTCHA_SECRET"`
	VerifyURL string        `env:"RECAPTCHA_VERIFY_URL" envDefault:"https://www.google.com/recaptcha/api/siteverify"`
	MinScore  float64       `env:"RECAPTCHA_MIN_SCORE" envDefault:"0.5"`
	Timeout   time.Duration `env:"CAPTCHA_TIMEOUT" envDefault:"10s"`
}

// MailConfig configures outbound email
type MailConfig struct {
	Transport string        `env:"MAIL_TRANSPORT" envDefault:"auto"`
	To        string        `env:"CONTACT_EMAIL" envDefault:"hello@ashcraft.tech"`
	From      string        `env:"MAIL_FROM" envDefault:"noreply@ashcraft.tech"`
	FromName  string        `env:"MAIL_FROM_NAME" envDefault:"Portfolio Contact Form"`
	Timeout   time.Duration `env:"MAIL_TIMEOUT" envDefault:"15s"`

	MailtrapToken  string `env:"MAILTRAP_TOKEN"`
	MailtrapAPIURL string `env:"MAILTRAP_API_URL" envDefault:"https://send.api.mailtrap.io/api/send"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPStartTLS bool   `env:"SMTP_STARTTLS" envDefault:"true"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `env:"TELEGRAM_CHAT_ID"`
	TelegramAPIURL   string `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`
}

// RateLimitConfig configures the per-client submission window
type RateLimitConfig struct {
	Max           int           `env:"RATE_LIMIT_MAX" envDefault:"5"`
	Window        time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1h"`
	SweepInterval time.Duration `env:"RATE_LIMIT_SWEEP" envDefault:"10m"`
}

// SpamConfig configures the silent anti-spam filters
type SpamConfig struct {
	MinFillTime time.Duration `env:"MIN_FILL_TIME" envDefault:"3s"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	env.LoadEnv()

	cfg := &Config{}
	if err := caarlosenv.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Mail.Transport = strings.ToLower(strings.TrimSpace(cfg.Mail.Transport))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values that would make the pipeline misbehave. Missing
// secrets are not errors: they select the fail-open strategies.
func (c *Config) Validate() error {
	switch c.Mail.Transport {
	case TransportAuto, TransportMailtrap, TransportSMTP, TransportTelegram, TransportLog:
	default:
		return fmt.Errorf("%w: unknown MAIL_TRANSPORT %q", ErrInvalidConfig, c.Mail.Transport)
	}

	if c.RateLimit.Max <= 0 {
		return fmt.Errorf("%w: RATE_LIMIT_MAX must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("%w: RATE_LIMIT_WINDOW must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.SweepInterval <= 0 {
		return fmt.Errorf("%w: RATE_LIMIT_SWEEP must be positive", ErrInvalidConfig)
	}
	if c.Captcha.MinScore < 0 || c.Captcha.MinScore > 1 {
		return fmt.Errorf("%w: RECAPTCHA_MIN_SCORE must be within 0..1", ErrInvalidConfig)
	}
	if c.Spam.MinFillTime < 0 {
		return fmt.Errorf("%w: MIN_FILL_TIME must not be negative", ErrInvalidConfig)
	}
	return nil
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ResolveTransport returns the transport name that MAIL_TRANSPORT=auto
// resolves to, given which credentials are present.
func (c *Config) ResolveTransport() string {
	if c.Mail.Transport != TransportAuto {
		return c.Mail.Transport
	}
	switch {
	case c.Mail.MailtrapToken != "":
		return TransportMailtrap
	case c.Mail.SMTPHost != "":
		return TransportSMTP
	case c.Mail.TelegramBotToken != "" && c.Mail.TelegramChatID != "":
		return TransportTelegram
	default:
		return TransportLog
	}
}
