package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "test-defaults")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 5, cfg.RateLimit.Max)
	assert.Equal(t, time.Hour, cfg.RateLimit.Window)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.SweepInterval)
	assert.Equal(t, 3*time.Second, cfg.Spam.MinFillTime)
	assert.Equal(t, 0.5, cfg.Captcha.MinScore)
	assert.Equal(t, "hello@ashcraft.tech", cfg.Mail.To)
	assert.Equal(t, TransportAuto, cfg.Mail.Transport)
	assert.Zero(t, cfg.GlobalRPS, "flood guard must be opt-in")
	assert.Empty(t, cfg.LogFile)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "test-overrides")
	t.Setenv("RATE_LIMIT_MAX", "2")
	t.Setenv("RATE_LIMIT_WINDOW", "30m")
	t.Setenv("MIN_FILL_TIME", "5s")
	t.Setenv("MAIL_TRANSPORT", " SMTP ")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.RateLimit.Max)
	assert.Equal(t, 30*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 5*time.Second, cfg.Spam.MinFillTime)
	assert.Equal(t, TransportSMTP, cfg.Mail.Transport)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadRejectsUnknownTransport(t *testing.T) {
	t.Setenv("ENV", "test-invalid")
	t.Setenv("MAIL_TRANSPORT", "pigeon")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Mail:      MailConfig{Transport: TransportAuto},
			RateLimit: RateLimitConfig{Max: 5, Window: time.Hour, SweepInterval: time.Minute},
			Captcha:   CaptchaConfig{MinScore: 0.5},
			Spam:      SpamConfig{MinFillTime: 3 * time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero max", func(c *Config) { c.RateLimit.Max = 0 }, true},
		{"zero window", func(c *Config) { c.RateLimit.Window = 0 }, true},
		{"zero sweep", func(c *Config) { c.RateLimit.SweepInterval = 0 }, true},
		{"score above one", func(c *Config) { c.Captcha.MinScore = 1.5 }, true},
		{"negative fill time", func(c *Config) { c.Spam.MinFillTime = -time.Second }, true},
		{"zero fill time", func(c *Config) { c.Spam.MinFillTime = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolveTransport(t *testing.T) {
	tests := []struct {
		name string
		mail MailConfig
		want string
	}{
		{"explicit wins", MailConfig{Transport: TransportLog, MailtrapToken: "tok"}, TransportLog},
		{"mailtrap first", MailConfig{Transport: TransportAuto, MailtrapToken: "tok", SMTPHost: "smtp.example"}, TransportMailtrap},
		{"smtp next", MailConfig{Transport: TransportAuto, SMTPHost: "smtp.example"}, TransportSMTP},
		{"telegram needs both", MailConfig{Transport: TransportAuto, TelegramBotToken: "bot"}, TransportLog},
		{"telegram", MailConfig{Transport: TransportAuto, TelegramBotToken: "bot", TelegramChatID: "42"}, TransportTelegram},
		{"nothing configured", MailConfig{Transport: TransportAuto}, TransportLog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Mail: tt.mail}
			assert.Equal(t, tt.want, cfg.ResolveTransport())
		})
	}
}
