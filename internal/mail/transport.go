package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/ashcraft-tech/contact-api/internal/config"
	"github.com/ashcraft-tech/contact-api/internal/logging"
)

// ErrDispatch wraps every failure to hand a message to the provider.
var ErrDispatch = errors.New("mail dispatch failed")

// Transport delivers an Envelope to an email provider.
type Transport interface {
	Send(ctx context.Context, env Envelope) error
	Name() string
}

// NullTransport logs the envelope instead of sending it. It is selected
// when no provider credentials are configured.
type NullTransport struct{}

func (NullTransport) Send(_ context.Context, env Envelope) error {
	logging.GetGlobalLogger().Info("Mail transport not configured, logging submission only: to=%s reply_to=%s subject=%q\n%s",
		env.To, env.ReplyTo, env.Subject, env.TextBody)
	return nil
}

func (NullTransport) Name() string {
	return config.TransportLog
}

// NewTransport builds the transport named by name from cfg. name is
// normally config.Config.ResolveTransport().
func NewTransport(name string, cfg config.MailConfig) (Transport, error) {
	switch name {
	case config.TransportMailtrap:
		if cfg.MailtrapToken == "" {
			return nil, fmt.Errorf("%w: MAILTRAP_TOKEN is required for the mailtrap transport", config.ErrInvalidConfig)
		}
		return NewMailtrapTransport(cfg.MailtrapAPIURL, cfg.MailtrapToken, cfg.Timeout), nil
	case config.TransportSMTP:
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("%w: SMTP_HOST is required for the smtp transport", config.ErrInvalidConfig)
		}
		return NewSMTPTransport(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			StartTLS: cfg.SMTPStartTLS,
		}), nil
	case config.TransportTelegram:
		if cfg.TelegramBotToken == "" || cfg.TelegramChatID == "" {
			return nil, fmt.Errorf("%w: TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required for the telegram transport", config.ErrInvalidConfig)
		}
		return NewTelegramTransport(cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramChatID, cfg.Timeout), nil
	case config.TransportLog, "":
		return NullTransport{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown mail transport %q", config.ErrInvalidConfig, name)
	}
}
