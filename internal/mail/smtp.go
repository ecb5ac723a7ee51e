package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// SMTPConfig configures an SMTPTransport
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// StartTLS upgrades the connection before authenticating
	StartTLS bool
	// TLSConfig overrides the TLS settings used for STARTTLS
	TLSConfig *tls.Config
}

// SMTPTransport submits mail to an SMTP relay
type SMTPTransport struct {
	cfg SMTPConfig
	now func() time.Time
}

func NewSMTPTransport(cfg SMTPConfig) *SMTPTransport {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPTransport{cfg: cfg, now: time.Now}
}

func (t *SMTPTransport) Name() string {
	return "smtp"
}

func (t *SMTPTransport) addr() string {
	return net.JoinHostPort(t.cfg.Host, strconv.Itoa(t.cfg.Port))
}

// Send dials the relay, optionally upgrades with STARTTLS and
// authenticates with PLAIN, then submits one message. The whole exchange
// is bounded by ctx.
func (t *SMTPTransport) Send(ctx context.Context, env Envelope) error {
	var msg bytes.Buffer
	if err := WriteMIME(&msg, env, t.now()); err != nil {
		return err
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", t.addr())
	if err != nil {
		return fmt.Errorf("failed to connect to smtp relay %s: %w", t.addr(), err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	var c *smtp.Client
	if t.cfg.StartTLS {
		tlsConfig := t.cfg.TLSConfig
		if tlsConfig == nil {
			tlsConfig = &tls.Config{ServerName: t.cfg.Host}
		}
		c, err = smtp.NewClientStartTLS(conn, tlsConfig)
		if err != nil {
			conn.Close()
			return fmt.Errorf("smtp starttls failed: %w", err)
		}
	} else {
		c = smtp.NewClient(conn)
	}
	defer c.Close()

	if t.cfg.Username != "" {
		if err := c.Auth(sasl.NewPlainClient("", t.cfg.Username, t.cfg.Password)); err != nil {
			return fmt.Errorf("smtp auth failed: %w", err)
		}
	}

	if err := c.SendMail(env.From, []string{env.To}, &msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return c.Quit()
}
