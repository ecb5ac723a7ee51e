package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultMailtrapURL is Mailtrap's transactional send endpoint
const DefaultMailtrapURL = "https://send.api.mailtrap.io/api/send"

// MailtrapTransport sends through Mailtrap's HTTP API
type MailtrapTransport struct {
	apiURL string
	token  string
	client *http.Client
}

func NewMailtrapTransport(apiURL, token string, timeout time.Duration) *MailtrapTransport {
	if apiURL == "" {
		apiURL = DefaultMailtrapURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &MailtrapTransport{
		apiURL: apiURL,
		token:  token,
		client: &http.Client{Timeout: timeout},
	}
}

func (t *MailtrapTransport) Name() string {
	return "mailtrap"
}

type mailtrapAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type mailtrapMessage struct {
	From     mailtrapAddress   `json:"from"`
	To       []mailtrapAddress `json:"to"`
	Subject  string            `json:"subject"`
	HTML     string            `json:"html"`
	Text     string            `json:"text"`
	Headers  map[string]string `json:"headers,omitempty"`
	Category string            `json:"category,omitempty"`
}

func (t *MailtrapTransport) Send(ctx context.Context, env Envelope) error {
	payload := mailtrapMessage{
		From:     mailtrapAddress{Email: env.From, Name: env.FromName},
		To:       []mailtrapAddress{{Email: env.To}},
		Subject:  env.Subject,
		HTML:     env.HTMLBody,
		Text:     env.TextBody,
		Category: "contact-form",
	}
	if env.ReplyTo != "" {
		payload.Headers = map[string]string{"Reply-To": env.ReplyTo}
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal mailtrap message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create mailtrap request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.token)

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send mailtrap message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mailtrap API returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	return nil
}
