package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultTelegramURL is the Bot API base URL
const DefaultTelegramURL = "https://api.telegram.org"

// telegramMaxRunes is the Bot API limit for one message text
const telegramMaxRunes = 4096

// TelegramTransport forwards submissions to a Telegram chat instead of an inbox
type TelegramTransport struct {
	apiURL   string
	botToken string
	chatID   string
	client   *http.Client
}

func NewTelegramTransport(apiURL, botToken, chatID string, timeout time.Duration) *TelegramTransport {
	if apiURL == "" {
		apiURL = DefaultTelegramURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TelegramTransport{
		apiURL:   strings.TrimSuffix(apiURL, "/"),
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: timeout},
	}
}

func (t *TelegramTransport) Name() string {
	return "telegram"
}

// telegramMessage represents a Telegram API message
type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// formatTelegram renders env with the small HTML subset Telegram accepts.
func formatTelegram(env Envelope) string {
	header := fmt.Sprintf("🆕 <b>%s</b>\n<b>Reply-To:</b> %s\n\n", EscapeHTML(env.Subject), EscapeHTML(env.ReplyTo))
	body := env.TextBody

	budget := telegramMaxRunes - utf8.RuneCountInString(header)
	if utf8.RuneCountInString(body) > budget {
		runes := []rune(body)
		body = string(runes[:budget-1]) + "…"
	}
	return header + EscapeHTML(body)
}

func (t *TelegramTransport) Send(ctx context.Context, env Envelope) error {
	payload := telegramMessage{
		ChatID:    t.chatID,
		Text:      formatTelegram(env),
		ParseMode: "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiURL, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}

	return nil
}
