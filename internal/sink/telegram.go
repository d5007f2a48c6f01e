package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmarrero/whalewatch/internal/model"
)

// Notifier delivers the rich-text alert to the notification channel.
type Notifier interface {
	Notify(ctx context.Context, ev model.Event) error
}

// Telegram sends alerts via the Bot API. An unconfigured Telegram (missing
// token or chat id) drops messages with a warning instead of failing, so the
// durable log still runs.
type Telegram struct {
	token      string
	chatID     string
	tag        string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// TelegramOption configures a Telegram notifier.
type TelegramOption func(*Telegram)

// WithTelegramBaseURL overrides the Bot API base URL.
func WithTelegramBaseURL(u string) TelegramOption {
	return func(t *Telegram) {
		t.baseURL = strings.TrimRight(u, "/")
	}
}

// WithTelegramLogger sets the logger.
func WithTelegramLogger(logger *slog.Logger) TelegramOption {
	return func(t *Telegram) {
		t.logger = logger
	}
}

// NewTelegram creates the Telegram notifier. tag, when non-empty, is
// prefixed to every message.
func NewTelegram(token, chatID, tag string, opts ...TelegramOption) *Telegram {
	t := &Telegram{
		token:      token,
		chatID:     chatID,
		tag:        tag,
		baseURL:    "https://api.telegram.org",
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Notify sends one alert message.
func (t *Telegram) Notify(ctx context.Context, ev model.Event) error {
	if t.token == "" || t.chatID == "" {
		t.logger.Warn("telegram not configured, alert not sent", "asset", ev.Asset)
		return nil
	}

	text := t.render(ev)

	payload, err := json.Marshal(map[string]any{
		"chat_id":                  t.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	})
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	url := t.baseURL + "/bot" + t.token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode telegram response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !out.OK {
		return fmt.Errorf("telegram send failed: status %d: %s", resp.StatusCode, out.Description)
	}

	return nil
}

// render builds the HTML message body.
func (t *Telegram) render(ev model.Event) string {
	lines := []string{"🐳🐳🐳 <b>WHALE ALERT</b> 🐳🐳🐳"}

	lines = append(lines,
		"Coin: "+ev.Asset,
		"Source: "+ev.Source.Label(),
		"Action: "+ev.Action,
		fmt.Sprintf("Notional: %s | Size: %s", fmtUSD(ev.NotionalUSD), ev.Size.String()),
	)

	switch {
	case ev.EntryPrice.IsPositive() && ev.MarkPrice.IsPositive():
		lines = append(lines, fmt.Sprintf("Entry: %s | Market Price: %s", fmtUSD(ev.EntryPrice), fmtUSD(ev.MarkPrice)))
	case ev.MarkPrice.IsPositive():
		lines = append(lines, "Market Price: "+fmtUSD(ev.MarkPrice))
	case ev.EntryPrice.IsPositive():
		lines = append(lines, "Entry: "+fmtUSD(ev.EntryPrice))
	default:
		lines = append(lines, "Price: "+fmtUSD(ev.Price))
	}

	if ev.Exchange != "" {
		lines = append(lines, "Exchange: "+ev.Exchange)
	}

	lines = append(lines, "UTC: "+ev.OccurredAt.UTC().Format("2006-01-02 15:04:05"))

	if ev.URL != "" {
		lines = append(lines, fmt.Sprintf(`Transaction: <a href="%s">%s</a>`, ev.URL, shortenURL(ev.URL)))
	}

	text := strings.Join(lines, "\n")
	if t.tag != "" {
		text = t.tag + " " + text
	}
	return text
}
