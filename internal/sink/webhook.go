package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Webhook is the fallback durable-log transport: a generic JSON POST
// mirroring the log row, used only when the primary append fails.
type Webhook struct {
	url        string
	httpClient *http.Client
}

// NewWebhook creates the fallback transport.
func NewWebhook(url string) *Webhook {
	return &Webhook{
		url:        url,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

func (w *Webhook) Name() string { return "webhook" }

// AppendRow posts {"rows": [row]} and expects {"ok": true}.
func (w *Webhook) AppendRow(ctx context.Context, row []string) error {
	payload, err := json.Marshal(map[string]any{"rows": [][]string{row}})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode webhook response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !out.OK {
		return fmt.Errorf("webhook append failed: status %d", resp.StatusCode)
	}

	return nil
}
