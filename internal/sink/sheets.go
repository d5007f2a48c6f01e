package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RowAppender appends one row to a durable-log transport.
type RowAppender interface {
	Name() string
	AppendRow(ctx context.Context, row []string) error
}

// Sheets appends alert rows to a Google Sheets tab through the values API.
// Authentication is an opaque bearer token supplied by configuration.
type Sheets struct {
	spreadsheetID string
	tab           string
	token         string
	baseURL       string
	httpClient    *http.Client
	logger        *slog.Logger

	// headerReady flips after the first successful header check; the
	// pipeline is single-threaded so a plain bool suffices.
	headerReady bool
}

// SheetsOption configures a Sheets appender.
type SheetsOption func(*Sheets)

// WithSheetsBaseURL overrides the Sheets API base URL.
func WithSheetsBaseURL(u string) SheetsOption {
	return func(s *Sheets) {
		s.baseURL = strings.TrimRight(u, "/")
	}
}

// WithSheetsLogger sets the logger.
func WithSheetsLogger(logger *slog.Logger) SheetsOption {
	return func(s *Sheets) {
		s.logger = logger
	}
}

// NewSheets creates the primary durable-log transport.
func NewSheets(spreadsheetID, tab, token string, opts ...SheetsOption) *Sheets {
	s := &Sheets{
		spreadsheetID: spreadsheetID,
		tab:           tab,
		token:         token,
		baseURL:       "https://sheets.googleapis.com",
		httpClient:    &http.Client{Timeout: 20 * time.Second},
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sheets) Name() string { return "sheets" }

// AppendRow appends one row, provisioning the header row first if the sheet
// does not carry one yet. The header check runs once per process, on the
// first append, not on every delivery.
func (s *Sheets) AppendRow(ctx context.Context, row []string) error {
	if !s.headerReady {
		if err := s.ensureHeader(ctx); err != nil {
			return fmt.Errorf("ensure header: %w", err)
		}
		s.headerReady = true
	}

	rng := fmt.Sprintf("%s!A1", s.tab)
	u := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s:append?valueInputOption=RAW",
		s.baseURL, s.spreadsheetID, url.PathEscape(rng))

	return s.call(ctx, http.MethodPost, u, map[string]any{"values": [][]string{row}})
}

// ensureHeader writes the schema header when the first row is absent or
// stale.
func (s *Sheets) ensureHeader(ctx context.Context) error {
	rng := fmt.Sprintf("%s!A1:%c1", s.tab, 'A'+len(RowHeaders)-1)
	u := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s",
		s.baseURL, s.spreadsheetID, url.PathEscape(rng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("read header row: status %d", resp.StatusCode)
	}

	var out struct {
		Values [][]string `json:"values"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode header row: %w", err)
	}

	if len(out.Values) > 0 && headerMatches(out.Values[0]) {
		return nil
	}

	s.logger.Info("provisioning durable-log header row", "tab", s.tab)
	putURL := u + "?valueInputOption=RAW"
	return s.call(ctx, http.MethodPut, putURL, map[string]any{"values": [][]string{RowHeaders}})
}

func headerMatches(got []string) bool {
	if len(got) < len(RowHeaders) {
		return false
	}
	for i, h := range RowHeaders {
		if got[i] != h {
			return false
		}
	}
	return true
}

func (s *Sheets) call(ctx context.Context, method, u string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sheets %s: status %d", method, resp.StatusCode)
	}
	return nil
}
