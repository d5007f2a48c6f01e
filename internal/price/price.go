package price

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Fetcher polls public tickers for a live mark price.
type Fetcher struct {
	httpClient *http.Client
	cooldown   time.Duration
	logger     *slog.Logger

	binanceURL  string
	coinbaseURL string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithBaseURLs overrides the provider base URLs.
func WithBaseURLs(binance, coinbase string) Option {
	return func(f *Fetcher) {
		f.binanceURL = strings.TrimRight(binance, "/")
		f.coinbaseURL = strings.TrimRight(coinbase, "/")
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a mark-price fetcher. timeout bounds each provider
// request; cooldown is the fixed wait before falling back to the next
// provider.
func NewFetcher(timeout, cooldown time.Duration, opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient:  &http.Client{Timeout: timeout},
		cooldown:    cooldown,
		logger:      slog.Default(),
		binanceURL:  "https://api.binance.com",
		coinbaseURL: "https://api.exchange.coinbase.com",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Mark returns the current market price for a symbol, or false when no
// provider answered.
func (f *Fetcher) Mark(ctx context.Context, symbol string) (decimal.Decimal, bool) {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	if sym == "" {
		return decimal.Decimal{}, false
	}

	if p, err := f.binance(ctx, sym); err == nil {
		return p, true
	} else {
		f.logger.Debug("binance price lookup failed", "symbol", sym, "err", err)
	}

	select {
	case <-ctx.Done():
		return decimal.Decimal{}, false
	case <-time.After(f.cooldown):
	}

	if p, err := f.coinbase(ctx, sym); err == nil {
		return p, true
	} else {
		f.logger.Debug("coinbase price lookup failed", "symbol", sym, "err", err)
	}

	return decimal.Decimal{}, false
}

func (f *Fetcher) binance(ctx context.Context, sym string) (decimal.Decimal, error) {
	var out struct {
		Price decimal.Decimal `json:"price"`
	}
	url := fmt.Sprintf("%s/api/v3/ticker/price?symbol=%sUSDT", f.binanceURL, sym)
	if err := f.getJSON(ctx, url, &out); err != nil {
		return decimal.Decimal{}, err
	}
	return positive(out.Price)
}

func (f *Fetcher) coinbase(ctx context.Context, sym string) (decimal.Decimal, error) {
	var out struct {
		Price decimal.Decimal `json:"price"`
		Last  decimal.Decimal `json:"last"`
	}
	url := fmt.Sprintf("%s/products/%s-USD/ticker", f.coinbaseURL, sym)
	if err := f.getJSON(ctx, url, &out); err != nil {
		return decimal.Decimal{}, err
	}
	if out.Price.IsPositive() {
		return out.Price, nil
	}
	return positive(out.Last)
}

func (f *Fetcher) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func positive(p decimal.Decimal) (decimal.Decimal, error) {
	if !p.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("non-positive price %s", p)
	}
	return p, nil
}
