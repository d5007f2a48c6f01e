package config

import (
	"strings"
	"time"
)

// Default values for optional configuration fields.
const (
	DefaultBaseURL       = "https://open-api-v4.coinglass.com"
	DefaultFallbackURL   = "https://open-api.coinglass.com"
	DefaultAPITimeout    = 20 * time.Second
	DefaultMaxRetries    = 2
	DefaultRetryBackoff  = 400 * time.Millisecond
	DefaultGlobalMinUSD  = 1_000_000
	DefaultPollInterval  = 30 * time.Second
	DefaultPacing        = 2 * time.Second
	DefaultAllowedLag    = 120 * time.Second
	DefaultDedupTTL      = 180 * time.Minute
	DefaultSheetsTab     = "Alerts"
	DefaultPriceTimeout  = 8 * time.Second
	DefaultPriceCooldown = 2 * time.Second
	DefaultDBPort        = 5432
	DefaultDBSSLMode     = "prefer"
	DefaultMaxConns      = 4
	DefaultMinConns      = 1
	DefaultMetricsPort   = 9090
	DefaultMetricsPath   = "/metrics"
)

// DefaultWatchAssets is the watch list used when none is configured.
var DefaultWatchAssets = []string{"BTC", "ETH", "SOL", "XRP", "DOGE", "LINK"}

func (c *Config) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.FallbackURL == "" {
		c.API.FallbackURL = DefaultFallbackURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = Duration(DefaultAPITimeout)
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = Duration(DefaultRetryBackoff)
	}

	// Watch list defaults; symbols are normalized to upper case.
	if len(c.Watch.Assets) == 0 {
		c.Watch.Assets = append([]string(nil), DefaultWatchAssets...)
	}
	for i, a := range c.Watch.Assets {
		c.Watch.Assets[i] = strings.ToUpper(strings.TrimSpace(a))
	}

	// Threshold defaults
	if c.Thresholds.GlobalMinUSD == 0 {
		c.Thresholds.GlobalMinUSD = DefaultGlobalMinUSD
	}
	upper := make(map[string]float64, len(c.Thresholds.PerAssetMinUSD))
	for sym, v := range c.Thresholds.PerAssetMinUSD {
		upper[strings.ToUpper(strings.TrimSpace(sym))] = v
	}
	c.Thresholds.PerAssetMinUSD = upper

	// Poll defaults
	if c.Poll.Interval == 0 {
		c.Poll.Interval = Duration(DefaultPollInterval)
	}
	if c.Poll.Pacing == 0 {
		c.Poll.Pacing = Duration(DefaultPacing)
	}
	if c.Poll.AllowedLag == 0 {
		c.Poll.AllowedLag = Duration(DefaultAllowedLag)
	}

	// Dedup defaults. Explicit negative TTL means "disabled" and is kept.
	if c.Dedup.TTL == 0 {
		c.Dedup.TTL = Duration(DefaultDedupTTL)
	}

	// Sheets defaults
	if c.Sheets.Tab == "" {
		c.Sheets.Tab = DefaultSheetsTab
	}

	// Price defaults
	if c.Price.Timeout == 0 {
		c.Price.Timeout = Duration(DefaultPriceTimeout)
	}
	if c.Price.Cooldown == 0 {
		c.Price.Cooldown = Duration(DefaultPriceCooldown)
	}

	// Archive defaults
	if c.Archive.Enabled() {
		applyDBDefaults(&c.Archive.Postgres)
	}

	// Metrics defaults
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
