package config

// Config is the root configuration for a whalewatch instance.
type Config struct {
	API        APIConfig       `yaml:"api"`
	Watch      WatchConfig     `yaml:"watch"`
	Thresholds ThresholdConfig `yaml:"thresholds"`
	Sources    SourcesConfig   `yaml:"sources"`
	Poll       PollConfig      `yaml:"poll"`
	Dedup      DedupConfig     `yaml:"dedup"`
	Telegram   TelegramConfig  `yaml:"telegram"`
	Sheets     SheetsConfig    `yaml:"sheets"`
	Price      PriceConfig     `yaml:"price"`
	Archive    ArchiveConfig   `yaml:"archive"`
	Metrics    MetricsConfig   `yaml:"metrics"`
}

// APIConfig holds upstream market-data API settings.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`
	FallbackURL  string        `yaml:"fallback_url"`
	APIKey       string        `yaml:"api_key"`
	Timeout      Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff Duration `yaml:"retry_backoff"`
}

// WatchConfig holds the asset watch list. An empty list watches everything.
type WatchConfig struct {
	Assets []string `yaml:"assets"`
}

// ThresholdConfig holds USD-notional alert thresholds.
type ThresholdConfig struct {
	GlobalMinUSD float64 `yaml:"global_min_usd"`
	// PerAssetMinUSD overrides GlobalMinUSD for individual symbols.
	PerAssetMinUSD map[string]float64 `yaml:"per_asset_min_usd"`
}

// SourcesConfig enables or disables the two event sources.
type SourcesConfig struct {
	WalletPositions *bool `yaml:"wallet_positions"`
	OrderbookFills  *bool `yaml:"orderbook_fills"`
	// Exchanges is an allow list applied to orderbook fills only.
	// Empty means all exchanges.
	Exchanges []string `yaml:"exchanges"`
}

// WalletPositionsEnabled reports whether the wallet-position source runs.
func (s SourcesConfig) WalletPositionsEnabled() bool {
	return s.WalletPositions == nil || *s.WalletPositions
}

// OrderbookFillsEnabled reports whether the orderbook-fill source runs.
func (s SourcesConfig) OrderbookFillsEnabled() bool {
	return s.OrderbookFills == nil || *s.OrderbookFills
}

// PollConfig holds poll loop timing.
type PollConfig struct {
	Interval Duration `yaml:"interval"`
	// Pacing is the fixed wait between adapter calls within one cycle,
	// to stay under upstream rate limits.
	Pacing Duration `yaml:"pacing"`
	// AllowedLag accepts events up to this long before process start;
	// anything older is treated as backfill and skipped.
	AllowedLag Duration `yaml:"allowed_lag"`
}

// DedupConfig holds alert deduplication settings. TTL <= 0 disables dedup.
type DedupConfig struct {
	TTL Duration `yaml:"ttl"`
}

// TelegramConfig holds the notification channel settings. When BotToken or
// ChatID is empty, notifications are logged and dropped.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
	Tag      string `yaml:"tag"`
}

// SheetsConfig holds the durable-log settings. SpreadsheetID empty disables
// the primary log transport; FallbackWebhookURL is tried when the primary
// append fails.
type SheetsConfig struct {
	SpreadsheetID      string `yaml:"spreadsheet_id"`
	Tab                string `yaml:"tab"`
	Token              string `yaml:"token"`
	FallbackWebhookURL string `yaml:"fallback_webhook_url"`
}

// PriceConfig holds live mark-price enrichment settings.
type PriceConfig struct {
	Enabled  *bool         `yaml:"enabled"`
	Timeout  Duration `yaml:"timeout"`
	Cooldown Duration `yaml:"cooldown"`
}

// PriceEnabled reports whether mark-price enrichment runs.
func (p PriceConfig) PriceEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// ArchiveConfig holds the optional Postgres alert archive. Host empty
// disables it.
type ArchiveConfig struct {
	Postgres DBConfig `yaml:"postgres"`
}

// Enabled reports whether the archive sink is configured.
func (a ArchiveConfig) Enabled() bool {
	return a.Postgres.Host != ""
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}
