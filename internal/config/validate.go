package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
// A validation failure is fatal at startup; nothing revalidates mid-run.
func (c *Config) Validate() error {
	if c.API.APIKey == "" {
		return errors.New("api.api_key is required")
	}
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.MaxRetries < 0 {
		return errors.New("api.max_retries must be >= 0")
	}

	if c.Thresholds.GlobalMinUSD < 0 {
		return errors.New("thresholds.global_min_usd must be >= 0")
	}
	for sym, v := range c.Thresholds.PerAssetMinUSD {
		if v < 0 {
			return fmt.Errorf("thresholds.per_asset_min_usd.%s must be >= 0", sym)
		}
	}

	if !c.Sources.WalletPositionsEnabled() && !c.Sources.OrderbookFillsEnabled() {
		return errors.New("sources: at least one of wallet_positions, orderbook_fills must be enabled")
	}

	if c.Poll.Interval <= 0 {
		return errors.New("poll.interval must be > 0")
	}
	if c.Poll.Pacing < 0 {
		return errors.New("poll.pacing must be >= 0")
	}
	if c.Poll.AllowedLag < 0 {
		return errors.New("poll.allowed_lag must be >= 0")
	}

	if c.Archive.Enabled() {
		if err := c.Archive.Postgres.validate("archive.postgres"); err != nil {
			return err
		}
	}

	if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
