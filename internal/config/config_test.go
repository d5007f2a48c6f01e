package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "whalewatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	yaml := `
api:
  api_key: test-key
  base_url: https://example.test
watch:
  assets: [btc, eth]
thresholds:
  global_min_usd: 2000000
  per_asset_min_usd:
    btc: 5000000
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.API.APIKey)
	assert.Equal(t, "https://example.test", cfg.API.BaseURL)
	assert.Equal(t, []string{"BTC", "ETH"}, cfg.Watch.Assets)
	assert.Equal(t, float64(2_000_000), cfg.Thresholds.GlobalMinUSD)
	assert.Equal(t, float64(5_000_000), cfg.Thresholds.PerAssetMinUSD["BTC"])
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_CG_KEY", "secret123")

	yaml := `
api:
  api_key: ${TEST_CG_KEY}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret123", cfg.API.APIKey)
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "api:\n  api_key: k\n")

	cfg, err := LoadWithDefaults(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultFallbackURL, cfg.API.FallbackURL)
	assert.Equal(t, DefaultWatchAssets, cfg.Watch.Assets)
	assert.Equal(t, 30*time.Second, cfg.Poll.Interval.Std())
	assert.Equal(t, 180*time.Minute, cfg.Dedup.TTL.Std())
	assert.Equal(t, "Alerts", cfg.Sheets.Tab)
	assert.Equal(t, DefaultMetricsPort, cfg.Metrics.Port)
	assert.True(t, cfg.Sources.WalletPositionsEnabled())
	assert.True(t, cfg.Sources.OrderbookFillsEnabled())
	assert.False(t, cfg.Archive.Enabled())
}

func TestNegativeTTLKept(t *testing.T) {
	// Negative TTL is a valid configuration meaning "dedup disabled".
	path := writeTempFile(t, "api:\n  api_key: k\ndedup:\n  ttl: -1s\n")

	cfg, err := LoadWithDefaults(path)
	require.NoError(t, err)
	assert.Equal(t, -1*time.Second, cfg.Dedup.TTL.Std())
}

func TestDurationForms(t *testing.T) {
	// Durations accept both Go duration strings and bare seconds.
	path := writeTempFile(t, "api:\n  api_key: k\npoll:\n  interval: 45\n  pacing: 1500ms\n")

	cfg, err := LoadWithDefaults(path)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.Poll.Interval.Std())
	assert.Equal(t, 1500*time.Millisecond, cfg.Poll.Pacing.Std())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		path := writeTempFile(t, "api:\n  api_key: k\n")
		cfg, err := LoadWithDefaults(path)
		require.NoError(t, err)
		return cfg
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := base()
		cfg.API.APIKey = ""
		assert.ErrorContains(t, cfg.Validate(), "api.api_key")
	})

	t.Run("all sources disabled", func(t *testing.T) {
		cfg := base()
		off := false
		cfg.Sources.WalletPositions = &off
		cfg.Sources.OrderbookFills = &off
		assert.ErrorContains(t, cfg.Validate(), "at least one")
	})

	t.Run("negative threshold", func(t *testing.T) {
		cfg := base()
		cfg.Thresholds.GlobalMinUSD = -1
		assert.ErrorContains(t, cfg.Validate(), "global_min_usd")
	})

	t.Run("archive requires credentials", func(t *testing.T) {
		cfg := base()
		cfg.Archive.Postgres.Host = "localhost"
		cfg.Archive.Postgres.Port = 5432
		cfg.Archive.Postgres.MaxConns = 4
		assert.ErrorContains(t, cfg.Validate(), "archive.postgres.name")
	})
}

func TestLoadAndValidateMissingFile(t *testing.T) {
	_, err := LoadAndValidate(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
