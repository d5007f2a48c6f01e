package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarrero/whalewatch/internal/api"
	"github.com/dmarrero/whalewatch/internal/model"
)

func whaleServer(t *testing.T, items ...any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"code": "0", "msg": "success", "data": items})
	}))
}

func TestWalletFetchNormalizes(t *testing.T) {
	server := whaleServer(t, map[string]any{
		"user":               "0x9fc4",
		"symbol":             "btc",
		"position_size":      -12.5,
		"position_action":    1,
		"position_value_usd": 1500000,
		"entry_price":        64000,
		"liq_price":          71000,
		"create_time":        1717243200000,
	})
	defer server.Close()

	a := NewWalletAdapter(api.NewClient(server.URL, "", "k"), nil)

	events, err := a.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, model.SourceWalletPosition, ev.Source)
	assert.Equal(t, "BTC", ev.Asset)
	assert.Equal(t, "Open Short", ev.Action)
	assert.Equal(t, "1500000", ev.NotionalUSD.String())
	assert.Equal(t, "12.5", ev.Size.String())
	assert.Equal(t, "64000", ev.Price.String())
	assert.Empty(t, ev.Exchange)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), ev.OccurredAt)
	assert.Equal(t, "0x9fc4|BTC|1|1717243200000", ev.RawIdentity)
	assert.Equal(t, "https://www.coinglass.com/hyperliquid/0x9fc4", ev.URL)
}

func TestWalletMalformedItemSkipped(t *testing.T) {
	server := whaleServer(t,
		map[string]any{"user": "0xaaa", "symbol": ""}, // missing symbol
		map[string]any{ // good
			"user": "0xbbb", "symbol": "ETH", "position_size": 100,
			"position_action": 2, "position_value_usd": 2000000,
			"entry_price": 3100, "create_time": 1717243200000,
		},
		map[string]any{ // non-numeric notional
			"user": "0xccc", "symbol": "SOL", "position_value_usd": "not-a-number",
			"entry_price": 150,
		},
	)
	defer server.Close()

	a := NewWalletAdapter(api.NewClient(server.URL, "", "k"), nil)

	events, err := a.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ETH", events[0].Asset)
	assert.Equal(t, "Close Long", events[0].Action)
}

func TestWalletFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	a := NewWalletAdapter(api.NewClient(server.URL, "", "k", api.WithRetries(0, time.Millisecond)), nil)

	_, err := a.Fetch(context.Background())
	assert.Error(t, err)
}

func TestNormalizeWalletRejects(t *testing.T) {
	cases := map[string]string{
		"negative notional": `{"user":"0xa","symbol":"BTC","position_value_usd":-5,"entry_price":100}`,
		"zero entry price":  `{"user":"0xa","symbol":"BTC","position_value_usd":5,"entry_price":0}`,
		"missing user":      `{"symbol":"BTC","position_value_usd":5,"entry_price":100}`,
		"bad json":          `{`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := normalizeWallet(json.RawMessage(raw))
			require.Error(t, err)

			var nerr *NormalizeError
			assert.ErrorAs(t, err, &nerr)
		})
	}
}
