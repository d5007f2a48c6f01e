package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarrero/whalewatch/internal/api"
	"github.com/dmarrero/whalewatch/internal/model"
)

func TestFillFetchNormalizes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Binance,Bybit", r.URL.Query().Get("exchange_list"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"code": "0",
			"data": []map[string]any{
				{
					"order_id": 9911, "exchange_name": "Binance", "symbol": "BTC/USDT",
					"side": 2, "price": 64000, "amount": 40, "usd_value": 2560000,
					"state": 2, "create_time": 1717243200000,
				},
				{ // still open, silently dropped
					"order_id": 9912, "exchange_name": "Binance", "symbol": "BTC/USDT",
					"side": 1, "price": 63000, "amount": 50, "usd_value": 3150000,
					"state": 1,
				},
			},
		})
	}))
	defer server.Close()

	a := NewFillAdapter(api.NewClient(server.URL, "", "k"), []string{"Binance", "Bybit"}, nil)

	events, err := a.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, model.SourceOrderbookFill, ev.Source)
	assert.Equal(t, "BTC", ev.Asset)
	assert.Equal(t, "Sell Fill", ev.Action)
	assert.Equal(t, "Binance", ev.Exchange)
	assert.Equal(t, "2560000", ev.NotionalUSD.String())
	assert.Equal(t, "Binance|9911", ev.RawIdentity)
}

func TestNormalizeFillComputesNotional(t *testing.T) {
	raw := json.RawMessage(`{"order_id":7,"exchange_name":"Bybit","symbol":"ETH-USDT",
		"side":1,"price":3000,"amount":500,"state":2}`)

	ev, ok, err := normalizeFill(raw)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1500000", ev.NotionalUSD.String())
	assert.Equal(t, "ETH", ev.Asset)
	assert.Equal(t, "Buy Fill", ev.Action)
}

func TestNormalizeFillRejects(t *testing.T) {
	cases := map[string]string{
		"missing order id": `{"exchange_name":"Binance","symbol":"BTC/USDT","side":1,"price":10,"amount":1,"state":2}`,
		"missing exchange": `{"order_id":1,"symbol":"BTC/USDT","side":1,"price":10,"amount":1,"state":2}`,
		"zero price":       `{"order_id":1,"exchange_name":"Binance","symbol":"BTC/USDT","side":1,"price":0,"amount":1,"state":2}`,
		"negative amount":  `{"order_id":1,"exchange_name":"Binance","symbol":"BTC/USDT","side":1,"price":10,"amount":-1,"state":2}`,
		"unknown side":     `{"order_id":1,"exchange_name":"Binance","symbol":"BTC/USDT","side":9,"price":10,"amount":1,"state":2}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := normalizeFill(json.RawMessage(raw))
			assert.Error(t, err)
		})
	}
}

func TestBaseAsset(t *testing.T) {
	assert.Equal(t, "BTC", baseAsset("BTC/USDT"))
	assert.Equal(t, "ETH", baseAsset("eth-usd"))
	assert.Equal(t, "SOL", baseAsset("SOL"))
	assert.Equal(t, "", baseAsset("  "))
}
