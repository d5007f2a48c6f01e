package sink

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramNotify(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	tg := NewTelegram("TOKEN", "-100123", "#whales", WithTelegramBaseURL(server.URL))

	ev := testEvent()
	ev.EntryPrice = decimal.NewFromInt(64_000)
	ev.MarkPrice = decimal.NewFromFloat(64_250.10)
	ev.URL = "https://www.coinglass.com/hyperliquid/0x9f21aabbccfc4"

	require.NoError(t, tg.Notify(context.Background(), ev))

	assert.Equal(t, "-100123", got["chat_id"])
	assert.Equal(t, "HTML", got["parse_mode"])

	text := got["text"].(string)
	assert.Contains(t, text, "#whales 🐳")
	assert.Contains(t, text, "Coin: BTC")
	assert.Contains(t, text, "Source: Wallet Position")
	assert.Contains(t, text, "Action: Open Long")
	assert.Contains(t, text, "Notional: $1,500,000 | Size: 12.5")
	assert.Contains(t, text, "Entry: $64,000 | Market Price: $64,250")
	assert.Contains(t, text, "UTC: 2024-06-01 12:00:00")
	assert.Contains(t, text, `<a href="https://www.coinglass.com/hyperliquid/0x9f21aabbccfc4">`)
}

func TestTelegramNotifyAPIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer server.Close()

	tg := NewTelegram("TOKEN", "42", "", WithTelegramBaseURL(server.URL))

	err := tg.Notify(context.Background(), testEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestTelegramUnconfiguredIsNoop(t *testing.T) {
	tg := NewTelegram("", "", "")
	assert.NoError(t, tg.Notify(context.Background(), testEvent()))
}

func TestRenderFillIncludesExchange(t *testing.T) {
	tg := NewTelegram("T", "C", "")

	ev := testEvent()
	ev.Exchange = "Binance"
	ev.Action = "Sell Fill"

	text := tg.render(ev)
	assert.Contains(t, text, "Exchange: Binance")
	assert.Contains(t, text, "Action: Sell Fill")
	// No entry or mark price set: the fill price is shown instead.
	assert.Contains(t, text, "Price: $64,000")
}
