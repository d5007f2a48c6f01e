package price

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkPrefersBinance(t *testing.T) {
	binance := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		w.Write([]byte(`{"symbol":"BTCUSDT","price":"64250.10"}`))
	}))
	defer binance.Close()

	f := NewFetcher(time.Second, time.Millisecond, WithBaseURLs(binance.URL, "http://127.0.0.1:0"))

	p, ok := f.Mark(context.Background(), "btc")
	require.True(t, ok)
	assert.Equal(t, "64250.1", p.String())
}

func TestMarkFallsBackToCoinbase(t *testing.T) {
	binance := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer binance.Close()

	coinbase := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/ETH-USD/ticker", r.URL.Path)
		w.Write([]byte(`{"price":"3120.55"}`))
	}))
	defer coinbase.Close()

	f := NewFetcher(time.Second, time.Millisecond, WithBaseURLs(binance.URL, coinbase.URL))

	p, ok := f.Mark(context.Background(), "ETH")
	require.True(t, ok)
	assert.Equal(t, "3120.55", p.String())
}

func TestMarkBothProvidersFail(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer down.Close()

	f := NewFetcher(time.Second, time.Millisecond, WithBaseURLs(down.URL, down.URL))

	_, ok := f.Mark(context.Background(), "SOL")
	assert.False(t, ok)
}

func TestMarkRejectsNonPositive(t *testing.T) {
	zero := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"price":"0"}`))
	}))
	defer zero.Close()

	f := NewFetcher(time.Second, time.Millisecond, WithBaseURLs(zero.URL, zero.URL))

	_, ok := f.Mark(context.Background(), "SOL")
	assert.False(t, ok)
}
