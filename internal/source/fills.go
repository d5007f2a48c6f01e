package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmarrero/whalewatch/internal/api"
	"github.com/dmarrero/whalewatch/internal/metrics"
	"github.com/dmarrero/whalewatch/internal/model"
)

// FillAdapter fetches large filled orderbook orders.
type FillAdapter struct {
	client    *api.Client
	exchanges []string // upstream filter; the evaluator re-checks
	logger    *slog.Logger
}

// NewFillAdapter creates the orderbook-fill source adapter.
func NewFillAdapter(client *api.Client, exchanges []string, logger *slog.Logger) *FillAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &FillAdapter{client: client, exchanges: exchanges, logger: logger}
}

func (a *FillAdapter) Name() string {
	return model.SourceOrderbookFill.String()
}

// Fetch returns normalized fill events. Orders that are not in the filled
// state are dropped silently; they are not alerts yet.
func (a *FillAdapter) Fetch(ctx context.Context) ([]model.Event, error) {
	items, err := a.client.GetLargeOrders(ctx, a.exchanges)
	if err != nil {
		return nil, err
	}

	metrics.EventsFetched.WithLabelValues(a.Name()).Add(float64(len(items)))

	events := make([]model.Event, 0, len(items))
	for _, item := range items {
		ev, ok, err := normalizeFill(item)
		if err != nil {
			a.logger.Warn("skipping malformed fill event", "err", err)
			metrics.EventsSkipped.WithLabelValues(a.Name(), metrics.ReasonMalformed).Inc()
			continue
		}
		if !ok {
			continue
		}
		events = append(events, ev)
	}

	return events, nil
}

// normalizeFill converts one raw order into the common event shape.
// ok is false for well-formed orders that are simply not filled.
func normalizeFill(item json.RawMessage) (ev model.Event, ok bool, err error) {
	src := model.SourceOrderbookFill

	var raw api.LargeOrder
	if jsonErr := json.Unmarshal(item, &raw); jsonErr != nil {
		return model.Event{}, false, normalizeErr(src, "decode", jsonErr)
	}

	if raw.State != api.OrderStateFilled {
		return model.Event{}, false, nil
	}

	asset := baseAsset(raw.Symbol)
	if asset == "" {
		return model.Event{}, false, normalizeErr(src, "missing symbol", nil)
	}
	if raw.OrderID == 0 {
		return model.Event{}, false, normalizeErr(src, "missing order id", nil)
	}
	if raw.Exchange == "" {
		return model.Event{}, false, normalizeErr(src, "missing exchange", nil)
	}
	if !raw.Price.IsPositive() {
		return model.Event{}, false, normalizeErr(src, "non-positive price", nil)
	}
	if raw.Amount.IsNegative() || raw.UsdValue.IsNegative() {
		return model.Event{}, false, normalizeErr(src, "negative size or notional", nil)
	}

	var action string
	switch raw.Side {
	case api.OrderSideBuy:
		action = "Buy Fill"
	case api.OrderSideSell:
		action = "Sell Fill"
	default:
		return model.Event{}, false, normalizeErr(src, fmt.Sprintf("unknown side %d", raw.Side), nil)
	}

	notional := raw.UsdValue
	if notional.IsZero() {
		notional = raw.Price.Mul(raw.Amount)
	}

	occurredAt := time.Now().UTC()
	if raw.CreateTime > 0 {
		occurredAt = time.UnixMilli(raw.CreateTime).UTC()
	}

	return model.Event{
		Source:      src,
		Asset:       asset,
		Action:      action,
		NotionalUSD: notional,
		Size:        raw.Amount,
		Price:       raw.Price,
		Exchange:    raw.Exchange,
		OccurredAt:  occurredAt,
		RawIdentity: fmt.Sprintf("%s|%d", raw.Exchange, raw.OrderID),
	}, true, nil
}

// baseAsset extracts the base symbol from a pair like "BTC/USDT" or
// "BTC-USDT"; a bare symbol passes through.
func baseAsset(pair string) string {
	s := strings.ToUpper(strings.TrimSpace(pair))
	if i := strings.IndexAny(s, "/-_"); i > 0 {
		s = s[:i]
	}
	return s
}
