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

const explorerBase = "https://www.coinglass.com/hyperliquid/"

// WalletAdapter fetches large wallet position changes.
type WalletAdapter struct {
	client *api.Client
	logger *slog.Logger
}

// NewWalletAdapter creates the wallet-position source adapter.
func NewWalletAdapter(client *api.Client, logger *slog.Logger) *WalletAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WalletAdapter{client: client, logger: logger}
}

func (a *WalletAdapter) Name() string {
	return model.SourceWalletPosition.String()
}

// Fetch returns normalized wallet-position events.
func (a *WalletAdapter) Fetch(ctx context.Context) ([]model.Event, error) {
	items, err := a.client.GetWhaleAlerts(ctx)
	if err != nil {
		return nil, err
	}

	metrics.EventsFetched.WithLabelValues(a.Name()).Add(float64(len(items)))

	events := make([]model.Event, 0, len(items))
	for _, item := range items {
		ev, err := normalizeWallet(item)
		if err != nil {
			a.logger.Warn("skipping malformed wallet event", "err", err)
			metrics.EventsSkipped.WithLabelValues(a.Name(), metrics.ReasonMalformed).Inc()
			continue
		}
		events = append(events, ev)
	}

	return events, nil
}

// normalizeWallet converts one raw whale alert into the common event shape.
func normalizeWallet(item json.RawMessage) (model.Event, error) {
	src := model.SourceWalletPosition

	var raw api.WhaleAlert
	if err := json.Unmarshal(item, &raw); err != nil {
		return model.Event{}, normalizeErr(src, "decode", err)
	}

	sym := strings.ToUpper(strings.TrimSpace(raw.Symbol))
	if sym == "" {
		return model.Event{}, normalizeErr(src, "missing symbol", nil)
	}
	if raw.User == "" {
		return model.Event{}, normalizeErr(src, "missing user", nil)
	}
	if raw.PositionValueUSD.IsNegative() {
		return model.Event{}, normalizeErr(src, "negative notional", nil)
	}
	if !raw.EntryPrice.IsPositive() {
		return model.Event{}, normalizeErr(src, "non-positive entry price", nil)
	}

	side := "Flat"
	if raw.PositionSize.IsPositive() {
		side = "Long"
	} else if raw.PositionSize.IsNegative() {
		side = "Short"
	}

	var action string
	switch raw.PositionAction {
	case api.PositionActionOpen:
		action = "Open"
	case api.PositionActionClose:
		action = "Close"
	default:
		action = fmt.Sprintf("Act%d", raw.PositionAction)
	}

	occurredAt := time.Now().UTC()
	if raw.CreateTime > 0 {
		occurredAt = time.UnixMilli(raw.CreateTime).UTC()
	}

	return model.Event{
		Source:      src,
		Asset:       sym,
		Action:      action + " " + side,
		NotionalUSD: raw.PositionValueUSD,
		Size:        raw.PositionSize.Abs(),
		Price:       raw.EntryPrice,
		OccurredAt:  occurredAt,
		RawIdentity: fmt.Sprintf("%s|%s|%d|%d", raw.User, sym, raw.PositionAction, raw.CreateTime),
		EntryPrice:  raw.EntryPrice,
		LiqPrice:    raw.LiqPrice,
		Account:     raw.User,
		URL:         explorerBase + raw.User,
	}, nil
}
