package filter

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dmarrero/whalewatch/internal/config"
	"github.com/dmarrero/whalewatch/internal/model"
)

// Rules holds the immutable alert-qualification rules.
type Rules struct {
	globalMin decimal.Decimal
	perAsset  map[string]decimal.Decimal
	sources   map[model.Source]bool
	exchanges map[string]bool // lower-cased; empty = all exchanges
	watch     map[string]bool // upper-cased; empty = all assets
}

// NewRules builds rules from validated configuration.
func NewRules(cfg *config.Config) *Rules {
	r := &Rules{
		globalMin: decimal.NewFromFloat(cfg.Thresholds.GlobalMinUSD),
		perAsset:  make(map[string]decimal.Decimal, len(cfg.Thresholds.PerAssetMinUSD)),
		sources: map[model.Source]bool{
			model.SourceWalletPosition: cfg.Sources.WalletPositionsEnabled(),
			model.SourceOrderbookFill:  cfg.Sources.OrderbookFillsEnabled(),
		},
		exchanges: make(map[string]bool, len(cfg.Sources.Exchanges)),
		watch:     make(map[string]bool, len(cfg.Watch.Assets)),
	}

	for sym, v := range cfg.Thresholds.PerAssetMinUSD {
		r.perAsset[strings.ToUpper(sym)] = decimal.NewFromFloat(v)
	}
	for _, ex := range cfg.Sources.Exchanges {
		r.exchanges[strings.ToLower(strings.TrimSpace(ex))] = true
	}
	for _, sym := range cfg.Watch.Assets {
		r.watch[strings.ToUpper(sym)] = true
	}

	return r
}

// MinFor returns the effective USD threshold for an asset: the per-asset
// override when present, otherwise the global minimum.
func (r *Rules) MinFor(asset string) decimal.Decimal {
	if min, ok := r.perAsset[strings.ToUpper(asset)]; ok {
		return min
	}
	return r.globalMin
}

// Qualifies reports whether the event is alert-worthy. Fails closed: an
// event from a disabled source never qualifies. The threshold comparison
// is inclusive.
func (r *Rules) Qualifies(ev model.Event) bool {
	if !r.sources[ev.Source] {
		return false
	}

	if len(r.watch) > 0 && !r.watch[strings.ToUpper(ev.Asset)] {
		return false
	}

	// Exchange allow list applies to orderbook fills only.
	if ev.Source == model.SourceOrderbookFill && len(r.exchanges) > 0 {
		if !r.exchanges[strings.ToLower(ev.Exchange)] {
			return false
		}
	}

	return ev.NotionalUSD.GreaterThanOrEqual(r.MinFor(ev.Asset))
}
