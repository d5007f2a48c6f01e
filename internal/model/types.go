package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source identifies which upstream feed produced an event.
type Source int

const (
	// SourceWalletPosition is a large wallet position change (open/close).
	SourceWalletPosition Source = iota
	// SourceOrderbookFill is a large filled orderbook order.
	SourceOrderbookFill
)

// String returns the short label used in fingerprints, logs and sheet rows.
func (s Source) String() string {
	switch s {
	case SourceWalletPosition:
		return "wallet"
	case SourceOrderbookFill:
		return "fill"
	default:
		return "unknown"
	}
}

// Label returns the human-readable source name used in notifications.
func (s Source) Label() string {
	switch s {
	case SourceWalletPosition:
		return "Wallet Position"
	case SourceOrderbookFill:
		return "Orderbook Fill"
	default:
		return "Unknown"
	}
}

// Event is the normalized shape every adapter produces.
//
// NotionalUSD, Size and Price are never negative; adapters reject raw items
// that would violate that. Events within one fetched batch are not ordered.
type Event struct {
	Source      Source
	Asset       string // upper-case symbol, e.g. "BTC"
	Action      string // e.g. "Open Long", "Sell Fill"
	NotionalUSD decimal.Decimal
	Size        decimal.Decimal
	Price       decimal.Decimal
	Exchange    string // set only for SourceOrderbookFill
	OccurredAt  time.Time

	// RawIdentity is a stable identifier derived from source-specific
	// fields (wallet+position for wallet events, order id for fills).
	// It feeds the dedup fingerprint and must not include mutable facts
	// like notional or price.
	RawIdentity string

	// Enrichment, best-effort.
	EntryPrice decimal.Decimal
	MarkPrice  decimal.Decimal // live market price at alert time, zero if unavailable
	LiqPrice   decimal.Decimal
	Account    string // wallet address for the explorer link
	URL        string
}

// Fingerprint returns the dedup key for the event. The source label is
// embedded so a wallet event and a fill that happen to share a raw
// identifier never collide.
func (e Event) Fingerprint() string {
	return e.Source.String() + ":" + e.RawIdentity
}
