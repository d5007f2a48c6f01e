package api

import "github.com/shopspring/decimal"

// Position action codes on whale alerts.
const (
	PositionActionOpen  = 1
	PositionActionClose = 2
)

// WhaleAlert is one raw wallet-position event from
// GET /api/hyperliquid/whale-alert.
type WhaleAlert struct {
	User             string          `json:"user"`
	Symbol           string          `json:"symbol"`
	PositionSize     decimal.Decimal `json:"position_size"` // signed: >0 long, <0 short
	PositionAction   int             `json:"position_action"`
	PositionValueUSD decimal.Decimal `json:"position_value_usd"`
	EntryPrice       decimal.Decimal `json:"entry_price"`
	LiqPrice         decimal.Decimal `json:"liq_price"`
	CreateTime       int64           `json:"create_time"` // execution time, ms
}

// Order side and state codes on large orders.
const (
	OrderSideBuy  = 1
	OrderSideSell = 2

	OrderStateOpen     = 1
	OrderStateFilled   = 2
	OrderStateCanceled = 3
)

// LargeOrder is one raw orderbook order from
// GET /api/futures/orderbook/large-limit-order.
type LargeOrder struct {
	OrderID    int64           `json:"order_id"`
	Exchange   string          `json:"exchange_name"`
	Symbol     string          `json:"symbol"` // pair, e.g. "BTC/USDT"
	Side       int             `json:"side"`
	Price      decimal.Decimal `json:"price"`
	Amount     decimal.Decimal `json:"amount"` // base units
	UsdValue   decimal.Decimal `json:"usd_value"`
	State      int             `json:"state"`
	CreateTime int64           `json:"create_time"` // ms
}
