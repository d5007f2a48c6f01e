package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// API paths.
const (
	endpointWhaleAlert  = "/api/hyperliquid/whale-alert"
	endpointLargeOrders = "/api/futures/orderbook/large-limit-order"
)

// GetWhaleAlerts fetches recent Hyperliquid whale-position events.
//
// Items are returned raw so that one malformed element cannot poison the
// whole batch; callers decode each item individually.
func (c *Client) GetWhaleAlerts(ctx context.Context) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := c.get(ctx, endpointWhaleAlert, nil, &items); err != nil {
		return nil, fmt.Errorf("get whale alerts: %w", err)
	}
	return items, nil
}

// GetLargeOrders fetches recent large orderbook orders, optionally filtered
// to an exchange allow list. Items are returned raw; see GetWhaleAlerts.
func (c *Client) GetLargeOrders(ctx context.Context, exchanges []string) ([]json.RawMessage, error) {
	query := url.Values{}
	if len(exchanges) > 0 {
		query.Set("exchange_list", strings.Join(exchanges, ","))
	}

	var items []json.RawMessage
	if err := c.get(ctx, endpointLargeOrders, query, &items); err != nil {
		return nil, fmt.Errorf("get large orders: %w", err)
	}
	return items, nil
}
