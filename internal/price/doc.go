// Package price fetches a live market price for alert enrichment.
//
// Binance is asked first, Coinbase second, with a fixed cooldown between
// providers. Enrichment is best-effort: when both providers fail the alert
// goes out without a mark price.
package price
