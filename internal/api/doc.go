// Package api provides the CoinGlass REST API client.
//
// Every response arrives wrapped in a {code, msg, data} envelope; a request
// only succeeds when HTTP 200 carries code "0". The client tries the primary
// host first and falls back to the secondary host, retrying retryable
// statuses (429, 5xx) with exponential backoff and jitter.
package api
