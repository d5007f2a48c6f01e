package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError represents an error from the CoinGlass API.
type APIError struct {
	StatusCode int
	Code       string // envelope code, "" if the body was not an envelope
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("coinglass api error %d (code=%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("coinglass api error %d: %s", e.StatusCode, e.Message)
}

// IsRetryable returns true if the error should trigger a retry.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// IsAuth returns true for key/plan errors that no retry or host fallback
// will fix.
func (e *APIError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// envelope is the {code, msg, data} wrapper on every response. The code
// field arrives as either a JSON string or a number depending on the
// endpoint.
type envelope struct {
	Code json.RawMessage `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func (e envelope) code() string {
	return strings.Trim(string(e.Code), `"`)
}

// doRequest performs one GET against one host and unwraps the envelope.
func (c *Client) doRequest(ctx context.Context, host, path string, query url.Values) (json.RawMessage, error) {
	fullURL := host + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("CG-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if jsonErr := json.Unmarshal(body, &env); jsonErr != nil {
		env = envelope{}
	}

	if resp.StatusCode == http.StatusOK && env.code() == "0" {
		return env.Data, nil
	}

	msg := env.Msg
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return nil, &APIError{
		StatusCode: resp.StatusCode,
		Code:       env.code(),
		Message:    msg,
	}
}

// doWithRetry performs a request against one host with exponential backoff.
func (c *Client) doWithRetry(ctx context.Context, host, path string, query url.Values) (json.RawMessage, error) {
	var lastErr error
	backoff := c.retryBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Add jitter: backoff * (0.5 to 1.5)
			jitter := backoff/2 + time.Duration(rand.Int64N(int64(backoff)))
			c.logger.Debug("retrying request",
				"attempt", attempt,
				"backoff", jitter,
				"path", path,
			)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(jitter):
			}

			backoff *= 2
		}

		data, err := c.doRequest(ctx, host, path, query)
		if err == nil {
			return data, nil
		}

		lastErr = err

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.IsRetryable() {
			return nil, err
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// get performs a GET, trying each configured host in order, and unmarshals
// the envelope data into result.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	var lastErr error

	for _, host := range c.hosts {
		data, err := c.doWithRetry(ctx, host, path, query)
		if err != nil {
			lastErr = err

			// Auth errors apply to every host; bail immediately.
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.IsAuth() {
				return err
			}
			if ctx.Err() != nil {
				return lastErr
			}
			continue
		}

		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("all hosts failed for %s: %w", path, lastErr)
}
