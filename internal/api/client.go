package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Client provides access to the CoinGlass REST API.
type Client struct {
	hosts      []string // primary first, then fallback
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger

	maxRetries   int
	retryBackoff time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new REST API client. fallbackURL may be empty.
func NewClient(baseURL, fallbackURL, apiKey string, opts ...ClientOption) *Client {
	hosts := []string{strings.TrimRight(baseURL, "/")}
	if fallbackURL != "" {
		hosts = append(hosts, strings.TrimRight(fallbackURL, "/"))
	}

	c := &Client{
		hosts:  hosts,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		logger:       slog.Default(),
		maxRetries:   2,
		retryBackoff: 400 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the retry configuration.
func WithRetries(max int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBackoff = backoff
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}
