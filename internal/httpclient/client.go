// Package httpclient provides the shared outbound HTTP client.
//
// The relay issues exactly one upstream attempt per user action, so unlike
// most API clients this one carries no retry loop: a failed request surfaces
// immediately and the user resubmits.
package httpclient

import (
	"log/slog"
	"net/http"
	"time"
)

// Config holds timeout configuration.
type Config struct {
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
	}
}

// Client wraps http.Client with request logging.
type Client struct {
	http   *http.Client
	logger *slog.Logger
}

// New creates a new Client with a default http.Client.
func New(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// NewWithHTTPClient creates a Client around a custom http.Client.
func NewWithHTTPClient(httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:   httpClient,
		logger: logger,
	}
}

// Do executes a single HTTP request and logs its outcome at debug level.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return nil, req.Context().Err()
		}
		c.logger.Debug("outbound request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Debug("outbound request",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int("status", resp.StatusCode),
		slog.String("duration", time.Since(start).String()),
	)
	return resp, nil
}
