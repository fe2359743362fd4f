// Package nbastats implements provider.StatsSource and provider.DraftSource
// against the stats.nba.com JSON endpoints.
//
// The endpoints return tabular result sets (header list + row matrix) and are
// aggressively throttled, so every call goes through a shared rate limiter
// and rows are decoded through a schema-validating table wrapper.
package nbastats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://stats.nba.com/stats"

// Client is the shared HTTP client for all stats.nba.com endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the endpoint base URL. Tests point this at a local
// httptest server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithSpacing sets the minimum interval between requests.
func WithSpacing(d time.Duration) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Every(d), 1) }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a stats.nba.com client. Requests are spaced 600ms apart
// by default to stay under the provider's throttling.
func NewClient(logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    defaultBaseURL,
		limiter:    rate.NewLimiter(rate.Every(600*time.Millisecond), 1),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// statsResponse is the common stats.nba.com response wrapper.
type statsResponse struct {
	Resource   string `json:"resource"`
	ResultSets []struct {
		Name    string            `json:"name"`
		Headers []string          `json:"headers"`
		RowSet  [][]json.RawMessage `json:"rowSet"`
	} `json:"resultSets"`
}

// get performs a rate-limited GET and returns the named result set as a
// schema-checked table.
func (c *Client) get(ctx context.Context, endpoint, setName string, params url.Values) (*table, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	// stats.nba.com rejects requests without browser-looking headers.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-nba-stats-origin", "stats")
	req.Header.Set("x-nba-stats-token", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats %s returned %d: %s", endpoint, resp.StatusCode, truncate(body, 200))
	}

	var result statsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	for _, rs := range result.ResultSets {
		if rs.Name == setName {
			return &table{headers: rs.Headers, rows: rs.RowSet}, nil
		}
	}
	return nil, fmt.Errorf("stats %s: result set %q missing from response", endpoint, setName)
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
