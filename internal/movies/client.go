// Package movies is a thin client for the upstream movies API that this
// service proxies for random picks and title search.
package movies

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/flicknest/backend/internal/metrics"
)

// Client talks to the upstream movies API over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new movies API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// makeRequest performs a GET against the upstream API and decodes the
// JSON array of movie documents it returns.
func (c *Client) makeRequest(ctx context.Context, endpoint, path string) ([]map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.Get().UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("movies API request failed: %w", err)
	}
	defer resp.Body.Close()

	m := metrics.Get()
	m.UpstreamRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()
	m.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("movies API error: status %d", resp.StatusCode)
	}

	var docs []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, fmt.Errorf("failed to decode movies API response: %w", err)
	}
	return docs, nil
}

// Random fetches count random movies from the upstream API.
func (c *Client) Random(ctx context.Context, count int) ([]map[string]interface{}, error) {
	return c.makeRequest(ctx, "random", fmt.Sprintf("/movies/random?count=%d", count))
}

// Search fetches movies whose titles match the query.
func (c *Client) Search(ctx context.Context, query string) ([]map[string]interface{}, error) {
	return c.makeRequest(ctx, "search", "/movies/search/"+url.PathEscape(query))
}
