package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/wayfinder/pkg/observability"
)

// Client is a thin JSON-over-HTTP client with retry and observability hooks.
// Server errors (5xx) and transport failures retry with backoff; client
// errors (4xx) fail immediately.
type Client struct {
	http *http.Client
}

// NewClient creates a client with the given request timeout.
// A timeout of zero means no timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{http: &http.Client{Timeout: timeout}}
}

// GetJSON fetches url and unmarshals the response body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	return RetryWithBackoff(ctx, func() error {
		return c.getJSONOnce(ctx, url, v)
	})
}

func (c *Client) getJSONOnce(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return Retryable(fmt.Errorf("get %s: %w", url, err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode >= 500:
		return Retryable(fmt.Errorf("get %s: status %d", url, resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("get %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Retryable(fmt.Errorf("read %s: %w", url, err))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
