package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/supplysight/sync-agent/internal/config"
	"github.com/supplysight/sync-agent/internal/version"
)

// Client is the typed REST client for the supply chain backend. Every call
// runs under the configured request timeout; transport and status failures
// come back as errors so callers decide whether to substitute fallback data.
type Client struct {
	config     *config.Config
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg *config.Config) *Client {
	scheme := "http"
	if cfg.TLSEnabled {
		scheme = "https"
	}

	return &Client{
		config:  cfg,
		baseURL: fmt.Sprintf("%s://%s:%d", scheme, cfg.BackendHost, cfg.BackendPort),
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

// BaseURL reports the resolved backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string, response interface{}) error {
	return c.request(ctx, http.MethodGet, path, nil, response)
}

func (c *Client) post(ctx context.Context, path string, body, response interface{}) error {
	return c.request(ctx, http.MethodPost, path, body, response)
}

func (c *Client) put(ctx context.Context, path string, body, response interface{}) error {
	return c.request(ctx, http.MethodPut, path, body, response)
}

func (c *Client) request(ctx context.Context, method, path string, body, response interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
		debugLog(c.config, "Making %s request to %s with body: %s", method, path, string(jsonData))
	} else {
		debugLog(c.config, "Making %s request to %s", method, path)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("sync-bridge/%s", version.GetVersion()))

	if c.config.Token != "" {
		req.Header.Set("X-Bridge-Token", c.config.Token)
	}

	// Write operations get a request ID so backend-side retries stay traceable.
	if method != http.MethodGet {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		debugLog(c.config, "Request failed: %v", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	debugLog(c.config, "Response status: %s (%d)", resp.Status, resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d: %s - %s", resp.StatusCode, resp.Status, string(respBody))
	}

	if response != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, response); err != nil {
			debugLog(c.config, "Failed to unmarshal response: %v (body: %s)", err, string(respBody))
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
