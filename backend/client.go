// Package backend is the gateway to the remote commerce API: stateless JSON
// request/response calls with a bounded timeout. Transport errors, timeouts,
// non-200 responses, and backend-reported failures all surface as errors —
// partial success is never interpreted. No retries and no auth live here.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/delivio/actionserver/observability"
)

const defaultTimeout = 8 * time.Second

// Gateway event types.
const (
	EventCall  observability.EventType = "backend.call"
	EventError observability.EventType = "backend.error"
)

// Config holds gateway initialization parameters.
type Config struct {
	BaseURL string `json:"base_url,omitempty"`
	// TimeoutSeconds bounds each call; 0 means the 8 second default.
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`
}

// DefaultConfig returns the default gateway configuration.
func DefaultConfig() Config {
	return Config{TimeoutSeconds: int(defaultTimeout / time.Second)}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
	if source.TimeoutSeconds > 0 {
		c.TimeoutSeconds = source.TimeoutSeconds
	}
}

// Client calls the commerce API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   observability.Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client (used by tests).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithObserver sets the observer for call events.
func WithObserver(observer observability.Observer) Option {
	return func(c *Client) { c.observer = observer }
}

// New creates a Client from configuration.
func New(cfg *Config, opts ...Option) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		observer:   observability.NoOpObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the backend's standard response wrapper.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

const statusOK = 1

func (c *Client) emit(ctx context.Context, eventType observability.EventType, level observability.Level, data map[string]any) {
	c.observer.OnEvent(ctx, observability.Event{
		Type:      eventType,
		Level:     level,
		Timestamp: time.Now(),
		Source:    "backend.Client",
		Data:      data,
	})
}

// postJSON issues a POST with a JSON body and decodes the JSON response into
// out. HTTP-level failures map to ErrUnavailable.
func (c *Client) postJSON(ctx context.Context, op, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(ctx, op, req, out)
}

// getJSON issues a GET with query parameters and decodes the JSON response
// into out.
func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return c.do(ctx, op, req, out)
}

func (c *Client) do(ctx context.Context, op string, req *http.Request, out any) error {
	c.emit(ctx, EventCall, observability.LevelVerbose, map[string]any{
		"op":     op,
		"method": req.Method,
		"path":   req.URL.Path,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.emit(ctx, EventError, observability.LevelWarning, map[string]any{
			"op":    op,
			"error": err.Error(),
		})
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.emit(ctx, EventError, observability.LevelWarning, map[string]any{
			"op":     op,
			"status": resp.StatusCode,
		})
		return fmt.Errorf("%s: %w: status %d", op, ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		c.emit(ctx, EventError, observability.LevelWarning, map[string]any{
			"op":    op,
			"error": err.Error(),
		})
		return fmt.Errorf("%s: %w: decode response: %w", op, ErrUnavailable, err)
	}

	return nil
}

// postEnvelope issues a POST to an envelope endpoint and returns the
// envelope data. A status other than 1 maps to *APIError with the backend's
// message.
func (c *Client) postEnvelope(ctx context.Context, op, path string, body any) (json.RawMessage, error) {
	var env envelope
	if err := c.postJSON(ctx, op, path, body, &env); err != nil {
		return nil, err
	}

	if env.Status != statusOK {
		c.emit(ctx, EventError, observability.LevelWarning, map[string]any{
			"op":      op,
			"status":  env.Status,
			"message": env.Message,
		})
		return nil, &APIError{Op: op, Message: env.Message}
	}

	return env.Data, nil
}
