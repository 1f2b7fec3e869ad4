// Package client is the authenticated REST client for the AgentForge
// backend API.
//
// All methods take a context, attach the bearer token from the
// configured token source, decode structured error bodies, and surface
// 401s as ErrUnauthorized after firing the OnUnauthorized hook so the
// caller can drop its session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Maroco0109/AgentForge-sub000/pkg/observability"
)

// apiPrefix is prepended to every endpoint path.
const apiPrefix = "/api/v1"

// TokenSource supplies the current bearer token, or "" when logged out.
type TokenSource func() string

// Client talks to the AgentForge REST API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokenSource    TokenSource
	onUnauthorized func()
	logger         *slog.Logger
	spans          observability.SpanManager
	metrics        observability.MetricsRecorder
	retry          RetryConfig
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets the bearer token supplier.
func WithTokenSource(src TokenSource) Option {
	return func(c *Client) { c.tokenSource = src }
}

// WithOnUnauthorized registers a hook fired when any request gets a 401.
// The session layer uses it to clear the stored token.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithLogger sets the structured logger. Nil disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithObservability sets the span manager and metrics recorder.
func WithObservability(spans observability.SpanManager, metrics observability.MetricsRecorder) Option {
	return func(c *Client) {
		c.spans = spans
		c.metrics = metrics
	}
}

// WithRetry sets the retry policy for idempotent (GET) requests.
func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// New creates a client for the given base URL (scheme + host, no path).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		spans:      observability.NoopSpanManager{},
		metrics:    observability.NoopMetrics{},
		retry:      NoRetry,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorBody is the backend's structured error envelope.
type errorBody struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// do performs one request. body (when non-nil) is JSON-encoded; out
// (when non-nil) receives the decoded 2xx response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, span := c.spans.StartRequestSpan(ctx, method, path)
	start := time.Now()
	status, err := c.doOnce(ctx, method, path, body, out)
	c.spans.EndSpanWithError(span, err)
	c.metrics.RecordRequest(ctx, method, path, status, time.Since(start))

	if err != nil {
		observability.LogRequestError(c.logger, method, path, err)
		return err
	}
	observability.LogRequestDone(c.logger, method, path, status, time.Since(start))
	return nil
}

// get performs a GET with the configured retry policy.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return withRetry(ctx, c.retry, func(ctx context.Context) error {
		return c.do(ctx, http.MethodGet, path, nil, out)
	})
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out any) (int, error) {
	observability.LogRequest(c.logger, method, path)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(resp),
			Endpoint:   path,
		}
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return resp.StatusCode, httpErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return resp.StatusCode, nil
}

// extractErrorMessage pulls the message out of a structured error body,
// falling back to the HTTP status text.
func extractErrorMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(raw) > 0 {
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil {
			if eb.Detail != "" {
				return eb.Detail
			}
			if eb.Error != "" {
				return eb.Error
			}
		}
	}
	return http.StatusText(resp.StatusCode)
}
