// Package backend is the single choke point for calls to the upstream
// property-management API. Every request goes through here so the bearer
// token, the auth-loading gate, the envelope decoding and the circuit
// breaker live in exactly one place.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/resilience"
	"github.com/odlemon/khaya-portal-sub000/internal/port"
)

var tracer = otel.Tracer("backend")

// envelope is the upstream response shape: {success, data, message?}.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// Client wraps authenticated HTTP calls to the backend REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     port.TokenSource
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	cfg        resilience.Config
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewClient creates a backend client. tokens gates every call: while the
// session is initializing all methods fail fast with ErrAuthNotReady and
// no network traffic happens.
func NewClient(httpClient *http.Client, baseURL string, tokens port.TokenSource, cb *gobreaker.CircuitBreaker, cfg resilience.Config, metrics *observability.Metrics, logger *zap.Logger) *Client {
	limit := cfg.MaxConcurrency
	if limit <= 0 {
		limit = 16
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		tokens:     tokens,
		cb:         cb,
		bulkhead:   resilience.NewBulkhead(limit),
		cfg:        cfg,
		metrics:    metrics,
		logger:     logger,
	}
}

// Get performs an authenticated GET and decodes the envelope's data into out.
// Idempotent, so it runs under the retry policy; a definitive upstream
// answer (4xx, failing envelope) ends the loop early.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	token, err := c.tokens.Token()
	if err != nil {
		return err
	}
	if err := c.bulkhead.Acquire(ctx); err != nil {
		return err
	}
	defer c.bulkhead.Release()

	_, err = c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			return classify(c.do(ctx, http.MethodGet, path, token, "", nil, out, nil))
		})
	})
	return c.wrap(err)
}

// GetConditional performs a GET with If-None-Match. On 304 it returns
// ErrNotModified and the etag unchanged; otherwise the new ETag header.
func (c *Client) GetConditional(ctx context.Context, path, etag string, out any) (string, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return etag, err
	}

	if err := c.bulkhead.Acquire(ctx); err != nil {
		return etag, err
	}
	defer c.bulkhead.Release()

	var newETag string
	var notModified bool
	_, err = c.cb.Execute(func() (any, error) {
		err := c.do(ctx, http.MethodGet, path, token, etag, nil, out, &newETag)
		if err == domain.ErrNotModified {
			// A 304 is a healthy upstream answer, not a breaker failure.
			notModified = true
			return nil, nil
		}
		return nil, err
	})
	if err != nil {
		return etag, c.wrap(err)
	}
	if notModified {
		return etag, domain.ErrNotModified
	}
	return newETag, nil
}

// Post performs an authenticated POST. One-shot: writes are never retried.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.write(ctx, http.MethodPost, path, body, out)
}

// Put performs an authenticated PUT. One-shot.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.write(ctx, http.MethodPut, path, body, out)
}

// Delete performs an authenticated DELETE. One-shot.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.write(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) write(ctx context.Context, method, path string, body, out any) error {
	token, err := c.tokens.Token()
	if err != nil {
		return err
	}

	_, err = c.cb.Execute(func() (any, error) {
		return nil, c.do(ctx, method, path, token, "", body, out, nil)
	})
	return c.wrap(err)
}

// do executes one request. A non-empty token becomes the bearer header;
// anonymous calls pass through unauthenticated.
func (c *Client) do(ctx context.Context, method, path, token, etag string, body, out any, etagOut *string) (err error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("Backend.%s %s", method, path))
	defer span.End()
	span.SetAttributes(attribute.String("http.method", method), attribute.String("http.path", path))

	dom := pathDomain(path)
	start := time.Now()
	defer func() {
		c.metrics.RecordRequestDuration(dom, time.Since(start))
		if err != nil && err != domain.ErrNotModified {
			c.metrics.IncrUpstreamError(dom)
		}
	}()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return domain.ErrNotModified
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &domain.ErrUnauthorized{Message: upstreamMessage(raw)}
	case resp.StatusCode == http.StatusNotFound:
		return &domain.ErrNotFound{Resource: "resource", ID: path}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.logger.Warn("backend: non-2xx response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return &domain.ErrUpstream{Status: resp.StatusCode, Message: upstreamMessage(raw)}
	}

	if etagOut != nil {
		*etagOut = resp.Header.Get("ETag")
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if !env.Success {
		return &domain.ErrUpstream{Status: resp.StatusCode, Message: env.Message}
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}

	c.logger.Debug("backend: request OK",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}

// classify decides whether a read failure deserves another attempt.
// Transport faults and 5xx answers are transient; everything the
// upstream answered deliberately is permanent.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var upstream *domain.ErrUpstream
	if errors.As(err, &upstream) {
		if upstream.Status >= 500 {
			return err
		}
		return resilience.Permanent(err)
	}
	switch err.(type) {
	case *domain.ErrUnauthorized, *domain.ErrNotFound:
		return resilience.Permanent(err)
	}
	if err == domain.ErrNotModified {
		return resilience.Permanent(err)
	}
	return err
}

// wrap tags transport-level failures; typed domain errors pass through.
func (c *Client) wrap(err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *domain.ErrUnauthorized, *domain.ErrNotFound, *domain.ErrUpstream:
		return err
	}
	if err == domain.ErrAuthNotReady || err == domain.ErrNotModified {
		return err
	}
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return &domain.ErrCircuitOpen{Service: "backend-api"}
	}
	return &domain.ErrExternalService{Service: "backend-api", Err: err}
}

// pathDomain reduces a request path to its first segment, so metric
// labels stay low-cardinality ("/agreements/ag-1" counts as "agreements").
func pathDomain(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	if trimmed == "" {
		return "root"
	}
	return trimmed
}

func upstreamMessage(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return ""
}
