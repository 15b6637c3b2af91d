package search

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/Iron-Ham/moviefinder/internal/errors"
	"github.com/Iron-Ham/moviefinder/internal/logging"
)

const (
	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 8 << 20

	// maxDetailBytes caps how much of an unparseable error body is kept for logs.
	maxDetailBytes = 512

	userAgent = "moviefinder"
)

// Compile-time check.
var _ Searcher = (*HTTPClient)(nil)

// HTTPClient implements Searcher against the backend's JSON HTTP API.
type HTTPClient struct {
	searchURL  string
	healthURL  string
	httpClient *http.Client
	logger     *logging.Logger
}

// ClientOption configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithTimeout sets the HTTP client timeout. Zero leaves requests unbounded.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

// WithHealthURL sets the URL probed by Health.
func WithHealthURL(url string) ClientOption {
	return func(c *HTTPClient) {
		c.healthURL = url
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}

// NewHTTPClient creates a client that posts searches to searchURL.
func NewHTTPClient(searchURL string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		searchURL:  searchURL,
		httpClient: &http.Client{},
		logger:     logging.NopLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent("search")

	return c
}

// SearchURL returns the endpoint searches are posted to.
func (c *HTTPClient) SearchURL() string {
	return c.searchURL
}

// Search posts query and parses the response. Any failure is a
// *errors.BackendError.
func (c *HTTPClient) Search(ctx context.Context, requestID, query string) (*Result, error) {
	log := c.logger.WithRequest(requestID)

	reqBytes, err := json.Marshal(Request{Query: query})
	if err != nil {
		return nil, c.backendErr(errors.KindUnreachable, "marshal request", err, requestID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL, bytes.NewReader(reqBytes))
	if err != nil {
		return nil, c.backendErr(errors.KindUnreachable, "create request", err, requestID)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.backendErr(errors.KindUnreachable, "send request", c.classifyTransport(err), requestID).
			WithSeverity(errors.SeverityWarning)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, c.backendErr(errors.KindUnreachable, "read response", c.classifyTransport(err), requestID).
			WithSeverity(errors.SeverityWarning)
	}

	log.Debug("search response received",
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.backendErr(errors.KindRejected, "search failed", nil, requestID).
			WithStatus(resp.StatusCode).
			WithDetail(errorDetail(body))
	}

	result, err := decodeResult(body)
	if err != nil {
		return nil, c.backendErr(errors.KindMalformed, "decode response", err, requestID).
			WithStatus(resp.StatusCode)
	}
	return result, nil
}

// Health probes the backend health endpoint. A non-success status is a
// rejected backend error; the decoded body is returned when it parses.
func (c *HTTPClient) Health(ctx context.Context) (*HealthStatus, error) {
	if c.healthURL == "" {
		return nil, errors.NewValidationError("health URL not configured").WithField("backend.health_path")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, nil)
	if err != nil {
		return nil, errors.NewBackendError(errors.KindUnreachable, "create request", err).WithEndpoint(c.healthURL)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewBackendError(errors.KindUnreachable, "send request", c.classifyTransport(err)).
			WithEndpoint(c.healthURL).
			WithSeverity(errors.SeverityWarning)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.NewBackendError(errors.KindUnreachable, "read response", err).WithEndpoint(c.healthURL)
	}

	var status HealthStatus
	decodeErr := json.Unmarshal(body, &status)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewBackendError(errors.KindRejected, "health check failed", nil).
			WithEndpoint(c.healthURL).
			WithStatus(resp.StatusCode).
			WithDetail(errorDetail(body))
	}
	if decodeErr != nil {
		return nil, errors.NewBackendError(errors.KindMalformed, "decode health response", decodeErr).WithEndpoint(c.healthURL)
	}
	return &status, nil
}

func (c *HTTPClient) backendErr(kind errors.BackendKind, msg string, cause error, requestID string) *errors.BackendError {
	return errors.NewBackendError(kind, msg, cause).
		WithEndpoint(c.searchURL).
		WithRequestID(requestID)
}

// classifyTransport marks deadline failures so they read as timeouts in logs.
func (c *HTTPClient) classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return errors.NewTimeoutError("backend request", c.httpClient.Timeout).WithCause(err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", errors.ErrCanceled, err)
	}
	return err
}

// decodeResult parses a success body. A body that is not an object, or
// whose movies field is missing or null, is malformed.
func decodeResult(body []byte) (*Result, error) {
	var wire wireResult
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if wire.Movies == nil {
		return nil, fmt.Errorf("response has no movies field")
	}

	result := &Result{
		Movies: *wire.Movies,
		Query:  wire.Query,
	}
	if result.Movies == nil {
		result.Movies = []MovieCard{}
	}
	if wire.Analysis != nil {
		result.Analysis = *wire.Analysis
	}
	return result, nil
}

// errorDetail extracts the backend's error text from a failure body.
func errorDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		if eb.Details != "" {
			return eb.Error + ": " + eb.Details
		}
		return eb.Error
	}
	if len(body) > maxDetailBytes {
		return string(body[:maxDetailBytes]) + "..."
	}
	return string(bytes.TrimSpace(body))
}
