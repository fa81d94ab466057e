// Package apiclient provides an HTTP client for the aid management backend.
// This package is used by CLI commands for every remote operation.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alfurqan/aidctl/internal/pkg/logger"
)

// ClientConfig holds configuration for the backend client
type ClientConfig struct {
	// BaseURL of the backend (scheme://host[:port])
	BaseURL string

	// Tokens supplies the bearer token for authenticated requests
	Tokens TokenSource

	// Observer receives per-request metrics (optional)
	Observer Observer

	// HTTPClient overrides the transport (optional)
	HTTPClient *http.Client

	// Timeout for operations (default: 30s)
	Timeout time.Duration
}

// TokenSource returns the bearer token for the current session
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource with a fixed token
type StaticToken string

// Token returns the fixed token
func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// Observer records the outcome of each request
type Observer interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Client talks to the backend REST API
type Client struct {
	base    *url.URL
	http    *http.Client
	tokens  TokenSource
	obs     Observer
	timeout time.Duration
}

// NewClient creates a backend client
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("backend URL is required")
	}
	base, err := url.Parse(strings.TrimRight(config.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL %q: %w", config.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend URL %q: scheme must be http or https", config.BaseURL)
	}

	// Set default timeout
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		base:    base,
		http:    httpClient,
		tokens:  config.Tokens,
		obs:     config.Observer,
		timeout: timeout,
	}, nil
}

// BaseURL returns the backend origin the client talks to
func (c *Client) BaseURL() string {
	return c.base.String()
}

// context returns a context with the configured timeout
func (c *Client) context(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, c.timeout)
}

var (
	// ErrNotFound matches 404 responses
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized matches 401 and 403 responses
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response from the backend
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

// Is maps status codes onto the package sentinel errors
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

// errorBody covers both error shapes the backend returns
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Message is the generic {"message": ...} acknowledgement body
type Message struct {
	Message string `json:"message"`
	Success bool   `json:"success,omitempty"`
}

// request describes one API call
type request struct {
	method      string
	path        string
	route       string // low-cardinality label for metrics
	query       url.Values
	body        any
	rawBody     io.Reader
	contentType string
	anonymous   bool
}

// do performs req and decodes a successful JSON response into out (if non-nil)
func (c *Client) do(ctx context.Context, req request, out any) error {
	ctx, cancel := c.context(ctx)
	defer cancel()

	u := *c.base
	u.Path = c.base.Path + req.path
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	body := req.rawBody
	contentType := req.contentType
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)

	if !req.anonymous && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to load session token: %w", err)
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	route := req.route
	if route == "" {
		route = req.path
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	elapsed := time.Since(start)
	if err != nil {
		c.observe(req.method, route, 0, elapsed)
		return fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.observe(req.method, route, resp.StatusCode, elapsed)

	logger.Debug("API request",
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", elapsed)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: failed to read response: %w", req.method, req.path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Method: req.method, Path: req.path, Status: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			apiErr.Message = eb.Error
			if apiErr.Message == "" {
				apiErr.Message = eb.Message
			}
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", req.method, req.path, err)
	}
	return nil
}

func (c *Client) observe(method, route string, status int, elapsed time.Duration) {
	if c.obs != nil {
		c.obs.ObserveRequest(method, route, status, elapsed)
	}
}
