// Package apiclient provides a lightweight HTTP client for the club
// management REST API. Every response uses the standard envelope
// {success, data, message, errors}; failures are reported as *APIError.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"
)

// TokenSource supplies the bearer credential for outgoing requests.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() (string, bool)
}

// staticToken is a TokenSource for a fixed token.
type staticToken string

func (s staticToken) Token() (string, bool) { return string(s), s != "" }

// Client is an HTTP client for the club management API.
type Client struct {
	baseURL        string
	tokens         TokenSource
	httpClient     *http.Client
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets a fixed bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.tokens = staticToken(token) }
}

// WithTokenSource sets the credential source consulted on every request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithOnUnauthorized registers a callback invoked whenever the server
// answers 401, before the error is returned to the caller. The session
// layer uses it to clear stored credentials.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// New creates an API client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the standard API response wrapper. The token field is
// only populated by the login endpoint.
type envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
	Token   string              `json:"token"`
}

// do performs a request and returns the decoded envelope. Any HTTP
// status >= 400 or an envelope with success=false becomes an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	slog.Debug("api request", "method", method, "path", path, "status", resp.StatusCode)

	var env envelope
	if len(respBody) > 0 {
		// A non-JSON body (proxy error page, empty 204) is tolerated;
		// the status code alone decides success then.
		_ = json.Unmarshal(respBody, &env)
	}

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	if resp.StatusCode >= 400 || !env.Success {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    env.Message,
			Fields:     env.Errors,
		}
		if apiErr.Message == "" && apiErr.StatusCode >= 400 {
			apiErr.Message = http.StatusText(apiErr.StatusCode)
		}
		return &env, apiErr
	}

	return &env, nil
}

// request performs a request and decodes the envelope's data into result.
func (c *Client) request(ctx context.Context, method, path string, body, result interface{}) error {
	env, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if result != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
	}
	return nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	return c.request(ctx, http.MethodGet, path, nil, result)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body, result interface{}) error {
	return c.request(ctx, http.MethodPost, path, body, result)
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body, result interface{}) error {
	return c.request(ctx, http.MethodPut, path, body, result)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.request(ctx, http.MethodDelete, path, nil, nil)
}

// APIError represents a failed API call: the HTTP status, the server's
// message, and per-field validation messages when the server sent any.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
}

func (e *APIError) Error() string {
	msg := e.Message
	if fm := e.FieldMessages(); fm != "" {
		if msg != "" {
			return fmt.Sprintf("%s: %s", msg, fm)
		}
		return fm
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return msg
}

// FieldMessages flattens per-field validation errors into a single
// "field: message" list, ordered by field name.
func (e *APIError) FieldMessages() string {
	if len(e.Fields) == 0 {
		return ""
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Fields[f], ", ")))
	}
	return strings.Join(parts, "; ")
}

// asAPIError unwraps err into an *APIError if it is one.
func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 Unauthorized error.
func IsUnauthorized(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}

// IsForbidden reports whether err is a 403 Forbidden error.
func IsForbidden(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 Not Found error.
func IsNotFound(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// IsValidation reports whether err is a 422 validation error.
func IsValidation(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.StatusCode == http.StatusUnprocessableEntity
}

// IsConflict reports whether err is a 400 integrity error, e.g. deleting
// a category that still has athletes assigned.
func IsConflict(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.StatusCode == http.StatusBadRequest
}
