package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ikkim/shopit-client/pkg/logger"
)

// TokenSource supplies the current session token, if any.
// An empty string means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Config represents the configuration for the API client
type Config struct {
	// BaseURL is the backend base URL, without a trailing slash
	BaseURL string

	// Version is the API version advertised on every request.
	// Empty means no version header is sent.
	Version string

	// Timeout is the fixed per-request timeout
	Timeout time.Duration
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// Client is the single HTTP adapter every domain service goes through.
// It attaches the bearer token, normalizes every failure into *Error and
// runs the unauthorized hook on 401. Calls are fire-once: no retries.
type Client struct {
	config         Config
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

// NewClient creates a new API client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// SetTokenSource binds the session token source used for the
// Authorization header.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// SetUnauthorizedHook registers the cross-cutting 401 handler.
// It runs once per 401 response, regardless of which operation
// triggered it.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// Request performs a single HTTP call and returns the raw response body.
// Every failure comes back as *Error carrying a user-facing message.
func (c *Client) Request(ctx context.Context, method, path string, body interface{}, params url.Values) ([]byte, error) {
	u := c.config.BaseURL + "/" + strings.TrimPrefix(path, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Code: CodeBadRequest, Message: msgServerFailure, cause: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, &Error{Code: CodeBadRequest, Message: msgServerFailure, cause: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.Version != "" {
		req.Header.Set("X-Api-Version", c.config.Version)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response reached the client: connectivity error,
		// distinct from anything the server returned.
		logger.Warn("API request failed before a response was received", map[string]interface{}{
			"method": method,
			"path":   path,
		})
		return nil, &Error{Code: CodeNetwork, Message: msgNetworkFailure, cause: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Code: CodeDecode, Message: msgServerFailure, cause: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		logger.Warn("Received 401, resetting session", map[string]interface{}{
			"method": method,
			"path":   path,
		})
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, &Error{
			Code:    CodeUnauthorized,
			Message: msgLoginRequired,
			Status:  resp.StatusCode,
			cause:   ErrUnauthorized,
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &Error{
			Code:    CodeServer,
			Message: serverMessage(respBody),
			Status:  resp.StatusCode,
		}
	}

	return respBody, nil
}

// serverMessage extracts the human-readable message from an error body,
// falling back to the generic localized message.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return msgServerFailure
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.Request(ctx, http.MethodGet, path, nil, params)
}

// Post performs a POST request with a JSON body
func (c *Client) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.Request(ctx, http.MethodPost, path, body, nil)
}

// Patch performs a PATCH request with a JSON body
func (c *Client) Patch(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.Request(ctx, http.MethodPatch, path, body, nil)
}

// Put performs a PUT request with a JSON body
func (c *Client) Put(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.Request(ctx, http.MethodPut, path, body, nil)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.Request(ctx, http.MethodDelete, path, nil, nil)
}

// DecodeJSON unmarshals a response body produced by Request
func DecodeJSON(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &Error{Code: CodeDecode, Message: msgServerFailure, cause: err}
	}
	return nil
}
