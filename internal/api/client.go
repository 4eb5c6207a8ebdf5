package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ThanhY111003/dealer-console/internal/session"
)

var (
	// ErrNotFound is returned for HTTP 404 responses. Callers that treat
	// absence as a normal state (the cart fetch) check for it with errors.Is.
	ErrNotFound = errors.New("resource not found")

	// ErrSessionExpired is returned for HTTP 401 responses, after the
	// session has been cleared.
	ErrSessionExpired = errors.New("session expired")
)

// genericMessage is the last-resort user-facing error text when the server
// provided nothing usable.
const genericMessage = "Something went wrong. Please try again."

// Error is a failed API call: either the server answered with
// success=false, or the response could not be used. Message is safe to show
// to the user.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// envelope is the wrapper every API response uses. The client branches on
// Success, never on HTTP status alone (401 and the cart-fetch 404 excepted).
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Err     string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Client is the shared HTTP client for the dealer API. It injects the
// session's bearer token into every request, decodes the response envelope,
// and enforces one fixed timeout. No request is ever retried.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        *session.Session
	onUnauthorized func()
	log            *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithUnauthorizedHook registers a callback invoked after a 401 clears the
// session, before ErrSessionExpired is returned.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New creates a client for the API at baseURL.
func New(baseURL string, sess *session.Session, timeout time.Duration, log *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		session:    sess,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues a GET and decodes the envelope's data into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the envelope's data into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a bodyless PUT (parameters travel in the path/query).
func (c *Client) Put(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("request failed", "method", method, "path", path, "error", err)
		return &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn("unauthorized response, clearing session", "path", path)
		c.session.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrSessionExpired
	}

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode == http.StatusNotFound {
		if decodeErr == nil && (env.Message != "" || env.Err != "") {
			return fmt.Errorf("%s: %w", failureMessage(&env), ErrNotFound)
		}
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}

	if decodeErr != nil {
		if resp.StatusCode >= 400 {
			return &Error{StatusCode: resp.StatusCode, Message: genericMessage}
		}
		return fmt.Errorf("decode response: %w", decodeErr)
	}

	if !env.Success {
		return &Error{StatusCode: resp.StatusCode, Message: failureMessage(&env)}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}

	return nil
}

// failureMessage picks the user-facing text for a failed envelope:
// message, then error, then the generic fallback.
func failureMessage(env *envelope) string {
	if env.Message != "" {
		return env.Message
	}
	if env.Err != "" {
		return env.Err
	}
	return genericMessage
}

// Message extracts the user-facing text from any error produced by this
// package, falling back to the error's own text and finally to the generic
// string.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return genericMessage
}
