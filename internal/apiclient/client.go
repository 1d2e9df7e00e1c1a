// Package apiclient provides a thin JSON client for the MindEase API. It
// attaches the cached bearer token to every request and does no retrying.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// TokenSource supplies the Authorization header value for outgoing requests.
// An empty value means no active session. *application.SessionStore
// satisfies this interface.
type TokenSource interface {
	AuthorizationHeader() string
}

// StatusError reports a non-2xx response. Message carries the server's
// human-readable message when the body could be decoded.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "apiclient: <nil>"
	}
	if e.Message != "" {
		return fmt.Sprintf("apiclient: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("apiclient: unexpected status %d", e.StatusCode)
}

// Client issues JSON requests against a single base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// New constructs a Client. A nil httpClient falls back to
// http.DefaultClient; a nil tokens source sends unauthenticated requests.
func New(baseURL string, httpClient *http.Client, tokens TokenSource) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
	}
}

// Get issues a GET request and decodes the response body into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request carrying body as JSON and decodes the response
// body into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request carrying body as JSON and decodes the response
// body into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request. Responses with no body are fine.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c == nil {
		return fmt.Errorf("Client is nil")
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if header := c.tokens.AuthorizationHeader(); header != "" {
			req.Header.Set("Authorization", header)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

func readErrorMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if json.NewDecoder(body).Decode(&payload) != nil {
		return ""
	}
	return payload.Message
}
