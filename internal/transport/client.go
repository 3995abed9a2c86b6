// Package transport provides the authenticated JSON HTTP client shared by
// the store and provider integrations.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/agentstation/plugsync/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
const DefaultHTTPTimeout = 30 * time.Second

// Client provides JSON HTTP functionality with authentication.
type Client struct {
	service string
	http    *http.Client
	auth    Authenticator
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Tests point it at an
// httptest server's client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// New creates a transport client for the named external service.
func New(service string, auth Authenticator, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	c := &Client{
		service: service,
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		auth:    auth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs a JSON request. A non-nil body is JSON-encoded; a non-nil out
// receives the decoded response body. Non-2xx statuses become APIErrors
// carrying the status code, so callers can match errors.ErrNotFound and
// errors.ErrRateLimited.
func (c *Client) Do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.WrapParse("json", "", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return errors.WrapResource("create", "request", method+" "+url, err)
	}

	c.auth.Apply(req)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &errors.APIError{
			Service:  c.service,
			Endpoint: url,
			Message:  "request failed",
			Err:      err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &errors.APIError{
			Service:    c.service,
			Endpoint:   url,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WrapParse("json", url, err)
	}
	return nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string, out any) error {
	return c.Do(ctx, http.MethodGet, url, nil, out)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, url string, body, out any) error {
	return c.Do(ctx, http.MethodPost, url, body, out)
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, url string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, url, body, out)
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, url string, body, out any) error {
	return c.Do(ctx, http.MethodPut, url, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, url string) error {
	return c.Do(ctx, http.MethodDelete, url, nil, nil)
}

// GetText performs a GET request and returns the raw response body. Used for
// README fetches where the payload is markdown, not JSON.
func (c *Client) GetText(ctx context.Context, url string, accept string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.WrapResource("create", "request", "GET "+url, err)
	}

	c.auth.Apply(req)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &errors.APIError{
			Service:  c.service,
			Endpoint: url,
			Message:  "request failed",
			Err:      err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &errors.APIError{
			Service:    c.service,
			Endpoint:   url,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.WrapIO("read", url, err)
	}
	return string(data), nil
}
