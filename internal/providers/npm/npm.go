// Package npm implements the package download-count provider against the
// npm registry's downloads API.
package npm

import (
	"context"
	"fmt"

	"github.com/agentstation/plugsync/internal/transport"
	"github.com/agentstation/plugsync/pkg/errors"
)

// DefaultBaseURL is the npm downloads API root.
const DefaultBaseURL = "https://api.npmjs.org"

// Client looks up package download counts.
type Client struct {
	client  *transport.Client
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root. Tests point it at an httptest server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// New creates an npm client. The downloads API needs no authentication.
func New(opts ...Option) *Client {
	c := &Client{
		client:  transport.New("npm", &transport.NoAuth{}),
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type downloadsResponse struct {
	Downloads int    `json:"downloads"`
	Package   string `json:"package"`
}

// Downloads implements enrich.DownloadsProvider. It asks for the last
// month's count under the plugin's manifest name first, then under the
// repository name, since some plugins publish under a different package
// name than they are listed with.
func (c *Client) Downloads(ctx context.Context, packageName, repoName string) (int, error) {
	count, err := c.lookup(ctx, packageName)
	if err == nil {
		return count, nil
	}
	if !errors.IsNotFound(err) {
		return 0, err
	}

	if repoName != "" && repoName != packageName {
		count, fallbackErr := c.lookup(ctx, repoName)
		if fallbackErr == nil {
			return count, nil
		}
	}
	return 0, err
}

func (c *Client) lookup(ctx context.Context, name string) (int, error) {
	var resp downloadsResponse
	url := fmt.Sprintf("%s/downloads/point/last-month/%s", c.baseURL, name)
	if err := c.client.Get(ctx, url, &resp); err != nil {
		return 0, err
	}
	return resp.Downloads, nil
}
