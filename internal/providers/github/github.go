// Package github implements the repository enrichment providers (star and
// author lookup, README fetch) and the pull-request comment thread against
// the GitHub REST API. Repositories hosted elsewhere degrade to absent
// enrichment rather than failing a run.
package github

import (
	"context"
	"fmt"

	"github.com/agentstation/plugsync/internal/transport"
	"github.com/agentstation/plugsync/pkg/enrich"
	"github.com/agentstation/plugsync/pkg/errors"
	"github.com/agentstation/plugsync/pkg/manifest"
)

// DefaultBaseURL is the GitHub API root.
const DefaultBaseURL = "https://api.github.com"

// sourceHost is the only repository host this client can enrich.
const sourceHost = "github.com"

// Client talks to the GitHub REST API. An empty token works for public
// repositories at a lower rate limit.
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

// WithTransport replaces the transport client.
func WithTransport(client *transport.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// New creates a GitHub client.
func New(token string, opts ...Option) *Client {
	c := &Client{
		client:  transport.New("github", &transport.BearerAuth{Token: token}),
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// repoResponse is the subset of the repository payload plugsync reads.
type repoResponse struct {
	StargazersCount int `json:"stargazers_count"`
	Owner           struct {
		Login     string `json:"login"`
		HTMLURL   string `json:"html_url"`
		AvatarURL string `json:"avatar_url"`
	} `json:"owner"`
}

// RepoInfo implements enrich.RepoInfoProvider.
func (c *Client) RepoInfo(ctx context.Context, repo manifest.Repo) (*enrich.RepoInfo, error) {
	if repo.Source != sourceHost {
		return nil, fmt.Errorf("unsupported repository host %s: %w", repo.Source, errors.ErrNotFound)
	}

	var resp repoResponse
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, repo.Owner, repo.Name)
	if err := c.client.Get(ctx, url, &resp); err != nil {
		return nil, err
	}

	return &enrich.RepoInfo{
		Stars:        resp.StargazersCount,
		AuthorName:   resp.Owner.Login,
		AuthorLink:   resp.Owner.HTMLURL,
		AuthorAvatar: resp.Owner.AvatarURL,
	}, nil
}

// Readme implements enrich.ReadmeProvider. It asks for the raw rendering so
// the body arrives as markdown instead of base64 JSON.
func (c *Client) Readme(ctx context.Context, repo manifest.Repo) (string, error) {
	if repo.Source != sourceHost {
		return "", fmt.Errorf("unsupported repository host %s: %w", repo.Source, errors.ErrNoContent)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/readme", c.baseURL, repo.Owner, repo.Name)
	content, err := c.client.GetText(ctx, url, "application/vnd.github.raw+json")
	if err != nil {
		if errors.IsNotFound(err) {
			return "", errors.ErrNoContent
		}
		return "", err
	}
	if content == "" {
		return "", errors.ErrNoContent
	}
	return content, nil
}
