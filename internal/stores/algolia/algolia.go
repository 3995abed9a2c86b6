// Package algolia implements the search-index store against the Algolia
// REST API. Records are keyed by objectID, which plugsync derives from the
// plugin slug.
package algolia

import (
	"context"
	"fmt"
	"net/url"

	"github.com/agentstation/plugsync/internal/transport"
	"github.com/agentstation/plugsync/pkg/catalog"
	"github.com/agentstation/plugsync/pkg/errors"
)

// Index is a catalog.SearchIndex backed by an Algolia index.
type Index struct {
	client  *transport.Client
	baseURL string
	name    string
}

// Option configures an Index.
type Option func(*Index)

// WithBaseURL overrides the API root. Tests point it at an httptest server.
func WithBaseURL(baseURL string) Option {
	return func(i *Index) {
		if baseURL != "" {
			i.baseURL = baseURL
		}
	}
}

// WithTransport replaces the transport client.
func WithTransport(client *transport.Client) Option {
	return func(i *Index) {
		if client != nil {
			i.client = client
		}
	}
}

// New creates an Index client for the given application and index name.
func New(appID, apiKey, name string, opts ...Option) (*Index, error) {
	if appID == "" || apiKey == "" || name == "" {
		return nil, errors.NewConfigError("algolia", "app id, api key, and index name are required", nil)
	}

	i := &Index{
		client: transport.New("algolia", &transport.HeaderAuth{Headers: map[string]string{
			"X-Algolia-Application-Id": appID,
			"X-Algolia-API-Key":        apiKey,
		}}),
		baseURL: fmt.Sprintf("https://%s-dsn.algolia.net", appID),
		name:    name,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

func (i *Index) indexURL() string {
	return fmt.Sprintf("%s/1/indexes/%s", i.baseURL, url.PathEscape(i.name))
}

func (i *Index) objectURL(objectID string) string {
	return fmt.Sprintf("%s/%s", i.indexURL(), url.PathEscape(objectID))
}

type browseResponse struct {
	Hits   []catalog.IndexRecord `json:"hits"`
	Cursor string                `json:"cursor"`
}

type browseRequest struct {
	Cursor string `json:"cursor,omitempty"`
}

// List implements catalog.SearchIndex via the browse endpoint, following the
// cursor until the index is exhausted.
func (i *Index) List(ctx context.Context) ([]catalog.IndexRecord, error) {
	var all []catalog.IndexRecord
	cursor := ""

	for {
		var page browseResponse
		if err := i.client.Post(ctx, i.indexURL()+"/browse", browseRequest{Cursor: cursor}, &page); err != nil {
			return nil, err
		}

		all = append(all, page.Hits...)
		if page.Cursor == "" {
			return all, nil
		}
		cursor = page.Cursor
	}
}

// Create implements catalog.SearchIndex. Algolia's save is an upsert keyed
// by objectID, which matches the create semantics here.
func (i *Index) Create(ctx context.Context, record catalog.IndexRecord) error {
	return i.client.Put(ctx, i.objectURL(record.ObjectID), record, nil)
}

// Update implements catalog.SearchIndex.
func (i *Index) Update(ctx context.Context, record catalog.IndexRecord) error {
	return i.client.Put(ctx, i.objectURL(record.ObjectID), record, nil)
}

// Delete implements catalog.SearchIndex.
func (i *Index) Delete(ctx context.Context, objectID string) error {
	return i.client.Delete(ctx, i.objectURL(objectID))
}
