// Package webflow implements the content-collection store against the
// Webflow CMS v2 API. Items are keyed by Webflow's opaque item id; plugin
// data lives in the item's fieldData.
package webflow

import (
	"context"
	"fmt"

	"github.com/agentstation/plugsync/internal/transport"
	"github.com/agentstation/plugsync/pkg/catalog"
	"github.com/agentstation/plugsync/pkg/errors"
)

// DefaultBaseURL is the Webflow API root.
const DefaultBaseURL = "https://api.webflow.com/v2"

// pageSize is Webflow's maximum items-per-page.
const pageSize = 100

// Store is a catalog.CollectionStore backed by a Webflow collection.
type Store struct {
	client       *transport.Client
	baseURL      string
	collectionID string
}

// Option configures a Store.
type Option func(*Store)

// WithBaseURL overrides the API root. Tests point it at an httptest server.
func WithBaseURL(baseURL string) Option {
	return func(s *Store) {
		if baseURL != "" {
			s.baseURL = baseURL
		}
	}
}

// WithTransport replaces the transport client.
func WithTransport(client *transport.Client) Option {
	return func(s *Store) {
		if client != nil {
			s.client = client
		}
	}
}

// New creates a Store for the given collection.
func New(token, collectionID string, opts ...Option) (*Store, error) {
	if collectionID == "" {
		return nil, errors.NewConfigError("webflow", "collection id is required", nil)
	}

	s := &Store{
		client:       transport.New("webflow", &transport.BearerAuth{Token: token}),
		baseURL:      DefaultBaseURL,
		collectionID: collectionID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// item is the wire shape of a Webflow collection item.
type item struct {
	ID        string         `json:"id"`
	FieldData catalog.Fields `json:"fieldData"`
}

type listResponse struct {
	Items      []item `json:"items"`
	Pagination struct {
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
		Total  int `json:"total"`
	} `json:"pagination"`
}

type itemPayload struct {
	IsArchived bool           `json:"isArchived"`
	IsDraft    bool           `json:"isDraft"`
	FieldData  catalog.Fields `json:"fieldData"`
}

func (s *Store) itemsURL() string {
	return fmt.Sprintf("%s/collections/%s/items", s.baseURL, s.collectionID)
}

// List implements catalog.CollectionStore. It walks Webflow's pagination
// until all items are collected.
func (s *Store) List(ctx context.Context) ([]catalog.Item, error) {
	var all []catalog.Item
	offset := 0

	for {
		var page listResponse
		url := fmt.Sprintf("%s?limit=%d&offset=%d", s.itemsURL(), pageSize, offset)
		if err := s.client.Get(ctx, url, &page); err != nil {
			return nil, err
		}

		for _, it := range page.Items {
			all = append(all, catalog.Item{ID: it.ID, Fields: it.FieldData})
		}

		offset += len(page.Items)
		if len(page.Items) == 0 || offset >= page.Pagination.Total {
			return all, nil
		}
	}
}

// Create implements catalog.CollectionStore.
func (s *Store) Create(ctx context.Context, fields catalog.Fields) (catalog.Item, error) {
	var created item
	payload := itemPayload{FieldData: fields}
	if err := s.client.Post(ctx, s.itemsURL(), payload, &created); err != nil {
		return catalog.Item{}, err
	}
	return catalog.Item{ID: created.ID, Fields: created.FieldData}, nil
}

// Update implements catalog.CollectionStore.
func (s *Store) Update(ctx context.Context, id string, fields catalog.Fields) (catalog.Item, error) {
	var updated item
	payload := itemPayload{FieldData: fields}
	url := fmt.Sprintf("%s/%s", s.itemsURL(), id)
	if err := s.client.Patch(ctx, url, payload, &updated); err != nil {
		return catalog.Item{}, err
	}
	return catalog.Item{ID: updated.ID, Fields: updated.FieldData}, nil
}

// Delete implements catalog.CollectionStore.
func (s *Store) Delete(ctx context.Context, id string) error {
	url := fmt.Sprintf("%s/%s", s.itemsURL(), id)
	return s.client.Delete(ctx, url)
}
