package catalog

import "context"

// CollectionStore is the content-collection side of the catalog. Items are
// keyed by an opaque store-assigned id; fields are keyed by name.
type CollectionStore interface {
	// List returns every item in the collection.
	List(ctx context.Context) ([]Item, error)

	// Create adds a new item and returns it with its assigned id.
	Create(ctx context.Context, fields Fields) (Item, error)

	// Update replaces the field data of an existing item.
	Update(ctx context.Context, id string, fields Fields) (Item, error)

	// Delete removes an item by id.
	Delete(ctx context.Context, id string) error
}

// SearchIndex is the search-index side of the catalog. Records are keyed by
// their slug-derived object id.
type SearchIndex interface {
	// List returns every record in the index.
	List(ctx context.Context) ([]IndexRecord, error)

	// Create adds a new record.
	Create(ctx context.Context, record IndexRecord) error

	// Update replaces an existing record.
	Update(ctx context.Context, record IndexRecord) error

	// Delete removes a record by object id.
	Delete(ctx context.Context, objectID string) error
}
