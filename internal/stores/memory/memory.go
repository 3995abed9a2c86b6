// Package memory provides in-memory implementations of both catalog store
// interfaces. Dry-run mode reconciles against copies of the live stores held
// here so nothing external is mutated; tests use the same implementations.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/agentstation/plugsync/pkg/catalog"
	"github.com/agentstation/plugsync/pkg/errors"
)

// Collection is an in-memory catalog.CollectionStore.
type Collection struct {
	mu    sync.Mutex
	items map[string]catalog.Item
}

// NewCollection creates an empty in-memory collection.
func NewCollection() *Collection {
	return &Collection{items: make(map[string]catalog.Item)}
}

// NewCollectionFrom creates a collection seeded with existing items.
func NewCollectionFrom(items []catalog.Item) *Collection {
	c := NewCollection()
	for _, item := range items {
		c.items[item.ID] = item
	}
	return c
}

// List implements catalog.CollectionStore.
func (c *Collection) List(_ context.Context) ([]catalog.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]catalog.Item, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item)
	}
	return items, nil
}

// Create implements catalog.CollectionStore.
func (c *Collection) Create(_ context.Context, fields catalog.Fields) (catalog.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item := catalog.Item{ID: uuid.NewString(), Fields: fields}
	c.items[item.ID] = item
	return item, nil
}

// Update implements catalog.CollectionStore.
func (c *Collection) Update(_ context.Context, id string, fields catalog.Fields) (catalog.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return catalog.Item{}, errors.WrapResource("update", "item", id, errors.ErrNotFound)
	}
	item := catalog.Item{ID: id, Fields: fields}
	c.items[id] = item
	return item, nil
}

// Delete implements catalog.CollectionStore.
func (c *Collection) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return errors.WrapResource("delete", "item", id, errors.ErrNotFound)
	}
	delete(c.items, id)
	return nil
}

// Get returns the item with the given id.
func (c *Collection) Get(id string) (catalog.Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[id]
	return item, ok
}

// Len returns the number of stored items.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Index is an in-memory catalog.SearchIndex.
type Index struct {
	mu      sync.Mutex
	records map[string]catalog.IndexRecord
}

// NewIndex creates an empty in-memory index.
func NewIndex() *Index {
	return &Index{records: make(map[string]catalog.IndexRecord)}
}

// NewIndexFrom creates an index seeded with existing records.
func NewIndexFrom(records []catalog.IndexRecord) *Index {
	idx := NewIndex()
	for _, record := range records {
		idx.records[record.ObjectID] = record
	}
	return idx
}

// List implements catalog.SearchIndex.
func (i *Index) List(_ context.Context) ([]catalog.IndexRecord, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	records := make([]catalog.IndexRecord, 0, len(i.records))
	for _, record := range i.records {
		records = append(records, record)
	}
	return records, nil
}

// Create implements catalog.SearchIndex.
func (i *Index) Create(_ context.Context, record catalog.IndexRecord) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.records[record.ObjectID] = record
	return nil
}

// Update implements catalog.SearchIndex.
func (i *Index) Update(_ context.Context, record catalog.IndexRecord) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.records[record.ObjectID]; !ok {
		return errors.WrapResource("update", "record", record.ObjectID, errors.ErrNotFound)
	}
	i.records[record.ObjectID] = record
	return nil
}

// Delete implements catalog.SearchIndex.
func (i *Index) Delete(_ context.Context, objectID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.records[objectID]; !ok {
		return errors.WrapResource("delete", "record", objectID, errors.ErrNotFound)
	}
	delete(i.records, objectID)
	return nil
}

// Get returns the record with the given object id.
func (i *Index) Get(objectID string) (catalog.IndexRecord, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	record, ok := i.records[objectID]
	return record, ok
}

// Len returns the number of stored records.
func (i *Index) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.records)
}
