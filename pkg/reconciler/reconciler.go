// Package reconciler drives the manifest against both catalog stores. It
// computes a create/update/delete action per manifest entry, applies the
// mutations with batched concurrency, deletes orphaned records, and returns
// a Result describing what changed.
package reconciler

import (
	"context"

	"github.com/agentstation/plugsync/pkg/catalog"
	"github.com/agentstation/plugsync/pkg/errors"
	"github.com/agentstation/plugsync/pkg/logging"
	"github.com/agentstation/plugsync/pkg/manifest"
)

// Reconciler is the main interface for converging the catalog stores to the
// manifest.
type Reconciler interface {
	// Run reconciles the full manifest entry list against both stores.
	Run(ctx context.Context, entries []manifest.Entry) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	collection catalog.CollectionStore
	index      catalog.SearchIndex
	enricher   Enricher
	scheduler  Scheduler
	compare    []catalog.Field
}

// New creates a Reconciler with options. A collection store, search index,
// and enricher are required.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &reconciler{
		collection: options.collection,
		index:      options.index,
		enricher:   options.enricher,
		scheduler:  options.scheduler,
		compare:    options.compare,
	}, nil
}

// Run lists both stores, processes every manifest entry in paced batches,
// and finishes with the sequential orphan-deletion pass.
//
// Store listing failures are fatal to the run. Per-entry failures are
// contained and reported in the Result; they never abort a batch.
func (r *reconciler) Run(ctx context.Context, entries []manifest.Entry) (*Result, error) {
	logger := logging.FromContext(ctx)
	result := NewResult()

	state, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("manifest_entries", len(entries)).
		Int("collection_items", len(state.itemsByName)).
		Int("index_records", len(state.indexByID)).
		Msg("Starting reconciliation")

	err = r.scheduler.Run(ctx, len(entries), func(ctx context.Context, i int) {
		r.syncEntry(ctx, entries[i], state, result)
	})
	if err != nil {
		return nil, err
	}

	r.deleteOrphans(ctx, entries, state, result)

	result.Finalize()

	logger.Info().
		Int("created", len(result.Created)).
		Int("updated", len(result.Updated)).
		Int("deleted", len(result.Deleted)).
		Int("failed", len(result.Failed)).
		Int("unchanged", result.Unchanged).
		Dur("duration", result.Duration).
		Msg("Reconciliation complete")

	return result, nil
}

// state is the read-only snapshot of both stores taken before processing.
type state struct {
	itemsByName map[string]catalog.Item
	indexByID   map[string]catalog.IndexRecord
}

// snapshot lists both stores up front so per-entry lookups never hit the
// network. A listing failure here is orchestration-fatal.
func (r *reconciler) snapshot(ctx context.Context) (*state, error) {
	items, err := r.collection.List(ctx)
	if err != nil {
		return nil, errors.WrapResource("list", "collection items", "", err)
	}

	records, err := r.index.List(ctx)
	if err != nil {
		return nil, errors.WrapResource("list", "index records", "", err)
	}

	s := &state{
		itemsByName: make(map[string]catalog.Item, len(items)),
		indexByID:   make(map[string]catalog.IndexRecord, len(records)),
	}
	for _, item := range items {
		s.itemsByName[item.Fields.Name] = item
	}
	for _, record := range records {
		s.indexByID[record.ObjectID] = record
	}
	return s, nil
}

// deleteOrphans removes every catalog record with no manifest counterpart.
// The pass is strictly sequential: both store deletions for one orphan
// complete before the next orphan starts. Orphan counts are expected to be
// small, so there is no batching here.
func (r *reconciler) deleteOrphans(ctx context.Context, entries []manifest.Entry, s *state, result *Result) {
	logger := logging.FromContext(ctx)

	names := make(map[string]struct{}, len(entries))
	slugs := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		names[entry.Name] = struct{}{}
		slugs[entry.Slug()] = struct{}{}
	}

	for name, item := range s.itemsByName {
		if _, ok := names[name]; ok {
			continue
		}

		logger.Info().Str("plugin", name).Msg("Deleting orphaned catalog records")

		if err := r.collection.Delete(ctx, item.ID); err != nil {
			result.fail(name, errors.WrapResource("delete", "item", item.ID, err).Error())
			continue
		}
		if item.Fields.Slug != "" {
			if err := r.index.Delete(ctx, item.Fields.Slug); err != nil {
				result.fail(name, errors.WrapResource("delete", "record", item.Fields.Slug, err).Error())
				continue
			}
			delete(s.indexByID, item.Fields.Slug)
		}
		result.deleted(name)
	}

	// Index records with no collection counterpart and no manifest entry are
	// stragglers from a previously interrupted run.
	for objectID, record := range s.indexByID {
		if _, ok := slugs[objectID]; ok {
			continue
		}
		if _, ok := names[record.Name]; ok {
			continue
		}

		logger.Info().Str("slug", objectID).Msg("Deleting straggler index record")

		if err := r.index.Delete(ctx, objectID); err != nil {
			result.fail(record.Name, errors.WrapResource("delete", "record", objectID, err).Error())
			continue
		}
		result.deleted(record.Name)
	}
}
