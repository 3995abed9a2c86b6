package reconciler

import (
	"context"

	"github.com/agentstation/plugsync/pkg/catalog"
	"github.com/agentstation/plugsync/pkg/errors"
	"github.com/agentstation/plugsync/pkg/logging"
	"github.com/agentstation/plugsync/pkg/manifest"
)

// syncEntry runs the full per-entry procedure: enrichment fan-out, target
// field assembly, and the create/update/skip decision. Every failure is
// recorded on the result and contained here; nothing escapes to the batch.
func (r *reconciler) syncEntry(ctx context.Context, entry manifest.Entry, s *state, result *Result) {
	ctx = logging.WithPlugin(ctx, entry.Name)
	logger := logging.FromContext(ctx)

	if _, err := entry.Repo(); err != nil {
		result.fail(entry.Name, err.Error())
		return
	}

	existing, exists := s.itemsByName[entry.Name]
	enrichment := r.enricher.Enrich(ctx, entry)

	// README content is mandatory for existence in the catalogs. An entry
	// that loses its README on a later run is removed, not kept stale.
	if enrichment.Content == "" {
		result.fail(entry.Name, errors.ErrNoContent.Error())
		if exists {
			logger.Warn().Msg("Entry lost its README, removing catalog records")
			r.removeRecords(ctx, entry, existing)
		}
		return
	}

	fields := catalog.NewFields(entry, enrichment)
	record := catalog.IndexRecordFor(entry, fields)

	if !exists {
		r.createRecords(ctx, entry, fields, record, result)
		return
	}

	if existing.Fields.Equal(fields, r.compare) {
		logger.Debug().Msg("Entry unchanged, skipping")
		result.unchanged()
		return
	}

	r.updateRecords(ctx, entry, existing, fields, record, s, result)
}

// createRecords writes a new entry to both stores, collection first. The two
// writes form a saga with no rollback: if the index write fails after the
// collection write succeeded, the partial state is reported and left for the
// next run to repair.
func (r *reconciler) createRecords(ctx context.Context, entry manifest.Entry, fields catalog.Fields, record catalog.IndexRecord, result *Result) {
	logger := logging.FromContext(ctx)

	if _, err := r.collection.Create(ctx, fields); err != nil {
		result.fail(entry.Name, errors.WrapResource("create", "item", entry.Name, err).Error())
		return
	}
	if err := r.index.Create(ctx, record); err != nil {
		result.fail(entry.Name, errors.WrapResource("create", "record", record.ObjectID, err).Error())
		return
	}

	logger.Info().Str("slug", record.ObjectID).Msg("Created catalog records")
	result.created(entry.Name)
}

// updateRecords rewrites both stores for a changed entry, collection first.
func (r *reconciler) updateRecords(ctx context.Context, entry manifest.Entry, existing catalog.Item, fields catalog.Fields, record catalog.IndexRecord, s *state, result *Result) {
	logger := logging.FromContext(ctx)

	if _, err := r.collection.Update(ctx, existing.ID, fields); err != nil {
		result.fail(entry.Name, errors.WrapResource("update", "item", existing.ID, err).Error())
		return
	}

	// A record can be missing from the index after a previously interrupted
	// run even though the collection item exists.
	var err error
	if _, ok := s.indexByID[record.ObjectID]; ok {
		err = r.index.Update(ctx, record)
	} else {
		err = r.index.Create(ctx, record)
	}
	if err != nil {
		result.fail(entry.Name, errors.WrapResource("update", "record", record.ObjectID, err).Error())
		return
	}

	logger.Info().Str("slug", record.ObjectID).Msg("Updated catalog records")
	result.updated(entry.Name)
}

// removeRecords deletes an entry's records from both stores after its README
// disappeared. The entry stays in the failed list; the deletion is a side
// effect, not a reported "deleted".
func (r *reconciler) removeRecords(ctx context.Context, entry manifest.Entry, existing catalog.Item) {
	logger := logging.FromContext(ctx)

	if err := r.collection.Delete(ctx, existing.ID); err != nil {
		logger.Error().Err(err).Msg("Failed to delete collection item")
		return
	}
	if err := r.index.Delete(ctx, entry.Slug()); err != nil {
		logger.Error().Err(err).Msg("Failed to delete index record")
	}
}
