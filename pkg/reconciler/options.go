package reconciler

import (
	"context"

	"github.com/agentstation/plugsync/pkg/batch"
	"github.com/agentstation/plugsync/pkg/catalog"
	"github.com/agentstation/plugsync/pkg/enrich"
	"github.com/agentstation/plugsync/pkg/errors"
	"github.com/agentstation/plugsync/pkg/manifest"
)

// Enricher produces enrichment data for one entry. *enrich.Enricher
// satisfies it; tests substitute fakes.
type Enricher interface {
	Enrich(ctx context.Context, entry manifest.Entry) enrich.Result
}

// Scheduler paces per-entry operations. *batch.Scheduler satisfies it.
type Scheduler interface {
	Run(ctx context.Context, n int, fn func(ctx context.Context, i int)) error
}

// options holds the assembled configuration for a Reconciler.
type options struct {
	collection catalog.CollectionStore
	index      catalog.SearchIndex
	enricher   Enricher
	scheduler  Scheduler
	compare    []catalog.Field
}

// Option configures a Reconciler.
type Option func(*options)

// WithCollection sets the content-collection store. Required.
func WithCollection(store catalog.CollectionStore) Option {
	return func(o *options) { o.collection = store }
}

// WithIndex sets the search-index store. Required.
func WithIndex(index catalog.SearchIndex) Option {
	return func(o *options) { o.index = index }
}

// WithEnricher sets the enrichment fan-out. Required.
func WithEnricher(enricher Enricher) Option {
	return func(o *options) { o.enricher = enricher }
}

// WithScheduler replaces the default batch scheduler.
func WithScheduler(scheduler Scheduler) Option {
	return func(o *options) {
		if scheduler != nil {
			o.scheduler = scheduler
		}
	}
}

// WithCompareFields selects which fields participate in change detection.
// Defaults to catalog.CompareManifest.
func WithCompareFields(fields []catalog.Field) Option {
	return func(o *options) {
		if len(fields) > 0 {
			o.compare = fields
		}
	}
}

// newOptions applies options over defaults and validates required fields.
func newOptions(opts ...Option) (*options, error) {
	o := &options{
		scheduler: batch.New(),
		compare:   catalog.CompareManifest,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.collection == nil {
		return nil, errors.NewValidationError("collection", nil, "collection store is required")
	}
	if o.index == nil {
		return nil, errors.NewValidationError("index", nil, "search index is required")
	}
	if o.enricher == nil {
		return nil, errors.NewValidationError("enricher", nil, "enricher is required")
	}
	return o, nil
}
