package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/plugsync/internal/cache"
	"github.com/agentstation/plugsync/internal/config"
	"github.com/agentstation/plugsync/internal/providers/github"
	"github.com/agentstation/plugsync/internal/providers/npm"
	"github.com/agentstation/plugsync/internal/stores/algolia"
	"github.com/agentstation/plugsync/internal/stores/memory"
	"github.com/agentstation/plugsync/internal/stores/webflow"
	"github.com/agentstation/plugsync/pkg/batch"
	"github.com/agentstation/plugsync/pkg/catalog"
	"github.com/agentstation/plugsync/pkg/enrich"
	"github.com/agentstation/plugsync/pkg/logging"
	"github.com/agentstation/plugsync/pkg/manifest"
	"github.com/agentstation/plugsync/pkg/reconciler"
	"github.com/agentstation/plugsync/pkg/report"
)

func newSyncCmd() *cobra.Command {
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Run the reconciliation against both catalog stores",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd.Context())
		},
	}

	syncCmd.Flags().StringVarP(&flagManifest, "manifest", "m", "", "manifest path (overrides MANIFEST_PATH)")
	syncCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "reconcile against in-memory copies, mutate nothing external")
	syncCmd.Flags().IntVar(&flagBatchSize, "batch-size", 0, "entries per concurrent batch (overrides BATCH_SIZE)")
	syncCmd.Flags().IntVar(&flagBatchDelay, "batch-delay", 0, "inter-batch delay in milliseconds (overrides BATCH_DELAY_MS)")

	return syncCmd
}

func runSync(ctx context.Context) error {
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)

	entries, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		return err
	}
	logger.Info().
		Str("manifest", cfg.ManifestPath).
		Int("entries", len(entries)).
		Bool("dry_run", flagDryRun).
		Msg("Loaded manifest")

	collection, index, err := buildStores(ctx, cfg)
	if err != nil {
		return err
	}

	enricher, closeCache, err := buildEnricher(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	compare := catalog.CompareManifest
	if cfg.CompareStats {
		compare = catalog.CompareAll
	}

	r, err := reconciler.New(
		reconciler.WithCollection(collection),
		reconciler.WithIndex(index),
		reconciler.WithEnricher(enricher),
		reconciler.WithScheduler(batch.New(
			batch.WithSize(cfg.BatchSize),
			batch.WithDelay(cfg.BatchDelay),
		)),
		reconciler.WithCompareFields(compare),
	)
	if err != nil {
		return err
	}

	result, err := r.Run(ctx, entries)
	if err != nil {
		return err
	}

	fmt.Println(report.Render(result))

	if cfg.PullRequest.Enabled && !flagDryRun {
		thread := github.NewCommentThread(
			github.New(cfg.GitHubToken),
			cfg.PullRequest.Repository,
			cfg.PullRequest.Number,
		)
		if err := report.Publish(ctx, thread, result); err != nil {
			// Publishing is best-effort; the run itself succeeded.
			logger.Warn().Err(err).Msg("Failed to publish summary comment")
		}
	}

	return nil
}

// applyFlagOverrides lets CLI flags win over environment configuration.
func applyFlagOverrides(cfg *config.Config) {
	if flagManifest != "" {
		cfg.ManifestPath = flagManifest
	}
	if flagBatchSize > 0 {
		cfg.BatchSize = flagBatchSize
	}
	if flagBatchDelay > 0 {
		cfg.BatchDelay = time.Duration(flagBatchDelay) * time.Millisecond
	}
}

// buildStores connects both catalog stores. In dry-run mode the live stores
// are listed once and copied into in-memory stores, so the reconciliation
// runs for real but mutates nothing external.
func buildStores(ctx context.Context, cfg *config.Config) (catalog.CollectionStore, catalog.SearchIndex, error) {
	wf, err := webflow.New(cfg.Webflow.Token, cfg.Webflow.CollectionID)
	if err != nil {
		return nil, nil, err
	}
	al, err := algolia.New(cfg.Algolia.AppID, cfg.Algolia.APIKey, cfg.Algolia.IndexName)
	if err != nil {
		return nil, nil, err
	}

	if !flagDryRun {
		return wf, al, nil
	}

	items, err := wf.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	records, err := al.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	logging.FromContext(ctx).Info().
		Int("collection_items", len(items)).
		Int("index_records", len(records)).
		Msg("Dry run: reconciling against in-memory copies")

	return memory.NewCollectionFrom(items), memory.NewIndexFrom(records), nil
}

// buildEnricher wires the enrichment providers, with the Redis cache when
// configured.
func buildEnricher(cfg *config.Config) (*enrich.Enricher, func(), error) {
	gh := github.New(cfg.GitHubToken)
	registry := npm.New()

	closeCache := func() {}
	opts := []enrich.Option{}
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedis(cfg.RedisURL, cache.DefaultTTL)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, enrich.WithCache(redisCache))
		closeCache = func() { _ = redisCache.Close() }
	}

	return enrich.New(gh, registry, gh, opts...), closeCache, nil
}
