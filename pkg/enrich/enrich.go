// Package enrich fetches read-only data from third-party sources (repository
// host, package registry) to augment manifest entries before they are written
// to the catalog stores. All lookups are best-effort: failures degrade to
// zero values, and it is the caller's job to decide which absences matter.
package enrich

import (
	"context"
	"sync"

	"github.com/agentstation/plugsync/pkg/logging"
	"github.com/agentstation/plugsync/pkg/manifest"
)

// RepoInfo is the repository metadata fetched for an entry.
type RepoInfo struct {
	Stars        int    `json:"stars"`
	AuthorName   string `json:"authorName"`
	AuthorLink   string `json:"authorLink"`
	AuthorAvatar string `json:"authorAvatar"`
}

// RepoInfoProvider looks up repository metadata.
type RepoInfoProvider interface {
	RepoInfo(ctx context.Context, repo manifest.Repo) (*RepoInfo, error)
}

// DownloadsProvider looks up a package's recent download count. The repo name
// is offered as a fallback package name when the plugin name is not published
// under its manifest name.
type DownloadsProvider interface {
	Downloads(ctx context.Context, packageName, repoName string) (int, error)
}

// ReadmeProvider fetches a repository's README body.
type ReadmeProvider interface {
	Readme(ctx context.Context, repo manifest.Repo) (string, error)
}

// Result holds the enrichment data for one entry. Repo is nil when the
// repository lookup failed; Content is empty when no README could be fetched.
type Result struct {
	Repo      *RepoInfo
	Downloads int
	Content   string
}

// Enricher fans out the three provider lookups for an entry concurrently.
type Enricher struct {
	repos     RepoInfoProvider
	downloads DownloadsProvider
	readmes   ReadmeProvider
	cache     Cache
}

// New creates an Enricher over the given providers.
func New(repos RepoInfoProvider, downloads DownloadsProvider, readmes ReadmeProvider, opts ...Option) *Enricher {
	e := &Enricher{
		repos:     repos,
		downloads: downloads,
		readmes:   readmes,
		cache:     NopCache{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithCache memoizes provider responses between runs.
func WithCache(cache Cache) Option {
	return func(e *Enricher) {
		if cache != nil {
			e.cache = cache
		}
	}
}

// Enrich runs the three lookups for an entry concurrently and collects
// whatever succeeded. It never returns an error: a failed repository lookup
// leaves Repo nil, a failed download lookup leaves Downloads at 0, and a
// failed README fetch leaves Content empty.
func (e *Enricher) Enrich(ctx context.Context, entry manifest.Entry) Result {
	logger := logging.FromContext(ctx)

	repo, err := entry.Repo()
	if err != nil {
		// Validation normally catches this before a run starts.
		logger.Warn().Err(err).Str("plugin", entry.Name).Msg("Unparsable repository URL")
		return Result{}
	}

	var result Result
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		info, err := e.repoInfo(ctx, repo)
		if err != nil {
			logger.Warn().Err(err).Str("plugin", entry.Name).Msg("Repository info lookup failed")
			return
		}
		result.Repo = info
	}()

	go func() {
		defer wg.Done()
		count, err := e.downloadCount(ctx, entry.Name, repo.Name)
		if err != nil {
			logger.Warn().Err(err).Str("plugin", entry.Name).Msg("Download count lookup failed")
			return
		}
		result.Downloads = count
	}()

	go func() {
		defer wg.Done()
		content, err := e.readme(ctx, repo)
		if err != nil {
			logger.Warn().Err(err).Str("plugin", entry.Name).Msg("README fetch failed")
			return
		}
		result.Content = content
	}()

	wg.Wait()
	return result
}
