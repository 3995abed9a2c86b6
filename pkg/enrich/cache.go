package enrich

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/agentstation/plugsync/pkg/manifest"
)

// Cache memoizes provider responses between runs so repeated syncs stay
// under external rate limits. Implementations live in internal/cache.
type Cache interface {
	// Get returns the cached value for key, and whether it was present.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a value under key. Expiry policy is the implementation's.
	Set(ctx context.Context, key, value string)
}

// NopCache is a Cache that stores nothing.
type NopCache struct{}

// Get always misses.
func (NopCache) Get(context.Context, string) (string, bool) { return "", false }

// Set discards the value.
func (NopCache) Set(context.Context, string, string) {}

func (e *Enricher) repoInfo(ctx context.Context, repo manifest.Repo) (*RepoInfo, error) {
	key := "repo:" + repo.Source + "/" + repo.String()
	if raw, ok := e.cache.Get(ctx, key); ok {
		var info RepoInfo
		if err := json.Unmarshal([]byte(raw), &info); err == nil {
			return &info, nil
		}
	}

	info, err := e.repos.RepoInfo(ctx, repo)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(info); err == nil {
		e.cache.Set(ctx, key, string(raw))
	}
	return info, nil
}

func (e *Enricher) downloadCount(ctx context.Context, packageName, repoName string) (int, error) {
	key := "downloads:" + packageName
	if raw, ok := e.cache.Get(ctx, key); ok {
		if count, err := strconv.Atoi(raw); err == nil {
			return count, nil
		}
	}

	count, err := e.downloads.Downloads(ctx, packageName, repoName)
	if err != nil {
		return 0, err
	}
	e.cache.Set(ctx, key, strconv.Itoa(count))
	return count, nil
}

func (e *Enricher) readme(ctx context.Context, repo manifest.Repo) (string, error) {
	key := "readme:" + repo.Source + "/" + repo.String()
	if raw, ok := e.cache.Get(ctx, key); ok {
		return raw, nil
	}

	content, err := e.readmes.Readme(ctx, repo)
	if err != nil {
		return "", err
	}
	if content != "" {
		e.cache.Set(ctx, key, content)
	}
	return content, nil
}
