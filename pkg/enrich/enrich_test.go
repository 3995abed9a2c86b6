package enrich_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/plugsync/pkg/enrich"
	"github.com/agentstation/plugsync/pkg/errors"
	"github.com/agentstation/plugsync/pkg/manifest"
)

type fakeRepos struct {
	info  *enrich.RepoInfo
	err   error
	calls int
	mu    sync.Mutex
}

func (f *fakeRepos) RepoInfo(_ context.Context, _ manifest.Repo) (*enrich.RepoInfo, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.info, f.err
}

type fakeDownloads struct {
	count int
	err   error
}

func (f *fakeDownloads) Downloads(_ context.Context, _, _ string) (int, error) {
	return f.count, f.err
}

type fakeReadmes struct {
	content string
	err     error
	calls   int
	mu      sync.Mutex
}

func (f *fakeReadmes) Readme(_ context.Context, _ manifest.Repo) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.content, f.err
}

type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache { return &memCache{data: make(map[string]string)} }

func (c *memCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *memCache) Set(_ context.Context, key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

func testEntry() manifest.Entry {
	return manifest.Entry{
		Name:      "vue-router",
		GitHubURL: "https://github.com/vuejs/vue-router",
		Status:    "active",
	}
}

func TestEnrichAllSucceed(t *testing.T) {
	e := enrich.New(
		&fakeRepos{info: &enrich.RepoInfo{Stars: 42, AuthorName: "vuejs"}},
		&fakeDownloads{count: 1000},
		&fakeReadmes{content: "# vue-router"},
	)

	result := e.Enrich(context.Background(), testEntry())
	require.NotNil(t, result.Repo)
	assert.Equal(t, 42, result.Repo.Stars)
	assert.Equal(t, 1000, result.Downloads)
	assert.Equal(t, "# vue-router", result.Content)
}

func TestEnrichDegradesOnFailure(t *testing.T) {
	e := enrich.New(
		&fakeRepos{err: errors.NewAPIError("github", 500, "boom")},
		&fakeDownloads{err: errors.NewAPIError("npm", 500, "boom")},
		&fakeReadmes{content: "# readme"},
	)

	result := e.Enrich(context.Background(), testEntry())
	assert.Nil(t, result.Repo)
	assert.Zero(t, result.Downloads)
	assert.Equal(t, "# readme", result.Content)
}

func TestEnrichMissingReadme(t *testing.T) {
	e := enrich.New(
		&fakeRepos{info: &enrich.RepoInfo{Stars: 1}},
		&fakeDownloads{count: 5},
		&fakeReadmes{err: errors.ErrNoContent},
	)

	result := e.Enrich(context.Background(), testEntry())
	assert.Empty(t, result.Content)
	assert.Equal(t, 5, result.Downloads)
}

func TestEnrichUnparsableURL(t *testing.T) {
	repos := &fakeRepos{info: &enrich.RepoInfo{Stars: 1}}
	e := enrich.New(repos, &fakeDownloads{}, &fakeReadmes{})

	result := e.Enrich(context.Background(), manifest.Entry{Name: "broken", GitHubURL: "no-slashes"})
	assert.Nil(t, result.Repo)
	assert.Empty(t, result.Content)
	assert.Zero(t, repos.calls)
}

func TestEnrichCacheHitSkipsProviders(t *testing.T) {
	repos := &fakeRepos{info: &enrich.RepoInfo{Stars: 7, AuthorName: "vuejs"}}
	readmes := &fakeReadmes{content: "# cached"}
	cache := newMemCache()

	e := enrich.New(repos, &fakeDownloads{count: 3}, readmes, enrich.WithCache(cache))

	first := e.Enrich(context.Background(), testEntry())
	second := e.Enrich(context.Background(), testEntry())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repos.calls)
	assert.Equal(t, 1, readmes.calls)
}
