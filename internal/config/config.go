// Package config assembles run configuration from the environment via
// Viper. Missing required settings surface immediately as ConfigErrors so a
// misconfigured CI job fails loudly before touching either store.
package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/agentstation/plugsync/pkg/errors"
)

// Defaults.
const (
	DefaultManifestPath = "plugins.json"
	DefaultBatchSize    = 5
	DefaultBatchDelay   = 1500 * time.Millisecond
)

// Config is the resolved run configuration.
type Config struct {
	ManifestPath string
	BatchSize    int
	BatchDelay   time.Duration

	// CompareStats widens change detection to include enrichment-derived
	// counters (stars, downloads).
	CompareStats bool

	Webflow struct {
		Token        string
		CollectionID string
	}

	Algolia struct {
		AppID     string
		APIKey    string
		IndexName string
	}

	// GitHubToken is optional; it raises API rate limits and is required
	// only for comment publishing.
	GitHubToken string

	// RedisURL enables the enrichment cache when set.
	RedisURL string

	PullRequest struct {
		// Enabled is set when the run was triggered by a pull request, which
		// turns on comment publishing.
		Enabled    bool
		Repository string // owner/name
		Number     int
	}
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("MANIFEST_PATH", DefaultManifestPath)
	v.SetDefault("BATCH_SIZE", DefaultBatchSize)
	v.SetDefault("BATCH_DELAY_MS", int(DefaultBatchDelay/time.Millisecond))

	cfg := &Config{
		ManifestPath: v.GetString("MANIFEST_PATH"),
		BatchSize:    v.GetInt("BATCH_SIZE"),
		BatchDelay:   time.Duration(v.GetInt("BATCH_DELAY_MS")) * time.Millisecond,
		CompareStats: v.GetBool("COMPARE_STATS"),
		GitHubToken:  v.GetString("GITHUB_TOKEN"),
		RedisURL:     v.GetString("REDIS_URL"),
	}

	cfg.Webflow.Token = v.GetString("WEBFLOW_API_TOKEN")
	cfg.Webflow.CollectionID = v.GetString("WEBFLOW_COLLECTION_ID")
	cfg.Algolia.AppID = v.GetString("ALGOLIA_APP_ID")
	cfg.Algolia.APIKey = v.GetString("ALGOLIA_API_KEY")
	cfg.Algolia.IndexName = v.GetString("ALGOLIA_INDEX_NAME")

	cfg.PullRequest.Enabled = v.GetBool("IS_PULL_REQUEST")
	cfg.PullRequest.Repository = v.GetString("GITHUB_REPOSITORY")
	cfg.PullRequest.Number = v.GetInt("PR_NUMBER")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks that every setting required for store access is present.
func (c *Config) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"WEBFLOW_API_TOKEN", c.Webflow.Token},
		{"WEBFLOW_COLLECTION_ID", c.Webflow.CollectionID},
		{"ALGOLIA_APP_ID", c.Algolia.AppID},
		{"ALGOLIA_API_KEY", c.Algolia.APIKey},
		{"ALGOLIA_INDEX_NAME", c.Algolia.IndexName},
	}
	for _, r := range required {
		if r.value == "" {
			return errors.NewConfigError("env", r.name+" is required", nil)
		}
	}

	if c.BatchSize < 1 {
		return errors.NewConfigError("env", "BATCH_SIZE must be at least 1", nil)
	}
	if c.PullRequest.Enabled {
		if c.PullRequest.Repository == "" || c.PullRequest.Number <= 0 {
			return errors.NewConfigError("env", "GITHUB_REPOSITORY and PR_NUMBER are required for pull request runs", nil)
		}
		if c.GitHubToken == "" {
			return errors.NewConfigError("env", "GITHUB_TOKEN is required for comment publishing", nil)
		}
	}
	return nil
}
