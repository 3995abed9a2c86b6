// Package manifest loads and validates the declarative plugin list that
// drives reconciliation. The manifest is the single source of truth: every
// entry it names must exist in both catalog stores, and nothing else may.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/plugsync/pkg/errors"
)

// StatusActive marks an entry as live. Any other status value renders the
// catalog records with active=false but still syncs them.
const StatusActive = "active"

// Entry is one row of the source-of-truth list. Entries are read-only input
// for the duration of a run.
type Entry struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	GitHubURL   string `json:"githubUrl" yaml:"githubUrl"`
	Status      string `json:"status" yaml:"status"`
}

// Active reports whether the entry's status marks it as live.
func (e Entry) Active() bool {
	return e.Status == StatusActive
}

// Slug derives the entry's identifier from the last path segment of its
// repository URL. The slug joins records across both catalog stores and is
// never stored independently.
func (e Entry) Slug() string {
	trimmed := strings.TrimRight(e.GitHubURL, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return trimmed
	}
	return trimmed[idx+1:]
}

// Load reads a manifest from path. The format is chosen by file extension:
// .yaml/.yml parse as YAML, everything else as JSON.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var entries []Entry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, errors.WrapParse("yaml", path, err)
		}
	default:
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, errors.WrapParse("json", path, err)
		}
	}

	if err := Validate(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Validate checks structural requirements the reconciler depends on:
// non-empty unique names and parsable repository URLs.
func Validate(entries []Entry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.Name == "" {
			return errors.NewValidationError("name", entry.Name, "must not be empty")
		}
		if _, dup := seen[entry.Name]; dup {
			return errors.NewValidationError("name", entry.Name, "duplicate entry name")
		}
		seen[entry.Name] = struct{}{}

		if _, err := entry.Repo(); err != nil {
			return err
		}
	}
	return nil
}
