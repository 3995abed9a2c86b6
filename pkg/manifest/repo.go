package manifest

import (
	"net/url"
	"strings"

	"github.com/agentstation/plugsync/pkg/errors"
)

// Repo identifies a repository parsed from an entry's canonical URL.
type Repo struct {
	Source string // host, e.g. "github.com"
	Owner  string
	Name   string
}

// String returns the owner/name form used in provider API paths.
func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// Repo parses the entry's repository URL into (source, owner, repo).
func (e Entry) Repo() (Repo, error) {
	u, err := url.Parse(e.GitHubURL)
	if err != nil {
		return Repo{}, errors.NewValidationError("githubUrl", e.GitHubURL, "not a valid URL")
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if u.Host == "" || len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Repo{}, errors.NewValidationError("githubUrl", e.GitHubURL, "expected host/owner/repo form")
	}

	return Repo{
		Source: u.Host,
		Owner:  parts[0],
		Name:   parts[1],
	}, nil
}
