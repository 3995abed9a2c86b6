// Package catalog defines the denormalized record shapes held by the two
// downstream stores (content collection and search index), the assembly of
// target records from manifest entries plus enrichment data, and the
// comparison field-set used for change detection.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/plugsync/pkg/enrich"
	"github.com/agentstation/plugsync/pkg/manifest"
)

// Fields is the field data of a content-collection item. Store-managed
// metadata (item id, timestamps) lives outside this struct.
type Fields struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	GitHub       string `json:"github"`
	Content      string `json:"content"`
	NPMDownloads int    `json:"npm-downloads"`
	GitHubStars  int    `json:"github-stars"`
	AuthorLink   string `json:"author-link"`
	AuthorName   string `json:"author-name"`
	AuthorAvatar string `json:"author-avatar"`
	Active       bool   `json:"active"`
}

// Item is a content-collection record. The id is opaque and store-assigned.
type Item struct {
	ID     string
	Fields Fields
}

// IndexRecord is a search-index record. ObjectID is the entry slug.
type IndexRecord struct {
	ObjectID     string `json:"objectID"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	GitHubURL    string `json:"githubUrl"`
	NPMDownloads int    `json:"npmDownloads"`
	GitHubStars  int    `json:"githubStars"`
	AuthorLink   string `json:"authorLink"`
	AuthorName   string `json:"authorName"`
	AuthorAvatar string `json:"authorAvatar"`
}

var titleCaser = cases.Title(language.English)

// NewFields assembles the target collection fields for a manifest entry from
// its manifest data and enrichment results.
func NewFields(entry manifest.Entry, enrichment enrich.Result) Fields {
	f := Fields{
		Name:         entry.Name,
		Title:        titleCaser.String(strings.ReplaceAll(entry.Name, "-", " ")),
		Slug:         entry.Slug(),
		Description:  entry.Description,
		GitHub:       entry.GitHubURL,
		Content:      enrichment.Content,
		NPMDownloads: enrichment.Downloads,
		Active:       entry.Active(),
	}
	if enrichment.Repo != nil {
		f.GitHubStars = enrichment.Repo.Stars
		f.AuthorLink = enrichment.Repo.AuthorLink
		f.AuthorName = enrichment.Repo.AuthorName
		f.AuthorAvatar = enrichment.Repo.AuthorAvatar
	}
	return f
}

// IndexRecordFor mirrors the collection fields into the search-index shape.
func IndexRecordFor(entry manifest.Entry, f Fields) IndexRecord {
	return IndexRecord{
		ObjectID:     entry.Slug(),
		Name:         f.Name,
		Description:  f.Description,
		GitHubURL:    f.GitHub,
		NPMDownloads: f.NPMDownloads,
		GitHubStars:  f.GitHubStars,
		AuthorLink:   f.AuthorLink,
		AuthorName:   f.AuthorName,
		AuthorAvatar: f.AuthorAvatar,
	}
}
