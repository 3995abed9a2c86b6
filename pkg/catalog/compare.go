package catalog

// Field names a record attribute that may participate in change detection.
type Field string

// Comparable fields.
const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldGitHub      Field = "github"
	FieldContent     Field = "content"
	FieldActive      Field = "active"
	FieldStars       Field = "github-stars"
	FieldDownloads   Field = "npm-downloads"
	FieldAuthorName  Field = "author-name"
)

// CompareManifest compares only manifest-sourced fields plus README content.
// Enrichment-derived counters (stars, downloads) drifting on their own do not
// trigger an update; the record is refreshed the next time any manifest field
// or the README changes.
var CompareManifest = []Field{
	FieldName,
	FieldDescription,
	FieldGitHub,
	FieldContent,
	FieldActive,
}

// CompareAll additionally includes enrichment-derived fields, so stat drift
// alone re-syncs a record.
var CompareAll = []Field{
	FieldName,
	FieldDescription,
	FieldGitHub,
	FieldContent,
	FieldActive,
	FieldStars,
	FieldDownloads,
	FieldAuthorName,
}

// Equal reports whether f and other match on every field in the given
// comparison set. Fields outside the set are ignored.
func (f Fields) Equal(other Fields, set []Field) bool {
	for _, field := range set {
		switch field {
		case FieldName:
			if f.Name != other.Name {
				return false
			}
		case FieldDescription:
			if f.Description != other.Description {
				return false
			}
		case FieldGitHub:
			if f.GitHub != other.GitHub {
				return false
			}
		case FieldContent:
			if f.Content != other.Content {
				return false
			}
		case FieldActive:
			if f.Active != other.Active {
				return false
			}
		case FieldStars:
			if f.GitHubStars != other.GitHubStars {
				return false
			}
		case FieldDownloads:
			if f.NPMDownloads != other.NPMDownloads {
				return false
			}
		case FieldAuthorName:
			if f.AuthorName != other.AuthorName {
				return false
			}
		}
	}
	return true
}
