// Package report renders a run summary and optionally publishes it to the
// pull request that triggered the sync, replacing the previous summary
// comment when one exists.
package report

import (
	"fmt"
	"strings"

	"github.com/agentstation/plugsync/pkg/reconciler"
)

// Marker is the heading that identifies plugsync's summary comment. A
// comment belongs to plugsync iff its body starts with this marker; a marker
// appearing elsewhere in a body does not match, so quoting the summary in a
// reply never hijacks the thread.
const Marker = "## Plugin Sync Report"

// Render formats the run result as the fixed-structure markdown summary.
func Render(result *reconciler.Result) string {
	var b strings.Builder

	b.WriteString(Marker)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "**%s**\n", result.Summary())

	writeSection(&b, "Created", result.Created)
	writeSection(&b, "Updated", result.Updated)
	writeSection(&b, "Deleted", result.Deleted)

	if len(result.Failed) > 0 {
		fmt.Fprintf(&b, "\n### Failed (%d)\n\n", len(result.Failed))
		for _, failure := range result.Failed {
			fmt.Fprintf(&b, "- `%s`: %s\n", failure.Name, failure.Reason)
		}
	}

	return b.String()
}

func writeSection(b *strings.Builder, title string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s (%d)\n\n", title, len(names))
	for _, name := range names {
		fmt.Fprintf(b, "- `%s`\n", name)
	}
}
