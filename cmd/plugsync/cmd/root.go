// Package cmd wires the plugsync commands.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// flags shared by commands.
var (
	flagManifest   string
	flagDryRun     bool
	flagBatchSize  int
	flagBatchDelay int
	flagVerbose    bool
)

// New builds the root command.
func New(version, commit, date string) *cobra.Command {
	root := &cobra.Command{
		Use:   "plugsync",
		Short: "Reconcile the plugin manifest against the CMS collection and search index",
		Long: `plugsync reads the declarative plugin manifest and converges two external
catalogs to it: the Webflow CMS collection and the Algolia search index.
Entries are enriched with live GitHub stats, npm download counts, and README
content before writing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// A local .env is a development convenience; CI provides real env vars.
			_ = godotenv.Load()

			if flagVerbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newSyncCmd())
	root.AddCommand(newVersionCmd(version, commit, date))

	return root
}
