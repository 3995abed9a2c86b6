// Package main provides the entry point for the plugsync CLI tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/agentstation/plugsync/cmd/plugsync/cmd"
	"github.com/agentstation/plugsync/pkg/logging"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := cmd.New(version, commit, date)
	if err := root.ExecuteContext(ctx); err != nil {
		logging.Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}
}
