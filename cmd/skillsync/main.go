// Package main provides the entry point for the skillsync CLI tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/openskills/skillsync/cmd/skillsync/cmd"
	"github.com/openskills/skillsync/pkg/logging"
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

	if err := cmd.Execute(ctx, version, commit, date); err != nil {
		logging.Err(err).Msg("Run failed")
		os.Exit(1)
	}
}
