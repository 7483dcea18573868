// Package main provides the entry point for the tributary CLI tool.
package main

import (
	"os"

	"github.com/tributary-data/tributary/cmd/tributary/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	// Cancel the run context on SIGINT/SIGTERM so a half-finished load
	// fails cleanly instead of being killed mid-statement
	ctx, cancel := app.Context()
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		app.ExitOnError(err)
	}
}
