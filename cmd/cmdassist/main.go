// Package main is the entry point for the cmdassist CLI.
package main

import (
	"os"

	"github.com/yaklabco/cmdassist/internal/cli"
	"github.com/yaklabco/cmdassist/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	err := cli.NewRootCommand(info).Execute()
	if err != nil && !cli.IsResultError(err) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
