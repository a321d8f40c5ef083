// Package cli provides the Cobra command structure for cmdassist.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cmdassist/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Global flag names, read back by subcommands.
const (
	flagDebug  = "debug"
	flagConfig = "config"
	flagPack   = "pack"
	flagColor  = "color"
)

// NewRootCommand creates the root cmdassist command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var packPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "cmdassist",
		Short: "Parse, check and complete game commands",
		Long: `cmdassist parses game commands against a command pack and reports
what is wrong with them, what may come next, and how each part is read.

It checks .mcfunction files line by line, completes and highlights single
commands, and serves the same analysis to editors as a language server.
Commands and identifiers come from a pack file; the builtin pack is used
when none is configured.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, flagDebug, false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, flagConfig, "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&packPath, flagPack, "", "path to a command pack (.yaml, .yml or .json)")
	rootCmd.PersistentFlags().StringVar(&color, flagColor, "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newCompleteCommand())
	rootCmd.AddCommand(newHighlightCommand())
	rootCmd.AddCommand(newStructureCommand())
	rootCmd.AddCommand(newIDsCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newLSPCommand(info))
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
