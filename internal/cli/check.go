package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cmdassist/pkg/config"
	"github.com/yaklabco/cmdassist/pkg/reporter"
	"github.com/yaklabco/cmdassist/pkg/runner"
)

// stdinPath is the argument that checks standard input.
const stdinPath = "-"

type checkFlags struct {
	format    string
	maxLevel  string
	enable    []string
	disable   []string
	ignore    []string
	jobs      int
	strict    bool
	noContext bool
}

func newCheckCommand() *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check command files",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, &cfg, flags)
		},
	}

	addCheckFlags(cmd, &cfg, flags)

	return cmd
}

const checkLongDescription = `Check every command of .mcfunction files.

Each line is one command; blank lines and lines starting with # are
skipped. By default, checks all .mcfunction files in the current directory
and subdirectories. Use - to check standard input.

Examples:
  cmdassist check                      # Check current directory
  cmdassist check functions/           # Check a directory
  cmdassist check load.mcfunction      # Check a single file
  echo "kill @e" | cmdassist check -   # Check standard input
  cmdassist check --fix                # Apply suggested corrections
  cmdassist check --dry-run            # Show corrections as a diff
  cmdassist check --max-level content  # Only report structural problems
  cmdassist check --format json        # Output as JSON for CI
  cmdassist check --format summary     # Count issues by rule and file`

func runCheck(cmd *cobra.Command, args []string, cfg *config.Config, flags *checkFlags) error {
	// Only set values that were explicitly provided via CLI flags.
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("max-level") {
		cfg.MaxLevel = flags.maxLevel
	}
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable

	env, err := loadEnvironment(cmd, cfg)
	if err != nil {
		return err
	}
	finalCfg := env.cfg

	// A dry run is only useful as a diff unless another format was asked for.
	format := finalCfg.Format
	if finalCfg.DryRun && !cmd.Flags().Changed("format") {
		format = config.FormatDiff
	}

	env.logger.Debug("configuration loaded",
		"max_level", finalCfg.MaxLevel,
		"format", format,
		"fix", finalCfg.Fix,
		"dry_run", finalCfg.DryRun,
	)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   env.workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: flags.ignore,
		Jobs:         flags.jobs,
		Pack:         env.pack,
		Lint:         env.lint,
		Fix:          finalCfg.Fix,
		DryRun:       finalCfg.DryRun,
	}

	var result *runner.Result
	if len(args) == 1 && args[0] == stdinPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read standard input: %w", err)
		}
		result = runner.NewResult(runner.CheckContent("<stdin>", string(data), runOpts))
	} else {
		env.logger.Debug("starting check run",
			"paths", runOpts.Paths,
			"working_dir", runOpts.WorkingDir,
			"jobs", runOpts.Jobs,
		)
		result, err = runner.Run(env.ctx, runOpts)
		if err != nil {
			return fmt.Errorf("check run failed: %w", err)
		}
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       string(finalCfg.Color),
		ShowContext: !flags.noContext,
		ShowSummary: true,
		WorkingDir:  env.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(env.ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	return resultError(result, flags.strict)
}

func addCheckFlags(cmd *cobra.Command, cfg *config.Config, flags *checkFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "apply the suggested corrections")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show corrections without applying them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff, summary")
	cmd.Flags().StringVar(&flags.maxLevel, "max-level", "warning",
		"least structural level reported: incomplete, type-error, excess, content, id-error, logic, warning")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs to disable")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
}
