package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cmdassist/internal/configloader"
	"github.com/yaklabco/cmdassist/internal/logging"
	"github.com/yaklabco/cmdassist/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new cmdassist configuration file",
		Long: `Create a new .cmdassist.yml configuration file in the current directory
with the defaults. The file can be customized to choose a command pack,
change the reported levels, and enable or disable rules.

Examples:
  cmdassist init                     Create minimal .cmdassist.yml
  cmdassist init --full              Create full config with all rules documented
  cmdassist init --output custom.yml Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigFiles[0],
		"Output file path")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.Default()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})
	if err := configloader.WriteConfig(absPath, content, flags.force); err != nil {
		if errors.Is(err, configloader.ErrConfigExists) {
			return fmt.Errorf("%w; use --force to overwrite", err)
		}
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	if flags.full {
		logger.Info("full template includes all rules with documentation")
	}
	logger.Info("run 'cmdassist rules' to see all available rules")

	return nil
}
