package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/cmdassist/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of cmdassist.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			logger := logging.NewWithOptions(logging.Options{
				Writer: cmd.OutOrStdout(),
				Level:  "info",
			})

			logger.Info("cmdassist",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)
		},
	}

	return cmd
}
