package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/cmdassist/internal/lsp"
)

func newLSPCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server on standard input and output",
		Long: `Run a Language Server Protocol server on standard input and output.

Every line of an open document is checked as one command. The server
publishes diagnostics after each change, completes at the cursor, and
shows the signature of the command under the cursor on hover. Logs are
written to standard error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnvironment(cmd, nil)
			if err != nil {
				return err
			}
			debug, _ := cmd.Flags().GetBool(flagDebug)

			server, err := lsp.New(lsp.Options{
				Pack:    env.pack,
				Lint:    env.lint,
				Version: info.Version,
				Logger:  env.logger,
				Debug:   debug,
			})
			if err != nil {
				return err
			}
			return server.RunStdio()
		},
	}
}
