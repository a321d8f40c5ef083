package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type highlightFlags struct {
	legend      bool
	diagnostics bool
}

func newHighlightCommand() *cobra.Command {
	flags := &highlightFlags{}

	cmd := &cobra.Command{
		Use:   "highlight [command...]",
		Short: "Render a command colored by how it is read",
		Long: `Render a command with every character colored by its category:
command names, selectors, coordinates, identifiers, brackets by depth, and
input the parser could not read. The command is read from standard input
when no arguments are given.

Examples:
  cmdassist highlight "kill @e[type=zombie,r=5]"
  cmdassist highlight --diagnostics "setblock ^ ^ 5 stone"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}
			env, err := loadEnvironment(cmd, nil)
			if err != nil {
				return err
			}

			s := env.newSession()
			s.OnTextChanged(text, len(text))
			out := cmd.OutOrStdout()
			styles := env.styles(out)

			var b strings.Builder
			b.WriteString(styles.FormatHighlight(text, s.Highlight()))
			b.WriteString("\n")
			if flags.legend {
				if legend := styles.FormatLegend(s.Highlight()); legend != "" {
					b.WriteString(legend)
					b.WriteString("\n")
				}
			}
			if flags.diagnostics {
				for _, d := range s.Diagnostics() {
					b.WriteString(styles.FormatDiagnostic("", d, true, text))
				}
			}
			_, err = fmt.Fprint(out, b.String())
			return err
		},
	}

	cmd.Flags().BoolVar(&flags.legend, "legend", true, "print the categories used")
	cmd.Flags().BoolVar(&flags.diagnostics, "diagnostics", false, "print diagnostics below the command")

	return cmd
}
