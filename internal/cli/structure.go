package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStructureCommand() *cobra.Command {
	var cursor int

	cmd := &cobra.Command{
		Use:   "structure [command...]",
		Short: "Print the signature of a command",
		Long: `Print the signature of a command, such as "<command-name> <player> <item>",
followed by the description of the parameter at the cursor. Optional
parameters are shown in brackets. The command is read from standard input
when no arguments are given.

Examples:
  cmdassist structure "give @p"
  cmdassist structure --cursor 5 "kill @e"`,
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
			s.OnTextChanged(text, cursorOffset(cursor, text))

			out := cmd.OutOrStdout()
			styles := env.styles(out)
			if _, err := fmt.Fprintln(out, styles.Bold.Render(s.Structure())); err != nil {
				return err
			}
			if hint := s.ParamHint(); hint != "" {
				_, err = fmt.Fprintln(out, styles.Dim.Render(hint))
			}
			return err
		},
	}

	cmd.Flags().IntVar(&cursor, "cursor", -1, "cursor byte offset; negative values count from the end")

	return cmd
}
