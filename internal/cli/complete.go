package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cmdassist/internal/logging"
)

type completeFlags struct {
	cursor int
	accept int
	limit  int
	format string
}

// suggestionInfo represents a completion candidate in JSON output.
type suggestionInfo struct {
	Text        string `json:"text"`
	Description string `json:"description,omitempty"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	AddSpace    bool   `json:"addSpace"`
	Kind        string `json:"kind"`
}

// acceptInfo is the JSON output of an accepted candidate.
type acceptInfo struct {
	Text   string `json:"text"`
	Cursor int    `json:"cursor"`
}

func newCompleteCommand() *cobra.Command {
	flags := &completeFlags{}

	cmd := &cobra.Command{
		Use:   "complete [command...]",
		Short: "List completion candidates at a cursor",
		Long: `List the candidates that may be typed at the cursor of a command, in
the order an editor would offer them. The command is read from standard
input when no arguments are given.

With --accept the candidate at that index is applied and the resulting
command and cursor are printed instead.

Examples:
  cmdassist complete "kill @"             # Candidates at the end
  cmdassist complete --cursor 2 "kill @e" # Candidates inside the name
  cmdassist complete --accept 0 "ki"      # Apply the first candidate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComplete(cmd, args, flags)
		},
	}

	cmd.Flags().IntVar(&flags.cursor, "cursor", -1, "cursor byte offset; negative values count from the end")
	cmd.Flags().IntVar(&flags.accept, "accept", -1, "apply the candidate at this index")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "list at most this many candidates (0 = all)")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func runComplete(cmd *cobra.Command, args []string, flags *completeFlags) error {
	text, err := inputText(cmd, args)
	if err != nil {
		return err
	}
	env, err := loadEnvironment(cmd, nil)
	if err != nil {
		return err
	}

	s := env.newSession()
	s.OnTextChanged(text, cursorOffset(flags.cursor, text))
	sgs := s.Suggestions()
	env.logger.Debug("completed",
		logging.FieldCursor, s.Cursor(),
		logging.FieldSuggestions, len(sgs))

	out := cmd.OutOrStdout()
	if flags.accept >= 0 {
		newText, cursor, ok := s.AcceptSuggestion(flags.accept)
		if !ok {
			return fmt.Errorf("no candidate %d: %d candidates at offset %d", flags.accept, len(sgs), s.Cursor())
		}
		if flags.format == formatJSON {
			return encodeJSON(out, acceptInfo{Text: newText, Cursor: cursor})
		}
		_, err := fmt.Fprintf(out, "%s\ncursor: %d\n", newText, cursor)
		return err
	}

	if flags.format == formatJSON {
		limit := len(sgs)
		if flags.limit > 0 {
			limit = min(limit, flags.limit)
		}
		infos := make([]suggestionInfo, 0, limit)
		for _, sg := range sgs[:limit] {
			infos = append(infos, suggestionInfo{
				Text:        sg.Text(),
				Description: sg.Description(),
				Start:       sg.Start,
				End:         sg.End,
				AddSpace:    sg.AddSpace,
				Kind:        sg.Bucket.String(),
			})
		}
		return encodeJSON(out, infos)
	}

	if len(sgs) == 0 {
		_, err := fmt.Fprintln(out, "no candidates")
		return err
	}
	_, err = fmt.Fprint(out, env.styles(out).FormatSuggestions(sgs, flags.limit))
	return err
}
