package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cmdassist/pkg/linter"
)

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

func newRulesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available check rules",
		Long: `List the semantic rules run after parsing, with their IDs, descriptions
and whether they are enabled by default. Parse diagnostics (unknown ids,
missing or excess input) are always reported and are not listed here.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd.OutOrStdout(), linter.DefaultRegistry(), format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func runRules(out io.Writer, registry *linter.Registry, format string) error {
	rules := registry.Rules()

	if format == formatJSON {
		infos := make([]ruleInfo, 0, len(rules))
		for _, rule := range rules {
			infos = append(infos, ruleInfo{
				ID:          rule.ID(),
				Description: rule.Description(),
				Enabled:     rule.DefaultEnabled(),
			})
		}
		return encodeJSON(out, infos)
	}

	width := 0
	for _, rule := range rules {
		width = max(width, len(rule.ID()))
	}
	for _, rule := range rules {
		enabled := "on"
		if !rule.DefaultEnabled() {
			enabled = "off"
		}
		if _, err := fmt.Fprintf(out, "%-*s  %-3s  %s\n", width, rule.ID(), enabled, rule.Description()); err != nil {
			return fmt.Errorf("write rules: %w", err)
		}
	}
	return nil
}

// encodeJSON writes v as indented JSON.
func encodeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
