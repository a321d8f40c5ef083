package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/yaklabco/cmdassist/pkg/pack"
	"github.com/yaklabco/cmdassist/pkg/resource"
)

// idInfo represents a table entry in JSON output.
type idInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type idsFlags struct {
	format string
	filter string
}

func newIDsCommand() *cobra.Command {
	flags := &idsFlags{}

	cmd := &cobra.Command{
		Use:   "ids [table]",
		Short: "List the identifier tables of the pack",
		Long: `Without arguments, list the identifier tables of the pack with their
sizes. With a table name, list its entries. Namespaced entries are printed
with their namespace.

Examples:
  cmdassist ids                   # List tables
  cmdassist ids blocks            # List block ids
  cmdassist ids items --filter sw # Fuzzy-filter item ids`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd, nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				return listTables(out, env.pack, flags.format)
			}
			return listEntries(out, env.pack, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.filter, "filter", "", "only list entries fuzzy-matching this text")

	return cmd
}

func listTables(out io.Writer, p *pack.Pack, format string) error {
	names := p.TableNames()
	if format == formatJSON {
		sizes := make(map[string]int, len(names))
		for _, name := range names {
			t, _ := p.Table(name)
			sizes[name] = t.Len()
		}
		return encodeJSON(out, sizes)
	}

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}
	for _, name := range names {
		t, _ := p.Table(name)
		if _, err := fmt.Fprintf(out, "%-*s  %d\n", width, name, t.Len()); err != nil {
			return fmt.Errorf("write tables: %w", err)
		}
	}
	return nil
}

func listEntries(out io.Writer, p *pack.Pack, table string, flags *idsFlags) error {
	t, ok := p.Table(table)
	if !ok {
		return fmt.Errorf("no table %q; tables: %s", table, strings.Join(p.TableNames(), ", "))
	}

	infos := make([]idInfo, 0, t.Len())
	for _, e := range t.Entries() {
		name := e.Normal().Name
		if ns, ok := resource.Namespace(e); ok {
			name = ns.FullName()
		}
		if flags.filter != "" && !fuzzy.MatchFold(flags.filter, name) {
			continue
		}
		infos = append(infos, idInfo{Name: name, Description: e.Normal().Description})
	}

	if flags.format == formatJSON {
		return encodeJSON(out, infos)
	}

	width := 0
	for _, info := range infos {
		width = max(width, len(info.Name))
	}
	for _, info := range infos {
		line := info.Name
		if info.Description != "" {
			line = fmt.Sprintf("%-*s  %s", width, info.Name, info.Description)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("write entries: %w", err)
		}
	}
	return nil
}
