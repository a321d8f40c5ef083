package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/linter"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full lists every rule with its description.
	Full bool

	// Registry supplies the rules; nil means the default registry.
	Registry *linter.Registry
}

// GenerateTemplate creates a commented configuration file.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(`# cmdassist configuration

# Command pack file; leave empty for the builtin pack
# pack: ./commands.yml

`)
	levels := make([]string, 0, diag.Warning+1)
	for l := diag.Incomplete; l <= diag.Warning; l++ {
		levels = append(levels, l.String())
	}
	fmt.Fprintf(&buf, "# Least structural level reported: %s\n", strings.Join(levels, ", "))
	buf.WriteString("max_level: warning\n\n")

	formats := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		formats = append(formats, string(f))
	}
	fmt.Fprintf(&buf, "# Output format: %s\n", strings.Join(formats, ", "))
	buf.WriteString("format: text\n\n")
	buf.WriteString("# Terminal colors: auto, always, never\ncolor: auto\n\n")
	buf.WriteString("# Log level: debug, info, warn, error\nlog_level: info\n")

	if !opts.Full {
		buf.WriteString(`
# Rule-specific configuration
# rules:
#   selector-duplicate:
#     enabled: false
`)
		return buf.Bytes()
	}

	registry := opts.Registry
	if registry == nil {
		registry = linter.DefaultRegistry()
	}
	buf.WriteString("\n# Rule-specific configuration\nrules:\n")
	for _, rule := range registry.Rules() {
		fmt.Fprintf(&buf, "  # %s\n", rule.Description())
		fmt.Fprintf(&buf, "  %s:\n    enabled: %t\n", rule.ID(), rule.DefaultEnabled())
	}
	return buf.Bytes()
}
