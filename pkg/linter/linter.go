// Package linter collects the diagnostics of a parse tree and runs semantic
// rules over it.
package linter

import (
	"slices"

	"github.com/yaklabco/cmdassist/pkg/ast"
	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/grammar"
)

// Options controls which diagnostics Collect returns.
type Options struct {
	// MaxLevel drops diagnostics whose level is greater. Warning keeps all.
	MaxLevel diag.Level

	// Registry supplies the rules; nil uses DefaultRegistry.
	Registry *Registry

	// Enable and Disable override the default enablement of rules by ID.
	Enable  []string
	Disable []string
}

// DefaultOptions keeps every diagnostic and runs the default rules.
func DefaultOptions() Options {
	return Options{MaxLevel: diag.Warning}
}

// Enabled returns the rules of the registry that run under opts.
func (o Options) Enabled() []Rule {
	registry := o.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}
	var out []Rule
	for _, rule := range registry.Rules() {
		enabled := rule.DefaultEnabled()
		if slices.Contains(o.Enable, rule.ID()) {
			enabled = true
		}
		if slices.Contains(o.Disable, rule.ID()) {
			enabled = false
		}
		if enabled {
			out = append(out, rule)
		}
	}
	return out
}

// Collect returns the parser diagnostics of root in pre-order followed by
// the diagnostics of the enabled rules, without duplicates and filtered by
// MaxLevel.
func Collect(root *ast.Node, opts Options) []*diag.Diagnostic {
	if root == nil {
		return nil
	}
	var all []*diag.Diagnostic
	collect(root, &all)

	ctx := NewRuleContext(root)
	for _, rule := range opts.Enabled() {
		all = append(all, rule.Apply(ctx)...)
	}

	out := all[:0]
	for _, d := range diag.Dedup(all) {
		if d.Level <= opts.MaxLevel {
			out = append(out, d)
		}
	}
	return out
}

// collect appends the diagnostics of the live tree. Alternations contribute
// only their chosen branch.
func collect(n *ast.Node, out *[]*diag.Diagnostic) {
	if n.Discarded {
		return
	}
	*out = append(*out, n.Errors...)

	switch n.Kind() {
	case grammar.KindOr, grammar.KindJSONElement:
		if c := n.ChosenChild(); c != nil {
			collect(c, out)
			return
		}
	}
	for _, c := range n.Children {
		collect(c, out)
	}
}
