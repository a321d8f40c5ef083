package linter

import (
	"github.com/yaklabco/cmdassist/pkg/ast"
	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/grammar"
)

// Rule checks a parsed command for problems the grammar cannot express.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "block-state").
	ID() string

	// Description returns a short description of what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule runs without configuration.
	DefaultEnabled() bool

	// Apply returns the diagnostics found in the tree. Rules only inspect
	// nodes that parsed without errors.
	Apply(ctx *RuleContext) []*diag.Diagnostic
}

// BaseRule provides the metadata half of the Rule interface.
// Embed it in rule implementations and implement Apply.
type BaseRule struct {
	id   string
	desc string
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, desc string) BaseRule {
	return BaseRule{id: id, desc: desc}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Description returns a short description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// DefaultEnabled returns true. Override it to ship a rule disabled.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// RuleContext is what a rule sees of one parse.
type RuleContext struct {
	// Root is the tree returned by the parser.
	Root *ast.Node

	nodes map[grammar.Kind][]*ast.Node
}

// NewRuleContext indexes the live nodes of root by kind.
func NewRuleContext(root *ast.Node) *RuleContext {
	ctx := &RuleContext{Root: root, nodes: make(map[grammar.Kind][]*ast.Node)}
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	ast.Walk(root, func(n *ast.Node) error {
		if k := n.Kind(); k != grammar.KindInvalid {
			ctx.nodes[k] = append(ctx.nodes[k], n)
		}
		return nil
	})
	return ctx
}

// Nodes returns the live nodes of kind k in pre-order.
func (c *RuleContext) Nodes(k grammar.Kind) []*ast.Node {
	return c.nodes[k]
}

// Valid returns the live nodes of kind k that parsed without errors.
func (c *RuleContext) Valid(k grammar.Kind) []*ast.Node {
	var out []*ast.Node
	for _, n := range c.nodes[k] {
		if !n.Failed {
			out = append(out, n)
		}
	}
	return out
}

// newDiagnostic returns a diagnostic over the span of n tagged with rule.
func newDiagnostic(rule Rule, level diag.Level, n *ast.Node, format string, args ...any) *diag.Diagnostic {
	d := diag.Newf(level, n.Span.StartOffset, n.Span.EndOffset, format, args...)
	d.Rule = rule.ID()
	return d
}
