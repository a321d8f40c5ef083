package linter

import (
	"strconv"
	"strings"

	"github.com/yaklabco/cmdassist/pkg/ast"
	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/grammar"
	"github.com/yaklabco/cmdassist/pkg/parser"
	"github.com/yaklabco/cmdassist/pkg/resource"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *Registry) {
	registry.Register(NewBlockStateRule())
	registry.Register(NewPositionCaretRule())
	registry.Register(NewRangeOrderRule())
	registry.Register(NewSelectorDuplicateRule())
}

// BlockStateRule checks block states against the block they follow.
type BlockStateRule struct {
	BaseRule
}

// NewBlockStateRule creates a new block-state rule.
func NewBlockStateRule() *BlockStateRule {
	return &BlockStateRule{
		BaseRule: NewBaseRule("block-state", "Block state keys and values must exist for the block"),
	}
}

// Apply checks every state list of a block that resolved to a known id.
func (r *BlockStateRule) Apply(ctx *RuleContext) []*diag.Diagnostic {
	var diags []*diag.Diagnostic
	for _, n := range ctx.Nodes(grammar.KindBlock) {
		block, ok := n.Data.(*resource.BlockID)
		if !ok {
			continue
		}
		var states *ast.Node
		for _, c := range n.Children {
			if c.ID() == grammar.IDBlockStates && !c.Discarded {
				states = c
			}
		}
		if states == nil {
			continue
		}

		keys := make([]string, 0, len(block.States))
		for _, s := range block.States {
			keys = append(keys, s.Key)
		}
		seen := make(map[string]bool)
		for _, entry := range states.Children {
			if entry.Kind() != grammar.KindEntry || entry.Discarded || len(entry.Children) == 0 {
				continue
			}
			key := entry.Children[0]
			if key.Failed || key.Span.IsEmpty() {
				continue
			}
			name, _ := parser.Unquote(key.Text())
			state, known := block.State(name)
			switch {
			case !known:
				d := newDiagnostic(r, diag.IDError, key, "block %q has no state %q", block.Name, name)
				diags = append(diags, d.WithHint(requote(key.Text(), parser.Hint(name, keys))))
				continue
			case seen[name]:
				diags = append(diags, newDiagnostic(r, diag.Logic, key, "state %q is set more than once", name))
			}
			seen[name] = true

			if len(entry.Children) < 3 {
				continue
			}
			value := entry.Children[2]
			if value.Failed || value.Span.IsEmpty() {
				continue
			}
			if v, _ := parser.Unquote(value.Text()); !state.HasValue(v) {
				d := newDiagnostic(r, diag.Content, value, "%q is not a value of state %q", v, name)
				diags = append(diags, d.WithHint(requote(value.Text(), parser.Hint(v, state.Values))))
			}
		}
	}
	return diags
}

// requote quotes hint when the text it replaces was quoted.
func requote(text, hint string) string {
	if hint == "" || !strings.HasPrefix(text, `"`) {
		return hint
	}
	return strconv.Quote(hint)
}

// PositionCaretRule rejects positions mixing local and world coordinates.
type PositionCaretRule struct {
	BaseRule
}

// NewPositionCaretRule creates a new position-caret rule.
func NewPositionCaretRule() *PositionCaretRule {
	return &PositionCaretRule{
		BaseRule: NewBaseRule("position-caret", "Local (^) coordinates cannot be mixed with other coordinates"),
	}
}

// Apply checks every complete position.
func (r *PositionCaretRule) Apply(ctx *RuleContext) []*diag.Diagnostic {
	var diags []*diag.Diagnostic
	for _, n := range ctx.Valid(grammar.KindPosition) {
		local, world := 0, 0
		for _, c := range n.Children {
			if c.Kind() != grammar.KindRelativeFloat {
				continue
			}
			if strings.HasPrefix(c.Text(), "^") {
				local++
			} else {
				world++
			}
		}
		if local > 0 && world > 0 {
			diags = append(diags, newDiagnostic(r, diag.Logic, n, "local coordinates (^) cannot be mixed with world coordinates"))
		}
	}
	return diags
}

// RangeOrderRule rejects ranges whose lower bound exceeds the upper bound.
type RangeOrderRule struct {
	BaseRule
}

// NewRangeOrderRule creates a new range-order rule.
func NewRangeOrderRule() *RangeOrderRule {
	return &RangeOrderRule{
		BaseRule: NewBaseRule("range-order", "Range minimum must not exceed its maximum"),
	}
}

// Apply checks every valid range.
func (r *RangeOrderRule) Apply(ctx *RuleContext) []*diag.Diagnostic {
	var diags []*diag.Diagnostic
	for _, n := range ctx.Valid(grammar.KindRange) {
		rng, err := parser.ParseRange(n.Text())
		if err != nil || rng.Min == nil || rng.Max == nil {
			continue
		}
		if *rng.Min > *rng.Max {
			diags = append(diags, newDiagnostic(r, diag.Logic, n, "range minimum %d is greater than maximum %d", *rng.Min, *rng.Max))
		}
	}
	return diags
}

// SelectorDuplicateRule rejects selector arguments given twice.
type SelectorDuplicateRule struct {
	BaseRule
}

// NewSelectorDuplicateRule creates a new selector-duplicate rule.
func NewSelectorDuplicateRule() *SelectorDuplicateRule {
	return &SelectorDuplicateRule{
		BaseRule: NewBaseRule("selector-duplicate", "Selector arguments other than tag and family may appear once"),
	}
}

// Apply checks the argument list of every selector.
func (r *SelectorDuplicateRule) Apply(ctx *RuleContext) []*diag.Diagnostic {
	var diags []*diag.Diagnostic
	for _, list := range ctx.Nodes(grammar.KindList) {
		if list.ID() != grammar.IDSelectorArgs {
			continue
		}
		seen := make(map[string]bool)
		for _, arg := range list.Children {
			if arg.Kind() != grammar.KindEqualEntry || arg.Discarded || len(arg.Children) == 0 {
				continue
			}
			key := arg.Children[0]
			if key.Failed || key.Span.IsEmpty() {
				continue
			}
			name, _ := parser.Unquote(key.Text())
			entry, known := arg.Grammar.Entry(name)
			if !known {
				continue
			}
			if seen[name] && !entry.Repeatable {
				diags = append(diags, newDiagnostic(r, diag.Logic, key, "selector argument %q cannot be repeated", name))
			}
			seen[name] = true
		}
	}
	return diags
}
