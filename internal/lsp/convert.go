package lsp

import (
	"fmt"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/suggest"
)

const source = "cmdassist"

func severity(level diag.Level) *protocol.DiagnosticSeverity {
	s := protocol.DiagnosticSeverityError
	if !level.IsError() {
		s = protocol.DiagnosticSeverityWarning
	}
	return &s
}

// toProtocolDiagnostic converts d, whose offsets are relative to the line
// starting at lineOffset.
func toProtocolDiagnostic(index *lineIndex, lineOffset int, d *diag.Diagnostic) protocol.Diagnostic {
	src := source
	code := d.Level.String()
	if d.Rule != "" {
		code = d.Rule
	}
	message := d.Message
	if d.Hint != "" {
		message = fmt.Sprintf("%s (did you mean %q?)", message, d.Hint)
	}
	return protocol.Diagnostic{
		Range:    index.rangeOf(lineOffset+d.Start, lineOffset+d.End),
		Severity: severity(d.Level),
		Code:     &protocol.IntegerOrString{Value: code},
		Source:   &src,
		Message:  message,
	}
}

func completionKind(b suggest.Bucket) *protocol.CompletionItemKind {
	var k protocol.CompletionItemKind
	switch b {
	case suggest.BucketSpace, suggest.BucketSymbol:
		k = protocol.CompletionItemKindOperator
	case suggest.BucketLiteral:
		k = protocol.CompletionItemKindKeyword
	default:
		k = protocol.CompletionItemKindValue
	}
	return &k
}

// toCompletionItems converts suggestions whose offsets are relative to the
// line starting at lineOffset. SortText keeps the collector's order.
func toCompletionItems(index *lineIndex, lineOffset int, sgs []suggest.Suggestion) []protocol.CompletionItem {
	items := make([]protocol.CompletionItem, 0, len(sgs))
	for i, sg := range sgs {
		label := sg.Text()
		if label == " " {
			label = "␣"
		}
		sortText := fmt.Sprintf("%05d", i)
		item := protocol.CompletionItem{
			Label:    label,
			Kind:     completionKind(sg.Bucket),
			SortText: &sortText,
			TextEdit: protocol.TextEdit{
				Range:   index.rangeOf(lineOffset+sg.Start, lineOffset+sg.End),
				NewText: sg.Text(),
			},
		}
		if desc := sg.Description(); desc != "" {
			item.Detail = &desc
		}
		if filter := strings.TrimSpace(sg.Text()); filter != "" {
			item.FilterText = &filter
		}
		items = append(items, item)
	}
	return items
}

// hoverText renders the signature of the line and the hint of the parameter
// under the cursor as markdown.
func hoverText(structure, paramHint string) string {
	var b strings.Builder
	b.WriteString("```\n")
	b.WriteString(structure)
	b.WriteString("\n```")
	if paramHint != "" {
		b.WriteString("\n\n")
		b.WriteString(paramHint)
	}
	return b.String()
}
