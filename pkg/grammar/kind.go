package grammar

import "fmt"

// Kind tags a grammar node. The set is closed: the parser, completion,
// highlight and structure views all switch over it exhaustively.
type Kind uint8

// Structural kinds.
const (
	KindInvalid Kind = iota
	KindAnd
	KindOr
	KindOptional
	KindRepeat
	KindWrapped
	KindAny
	KindEntry
	KindEqualEntry
	KindList
	KindSingleSymbol
	KindLF

	// Command dispatch.
	KindCommand
	KindCommandName
	KindPerCommand

	// Typed leaves.
	KindBoolean
	KindInteger
	KindFloat
	KindIntegerWithUnit
	KindRelativeFloat
	KindPosition
	KindRange
	KindString
	KindText
	KindNormalID
	KindNamespaceID
	KindBlock
	KindItem
	KindTargetSelector

	// JSON sub-grammar.
	KindJSON
	KindJSONElement
	KindJSONObject
	KindJSONEntry
	KindJSONList
	KindJSONString
	KindJSONInteger
	KindJSONFloat
	KindJSONBoolean
	KindJSONNull

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:         "invalid",
	KindAnd:             "and",
	KindOr:              "or",
	KindOptional:        "optional",
	KindRepeat:          "repeat",
	KindWrapped:         "wrapped",
	KindAny:             "any",
	KindEntry:           "entry",
	KindEqualEntry:      "equal-entry",
	KindList:            "list",
	KindSingleSymbol:    "symbol",
	KindLF:              "lf",
	KindCommand:         "command",
	KindCommandName:     "command-name",
	KindPerCommand:      "per-command",
	KindBoolean:         "boolean",
	KindInteger:         "integer",
	KindFloat:           "float",
	KindIntegerWithUnit: "integer-with-unit",
	KindRelativeFloat:   "relative-float",
	KindPosition:        "position",
	KindRange:           "range",
	KindString:          "string",
	KindText:            "text",
	KindNormalID:        "normal-id",
	KindNamespaceID:     "namespace-id",
	KindBlock:           "block",
	KindItem:            "item",
	KindTargetSelector:  "target-selector",
	KindJSON:            "json",
	KindJSONElement:     "json-element",
	KindJSONObject:      "json-object",
	KindJSONEntry:       "json-entry",
	KindJSONList:        "json-list",
	KindJSONString:      "json-string",
	KindJSONInteger:     "json-integer",
	KindJSONFloat:       "json-float",
	KindJSONBoolean:     "json-boolean",
	KindJSONNull:        "json-null",
}

// String returns the kind name used in pack files.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// ParseKind resolves a pack file kind name.
func ParseKind(name string) (Kind, bool) {
	for k := KindAnd; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindInvalid, false
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindAnd; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// IsJSON reports whether k belongs to the JSON sub-grammar.
func (k Kind) IsJSON() bool {
	return k >= KindJSON && k <= KindJSONNull
}

// UsesTable reports whether nodes of this kind must carry an identifier table.
func (k Kind) UsesTable() bool {
	switch k {
	case KindCommandName, KindPerCommand, KindNormalID, KindNamespaceID,
		KindBlock, KindItem, KindIntegerWithUnit:
		return true
	default:
		return false
	}
}
