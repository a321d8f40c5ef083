package lexer

import "fmt"

// Span is a half-open range [Start, End) of token indices into an Input,
// with the resolved byte offsets cached.
type Span struct {
	Input *Input

	// Start and End are token indices.
	Start int
	End   int

	// StartOffset and EndOffset are the byte range in Input.Content.
	StartOffset int
	EndOffset   int
}

// NewSpan builds a span over tokens [start, end). It panics on inverted or
// out-of-range bounds, which are always caller bugs.
func NewSpan(in *Input, start, end int) Span {
	if start > end || start < 0 || end > len(in.Tokens) {
		panic(fmt.Sprintf("lexer: invalid span [%d, %d) over %d tokens", start, end, len(in.Tokens)))
	}
	return Span{
		Input:       in,
		Start:       start,
		End:         end,
		StartOffset: in.Offset(start),
		EndOffset:   in.Offset(end),
	}
}

// IsEmpty reports whether the span covers no tokens.
func (s Span) IsEmpty() bool {
	return s.Start >= s.End
}

// Len returns the number of tokens in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Token returns the i-th token of the span.
func (s Span) Token(i int) Token {
	return s.Input.Tokens[s.Start+i]
}

// Tokens returns the tokens covered by the span.
func (s Span) Tokens() []Token {
	if s.Input == nil {
		return nil
	}
	return s.Input.Tokens[s.Start:s.End]
}

// String returns the source text covered by the span.
func (s Span) String() string {
	if s.Input == nil {
		return ""
	}
	return s.Input.Content[s.StartOffset:s.EndOffset]
}

// IsAllSpace reports whether every token in the span is a space.
// Empty spans count as all space.
func (s Span) IsAllSpace() bool {
	for _, tok := range s.Tokens() {
		if tok.Kind != TokSpace {
			return false
		}
	}
	return true
}

// ContainsOffset reports whether the byte offset lies in the span, counting
// the end offset as inside so a cursor right after a token still matches it.
func (s Span) ContainsOffset(offset int) bool {
	return offset >= s.StartOffset && offset <= s.EndOffset
}
