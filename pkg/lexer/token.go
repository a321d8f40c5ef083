// Package lexer turns command text into a flat, lossless token stream.
// Tokens are contiguous, non-overlapping and together cover every byte of
// the input; their Text fields are substrings of the original content.
package lexer

// TokenKind classifies a token.
type TokenKind uint8

// Token kinds produced by Tokenize.
const (
	TokString TokenKind = iota
	TokNumber
	TokSymbol
	TokSpace
	TokLineBreak
)

// String returns the kind name.
func (k TokenKind) String() string {
	switch k {
	case TokString:
		return "String"
	case TokNumber:
		return "Number"
	case TokSymbol:
		return "Symbol"
	case TokSpace:
		return "Space"
	case TokLineBreak:
		return "LineBreak"
	default:
		return "Unknown"
	}
}

// Token is a classified slice of the input.
type Token struct {
	// Kind classifies what this token represents.
	Kind TokenKind

	// Offset is the byte index where this token begins.
	Offset int

	// Text is the token source; it shares memory with Input.Content.
	Text string
}

// End returns the byte index just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return len(t.Text)
}

// Input owns the text of one edit and its token stream. It is created once
// per edit and never mutated afterwards, so spans and tokens referring to it
// stay valid for as long as the Input is reachable.
type Input struct {
	// Content is the full input text.
	Content string

	// Tokens is the token stream covering every byte of Content.
	Tokens []Token
}

// Len returns the number of tokens.
func (in *Input) Len() int {
	return len(in.Tokens)
}

// Offset converts a token index into a byte offset. The index equal to the
// token count maps to the end of the content.
func (in *Input) Offset(tokenIndex int) int {
	if tokenIndex < len(in.Tokens) {
		return in.Tokens[tokenIndex].Offset
	}
	return len(in.Content)
}

// Validate checks that tokens are contiguous, non-empty and cover the full
// content. It returns false for any gap or overlap.
func Validate(in *Input) bool {
	if len(in.Tokens) == 0 {
		return len(in.Content) == 0
	}

	cursor := 0
	for _, tok := range in.Tokens {
		if tok.Offset != cursor || tok.Len() == 0 {
			return false
		}
		if in.Content[tok.Offset:tok.End()] != tok.Text {
			return false
		}
		cursor = tok.End()
	}

	return cursor == len(in.Content)
}
