package lexer

// isNumberStart reports whether ch starts a number token.
func isNumberStart(ch byte) bool {
	return (ch >= '0' && ch <= '9') || ch == '.'
}

func isNumberPart(ch byte) bool {
	return isNumberStart(ch) || ch == '+' || ch == '-'
}

// IsSymbol reports whether ch always forms a one-byte symbol token.
func IsSymbol(ch byte) bool {
	switch ch {
	case ',', '@', '~', '^', '/', '$', '&', '\'', '!', '#', '%', '*', '=',
		'[', '{', ']', '}', '\\', '|', '<', '>', '`', ':':
		return true
	default:
		return false
	}
}

// endsBareString reports whether ch terminates an unquoted string.
// Colons do not, so namespaced ids stay one token.
func endsBareString(ch byte) bool {
	switch ch {
	case ' ', '\n', '"', '+':
		return true
	case ':':
		return false
	default:
		return IsSymbol(ch)
	}
}

type lexer struct {
	content string
	index   int
	tokens  []Token
}

func (l *lexer) emit(kind TokenKind, start, end int) {
	l.tokens = append(l.tokens, Token{Kind: kind, Offset: start, Text: l.content[start:end]})
}

func (l *lexer) number(start int) {
	l.index++
	for l.index < len(l.content) && isNumberPart(l.content[l.index]) {
		l.index++
	}
	l.emit(TokNumber, start, l.index)
}

func (l *lexer) str(quoted bool) {
	start := l.index
	for l.index++; l.index < len(l.content); l.index++ {
		ch := l.content[l.index]
		switch {
		case ch == '\\':
			// The escaped byte is consumed unconditionally.
			l.index++
		case quoted:
			if ch == '"' {
				l.index++
				l.emit(TokString, start, l.index)
				return
			}
		case endsBareString(ch):
			l.emit(TokString, start, l.index)
			return
		}
	}
	l.index = len(l.content)
	l.emit(TokString, start, l.index)
}

func (l *lexer) run() {
	for l.index < len(l.content) {
		ch := l.content[l.index]
		switch {
		case ch == '\n':
			l.emit(TokLineBreak, l.index, l.index+1)
			l.index++
		case ch == ' ':
			l.emit(TokSpace, l.index, l.index+1)
			l.index++
		case isNumberStart(ch):
			l.number(l.index)
		case ch == '+' || ch == '-':
			if l.index+1 < len(l.content) && isNumberStart(l.content[l.index+1]) {
				l.number(l.index)
				continue
			}
			l.emit(TokSymbol, l.index, l.index+1)
			l.index++
		case IsSymbol(ch):
			l.emit(TokSymbol, l.index, l.index+1)
			l.index++
		case ch == '"':
			l.str(true)
		default:
			l.str(false)
		}
	}
}

// Tokenize splits content into tokens. It never fails: unterminated quoted
// strings and trailing partial numbers extend to the end of the input.
func Tokenize(content string) *Input {
	l := &lexer{content: content}
	l.run()
	return &Input{Content: content, Tokens: l.tokens}
}
