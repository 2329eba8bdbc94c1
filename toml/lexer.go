package toml

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Lexer splits a TOML document into tokens, one line-oriented pass
type Lexer struct {
	input []byte
	pos   int
	line  int
	col   int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
	}
}

// NextToken returns the next token in the stream
func (l *Lexer) NextToken() Token {
	l.skipBlank()

	if l.pos >= len(l.input) {
		return l.tokenAt(TokenEOF, "", l.line, l.col)
	}

	line, col := l.line, l.col
	ch := l.peek()

	switch ch {
	case '\n':
		l.advance()
		return l.tokenAt(TokenNewline, "\n", line, col)
	case '#':
		return l.readComment(line, col)
	case '=':
		l.advance()
		return l.tokenAt(TokenEqual, "=", line, col)
	case '.':
		l.advance()
		return l.tokenAt(TokenDot, ".", line, col)
	case ',':
		l.advance()
		return l.tokenAt(TokenComma, ",", line, col)
	case '[':
		l.advance()
		return l.tokenAt(TokenLBracket, "[", line, col)
	case ']':
		l.advance()
		return l.tokenAt(TokenRBracket, "]", line, col)
	case '"':
		return l.readBasicString(line, col)
	case '\'':
		return l.readLiteralString(line, col)
	}

	if isBare(ch) || ch == '+' {
		return l.readBare(line, col)
	}

	l.advance()
	return l.tokenAt(TokenError, fmt.Sprintf("unexpected character %q", ch), line, col)
}

func (l *Lexer) tokenAt(typ TokenType, literal string, line, col int) Token {
	return Token{Type: typ, Literal: literal, Line: line, Col: col + 1}
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, w := utf8.DecodeRune(l.input[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return r
}

func (l *Lexer) skipBlank() {
	for l.pos < len(l.input) {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) readComment(line, col int) Token {
	l.advance() // #
	start := l.pos
	for l.pos < len(l.input) && l.peek() != '\n' {
		l.advance()
	}
	return l.tokenAt(TokenComment, string(l.input[start:l.pos]), line, col)
}

// readBasicString reads a double-quoted string, resolving escapes
func (l *Lexer) readBasicString(line, col int) Token {
	l.advance() // opening quote
	var sb strings.Builder

	for l.pos < len(l.input) {
		ch := l.advance()
		switch ch {
		case '\n':
			return l.tokenAt(TokenError, "newline in string", line, col)
		case '"':
			return l.tokenAt(TokenString, sb.String(), line, col)
		case '\\':
			esc := l.advance()
			switch esc {
			case '"', '\\':
				sb.WriteRune(esc)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			default:
				return l.tokenAt(TokenError, fmt.Sprintf("invalid escape \\%c", esc), line, col)
			}
		default:
			sb.WriteRune(ch)
		}
	}
	return l.tokenAt(TokenError, "unterminated string", line, col)
}

// readLiteralString reads a single-quoted string verbatim
func (l *Lexer) readLiteralString(line, col int) Token {
	l.advance() // opening quote
	start := l.pos
	for l.pos < len(l.input) {
		switch l.peek() {
		case '\n':
			return l.tokenAt(TokenError, "newline in string", line, col)
		case '\'':
			lit := string(l.input[start:l.pos])
			l.advance()
			return l.tokenAt(TokenString, lit, line, col)
		}
		l.advance()
	}
	return l.tokenAt(TokenError, "unterminated string", line, col)
}

// readBare reads a bare key, integer or boolean; the parser decides from context which one is allowed
func (l *Lexer) readBare(line, col int) Token {
	start := l.pos
	for l.pos < len(l.input) {
		ch := l.peek()
		if !isBare(ch) && ch != '+' {
			break
		}
		l.advance()
	}
	lit := string(l.input[start:l.pos])

	switch {
	case lit == "true" || lit == "false":
		return l.tokenAt(TokenBool, lit, line, col)
	case isInteger(lit):
		return l.tokenAt(TokenInteger, lit, line, col)
	case strings.ContainsRune(lit, '+'):
		return l.tokenAt(TokenError, fmt.Sprintf("invalid bare key %q", lit), line, col)
	}
	return l.tokenAt(TokenIdent, lit, line, col)
}

// isInteger accepts decimal with optional sign and underscores, or 0x/0o/0b prefixes
func isInteger(lit string) bool {
	s := lit
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'o', 'b':
			return s == lit // prefixed forms take no sign
		}
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(rune(s[i])) && s[i] != '_' {
			return false
		}
	}
	return isDigit(rune(s[0])) && isDigit(rune(s[len(s)-1]))
}

func isBare(r rune) bool {
	return isAlpha(r) || isDigit(r) || r == '_' || r == '-'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
