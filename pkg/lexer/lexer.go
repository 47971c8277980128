// Package lexer tokenizes SOCQL query text.
//
// The scan is a single deterministic left-to-right pass with one character
// of lookahead. It never aborts: malformed input produces INVALID or
// partial tokens plus lexical errors, and tokenization always completes
// with an EOF token. Every input character is accounted for by a token
// value or a dropped whitespace/comment span.
package lexer

import (
	"strings"

	"github.com/soclabs/socql/pkg/token"
)

// Error describes a lexical problem. It is non-fatal: the scan continues
// and the offending span is still covered by a recovery token.
type Error struct {
	Message string
	Line    int // 1-based
	Column  int // 1-based
	Start   int // 0-based byte offset, inclusive
	End     int // 0-based byte offset, exclusive
}

// Result holds the full token stream and any lexical errors.
type Result struct {
	Tokens []token.Token
	Errors []Error
}

// Lexer scans SOCQL input. The zero value is not usable; use Tokenize or New.
type Lexer struct {
	input  string
	pos    int // current byte offset
	line   int // 1-based line of pos
	col    int // 1-based column of pos
	tokens []token.Token
	errors []Error
}

// New creates a Lexer for the given input.
func New(input string) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// Tokenize scans the entire input and returns all tokens plus lexical errors.
// The returned token list always ends with exactly one EOF token.
func Tokenize(input string) Result {
	l := New(input)
	return l.Run()
}

// Run performs the scan. It must be called at most once per Lexer.
func (l *Lexer) Run() Result {
	for l.pos < len(l.input) {
		l.scan()
	}
	l.tokens = append(l.tokens, token.Token{
		Type:   token.EOF,
		Start:  len(l.input),
		End:    len(l.input),
		Line:   l.line,
		Column: l.col,
	})
	return Result{Tokens: l.tokens, Errors: l.errors}
}

// scan consumes one token, comment, or whitespace run.
func (l *Lexer) scan() {
	ch := l.input[l.pos]

	switch {
	case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
		l.advance()
	case ch == '/' && l.peek() == '/':
		l.skipLineComment()
	case ch == '"' || ch == '\'':
		l.readString(ch)
	case isDigit(ch):
		l.readNumber()
	case isLetter(ch) || ch == '_':
		l.readIdentifier()
	default:
		l.readOperator(ch)
	}
}

// readOperator handles operators, delimiters, and anything unrecognized.
// Multi-character operators are matched longest-first.
func (l *Lexer) readOperator(ch byte) {
	switch ch {
	case '=':
		l.emit(token.EQ, 1)
	case '!':
		switch l.peek() {
		case '=':
			l.emit(token.NE, 2)
		case '~':
			l.emit(token.NTILDE, 2)
		default:
			l.invalid()
		}
	case '~':
		l.emit(token.TILDE, 1)
	case '<':
		if l.peek() == '=' {
			l.emit(token.LE, 2)
		} else {
			l.emit(token.LT, 1)
		}
	case '>':
		if l.peek() == '=' {
			l.emit(token.GE, 2)
		} else {
			l.emit(token.GT, 1)
		}
	case '|':
		l.emit(token.PIPE, 1)
	case '(':
		l.emit(token.LPAREN, 1)
	case ')':
		l.emit(token.RPAREN, 1)
	case ',':
		l.emit(token.COMMA, 1)
	case '*':
		l.emit(token.STAR, 1)
	default:
		l.invalid()
	}
}

// invalid emits an INVALID token for the current character plus a lexical
// error, then advances exactly one character.
func (l *Lexer) invalid() {
	start, line, col := l.pos, l.line, l.col
	l.advance()
	l.tokens = append(l.tokens, token.Token{
		Type:   token.INVALID,
		Value:  l.input[start:l.pos],
		Start:  start,
		End:    l.pos,
		Line:   line,
		Column: col,
	})
	l.errors = append(l.errors, Error{
		Message: "unexpected character '" + l.input[start:l.pos] + "'",
		Line:    line,
		Column:  col,
		Start:   start,
		End:     l.pos,
	})
}

// readString reads a quoted string literal. Backslash escapes are honored.
// A string must not span a newline: an unterminated string yields both a
// partial STRING token (for recovery) and a lexical error.
func (l *Lexer) readString(quote byte) {
	start, line, col := l.pos, l.line, l.col
	l.advance() // opening quote

	terminated := false
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\n' {
			break
		}
		if ch == '\\' {
			l.advance()
			if l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.advance()
			}
			continue
		}
		if ch == quote {
			l.advance()
			terminated = true
			break
		}
		l.advance()
	}

	l.tokens = append(l.tokens, token.Token{
		Type:   token.STRING,
		Value:  l.input[start:l.pos],
		Start:  start,
		End:    l.pos,
		Line:   line,
		Column: col,
	})
	if !terminated {
		l.errors = append(l.errors, Error{
			Message: "unterminated string literal",
			Line:    line,
			Column:  col,
			Start:   start,
			End:     l.pos,
		})
	}
}

// readNumber reads an unsigned integer or a single-decimal-point number.
// No sign, no exponent.
func (l *Lexer) readNumber() {
	start, line, col := l.pos, l.line, l.col
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.advance()
	}
	if l.pos < len(l.input) && l.input[l.pos] == '.' && isDigit(l.peek()) {
		l.advance() // '.'
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.advance()
		}
	}
	l.tokens = append(l.tokens, token.Token{
		Type:   token.NUMBER,
		Value:  l.input[start:l.pos],
		Start:  start,
		End:    l.pos,
		Line:   line,
		Column: col,
	})
}

// readIdentifier reads [a-zA-Z_][a-zA-Z0-9_]* and reclassifies it against
// the keyword table case-insensitively. An identifier immediately followed
// by '*' (no space) becomes a WILDCARD token.
func (l *Lexer) readIdentifier() {
	start, line, col := l.pos, l.line, l.col
	for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
		l.advance()
	}

	typ := token.LookupIdent(strings.ToLower(l.input[start:l.pos]))
	if l.pos < len(l.input) && l.input[l.pos] == '*' {
		l.advance()
		typ = token.WILDCARD
	}

	l.tokens = append(l.tokens, token.Token{
		Type:   typ,
		Value:  l.input[start:l.pos],
		Start:  start,
		End:    l.pos,
		Line:   line,
		Column: col,
	})
}

// skipLineComment drops a // comment up to (not including) the newline.
func (l *Lexer) skipLineComment() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.advance()
	}
}

// emit appends a token of the given byte width starting at the current position.
func (l *Lexer) emit(typ token.Type, width int) {
	start, line, col := l.pos, l.line, l.col
	for i := 0; i < width; i++ {
		l.advance()
	}
	l.tokens = append(l.tokens, token.Token{
		Type:   typ,
		Value:  l.input[start:l.pos],
		Start:  start,
		End:    l.pos,
		Line:   line,
		Column: col,
	})
}

// advance moves past the current character, tracking line and column.
func (l *Lexer) advance() {
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

// peek returns the next character without advancing, or 0 at end of input.
func (l *Lexer) peek() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}
