package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soclabs/socql/pkg/token"
)

// types strips positions for compact comparisons.
func types(res Result) []token.Type {
	out := make([]token.Type, 0, len(res.Tokens))
	for _, tok := range res.Tokens {
		out = append(out, tok.Type)
	}
	return out
}

func TestTokenizeBasicQuery(t *testing.T) {
	res := Tokenize(`SELECT user FROM siem WHERE src_port >= 443`)
	require.Empty(t, res.Errors)
	assert.Equal(t, []token.Type{
		token.SELECT, token.IDENT, token.FROM, token.IDENT,
		token.WHERE, token.IDENT, token.GE, token.NUMBER, token.EOF,
	}, types(res))
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	res := Tokenize("select WHERE Order bY")
	assert.Equal(t, []token.Type{
		token.SELECT, token.WHERE, token.ORDER, token.BY, token.EOF,
	}, types(res))
	// The raw lexeme is preserved.
	assert.Equal(t, "Order", res.Tokens[2].Value)
}

func TestOperatorsLongestFirst(t *testing.T) {
	res := Tokenize(`a != b !~ c <= d >= e < f > g = h ~ i`)
	require.Empty(t, res.Errors)
	assert.Equal(t, []token.Type{
		token.IDENT, token.NE, token.IDENT, token.NTILDE, token.IDENT,
		token.LE, token.IDENT, token.GE, token.IDENT, token.LT,
		token.IDENT, token.GT, token.IDENT, token.EQ, token.IDENT,
		token.TILDE, token.IDENT, token.EOF,
	}, types(res))
}

func TestDelimiters(t *testing.T) {
	res := Tokenize(`| ( ) , *`)
	require.Empty(t, res.Errors)
	assert.Equal(t, []token.Type{
		token.PIPE, token.LPAREN, token.RPAREN, token.COMMA, token.STAR, token.EOF,
	}, types(res))
}

func TestWildcardIdentifier(t *testing.T) {
	res := Tokenize(`name = admin*`)
	require.Empty(t, res.Errors)
	require.Len(t, res.Tokens, 4)
	w := res.Tokens[2]
	assert.Equal(t, token.WILDCARD, w.Type)
	assert.Equal(t, "admin*", w.Value)

	// A space before '*' keeps them separate tokens.
	res = Tokenize(`admin *`)
	assert.Equal(t, []token.Type{token.IDENT, token.STAR, token.EOF}, types(res))
}

func TestNumbers(t *testing.T) {
	res := Tokenize(`443 10.5 7.`)
	require.Len(t, res.Errors, 1) // the dangling '.'
	require.Len(t, res.Tokens, 5)
	assert.Equal(t, "443", res.Tokens[0].Value)
	assert.Equal(t, "10.5", res.Tokens[1].Value)
	// A trailing dot is not part of the number.
	assert.Equal(t, "7", res.Tokens[2].Value)
	assert.Equal(t, token.INVALID, res.Tokens[3].Type)
}

func TestStrings(t *testing.T) {
	res := Tokenize(`user = "bob" or user = 'alice'`)
	require.Empty(t, res.Errors)
	assert.Equal(t, `"bob"`, res.Tokens[2].Value)
	assert.Equal(t, `'alice'`, res.Tokens[6].Value)
	assert.Equal(t, "bob", res.Tokens[2].StringContent())
}

func TestStringEscapes(t *testing.T) {
	res := Tokenize(`message = "say \"hi\""`)
	require.Empty(t, res.Errors)
	require.Len(t, res.Tokens, 4)
	assert.Equal(t, `"say \"hi\""`, res.Tokens[2].Value)
}

func TestUnterminatedString(t *testing.T) {
	res := Tokenize(`user = "bob`)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "unterminated string literal", res.Errors[0].Message)
	assert.Equal(t, 8, res.Errors[0].Column)

	// Recovery token still covers the span.
	require.Len(t, res.Tokens, 4)
	assert.Equal(t, token.STRING, res.Tokens[2].Type)
	assert.Equal(t, `"bob`, res.Tokens[2].Value)
}

func TestStringStopsAtNewline(t *testing.T) {
	res := Tokenize("user = \"bob\nstatus")
	require.Len(t, res.Errors, 1)
	require.Len(t, res.Tokens, 5)
	assert.Equal(t, `"bob`, res.Tokens[2].Value)
	assert.Equal(t, token.IDENT, res.Tokens[3].Type)
	assert.Equal(t, 2, res.Tokens[3].Line)
	assert.Equal(t, 1, res.Tokens[3].Column)
}

func TestLineComment(t *testing.T) {
	res := Tokenize("user = 1 // trailing note\nstatus = 2")
	require.Empty(t, res.Errors)
	assert.Equal(t, []token.Type{
		token.IDENT, token.EQ, token.NUMBER,
		token.IDENT, token.EQ, token.NUMBER, token.EOF,
	}, types(res))
	assert.Equal(t, 2, res.Tokens[3].Line)
}

func TestInvalidCharacter(t *testing.T) {
	res := Tokenize(`user = #x`)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "unexpected character '#'", res.Errors[0].Message)
	assert.Equal(t, token.INVALID, res.Tokens[2].Type)
	// The scan advances exactly one character and continues.
	assert.Equal(t, token.IDENT, res.Tokens[3].Type)
	assert.Equal(t, "x", res.Tokens[3].Value)
}

func TestBareBangIsInvalid(t *testing.T) {
	res := Tokenize(`! a`)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, token.INVALID, res.Tokens[0].Type)
}

func TestAlwaysEndsWithEOF(t *testing.T) {
	for _, input := range []string{"", "   ", "// only a comment", "user = 1"} {
		res := Tokenize(input)
		require.NotEmpty(t, res.Tokens, "input %q", input)
		last := res.Tokens[len(res.Tokens)-1]
		assert.Equal(t, token.EOF, last.Type, "input %q", input)
		assert.Equal(t, len(input), last.Start, "input %q", input)
	}
}

func TestPositions(t *testing.T) {
	res := Tokenize("user = 1\n  status != \"x\"")
	require.Empty(t, res.Errors)

	tok := res.Tokens[3] // status
	assert.Equal(t, 2, tok.Line)
	assert.Equal(t, 3, tok.Column)
	assert.Equal(t, 11, tok.Start)
	assert.Equal(t, 17, tok.End)
}

// TestCoverage checks the reconstruction guarantee: every token's value is
// the exact input slice it claims to cover, tokens are offset-ordered and
// non-overlapping, and every gap is whitespace or comment text.
func TestCoverage(t *testing.T) {
	inputs := []string{
		`SELECT user, count() FROM siem WHERE src_ip ~ "10.*" | agg by computer`,
		"user = \"unterminated\nstatus != 2 // note\n| last 15 minutes",
		`a@b#c$d`,
		`name = admin* (x)`,
	}
	for _, input := range inputs {
		res := Tokenize(input)
		pos := 0
		for _, tok := range res.Tokens {
			require.GreaterOrEqual(t, tok.Start, pos, "input %q", input)
			require.Equal(t, input[tok.Start:tok.End], tok.Value, "input %q", input)
			gap := strings.TrimLeft(input[pos:tok.Start], " \t\r\n")
			if gap != "" {
				require.True(t, strings.HasPrefix(gap, "//"),
					"input %q: gap %q is neither whitespace nor comment", input, gap)
			}
			pos = tok.End
		}
		assert.Equal(t, len(input), pos, "input %q", input)
	}
}
