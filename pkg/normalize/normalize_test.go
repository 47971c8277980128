package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soclabs/socql/pkg/lexer"
	"github.com/soclabs/socql/pkg/token"
)

func lex(t *testing.T, input string) []token.Token {
	t.Helper()
	return lexer.Tokenize(input).Tokens
}

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Type)
	}
	return out
}

func TestInsertsBetweenJuxtaposedConditions(t *testing.T) {
	toks := Normalize(lex(t, `user = "bob" status = "active"`))
	assert.Equal(t, []token.Type{
		token.IDENT, token.EQ, token.STRING,
		token.AND,
		token.IDENT, token.EQ, token.STRING,
		token.EOF,
	}, types(toks))

	and := toks[3]
	assert.True(t, and.IsSynthetic())
	assert.Equal(t, "AND", and.Value)
	// Zero width at the end of the preceding string literal.
	prev := toks[2]
	assert.Equal(t, prev.End, and.Start)
	assert.Equal(t, prev.End, and.End)
	assert.Equal(t, prev.Line, and.Line)
	assert.Equal(t, prev.Column+(prev.End-prev.Start), and.Column)
}

func TestInsertsBeforeParenGroup(t *testing.T) {
	toks := Normalize(lex(t, `user = 1 (status = 2)`))
	assert.Equal(t, []token.Type{
		token.IDENT, token.EQ, token.NUMBER,
		token.AND,
		token.LPAREN, token.IDENT, token.EQ, token.NUMBER, token.RPAREN,
		token.EOF,
	}, types(toks))
}

func TestNoInsertionCases(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"explicit and", `user = 1 and status = 2`},
		{"explicit or", `user = 1 or status = 2`},
		{"not", `user = 1 not status`},
		{"select list", `SELECT user, status FROM siem`},
		{"clause keyword", `user = 1 where status = 2`},
		{"pipe", `user = 1 | last 15 minutes`},
		{"alias", `user as u`},
		{"order direction", `status asc`},
		{"operator chain", `src_port >= 443`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := Normalize(lex(t, tt.input))
			for _, tok := range toks {
				assert.False(t, tok.IsSynthetic(), "unexpected synthetic %s in %q", tok.Type, tt.input)
			}
		})
	}
}

func TestInsertsInsideCallArguments(t *testing.T) {
	// A call head abuts its paren; the normalizer still treats IDENT LPAREN
	// as juxtaposed. Downstream consumers skip zero-width tokens when they
	// need raw adjacency.
	toks := Normalize(lex(t, `count(user)`))
	assert.Equal(t, []token.Type{
		token.IDENT, token.AND, token.LPAREN, token.IDENT, token.RPAREN, token.EOF,
	}, types(toks))
}

func TestIdempotence(t *testing.T) {
	inputs := []string{
		`user = "bob" status = "active" role = "admin"`,
		`SELECT user, count() FROM siem WHERE a = 1 (b = 2) | agg by computer`,
		``,
		`(((`,
	}
	for _, input := range inputs {
		once := Normalize(lex(t, input))
		twice := Normalize(once)
		require.Equal(t, once, twice, "input %q", input)
	}
}

func TestEmptyInput(t *testing.T) {
	assert.Nil(t, Normalize(nil))
}
