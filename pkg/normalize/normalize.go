// Package normalize inserts implicit AND conjunctions into a SOCQL token
// stream.
//
// SOCQL tolerates juxtaposed conditions: `user = "bob" status = "active"`
// means the same as the version with an explicit AND. The normalizer makes
// that conjunction visible to downstream consumers by inserting zero-width
// synthetic AND tokens. This is a best-effort editing aid, not a grammar:
// a premature AND while the user is mid-edit (for example typing an alias)
// is acceptable and intentional.
package normalize

import (
	"strings"

	"github.com/soclabs/socql/pkg/token"
)

// expressionEnd holds token types that can end a condition.
var expressionEnd = map[token.Type]bool{
	token.STRING:   true,
	token.NUMBER:   true,
	token.IDENT:    true,
	token.RPAREN:   true,
	token.NULL:     true,
	token.TRUE:     true,
	token.FALSE:    true,
	token.WILDCARD: true,
}

// expressionStart holds token types that can begin a condition.
var expressionStart = map[token.Type]bool{
	token.IDENT:  true,
	token.LPAREN: true,
}

// contextKeyword holds token types that introduce a clause or argument
// position rather than a fresh condition; no AND is inserted before them.
var contextKeyword = map[token.Type]bool{
	token.SELECT: true,
	token.WHERE:  true,
	token.PIPE:   true,
	token.LAST:   true,
	token.DEDUP:  true,
	token.EVAL:   true,
	token.AGG:    true,
	token.ORDER:  true,
	token.REGEX:  true,
	token.BY:     true,
	token.AS:     true,
	token.ASC:    true,
	token.DESC:   true,
	token.IN:     true,
	token.COMMA:  true,
}

// reservedIdent guards against identifiers that escaped keyword
// reclassification (for example dynamically registered spellings).
var reservedIdent = map[string]bool{
	"AND":  true,
	"OR":   true,
	"NOT":  true,
	"IN":   true,
	"AS":   true,
	"BY":   true,
	"ASC":  true,
	"DESC": true,
}

// Normalize returns the token stream with synthetic AND tokens inserted
// between juxtaposed conditions. The input slice is not modified.
//
// Normalize is idempotent: a synthetic AND has type AND, which belongs to
// neither the expression-end nor the expression-start set, so re-running
// the pass inserts nothing new.
func Normalize(tokens []token.Token) []token.Token {
	if len(tokens) == 0 {
		return nil
	}

	out := make([]token.Token, 0, len(tokens))
	for i, tok := range tokens {
		if i > 0 && insertBetween(tokens[i-1], tok) {
			prev := tokens[i-1]
			out = append(out, token.Token{
				Type:   token.AND,
				Value:  "AND",
				Start:  prev.End,
				End:    prev.End,
				Line:   endLine(prev),
				Column: endColumn(prev),
			})
		}
		out = append(out, tok)
	}
	return out
}

// insertBetween reports whether a synthetic AND belongs between a and b.
func insertBetween(a, b token.Token) bool {
	if !expressionEnd[a.Type] || !expressionStart[b.Type] {
		return false
	}
	if b.Type == token.AND || b.Type == token.OR || b.Type == token.NOT {
		return false
	}
	if contextKeyword[b.Type] {
		return false
	}
	if b.Type == token.IDENT && reservedIdent[strings.ToUpper(b.Value)] {
		return false
	}
	return true
}

// endLine returns the line of the position just past the token. Tokens
// never span newlines, so this is the token's own line.
func endLine(t token.Token) int {
	return t.Line
}

// endColumn returns the column just past the token.
func endColumn(t token.Token) int {
	return t.Column + (t.End - t.Start)
}
