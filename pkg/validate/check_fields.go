package validate

import (
	"strings"

	"github.com/soclabs/socql/pkg/token"
)

// membershipCheck looks every bare identifier up in the field registry and
// every call head up in the function registry. Unknown fields are info
// only: schemas are extended at runtime and a missing field is usually a
// registry gap, not a query bug.
var membershipCheck = CheckDef{
	Name:  "schema-membership",
	Codes: []string{CodeUnknownField, CodeUnknownFunction},
	Run: func(p *pass) {
		for i, tok := range p.tokens {
			if tok.IsSynthetic() || tok.Type != token.IDENT {
				continue
			}
			if nxt, _, ok := p.next(i); ok && isCallHead(tok, nxt) {
				if !p.reg.HasFunction(tok.Value) {
					p.report(CodeUnknownFunction, SeverityWarning, tok,
						"unknown function '"+tok.Value+"'")
				}
				continue
			}
			if prv, _, ok := p.prev(i); ok {
				switch prv.Type {
				case token.AS, token.FROM, token.JOIN, token.PIPE:
					// Alias target, table name, or pipe command.
					continue
				case token.NUMBER:
					if p.reg.IsTimeUnit(tok.Value) {
						continue
					}
				}
			}
			if !p.reg.HasField(tok.Value) {
				p.report(CodeUnknownField, SeverityInfo, tok,
					"unknown field '"+tok.Value+"'")
			}
		}
	},
}

// duplicateCheck flags a field named twice in the SELECT list. AS targets
// and call heads are not field references and are skipped.
var duplicateCheck = CheckDef{
	Name:  "duplicate-select-fields",
	Codes: []string{CodeDuplicateField},
	Run: func(p *pass) {
		start := selectIndex(p.tokens)
		if start < 0 {
			return
		}
		seen := make(map[string]bool)
		for i := start + 1; i < len(p.tokens); i++ {
			tok := p.tokens[i]
			if selectListEnds(tok.Type) {
				break
			}
			if tok.IsSynthetic() || tok.Type != token.IDENT {
				continue
			}
			if nxt, _, ok := p.next(i); ok && isCallHead(tok, nxt) {
				continue
			}
			if prv, _, ok := p.prev(i); ok && prv.Type == token.AS {
				continue
			}
			k := strings.ToLower(tok.Value)
			if seen[k] {
				p.report(CodeDuplicateField, SeverityWarning, tok,
					"duplicate field '"+tok.Value+"' in SELECT")
				continue
			}
			seen[k] = true
		}
	},
}

// selectIndex returns the index of the first SELECT token, or -1.
func selectIndex(toks []token.Token) int {
	for i, tok := range toks {
		if tok.Type == token.SELECT {
			return i
		}
	}
	return -1
}

// selectListEnds reports whether t terminates the SELECT field list.
func selectListEnds(t token.Type) bool {
	return t == token.FROM || t == token.WHERE || t == token.PIPE
}
