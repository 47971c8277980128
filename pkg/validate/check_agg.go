package validate

import (
	"strings"

	"github.com/soclabs/socql/pkg/token"
)

// aggByCheck enforces grouping consistency: when the query pipes into
// `agg ... by <fields>`, every bare field in the SELECT list must either be
// one of the grouping fields or sit inside an aggregate function call.
// Scalar calls do not aggregate, so their arguments are still checked.
var aggByCheck = CheckDef{
	Name:  "agg-by-consistency",
	Codes: []string{CodeAggByColumn},
	Run: func(p *pass) {
		group := p.aggGroupFields()
		if group == nil {
			return
		}
		start := selectIndex(p.tokens)
		if start < 0 {
			return
		}
		// One entry per open paren: true when the paren (or any paren
		// enclosing it) is the argument list of an aggregate function.
		var aggScope []bool
		inAggregate := func() bool {
			return len(aggScope) > 0 && aggScope[len(aggScope)-1]
		}
		for i := start + 1; i < len(p.tokens); i++ {
			tok := p.tokens[i]
			if selectListEnds(tok.Type) {
				break
			}
			switch tok.Type {
			case token.LPAREN:
				agg := inAggregate()
				if prv, _, ok := p.prev(i); ok && isCallHead(prv, tok) {
					agg = agg || p.reg.IsAggregateFunction(prv.Value)
				}
				aggScope = append(aggScope, agg)
				continue
			case token.RPAREN:
				if len(aggScope) > 0 {
					aggScope = aggScope[:len(aggScope)-1]
				}
				continue
			}
			if inAggregate() || tok.IsSynthetic() || tok.Type != token.IDENT {
				continue
			}
			if nxt, _, ok := p.next(i); ok && isCallHead(tok, nxt) {
				continue
			}
			if prv, _, ok := p.prev(i); ok && prv.Type == token.AS {
				continue
			}
			if !group[strings.ToLower(tok.Value)] {
				p.report(CodeAggByColumn, SeverityError, tok,
					"field '"+tok.Value+"' must appear in the BY clause or inside an aggregate function")
			}
		}
	},
}

// aggGroupFields returns the grouping fields of the first `| agg ... by`
// pipe command, lowercased, or nil when the query has no such command.
func (p *pass) aggGroupFields() map[string]bool {
	for i, tok := range p.tokens {
		if tok.Type != token.PIPE {
			continue
		}
		cmd, j, ok := p.next(i)
		if !ok || cmd.Type != token.AGG {
			continue
		}
		for k := j + 1; k < len(p.tokens); k++ {
			t := p.tokens[k]
			if t.Type == token.PIPE {
				break
			}
			if t.Type != token.BY {
				continue
			}
			group := make(map[string]bool)
			for m := k + 1; m < len(p.tokens); m++ {
				g := p.tokens[m]
				if g.Type == token.PIPE {
					break
				}
				if g.Type == token.IDENT && !g.IsSynthetic() {
					group[strings.ToLower(g.Value)] = true
				}
			}
			return group
		}
	}
	return nil
}
