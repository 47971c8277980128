package validate

import "github.com/soclabs/socql/pkg/token"

// parenCheck matches parentheses with a stack. Each stray closing paren and
// each paren still open at end of input gets its own diagnostic at the
// offending paren's position.
var parenCheck = CheckDef{
	Name:  "paren-balance",
	Codes: []string{CodeUnmatchedParen, CodeUnclosedParen},
	Run: func(p *pass) {
		var open []token.Token
		for _, tok := range p.tokens {
			switch tok.Type {
			case token.LPAREN:
				open = append(open, tok)
			case token.RPAREN:
				if len(open) == 0 {
					p.report(CodeUnmatchedParen, SeverityError, tok, "unmatched closing parenthesis")
					continue
				}
				open = open[:len(open)-1]
			}
		}
		for _, tok := range open {
			p.report(CodeUnclosedParen, SeverityError, tok, "unclosed parenthesis")
		}
	},
}
