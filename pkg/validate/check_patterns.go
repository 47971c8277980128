package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/soclabs/socql/pkg/token"
)

// regexLengthCheck caps the pattern literal passed to regex_match. Patterns
// are compiled per event batch downstream, so an oversized literal is
// rejected at the front end.
var regexLengthCheck = CheckDef{
	Name:  "regex-pattern-length",
	Codes: []string{CodeRegexPatternTooLong},
	Run: func(p *pass) {
		max := p.cfg.maxRegexLength()
		for i, tok := range p.tokens {
			if tok.Type != token.IDENT || !strings.EqualFold(tok.Value, "regex_match") {
				continue
			}
			lp, j, ok := p.next(i)
			if !ok || !isCallHead(tok, lp) {
				continue
			}
			pat, ok := secondArgument(p.tokens[j+1:])
			if !ok || pat.Type != token.STRING {
				continue
			}
			if n := utf8.RuneCountInString(pat.StringContent()); n > max {
				p.report(CodeRegexPatternTooLong, SeverityError, pat,
					fmt.Sprintf("regular expression pattern is %d characters, maximum is %d", n, max))
			}
		}
	},
}

// secondArgument returns the first token of the second top-level argument
// of an argument list; toks starts just past the opening parenthesis.
func secondArgument(toks []token.Token) (token.Token, bool) {
	depth := 0
	for i, t := range toks {
		switch t.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			if depth == 0 {
				return token.Token{}, false
			}
			depth--
		case token.COMMA:
			if depth > 0 {
				continue
			}
			for _, n := range toks[i+1:] {
				if !n.IsSynthetic() {
					return n, true
				}
			}
			return token.Token{}, false
		}
	}
	return token.Token{}, false
}

// wildcardCheck rejects wildcard operands after ordering comparisons. A
// wildcard only makes sense with equality or pattern operators.
var wildcardCheck = CheckDef{
	Name:  "wildcard-operator",
	Codes: []string{CodeInvalidWildcardOperator},
	Run: func(p *pass) {
		for i, tok := range p.tokens {
			switch tok.Type {
			case token.GT, token.GE, token.LT, token.LE:
			default:
				continue
			}
			operand, _, ok := p.next(i)
			if !ok {
				continue
			}
			if operand.Type == token.WILDCARD ||
				(operand.Type == token.STRING && hasWildcardEdge(operand.StringContent())) {
				p.report(CodeInvalidWildcardOperator, SeverityError, operand,
					"wildcard values require =, !=, ~, or !~")
			}
		}
	},
}

// hasWildcardEdge reports a leading or trailing '*' in a string value.
func hasWildcardEdge(s string) bool {
	return s != "" && (s[0] == '*' || s[len(s)-1] == '*')
}
