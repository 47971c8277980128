package validate

import "github.com/soclabs/socql/pkg/token"

// startCheck warns when a query opens with something other than SELECT, a
// pipe, or a field condition.
var startCheck = CheckDef{
	Name:  "query-start",
	Codes: []string{CodeInvalidStart},
	Run: func(p *pass) {
		if len(p.tokens) == 0 {
			return
		}
		first := p.tokens[0]
		switch first.Type {
		case token.SELECT, token.PIPE, token.IDENT:
			return
		}
		p.report(CodeInvalidStart, SeverityWarning, first,
			"query should start with SELECT, a pipe command, or a field condition")
	},
}

// leadingCallCheck rejects a known function call in command position. A
// function produces a value; it needs a pipe command like eval or agg to
// consume it.
var leadingCallCheck = CheckDef{
	Name:  "leading-function-call",
	Codes: []string{CodeFunctionWithoutCommand},
	Run: func(p *pass) {
		if len(p.tokens) == 0 {
			return
		}
		head := p.tokens[0]
		nxt, _, ok := p.next(0)
		if !ok || !isCallHead(head, nxt) {
			return
		}
		if p.reg.HasFunction(head.Value) {
			p.report(CodeFunctionWithoutCommand, SeverityError, head,
				"function '"+head.Value+"' needs a pipe command such as eval or agg")
		}
	},
}
