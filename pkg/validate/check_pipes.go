package validate

import "github.com/soclabs/socql/pkg/token"

// pipeCheck validates the shape of every pipe command: the pipe must name
// a registered command, LAST needs a number and a time unit, and pipe-side
// ORDER needs BY.
var pipeCheck = CheckDef{
	Name: "pipe-commands",
	Codes: []string{
		CodeMissingPipeCommand,
		CodeInvalidPipeCommand,
		CodeLastMissingNumber,
		CodeLastMissingUnit,
		CodeOrderMissingBy,
	},
	Run: func(p *pass) {
		for i, tok := range p.tokens {
			if tok.Type != token.PIPE {
				continue
			}
			cmd, j, ok := p.next(i)
			if !ok || cmd.Type == token.PIPE {
				p.report(CodeMissingPipeCommand, SeverityError, tok,
					"pipe must be followed by a command")
				continue
			}
			if !p.reg.HasPipeCommand(cmd.Value) {
				p.report(CodeInvalidPipeCommand, SeverityError, cmd,
					"unknown pipe command '"+cmd.Value+"'")
				continue
			}
			switch cmd.Type {
			case token.LAST:
				p.checkLastWindow(cmd, j)
			case token.ORDER:
				if nxt, _, ok := p.next(j); !ok || nxt.Type != token.BY {
					p.report(CodeOrderMissingBy, SeverityError, cmd,
						"ORDER must be followed by BY")
				}
			}
		}
	},
}

// checkLastWindow validates `| last <number> <unit>` starting at the LAST
// token at index j.
func (p *pass) checkLastWindow(cmd token.Token, j int) {
	num, k, ok := p.next(j)
	if !ok || num.Type != token.NUMBER {
		p.report(CodeLastMissingNumber, SeverityError, cmd,
			"last requires a number, for example: last 15 minutes")
		return
	}
	unit, _, ok := p.next(k)
	if !ok || unit.Type != token.IDENT || !p.reg.IsTimeUnit(unit.Value) {
		p.report(CodeLastMissingUnit, SeverityError, cmd,
			"last requires a time unit such as minutes, hours, or days")
	}
}
