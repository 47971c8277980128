// Package validate runs the SOCQL semantic validator: lex, normalize, then
// a fixed battery of independent structural and schema checks, producing a
// single ordered list of positioned diagnostics.
//
// Checks are registered in a fixed order and the token walk inside each
// check is left to right, so identical input always yields an identical
// diagnostic list. Lexical errors come first, mapped to LEXER_ERROR.
package validate

import (
	"github.com/soclabs/socql/pkg/lexer"
	"github.com/soclabs/socql/pkg/normalize"
	"github.com/soclabs/socql/pkg/schema"
	"github.com/soclabs/socql/pkg/token"
)

// CheckDef describes one validation check.
type CheckDef struct {
	// Name identifies the check in logs and documentation.
	Name string
	// Codes lists every diagnostic code the check can emit.
	Codes []string
	// Run executes the check against a pass.
	Run func(p *pass)
}

// checks run in this order. Appending here is the only way to add a check;
// the order is part of the validator's determinism contract.
var checks = []CheckDef{
	parenCheck,
	startCheck,
	pipeCheck,
	membershipCheck,
	duplicateCheck,
	aggByCheck,
	leadingCallCheck,
	regexLengthCheck,
	wildcardCheck,
}

// Checks returns the registered checks in execution order.
func Checks() []CheckDef {
	return append([]CheckDef(nil), checks...)
}

// Validator validates SOCQL queries against a schema registry.
type Validator struct {
	reg *schema.Registry
	cfg Config
}

// New creates a validator with the default configuration.
func New(reg *schema.Registry) *Validator {
	return NewWithConfig(reg, DefaultConfig())
}

// NewWithConfig creates a validator with an explicit configuration.
func NewWithConfig(reg *schema.Registry, cfg Config) *Validator {
	return &Validator{reg: reg, cfg: cfg}
}

// Validate runs the full pipeline over one query. It never returns an
// error: malformed input comes back as diagnostics.
func (v *Validator) Validate(query string) Result {
	res := lexer.Tokenize(query)
	toks := normalize.Normalize(res.Tokens)
	if n := len(toks); n > 0 && toks[n-1].Type == token.EOF {
		toks = toks[:n-1]
	}

	p := &pass{
		reg:    v.reg,
		cfg:    v.cfg,
		tokens: toks,
		diags:  []Diagnostic{},
	}
	for _, e := range res.Errors {
		p.add(CodeLexerError, SeverityError, e.Message,
			e.Line, e.Column, e.Line, e.Column+(e.End-e.Start))
	}
	for _, c := range checks {
		c.Run(p)
	}

	valid := true
	for _, d := range p.diags {
		if d.Severity == SeverityError {
			valid = false
			break
		}
	}
	return Result{IsValid: valid, Errors: p.diags}
}

// pass is the shared state one Validate call threads through the checks.
type pass struct {
	reg    *schema.Registry
	cfg    Config
	tokens []token.Token // normalized, EOF trimmed
	diags  []Diagnostic
}

// report records a diagnostic spanning tok. Tokens never cross a newline,
// so the end line equals the start line.
func (p *pass) report(code string, sev Severity, tok token.Token, msg string) {
	p.add(code, sev, msg, tok.Line, tok.Column, tok.Line, tok.Column+(tok.End-tok.Start))
}

// add records a diagnostic after applying the configured suppressions and
// severity overrides.
func (p *pass) add(code string, sev Severity, msg string, startLine, startCol, endLine, endCol int) {
	if p.cfg.isDisabled(code) {
		return
	}
	p.diags = append(p.diags, Diagnostic{
		Message:     msg,
		Severity:    p.cfg.severityFor(code, sev),
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
		Code:        code,
	})
}

// next returns the first non-synthetic token after index i. Synthetic AND
// tokens from the normalizer are transparent to structural checks.
func (p *pass) next(i int) (token.Token, int, bool) {
	for j := i + 1; j < len(p.tokens); j++ {
		if !p.tokens[j].IsSynthetic() {
			return p.tokens[j], j, true
		}
	}
	return token.Token{}, -1, false
}

// prev returns the first non-synthetic token before index i.
func (p *pass) prev(i int) (token.Token, int, bool) {
	for j := i - 1; j >= 0; j-- {
		if !p.tokens[j].IsSynthetic() {
			return p.tokens[j], j, true
		}
	}
	return token.Token{}, -1, false
}

// isCallHead reports whether tok opens a function call: an identifier (or
// the LAST keyword, which doubles as an aggregate function name) abutting
// an opening parenthesis.
func isCallHead(tok, next token.Token) bool {
	if tok.Type != token.IDENT && tok.Type != token.LAST {
		return false
	}
	return next.Type == token.LPAREN && next.Start == tok.End
}
