// Package complete builds ranked completion suggestions from a cursor
// context and the schema registry. It is presentation-free: the CLI and
// HTTP layers render the suggestions, an editor plugin can map them onto
// LSP completion items.
package complete

import (
	"strings"

	"github.com/soclabs/socql/pkg/analyzer"
	"github.com/soclabs/socql/pkg/schema"
)

// Suggestion kinds.
const (
	KindField       = "field"
	KindFunction    = "function"
	KindOperator    = "operator"
	KindKeyword     = "keyword"
	KindPipeCommand = "pipe_command"
	KindValue       = "value"
)

// Suggestion is one completion candidate.
type Suggestion struct {
	Label      string `json:"label"`
	Kind       string `json:"kind"`
	Detail     string `json:"detail,omitempty"`
	InsertText string `json:"insertText,omitempty"`
}

// Build returns suggestions for the cursor context, filtered by the word
// being typed and sorted label-ascending within each kind. The result is
// deterministic for a given context and registry state.
func Build(ctx analyzer.CursorContext, reg *schema.Registry) []Suggestion {
	b := builder{reg: reg, prefix: strings.ToLower(ctx.WordAtCursor)}

	switch ctx.ExpectedType {
	case analyzer.ExpectField:
		b.fields()
		if ctx.CurrentClause == analyzer.ClauseSelect {
			b.functions(false)
		}
	case analyzer.ExpectOperator:
		b.operators(ctx.ParentField)
	case analyzer.ExpectValue:
		b.literals()
	case analyzer.ExpectKeyword:
		b.keywords(schema.CategoryClause)
	case analyzer.ExpectFunction:
		b.functions(false)
	case analyzer.ExpectPipeCommand:
		b.pipeCommands()
	case analyzer.ExpectLogicalOperator:
		b.keywords(schema.CategoryLogical)
	case analyzer.ExpectTimeUnit:
		b.keywords(schema.CategoryTimeUnit)
	case analyzer.ExpectTable:
		// No table catalog; the backend owns index names.
	default: // ANY
		b.fields()
		b.functions(false)
		b.keywords(schema.CategoryClause)
	}

	return b.out
}

type builder struct {
	reg    *schema.Registry
	prefix string
	out    []Suggestion
}

func (b *builder) add(s Suggestion) {
	if b.prefix != "" && !strings.HasPrefix(strings.ToLower(s.Label), b.prefix) {
		return
	}
	b.out = append(b.out, s)
}

func (b *builder) fields() {
	for _, f := range b.reg.Fields() {
		b.add(Suggestion{Label: f.Name, Kind: KindField, Detail: f.Type})
	}
}

// functions adds function suggestions; aggregatesOnly narrows to aggregate
// functions (used after `| agg`).
func (b *builder) functions(aggregatesOnly bool) {
	for _, fn := range b.reg.Functions() {
		if aggregatesOnly && !fn.IsAggregate() {
			continue
		}
		b.add(Suggestion{
			Label:      fn.Name,
			Kind:       KindFunction,
			Detail:     signature(fn),
			InsertText: fn.Name + "(",
		})
	}
}

// operators adds operator suggestions, narrowed to the parent field's
// allowed set when the field is known.
func (b *builder) operators(parentField string) {
	allowed := map[string]bool{}
	if parentField != "" {
		if f, ok := b.reg.Field(parentField); ok {
			for _, op := range f.AllowedOperators {
				allowed[strings.ToLower(op)] = true
			}
		}
	}
	for _, op := range b.reg.Operators() {
		if len(allowed) > 0 && !allowed[strings.ToLower(op.Symbol)] {
			continue
		}
		b.add(Suggestion{Label: op.Symbol, Kind: KindOperator, Detail: op.Category})
	}
}

func (b *builder) keywords(category string) {
	for _, kw := range b.reg.KeywordsByCategory(category) {
		b.add(Suggestion{Label: kw.Word, Kind: KindKeyword, Detail: kw.Category})
	}
}

func (b *builder) pipeCommands() {
	for _, pc := range b.reg.PipeCommands() {
		b.add(Suggestion{Label: pc.Name, Kind: KindPipeCommand, Detail: pc.Description})
	}
}

// literals suggests the literal keywords usable as comparison values.
func (b *builder) literals() {
	for _, kw := range b.reg.KeywordsByCategory(schema.CategoryLiteral) {
		b.add(Suggestion{Label: kw.Word, Kind: KindValue, Detail: kw.Category})
	}
}

// signature renders a compact parameter list for detail text.
func signature(fn schema.FunctionDefinition) string {
	parts := make([]string, 0, len(fn.Parameters))
	for _, p := range fn.Parameters {
		name := p.Name
		if p.Optional {
			name += "?"
		}
		parts = append(parts, name)
	}
	return fn.Name + "(" + strings.Join(parts, ", ") + ") " + fn.ReturnType
}
