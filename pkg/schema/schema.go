// Package schema holds the SOCQL schema registry: the case-insensitive
// catalog of fields, functions, operators, pipe commands, and keywords the
// analyzer and validator consult.
//
// The registry is an explicit object rather than package-level state so an
// embedding application can run isolated schemas side by side (multi-tenant
// deployments, tests). The core reads it; only the embedder mutates it.
package schema

// FieldDefinition describes a searchable event field.
type FieldDefinition struct {
	Name             string   `json:"name" yaml:"name"`
	Type             string   `json:"type" yaml:"type"` // string, number, ip, boolean, timestamp
	Category         string   `json:"category,omitempty" yaml:"category,omitempty"`
	AllowedOperators []string `json:"allowedOperators,omitempty" yaml:"allowed_operators,omitempty"`
}

// Parameter describes a single function parameter.
type Parameter struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// FunctionDefinition describes a callable function.
type FunctionDefinition struct {
	Name       string      `json:"name" yaml:"name"`
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	ReturnType string      `json:"returnType" yaml:"return_type"`
	Category   string      `json:"category,omitempty" yaml:"category,omitempty"` // aggregate, scalar, ...
}

// IsAggregate reports whether the function aggregates rows.
func (f FunctionDefinition) IsAggregate() bool {
	return f.Category == CategoryAggregate
}

// OperatorDefinition describes a comparison or membership operator.
type OperatorDefinition struct {
	Symbol          string   `json:"symbol" yaml:"symbol"`
	ApplicableTypes []string `json:"applicableTypes,omitempty" yaml:"applicable_types,omitempty"`
	Category        string   `json:"category,omitempty" yaml:"category,omitempty"` // comparison, membership, pattern
}

// PipeCommandDefinition describes a post-pipe command.
type PipeCommandDefinition struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// KeywordDefinition describes a language keyword for completion purposes.
type KeywordDefinition struct {
	Word     string `json:"word" yaml:"word"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"` // clause, logical, literal, time_unit
}

// Definition categories.
const (
	CategoryAggregate = "aggregate"
	CategoryScalar    = "scalar"
	CategoryTimeUnit  = "time_unit"
	CategoryClause    = "clause"
	CategoryLogical   = "logical"
	CategoryLiteral   = "literal"
)

// Snapshot is the bulk import/export shape of a registry. It round-trips
// through YAML (schema files) and JSON (the HTTP API).
type Snapshot struct {
	Fields       []FieldDefinition       `json:"fields" yaml:"fields"`
	Functions    []FunctionDefinition    `json:"functions" yaml:"functions"`
	Operators    []OperatorDefinition    `json:"operators" yaml:"operators"`
	PipeCommands []PipeCommandDefinition `json:"pipeCommands" yaml:"pipe_commands"`
	Keywords     []KeywordDefinition     `json:"keywords" yaml:"keywords"`
}
