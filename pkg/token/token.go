// Package token defines the lexical tokens of the SOCQL query language.
//
// SOCQL is a pipe/SQL hybrid: SQL-style clauses (SELECT ... WHERE ...) can be
// followed by `|`-separated pipe commands (last, dedup, eval, agg, order,
// where, regex). The token set is a closed enum; the schema registry handles
// everything that varies per deployment (fields, functions, operators).
package token

import "fmt"

// Type represents the type of a lexical token.
type Type int32

// Token types.
const (
	// Special tokens
	EOF Type = iota
	INVALID

	// Literals
	IDENT    // src_ip, event_type
	NUMBER   // 443, 10.5
	STRING   // "admin", 'admin'
	WILDCARD // admin*, src*

	// Operators
	EQ     // =
	NE     // !=
	LT     // <
	GT     // >
	LE     // <=
	GE     // >=
	TILDE  // ~
	NTILDE // !~

	// Delimiters
	PIPE   // |
	LPAREN // (
	RPAREN // )
	COMMA  // ,
	STAR   // *

	// Keywords
	SELECT
	FROM
	JOIN
	ON
	WHERE
	GROUP
	HAVING
	ORDER
	BY
	AS
	ASC
	DESC
	AND
	OR
	NOT
	IN
	NULL
	TRUE
	FALSE
	LAST

	// Pipe commands (WHERE, ORDER and LAST double as pipe commands)
	DEDUP
	EVAL
	AGG
	REGEX
)

// String returns a human-readable representation of the token type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// typeNames maps token types to their string representations.
var typeNames = map[Type]string{
	EOF:     "EOF",
	INVALID: "INVALID",

	IDENT:    "IDENT",
	NUMBER:   "NUMBER",
	STRING:   "STRING",
	WILDCARD: "WILDCARD",

	EQ:     "=",
	NE:     "!=",
	LT:     "<",
	GT:     ">",
	LE:     "<=",
	GE:     ">=",
	TILDE:  "~",
	NTILDE: "!~",

	PIPE:   "|",
	LPAREN: "(",
	RPAREN: ")",
	COMMA:  ",",
	STAR:   "*",

	SELECT: "SELECT",
	FROM:   "FROM",
	JOIN:   "JOIN",
	ON:     "ON",
	WHERE:  "WHERE",
	GROUP:  "GROUP",
	HAVING: "HAVING",
	ORDER:  "ORDER",
	BY:     "BY",
	AS:     "AS",
	ASC:    "ASC",
	DESC:   "DESC",
	AND:    "AND",
	OR:     "OR",
	NOT:    "NOT",
	IN:     "IN",
	NULL:   "NULL",
	TRUE:   "TRUE",
	FALSE:  "FALSE",
	LAST:   "LAST",

	DEDUP: "DEDUP",
	EVAL:  "EVAL",
	AGG:   "AGG",
	REGEX: "REGEX",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]Type{
	"select": SELECT,
	"from":   FROM,
	"join":   JOIN,
	"on":     ON,
	"where":  WHERE,
	"group":  GROUP,
	"having": HAVING,
	"order":  ORDER,
	"by":     BY,
	"as":     AS,
	"asc":    ASC,
	"desc":   DESC,
	"and":    AND,
	"or":     OR,
	"not":    NOT,
	"in":     IN,
	"null":   NULL,
	"true":   TRUE,
	"false":  FALSE,
	"last":   LAST,

	"dedup": DEDUP,
	"eval":  EVAL,
	"agg":   AGG,
	"regex": REGEX,
}

// LookupIdent returns the token type for the given identifier.
// The lookup is against the lowercase keyword table; non-keywords
// come back as IDENT.
func LookupIdent(lower string) Type {
	if tok, ok := keywords[lower]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword or pipe command word.
func IsKeyword(t Type) bool {
	return t >= SELECT && t <= REGEX
}

// IsComparison returns true for comparison and regex-match operators.
func IsComparison(t Type) bool {
	switch t {
	case EQ, NE, LT, GT, LE, GE, TILDE, NTILDE:
		return true
	}
	return false
}

// IsPipeCommandWord returns true for token types that can name a pipe command.
func IsPipeCommandWord(t Type) bool {
	switch t {
	case LAST, DEDUP, EVAL, AGG, ORDER, WHERE, REGEX:
		return true
	}
	return false
}

// Token represents a lexical token with position information.
// Value is the raw lexeme: string tokens keep their quotes so that
// concatenating values (plus dropped whitespace/comment spans)
// reconstructs the input exactly.
type Token struct {
	Type   Type
	Value  string
	Start  int // 0-based byte offset, inclusive
	End    int // 0-based byte offset, exclusive
	Line   int // 1-based
	Column int // 1-based
}

// IsSynthetic reports whether the token was inserted by the normalizer
// rather than read from the input. Synthetic tokens are zero width.
func (t Token) IsSynthetic() bool {
	return t.Start == t.End && t.Type != EOF
}

// StringContent returns the content of a STRING token with the surrounding
// quotes removed. Unterminated strings (recovery tokens) lack the closing
// quote; the opening quote is always present.
func (t Token) StringContent() string {
	v := t.Value
	if len(v) == 0 {
		return v
	}
	q := v[0]
	if q != '"' && q != '\'' {
		return v
	}
	v = v[1:]
	if len(v) > 0 && v[len(v)-1] == q {
		v = v[:len(v)-1]
	}
	return v
}
