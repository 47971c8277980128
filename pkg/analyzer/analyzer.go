// Package analyzer infers editing context from a SOCQL query and a cursor
// position: which clause the cursor is in, what kind of token is expected
// next, and which field a pending operator or value belongs to.
//
// The analysis is heuristic by design. It ranks suggestions for an editor;
// it never rejects input and never fails — ambiguous positions degrade to
// ANY (or KEYWORD on an empty query).
package analyzer

import (
	"regexp"
	"strings"

	"github.com/soclabs/socql/pkg/lexer"
	"github.com/soclabs/socql/pkg/schema"
	"github.com/soclabs/socql/pkg/token"
)

// Clause identifies the syntactic region the cursor sits in.
type Clause string

// Clause values.
const (
	ClauseSelect Clause = "SELECT"
	ClauseFrom   Clause = "FROM"
	ClauseJoin   Clause = "JOIN"
	ClauseWhere  Clause = "WHERE"
	ClauseGroup  Clause = "GROUP"
	ClauseHaving Clause = "HAVING"
	ClauseOrder  Clause = "ORDER"
	ClausePipe   Clause = "PIPE"
	ClauseNone   Clause = "NONE"
)

// Expected identifies the token category most likely wanted at the cursor.
type Expected string

// Expected values.
const (
	ExpectField           Expected = "FIELD"
	ExpectOperator        Expected = "OPERATOR"
	ExpectValue           Expected = "VALUE"
	ExpectKeyword         Expected = "KEYWORD"
	ExpectFunction        Expected = "FUNCTION"
	ExpectPipeCommand     Expected = "PIPE_COMMAND"
	ExpectLogicalOperator Expected = "LOGICAL_OPERATOR"
	ExpectTimeUnit        Expected = "TIME_UNIT"
	ExpectTable           Expected = "TABLE"
	ExpectAny             Expected = "ANY"
)

// CursorContext describes the editing context at a cursor position.
type CursorContext struct {
	WordAtCursor     string       `json:"wordAtCursor"`
	TextBeforeCursor string       `json:"textBeforeCursor"`
	CurrentClause    Clause       `json:"currentClause"`
	ExpectedType     Expected     `json:"expectedType"`
	ParentField      string       `json:"parentField,omitempty"`
	IsAfterPipe      bool         `json:"isAfterPipe"`
	IsAfterOperator  bool         `json:"isAfterOperator"`
	PreviousToken    *token.Token `json:"-"`
}

// clauseKeywords are scanned for the last-offset-wins clause resolution.
var clauseKeywords = []struct {
	clause Clause
	re     *regexp.Regexp
}{
	{ClauseSelect, regexp.MustCompile(`(?i)\bselect\b`)},
	{ClauseFrom, regexp.MustCompile(`(?i)\bfrom\b`)},
	{ClauseJoin, regexp.MustCompile(`(?i)\bjoin\b`)},
	{ClauseWhere, regexp.MustCompile(`(?i)\bwhere\b`)},
	{ClauseGroup, regexp.MustCompile(`(?i)\bgroup\b`)},
	{ClauseHaving, regexp.MustCompile(`(?i)\bhaving\b`)},
	{ClauseOrder, regexp.MustCompile(`(?i)\border\b`)},
}

var (
	rePipeCommandPos = regexp.MustCompile(`\|\s*\w*$`)
	reTrailingOp     = regexp.MustCompile(`(?i)(>=|<=|!=|!~|=|~|>|<|\bin)\s*$`)
	reFieldBoundary  = regexp.MustCompile(`(?i)\b(select|from|join|on|having|group\s+by|order\s+by)\s+$`)
	reBareGroupOrder = regexp.MustCompile(`(?i)\b(group|order)\s+$`)
	reJoinBeforeOn   = regexp.MustCompile(`(?i)\bjoin\s+\w+\s+$`)
	reLastNumber     = regexp.MustCompile(`(?i)\|\s*last\s+\d+\s*$`)
	reCompleteExpr   = regexp.MustCompile(`(?i)[A-Za-z_]\w*\*?\s*(>=|<=|!=|!~|=|~|>|<|\bin)\s*("[^"]*"|'[^']*'|\d+(?:\.\d+)?|[A-Za-z_]\w*\*?)\s+$`)
	reTrailingWord   = regexp.MustCompile(`[A-Za-z_]\w*$`)
	reParentOp       = regexp.MustCompile(`(?i)([A-Za-z_]\w*)\s*(>=|<=|!=|!~|=|~|>|<|\bin)\s*\S*$`)
	reParentBare     = regexp.MustCompile(`([A-Za-z_]\w*)\s*$`)
)

// Analyze computes the cursor context for the given text and 0-based byte
// offset. It is a pure function of the prefix before the cursor plus the
// identifier touching the cursor; the registry narrows nothing here — it is
// threaded through for parent-field type lookups by callers.
func Analyze(text string, offset int, reg *schema.Registry) CursorContext {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	prefix := text[:offset]
	masked := maskLiterals(prefix)
	clause, lastPipe := resolveClause(masked)

	toks := lexer.Tokenize(prefix).Tokens
	prev, word := previousToken(toks, offset)
	if word == "" {
		word = wordAt(text, offset)
	}

	// stem is the masked prefix with the partially typed word removed, so
	// the positional rules below see the same boundary whether or not the
	// user has started typing the next word. Working on the masked text
	// keeps operators and pipes inside string literals from matching.
	stem := reTrailingWord.ReplaceAllString(masked, "")

	expected := resolveExpected(masked, stem, clause, prev)

	return CursorContext{
		WordAtCursor:     word,
		TextBeforeCursor: prefix,
		CurrentClause:    clause,
		ExpectedType:     expected,
		ParentField:      parentField(stem, masked),
		IsAfterPipe:      lastPipe,
		IsAfterOperator:  reTrailingOp.MatchString(stem) || expected == ExpectValue,
		PreviousToken:    prev,
	}
}

// resolveClause finds the clause whose keyword has the greatest offset in
// the masked prefix. A later keyword always supersedes an earlier one; a
// `|` past every clause keyword puts the cursor in the pipe region.
func resolveClause(masked string) (Clause, bool) {
	best := ClauseNone
	bestIdx := -1
	for _, ck := range clauseKeywords {
		locs := ck.re.FindAllStringIndex(masked, -1)
		if len(locs) == 0 {
			continue
		}
		if idx := locs[len(locs)-1][0]; idx > bestIdx {
			bestIdx = idx
			best = ck.clause
		}
	}
	pipeIdx := strings.LastIndex(masked, "|")
	if pipeIdx > bestIdx {
		return ClausePipe, true
	}
	return best, false
}

// resolveExpected applies the expected-type rules in priority order.
func resolveExpected(prefix, stem string, clause Clause, prev *token.Token) Expected {
	switch {
	case rePipeCommandPos.MatchString(prefix):
		return ExpectPipeCommand
	case reTrailingOp.MatchString(stem):
		return ExpectValue
	case reFieldBoundary.MatchString(stem):
		return ExpectField
	case reBareGroupOrder.MatchString(stem), reJoinBeforeOn.MatchString(stem):
		return ExpectKeyword
	}

	if prev != nil {
		switch prev.Type {
		case token.WHERE, token.AND, token.OR, token.NOT, token.BY:
			return ExpectField
		case token.IDENT:
			if clause == ClauseWhere {
				return ExpectOperator
			}
		case token.LAST:
			return ExpectTimeUnit
		}
	}
	if reLastNumber.MatchString(stem) {
		return ExpectTimeUnit
	}
	if reCompleteExpr.MatchString(stem) {
		return ExpectLogicalOperator
	}

	if strings.TrimSpace(prefix) == "" {
		return ExpectKeyword
	}
	return ExpectAny
}

// previousToken returns the token preceding the cursor and the partial word
// touching the cursor, if any. A trailing identifier whose end abuts the
// cursor is the word being typed, not the previous token.
func previousToken(toks []token.Token, offset int) (*token.Token, string) {
	// Drop the EOF sentinel.
	if n := len(toks); n > 0 && toks[n-1].Type == token.EOF {
		toks = toks[:n-1]
	}
	if len(toks) == 0 {
		return nil, ""
	}

	last := toks[len(toks)-1]
	if last.End == offset && (last.Type == token.IDENT || token.IsKeyword(last.Type)) {
		if len(toks) < 2 {
			return nil, last.Value
		}
		prev := toks[len(toks)-2]
		return &prev, last.Value
	}
	return &last, ""
}

// parentField finds the field an operator or value at the cursor belongs
// to: the identifier before a trailing operator, else the bare trailing
// non-reserved identifier.
func parentField(stem, prefix string) string {
	if m := reParentOp.FindStringSubmatch(prefix); m != nil {
		return m[1]
	}
	if m := reParentBare.FindStringSubmatch(stem); m != nil {
		if token.LookupIdent(strings.ToLower(m[1])) == token.IDENT {
			return m[1]
		}
	}
	return ""
}

// wordAt expands identifier characters around the offset in the full text,
// capturing a word the cursor sits inside rather than at the end of.
func wordAt(text string, offset int) string {
	start := offset
	for start > 0 && isIdentChar(text[start-1]) {
		start--
	}
	end := offset
	for end < len(text) && isIdentChar(text[end]) {
		end++
	}
	return text[start:end]
}

// maskLiterals blanks out string-literal contents and line comments so
// clause keywords and operators inside quoted values cannot hijack the
// positional rules. Quote characters, length, and newlines are preserved.
func maskLiterals(s string) string {
	out := []byte(s)
	for i := 0; i < len(out); i++ {
		switch out[i] {
		case '"', '\'':
			quote := out[i]
			for i++; i < len(out); i++ {
				ch := out[i]
				if ch == '\n' || ch == quote {
					break
				}
				out[i] = ' '
				if ch == '\\' && i+1 < len(out) && out[i+1] != '\n' {
					i++
					out[i] = ' '
				}
			}
		case '/':
			if i+1 < len(out) && out[i+1] == '/' {
				for ; i < len(out) && out[i] != '\n'; i++ {
					out[i] = ' '
				}
			}
		}
	}
	return string(out)
}

func isIdentChar(ch byte) bool {
	return ch == '_' ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9')
}
