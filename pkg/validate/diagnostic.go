package validate

// Diagnostic codes. Codes are stable identifiers: editors key quick fixes
// and suppression lists on them, so they never change meaning or spelling.
const (
	CodeLexerError              = "LEXER_ERROR"
	CodeUnmatchedParen          = "UNMATCHED_PAREN"
	CodeUnclosedParen           = "UNCLOSED_PAREN"
	CodeInvalidStart            = "INVALID_START"
	CodeMissingPipeCommand      = "MISSING_PIPE_COMMAND"
	CodeInvalidPipeCommand      = "INVALID_PIPE_COMMAND"
	CodeLastMissingNumber       = "LAST_MISSING_NUMBER"
	CodeLastMissingUnit         = "LAST_MISSING_UNIT"
	CodeOrderMissingBy          = "ORDER_MISSING_BY"
	CodeUnknownField            = "UNKNOWN_FIELD"
	CodeUnknownFunction         = "UNKNOWN_FUNCTION"
	CodeDuplicateField          = "DUPLICATE_FIELD"
	CodeAggByColumn             = "AGG_BY_COLUMN_ERROR"
	CodeFunctionWithoutCommand  = "FUNCTION_WITHOUT_COMMAND"
	CodeRegexPatternTooLong     = "REGEX_PATTERN_TOO_LONG"
	CodeInvalidWildcardOperator = "INVALID_WILDCARD_OPERATOR"
)

// Diagnostic is a positioned validation finding. Lines and columns are
// 1-based; the end column is exclusive.
type Diagnostic struct {
	Message     string   `json:"message"`
	Severity    Severity `json:"severity"`
	StartLine   int      `json:"startLine"`
	StartColumn int      `json:"startColumn"`
	EndLine     int      `json:"endLine"`
	EndColumn   int      `json:"endColumn"`
	Code        string   `json:"code"`
}

// Result is the outcome of validating one query. IsValid is true iff no
// error-severity diagnostic was produced.
type Result struct {
	IsValid bool         `json:"isValid"`
	Errors  []Diagnostic `json:"errors"`
}
