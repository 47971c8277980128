package complete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soclabs/socql/pkg/analyzer"
	"github.com/soclabs/socql/pkg/schema"
)

func build(t *testing.T, text string) []Suggestion {
	t.Helper()
	reg := schema.Default()
	return Build(analyzer.Analyze(text, len(text), reg), reg)
}

func kinds(suggestions []Suggestion) map[string]int {
	out := make(map[string]int)
	for _, s := range suggestions {
		out[s.Kind]++
	}
	return out
}

func labels(suggestions []Suggestion) []string {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, s.Label)
	}
	return out
}

func TestFieldPosition(t *testing.T) {
	got := build(t, "SELECT user FROM siem WHERE ")
	require.NotEmpty(t, got)
	for _, s := range got {
		assert.Equal(t, KindField, s.Kind)
	}
	assert.Contains(t, labels(got), "src_ip")
}

func TestSelectPositionMixesFieldsAndFunctions(t *testing.T) {
	got := build(t, "SELECT ")
	k := kinds(got)
	assert.NotZero(t, k[KindField])
	assert.NotZero(t, k[KindFunction])
}

func TestOperatorNarrowedByParentField(t *testing.T) {
	// src_port is numeric: no pattern operators.
	got := build(t, "WHERE src_port ")
	require.NotEmpty(t, got)
	assert.Contains(t, labels(got), ">=")
	assert.NotContains(t, labels(got), "~")

	// user is a string field: pattern operators, no ordering ones.
	got = build(t, "WHERE user ")
	assert.Contains(t, labels(got), "~")
	assert.NotContains(t, labels(got), ">=")
}

func TestOperatorUnknownParentOffersAll(t *testing.T) {
	got := build(t, "WHERE flux_capacitance ")
	assert.Len(t, got, len(schema.Default().Operators()))
}

func TestValuePosition(t *testing.T) {
	got := build(t, "user = ")
	for _, s := range got {
		assert.Equal(t, KindValue, s.Kind)
	}
	assert.Contains(t, labels(got), "true")
	assert.Contains(t, labels(got), "null")
}

func TestPipeCommandPosition(t *testing.T) {
	got := build(t, "user = 1 | ")
	require.Len(t, got, len(schema.Default().PipeCommands()))
	assert.Contains(t, labels(got), "dedup")
	assert.Contains(t, labels(got), "agg")
}

func TestPrefixFilter(t *testing.T) {
	got := build(t, "user = 1 | de")
	require.Len(t, got, 1)
	assert.Equal(t, "dedup", got[0].Label)

	got = build(t, "SELECT sr")
	for _, s := range got {
		assert.Equal(t, byte('s'), s.Label[0])
	}
	assert.Contains(t, labels(got), "src_ip")
	assert.Contains(t, labels(got), "src_port")
}

func TestTimeUnitPosition(t *testing.T) {
	got := build(t, "user = 1 | last 15 ")
	assert.ElementsMatch(t, []string{"days", "hours", "minutes", "seconds", "weeks"}, labels(got))
}

func TestLogicalOperatorPosition(t *testing.T) {
	got := build(t, "user = 1 ")
	assert.Contains(t, labels(got), "and")
	assert.Contains(t, labels(got), "or")
	assert.Contains(t, labels(got), "not")
}

func TestEmptyQueryOffersKeywords(t *testing.T) {
	got := build(t, "")
	require.NotEmpty(t, got)
	for _, s := range got {
		assert.Equal(t, KindKeyword, s.Kind)
	}
	assert.Contains(t, labels(got), "select")
}

func TestFunctionInsertText(t *testing.T) {
	got := build(t, "SELECT cou")
	require.NotEmpty(t, got)
	var found bool
	for _, s := range got {
		if s.Label == "count" {
			found = true
			assert.Equal(t, "count(", s.InsertText)
			assert.Contains(t, s.Detail, "count(")
		}
	}
	assert.True(t, found)
}

func TestDeterministicOrder(t *testing.T) {
	first := build(t, "SELECT ")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, build(t, "SELECT "))
	}
}
