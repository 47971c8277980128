package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soclabs/socql/pkg/schema"
	"github.com/soclabs/socql/pkg/validate"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Config{
		Listen:     ":0",
		Registry:   schema.Default(),
		Validation: validate.DefaultConfig(),
	})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func TestHealth(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestValidateEndpoint(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/validate", queryRequest{
		Query: `SELECT user FROM events WHERE severity = "high"`,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res validate.Result
	decodeBody(t, rec, &res)
	assert.True(t, res.IsValid)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/validate", queryRequest{
		Query: "SELECT user |",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	decodeBody(t, rec, &res)
	assert.False(t, res.IsValid)

	codes := make([]string, 0, len(res.Errors))
	for _, d := range res.Errors {
		codes = append(codes, d.Code)
	}
	assert.Contains(t, codes, validate.CodeMissingPipeCommand)
}

func TestTokenizeEndpoint(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/tokenize", queryRequest{
		Query: "user = 1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res tokenizeResponse
	decodeBody(t, rec, &res)
	require.Len(t, res.Tokens, 4)
	assert.Equal(t, "IDENT", res.Tokens[0].Type)
	assert.Equal(t, "EQ", res.Tokens[1].Type)
	assert.Equal(t, "NUMBER", res.Tokens[2].Type)
	assert.Equal(t, "EOF", res.Tokens[3].Type)
	assert.Empty(t, res.Errors)
}

func TestTokenizeEndpointNormalize(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/tokenize", queryRequest{
		Query:     `user = 1 status = "ok"`,
		Normalize: true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res tokenizeResponse
	decodeBody(t, rec, &res)

	var ands int
	for _, tok := range res.Tokens {
		if tok.Type == "AND" && tok.Start == tok.End {
			ands++
		}
	}
	assert.Equal(t, 1, ands)
}

func TestTokenizeEndpointLexErrors(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/tokenize", queryRequest{
		Query: `user = "unterminated`,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res tokenizeResponse
	decodeBody(t, rec, &res)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "unterminated string literal", res.Errors[0].Message)
}

func TestContextEndpoint(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/context", positionRequest{
		Text: "SELECT ",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res contextResponse
	decodeBody(t, rec, &res)
	assert.Equal(t, "SELECT", string(res.Context.CurrentClause))
	assert.Equal(t, "FIELD", string(res.Context.ExpectedType))
	assert.Empty(t, res.Suggestions)
}

func TestContextEndpointExplicitOffset(t *testing.T) {
	h := newTestServer(t).Routes()

	offset := 7
	rec := doJSON(t, h, http.MethodPost, "/api/v1/context", positionRequest{
		Text:   "SELECT user FROM events",
		Offset: &offset,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res contextResponse
	decodeBody(t, rec, &res)
	assert.Equal(t, "SELECT ", res.Context.TextBeforeCursor)
}

func TestCompleteEndpoint(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/complete", positionRequest{
		Text: "| ",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res contextResponse
	decodeBody(t, rec, &res)
	require.NotEmpty(t, res.Suggestions)

	labels := make([]string, 0, len(res.Suggestions))
	for _, s := range res.Suggestions {
		labels = append(labels, s.Label)
	}
	assert.Contains(t, labels, "dedup")
}

func TestSchemaGet(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodGet, "/api/v1/schema", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap schema.Snapshot
	decodeBody(t, rec, &snap)
	assert.NotEmpty(t, snap.Fields)
	assert.NotEmpty(t, snap.Functions)
}

func TestSchemaPutReplace(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Routes()

	rec := doJSON(t, h, http.MethodPut, "/api/v1/schema", schema.Snapshot{
		Fields: []schema.FieldDefinition{
			{Name: "custom_field", Type: "string"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.True(t, srv.registry.HasField("custom_field"))
	assert.False(t, srv.registry.HasField("user"))
	assert.False(t, srv.registry.HasFunction("count"))
}

func TestSchemaPutMerge(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Routes()

	rec := doJSON(t, h, http.MethodPut, "/api/v1/schema?merge=true", schema.Snapshot{
		Fields: []schema.FieldDefinition{
			{Name: "custom_field", Type: "string"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.True(t, srv.registry.HasField("custom_field"))
	assert.True(t, srv.registry.HasField("user"))
}

func TestSchemaPutRejectsEmptyName(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodPut, "/api/v1/schema", schema.Snapshot{
		Fields: []schema.FieldDefinition{{Name: ""}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBadRequestBody(t *testing.T) {
	h := newTestServer(t).Routes()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorResponse
	decodeBody(t, rec, &body)
	assert.Contains(t, body.Error, "invalid request body")
}
