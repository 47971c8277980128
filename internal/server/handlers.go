package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/soclabs/socql/pkg/analyzer"
	"github.com/soclabs/socql/pkg/complete"
	"github.com/soclabs/socql/pkg/lexer"
	"github.com/soclabs/socql/pkg/normalize"
	"github.com/soclabs/socql/pkg/schema"
	"github.com/soclabs/socql/pkg/token"
)

const maxRequestBody = 1 << 20

type queryRequest struct {
	Query     string `json:"query"`
	Normalize bool   `json:"normalize,omitempty"`
}

type positionRequest struct {
	Text   string `json:"text"`
	Offset *int   `json:"offset,omitempty"`
}

type wireToken struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type wireLexError struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

type tokenizeResponse struct {
	Tokens []wireToken    `json:"tokens"`
	Errors []wireLexError `json:"errors"`
}

type contextResponse struct {
	Context     analyzer.CursorContext `json:"context"`
	Suggestions []complete.Suggestion  `json:"suggestions,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toWireTokens(tokens []token.Token) []wireToken {
	out := make([]wireToken, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, wireToken{
			Type:   t.Type.String(),
			Value:  t.Value,
			Start:  t.Start,
			End:    t.End,
			Line:   t.Line,
			Column: t.Column,
		})
	}
	return out
}

func toWireLexErrors(errs []lexer.Error) []wireLexError {
	out := make([]wireLexError, 0, len(errs))
	for _, e := range errs {
		out = append(out, wireLexError{
			Message: e.Message,
			Line:    e.Line,
			Column:  e.Column,
			Start:   e.Start,
			End:     e.End,
		})
	}
	return out
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.respond(w, http.StatusOK, s.validator.Validate(req.Query))
}

func (s *Server) handleTokenize(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !s.decode(w, r, &req) {
		return
	}
	res := lexer.Tokenize(req.Query)
	tokens := res.Tokens
	if req.Normalize {
		tokens = normalize.Normalize(tokens)
	}
	s.respond(w, http.StatusOK, tokenizeResponse{
		Tokens: toWireTokens(tokens),
		Errors: toWireLexErrors(res.Errors),
	})
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if !s.decode(w, r, &req) {
		return
	}
	offset := len(req.Text)
	if req.Offset != nil {
		offset = *req.Offset
	}
	ctx := analyzer.Analyze(req.Text, offset, s.registry)
	s.respond(w, http.StatusOK, contextResponse{Context: ctx})
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if !s.decode(w, r, &req) {
		return
	}
	offset := len(req.Text)
	if req.Offset != nil {
		offset = *req.Offset
	}
	ctx := analyzer.Analyze(req.Text, offset, s.registry)
	s.respond(w, http.StatusOK, contextResponse{
		Context:     ctx,
		Suggestions: complete.Build(ctx, s.registry),
	})
}

func (s *Server) handleSchemaGet(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, s.registry.Export())
}

// handleSchemaPut replaces the registry contents with the submitted
// snapshot, or merges it when ?merge=true.
func (s *Server) handleSchemaPut(w http.ResponseWriter, r *http.Request) {
	var snap schema.Snapshot
	if !s.decode(w, r, &snap) {
		return
	}
	if err := validateSnapshot(snap); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if r.URL.Query().Get("merge") == "true" {
		s.registry.Import(snap)
	} else {
		s.registry.Replace(snap)
	}
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func validateSnapshot(snap schema.Snapshot) error {
	for _, f := range snap.Fields {
		if f.Name == "" {
			return errors.New("field with empty name")
		}
	}
	for _, fn := range snap.Functions {
		if fn.Name == "" {
			return errors.New("function with empty name")
		}
	}
	return nil
}
