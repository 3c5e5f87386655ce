package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leapstack-labs/sqlbridge"
	"github.com/leapstack-labs/sqlbridge/pkg/format"
	"github.com/leapstack-labs/sqlbridge/pkg/parser"
)

// maxRequestBody caps request payloads at 1 MiB.
const maxRequestBody = 1 << 20

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Line  int    `json:"line,omitempty"`
	Col   int    `json:"col,omitempty"`
}

// ParseRequest is the body of POST /v1/parse and /v1/lineage.
type ParseRequest struct {
	SQL     string `json:"sql"`
	Dialect string `json:"dialect,omitempty"`
}

// ParseResponse is the body of a successful POST /v1/parse.
type ParseResponse struct {
	Statements any `json:"statements"`
}

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	SQL  string `json:"sql"`
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// RenderResponse is the body of a successful POST /v1/render.
type RenderResponse struct {
	SQL string `json:"sql"`
}

// LineageResponse is the body of a successful POST /v1/lineage.
type LineageResponse struct {
	Tables  []string `json:"tables"`
	Columns []string `json:"columns"`
}

// CheckRequest is the body of POST /v1/check.
type CheckRequest struct {
	SQL      string   `json:"sql"`
	Dialect  string   `json:"dialect,omitempty"`
	Mode     string   `json:"mode,omitempty"`
	Patterns []string `json:"patterns"`
}

// CheckResponse is the body of POST /v1/check.
type CheckResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func (s *Server) option(dialectName string) *sqlbridge.Option {
	if dialectName == "" {
		dialectName = s.defaultDialect
	}
	return &sqlbridge.Option{Dialect: dialectName}
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	stmts, err := sqlbridge.Astify(req.SQL, s.option(req.Dialect))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ParseResponse{Statements: stmts})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	from := s.option(req.From)
	to := from
	if req.To != "" {
		to = s.option(req.To)
	}

	stmts, err := sqlbridge.Astify(req.SQL, from)
	if err != nil {
		writeError(w, err)
		return
	}
	sql, err := sqlbridge.Sqlify(stmts, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RenderResponse{SQL: sql})
}

func (s *Server) handleLineage(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	res, err := sqlbridge.Parse(req.SQL, s.option(req.Dialect))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LineageResponse{
		Tables:  res.TableList,
		Columns: res.ColumnList,
	})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	mode := sqlbridge.CheckTable
	if req.Mode != "" {
		mode = sqlbridge.CheckMode(req.Mode)
	}

	err := sqlbridge.AllowListCheck(req.SQL, req.Patterns, mode, s.option(req.Dialect))
	if err != nil {
		var synErr *parser.SyntaxError
		if errors.As(err, &synErr) {
			writeError(w, err)
			return
		}
		// Pattern and mode problems are caller errors; a failed check
		// is a normal negative result.
		writeJSON(w, http.StatusOK, CheckResponse{Allowed: false, Reason: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, CheckResponse{Allowed: true})
}

// decodeRequest parses the JSON body into v and writes a 400 on
// failure, reporting whether the handler should continue.
func decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// writeError maps engine errors to HTTP statuses: syntax and render
// errors are the caller's fault, everything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	var synErr *parser.SyntaxError
	if errors.As(err, &synErr) {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: synErr.Error(),
			Line:  synErr.Pos.Line,
			Col:   synErr.Pos.Column,
		})
		return
	}

	var renderErr *format.RenderError
	if errors.As(err, &renderErr) {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: renderErr.Error()})
		return
	}

	// Remaining failures (unknown dialect, bad patterns) are caller
	// input problems.
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
