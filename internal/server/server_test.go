package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() http.Handler {
	return New(Config{DefaultDialect: "mysql"}).Handler()
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

func TestHealthz(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestRequestIDEchoed(t *testing.T) {
	h := newTestServer()

	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-Id"))
}

func TestParseReturnsStatements(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/v1/parse", ParseRequest{
		SQL: "SELECT a FROM t",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Statements []json.RawMessage `json:"statements"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Statements, 1)
}

func TestParseSyntaxErrorCarriesPosition(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/v1/parse", ParseRequest{
		SQL: "SELECT FROM",
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
	assert.Equal(t, 1, resp.Line)
	assert.Greater(t, resp.Col, 0)
}

func TestParseUnknownDialectRejected(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/v1/parse", ParseRequest{
		SQL:     "SELECT 1",
		Dialect: "oracle",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/v1/parse", map[string]any{
		"sql":   "SELECT 1",
		"bogus": true,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRenderNormalizes(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/v1/render", RenderRequest{
		SQL: "select a,b from t",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RenderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "SELECT `a`, `b` FROM `t`", resp.SQL)
}

func TestRenderTranspiles(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/v1/render", RenderRequest{
		SQL:  `SELECT "a"::INT FROM "t"`,
		From: "postgres",
		To:   "mysql",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RenderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "SELECT CAST(`a` AS INT) FROM `t`", resp.SQL)
}

func TestRenderUnsupportedConstructRejected(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/v1/render", RenderRequest{
		SQL:  "DELETE FROM t WHERE id = 1 RETURNING id",
		From: "postgres",
		To:   "mysql",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLineage(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/v1/lineage", ParseRequest{
		SQL: "SELECT u.name FROM users AS u",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp LineageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"select::null::users"}, resp.Tables)
	assert.Equal(t, []string{"select::users::name"}, resp.Columns)
}

func TestCheckAllowedAndDenied(t *testing.T) {
	h := newTestServer()

	rec := doJSON(t, h, http.MethodPost, "/v1/check", CheckRequest{
		SQL:      "SELECT a FROM users",
		Patterns: []string{"select::.*::users"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp CheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Allowed)

	rec = doJSON(t, h, http.MethodPost, "/v1/check", CheckRequest{
		SQL:      "DROP TABLE users",
		Patterns: []string{"select::.*::users"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Allowed)
	assert.Contains(t, resp.Reason, "drop::null::users")
}

func TestCheckSyntaxErrorIsNotANegativeResult(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/v1/check", CheckRequest{
		SQL:      "SELECT FROM",
		Patterns: []string{".*"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
