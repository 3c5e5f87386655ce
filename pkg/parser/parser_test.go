package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlbridge/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlbridge/pkg/parser"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// mustParse parses a script under the mysql config and fails the test
// on error.
func mustParse(t *testing.T, sql string) []core.Statement {
	t.Helper()
	stmts, err := parser.Parse(sql, mysql.Config)
	require.NoError(t, err, "parse %q", sql)
	return stmts
}

// mustParseOne parses a single statement under the mysql config.
func mustParseOne(t *testing.T, sql string) core.Statement {
	t.Helper()
	stmt, err := parser.ParseOne(sql, mysql.Config)
	require.NoError(t, err, "parse %q", sql)
	return stmt
}

// ---------- Script Parsing Tests ----------

func TestParseMultipleStatements(t *testing.T) {
	stmts := mustParse(t, "SELECT 1; SELECT 2; UPDATE t SET a = 1")
	require.Len(t, stmts, 3)
	assert.IsType(t, &core.SelectStmt{}, stmts[0])
	assert.IsType(t, &core.SelectStmt{}, stmts[1])
	assert.IsType(t, &core.UpdateStmt{}, stmts[2])
}

func TestParseToleratesExtraSemicolons(t *testing.T) {
	stmts := mustParse(t, ";;SELECT 1;;  ;SELECT 2;")
	assert.Len(t, stmts, 2)
}

func TestParseEmptyScript(t *testing.T) {
	stmts := mustParse(t, "   ")
	assert.Empty(t, stmts)
}

func TestParseOneRejectsEmptyInput(t *testing.T) {
	_, err := parser.ParseOne("", mysql.Config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a statement")
}

func TestParseOneRejectsSecondStatement(t *testing.T) {
	_, err := parser.ParseOne("SELECT 1; SELECT 2", mysql.Config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end of input")
}

func TestParseOneAllowsTrailingSemicolon(t *testing.T) {
	stmt, err := parser.ParseOne("SELECT 1;", mysql.Config)
	require.NoError(t, err)
	assert.IsType(t, &core.SelectStmt{}, stmt)
}

// ---------- Error Reporting Tests ----------

func TestSyntaxErrorPositionAndMessage(t *testing.T) {
	_, err := parser.Parse("SELECT a FROM", mysql.Config)
	require.Error(t, err)

	var synErr *parser.SyntaxError
	require.True(t, errors.As(err, &synErr))
	assert.Equal(t, 1, synErr.Pos.Line)
	assert.Equal(t, 14, synErr.Pos.Column)
	assert.Contains(t, err.Error(), "syntax error at line 1, column 14")
	assert.Contains(t, err.Error(), "end of input")
}

func TestSyntaxErrorExpectedSetIncludesStar(t *testing.T) {
	// A missing projection reports the alternatives that could start a
	// select item, including the bare star.
	_, err := parser.Parse("SELECT FROM t", mysql.Config)
	require.Error(t, err)

	var synErr *parser.SyntaxError
	require.True(t, errors.As(err, &synErr))
	assert.Contains(t, synErr.Expected, `"*"`)
	assert.Contains(t, synErr.Expected, "an expression")
	assert.Equal(t, `"FROM"`, synErr.Found)
}

func TestSyntaxErrorReportsFurthestFailure(t *testing.T) {
	// The error points at the ORDER clause, not at the start of the
	// statement.
	_, err := parser.Parse("SELECT a FROM t ORDER a", mysql.Config)
	require.Error(t, err)

	var synErr *parser.SyntaxError
	require.True(t, errors.As(err, &synErr))
	assert.Greater(t, synErr.Pos.Column, 16)
	assert.Contains(t, synErr.Expected, "BY")
}

func TestSyntaxErrorOnLineTwo(t *testing.T) {
	_, err := parser.Parse("SELECT a\nFROM WHERE", mysql.Config)
	require.Error(t, err)

	var synErr *parser.SyntaxError
	require.True(t, errors.As(err, &synErr))
	assert.Equal(t, 2, synErr.Pos.Line)
}

func TestSyntaxErrorDescribesIdentifier(t *testing.T) {
	_, err := parser.Parse("SELECT a b c", mysql.Config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `identifier "c"`)
}

func TestStatementsRequireSeparator(t *testing.T) {
	_, err := parser.Parse("SELECT 1 SELECT 2", mysql.Config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `";"`)
}

// ---------- Span Tests ----------

func TestStatementSpans(t *testing.T) {
	sql := "SELECT a FROM t;  UPDATE t SET a = 1"
	stmts := mustParse(t, sql)
	require.Len(t, stmts, 2)

	assert.Equal(t, 0, stmts[0].Pos().Offset)
	assert.Equal(t, len("SELECT a FROM t"), stmts[0].End().Offset)
	assert.Equal(t, len("SELECT a FROM t;  "), stmts[1].Pos().Offset)
	assert.Equal(t, len(sql), stmts[1].End().Offset)
}

// ---------- Comment Attachment Tests ----------

func TestLeadingCommentsAttachToStatement(t *testing.T) {
	sql := "-- first\n-- second\nSELECT 1"
	stmt := mustParseOne(t, sql)

	sel, ok := stmt.(*core.SelectStmt)
	require.True(t, ok)
	require.Len(t, sel.LeadingComments, 2)
	assert.Equal(t, "-- first", sel.LeadingComments[0].Text)
	assert.Equal(t, "-- second", sel.LeadingComments[1].Text)
}

func TestCommentsSplitAcrossStatements(t *testing.T) {
	sql := "-- one\nSELECT 1;\n-- two\nSELECT 2"
	stmts := mustParse(t, sql)
	require.Len(t, stmts, 2)

	first := stmts[0].(*core.SelectStmt)
	second := stmts[1].(*core.SelectStmt)
	require.Len(t, first.LeadingComments, 1)
	assert.Equal(t, "-- one", first.LeadingComments[0].Text)
	require.Len(t, second.LeadingComments, 1)
	assert.Equal(t, "-- two", second.LeadingComments[0].Text)
}

// ---------- Operator Binding Tests ----------

func TestConcatBindsTighterThanMinus(t *testing.T) {
	// || sits in the multiplicative band, so the concat is built first
	// and the subtraction takes it as its right operand.
	stmt := mustParseOne(t, "SELECT a - b || c")
	sel := stmt.(*core.SelectStmt)
	require.Len(t, sel.Columns, 1)

	top, ok := sel.Columns[0].Expr.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.MINUS, top.Op)

	right, ok := top.Right.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.DPIPE, right.Op)
}

func TestRegexMatchOperators(t *testing.T) {
	for _, op := range []string{"~", "~*", "!~", "!~*"} {
		t.Run(op, func(t *testing.T) {
			stmt, err := parser.ParseOne("SELECT * FROM t WHERE a "+op+" 'x'", postgres.Config)
			require.NoError(t, err)

			bin, ok := stmt.(*core.SelectStmt).Where.(*core.BinaryExpr)
			require.True(t, ok)
			assert.Equal(t, op, bin.Op.String())
		})
	}
}

// ---------- Dialect Grammar Gate Tests ----------

func TestIlikeOnlyUnderPostgres(t *testing.T) {
	sql := "SELECT * FROM t WHERE name ILIKE '%x%'"

	_, err := parser.Parse(sql, postgres.Config)
	require.NoError(t, err)

	_, err = parser.Parse(sql, mysql.Config)
	require.Error(t, err, "mysql has no ILIKE")
}

func TestCastShorthandOnlyUnderPostgres(t *testing.T) {
	sql := "SELECT a::text FROM t"

	_, err := parser.Parse(sql, postgres.Config)
	require.NoError(t, err)

	_, err = parser.Parse(sql, mysql.Config)
	require.Error(t, err, "mysql has no :: cast")
}

func TestReturningOnlyWhereSupported(t *testing.T) {
	sql := "DELETE FROM t WHERE id = 1 RETURNING id"

	_, err := parser.Parse(sql, postgres.Config)
	require.NoError(t, err)

	_, err = parser.Parse(sql, mysql.Config)
	require.Error(t, err, "mysql has no RETURNING")
}
