package sqlbridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqlbridge "github.com/leapstack-labs/sqlbridge"
	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/parser"
)

func TestParseReturnsASTAndLineage(t *testing.T) {
	res, err := sqlbridge.Parse("SELECT a FROM t WHERE a = 1", nil)
	require.NoError(t, err)

	require.Len(t, res.AST, 1)
	assert.IsType(t, &core.SelectStmt{}, res.AST[0])
	assert.Equal(t, []string{"select::null::t"}, res.TableList)
	assert.Equal(t, []string{"select::null::a"}, res.ColumnList)
}

func TestAstifySqlifyRoundTrip(t *testing.T) {
	stmts, err := sqlbridge.Astify("select a from t", nil)
	require.NoError(t, err)

	sql, err := sqlbridge.Sqlify(stmts, nil)
	require.NoError(t, err)
	assert.Equal(t, "SELECT `a` FROM `t`", sql)
}

func TestSqlifyTranspilesBetweenDialects(t *testing.T) {
	stmts, err := sqlbridge.Astify("select a from t", &sqlbridge.Option{Dialect: "mysql"})
	require.NoError(t, err)

	sql, err := sqlbridge.Sqlify(stmts, &sqlbridge.Option{Dialect: "postgres"})
	require.NoError(t, err)
	assert.Equal(t, `SELECT "a" FROM "t"`, sql)
}

func TestNilOptionDefaultsToMySQL(t *testing.T) {
	// # comments only lex under the mysql family.
	_, err := sqlbridge.Astify("# comment\nSELECT 1", nil)
	assert.NoError(t, err)
}

func TestUnknownDialectRejected(t *testing.T) {
	_, err := sqlbridge.Astify("SELECT 1", &sqlbridge.Option{Dialect: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dialect")
}

func TestSyntaxErrorPassesThrough(t *testing.T) {
	_, err := sqlbridge.Parse("SELECT FROM", nil)
	require.Error(t, err)
	assert.IsType(t, &parser.SyntaxError{}, err)
}

func TestTableListAndColumnList(t *testing.T) {
	tables, err := sqlbridge.TableList("INSERT INTO t (a) VALUES (1); SELECT b FROM u", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"insert::null::t", "select::null::u"}, tables)

	columns, err := sqlbridge.ColumnList("SELECT t1.a FROM x AS t1", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"select::x::a"}, columns)
}

func TestAllowListCheckTables(t *testing.T) {
	err := sqlbridge.AllowListCheck("SELECT a FROM users",
		[]string{"select::null::users"}, sqlbridge.CheckTable, nil)
	assert.NoError(t, err)

	err = sqlbridge.AllowListCheck("DROP TABLE users",
		[]string{"select::null::users"}, sqlbridge.CheckTable, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drop::null::users")
}

func TestAllowListCheckColumnsWithWildcards(t *testing.T) {
	err := sqlbridge.AllowListCheck("SELECT order_id, order_total FROM orders",
		[]string{"select::.*::order_.*"}, sqlbridge.CheckColumn, nil)
	assert.NoError(t, err)

	err = sqlbridge.AllowListCheck("SELECT secret FROM orders",
		[]string{"select::.*::order_.*"}, sqlbridge.CheckColumn, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret")
}

func TestAllowListCheckPatternsAnchored(t *testing.T) {
	// A pattern must match the whole entry, not a substring.
	err := sqlbridge.AllowListCheck("SELECT a FROM users_archive",
		[]string{"select::null::users"}, sqlbridge.CheckTable, nil)
	assert.Error(t, err)
}

func TestAllowListCheckEmptyPatternListAllowsAll(t *testing.T) {
	err := sqlbridge.AllowListCheck("DROP TABLE users", nil, sqlbridge.CheckTable, nil)
	assert.NoError(t, err)
}

func TestAllowListCheckRejectsBadInput(t *testing.T) {
	err := sqlbridge.AllowListCheck("SELECT 1", []string{"(unclosed"},
		sqlbridge.CheckTable, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid allow-list pattern")

	err = sqlbridge.AllowListCheck("SELECT 1", []string{".*"}, CheckModeBogus, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown check mode")
}

// CheckModeBogus is deliberately outside the supported set.
const CheckModeBogus = sqlbridge.CheckMode("statement")
