package lineage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlbridge/pkg/lineage"
	"github.com/leapstack-labs/sqlbridge/pkg/parser"
)

// extract parses sql under the mysql config and returns its lineage.
func extract(t *testing.T, sql string) *lineage.Summary {
	t.Helper()
	stmts, err := parser.Parse(sql, mysql.Config)
	require.NoError(t, err, "parse %q", sql)
	return lineage.Extract(stmts)
}

func TestBasicSelect(t *testing.T) {
	sum := extract(t, "SELECT a, b FROM t WHERE a = 1")
	assert.Equal(t, []string{"select::null::t"}, sum.TableList())
	assert.Equal(t, []string{"select::null::a", "select::null::b"}, sum.ColumnList())
}

func TestAliasResolvesToRealTable(t *testing.T) {
	sum := extract(t, "SELECT t1.a FROM x AS t1")
	assert.Equal(t, []string{"select::null::x"}, sum.TableList())
	assert.Equal(t, []string{"select::x::a"}, sum.ColumnList())
}

func TestBareTableNameAliasesToItself(t *testing.T) {
	sum := extract(t, "SELECT t.a FROM t")
	assert.Equal(t, []string{"select::t::a"}, sum.ColumnList())
}

func TestDatabaseQualifiedTable(t *testing.T) {
	sum := extract(t, "SELECT * FROM db.t")
	assert.Equal(t, []string{"select::db::t"}, sum.TableList())
	assert.Equal(t, []string{"select::null::*"}, sum.ColumnList())
}

func TestJoinAliases(t *testing.T) {
	sum := extract(t,
		"SELECT u.name, o.total FROM users AS u JOIN orders AS o ON u.id = o.user_id")
	assert.Equal(t, []string{"select::null::orders", "select::null::users"},
		sum.TableList())
	assert.Equal(t, []string{
		"select::orders::total",
		"select::orders::user_id",
		"select::users::id",
		"select::users::name",
	}, sum.ColumnList())
}

func TestSubqueryAliasesDoNotLeak(t *testing.T) {
	// The inner alias t1 must not resolve outer columns, and the
	// derived-table alias d must not pretend to be a real table.
	sum := extract(t,
		"SELECT d.a FROM (SELECT b AS a FROM x AS t1) AS d WHERE t1.c = 1")
	assert.Equal(t, []string{"select::null::x"}, sum.TableList())
	assert.Equal(t, []string{
		"select::null::a", // d.a: derived table, unqualified
		"select::t1::c",   // unresolved qualifier kept verbatim
		"select::x::b",
	}, sum.ColumnList())
}

func TestCTENotCountedAsTable(t *testing.T) {
	sum := extract(t, "WITH c AS (SELECT a FROM t) SELECT c.a FROM c")
	assert.Equal(t, []string{"select::null::t"}, sum.TableList())
	assert.Equal(t, []string{"select::c::a", "select::t::a"}, sum.ColumnList())
}

func TestCTEVisibleAcrossSetOperation(t *testing.T) {
	sum := extract(t, "WITH c AS (SELECT a FROM t) SELECT a FROM c UNION SELECT a FROM u")
	assert.Equal(t, []string{"select::null::t", "select::null::u"}, sum.TableList())
}

func TestInsert(t *testing.T) {
	sum := extract(t, "INSERT INTO t (a, b) VALUES (1, 2)")
	assert.Equal(t, []string{"insert::null::t"}, sum.TableList())
	assert.Equal(t, []string{"insert::t::a", "insert::t::b"}, sum.ColumnList())
}

func TestInsertFromSelect(t *testing.T) {
	sum := extract(t, "INSERT INTO t (a) SELECT b FROM u")
	assert.Equal(t, []string{"insert::null::t", "select::null::u"}, sum.TableList())
	assert.Equal(t, []string{"insert::t::a", "select::null::b"}, sum.ColumnList())
}

func TestUpdate(t *testing.T) {
	sum := extract(t, "UPDATE t SET a = b + 1 WHERE id = 2")
	assert.Equal(t, []string{"update::null::t"}, sum.TableList())
	assert.Equal(t, []string{
		"select::null::b",
		"select::null::id",
		"update::null::a",
	}, sum.ColumnList())
}

func TestUpdateQualifiedTarget(t *testing.T) {
	sum := extract(t, "UPDATE x AS t1 SET t1.a = 1")
	assert.Equal(t, []string{"update::null::x"}, sum.TableList())
	assert.Equal(t, []string{"update::x::a"}, sum.ColumnList())
}

func TestDelete(t *testing.T) {
	sum := extract(t, "DELETE FROM t WHERE a = 1")
	assert.Equal(t, []string{"delete::null::t"}, sum.TableList())
	assert.Equal(t, []string{"select::null::a"}, sum.ColumnList())
}

func TestMultiTableDeleteResolvesTargets(t *testing.T) {
	sum := extract(t, "DELETE t1 FROM x AS t1 JOIN y ON t1.id = y.x_id")
	assert.Equal(t, []string{
		"delete::null::x",
		"select::null::x",
		"select::null::y",
	}, sum.TableList())
}

func TestTruncateCountsAsDelete(t *testing.T) {
	sum := extract(t, "TRUNCATE TABLE t")
	assert.Equal(t, []string{"delete::null::t"}, sum.TableList())
}

func TestCreateTable(t *testing.T) {
	sum := extract(t,
		"CREATE TABLE t (id INT PRIMARY KEY, u_id INT, FOREIGN KEY (u_id) REFERENCES u (id))")
	assert.Equal(t, []string{"create::null::t", "select::null::u"}, sum.TableList())
	assert.Equal(t, []string{
		"create::t::id",
		"create::t::u_id",
		"select::u::id",
	}, sum.ColumnList())
}

func TestCreateTableAsSelect(t *testing.T) {
	sum := extract(t, "CREATE TABLE t AS SELECT a FROM u")
	assert.Equal(t, []string{"create::null::t", "select::null::u"}, sum.TableList())
}

func TestAlterTable(t *testing.T) {
	sum := extract(t, "ALTER TABLE t ADD COLUMN c INT, DROP COLUMN d")
	assert.Equal(t, []string{"alter::null::t"}, sum.TableList())
	assert.Equal(t, []string{"alter::t::c", "alter::t::d"}, sum.ColumnList())
}

func TestDropSeveralTables(t *testing.T) {
	sum := extract(t, "DROP TABLE IF EXISTS a, db.b")
	assert.Equal(t, []string{"drop::db::b", "drop::null::a"}, sum.TableList())
}

func TestRenameRecordsBothNames(t *testing.T) {
	sum := extract(t, "RENAME TABLE a TO b")
	assert.Equal(t, []string{"rename::null::a", "rename::null::b"}, sum.TableList())
}

func TestUseAndLock(t *testing.T) {
	sum := extract(t, "USE app; LOCK TABLES t WRITE")
	assert.Equal(t, []string{"lock::null::t", "use::app::null"}, sum.TableList())
}

func TestScriptAccumulatesAcrossStatements(t *testing.T) {
	sum := extract(t, "SELECT a FROM t; SELECT a FROM t; INSERT INTO t (a) VALUES (1)")
	assert.Equal(t, []string{"insert::null::t", "select::null::t"}, sum.TableList(),
		"triples deduplicate across statements")
}

func TestExplainWalksTarget(t *testing.T) {
	sum := extract(t, "EXPLAIN SELECT a FROM t")
	assert.Equal(t, []string{"select::null::t"}, sum.TableList())
}

func TestEmptySummary(t *testing.T) {
	sum := lineage.Extract(nil)
	assert.Empty(t, sum.Tables())
	assert.Empty(t, sum.Columns())
	assert.Empty(t, sum.TableList())
	assert.Empty(t, sum.ColumnList())
}

func TestTripleStringForms(t *testing.T) {
	tr := lineage.TableRef{Action: lineage.ActionSelect, Table: "t"}
	assert.Equal(t, "select::null::t", tr.String())

	cr := lineage.ColumnRef{Action: lineage.ActionInsert, Table: "t", Column: "a"}
	assert.Equal(t, "insert::t::a", cr.String())
}

func TestParseEntriesInvertStringForms(t *testing.T) {
	tr, ok := lineage.ParseTableEntry("select::null::t")
	require.True(t, ok)
	assert.Equal(t, lineage.TableRef{Action: lineage.ActionSelect, Table: "t"}, tr)

	cr, ok := lineage.ParseColumnEntry("insert::t::a")
	require.True(t, ok)
	assert.Equal(t, lineage.ColumnRef{Action: lineage.ActionInsert, Table: "t", Column: "a"}, cr)

	_, ok = lineage.ParseTableEntry("select::t")
	assert.False(t, ok)
}

func TestExtractIsPure(t *testing.T) {
	stmts, err := parser.Parse("SELECT t1.a FROM x AS t1", mysql.Config)
	require.NoError(t, err)

	first := lineage.Extract(stmts)
	second := lineage.Extract(stmts)
	assert.Equal(t, first.ColumnList(), second.ColumnList(),
		"extraction must not mutate the AST")

	sel := stmts[0].(*core.SelectStmt)
	ref := sel.Columns[0].Expr.(*core.ColumnRef)
	assert.Equal(t, "t1", ref.Table, "qualifier in the AST stays syntactic")
}
