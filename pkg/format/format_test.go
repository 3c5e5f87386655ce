package format_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlbridge/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlbridge/pkg/dialects/sqlite"
	"github.com/leapstack-labs/sqlbridge/pkg/format"
	"github.com/leapstack-labs/sqlbridge/pkg/parser"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// ignoreSpans drops source-span metadata from structural comparisons.
var ignoreSpans = cmpopts.IgnoreTypes(core.NodeInfo{})

// roundTrip parses sql under d and renders it back under the same
// dialect, failing the test on either error.
func roundTrip(t *testing.T, sql string, d *dialect.Dialect) string {
	t.Helper()
	stmts, err := parser.Parse(sql, d.Config())
	require.NoError(t, err, "parse %q", sql)
	out, err := format.Render(stmts, d)
	require.NoError(t, err, "render %q", sql)
	return out
}

// transpile parses sql under from and renders it under to.
func transpile(t *testing.T, sql string, from, to *dialect.Dialect) string {
	t.Helper()
	stmts, err := parser.Parse(sql, from.Config())
	require.NoError(t, err, "parse %q", sql)
	out, err := format.Render(stmts, to)
	require.NoError(t, err, "render %q", sql)
	return out
}

// ---------- Canonical Output Tests ----------

func TestRenderCanonicalForms(t *testing.T) {
	cases := []struct{ in, want string }{
		{"select a from t", "SELECT `a` FROM `t`"},
		{"select a, b + 1 as c from t", "SELECT `a`, `b` + 1 AS `c` FROM `t`"},
		{"SELECT * FROM t WHERE a = 1 AND b = 2", "SELECT * FROM `t` WHERE `a` = 1 AND `b` = 2"},
		{"SELECT t.* FROM db.t", "SELECT `t`.* FROM `db`.`t`"},
		{"SELECT DISTINCT a FROM t", "SELECT DISTINCT `a` FROM `t`"},
		{"SELECT COUNT(*) FROM t GROUP BY a HAVING COUNT(*) > 1",
			"SELECT COUNT(*) FROM `t` GROUP BY `a` HAVING COUNT(*) > 1"},
		{"SELECT a FROM t ORDER BY a DESC, b LIMIT 10",
			"SELECT `a` FROM `t` ORDER BY `a` DESC, `b` LIMIT 10"},
		{"SELECT * FROM t LIMIT 5, 10", "SELECT * FROM `t` LIMIT 5, 10"},
		{"SELECT * FROM t LIMIT 10 OFFSET 5", "SELECT * FROM `t` LIMIT 10 OFFSET 5"},
		{"select t.a from t join u on t.id = u.t_id",
			"SELECT `t`.`a` FROM `t` JOIN `u` ON `t`.`id` = `u`.`t_id`"},
		{"SELECT a FROM t LEFT JOIN u USING (id)",
			"SELECT `a` FROM `t` LEFT JOIN `u` USING (`id`)"},
		{"SELECT x FROM (SELECT a AS x FROM t) AS s",
			"SELECT `x` FROM (SELECT `a` AS `x` FROM `t`) AS `s`"},
		{"insert into t (a, b) values (1, 'x'), (2, 'y')",
			"INSERT INTO `t` (`a`, `b`) VALUES (1, 'x'), (2, 'y')"},
		{"INSERT INTO t SET a = 1", "INSERT INTO `t` SET `a` = 1"},
		{"update t set a = a + 1 where id = 2",
			"UPDATE `t` SET `a` = `a` + 1 WHERE `id` = 2"},
		{"delete from t where a in (1, 2)",
			"DELETE FROM `t` WHERE `a` IN (1, 2)"},
		{"SELECT a FROM t UNION ALL SELECT a FROM u",
			"SELECT `a` FROM `t` UNION ALL SELECT `a` FROM `u`"},
		{"WITH x AS (SELECT 1) SELECT * FROM x",
			"WITH `x` AS (SELECT 1) SELECT * FROM `x`"},
		{"SELECT CASE WHEN a > 0 THEN 'pos' ELSE 'neg' END FROM t",
			"SELECT CASE WHEN `a` > 0 THEN 'pos' ELSE 'neg' END FROM `t`"},
		{"SHOW CREATE TABLE t", "SHOW CREATE TABLE `t`"},
		{"SHOW TABLES LIKE 't%'", "SHOW TABLES LIKE 't%'"},
		{"use mydb", "USE `mydb`"},
		{"TRUNCATE TABLE t", "TRUNCATE TABLE `t`"},
		{"RENAME TABLE a TO b", "RENAME TABLE `a` TO `b`"},
		{"EXPLAIN SELECT * FROM t", "EXPLAIN SELECT * FROM `t`"},
	}
	for _, tc := range cases {
		got := roundTrip(t, tc.in, mysql.MySQL)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestRenderJoinsScriptWithSemicolons(t *testing.T) {
	got := roundTrip(t, "SELECT 1; SELECT 2", mysql.MySQL)
	assert.Equal(t, "SELECT 1; SELECT 2", got)
}

// ---------- Round-Trip Property Tests ----------

func TestRenderIdempotent(t *testing.T) {
	samples := []string{
		"SELECT a, b + 1 AS c FROM t WHERE a > 10 AND b < 5",
		"SELECT DISTINCT a FROM t GROUP BY a HAVING COUNT(*) > 1 ORDER BY a",
		"SELECT * FROM t LEFT JOIN u ON t.id = u.t_id WHERE u.id IS NULL",
		"SELECT * FROM t WHERE a IN (SELECT a FROM u WHERE b = 1)",
		"SELECT * FROM t WHERE EXISTS (SELECT 1 FROM u WHERE u.id = t.id)",
		"SELECT a FROM t UNION SELECT a FROM u ORDER BY a",
		"WITH RECURSIVE r AS (SELECT 1 UNION ALL SELECT n + 1 FROM r) SELECT * FROM r",
		"SELECT SUM(a) OVER (PARTITION BY b ORDER BY c ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) FROM t",
		"SELECT SUM(a) OVER (ORDER BY b ROWS BETWEEN 1 PRECEDING AND CURRENT ROW) FROM t",
		"SELECT CASE a WHEN 1 THEN 'one' ELSE 'many' END FROM t",
		"INSERT INTO t (a, b) VALUES (1, 'x'), (2, 'y')",
		"INSERT IGNORE INTO t (a) SELECT a FROM u",
		"UPDATE t SET a = CASE WHEN b > 0 THEN 1 ELSE 0 END WHERE id = 3",
		"DELETE FROM t WHERE a BETWEEN 1 AND 10 ORDER BY a LIMIT 5",
		"CREATE TABLE t (id INT NOT NULL AUTO_INCREMENT, name VARCHAR(255) DEFAULT 'x', PRIMARY KEY (id))",
		"CREATE TABLE t (a INT, b INT, KEY idx_ab (a, b), CONSTRAINT fk FOREIGN KEY (a) REFERENCES u (id) ON DELETE CASCADE)",
		"CREATE UNIQUE INDEX idx_a ON t (a DESC)",
		"CREATE OR REPLACE VIEW v AS SELECT a FROM t",
		"ALTER TABLE t ADD COLUMN c INT AFTER b, DROP COLUMN d",
		"ALTER TABLE t ALTER COLUMN a SET DEFAULT 0",
		"DROP TABLE IF EXISTS t, u",
		"GRANT SELECT, INSERT ON db.* TO 'app'@'%' WITH GRANT OPTION",
		"LOCK TABLES t WRITE, u READ",
		"SET @x = 1, @y = 2",
		"SET NAMES utf8mb4",
		"IF x > 0 THEN SELECT 1; ELSE SELECT 2; END IF",
		"SHOW COLUMNS FROM t WHERE Field = 'a'",
	}
	for _, sql := range samples {
		first, err := parser.Parse(sql, mysql.Config)
		require.NoError(t, err, "parse %q", sql)

		r1, err := format.Render(first, mysql.MySQL)
		require.NoError(t, err, "render %q", sql)

		second, err := parser.Parse(r1, mysql.Config)
		require.NoError(t, err, "reparse %q", r1)

		r2, err := format.Render(second, mysql.MySQL)
		require.NoError(t, err, "rerender %q", r1)
		assert.Equal(t, r1, r2, "render not idempotent for %q", sql)

		third, err := parser.Parse(r2, mysql.Config)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(second, third, ignoreSpans),
			"AST drift across round trip of %q", sql)
	}
}

// ---------- Parenthesization Tests ----------

func TestExplicitParenthesesSurvive(t *testing.T) {
	got := roundTrip(t, "SELECT (a + b) * c FROM t", mysql.MySQL)
	assert.Equal(t, "SELECT (`a` + `b`) * `c` FROM `t`", got)
}

func TestPrecedenceNeedsNoParentheses(t *testing.T) {
	got := roundTrip(t, "SELECT a + b * c FROM t", mysql.MySQL)
	assert.Equal(t, "SELECT `a` + `b` * `c` FROM `t`", got)
}

func TestLeftAssociativeChainRendersFlat(t *testing.T) {
	got := roundTrip(t, "SELECT a - b - c FROM t", mysql.MySQL)
	assert.Equal(t, "SELECT `a` - `b` - `c` FROM `t`", got)
}

func TestRightGroupedSubtractionKeepsParentheses(t *testing.T) {
	got := roundTrip(t, "SELECT a - (b - c) FROM t", mysql.MySQL)
	assert.Equal(t, "SELECT `a` - (`b` - `c`) FROM `t`", got)
}

func TestConcatNeedsNoParenthesesUnderMinus(t *testing.T) {
	// a - b || c is a - (b || c); the tighter concat renders bare.
	got := roundTrip(t, "SELECT a - b || c FROM t", mysql.MySQL)
	assert.Equal(t, "SELECT `a` - `b` || `c` FROM `t`", got)
}

func TestGroupedSubtractionUnderConcatKeepsParentheses(t *testing.T) {
	got := roundTrip(t, "SELECT (a - b) || c FROM t", mysql.MySQL)
	assert.Equal(t, "SELECT (`a` - `b`) || `c` FROM `t`", got)
}

func TestRegexMatchRoundTrip(t *testing.T) {
	got := roundTrip(t, "SELECT * FROM t WHERE a !~* 'x'", postgres.Postgres)
	assert.Equal(t, `SELECT * FROM "t" WHERE "a" !~* 'x'`, got)
}

func TestHandBuiltASTParenthesizedByPrecedence(t *testing.T) {
	// A right child at equal strength, no Parens flag set: the renderer
	// must parenthesize it on precedence alone.
	sum := &core.BinaryExpr{
		Left: &core.ColumnRef{Column: "a"},
		Op:   token.MINUS,
		Right: &core.BinaryExpr{
			Left:  &core.ColumnRef{Column: "b"},
			Op:    token.MINUS,
			Right: &core.ColumnRef{Column: "c"},
		},
	}
	got, err := format.RenderExpr(sum, mysql.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "`a` - (`b` - `c`)", got)
}

// ---------- Literal Tests ----------

func TestBigintDigitsRenderVerbatim(t *testing.T) {
	const digits = "99999999999999999999999999999999"
	stmt, err := parser.ParseOne("SELECT "+digits, mysql.Config)
	require.NoError(t, err)

	sel := stmt.(*core.SelectStmt)
	require.IsType(t, &core.BigintLit{}, sel.Columns[0].Expr)

	got, err := format.RenderStatement(stmt, mysql.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "SELECT "+digits, got)
}

func TestNumberSpellingPreserved(t *testing.T) {
	got := roundTrip(t, "SELECT 1.50, 0.5, 1e10 FROM t", mysql.MySQL)
	assert.Equal(t, "SELECT 1.50, 0.5, 1e10 FROM `t`", got)
}

func TestStringEscapingByDialect(t *testing.T) {
	lit := &core.StringLit{Value: `it's a\b`}

	got, err := format.RenderExpr(lit, mysql.MySQL)
	require.NoError(t, err)
	assert.Equal(t, `'it''s a\\b'`, got, "mysql doubles the backslash")

	got, err = format.RenderExpr(lit, postgres.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `'it''s a\b'`, got, "postgres keeps the backslash literal")
}

// ---------- Dialect Tests ----------

func TestIdentifierQuotingByDialect(t *testing.T) {
	assert.Equal(t, "SELECT `a` FROM `t`",
		transpile(t, "select a from t", mysql.MySQL, mysql.MySQL))
	assert.Equal(t, `SELECT "a" FROM "t"`,
		transpile(t, "select a from t", mysql.MySQL, postgres.Postgres))
}

func TestQuoteDoublingInIdentifiers(t *testing.T) {
	got, err := format.RenderExpr(&core.ColumnRef{Column: "we`ird"}, mysql.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "`we``ird`", got)
}

func TestUniqueSpellingByDialect(t *testing.T) {
	const sql = "CREATE TABLE t (a INT, UNIQUE KEY uq_a (a))"

	assert.Equal(t, "CREATE TABLE `t` (`a` INT, UNIQUE KEY `uq_a` (`a`))",
		transpile(t, sql, mysql.MySQL, mysql.MySQL))
	assert.Equal(t, `CREATE TABLE "t" ("a" INT, UNIQUE "uq_a" ("a"))`,
		transpile(t, sql, mysql.MySQL, sqlite.SQLite))
}

func TestCastTypeRendersCanonically(t *testing.T) {
	got := roundTrip(t, "SELECT CAST(a AS decimal(10,2)) FROM t", mysql.MySQL)
	assert.Equal(t, "SELECT CAST(`a` AS DECIMAL(10, 2)) FROM `t`", got)
}

func TestCastShorthandByDialect(t *testing.T) {
	assert.Equal(t, `SELECT "a"::INT`,
		transpile(t, "SELECT a::int", postgres.Postgres, postgres.Postgres))
	// Without the :: operator the cast falls back to the CAST function.
	assert.Equal(t, "SELECT CAST(`a` AS INT)",
		transpile(t, "SELECT a::int", postgres.Postgres, mysql.MySQL))
}

func TestParamStylesPreserved(t *testing.T) {
	assert.Equal(t, "SELECT * FROM `t` WHERE `a` = ?",
		roundTrip(t, "SELECT * FROM t WHERE a = ?", mysql.MySQL))
	assert.Equal(t, `SELECT * FROM "t" WHERE "a" = $1`,
		roundTrip(t, "SELECT * FROM t WHERE a = $1", postgres.Postgres))
}

func TestReturningRejectedWhereUnsupported(t *testing.T) {
	stmts, err := parser.Parse("INSERT INTO t (a) VALUES (1) RETURNING a", sqlite.Config)
	require.NoError(t, err)

	_, err = format.Render(stmts, mysql.MySQL)
	require.Error(t, err)
	var rerr *format.RenderError
	require.True(t, errors.As(err, &rerr))
	assert.Contains(t, err.Error(), "RETURNING")

	got, err := format.Render(stmts, sqlite.SQLite)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "t" ("a") VALUES (1) RETURNING "a"`, got)
}

func TestUpsertClausesGatedByDialect(t *testing.T) {
	stmts, err := parser.Parse(
		"INSERT INTO t (a) VALUES (1) ON DUPLICATE KEY UPDATE a = 2", mysql.Config)
	require.NoError(t, err)

	got, err := format.Render(stmts, mysql.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `t` (`a`) VALUES (1) ON DUPLICATE KEY UPDATE `a` = 2", got)

	_, err = format.Render(stmts, sqlite.SQLite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ON DUPLICATE KEY UPDATE")
}

func TestOnConflictRendersUnderSQLite(t *testing.T) {
	got := roundTrip(t,
		"INSERT INTO t (a) VALUES (1) ON CONFLICT (a) DO UPDATE SET a = 2", sqlite.SQLite)
	assert.Equal(t,
		`INSERT INTO "t" ("a") VALUES (1) ON CONFLICT ("a") DO UPDATE SET "a" = 2`, got)
}

// ---------- Error Tests ----------

func TestRenderErrorOnCaseWithoutArms(t *testing.T) {
	_, err := format.RenderExpr(&core.CaseExpr{}, mysql.MySQL)
	require.Error(t, err)

	var rerr *format.RenderError
	require.True(t, errors.As(err, &rerr))
	assert.Contains(t, err.Error(), "cannot render")
	assert.Contains(t, err.Error(), "WHEN")
}

func TestRenderErrorOnMalformedFrame(t *testing.T) {
	fn := &core.FuncCall{
		Name: "SUM",
		Args: []core.Expr{&core.ColumnRef{Column: "a"}},
		Over: &core.WindowSpec{Frame: &core.FrameSpec{Unit: core.FrameRows}},
	}
	_, err := format.RenderExpr(fn, mysql.MySQL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start bound")
}

func TestRenderErrorOnNilStatement(t *testing.T) {
	_, err := format.RenderStatement(nil, mysql.MySQL)
	require.Error(t, err)

	var rerr *format.RenderError
	assert.True(t, errors.As(err, &rerr))
}
