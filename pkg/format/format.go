// Package format renders core AST statements back into SQL text.
//
// Rendering is dialect-aware: identifier quoting, string escaping, and
// a few keyword spellings (UNIQUE KEY vs UNIQUE) come from the dialect
// passed into every call. There is no package-level configuration.
//
// Output is normalized, single-line SQL. Byte-exact reproduction of the
// input is not a goal; the guarantee is that rendering a parsed
// statement yields SQL that parses back to a structurally equal AST.
//
// An AST node the renderer does not recognize is a *RenderError, never
// a silent fallback: wrong SQL is worse than no SQL.
package format

import (
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
)

// Render renders a script of statements joined by "; ".
func Render(stmts []core.Statement, d *dialect.Dialect) (string, error) {
	parts := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		sql, err := RenderStatement(stmt, d)
		if err != nil {
			return "", err
		}
		parts = append(parts, sql)
	}
	return strings.Join(parts, "; "), nil
}

// RenderStatement renders a single statement.
func RenderStatement(stmt core.Statement, d *dialect.Dialect) (string, error) {
	p := newPrinter(d)
	if err := p.stmt(stmt); err != nil {
		return "", err
	}
	return p.String(), nil
}

// RenderExpr renders a single expression.
func RenderExpr(e core.Expr, d *dialect.Dialect) (string, error) {
	p := newPrinter(d)
	if err := p.expr(e); err != nil {
		return "", err
	}
	return p.String(), nil
}
