package format

import (
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
)

// printer accumulates one statement's SQL text. It carries the dialect
// so identifier quoting and string escaping stay consistent across
// every node the statement contains.
type printer struct {
	d   *dialect.Dialect
	cfg core.DialectConfig
	sb  strings.Builder
}

func newPrinter(d *dialect.Dialect) *printer {
	return &printer{d: d, cfg: d.Config()}
}

// String returns the rendered output.
func (p *printer) String() string {
	return p.sb.String()
}

func (p *printer) write(s string) {
	p.sb.WriteString(s)
}

func (p *printer) space() {
	p.sb.WriteByte(' ')
}

// keyword writes a keyword in canonical uppercase.
func (p *printer) keyword(s string) {
	p.sb.WriteString(strings.ToUpper(s))
}

// ident writes a quoted identifier. A bare "*" stays unquoted so
// privilege objects like db.* render correctly.
func (p *printer) ident(name string) {
	if name == "*" {
		p.sb.WriteString("*")
		return
	}
	p.sb.WriteString(p.d.QuoteIdentifier(name))
}

// tableName writes a possibly database-qualified table name.
func (p *printer) tableName(t *core.TableName) {
	if t.Database != "" {
		p.ident(t.Database)
		p.write(".")
	}
	p.ident(t.Name)
}

// str writes a string literal, re-escaped for the dialect. The quote
// doubles everywhere; backslash needs doubling only under dialects that
// treat it as an escape character.
func (p *printer) str(value string) {
	p.sb.WriteByte('\'')
	for i := 0; i < len(value); i++ {
		switch c := value[i]; c {
		case '\'':
			p.sb.WriteString("''")
		case '\\':
			if p.cfg.BackslashEscapes {
				p.sb.WriteString(`\\`)
			} else {
				p.sb.WriteByte(c)
			}
		default:
			p.sb.WriteByte(c)
		}
	}
	p.sb.WriteByte('\'')
}

// identList writes a comma-separated list of quoted identifiers.
func (p *printer) identList(names []string) {
	for i, name := range names {
		if i > 0 {
			p.write(", ")
		}
		p.ident(name)
	}
}

// exprList writes a comma-separated list of expressions.
func (p *printer) exprList(exprs []core.Expr) error {
	for i, e := range exprs {
		if i > 0 {
			p.write(", ")
		}
		if err := p.expr(e); err != nil {
			return err
		}
	}
	return nil
}
