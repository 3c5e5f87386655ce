// Package sqlbridge is the driver facade over the SQL engine: parse SQL
// into a typed AST, render an AST back to SQL, and extract table/column
// lineage, selecting the dialect per call.
//
// The heavy lifting lives in pkg/parser, pkg/format, and pkg/lineage;
// this package wires them together, registers the built-in dialects,
// and adds the allow-list check used to gate statements before they
// reach a database.
package sqlbridge

import (
	"fmt"
	"regexp"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/format"
	"github.com/leapstack-labs/sqlbridge/pkg/lineage"
	"github.com/leapstack-labs/sqlbridge/pkg/parser"

	// Built-in dialects register themselves.
	_ "github.com/leapstack-labs/sqlbridge/pkg/dialects/mariadb"
	_ "github.com/leapstack-labs/sqlbridge/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/sqlbridge/pkg/dialects/postgres"
	_ "github.com/leapstack-labs/sqlbridge/pkg/dialects/sqlite"
)

// DefaultDialect is used when an Option does not name one.
const DefaultDialect = "mysql"

// Option selects the dialect for a facade call. A nil *Option means
// the default dialect.
type Option struct {
	Dialect string
}

func (o *Option) dialect() (*dialect.Dialect, error) {
	name := DefaultDialect
	if o != nil && o.Dialect != "" {
		name = o.Dialect
	}
	d, ok := dialect.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (registered: %v)", name, dialect.Names())
	}
	return d, nil
}

// Result bundles a parsed script with its lineage views.
type Result struct {
	AST        []core.Statement
	TableList  []string
	ColumnList []string
}

// Parse parses a script and returns its AST together with the sorted,
// deduplicated table and column lineage lists.
func Parse(sql string, opt *Option) (*Result, error) {
	d, err := opt.dialect()
	if err != nil {
		return nil, err
	}
	stmts, err := parser.Parse(sql, d.Config())
	if err != nil {
		return nil, err
	}
	sum := lineage.Extract(stmts)
	return &Result{
		AST:        stmts,
		TableList:  sum.TableList(),
		ColumnList: sum.ColumnList(),
	}, nil
}

// Astify parses a script into its AST.
func Astify(sql string, opt *Option) ([]core.Statement, error) {
	d, err := opt.dialect()
	if err != nil {
		return nil, err
	}
	return parser.Parse(sql, d.Config())
}

// Sqlify renders an AST back into SQL under the option's dialect.
func Sqlify(stmts []core.Statement, opt *Option) (string, error) {
	d, err := opt.dialect()
	if err != nil {
		return "", err
	}
	return format.Render(stmts, d)
}

// TableList parses a script and returns its table lineage in the
// action::database::table form.
func TableList(sql string, opt *Option) ([]string, error) {
	res, err := Parse(sql, opt)
	if err != nil {
		return nil, err
	}
	return res.TableList, nil
}

// ColumnList parses a script and returns its column lineage in the
// action::table::column form.
func ColumnList(sql string, opt *Option) ([]string, error) {
	res, err := Parse(sql, opt)
	if err != nil {
		return nil, err
	}
	return res.ColumnList, nil
}

// CheckMode selects which lineage list AllowListCheck validates.
type CheckMode string

// Check modes.
const (
	CheckTable  CheckMode = "table"
	CheckColumn CheckMode = "column"
)

// AllowListCheck parses sql and verifies that every lineage entry of
// the chosen mode matches at least one pattern. Patterns are regular
// expressions over the entry string forms, anchored at both ends, e.g.
// "select::null::users" or "(select|insert)::.*::order_.*".
func AllowListCheck(sql string, patterns []string, mode CheckMode, opt *Option) error {
	if len(patterns) == 0 {
		return nil
	}
	switch mode {
	case CheckTable, CheckColumn:
	default:
		return fmt.Errorf("unknown check mode %q", mode)
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile("^(?:" + pattern + ")$")
		if err != nil {
			return fmt.Errorf("invalid allow-list pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}

	res, err := Parse(sql, opt)
	if err != nil {
		return err
	}
	entries := res.TableList
	if mode == CheckColumn {
		entries = res.ColumnList
	}

	for _, entry := range entries {
		allowed := false
		for _, re := range compiled {
			if re.MatchString(entry) {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("%s authority check failed: %q is not allowed", mode, entry)
		}
	}
	return nil
}
