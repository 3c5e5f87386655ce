// Package lineage extracts table and column usage from parsed
// statements.
//
// Extraction is a pure walk over a completed AST; it never touches the
// parser. Each statement resolves column qualifiers through the aliases
// its own FROM clause declared, so the summary reports real table
// names, not aliases. Subqueries and CTE bodies resolve in child scopes
// that do not leak aliases in either direction.
package lineage

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
)

// Action classifies how a statement touches a table or column.
type Action string

// Actions. The set is closed; statement kinds outside it (SET, GRANT,
// transaction control) contribute no lineage.
const (
	ActionSelect Action = "select"
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionCreate Action = "create"
	ActionAlter  Action = "alter"
	ActionDrop   Action = "drop"
	ActionRename Action = "rename"
	ActionUse    Action = "use"
	ActionLock   Action = "lock"
)

// TableRef is one (action, database, table) lineage triple. Database is
// empty when the reference was not database-qualified.
type TableRef struct {
	Action   Action
	Database string
	Table    string
}

// String renders the action::database::table form, with "null" for an
// empty component.
func (r TableRef) String() string {
	return string(r.Action) + "::" + nullable(r.Database) + "::" + nullable(r.Table)
}

// ColumnRef is one (action, table, column) lineage triple. Table is a
// real table name, or empty when the column reference was unqualified
// or came from a derived table.
type ColumnRef struct {
	Action Action
	Table  string
	Column string
}

// String renders the action::table::column form, with "null" for an
// empty component.
func (r ColumnRef) String() string {
	return string(r.Action) + "::" + nullable(r.Table) + "::" + nullable(r.Column)
}

func nullable(s string) string {
	if s == "" {
		return "null"
	}
	return s
}

func denull(s string) string {
	if s == "null" {
		return ""
	}
	return s
}

// ParseTableEntry parses the action::database::table string form back
// into a TableRef. It reports false when s is not a valid entry.
func ParseTableEntry(s string) (TableRef, bool) {
	parts := strings.SplitN(s, "::", 3)
	if len(parts) != 3 {
		return TableRef{}, false
	}
	return TableRef{
		Action:   Action(parts[0]),
		Database: denull(parts[1]),
		Table:    denull(parts[2]),
	}, true
}

// ParseColumnEntry parses the action::table::column string form back
// into a ColumnRef. It reports false when s is not a valid entry.
func ParseColumnEntry(s string) (ColumnRef, bool) {
	parts := strings.SplitN(s, "::", 3)
	if len(parts) != 3 {
		return ColumnRef{}, false
	}
	return ColumnRef{
		Action: Action(parts[0]),
		Table:  denull(parts[1]),
		Column: denull(parts[2]),
	}, true
}

// Summary is the lineage of a script: deduplicated table and column
// triples across all its statements.
type Summary struct {
	tables  map[TableRef]struct{}
	columns map[ColumnRef]struct{}
}

// Extract walks parsed statements and collects their lineage.
func Extract(stmts []core.Statement) *Summary {
	s := &Summary{
		tables:  make(map[TableRef]struct{}),
		columns: make(map[ColumnRef]struct{}),
	}
	w := &walker{sum: s}
	for _, stmt := range stmts {
		w.stmt(stmt)
	}
	return s
}

func (s *Summary) addTable(r TableRef) {
	s.tables[r] = struct{}{}
}

func (s *Summary) addColumn(r ColumnRef) {
	s.columns[r] = struct{}{}
}

// Tables returns the table triples sorted by action, database, table.
func (s *Summary) Tables() []TableRef {
	out := make([]TableRef, 0, len(s.tables))
	for r := range s.tables {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Action != b.Action {
			return a.Action < b.Action
		}
		if a.Database != b.Database {
			return a.Database < b.Database
		}
		return a.Table < b.Table
	})
	return out
}

// Columns returns the column triples sorted by action, table, column.
func (s *Summary) Columns() []ColumnRef {
	out := make([]ColumnRef, 0, len(s.columns))
	for r := range s.columns {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Action != b.Action {
			return a.Action < b.Action
		}
		if a.Table != b.Table {
			return a.Table < b.Table
		}
		return a.Column < b.Column
	})
	return out
}

// TableList returns the sorted string forms of the table triples.
func (s *Summary) TableList() []string {
	refs := s.Tables()
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.String()
	}
	return out
}

// ColumnList returns the sorted string forms of the column triples.
func (s *Summary) ColumnList() []string {
	refs := s.Columns()
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.String()
	}
	return out
}
