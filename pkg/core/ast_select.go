package core

// SetOp labels the link between a SELECT and the statement that follows
// it in a set-operation chain.
type SetOp string

// Set operations.
const (
	SetNone      SetOp = ""
	SetUnion     SetOp = "UNION"
	SetUnionAll  SetOp = "UNION ALL"
	SetIntersect SetOp = "INTERSECT"
	SetExcept    SetOp = "EXCEPT"
)

// SelectStmt represents a SELECT statement. Set-operation chains are a
// linked list: SetOp labels the join to Next, mirroring parse order.
// Trailing ORDER BY / LIMIT after a chain belong to the statement that
// grammatically consumed them. Parens marks members that were
// parenthesized in the source, which matters when a member carries its
// own ORDER BY inside a chain.
type SelectStmt struct {
	NodeInfo
	With       *WithClause    `json:"with,omitempty"`
	Distinct   bool           `json:"distinct,omitempty"`
	DistinctOn []Expr         `json:"distinct_on,omitempty"`
	Columns    []*SelectItem  `json:"columns"`
	From       []*TableSource `json:"from,omitempty"`
	Where      Expr           `json:"where,omitempty"`
	GroupBy    []Expr         `json:"group_by,omitempty"`
	Having     Expr           `json:"having,omitempty"`
	Windows    []*NamedWindow `json:"windows,omitempty"`
	OrderBy    []*OrderByItem `json:"order_by,omitempty"`
	Limit      *LimitClause   `json:"limit,omitempty"`
	SetOp      SetOp          `json:"set_op,omitempty"`
	Next       *SelectStmt    `json:"next,omitempty"`
	Parens     bool           `json:"parens,omitempty"`
}

func (*SelectStmt) stmtNode() {}

// SelectItem is one projection: an expression with an optional alias.
type SelectItem struct {
	Expr  Expr   `json:"expr"`
	Alias string `json:"alias,omitempty"`
}

// WithClause introduces common table expressions.
type WithClause struct {
	Recursive bool   `json:"recursive,omitempty"`
	CTEs      []*CTE `json:"ctes"`
}

// CTE is one WITH entry: name [(columns)] AS (query).
type CTE struct {
	Name    string      `json:"name"`
	Columns []string    `json:"columns,omitempty"`
	Query   *SelectStmt `json:"query"`
}

// JoinType is the join spelling between FROM entries.
type JoinType string

// Join types. JoinNone marks the first entry of a FROM list.
const (
	JoinNone  JoinType = ""
	JoinPlain JoinType = "JOIN"
	JoinInner JoinType = "INNER JOIN"
	JoinLeft  JoinType = "LEFT JOIN"
	JoinRight JoinType = "RIGHT JOIN"
	JoinFull  JoinType = "FULL JOIN"
	JoinCross JoinType = "CROSS JOIN"
)

// TableName is a possibly database-qualified table name.
type TableName struct {
	NodeInfo
	Database string `json:"database,omitempty"`
	Name     string `json:"name"`
}

// TableSource is one entry of a flat FROM/join list: either a named
// table or a derived table, with the join that attached it. The first
// entry has JoinNone; comma-separated tables are JoinNone entries too.
type TableSource struct {
	NodeInfo
	Join     JoinType    `json:"join,omitempty"`
	Natural  bool        `json:"natural,omitempty"`
	Table    *TableName  `json:"table,omitempty"`
	Subquery *SelectStmt `json:"subquery,omitempty"`
	Alias    string      `json:"alias,omitempty"`
	On       Expr        `json:"on,omitempty"`
	Using    []string    `json:"using,omitempty"`
}

// NamedWindow is one WINDOW w AS (...) definition.
type NamedWindow struct {
	Name string      `json:"name"`
	Spec *WindowSpec `json:"spec"`
}

// NullsOrder is the NULLS FIRST/LAST modifier of an ORDER BY item.
type NullsOrder string

// Nulls orderings.
const (
	NullsDefault NullsOrder = ""
	NullsFirst   NullsOrder = "FIRST"
	NullsLast    NullsOrder = "LAST"
)

// OrderByItem is one ORDER BY entry.
type OrderByItem struct {
	Expr  Expr       `json:"expr"`
	Desc  bool       `json:"desc,omitempty"`
	Asc   bool       `json:"asc,omitempty"` // explicit ASC in the source
	Nulls NullsOrder `json:"nulls,omitempty"`
}

// LimitClause is LIMIT count [OFFSET skip], or the mysql comma form
// LIMIT skip, count, which renders back with the comma when Comma is set.
type LimitClause struct {
	Count  Expr `json:"count"`
	Offset Expr `json:"offset,omitempty"`
	Comma  bool `json:"comma,omitempty"`
}
