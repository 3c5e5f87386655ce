package core

import "github.com/leapstack-labs/sqlbridge/pkg/token"

// ---------- References ----------

// ColumnRef represents a column reference, optionally qualified by a
// table (or alias) and a database: a, t.a, db.t.a.
type ColumnRef struct {
	NodeInfo
	Database string `json:"database,omitempty"`
	Table    string `json:"table,omitempty"`
	Column   string `json:"column"`
}

func (*ColumnRef) exprNode() {}

// StarExpr represents *, t.*, or db.t.* in a projection.
type StarExpr struct {
	NodeInfo
	Database string `json:"database,omitempty"`
	Table    string `json:"table,omitempty"`
}

func (*StarExpr) exprNode() {}

// ---------- Literals ----------

// NumberLit is a numeric literal that fits native precision. Text holds
// the verbatim source spelling, which the renderer reproduces.
type NumberLit struct {
	NodeInfo
	Text  string  `json:"text"`
	IsInt bool    `json:"is_int,omitempty"`
	Int   int64   `json:"int,omitempty"`
	Float float64 `json:"float,omitempty"`
}

func (*NumberLit) exprNode() {}

// BigintLit is an integer literal whose digit string exceeds int64
// precision. Digits holds the exact decimal digit string; it is never
// converted through a float and round-trips verbatim.
type BigintLit struct {
	NodeInfo
	Digits string `json:"digits"`
}

func (*BigintLit) exprNode() {}

// StringLit is a string literal. Value is the decoded text; the
// renderer re-applies quoting and escaping for the target dialect.
type StringLit struct {
	NodeInfo
	Value string `json:"value"`
}

func (*StringLit) exprNode() {}

// BoolLit is TRUE or FALSE.
type BoolLit struct {
	NodeInfo
	Value bool `json:"value"`
}

func (*BoolLit) exprNode() {}

// NullLit is NULL.
type NullLit struct {
	NodeInfo
}

func (*NullLit) exprNode() {}

// HexLit is a hexadecimal literal, x'1A2B' or 0x1A2B, kept verbatim.
type HexLit struct {
	NodeInfo
	Text string `json:"text"`
}

func (*HexLit) exprNode() {}

// BitLit is a bit-string literal, b'0101' or 0b0101, kept verbatim.
type BitLit struct {
	NodeInfo
	Text string `json:"text"`
}

func (*BitLit) exprNode() {}

// ParamStyle identifies the placeholder syntax a parameter used.
type ParamStyle int

// Parameter placeholder styles.
const (
	ParamQuestion ParamStyle = iota // ?
	ParamNamed                      // :name
	ParamNumbered                   // $1
	ParamDollar                     // $name
)

// ParamExpr is a parameter placeholder.
type ParamExpr struct {
	NodeInfo
	Style ParamStyle `json:"style"`
	Name  string     `json:"name,omitempty"`
	Index int        `json:"index,omitempty"`
}

func (*ParamExpr) exprNode() {}

// ---------- Operators ----------

// BinaryExpr represents a binary operation. Parens records that the
// source parenthesized this node; the renderer honors the flag in
// addition to precedence so deliberate parentheses survive round trips.
type BinaryExpr struct {
	NodeInfo
	Left   Expr            `json:"left"`
	Op     token.TokenType `json:"op"`
	Right  Expr            `json:"right"`
	Parens bool            `json:"parens,omitempty"`
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr represents a prefix operation: -x, +x, !x, ~x, NOT x.
type UnaryExpr struct {
	NodeInfo
	Op     token.TokenType `json:"op"`
	Expr   Expr            `json:"expr"`
	Parens bool            `json:"parens,omitempty"`
}

func (*UnaryExpr) exprNode() {}

// ExprList is a parenthesized list of expressions used as a value: the
// right side of IN, a row constructor (a, b), or a VALUES tuple. A
// parenthesized single expression without a trailing comma is not an
// ExprList; it collapses to the inner expression with Parens set.
type ExprList struct {
	NodeInfo
	Items []Expr `json:"items"`
}

func (*ExprList) exprNode() {}

// ---------- Predicates ----------

// InExpr represents expr [NOT] IN (values) or expr [NOT] IN (subquery).
type InExpr struct {
	NodeInfo
	Expr   Expr        `json:"expr"`
	Not    bool        `json:"not,omitempty"`
	Values []Expr      `json:"values,omitempty"`
	Query  *SelectStmt `json:"query,omitempty"`
}

func (*InExpr) exprNode() {}

// BetweenExpr represents expr [NOT] BETWEEN low AND high.
type BetweenExpr struct {
	NodeInfo
	Expr Expr `json:"expr"`
	Not  bool `json:"not,omitempty"`
	Low  Expr `json:"low"`
	High Expr `json:"high"`
}

func (*BetweenExpr) exprNode() {}

// IsNullExpr represents expr IS [NOT] NULL.
type IsNullExpr struct {
	NodeInfo
	Expr Expr `json:"expr"`
	Not  bool `json:"not,omitempty"`
}

func (*IsNullExpr) exprNode() {}

// IsBoolExpr represents expr IS [NOT] TRUE/FALSE.
type IsBoolExpr struct {
	NodeInfo
	Expr  Expr `json:"expr"`
	Not   bool `json:"not,omitempty"`
	Value bool `json:"value"`
}

func (*IsBoolExpr) exprNode() {}

// LikeExpr represents pattern-matching predicates: [NOT] LIKE, ILIKE,
// REGEXP, RLIKE, and SIMILAR TO, distinguished by Op.
type LikeExpr struct {
	NodeInfo
	Expr    Expr            `json:"expr"`
	Not     bool            `json:"not,omitempty"`
	Op      token.TokenType `json:"op"`
	Pattern Expr            `json:"pattern"`
	Escape  Expr            `json:"escape,omitempty"`
}

func (*LikeExpr) exprNode() {}

// ExistsExpr represents [NOT] EXISTS (subquery).
type ExistsExpr struct {
	NodeInfo
	Not   bool        `json:"not,omitempty"`
	Query *SelectStmt `json:"query"`
}

func (*ExistsExpr) exprNode() {}

// SubqueryExpr is a parenthesized SELECT used as a scalar value.
type SubqueryExpr struct {
	NodeInfo
	Query *SelectStmt `json:"query"`
}

func (*SubqueryExpr) exprNode() {}

// ---------- Compound expressions ----------

// CaseExpr represents both CASE forms: the simple form carries an
// Operand, the searched form leaves it nil.
type CaseExpr struct {
	NodeInfo
	Operand Expr          `json:"operand,omitempty"`
	Whens   []*WhenClause `json:"whens"`
	Else    Expr          `json:"else,omitempty"`
}

func (*CaseExpr) exprNode() {}

// WhenClause is one WHEN condition THEN result arm.
type WhenClause struct {
	Condition Expr `json:"condition"`
	Result    Expr `json:"result"`
}

// CastExpr represents CAST(expr AS type). Shorthand marks the
// postgres-style expr::type spelling, which renders back the same way.
type CastExpr struct {
	NodeInfo
	Expr      Expr      `json:"expr"`
	Type      *DataType `json:"type"`
	Shorthand bool      `json:"shorthand,omitempty"`
}

func (*CastExpr) exprNode() {}

// CollateExpr represents expr COLLATE collation.
type CollateExpr struct {
	NodeInfo
	Expr      Expr   `json:"expr"`
	Collation string `json:"collation"`
}

func (*CollateExpr) exprNode() {}

// FuncCall represents a function or aggregate call, with an optional
// OVER clause for window functions. NoParens marks the niladic keyword
// functions (CURRENT_DATE and friends) that render without parentheses.
// OrderBy and Separator cover the GROUP_CONCAT-style aggregate tail.
type FuncCall struct {
	NodeInfo
	Name      string         `json:"name"`
	Distinct  bool           `json:"distinct,omitempty"`
	Star      bool           `json:"star,omitempty"` // COUNT(*)
	Args      []Expr         `json:"args,omitempty"`
	NoParens  bool           `json:"no_parens,omitempty"`
	OrderBy   []*OrderByItem `json:"order_by,omitempty"`
	Separator Expr           `json:"separator,omitempty"`
	Over      *WindowSpec    `json:"over,omitempty"`
}

func (*FuncCall) exprNode() {}

// WindowSpec is the body of an OVER clause. Name alone means a
// reference to a named window (OVER w).
type WindowSpec struct {
	Name        string         `json:"name,omitempty"`
	PartitionBy []Expr         `json:"partition_by,omitempty"`
	OrderBy     []*OrderByItem `json:"order_by,omitempty"`
	Frame       *FrameSpec     `json:"frame,omitempty"`
}

// FrameUnit is the window frame unit.
type FrameUnit string

// Frame units.
const (
	FrameRows   FrameUnit = "ROWS"
	FrameRange  FrameUnit = "RANGE"
	FrameGroups FrameUnit = "GROUPS"
)

// FrameSpec is a window frame. End is nil for the single-bound form.
type FrameSpec struct {
	Unit  FrameUnit   `json:"unit"`
	Start *FrameBound `json:"start"`
	End   *FrameBound `json:"end,omitempty"`
}

// FrameBoundKind is the kind of a window frame bound.
type FrameBoundKind string

// Frame bound kinds.
const (
	BoundUnboundedPreceding FrameBoundKind = "UNBOUNDED PRECEDING"
	BoundUnboundedFollowing FrameBoundKind = "UNBOUNDED FOLLOWING"
	BoundCurrentRow         FrameBoundKind = "CURRENT ROW"
	BoundExprPreceding      FrameBoundKind = "PRECEDING"
	BoundExprFollowing      FrameBoundKind = "FOLLOWING"
)

// FrameBound is one bound of a window frame. Offset is set for the
// N PRECEDING / N FOLLOWING kinds.
type FrameBound struct {
	Kind   FrameBoundKind `json:"kind"`
	Offset Expr           `json:"offset,omitempty"`
}

// ArrayExpr represents an ARRAY[...] literal.
type ArrayExpr struct {
	NodeInfo
	Elements []Expr `json:"elements"`
}

func (*ArrayExpr) exprNode() {}

// IndexExpr represents a subscript: expr[index].
type IndexExpr struct {
	NodeInfo
	Expr  Expr `json:"expr"`
	Index Expr `json:"index"`
}

func (*IndexExpr) exprNode() {}

// IntervalExpr represents INTERVAL value [unit].
type IntervalExpr struct {
	NodeInfo
	Value Expr   `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

func (*IntervalExpr) exprNode() {}
