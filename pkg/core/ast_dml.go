package core

// InsertStmt represents INSERT and mysql REPLACE statements in their
// three body forms: VALUES rows (with or without a column list), a
// SELECT body, or mysql INSERT ... SET assignments.
type InsertStmt struct {
	NodeInfo
	Replace     bool          `json:"replace,omitempty"`
	Ignore      bool          `json:"ignore,omitempty"`
	Into        bool          `json:"into,omitempty"` // INTO was spelled in the source
	Table       *TableName    `json:"table"`
	Partitions  []string      `json:"partitions,omitempty"`
	Columns     []string      `json:"columns,omitempty"`
	Values      [][]Expr      `json:"values,omitempty"`
	Query       *SelectStmt   `json:"query,omitempty"`
	SetItems    []*Assignment `json:"set_items,omitempty"`
	OnDuplicate []*Assignment `json:"on_duplicate,omitempty"`
	OnConflict  *OnConflict   `json:"on_conflict,omitempty"`
	Returning   []*SelectItem `json:"returning,omitempty"`
}

func (*InsertStmt) stmtNode() {}

// Assignment is one column = value pair in SET or ON DUPLICATE KEY
// UPDATE lists.
type Assignment struct {
	Column *ColumnRef `json:"column"`
	Value  Expr       `json:"value"`
}

// OnConflict is the postgres/sqlite upsert clause.
type OnConflict struct {
	Columns   []string      `json:"columns,omitempty"`
	DoNothing bool          `json:"do_nothing,omitempty"`
	Updates   []*Assignment `json:"updates,omitempty"`
	Where     Expr          `json:"where,omitempty"`
}

// UpdateStmt represents UPDATE, including the mysql multi-table form
// (joins in Tables) and the postgres UPDATE ... FROM form.
type UpdateStmt struct {
	NodeInfo
	Tables    []*TableSource `json:"tables"`
	Set       []*Assignment  `json:"set"`
	From      []*TableSource `json:"from,omitempty"`
	Where     Expr           `json:"where,omitempty"`
	OrderBy   []*OrderByItem `json:"order_by,omitempty"`
	Limit     *LimitClause   `json:"limit,omitempty"`
	Returning []*SelectItem  `json:"returning,omitempty"`
}

func (*UpdateStmt) stmtNode() {}

// DeleteStmt represents DELETE. Targets carries the table names listed
// between DELETE and FROM in the mysql multi-table form.
type DeleteStmt struct {
	NodeInfo
	Targets   []*TableName   `json:"targets,omitempty"`
	From      []*TableSource `json:"from"`
	Using     []*TableSource `json:"using,omitempty"`
	Where     Expr           `json:"where,omitempty"`
	OrderBy   []*OrderByItem `json:"order_by,omitempty"`
	Limit     *LimitClause   `json:"limit,omitempty"`
	Returning []*SelectItem  `json:"returning,omitempty"`
}

func (*DeleteStmt) stmtNode() {}
