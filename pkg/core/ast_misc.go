package core

// UseStmt represents USE database.
type UseStmt struct {
	NodeInfo
	Database string `json:"database"`
}

func (*UseStmt) stmtNode() {}

// SetItem is one name = value entry of a SET statement. Name keeps the
// variable spelling verbatim, including @ or @@ prefixes.
type SetItem struct {
	Name  string `json:"name"`
	Value Expr   `json:"value"`
}

// SetStmt represents SET [GLOBAL|SESSION] assignments and SET NAMES.
type SetStmt struct {
	NodeInfo
	Scope string     `json:"scope,omitempty"` // GLOBAL or SESSION
	Items []*SetItem `json:"items"`
}

func (*SetStmt) stmtNode() {}

// ShowStmt represents SHOW <subject> with its optional qualifiers.
// Subject is the keyword sequence after SHOW (TABLES, DATABASES,
// COLUMNS, INDEX, CREATE TABLE, STATUS, VARIABLES).
type ShowStmt struct {
	NodeInfo
	Subject string     `json:"subject"`
	From    *TableName `json:"from,omitempty"`
	Like    Expr       `json:"like,omitempty"`
	Where   Expr       `json:"where,omitempty"`
}

func (*ShowStmt) stmtNode() {}

// GrantStmt represents GRANT and REVOKE privilege statements.
type GrantStmt struct {
	NodeInfo
	Revoke      bool       `json:"revoke,omitempty"`
	Privileges  []string   `json:"privileges"`
	ObjectType  string     `json:"object_type,omitempty"` // TABLE when spelled
	Object      *TableName `json:"object"`
	Grantees    []string   `json:"grantees"`
	GrantOption bool       `json:"grant_option,omitempty"`
}

func (*GrantStmt) stmtNode() {}

// DeclareVar is one variable of a DECLARE statement.
type DeclareVar struct {
	Name    string    `json:"name"`
	Type    *DataType `json:"type"`
	Default Expr      `json:"default,omitempty"`
}

// DeclareStmt represents DECLARE @name TYPE [= expr][, ...].
type DeclareStmt struct {
	NodeInfo
	Vars []*DeclareVar `json:"vars"`
}

func (*DeclareStmt) stmtNode() {}

// CondBranch is one IF/ELSEIF arm.
type CondBranch struct {
	Condition Expr        `json:"condition"`
	Body      []Statement `json:"body"`
}

// IfStmt represents the procedural IF ... THEN ... [ELSEIF ...]
// [ELSE ...] END IF statement.
type IfStmt struct {
	NodeInfo
	Branches []*CondBranch `json:"branches"`
	Else     []Statement   `json:"else,omitempty"`
}

func (*IfStmt) stmtNode() {}

// ForStmt represents the procedural FOR var IN (query) DO ... END FOR
// loop.
type ForStmt struct {
	NodeInfo
	Variable string      `json:"variable"`
	Query    *SelectStmt `json:"query"`
	Body     []Statement `json:"body"`
}

func (*ForStmt) stmtNode() {}

// CallStmt represents CALL procedure(args).
type CallStmt struct {
	NodeInfo
	Proc string `json:"proc"`
	Args []Expr `json:"args,omitempty"`
}

func (*CallStmt) stmtNode() {}

// TxKind identifies a transaction-control statement.
type TxKind string

// Transaction statement kinds.
const (
	TxBegin     TxKind = "BEGIN"
	TxStart     TxKind = "START TRANSACTION"
	TxCommit    TxKind = "COMMIT"
	TxRollback  TxKind = "ROLLBACK"
	TxSavepoint TxKind = "SAVEPOINT"
	TxRelease   TxKind = "RELEASE SAVEPOINT"
)

// TransactionStmt represents BEGIN/START TRANSACTION/COMMIT/ROLLBACK/
// SAVEPOINT/RELEASE SAVEPOINT. Modifier keeps an explicit WORK or
// TRANSACTION keyword; Savepoint names the savepoint where relevant.
type TransactionStmt struct {
	NodeInfo
	Kind      TxKind `json:"kind"`
	Modifier  string `json:"modifier,omitempty"`
	Savepoint string `json:"savepoint,omitempty"`
}

func (*TransactionStmt) stmtNode() {}

// CommentStmt represents COMMENT ON <type> <name> IS 'text' | NULL.
// Name holds the dotted parts of the target; a nil Text means IS NULL.
type CommentStmt struct {
	NodeInfo
	ObjectType string   `json:"object_type"` // TABLE, COLUMN, or VIEW
	Name       []string `json:"name"`
	Text       *string  `json:"text"`
}

func (*CommentStmt) stmtNode() {}

// ExplainStmt represents EXPLAIN [ANALYZE] statement.
type ExplainStmt struct {
	NodeInfo
	Analyze bool      `json:"analyze,omitempty"`
	Target  Statement `json:"target"`
}

func (*ExplainStmt) stmtNode() {}

// DescribeStmt represents DESC/DESCRIBE table.
type DescribeStmt struct {
	NodeInfo
	Table *TableName `json:"table"`
}

func (*DescribeStmt) stmtNode() {}

// LockItem is one table of a LOCK TABLES statement.
type LockItem struct {
	Table *TableName `json:"table"`
	Alias string     `json:"alias,omitempty"`
	Mode  string     `json:"mode"` // READ or WRITE
}

// LockStmt represents LOCK TABLES t [AS a] READ|WRITE, ...
type LockStmt struct {
	NodeInfo
	Items []*LockItem `json:"items"`
}

func (*LockStmt) stmtNode() {}

// UnlockStmt represents UNLOCK TABLES.
type UnlockStmt struct {
	NodeInfo
}

func (*UnlockStmt) stmtNode() {}
