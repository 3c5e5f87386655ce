package core

// TableDef is one entry in a CREATE TABLE body: a column definition, an
// index definition, or a table constraint. A single ordered slice keeps
// the source order for rendering.
type TableDef interface {
	tableDefNode()
}

// ColumnDef defines one column: name, type, and ordered options.
type ColumnDef struct {
	Name    string          `json:"name"`
	Type    *DataType       `json:"type"`
	Options []*ColumnOption `json:"options,omitempty"`
}

func (*ColumnDef) tableDefNode() {}

// ColumnOptionKind identifies a column option.
type ColumnOptionKind string

// Column option kinds.
const (
	ColOptNotNull       ColumnOptionKind = "NOT NULL"
	ColOptNull          ColumnOptionKind = "NULL"
	ColOptDefault       ColumnOptionKind = "DEFAULT"
	ColOptAutoIncrement ColumnOptionKind = "AUTO_INCREMENT"
	ColOptUnique        ColumnOptionKind = "UNIQUE"
	ColOptPrimaryKey    ColumnOptionKind = "PRIMARY KEY"
	ColOptCollate       ColumnOptionKind = "COLLATE"
	ColOptComment       ColumnOptionKind = "COMMENT"
	ColOptOnUpdate      ColumnOptionKind = "ON UPDATE"
	ColOptReferences    ColumnOptionKind = "REFERENCES"
)

// ColumnOption is one option on a column definition. Value is set for
// DEFAULT and ON UPDATE, Text for COLLATE and COMMENT, Ref for
// REFERENCES. The UNIQUE option renders as UNIQUE KEY under dialects
// that spell it that way.
type ColumnOption struct {
	Kind  ColumnOptionKind `json:"kind"`
	Value Expr             `json:"value,omitempty"`
	Text  string           `json:"text,omitempty"`
	Ref   *References      `json:"ref,omitempty"`
}

// IndexColumn is one column of an index definition.
type IndexColumn struct {
	Name string `json:"name"`
	Desc bool   `json:"desc,omitempty"`
}

// IndexDef is an inline KEY/INDEX definition in a CREATE TABLE body.
type IndexDef struct {
	Name    string         `json:"name,omitempty"`
	Columns []*IndexColumn `json:"columns"`
}

func (*IndexDef) tableDefNode() {}

// ConstraintKind identifies a table constraint.
type ConstraintKind string

// Constraint kinds.
const (
	ConstraintPrimaryKey ConstraintKind = "PRIMARY KEY"
	ConstraintUnique     ConstraintKind = "UNIQUE"
	ConstraintForeignKey ConstraintKind = "FOREIGN KEY"
	ConstraintCheck      ConstraintKind = "CHECK"
)

// ConstraintDef is a table-level constraint.
type ConstraintDef struct {
	Name    string         `json:"name,omitempty"` // CONSTRAINT name
	Kind    ConstraintKind `json:"kind"`
	Columns []string       `json:"columns,omitempty"`
	Check   Expr           `json:"check,omitempty"`
	Ref     *References    `json:"ref,omitempty"`
}

func (*ConstraintDef) tableDefNode() {}

// RefAction is a referential action of a foreign key.
type RefAction string

// Referential actions.
const (
	RefNoAction   RefAction = ""
	RefCascade    RefAction = "CASCADE"
	RefRestrict   RefAction = "RESTRICT"
	RefSetNull    RefAction = "SET NULL"
	RefSetDefault RefAction = "SET DEFAULT"
)

// References is the REFERENCES part of a foreign key or column option.
type References struct {
	Table    *TableName `json:"table"`
	Columns  []string   `json:"columns,omitempty"`
	OnDelete RefAction  `json:"on_delete,omitempty"`
	OnUpdate RefAction  `json:"on_update,omitempty"`
}

// TableOption is one trailing CREATE TABLE option (ENGINE, CHARSET,
// COLLATE, COMMENT, AUTO_INCREMENT). Quoted marks values rendered as
// string literals.
type TableOption struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Quoted bool   `json:"quoted,omitempty"`
}

// CreateTableStmt represents CREATE TABLE with an inline definition
// body, LIKE another table, or AS a query.
type CreateTableStmt struct {
	NodeInfo
	Temporary   bool           `json:"temporary,omitempty"`
	IfNotExists bool           `json:"if_not_exists,omitempty"`
	Table       *TableName     `json:"table"`
	Defs        []TableDef     `json:"defs,omitempty"`
	Like        *TableName     `json:"like,omitempty"`
	As          *SelectStmt    `json:"as,omitempty"`
	Options     []*TableOption `json:"options,omitempty"`
}

func (*CreateTableStmt) stmtNode() {}

// CreateIndexStmt represents CREATE [UNIQUE] INDEX ... ON table (cols).
type CreateIndexStmt struct {
	NodeInfo
	Unique      bool           `json:"unique,omitempty"`
	IfNotExists bool           `json:"if_not_exists,omitempty"`
	Name        string         `json:"name"`
	Table       *TableName     `json:"table"`
	Columns     []*IndexColumn `json:"columns"`
}

func (*CreateIndexStmt) stmtNode() {}

// CreateViewStmt represents CREATE [OR REPLACE] VIEW ... AS query.
type CreateViewStmt struct {
	NodeInfo
	OrReplace bool        `json:"or_replace,omitempty"`
	View      *TableName  `json:"view"`
	Columns   []string    `json:"columns,omitempty"`
	Query     *SelectStmt `json:"query"`
}

func (*CreateViewStmt) stmtNode() {}

// CreateDatabaseStmt represents CREATE DATABASE/SCHEMA.
type CreateDatabaseStmt struct {
	NodeInfo
	Schema      bool   `json:"schema,omitempty"` // spelled SCHEMA
	IfNotExists bool   `json:"if_not_exists,omitempty"`
	Name        string `json:"name"`
}

func (*CreateDatabaseStmt) stmtNode() {}

// AlterActionKind identifies one ALTER TABLE action.
type AlterActionKind string

// Alter action kinds.
const (
	AlterAddColumn      AlterActionKind = "ADD COLUMN"
	AlterDropColumn     AlterActionKind = "DROP COLUMN"
	AlterModifyColumn   AlterActionKind = "MODIFY COLUMN"
	AlterChangeColumn   AlterActionKind = "CHANGE COLUMN"
	AlterRenameTable    AlterActionKind = "RENAME TO"
	AlterRenameColumn   AlterActionKind = "RENAME COLUMN"
	AlterAddIndex       AlterActionKind = "ADD INDEX"
	AlterAddConstraint  AlterActionKind = "ADD CONSTRAINT"
	AlterDropIndex      AlterActionKind = "DROP INDEX"
	AlterDropConstraint AlterActionKind = "DROP CONSTRAINT"
	AlterDropPrimary    AlterActionKind = "DROP PRIMARY KEY"
	AlterSetDefault     AlterActionKind = "SET DEFAULT"
	AlterDropDefault    AlterActionKind = "DROP DEFAULT"
)

// AlterAction is one comma-separated action of an ALTER TABLE. The
// populated fields depend on Kind: Column for ADD/MODIFY/CHANGE,
// OldName/NewName for renames and drops, Index and Constraint for the
// ADD INDEX/CONSTRAINT forms, Default for ALTER COLUMN ... SET DEFAULT.
type AlterAction struct {
	Kind       AlterActionKind `json:"kind"`
	Column     *ColumnDef      `json:"column,omitempty"`
	OldName    string          `json:"old_name,omitempty"`
	NewName    string          `json:"new_name,omitempty"`
	First      bool            `json:"first,omitempty"`
	After      string          `json:"after,omitempty"`
	Index      *IndexDef       `json:"index,omitempty"`
	Constraint *ConstraintDef  `json:"constraint,omitempty"`
	Default    Expr            `json:"default,omitempty"`
}

// AlterTableStmt represents ALTER TABLE with its action list.
type AlterTableStmt struct {
	NodeInfo
	Table   *TableName     `json:"table"`
	Actions []*AlterAction `json:"actions"`
}

func (*AlterTableStmt) stmtNode() {}

// ObjectKind is the resource kind of a DROP statement.
type ObjectKind string

// Droppable object kinds.
const (
	ObjectTable    ObjectKind = "TABLE"
	ObjectIndex    ObjectKind = "INDEX"
	ObjectView     ObjectKind = "VIEW"
	ObjectDatabase ObjectKind = "DATABASE"
	ObjectSchema   ObjectKind = "SCHEMA"
)

// DropStmt represents DROP <kind> names. OnTable carries the table of
// the mysql DROP INDEX name ON table form.
type DropStmt struct {
	NodeInfo
	Kind     ObjectKind   `json:"kind"`
	IfExists bool         `json:"if_exists,omitempty"`
	Names    []*TableName `json:"names"`
	OnTable  *TableName   `json:"on_table,omitempty"`
	Behavior string       `json:"behavior,omitempty"` // CASCADE or RESTRICT
}

func (*DropStmt) stmtNode() {}

// TruncateStmt represents TRUNCATE [TABLE] names.
type TruncateStmt struct {
	NodeInfo
	TableKw bool         `json:"table_kw,omitempty"` // TABLE was spelled
	Tables  []*TableName `json:"tables"`
}

func (*TruncateStmt) stmtNode() {}

// RenamePair is one a TO b entry of a RENAME TABLE statement.
type RenamePair struct {
	From *TableName `json:"from"`
	To   *TableName `json:"to"`
}

// RenameStmt represents RENAME TABLE a TO b [, c TO d].
type RenameStmt struct {
	NodeInfo
	Pairs []*RenamePair `json:"pairs"`
}

func (*RenameStmt) stmtNode() {}
