package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// DDL statement parsing: CREATE, ALTER, DROP, TRUNCATE, RENAME.
//
// Grammar:
//
//	create          → CREATE [OR REPLACE] [TEMPORARY] create_tail
//	create_tail     → TABLE [IF NOT EXISTS] table_name table_body
//	                | [UNIQUE] INDEX [IF NOT EXISTS] name ON table "(" index_cols ")"
//	                | VIEW name ["(" column_list ")"] AS select
//	                | (DATABASE|SCHEMA) [IF NOT EXISTS] name
//	table_body      → LIKE table | "(" table_def ("," table_def)* ")" [table_options] | [AS] select
//	table_def       → column_def | index_def | constraint_def
//	column_def      → name data_type column_option*
//	alter           → ALTER TABLE table_name alter_action ("," alter_action)*
//	drop            → DROP object_kind [IF EXISTS] name ("," name)* [ON table] [CASCADE|RESTRICT]
//	truncate        → TRUNCATE [TABLE] table_name ("," table_name)*
//	rename          → RENAME TABLE table_name TO table_name ("," ...)*

// parseCreate dispatches on the object kind after CREATE.
func (p *Parser) parseCreate() (core.Statement, error) {
	start := p.cur().Pos
	p.next() // consume CREATE

	orReplace := false
	if p.check(token.OR) {
		p.next()
		if err := p.expectKeyword(token.REPLACE); err != nil {
			return nil, err
		}
		orReplace = true
	}
	temporary := p.match(token.TEMPORARY)

	switch p.cur().Type {
	case token.TABLE:
		p.next()
		return p.parseCreateTable(start, temporary)
	case token.UNIQUE:
		p.next()
		if err := p.expectKeyword(token.INDEX); err != nil {
			return nil, err
		}
		return p.parseCreateIndex(start, true)
	case token.INDEX:
		p.next()
		return p.parseCreateIndex(start, false)
	case token.VIEW:
		p.next()
		return p.parseCreateView(start, orReplace)
	case token.DATABASE, token.SCHEMA:
		schema := p.cur().Type == token.SCHEMA
		p.next()
		return p.parseCreateDatabase(start, schema)
	default:
		return nil, p.fail("TABLE", "INDEX", "VIEW", "DATABASE", "SCHEMA")
	}
}

// parseIfNotExists consumes IF NOT EXISTS if present.
func (p *Parser) parseIfNotExists() (bool, error) {
	if !p.check(token.IF) {
		return false, nil
	}
	p.next()
	if err := p.expectKeyword(token.NOT); err != nil {
		return false, err
	}
	if err := p.expectKeyword(token.EXISTS); err != nil {
		return false, err
	}
	return true, nil
}

// parseCreateTable parses the body after CREATE TABLE.
func (p *Parser) parseCreateTable(start token.Position, temporary bool) (core.Statement, error) {
	stmt := &core.CreateTableStmt{Temporary: temporary}

	ine, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	stmt.IfNotExists = ine

	table, err := p.parseTableName()
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	switch {
	case p.match(token.LIKE):
		like, err := p.parseTableName()
		if err != nil {
			return nil, err
		}
		stmt.Like = like

	case p.check(token.LPAREN):
		p.next()
		for {
			def, err := p.parseTableDef()
			if err != nil {
				return nil, err
			}
			stmt.Defs = append(stmt.Defs, def)
			if !p.match(token.COMMA) {
				break
			}
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		opts, err := p.parseTableOptions()
		if err != nil {
			return nil, err
		}
		stmt.Options = opts
		if p.match(token.AS) {
			query, err := p.parseSelectStatement()
			if err != nil {
				return nil, err
			}
			stmt.As = query
		}

	case p.match(token.AS):
		query, err := p.parseSelectStatement()
		if err != nil {
			return nil, err
		}
		stmt.As = query

	case p.checkAny(token.SELECT, token.WITH):
		query, err := p.parseSelectStatement()
		if err != nil {
			return nil, err
		}
		stmt.As = query

	default:
		return nil, p.fail(tokenWant(token.LPAREN), "LIKE", "AS")
	}

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseTableDef parses one entry of a CREATE TABLE body.
func (p *Parser) parseTableDef() (core.TableDef, error) {
	switch p.cur().Type {
	case token.CONSTRAINT:
		p.next()
		name := ""
		if p.checkIdent() && !p.checkAny(token.PRIMARY, token.UNIQUE, token.FOREIGN, token.CHECK) {
			name = p.cur().Literal
			p.next()
		}
		return p.parseConstraintBody(name)

	case token.PRIMARY, token.UNIQUE, token.FOREIGN, token.CHECK:
		return p.parseConstraintBody("")

	case token.KEY, token.INDEX:
		p.next()
		return p.parseIndexDef()

	default:
		return p.parseColumnDef()
	}
}

// parseConstraintBody parses a table constraint after any CONSTRAINT
// name prefix.
func (p *Parser) parseConstraintBody(name string) (*core.ConstraintDef, error) {
	cons := &core.ConstraintDef{Name: name}

	switch {
	case p.match(token.PRIMARY):
		if err := p.expectKeyword(token.KEY); err != nil {
			return nil, err
		}
		cons.Kind = core.ConstraintPrimaryKey
		cols, err := p.parseParenIdentList()
		if err != nil {
			return nil, err
		}
		cons.Columns = cols

	case p.match(token.UNIQUE):
		cons.Kind = core.ConstraintUnique
		// UNIQUE KEY idx_name (cols) and UNIQUE INDEX idx_name (cols)
		if p.checkAny(token.KEY, token.INDEX) {
			p.next()
		}
		if p.checkIdent() {
			cons.Name = p.cur().Literal
			p.next()
		}
		cols, err := p.parseParenIdentList()
		if err != nil {
			return nil, err
		}
		cons.Columns = cols

	case p.match(token.FOREIGN):
		if err := p.expectKeyword(token.KEY); err != nil {
			return nil, err
		}
		cons.Kind = core.ConstraintForeignKey
		if p.checkIdent() {
			cons.Name = p.cur().Literal
			p.next()
		}
		cols, err := p.parseParenIdentList()
		if err != nil {
			return nil, err
		}
		cons.Columns = cols
		ref, err := p.parseReferences()
		if err != nil {
			return nil, err
		}
		cons.Ref = ref

	case p.match(token.CHECK):
		cons.Kind = core.ConstraintCheck
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		check, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		cons.Check = check
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}

	default:
		return nil, p.fail("PRIMARY KEY", "UNIQUE", "FOREIGN KEY", "CHECK")
	}

	return cons, nil
}

// parseIndexDef parses an inline KEY/INDEX definition after the
// keyword.
func (p *Parser) parseIndexDef() (*core.IndexDef, error) {
	idx := &core.IndexDef{}
	if p.checkIdent() {
		idx.Name = p.cur().Literal
		p.next()
	}
	cols, err := p.parseIndexColumns()
	if err != nil {
		return nil, err
	}
	idx.Columns = cols
	return idx, nil
}

// parseIndexColumns parses "(" name [ASC|DESC] ("," ...)* ")".
func (p *Parser) parseIndexColumns() ([]*core.IndexColumn, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var cols []*core.IndexColumn
	for {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		col := &core.IndexColumn{Name: name}
		if p.match(token.DESC) {
			col.Desc = true
		} else {
			p.match(token.ASC)
		}
		cols = append(cols, col)
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return cols, nil
}

// parseColumnDef parses name type option*.
func (p *Parser) parseColumnDef() (*core.ColumnDef, error) {
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	typ, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	col := &core.ColumnDef{Name: name, Type: typ}

	opts, err := p.parseColumnOptions()
	if err != nil {
		return nil, err
	}
	col.Options = opts
	return col, nil
}

// parseColumnOptions parses the option tail of a column definition.
func (p *Parser) parseColumnOptions() ([]*core.ColumnOption, error) {
	var opts []*core.ColumnOption
	for {
		switch {
		case p.check(token.NOT):
			p.next()
			if err := p.expectKeyword(token.NULL); err != nil {
				return nil, err
			}
			opts = append(opts, &core.ColumnOption{Kind: core.ColOptNotNull})

		case p.match(token.NULL):
			opts = append(opts, &core.ColumnOption{Kind: core.ColOptNull})

		case p.match(token.DEFAULT):
			value, err := p.parseExpressionWithPrecedence(precBitOr)
			if err != nil {
				return nil, err
			}
			opts = append(opts, &core.ColumnOption{Kind: core.ColOptDefault, Value: value})

		case p.matchWord("auto_increment"):
			opts = append(opts, &core.ColumnOption{Kind: core.ColOptAutoIncrement})

		case p.match(token.UNIQUE):
			p.match(token.KEY)
			opts = append(opts, &core.ColumnOption{Kind: core.ColOptUnique})

		case p.check(token.PRIMARY):
			p.next()
			if err := p.expectKeyword(token.KEY); err != nil {
				return nil, err
			}
			opts = append(opts, &core.ColumnOption{Kind: core.ColOptPrimaryKey})

		case p.match(token.COLLATE):
			name, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			opts = append(opts, &core.ColumnOption{Kind: core.ColOptCollate, Text: name})

		case p.match(token.COMMENT):
			text, err := p.expect(token.STRING)
			if err != nil {
				return nil, err
			}
			opts = append(opts, &core.ColumnOption{Kind: core.ColOptComment, Text: text.Literal})

		case p.check(token.ON) && p.peek().Type == token.UPDATE:
			p.next()
			p.next()
			value, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			opts = append(opts, &core.ColumnOption{Kind: core.ColOptOnUpdate, Value: value})

		case p.check(token.REFERENCES):
			ref, err := p.parseReferences()
			if err != nil {
				return nil, err
			}
			opts = append(opts, &core.ColumnOption{Kind: core.ColOptReferences, Ref: ref})

		default:
			return opts, nil
		}
	}
}

// parseReferences parses REFERENCES table [(cols)] with its actions.
func (p *Parser) parseReferences() (*core.References, error) {
	if err := p.expectKeyword(token.REFERENCES); err != nil {
		return nil, err
	}
	ref := &core.References{}

	table, err := p.parseTableName()
	if err != nil {
		return nil, err
	}
	ref.Table = table

	if p.check(token.LPAREN) {
		cols, err := p.parseParenIdentList()
		if err != nil {
			return nil, err
		}
		ref.Columns = cols
	}

	for p.check(token.ON) {
		p.next()
		switch {
		case p.match(token.DELETE):
			action, err := p.parseRefAction()
			if err != nil {
				return nil, err
			}
			ref.OnDelete = action
		case p.match(token.UPDATE):
			action, err := p.parseRefAction()
			if err != nil {
				return nil, err
			}
			ref.OnUpdate = action
		default:
			return nil, p.fail("DELETE", "UPDATE")
		}
	}
	return ref, nil
}

// parseRefAction parses one referential action.
func (p *Parser) parseRefAction() (core.RefAction, error) {
	switch {
	case p.match(token.CASCADE):
		return core.RefCascade, nil
	case p.match(token.RESTRICT):
		return core.RefRestrict, nil
	case p.match(token.SET):
		switch {
		case p.match(token.NULL):
			return core.RefSetNull, nil
		case p.match(token.DEFAULT):
			return core.RefSetDefault, nil
		default:
			return "", p.fail("NULL", "DEFAULT")
		}
	case p.checkWord("no"):
		p.next()
		if err := p.expectWord("action"); err != nil {
			return "", err
		}
		return core.RefNoAction, nil
	default:
		return "", p.fail("CASCADE", "RESTRICT", "SET NULL", "SET DEFAULT", "NO ACTION")
	}
}

// parseTableOptions parses the trailing ENGINE/CHARSET/COMMENT options
// of CREATE TABLE.
func (p *Parser) parseTableOptions() ([]*core.TableOption, error) {
	var opts []*core.TableOption
	for {
		switch {
		case p.check(token.DEFAULT):
			// DEFAULT CHARSET / DEFAULT CHARACTER SET / DEFAULT COLLATE
			p.next()
			opt, err := p.parseCharsetOption("DEFAULT ")
			if err != nil {
				return nil, err
			}
			opts = append(opts, opt)

		case p.checkWord("charset") || p.checkWord("character"):
			opt, err := p.parseCharsetOption("")
			if err != nil {
				return nil, err
			}
			opts = append(opts, opt)

		case p.check(token.COLLATE):
			p.next()
			p.match(token.EQ)
			name, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			opts = append(opts, &core.TableOption{Name: "COLLATE", Value: name})

		case p.check(token.COMMENT):
			p.next()
			p.match(token.EQ)
			text, err := p.expect(token.STRING)
			if err != nil {
				return nil, err
			}
			opts = append(opts, &core.TableOption{Name: "COMMENT", Value: text.Literal, Quoted: true})

		case p.check(token.IDENT):
			// Generic name [=] value options: ENGINE, AUTO_INCREMENT,
			// ROW_FORMAT and the rest.
			name := strings.ToUpper(p.cur().Literal)
			p.next()
			p.match(token.EQ)
			opt := &core.TableOption{Name: name}
			switch p.cur().Type {
			case token.NUMBER, token.IDENT:
				opt.Value = p.cur().Literal
				p.next()
			case token.STRING:
				opt.Value = p.cur().Literal
				opt.Quoted = true
				p.next()
			default:
				return nil, p.fail("an option value")
			}
			opts = append(opts, opt)

		default:
			return opts, nil
		}
	}
}

// parseCharsetOption parses CHARSET [=] v and CHARACTER SET [=] v.
func (p *Parser) parseCharsetOption(prefix string) (*core.TableOption, error) {
	name := "CHARSET"
	switch {
	case p.matchWord("charset"):
	case p.matchWord("character"):
		if err := p.expectKeyword(token.SET); err != nil {
			return nil, err
		}
		name = "CHARACTER SET"
	case p.match(token.COLLATE):
		name = "COLLATE"
	default:
		return nil, p.fail("CHARSET", "CHARACTER SET", "COLLATE")
	}
	p.match(token.EQ)
	value, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return &core.TableOption{Name: prefix + name, Value: value}, nil
}

// parseCreateIndex parses the tail of CREATE [UNIQUE] INDEX.
func (p *Parser) parseCreateIndex(start token.Position, unique bool) (core.Statement, error) {
	stmt := &core.CreateIndexStmt{Unique: unique}

	ine, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	stmt.IfNotExists = ine

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	stmt.Name = name

	if err := p.expectKeyword(token.ON); err != nil {
		return nil, err
	}
	table, err := p.parseTableName()
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	cols, err := p.parseIndexColumns()
	if err != nil {
		return nil, err
	}
	stmt.Columns = cols

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseCreateView parses the tail of CREATE [OR REPLACE] VIEW.
func (p *Parser) parseCreateView(start token.Position, orReplace bool) (core.Statement, error) {
	stmt := &core.CreateViewStmt{OrReplace: orReplace}

	view, err := p.parseTableName()
	if err != nil {
		return nil, err
	}
	stmt.View = view

	if p.check(token.LPAREN) {
		cols, err := p.parseParenIdentList()
		if err != nil {
			return nil, err
		}
		stmt.Columns = cols
	}

	if err := p.expectKeyword(token.AS); err != nil {
		return nil, err
	}
	query, err := p.parseSelectStatement()
	if err != nil {
		return nil, err
	}
	stmt.Query = query

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseCreateDatabase parses the tail of CREATE DATABASE/SCHEMA.
func (p *Parser) parseCreateDatabase(start token.Position, schema bool) (core.Statement, error) {
	stmt := &core.CreateDatabaseStmt{Schema: schema}

	ine, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	stmt.IfNotExists = ine

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	stmt.Name = name

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseAlterTable parses ALTER TABLE with its comma-separated actions.
func (p *Parser) parseAlterTable() (core.Statement, error) {
	start := p.cur().Pos
	p.next() // consume ALTER
	if err := p.expectKeyword(token.TABLE); err != nil {
		return nil, err
	}
	stmt := &core.AlterTableStmt{}

	table, err := p.parseTableName()
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	for {
		action, err := p.parseAlterAction()
		if err != nil {
			return nil, err
		}
		stmt.Actions = append(stmt.Actions, action)
		if !p.match(token.COMMA) {
			break
		}
	}

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseAlterAction parses one ALTER TABLE action.
func (p *Parser) parseAlterAction() (*core.AlterAction, error) {
	switch {
	case p.match(token.ADD):
		return p.parseAlterAdd()

	case p.match(token.DROP):
		return p.parseAlterDrop()

	case p.matchWord("modify"):
		p.match(token.COLUMN)
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		action := &core.AlterAction{Kind: core.AlterModifyColumn, Column: col}
		if err := p.parseColumnPosition(action); err != nil {
			return nil, err
		}
		return action, nil

	case p.match(token.CHANGE):
		p.match(token.COLUMN)
		oldName, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		action := &core.AlterAction{Kind: core.AlterChangeColumn, OldName: oldName, Column: col}
		if err := p.parseColumnPosition(action); err != nil {
			return nil, err
		}
		return action, nil

	case p.match(token.RENAME):
		if p.match(token.COLUMN) {
			oldName, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			if err := p.expectKeyword(token.TO); err != nil {
				return nil, err
			}
			newName, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			return &core.AlterAction{Kind: core.AlterRenameColumn, OldName: oldName, NewName: newName}, nil
		}
		p.match(token.TO)
		p.match(token.AS)
		newName, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		return &core.AlterAction{Kind: core.AlterRenameTable, NewName: newName}, nil

	case p.match(token.ALTER):
		p.match(token.COLUMN)
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		switch {
		case p.match(token.SET):
			if err := p.expectKeyword(token.DEFAULT); err != nil {
				return nil, err
			}
			value, err := p.parseExpressionWithPrecedence(precBitOr)
			if err != nil {
				return nil, err
			}
			return &core.AlterAction{Kind: core.AlterSetDefault, OldName: name, Default: value}, nil
		case p.match(token.DROP):
			if err := p.expectKeyword(token.DEFAULT); err != nil {
				return nil, err
			}
			return &core.AlterAction{Kind: core.AlterDropDefault, OldName: name}, nil
		default:
			return nil, p.fail("SET DEFAULT", "DROP DEFAULT")
		}

	default:
		return nil, p.fail("ADD", "DROP", "MODIFY", "CHANGE", "RENAME", "ALTER")
	}
}

// parseAlterAdd parses the tail of ALTER TABLE ... ADD.
func (p *Parser) parseAlterAdd() (*core.AlterAction, error) {
	switch {
	case p.checkAny(token.INDEX, token.KEY):
		p.next()
		idx, err := p.parseIndexDef()
		if err != nil {
			return nil, err
		}
		return &core.AlterAction{Kind: core.AlterAddIndex, Index: idx}, nil

	case p.check(token.CONSTRAINT):
		p.next()
		name := ""
		if p.checkIdent() && !p.checkAny(token.PRIMARY, token.UNIQUE, token.FOREIGN, token.CHECK) {
			name = p.cur().Literal
			p.next()
		}
		def, err := p.parseConstraintBody(name)
		if err != nil {
			return nil, err
		}
		return &core.AlterAction{Kind: core.AlterAddConstraint, Constraint: def}, nil

	case p.checkAny(token.PRIMARY, token.UNIQUE, token.FOREIGN, token.CHECK):
		def, err := p.parseConstraintBody("")
		if err != nil {
			return nil, err
		}
		return &core.AlterAction{Kind: core.AlterAddConstraint, Constraint: def}, nil

	default:
		p.match(token.COLUMN)
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		action := &core.AlterAction{Kind: core.AlterAddColumn, Column: col}
		if err := p.parseColumnPosition(action); err != nil {
			return nil, err
		}
		return action, nil
	}
}

// parseAlterDrop parses the tail of ALTER TABLE ... DROP.
func (p *Parser) parseAlterDrop() (*core.AlterAction, error) {
	switch {
	case p.checkAny(token.INDEX, token.KEY):
		p.next()
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		return &core.AlterAction{Kind: core.AlterDropIndex, OldName: name}, nil

	case p.check(token.PRIMARY):
		p.next()
		if err := p.expectKeyword(token.KEY); err != nil {
			return nil, err
		}
		return &core.AlterAction{Kind: core.AlterDropPrimary}, nil

	case p.check(token.CONSTRAINT):
		p.next()
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		return &core.AlterAction{Kind: core.AlterDropConstraint, OldName: name}, nil

	case p.check(token.FOREIGN):
		p.next()
		if err := p.expectKeyword(token.KEY); err != nil {
			return nil, err
		}
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		return &core.AlterAction{Kind: core.AlterDropConstraint, OldName: name}, nil

	case p.check(token.CHECK):
		p.next()
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		return &core.AlterAction{Kind: core.AlterDropConstraint, OldName: name}, nil

	default:
		p.match(token.COLUMN)
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		return &core.AlterAction{Kind: core.AlterDropColumn, OldName: name}, nil
	}
}

// parseColumnPosition consumes FIRST or AFTER col on column actions.
func (p *Parser) parseColumnPosition(action *core.AlterAction) error {
	switch {
	case p.match(token.FIRST):
		action.First = true
	case p.checkWord("after"):
		p.next()
		name, err := p.parseIdent()
		if err != nil {
			return err
		}
		action.After = name
	}
	return nil
}

// parseDrop parses DROP statements for all object kinds.
func (p *Parser) parseDrop() (core.Statement, error) {
	start := p.cur().Pos
	p.next() // consume DROP
	stmt := &core.DropStmt{}

	switch p.cur().Type {
	case token.TABLE:
		stmt.Kind = core.ObjectTable
	case token.INDEX:
		stmt.Kind = core.ObjectIndex
	case token.VIEW:
		stmt.Kind = core.ObjectView
	case token.DATABASE:
		stmt.Kind = core.ObjectDatabase
	case token.SCHEMA:
		stmt.Kind = core.ObjectSchema
	default:
		return nil, p.fail("TABLE", "INDEX", "VIEW", "DATABASE", "SCHEMA")
	}
	p.next()

	if p.check(token.IF) {
		p.next()
		if err := p.expectKeyword(token.EXISTS); err != nil {
			return nil, err
		}
		stmt.IfExists = true
	}

	for {
		name, err := p.parseTableName()
		if err != nil {
			return nil, err
		}
		stmt.Names = append(stmt.Names, name)
		if !p.match(token.COMMA) {
			break
		}
	}

	// mysql DROP INDEX name ON table
	if stmt.Kind == core.ObjectIndex && p.match(token.ON) {
		table, err := p.parseTableName()
		if err != nil {
			return nil, err
		}
		stmt.OnTable = table
	}

	switch {
	case p.match(token.CASCADE):
		stmt.Behavior = "CASCADE"
	case p.match(token.RESTRICT):
		stmt.Behavior = "RESTRICT"
	}

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseTruncate parses TRUNCATE [TABLE] names.
func (p *Parser) parseTruncate() (core.Statement, error) {
	start := p.cur().Pos
	p.next() // consume TRUNCATE
	stmt := &core.TruncateStmt{}

	if p.match(token.TABLE) {
		stmt.TableKw = true
	}

	for {
		name, err := p.parseTableName()
		if err != nil {
			return nil, err
		}
		stmt.Tables = append(stmt.Tables, name)
		if !p.match(token.COMMA) {
			break
		}
	}

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseRename parses RENAME TABLE a TO b [, c TO d].
func (p *Parser) parseRename() (core.Statement, error) {
	start := p.cur().Pos
	p.next() // consume RENAME
	if err := p.expectKeyword(token.TABLE); err != nil {
		return nil, err
	}
	stmt := &core.RenameStmt{}

	for {
		from, err := p.parseTableName()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword(token.TO); err != nil {
			return nil, err
		}
		to, err := p.parseTableName()
		if err != nil {
			return nil, err
		}
		stmt.Pairs = append(stmt.Pairs, &core.RenamePair{From: from, To: to})
		if !p.match(token.COMMA) {
			break
		}
	}

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}
