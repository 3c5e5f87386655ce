package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Session, access control, procedural, and utility statements.
//
// Grammar:
//
//	use         → USE database
//	set         → SET [GLOBAL|SESSION] set_item ("," set_item)*
//	set_item    → NAMES value | name ("="|":="|TO) value
//	lock        → LOCK TABLES table [AS alias] (READ|WRITE) ("," ...)*
//	unlock      → UNLOCK TABLES
//	show        → SHOW [FULL|GLOBAL|SESSION] subject [FROM|IN table] [LIKE expr] [WHERE expr]
//	grant       → GRANT privileges ON [TABLE] object TO grantees [WITH GRANT OPTION]
//	revoke      → REVOKE privileges ON [TABLE] object FROM grantees
//	declare     → DECLARE name type [(= | DEFAULT) expr] ("," ...)*
//	if          → IF expr THEN body (ELSEIF expr THEN body)* [ELSE body] END IF
//	for         → FOR name IN query DO body END FOR
//	call        → CALL proc ["(" expr_list ")"]
//	transaction → BEGIN | START TRANSACTION | COMMIT | ROLLBACK [TO [SAVEPOINT] name]
//	            | SAVEPOINT name | RELEASE SAVEPOINT name
//	comment_on  → COMMENT ON (TABLE|COLUMN|VIEW) name IS (string|NULL)
//	explain     → EXPLAIN [ANALYZE] statement
//	describe    → (DESCRIBE|DESC) table

// parseUse parses USE database.
func (p *Parser) parseUse() (core.Statement, error) {
	start := p.cur().Pos
	p.next() // consume USE
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	stmt := &core.UseStmt{Database: name}
	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseSet parses SET statements, including SET NAMES and scoped
// variable assignments.
func (p *Parser) parseSet() (core.Statement, error) {
	start := p.cur().Pos
	p.next() // consume SET
	stmt := &core.SetStmt{}

	switch {
	case p.match(token.GLOBAL):
		stmt.Scope = "GLOBAL"
	case p.match(token.SESSION):
		stmt.Scope = "SESSION"
	}

	for {
		item, err := p.parseSetItem()
		if err != nil {
			return nil, err
		}
		stmt.Items = append(stmt.Items, item)
		if !p.match(token.COMMA) {
			break
		}
	}

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseSetItem parses one assignment of a SET statement.
func (p *Parser) parseSetItem() (*core.SetItem, error) {
	if p.checkWord("names") && p.peek().Type != token.EQ {
		p.next()
		value, err := p.parseSetValue()
		if err != nil {
			return nil, err
		}
		return &core.SetItem{Name: "NAMES", Value: value}, nil
	}

	if !p.checkIdent() {
		return nil, p.fail("a variable name")
	}
	name := p.cur().Literal
	p.next()

	if !p.match(token.EQ) && !p.match(token.TO) {
		return nil, p.fail(`"="`)
	}
	value, err := p.parseSetValue()
	if err != nil {
		return nil, err
	}
	return &core.SetItem{Name: name, Value: value}, nil
}

// parseSetValue parses the right side of a SET assignment. ON and OFF
// style keyword values become plain references.
func (p *Parser) parseSetValue() (core.Expr, error) {
	if p.check(token.ON) {
		ref := &core.ColumnRef{Column: p.cur().Literal}
		ref.SetSpan(token.Span{Start: p.cur().Pos, End: p.cur().End})
		p.next()
		return ref, nil
	}
	return p.parseExpressionWithPrecedence(precBitOr)
}

// parseLock parses LOCK TABLES with its item list.
func (p *Parser) parseLock() (core.Statement, error) {
	start := p.cur().Pos
	p.next() // consume LOCK
	if err := p.expectKeyword(token.TABLES); err != nil {
		return nil, err
	}
	stmt := &core.LockStmt{}

	for {
		item := &core.LockItem{}
		table, err := p.parseTableName()
		if err != nil {
			return nil, err
		}
		item.Table = table

		if p.match(token.AS) {
			alias, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			item.Alias = alias
		} else if p.checkIdent() {
			item.Alias = p.cur().Literal
			p.next()
		}

		switch {
		case p.match(token.READ):
			item.Mode = "READ"
		case p.match(token.WRITE):
			item.Mode = "WRITE"
		default:
			return nil, p.fail("READ", "WRITE")
		}

		stmt.Items = append(stmt.Items, item)
		if !p.match(token.COMMA) {
			break
		}
	}

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseUnlock parses UNLOCK TABLES.
func (p *Parser) parseUnlock() (core.Statement, error) {
	start := p.cur().Pos
	p.next() // consume UNLOCK
	if err := p.expectKeyword(token.TABLES); err != nil {
		return nil, err
	}
	stmt := &core.UnlockStmt{}
	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseShow parses SHOW statements. The subject is kept as the keyword
// text after SHOW; FROM/IN, LIKE and WHERE tails are parsed when
// present.
func (p *Parser) parseShow() (core.Statement, error) {
	start := p.cur().Pos
	p.next() // consume SHOW
	stmt := &core.ShowStmt{}

	var words []string
	switch {
	case p.match(token.FULL):
		words = append(words, "FULL")
	case p.match(token.GLOBAL):
		words = append(words, "GLOBAL")
	case p.match(token.SESSION):
		words = append(words, "SESSION")
	}

	switch {
	case p.match(token.CREATE):
		words = append(words, "CREATE")
		switch p.cur().Type {
		case token.TABLE, token.VIEW, token.DATABASE, token.SCHEMA:
			words = append(words, p.cur().Type.String())
			p.next()
		default:
			return nil, p.fail("TABLE", "VIEW", "DATABASE", "SCHEMA")
		}
		table, err := p.parseTableName()
		if err != nil {
			return nil, err
		}
		stmt.From = table

	case p.match(token.TABLES):
		words = append(words, "TABLES")
	case p.match(token.INDEX):
		words = append(words, "INDEX")
	case p.check(token.IDENT):
		// TABLES, DATABASES, COLUMNS, STATUS, VARIABLES and friends.
		words = append(words, strings.ToUpper(p.cur().Literal))
		p.next()
	default:
		return nil, p.fail("a SHOW subject")
	}
	stmt.Subject = strings.Join(words, " ")

	if stmt.From == nil && (p.match(token.FROM) || p.match(token.IN)) {
		table, err := p.parseTableName()
		if err != nil {
			return nil, err
		}
		stmt.From = table
	}
	if p.match(token.LIKE) {
		like, err := p.parseExpressionWithPrecedence(precBitOr)
		if err != nil {
			return nil, err
		}
		stmt.Like = like
	}
	if p.match(token.WHERE) {
		where, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseGrant parses GRANT and REVOKE.
func (p *Parser) parseGrant() (core.Statement, error) {
	start := p.cur().Pos
	stmt := &core.GrantStmt{Revoke: p.cur().Type == token.REVOKE}
	p.next() // consume GRANT or REVOKE

	for {
		priv, err := p.parsePrivilege()
		if err != nil {
			return nil, err
		}
		stmt.Privileges = append(stmt.Privileges, priv)
		if !p.match(token.COMMA) {
			break
		}
	}

	if err := p.expectKeyword(token.ON); err != nil {
		return nil, err
	}
	if p.match(token.TABLE) {
		stmt.ObjectType = "TABLE"
	}
	object, err := p.parseGrantObject()
	if err != nil {
		return nil, err
	}
	stmt.Object = object

	if stmt.Revoke {
		if err := p.expectKeyword(token.FROM); err != nil {
			return nil, err
		}
	} else {
		if err := p.expectKeyword(token.TO); err != nil {
			return nil, err
		}
	}
	for {
		grantee, err := p.parseGrantee()
		if err != nil {
			return nil, err
		}
		stmt.Grantees = append(stmt.Grantees, grantee)
		if !p.match(token.COMMA) {
			break
		}
	}

	if p.match(token.WITH) {
		if err := p.expectKeyword(token.GRANT); err != nil {
			return nil, err
		}
		if err := p.expectWord("option"); err != nil {
			return nil, err
		}
		stmt.GrantOption = true
	}

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parsePrivilege reads one privilege name, joining multi-word forms
// like ALL PRIVILEGES.
func (p *Parser) parsePrivilege() (string, error) {
	var words []string
	for !p.checkAny(token.COMMA, token.ON, token.EOF) {
		t := p.cur()
		switch {
		case t.Type == token.IDENT:
			words = append(words, strings.ToUpper(t.Literal))
		case token.IsKeyword(t.Type):
			words = append(words, t.Type.String())
		default:
			if len(words) == 0 {
				return "", p.fail("a privilege")
			}
			return strings.Join(words, " "), nil
		}
		p.next()
	}
	if len(words) == 0 {
		return "", p.fail("a privilege")
	}
	return strings.Join(words, " "), nil
}

// parseGrantObject parses the privilege object, allowing * and db.*
// forms.
func (p *Parser) parseGrantObject() (*core.TableName, error) {
	name := &core.TableName{}
	switch {
	case p.match(token.STAR):
		name.Name = "*"
	case p.checkIdent():
		name.Name = p.cur().Literal
		p.next()
	default:
		return nil, p.fail("a table name", `"*"`)
	}
	if p.match(token.DOT) {
		name.Database = name.Name
		switch {
		case p.match(token.STAR):
			name.Name = "*"
		case p.checkIdent():
			name.Name = p.cur().Literal
			p.next()
		default:
			return nil, p.fail("a table name", `"*"`)
		}
	}
	return name, nil
}

// parseGrantee reads one grantee, merging user@host spellings back
// into a single string.
func (p *Parser) parseGrantee() (string, error) {
	var sb strings.Builder
	switch {
	case p.check(token.STRING):
		sb.WriteString("'" + strings.ReplaceAll(p.cur().Literal, "'", "''") + "'")
		p.next()
	case p.checkIdent():
		sb.WriteString(p.cur().Literal)
		p.next()
	default:
		return "", p.fail("a grantee")
	}
	if p.check(token.IDENT) && strings.HasPrefix(p.cur().Literal, "@") {
		sb.WriteString(p.cur().Literal)
		p.next()
		if p.check(token.STRING) {
			sb.WriteString("'" + strings.ReplaceAll(p.cur().Literal, "'", "''") + "'")
			p.next()
		}
	}
	return sb.String(), nil
}

// parseDeclare parses DECLARE with one or more variables.
func (p *Parser) parseDeclare() (core.Statement, error) {
	start := p.cur().Pos
	p.next() // consume DECLARE
	stmt := &core.DeclareStmt{}

	for {
		if !p.checkIdent() {
			return nil, p.fail("a variable name")
		}
		v := &core.DeclareVar{Name: p.cur().Literal}
		p.next()

		typ, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		v.Type = typ

		if p.match(token.EQ) || p.match(token.DEFAULT) {
			value, err := p.parseExpressionWithPrecedence(precBitOr)
			if err != nil {
				return nil, err
			}
			v.Default = value
		}

		stmt.Vars = append(stmt.Vars, v)
		if !p.match(token.COMMA) {
			break
		}
	}

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseIf parses the procedural IF ... END IF statement.
func (p *Parser) parseIf() (core.Statement, error) {
	start := p.cur().Pos
	p.next() // consume IF
	stmt := &core.IfStmt{}

	for {
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword(token.THEN); err != nil {
			return nil, err
		}
		body, err := p.parseProcBody()
		if err != nil {
			return nil, err
		}
		stmt.Branches = append(stmt.Branches, &core.CondBranch{Condition: cond, Body: body})
		if !p.match(token.ELSEIF) {
			break
		}
	}

	if p.match(token.ELSE) {
		body, err := p.parseProcBody()
		if err != nil {
			return nil, err
		}
		stmt.Else = body
	}

	if err := p.expectKeyword(token.END); err != nil {
		return nil, err
	}
	if err := p.expectKeyword(token.IF); err != nil {
		return nil, err
	}

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseFor parses the procedural FOR ... IN query DO ... END FOR loop.
func (p *Parser) parseFor() (core.Statement, error) {
	start := p.cur().Pos
	p.next() // consume FOR
	stmt := &core.ForStmt{}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	stmt.Variable = name

	if err := p.expectKeyword(token.IN); err != nil {
		return nil, err
	}
	query, err := p.parseSelectStatement()
	if err != nil {
		return nil, err
	}
	stmt.Query = query

	if err := p.expectKeyword(token.DO); err != nil {
		return nil, err
	}
	body, err := p.parseProcBody()
	if err != nil {
		return nil, err
	}
	stmt.Body = body

	if err := p.expectKeyword(token.END); err != nil {
		return nil, err
	}
	if err := p.expectKeyword(token.FOR); err != nil {
		return nil, err
	}

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseProcBody parses semicolon-terminated statements until an
// ELSEIF, ELSE or END closes the enclosing block.
func (p *Parser) parseProcBody() ([]core.Statement, error) {
	var body []core.Statement
	for {
		for p.match(token.SEMI) {
		}
		if p.checkAny(token.ELSEIF, token.ELSE, token.END, token.EOF) {
			return body, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		if !p.check(token.SEMI) {
			if p.checkAny(token.ELSEIF, token.ELSE, token.END) {
				return body, nil
			}
			return nil, p.fail(`";"`)
		}
	}
}

// parseCall parses CALL proc(args).
func (p *Parser) parseCall() (core.Statement, error) {
	start := p.cur().Pos
	p.next() // consume CALL
	stmt := &core.CallStmt{}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	for p.match(token.DOT) {
		part, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		name += "." + part
	}
	stmt.Proc = name

	if p.match(token.LPAREN) {
		if !p.check(token.RPAREN) {
			args, err := p.parseExpressionList()
			if err != nil {
				return nil, err
			}
			stmt.Args = args
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
	}

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseTransaction parses transaction-control statements.
func (p *Parser) parseTransaction() (core.Statement, error) {
	start := p.cur().Pos
	stmt := &core.TransactionStmt{}

	switch p.cur().Type {
	case token.BEGIN:
		p.next()
		stmt.Kind = core.TxBegin
		switch {
		case p.match(token.WORK):
			stmt.Modifier = "WORK"
		case p.match(token.TRANSACTION):
			stmt.Modifier = "TRANSACTION"
		}

	case token.START:
		p.next()
		if err := p.expectKeyword(token.TRANSACTION); err != nil {
			return nil, err
		}
		stmt.Kind = core.TxStart

	case token.COMMIT:
		p.next()
		stmt.Kind = core.TxCommit
		if p.match(token.WORK) {
			stmt.Modifier = "WORK"
		}

	case token.ROLLBACK:
		p.next()
		stmt.Kind = core.TxRollback
		if p.match(token.WORK) {
			stmt.Modifier = "WORK"
		}
		if p.match(token.TO) {
			p.match(token.SAVEPOINT)
			name, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			stmt.Savepoint = name
		}

	case token.SAVEPOINT:
		p.next()
		stmt.Kind = core.TxSavepoint
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		stmt.Savepoint = name

	case token.RELEASE:
		p.next()
		if err := p.expectKeyword(token.SAVEPOINT); err != nil {
			return nil, err
		}
		stmt.Kind = core.TxRelease
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		stmt.Savepoint = name
	}

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseCommentOn parses COMMENT ON <type> name IS text.
func (p *Parser) parseCommentOn() (core.Statement, error) {
	start := p.cur().Pos
	p.next() // consume COMMENT
	if err := p.expectKeyword(token.ON); err != nil {
		return nil, err
	}
	stmt := &core.CommentStmt{}

	switch p.cur().Type {
	case token.TABLE, token.COLUMN, token.VIEW:
		stmt.ObjectType = p.cur().Type.String()
		p.next()
	default:
		return nil, p.fail("TABLE", "COLUMN", "VIEW")
	}

	for {
		part, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		stmt.Name = append(stmt.Name, part)
		if !p.match(token.DOT) {
			break
		}
	}

	if err := p.expectKeyword(token.IS); err != nil {
		return nil, err
	}
	switch {
	case p.check(token.STRING):
		text := p.cur().Literal
		stmt.Text = &text
		p.next()
	case p.match(token.NULL):
		stmt.Text = nil
	default:
		return nil, p.fail("a string", "NULL")
	}

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseExplain parses EXPLAIN [ANALYZE] statement.
func (p *Parser) parseExplain() (core.Statement, error) {
	start := p.cur().Pos
	stmt := &core.ExplainStmt{}

	if p.cur().Type == token.ANALYZE {
		p.next()
		stmt.Analyze = true
	} else {
		p.next() // consume EXPLAIN
		stmt.Analyze = p.match(token.ANALYZE)
	}

	target, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt.Target = target

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseDescribe parses DESC/DESCRIBE table.
func (p *Parser) parseDescribe() (core.Statement, error) {
	start := p.cur().Pos
	p.next() // consume DESCRIBE or DESC
	table, err := p.parseTableName()
	if err != nil {
		return nil, err
	}
	stmt := &core.DescribeStmt{Table: table}
	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}
