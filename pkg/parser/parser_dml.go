package parser

import (
	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// DML statement parsing: INSERT, REPLACE, UPDATE, DELETE.
//
// Grammar:
//
//	insert → (INSERT [IGNORE] | REPLACE) [INTO] table_name
//	         [PARTITION "(" ident_list ")"] ["(" column_list ")"]
//	         (VALUES row ("," row)* | select | SET assignments)
//	         [ON DUPLICATE KEY UPDATE assignments]
//	         [ON CONFLICT ["(" column_list ")"]
//	          (DO NOTHING | DO UPDATE SET assignments [WHERE expr])]
//	         [RETURNING select_list]
//	update → UPDATE from_list SET assignments [FROM from_list]
//	         [WHERE expr] [ORDER BY order_list] [LIMIT limit]
//	         [RETURNING select_list]
//	delete → DELETE [table_name ("," table_name)*] FROM from_list
//	         [USING from_list] [WHERE expr] [ORDER BY order_list]
//	         [LIMIT limit] [RETURNING select_list]

// parseInsert parses INSERT and REPLACE statements.
func (p *Parser) parseInsert() (core.Statement, error) {
	start := p.cur().Pos
	stmt := &core.InsertStmt{}

	if p.match(token.REPLACE) {
		stmt.Replace = true
	} else {
		if err := p.expectKeyword(token.INSERT); err != nil {
			return nil, err
		}
		if p.match(token.IGNORE) {
			stmt.Ignore = true
		}
	}
	if p.match(token.INTO) {
		stmt.Into = true
	}

	table, err := p.parseTableName()
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	if p.match(token.PARTITION) {
		parts, err := p.parseParenIdentList()
		if err != nil {
			return nil, err
		}
		stmt.Partitions = parts
	}

	// A parenthesis here is a column list unless a select follows it.
	if p.check(token.LPAREN) && p.peek().Type != token.SELECT && p.peek().Type != token.WITH {
		cols, err := p.parseParenIdentList()
		if err != nil {
			return nil, err
		}
		stmt.Columns = cols
	}

	switch {
	case p.match(token.VALUES):
		for {
			row, err := p.parseValueRow()
			if err != nil {
				return nil, err
			}
			stmt.Values = append(stmt.Values, row)
			if !p.match(token.COMMA) {
				break
			}
		}

	case p.checkAny(token.SELECT, token.WITH, token.LPAREN):
		query, err := p.parseSelectStatement()
		if err != nil {
			return nil, err
		}
		stmt.Query = query

	case p.match(token.SET):
		items, err := p.parseAssignmentList()
		if err != nil {
			return nil, err
		}
		stmt.SetItems = items

	default:
		return nil, p.fail("VALUES", "SELECT", "SET")
	}

	if p.check(token.ON) && (p.cfg.OnDuplicateClause || p.cfg.OnConflictClause) {
		if err := p.parseUpsertClause(stmt); err != nil {
			return nil, err
		}
	}

	if p.cfg.SupportsReturning && p.match(token.RETURNING) {
		ret, err := p.parseSelectList()
		if err != nil {
			return nil, err
		}
		stmt.Returning = ret
	}

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseUpsertClause parses ON DUPLICATE KEY UPDATE and ON CONFLICT.
func (p *Parser) parseUpsertClause(stmt *core.InsertStmt) error {
	p.next() // consume ON

	switch {
	case p.cfg.OnDuplicateClause && p.match(token.DUPLICATE):
		if err := p.expectKeyword(token.KEY); err != nil {
			return err
		}
		if err := p.expectKeyword(token.UPDATE); err != nil {
			return err
		}
		items, err := p.parseAssignmentList()
		if err != nil {
			return err
		}
		stmt.OnDuplicate = items
		return nil

	case p.cfg.OnConflictClause && p.match(token.CONFLICT):
		oc := &core.OnConflict{}
		if p.check(token.LPAREN) {
			cols, err := p.parseParenIdentList()
			if err != nil {
				return err
			}
			oc.Columns = cols
		}
		if err := p.expectKeyword(token.DO); err != nil {
			return err
		}
		switch {
		case p.match(token.NOTHING):
			oc.DoNothing = true
		case p.match(token.UPDATE):
			if err := p.expectKeyword(token.SET); err != nil {
				return err
			}
			items, err := p.parseAssignmentList()
			if err != nil {
				return err
			}
			oc.Updates = items
			if p.match(token.WHERE) {
				where, err := p.parseExpression()
				if err != nil {
					return err
				}
				oc.Where = where
			}
		default:
			return p.fail("NOTHING", "UPDATE")
		}
		stmt.OnConflict = oc
		return nil

	default:
		var wanted []string
		if p.cfg.OnDuplicateClause {
			wanted = append(wanted, "DUPLICATE")
		}
		if p.cfg.OnConflictClause {
			wanted = append(wanted, "CONFLICT")
		}
		return p.fail(wanted...)
	}
}

// parseValueRow parses one parenthesized VALUES row.
func (p *Parser) parseValueRow() ([]core.Expr, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var row []core.Expr
	if !p.check(token.RPAREN) {
		exprs, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		row = exprs
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return row, nil
}

// parseUpdate parses UPDATE statements, including the mysql multi-table
// form and postgres UPDATE ... FROM.
func (p *Parser) parseUpdate() (core.Statement, error) {
	start := p.cur().Pos
	p.next() // consume UPDATE
	stmt := &core.UpdateStmt{}

	tables, err := p.parseFromList()
	if err != nil {
		return nil, err
	}
	stmt.Tables = tables

	if err := p.expectKeyword(token.SET); err != nil {
		return nil, err
	}
	set, err := p.parseAssignmentList()
	if err != nil {
		return nil, err
	}
	stmt.Set = set

	if p.match(token.FROM) {
		from, err := p.parseFromList()
		if err != nil {
			return nil, err
		}
		stmt.From = from
	}

	if p.match(token.WHERE) {
		where, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}

	if p.check(token.ORDER) {
		p.next()
		if err := p.expectKeyword(token.BY); err != nil {
			return nil, err
		}
		orderBy, err := p.parseOrderByList()
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = orderBy
	}

	if p.check(token.LIMIT) {
		limit, err := p.parseLimitClause()
		if err != nil {
			return nil, err
		}
		stmt.Limit = limit
	}

	if p.cfg.SupportsReturning && p.match(token.RETURNING) {
		ret, err := p.parseSelectList()
		if err != nil {
			return nil, err
		}
		stmt.Returning = ret
	}

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseDelete parses DELETE statements, including both multi-table
// forms.
func (p *Parser) parseDelete() (core.Statement, error) {
	start := p.cur().Pos
	p.next() // consume DELETE
	stmt := &core.DeleteStmt{}

	// Targets named between DELETE and FROM: DELETE t1, t2 FROM ...
	// A target may be spelled t, db.t, or either with a .* suffix.
	for !p.check(token.FROM) && p.checkIdent() {
		tstart := p.cur().Pos
		first, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		target := &core.TableName{Name: first}
		if p.match(token.DOT) && !p.match(token.STAR) {
			name, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			target.Database = first
			target.Name = name
			if p.match(token.DOT) {
				if _, err := p.expect(token.STAR); err != nil {
					return nil, err
				}
			}
		}
		target.SetSpan(p.spanFrom(tstart))
		stmt.Targets = append(stmt.Targets, target)
		if !p.match(token.COMMA) {
			break
		}
	}

	if err := p.expectKeyword(token.FROM); err != nil {
		return nil, err
	}
	from, err := p.parseFromList()
	if err != nil {
		return nil, err
	}
	stmt.From = from

	if p.match(token.USING) {
		using, err := p.parseFromList()
		if err != nil {
			return nil, err
		}
		stmt.Using = using
	}

	if p.match(token.WHERE) {
		where, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}

	if p.check(token.ORDER) {
		p.next()
		if err := p.expectKeyword(token.BY); err != nil {
			return nil, err
		}
		orderBy, err := p.parseOrderByList()
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = orderBy
	}

	if p.check(token.LIMIT) {
		limit, err := p.parseLimitClause()
		if err != nil {
			return nil, err
		}
		stmt.Limit = limit
	}

	if p.cfg.SupportsReturning && p.match(token.RETURNING) {
		ret, err := p.parseSelectList()
		if err != nil {
			return nil, err
		}
		stmt.Returning = ret
	}

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseAssignmentList parses column = value pairs.
func (p *Parser) parseAssignmentList() ([]*core.Assignment, error) {
	var items []*core.Assignment
	for {
		col, err := p.parseColumnRef()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.EQ); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, &core.Assignment{Column: col, Value: value})
		if !p.match(token.COMMA) {
			return items, nil
		}
	}
}

// parseColumnRef parses a bare column reference for assignment targets.
func (p *Parser) parseColumnRef() (*core.ColumnRef, error) {
	start := p.cur().Pos
	parts := []string{}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	parts = append(parts, name)

	for len(parts) < 3 && p.match(token.DOT) {
		part, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	ref := &core.ColumnRef{}
	switch len(parts) {
	case 1:
		ref.Column = parts[0]
	case 2:
		ref.Table = parts[0]
		ref.Column = parts[1]
	default:
		ref.Database = parts[0]
		ref.Table = parts[1]
		ref.Column = parts[2]
	}
	ref.SetSpan(p.spanFrom(start))
	return ref, nil
}

// parseParenIdentList parses "(" ident ("," ident)* ")".
func (p *Parser) parseParenIdentList() ([]string, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var names []string
	for {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return names, nil
}
