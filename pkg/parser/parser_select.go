package parser

import (
	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// SELECT statement parsing: WITH clause, CTEs, the select core, set
// operations, ORDER BY and LIMIT.
//
// Grammar:
//
//	select        → [WITH [RECURSIVE] cte ("," cte)*] select_body
//	cte           → identifier ["(" column_list ")"] AS "(" select ")"
//	select_body   → select_core ((UNION [ALL]|INTERSECT|EXCEPT) select_core)*
//	                [ORDER BY order_list] [LIMIT limit_clause]
//	select_core   → "(" select ")"
//	              | SELECT [DISTINCT [ON "(" expr_list ")"] | ALL]
//	                select_item ("," select_item)*
//	                [FROM from_list] [WHERE expr]
//	                [GROUP BY expr_list] [HAVING expr]
//	                [WINDOW named_window ("," named_window)*]
//	                [ORDER BY order_list] [LIMIT limit_clause]
//	select_item   → "*" | tbl "." "*" | expr [[AS] alias]

// parseSelectStatement parses a full select, including any leading
// WITH clause and any set-operation chain.
func (p *Parser) parseSelectStatement() (*core.SelectStmt, error) {
	start := p.cur().Pos

	var with *core.WithClause
	if p.check(token.WITH) {
		w, err := p.parseWithClause()
		if err != nil {
			return nil, err
		}
		with = w
	}

	first, err := p.parseSelectCore()
	if err != nil {
		return nil, err
	}
	first.With = with

	// A parenthesized member may carry its own chain; splice onto its tail.
	last := first
	for last.Next != nil {
		last = last.Next
	}
	for {
		op := p.parseSetOp()
		if op == core.SetNone {
			break
		}
		next, err := p.parseSelectCore()
		if err != nil {
			return nil, err
		}
		last.SetOp = op
		last.Next = next
		last = next
		for last.Next != nil {
			last = last.Next
		}
	}

	// Trailing ORDER BY / LIMIT of a chain land on the last member,
	// which is also where they render.
	if last.OrderBy == nil && p.check(token.ORDER) {
		p.next()
		if err := p.expectKeyword(token.BY); err != nil {
			return nil, err
		}
		items, err := p.parseOrderByList()
		if err != nil {
			return nil, err
		}
		last.OrderBy = items
	}
	if last.Limit == nil && p.check(token.LIMIT) {
		limit, err := p.parseLimitClause()
		if err != nil {
			return nil, err
		}
		last.Limit = limit
	}

	first.SetSpan(p.spanFrom(start))
	return first, nil
}

// parseSetOp consumes a set operation keyword if present.
func (p *Parser) parseSetOp() core.SetOp {
	switch p.cur().Type {
	case token.UNION:
		p.next()
		if p.match(token.ALL) {
			return core.SetUnionAll
		}
		p.match(token.DISTINCT)
		return core.SetUnion
	case token.INTERSECT:
		p.next()
		return core.SetIntersect
	case token.EXCEPT:
		p.next()
		return core.SetExcept
	default:
		return core.SetNone
	}
}

// parseWithClause parses WITH [RECURSIVE] cte maybe-list.
func (p *Parser) parseWithClause() (*core.WithClause, error) {
	if err := p.expectKeyword(token.WITH); err != nil {
		return nil, err
	}
	with := &core.WithClause{}

	if p.match(token.RECURSIVE) {
		with.Recursive = true
	}

	for {
		cte, err := p.parseCTE()
		if err != nil {
			return nil, err
		}
		with.CTEs = append(with.CTEs, cte)
		if !p.match(token.COMMA) {
			return with, nil
		}
	}
}

// parseCTE parses one WITH entry.
func (p *Parser) parseCTE() (*core.CTE, error) {
	cte := &core.CTE{}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	cte.Name = name

	if p.match(token.LPAREN) {
		for {
			col, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			cte.Columns = append(cte.Columns, col)
			if !p.match(token.COMMA) {
				break
			}
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
	}

	if err := p.expectKeyword(token.AS); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	query, err := p.parseSelectStatement()
	if err != nil {
		return nil, err
	}
	cte.Query = query
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return cte, nil
}

// parseSelectCore parses one member of a select: either a
// parenthesized full select or a SELECT clause with its tail.
func (p *Parser) parseSelectCore() (*core.SelectStmt, error) {
	start := p.cur().Pos

	if p.match(token.LPAREN) {
		inner, err := p.parseSelectStatement()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		inner.Parens = true
		return inner, nil
	}

	if err := p.expectKeyword(token.SELECT); err != nil {
		return nil, err
	}
	stmt := &core.SelectStmt{}

	if p.match(token.DISTINCT) {
		stmt.Distinct = true
		if p.check(token.ON) && p.peek().Type == token.LPAREN {
			p.next()
			p.next()
			exprs, err := p.parseExpressionList()
			if err != nil {
				return nil, err
			}
			stmt.DistinctOn = exprs
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
		}
	} else {
		p.match(token.ALL)
	}

	columns, err := p.parseSelectList()
	if err != nil {
		return nil, err
	}
	stmt.Columns = columns

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

	if p.check(token.GROUP) {
		p.next()
		if err := p.expectKeyword(token.BY); err != nil {
			return nil, err
		}
		groupBy, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		stmt.GroupBy = groupBy
	}

	if p.match(token.HAVING) {
		having, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Having = having
	}

	if p.match(token.WINDOW) {
		for {
			nw, err := p.parseNamedWindow()
			if err != nil {
				return nil, err
			}
			stmt.Windows = append(stmt.Windows, nw)
			if !p.match(token.COMMA) {
				break
			}
		}
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

	stmt.SetSpan(p.spanFrom(start))
	return stmt, nil
}

// parseSelectList parses the projection list.
func (p *Parser) parseSelectList() ([]*core.SelectItem, error) {
	var items []*core.SelectItem
	for {
		item, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.match(token.COMMA) {
			return items, nil
		}
	}
}

// parseSelectItem parses one projection with its optional alias.
func (p *Parser) parseSelectItem() (*core.SelectItem, error) {
	item := &core.SelectItem{}

	mark := p.save()
	expr, err := p.parseExpression()
	if err != nil {
		if p.save() == mark {
			// Widen the expected set: a projection may start with *.
			return nil, p.fail(tokenWant(token.STAR))
		}
		return nil, err
	}
	item.Expr = expr

	if p.match(token.AS) {
		switch {
		case p.checkIdent():
			item.Alias = p.cur().Literal
			p.next()
		case p.check(token.STRING):
			item.Alias = p.cur().Literal
			p.next()
		default:
			return nil, p.fail("an alias")
		}
	} else if p.checkIdent() {
		item.Alias = p.cur().Literal
		p.next()
	}

	return item, nil
}

// parseNamedWindow parses one WINDOW definition: name AS (spec).
func (p *Parser) parseNamedWindow() (*core.NamedWindow, error) {
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(token.AS); err != nil {
		return nil, err
	}
	if !p.check(token.LPAREN) {
		return nil, p.fail(tokenWant(token.LPAREN))
	}
	spec, err := p.parseWindowSpec()
	if err != nil {
		return nil, err
	}
	return &core.NamedWindow{Name: name, Spec: spec}, nil
}

// parseOrderByList parses ORDER BY items after the keywords.
func (p *Parser) parseOrderByList() ([]*core.OrderByItem, error) {
	var items []*core.OrderByItem
	for {
		item, err := p.parseOrderByItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.match(token.COMMA) {
			return items, nil
		}
	}
}

// parseOrderByItem parses one ORDER BY entry.
func (p *Parser) parseOrderByItem() (*core.OrderByItem, error) {
	item := &core.OrderByItem{}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	item.Expr = expr

	switch {
	case p.match(token.ASC):
		item.Asc = true
	case p.match(token.DESC):
		item.Desc = true
	}

	if p.match(token.NULLS) {
		switch {
		case p.match(token.FIRST):
			item.Nulls = core.NullsFirst
		case p.match(token.LAST):
			item.Nulls = core.NullsLast
		default:
			return nil, p.fail("FIRST", "LAST")
		}
	}

	return item, nil
}

// parseLimitClause parses LIMIT count [OFFSET n] and the comma form
// LIMIT offset, count.
func (p *Parser) parseLimitClause() (*core.LimitClause, error) {
	if err := p.expectKeyword(token.LIMIT); err != nil {
		return nil, err
	}
	limit := &core.LimitClause{}

	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	switch {
	case p.match(token.COMMA):
		count, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		limit.Offset = first
		limit.Count = count
		limit.Comma = true
	case p.match(token.OFFSET):
		offset, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		limit.Count = first
		limit.Offset = offset
	default:
		limit.Count = first
	}

	return limit, nil
}
