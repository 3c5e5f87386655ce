package parser

import (
	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// FROM clause parsing: table references, derived tables, joins.
//
// Grammar:
//
//	from_list     → table_source (("," | join_head) table_source)*
//	join_head     → [NATURAL] join_type
//	join_type     → JOIN | INNER JOIN | CROSS JOIN
//	              | (LEFT|RIGHT|FULL) [OUTER] JOIN
//	table_source  → (table_name | "(" select ")") [[AS] alias]
//	                [ON expr | USING "(" column_list ")"]
//	table_name    → [database "."] identifier
//
// The result is a flat list: the first entry and comma entries carry no
// join type, joined entries carry theirs plus the ON/USING condition.

// parseFromList parses the sources after FROM.
func (p *Parser) parseFromList() ([]*core.TableSource, error) {
	first, err := p.parseTableSource(core.JoinNone, false)
	if err != nil {
		return nil, err
	}
	sources := []*core.TableSource{first}

	for {
		if p.match(token.COMMA) {
			src, err := p.parseTableSource(core.JoinNone, false)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)
			continue
		}

		natural := p.match(token.NATURAL)
		joinType, err := p.parseJoinType(natural)
		if err != nil {
			return nil, err
		}
		if joinType == core.JoinNone {
			return sources, nil
		}

		src, err := p.parseTableSource(joinType, natural)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
}

// parseJoinType consumes a join spelling. JoinNone means no join
// follows; NATURAL without a join keyword is an error.
func (p *Parser) parseJoinType(natural bool) (core.JoinType, error) {
	var jt core.JoinType

	switch p.cur().Type {
	case token.JOIN:
		jt = core.JoinPlain
	case token.INNER:
		p.next()
		jt = core.JoinInner
	case token.CROSS:
		p.next()
		jt = core.JoinCross
	case token.LEFT:
		p.next()
		p.match(token.OUTER)
		jt = core.JoinLeft
	case token.RIGHT:
		p.next()
		p.match(token.OUTER)
		jt = core.JoinRight
	case token.FULL:
		p.next()
		p.match(token.OUTER)
		jt = core.JoinFull
	default:
		if natural {
			return core.JoinNone, p.fail("JOIN")
		}
		return core.JoinNone, nil
	}

	if err := p.expectKeyword(token.JOIN); err != nil {
		return core.JoinNone, err
	}
	return jt, nil
}

// parseTableSource parses one FROM entry: the table or subquery, its
// alias, and for joined entries the ON/USING condition.
func (p *Parser) parseTableSource(joinType core.JoinType, natural bool) (*core.TableSource, error) {
	start := p.cur().Pos
	src := &core.TableSource{Join: joinType, Natural: natural}

	if p.check(token.LPAREN) {
		p.next()
		query, err := p.parseSelectStatement()
		if err != nil {
			return nil, err
		}
		src.Subquery = query
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
	} else {
		table, err := p.parseTableName()
		if err != nil {
			return nil, err
		}
		src.Table = table
	}

	if p.match(token.AS) {
		alias, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		src.Alias = alias
	} else if p.checkIdent() {
		src.Alias = p.cur().Literal
		p.next()
	}

	joined := joinType != core.JoinNone || natural
	if joined && !natural {
		switch {
		case p.match(token.ON):
			cond, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			src.On = cond
		case p.match(token.USING):
			cols, err := p.parseUsingColumns()
			if err != nil {
				return nil, err
			}
			src.Using = cols
		}
	}

	src.SetSpan(p.spanFrom(start))
	return src, nil
}

// parseTableName parses a possibly database-qualified table name.
func (p *Parser) parseTableName() (*core.TableName, error) {
	start := p.cur().Pos
	table := &core.TableName{}

	if !p.checkIdent() {
		return nil, p.fail("a table name")
	}
	first := p.cur().Literal
	p.next()

	if p.match(token.DOT) {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		table.Database = first
		table.Name = name
	} else {
		table.Name = first
	}

	table.SetSpan(p.spanFrom(start))
	return table, nil
}

// parseUsingColumns parses the column list in USING (col1, col2, ...).
func (p *Parser) parseUsingColumns() ([]string, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var cols []string
	for {
		col, err := p.parseIdent()
		if err != nil {
			return nil, err
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
