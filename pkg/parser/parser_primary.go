package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Primary expression parsing: literals, column refs, function calls,
// CASE, CAST, EXISTS, INTERVAL, subqueries.
//
// Grammar:
//
//	primary       → literal | param | column_ref | func_call | paren_expr
//	              | case_expr | cast_expr | exists_expr | interval_expr
//	              | array_expr | "*"
//	literal       → NUMBER | STRING | HEX | BIT | TRUE | FALSE | NULL
//	column_ref    → identifier | tbl "." column | db "." tbl "." column
//	func_call     → name "(" [DISTINCT] ["*" | expr_list]
//	                [ORDER BY order_list] [SEPARATOR expr] ")"
//	                [OVER window_spec]

// parsePrimary parses a primary expression.
func (p *Parser) parsePrimary() (core.Expr, error) {
	start := p.cur().Pos

	switch p.cur().Type {
	case token.NUMBER:
		lit := classifyNumber(p.cur().Literal)
		p.next()
		if info, ok := lit.(interface{ SetSpan(token.Span) }); ok {
			info.SetSpan(p.spanFrom(start))
		}
		return lit, nil

	case token.STRING:
		lit := &core.StringLit{Value: p.cur().Literal}
		p.next()
		lit.SetSpan(p.spanFrom(start))
		return lit, nil

	case token.HEX:
		lit := &core.HexLit{Text: p.cur().Literal}
		p.next()
		lit.SetSpan(p.spanFrom(start))
		return lit, nil

	case token.BIT:
		lit := &core.BitLit{Text: p.cur().Literal}
		p.next()
		lit.SetSpan(p.spanFrom(start))
		return lit, nil

	case token.PARAM:
		return p.parseParam()

	case token.TRUE, token.FALSE:
		lit := &core.BoolLit{Value: p.cur().Type == token.TRUE}
		p.next()
		lit.SetSpan(p.spanFrom(start))
		return lit, nil

	case token.NULL:
		lit := &core.NullLit{}
		p.next()
		lit.SetSpan(p.spanFrom(start))
		return lit, nil

	case token.CASE:
		return p.parseCaseExpr()

	case token.CAST:
		return p.parseCastExpr()

	case token.EXISTS:
		return p.parseExistsExpr(false)

	case token.INTERVAL:
		return p.parseIntervalExpr()

	case token.LPAREN:
		return p.parseParenExpr()

	case token.LBRACKET:
		return p.parseArrayExpr()

	case token.STAR:
		p.next()
		star := &core.StarExpr{}
		star.SetSpan(p.spanFrom(start))
		return star, nil

	case token.ROW:
		if p.peek().Type == token.LPAREN {
			name := p.cur().Literal
			p.next()
			return p.parseFuncCall(name, start)
		}
		return nil, p.fail("an expression")

	case token.DEFAULT:
		// Bare DEFAULT in VALUES rows and SET lists; DEFAULT(col) is a
		// regular function call.
		if p.peek().Type == token.LPAREN {
			name := p.cur().Literal
			p.next()
			return p.parseFuncCall(name, start)
		}
		p.next()
		fn := &core.FuncCall{Name: "DEFAULT", NoParens: true}
		fn.SetSpan(p.spanFrom(start))
		return fn, nil

	default:
		if p.checkIdent() {
			return p.parseIdentifierExpr()
		}
		// Keyword functions: IF(...), LEFT(...), REPLACE(...) and the
		// like are keywords elsewhere in the grammar but plain
		// functions when followed by a parenthesis.
		if isFuncKeyword(p.cur().Type) && p.peek().Type == token.LPAREN {
			name := p.cur().Literal
			p.next()
			return p.parseFuncCall(name, start)
		}
		return nil, p.fail("an expression")
	}
}

// isFuncKeyword reports reserved words that also name builtin
// functions.
func isFuncKeyword(t token.TokenType) bool {
	switch t {
	case token.IF, token.LEFT, token.RIGHT, token.REPLACE,
		token.DEFAULT, token.DATABASE, token.SCHEMA, token.VALUES,
		token.TRUNCATE, token.INSERT:
		return true
	}
	return false
}

// classifyNumber decides how a numeric lexeme is represented. Plain
// digit runs become int64 values; digit runs past int64 range keep
// their exact digits as a big integer literal and are never routed
// through a float. Anything with a decimal point or exponent is a
// float.
func classifyNumber(text string) core.Expr {
	if !strings.ContainsAny(text, ".eE") {
		n, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return &core.NumberLit{Text: text, IsInt: true, Int: n}
		}
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return &core.BigintLit{Digits: text}
		}
	}
	f, _ := strconv.ParseFloat(text, 64)
	return &core.NumberLit{Text: text, Float: f}
}

// parseParam maps a parameter lexeme onto its placeholder style.
func (p *Parser) parseParam() (core.Expr, error) {
	start := p.cur().Pos
	lit := p.cur().Literal
	p.next()

	param := &core.ParamExpr{}
	switch {
	case lit == "?":
		param.Style = core.ParamQuestion
	case strings.HasPrefix(lit, ":"):
		param.Style = core.ParamNamed
		param.Name = lit[1:]
	case strings.HasPrefix(lit, "$"):
		rest := lit[1:]
		if n, err := strconv.Atoi(rest); err == nil {
			param.Style = core.ParamNumbered
			param.Index = n
		} else {
			param.Style = core.ParamDollar
			param.Name = rest
		}
	}
	param.SetSpan(p.spanFrom(start))
	return param, nil
}

// niladicFuncs are keyword functions callable without parentheses.
var niladicFuncs = map[string]bool{
	"current_date":      true,
	"current_time":      true,
	"current_timestamp": true,
	"current_user":      true,
	"session_user":      true,
	"localtime":         true,
	"localtimestamp":    true,
}

// parseIdentifierExpr parses an identifier: a column reference
// (possibly qualified), a function call, or a niladic function.
func (p *Parser) parseIdentifierExpr() (core.Expr, error) {
	start := p.cur().Pos
	name := p.cur().Literal
	quoted := p.cur().Type == token.QIDENT
	p.next()

	if p.check(token.LPAREN) {
		return p.parseFuncCall(name, start)
	}

	// ARRAY[1, 2] literal
	if !quoted && strings.EqualFold(name, "array") && p.check(token.LBRACKET) {
		return p.parseArrayExpr()
	}

	if p.check(token.DOT) {
		return p.parseQualifiedRef(name, start)
	}

	if !quoted && niladicFuncs[strings.ToLower(name)] {
		fn := &core.FuncCall{Name: name, NoParens: true}
		fn.SetSpan(p.spanFrom(start))
		return fn, nil
	}

	ref := &core.ColumnRef{Column: name}
	ref.SetSpan(p.spanFrom(start))
	return ref, nil
}

// parseQualifiedRef parses dotted references: tbl.col, db.tbl.col,
// tbl.* and db.tbl.*.
func (p *Parser) parseQualifiedRef(first string, start token.Position) (core.Expr, error) {
	parts := []string{first}

	for p.match(token.DOT) {
		if p.check(token.STAR) {
			p.next()
			star := &core.StarExpr{}
			switch len(parts) {
			case 1:
				star.Table = parts[0]
			default:
				star.Database = parts[0]
				star.Table = parts[1]
			}
			star.SetSpan(p.spanFrom(start))
			return star, nil
		}
		part, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
		if len(parts) == 3 {
			break
		}
	}

	ref := &core.ColumnRef{}
	switch len(parts) {
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

// parseFuncCall parses a function call body after the name.
func (p *Parser) parseFuncCall(name string, start token.Position) (core.Expr, error) {
	fn := &core.FuncCall{Name: name}

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	switch {
	case p.check(token.STAR):
		fn.Star = true
		p.next()

	case !p.check(token.RPAREN):
		if p.match(token.DISTINCT) {
			fn.Distinct = true
		}
		args, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		fn.Args = args

		// GROUP_CONCAT(x ORDER BY y SEPARATOR ', ')
		if p.check(token.ORDER) {
			p.next()
			if err := p.expectKeyword(token.BY); err != nil {
				return nil, err
			}
			orderBy, err := p.parseOrderByList()
			if err != nil {
				return nil, err
			}
			fn.OrderBy = orderBy
		}
		if p.check(token.IDENT) && strings.EqualFold(p.cur().Literal, "separator") {
			p.next()
			sep, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			fn.Separator = sep
		}
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	if p.match(token.OVER) {
		over, err := p.parseWindowSpec()
		if err != nil {
			return nil, err
		}
		fn.Over = over
	}

	fn.SetSpan(p.spanFrom(start))
	return fn, nil
}

// parseCaseExpr parses both CASE forms.
func (p *Parser) parseCaseExpr() (core.Expr, error) {
	start := p.cur().Pos
	if err := p.expectKeyword(token.CASE); err != nil {
		return nil, err
	}
	caseExpr := &core.CaseExpr{}

	// Simple CASE: CASE operand WHEN ...
	if !p.check(token.WHEN) {
		operand, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		caseExpr.Operand = operand
	}

	for p.match(token.WHEN) {
		when := &core.WhenClause{}
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		when.Condition = cond
		if err := p.expectKeyword(token.THEN); err != nil {
			return nil, err
		}
		result, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		when.Result = result
		caseExpr.Whens = append(caseExpr.Whens, when)
	}
	if len(caseExpr.Whens) == 0 {
		return nil, p.fail("WHEN")
	}

	if p.match(token.ELSE) {
		elseExpr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		caseExpr.Else = elseExpr
	}

	if err := p.expectKeyword(token.END); err != nil {
		return nil, err
	}
	caseExpr.SetSpan(p.spanFrom(start))
	return caseExpr, nil
}

// parseCastExpr parses CAST(expr AS type).
func (p *Parser) parseCastExpr() (core.Expr, error) {
	start := p.cur().Pos
	p.next() // consume CAST
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	cast := &core.CastExpr{}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	cast.Expr = expr

	if err := p.expectKeyword(token.AS); err != nil {
		return nil, err
	}

	typ, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	cast.Type = typ

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	cast.SetSpan(p.spanFrom(start))
	return cast, nil
}

// parseExistsExpr parses [NOT] EXISTS (subquery). NOT is consumed by
// the caller.
func (p *Parser) parseExistsExpr(not bool) (core.Expr, error) {
	start := p.cur().Pos
	p.next() // consume EXISTS
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	query, err := p.parseSelectStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	exists := &core.ExistsExpr{Not: not, Query: query}
	exists.SetSpan(p.spanFrom(start))
	return exists, nil
}

// intervalUnits are the unit words accepted after INTERVAL expr.
var intervalUnits = map[string]bool{
	"microsecond": true, "second": true, "minute": true, "hour": true,
	"day": true, "week": true, "month": true, "quarter": true,
	"year": true, "second_microsecond": true, "minute_microsecond": true,
	"minute_second": true, "hour_microsecond": true, "hour_second": true,
	"hour_minute": true, "day_microsecond": true, "day_second": true,
	"day_minute": true, "day_hour": true, "year_month": true,
}

// parseIntervalExpr parses INTERVAL expr [unit].
func (p *Parser) parseIntervalExpr() (core.Expr, error) {
	start := p.cur().Pos
	p.next() // consume INTERVAL

	value, err := p.parseExpressionWithPrecedence(precUnary)
	if err != nil {
		return nil, err
	}
	iv := &core.IntervalExpr{Value: value}

	if p.check(token.IDENT) && intervalUnits[strings.ToLower(p.cur().Literal)] {
		iv.Unit = p.cur().Literal
		p.next()
	}
	iv.SetSpan(p.spanFrom(start))
	return iv, nil
}

// parseParenExpr parses a parenthesized expression, a scalar subquery,
// or a row constructor list.
func (p *Parser) parseParenExpr() (core.Expr, error) {
	start := p.cur().Pos

	// A parenthesis may open a subquery or a plain expression. For the
	// nested cases ((SELECT ...)) only an attempt tells them apart, so
	// checkpoint and restore on failure.
	if p.peekAt(1).Type == token.SELECT || p.peekAt(1).Type == token.WITH {
		return p.parseScalarSubquery(start)
	}
	if p.peekAt(1).Type == token.LPAREN {
		mark := p.save()
		if sub, err := p.parseScalarSubquery(start); err == nil {
			return sub, nil
		}
		p.restore(mark)
	}

	p.next() // consume (

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	// Row constructor: (a, b, c)
	if p.check(token.COMMA) {
		list := &core.ExprList{Items: []core.Expr{expr}}
		for p.match(token.COMMA) {
			item, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, item)
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		list.SetSpan(p.spanFrom(start))
		return list, nil
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	markParens(expr)
	return expr, nil
}

// parseScalarSubquery parses ( select_statement ) as an expression.
func (p *Parser) parseScalarSubquery(start token.Position) (core.Expr, error) {
	p.next() // consume (
	query, err := p.parseSelectStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	sub := &core.SubqueryExpr{Query: query}
	sub.SetSpan(p.spanFrom(start))
	return sub, nil
}

// markParens records explicit parentheses on nodes that track them, so
// the renderer reproduces them even when precedence would not require
// it.
func markParens(expr core.Expr) {
	switch e := expr.(type) {
	case *core.BinaryExpr:
		e.Parens = true
	case *core.UnaryExpr:
		e.Parens = true
	}
}

// parseArrayExpr parses [e1, e2, ...] and ARRAY[e1, e2, ...].
func (p *Parser) parseArrayExpr() (core.Expr, error) {
	start := p.cur().Pos
	if _, err := p.expect(token.LBRACKET); err != nil {
		return nil, err
	}
	arr := &core.ArrayExpr{}
	if !p.check(token.RBRACKET) {
		elems, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		arr.Elements = elems
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	arr.SetSpan(p.spanFrom(start))
	return arr, nil
}
