package parser

import (
	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Expression parsing using precedence climbing.
//
// Precedence levels, loosest first:
//
//	precOr         OR
//	precAnd        AND
//	precNot        NOT (prefix)
//	precComparison =, !=, <>, <, >, <=, >=, IS, IN, BETWEEN, LIKE,
//	               ILIKE, RLIKE, REGEXP, SIMILAR TO
//	precBitOr      |
//	precBitAnd     &
//	precShift      <<, >>
//	precAddition   +, -, ~, ~*, !~, !~*, ->, ->>, #>, #>>
//	precMultiply   *, /, %, ||
//	precBitXor     ^
//	precUnary      -, +, ~, ! (prefix)
//	precPostfix    ::, [], COLLATE
//
// Binary operators are left-associative: the right operand parses at
// prec+1. BETWEEN bounds and LIKE patterns parse at precBitOr so a
// following AND stays with the BETWEEN and comparisons stay outside.
const (
	precNone = iota
	precOr
	precAnd
	precNot
	precComparison
	precBitOr
	precBitAnd
	precShift
	precAddition
	precMultiply
	precBitXor
	precUnary
	precPostfix
)

// parseExpression parses a full expression.
func (p *Parser) parseExpression() (core.Expr, error) {
	return p.parseExpressionWithPrecedence(precNone + 1)
}

// parseExpressionWithPrecedence implements precedence climbing: parse a
// prefix expression, then fold in infix operators while their
// precedence stays at or above minPrecedence.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) (core.Expr, error) {
	left, err := p.parsePrefixExpr()
	if err != nil {
		return nil, err
	}

	for {
		prec := p.infixPrecedence()
		if prec < minPrecedence {
			return left, nil
		}
		left, err = p.parseInfixExpr(left, prec)
		if err != nil {
			return nil, err
		}
	}
}

// parsePrefixExpr parses unary operators and primary expressions.
func (p *Parser) parsePrefixExpr() (core.Expr, error) {
	start := p.cur().Pos
	switch p.cur().Type {
	case token.NOT:
		if p.peek().Type == token.EXISTS {
			p.next()
			return p.parseExistsExpr(true)
		}
		p.next()
		expr, err := p.parseExpressionWithPrecedence(precNot)
		if err != nil {
			return nil, err
		}
		u := &core.UnaryExpr{Op: token.NOT, Expr: expr}
		u.SetSpan(p.spanFrom(start))
		return u, nil

	case token.MINUS, token.PLUS, token.TILDE, token.BANG:
		op := p.cur().Type
		p.next()
		expr, err := p.parseExpressionWithPrecedence(precUnary)
		if err != nil {
			return nil, err
		}
		u := &core.UnaryExpr{Op: op, Expr: expr}
		u.SetSpan(p.spanFrom(start))
		return u, nil

	default:
		return p.parsePrimary()
	}
}

// infixPrecedence returns the precedence of the current token as an
// infix operator, or precNone if it is not one.
func (p *Parser) infixPrecedence() int {
	switch p.cur().Type {
	case token.OR:
		return precOr
	case token.AND:
		return precAnd
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		return precComparison
	case token.IS, token.IN, token.BETWEEN, token.LIKE,
		token.RLIKE, token.REGEXP, token.SIMILAR:
		return precComparison
	case token.ILIKE:
		if p.cfg.SupportsIlike {
			return precComparison
		}
		return precNone
	case token.NOT:
		// NOT IN, NOT BETWEEN, NOT LIKE and friends
		switch p.peek().Type {
		case token.IN, token.BETWEEN, token.LIKE,
			token.RLIKE, token.REGEXP, token.SIMILAR:
			return precComparison
		case token.ILIKE:
			if p.cfg.SupportsIlike {
				return precComparison
			}
		}
		return precNone
	case token.PIPE:
		return precBitOr
	case token.AMP:
		return precBitAnd
	case token.LSHIFT, token.RSHIFT:
		return precShift
	case token.ARROW, token.DARROW, token.HASHGT, token.HASHGTGT:
		if p.cfg.JSONOperators {
			return precAddition
		}
		return precNone
	case token.PLUS, token.MINUS,
		token.TILDE, token.TILDESTAR, token.BANGTILDE, token.BANGTILDESTAR:
		return precAddition
	case token.STAR, token.SLASH, token.PERCENT, token.DPIPE:
		return precMultiply
	case token.CARET:
		return precBitXor
	case token.DCOLON:
		if p.cfg.CastOperator {
			return precPostfix
		}
		return precNone
	case token.LBRACKET, token.COLLATE:
		return precPostfix
	default:
		return precNone
	}
}

// parseInfixExpr parses one infix construct given the left operand.
func (p *Parser) parseInfixExpr(left core.Expr, prec int) (core.Expr, error) {
	start := left.Pos()

	switch p.cur().Type {
	case token.NOT:
		p.next()
		return p.parseNotInfixExpr(left, start)

	case token.IS:
		return p.parseIsExpr(left, start)

	case token.IN:
		p.next()
		return p.parseInExpr(left, false, start)

	case token.BETWEEN:
		p.next()
		return p.parseBetweenExpr(left, false, start)

	case token.LIKE, token.ILIKE, token.RLIKE, token.REGEXP:
		op := p.cur().Type
		p.next()
		return p.parseLikeExpr(left, false, op, start)

	case token.SIMILAR:
		p.next()
		if err := p.expectKeyword(token.TO); err != nil {
			return nil, err
		}
		return p.parseLikeExpr(left, false, token.SIMILAR, start)

	case token.DCOLON:
		p.next()
		typ, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		cast := &core.CastExpr{Expr: left, Type: typ, Shorthand: true}
		cast.SetSpan(p.spanFrom(start))
		return cast, nil

	case token.LBRACKET:
		p.next()
		idx, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		ix := &core.IndexExpr{Expr: left, Index: idx}
		ix.SetSpan(p.spanFrom(start))
		return ix, nil

	case token.COLLATE:
		p.next()
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		col := &core.CollateExpr{Expr: left, Collation: name}
		col.SetSpan(p.spanFrom(start))
		return col, nil
	}

	// Standard binary operators, left-associative
	op := p.cur().Type
	p.next()
	right, err := p.parseExpressionWithPrecedence(prec + 1)
	if err != nil {
		return nil, err
	}
	bin := &core.BinaryExpr{Left: left, Op: op, Right: right}
	bin.SetSpan(p.spanFrom(start))
	return bin, nil
}

// parseNotInfixExpr handles NOT as an infix modifier: NOT IN,
// NOT BETWEEN, NOT LIKE and its relatives.
func (p *Parser) parseNotInfixExpr(left core.Expr, start token.Position) (core.Expr, error) {
	switch p.cur().Type {
	case token.IN:
		p.next()
		return p.parseInExpr(left, true, start)

	case token.BETWEEN:
		p.next()
		return p.parseBetweenExpr(left, true, start)

	case token.LIKE, token.ILIKE, token.RLIKE, token.REGEXP:
		op := p.cur().Type
		p.next()
		return p.parseLikeExpr(left, true, op, start)

	case token.SIMILAR:
		p.next()
		if err := p.expectKeyword(token.TO); err != nil {
			return nil, err
		}
		return p.parseLikeExpr(left, true, token.SIMILAR, start)

	default:
		return nil, p.fail("IN", "BETWEEN", "LIKE", "ILIKE", "REGEXP")
	}
}

// parseIsExpr parses IS [NOT] NULL / TRUE / FALSE.
func (p *Parser) parseIsExpr(left core.Expr, start token.Position) (core.Expr, error) {
	p.next() // consume IS
	isNot := p.match(token.NOT)

	switch p.cur().Type {
	case token.NULL:
		p.next()
		e := &core.IsNullExpr{Expr: left, Not: isNot}
		e.SetSpan(p.spanFrom(start))
		return e, nil

	case token.TRUE:
		p.next()
		e := &core.IsBoolExpr{Expr: left, Not: isNot, Value: true}
		e.SetSpan(p.spanFrom(start))
		return e, nil

	case token.FALSE:
		p.next()
		e := &core.IsBoolExpr{Expr: left, Not: isNot, Value: false}
		e.SetSpan(p.spanFrom(start))
		return e, nil

	default:
		return nil, p.fail("NULL", "TRUE", "FALSE")
	}
}

// parseInExpr parses IN (value_list) or IN (subquery).
func (p *Parser) parseInExpr(left core.Expr, not bool, start token.Position) (core.Expr, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	in := &core.InExpr{Expr: left, Not: not}

	if p.checkAny(token.SELECT, token.WITH) {
		query, err := p.parseSelectStatement()
		if err != nil {
			return nil, err
		}
		in.Query = query
	} else {
		values, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		in.Values = values
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	in.SetSpan(p.spanFrom(start))
	return in, nil
}

// parseBetweenExpr parses BETWEEN low AND high. The bounds parse above
// comparison precedence so the AND separating them is never consumed as
// a logical AND.
func (p *Parser) parseBetweenExpr(left core.Expr, not bool, start token.Position) (core.Expr, error) {
	between := &core.BetweenExpr{Expr: left, Not: not}

	low, err := p.parseExpressionWithPrecedence(precBitOr)
	if err != nil {
		return nil, err
	}
	between.Low = low

	if err := p.expectKeyword(token.AND); err != nil {
		return nil, err
	}

	high, err := p.parseExpressionWithPrecedence(precBitOr)
	if err != nil {
		return nil, err
	}
	between.High = high
	between.SetSpan(p.spanFrom(start))
	return between, nil
}

// parseLikeExpr parses the pattern side of LIKE-family operators, plus
// an optional ESCAPE clause.
func (p *Parser) parseLikeExpr(left core.Expr, not bool, op token.TokenType, start token.Position) (core.Expr, error) {
	like := &core.LikeExpr{Expr: left, Not: not, Op: op}

	pattern, err := p.parseExpressionWithPrecedence(precBitOr)
	if err != nil {
		return nil, err
	}
	like.Pattern = pattern

	if p.match(token.ESCAPE) {
		esc, err := p.parseExpressionWithPrecedence(precBitOr)
		if err != nil {
			return nil, err
		}
		like.Escape = esc
	}
	like.SetSpan(p.spanFrom(start))
	return like, nil
}

// parseExpressionList parses a comma-separated list of expressions.
func (p *Parser) parseExpressionList() ([]core.Expr, error) {
	var exprs []core.Expr
	for {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		if !p.match(token.COMMA) {
			return exprs, nil
		}
	}
}
