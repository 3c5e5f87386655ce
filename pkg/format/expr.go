package format

import (
	"strconv"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Binding strengths, mirroring the parser's climb order. Used to decide
// where parentheses are required; explicit Parens flags add to this,
// they never replace it, so hand-built ASTs render correctly too.
const (
	precOr = iota + 1
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
	precPrimary
)

// opPrec returns the binding strength of a binary operator token.
func opPrec(op token.TokenType) int {
	switch op {
	case token.OR:
		return precOr
	case token.AND:
		return precAnd
	case token.PIPE:
		return precBitOr
	case token.AMP:
		return precBitAnd
	case token.LSHIFT, token.RSHIFT:
		return precShift
	case token.PLUS, token.MINUS,
		token.ARROW, token.DARROW, token.HASHGT, token.HASHGTGT,
		token.TILDE, token.TILDESTAR, token.BANGTILDE, token.BANGTILDESTAR:
		return precAddition
	case token.STAR, token.SLASH, token.PERCENT, token.DPIPE:
		return precMultiply
	case token.CARET:
		return precBitXor
	default:
		return precComparison
	}
}

// exprPrec returns the binding strength of a whole expression node.
func exprPrec(e core.Expr) int {
	switch x := e.(type) {
	case *core.BinaryExpr:
		return opPrec(x.Op)
	case *core.UnaryExpr:
		if x.Op == token.NOT {
			return precNot
		}
		return precUnary
	case *core.InExpr, *core.BetweenExpr, *core.IsNullExpr,
		*core.IsBoolExpr, *core.LikeExpr:
		return precComparison
	case *core.CastExpr:
		if x.Shorthand {
			return precPostfix
		}
		return precPrimary
	case *core.CollateExpr, *core.IndexExpr:
		return precPostfix
	case *core.IntervalExpr:
		return precUnary
	default:
		return precPrimary
	}
}

// hasParens reports an explicit parentheses flag on the node.
func hasParens(e core.Expr) bool {
	switch x := e.(type) {
	case *core.BinaryExpr:
		return x.Parens
	case *core.UnaryExpr:
		return x.Parens
	}
	return false
}

// expr renders an expression node.
func (p *printer) expr(e core.Expr) error {
	switch x := e.(type) {
	case *core.ColumnRef:
		p.columnRef(x)
		return nil
	case *core.StarExpr:
		p.starExpr(x)
		return nil
	case *core.NumberLit:
		p.write(x.Text)
		return nil
	case *core.BigintLit:
		p.write(x.Digits)
		return nil
	case *core.StringLit:
		p.str(x.Value)
		return nil
	case *core.BoolLit:
		if x.Value {
			p.keyword("TRUE")
		} else {
			p.keyword("FALSE")
		}
		return nil
	case *core.NullLit:
		p.keyword("NULL")
		return nil
	case *core.HexLit:
		p.write(x.Text)
		return nil
	case *core.BitLit:
		p.write(x.Text)
		return nil
	case *core.ParamExpr:
		return p.param(x)
	case *core.BinaryExpr:
		return p.binaryExpr(x)
	case *core.UnaryExpr:
		return p.unaryExpr(x)
	case *core.ExprList:
		p.write("(")
		if err := p.exprList(x.Items); err != nil {
			return err
		}
		p.write(")")
		return nil
	case *core.InExpr:
		return p.inExpr(x)
	case *core.BetweenExpr:
		return p.betweenExpr(x)
	case *core.IsNullExpr:
		return p.isNullExpr(x)
	case *core.IsBoolExpr:
		return p.isBoolExpr(x)
	case *core.LikeExpr:
		return p.likeExpr(x)
	case *core.ExistsExpr:
		return p.existsExpr(x)
	case *core.SubqueryExpr:
		p.write("(")
		if err := p.selectChain(x.Query); err != nil {
			return err
		}
		p.write(")")
		return nil
	case *core.CaseExpr:
		return p.caseExpr(x)
	case *core.CastExpr:
		return p.castExpr(x)
	case *core.CollateExpr:
		if err := p.operand(x.Expr, precPostfix); err != nil {
			return err
		}
		p.keyword(" COLLATE ")
		p.write(x.Collation)
		return nil
	case *core.FuncCall:
		return p.funcCall(x)
	case *core.ArrayExpr:
		p.keyword("ARRAY[")
		if err := p.exprList(x.Elements); err != nil {
			return err
		}
		p.write("]")
		return nil
	case *core.IndexExpr:
		if err := p.operand(x.Expr, precPostfix); err != nil {
			return err
		}
		p.write("[")
		if err := p.expr(x.Index); err != nil {
			return err
		}
		p.write("]")
		return nil
	case *core.IntervalExpr:
		p.keyword("INTERVAL ")
		if err := p.operand(x.Value, precUnary); err != nil {
			return err
		}
		if x.Unit != "" {
			p.space()
			p.keyword(x.Unit)
		}
		return nil
	case nil:
		return renderErr(nil, "nil expression")
	default:
		return renderErr(e, "unknown expression node")
	}
}

// operand renders a child expression, parenthesizing it when it binds
// looser than its context or carries an explicit parentheses flag.
func (p *printer) operand(e core.Expr, min int) error {
	if e == nil {
		return renderErr(nil, "nil operand")
	}
	if hasParens(e) || exprPrec(e) < min {
		p.write("(")
		if err := p.expr(e); err != nil {
			return err
		}
		p.write(")")
		return nil
	}
	return p.expr(e)
}

func (p *printer) columnRef(x *core.ColumnRef) {
	if x.Database != "" {
		p.ident(x.Database)
		p.write(".")
	}
	if x.Table != "" {
		p.ident(x.Table)
		p.write(".")
	}
	p.ident(x.Column)
}

func (p *printer) starExpr(x *core.StarExpr) {
	if x.Database != "" {
		p.ident(x.Database)
		p.write(".")
	}
	if x.Table != "" {
		p.ident(x.Table)
		p.write(".")
	}
	p.write("*")
}

// param renders a placeholder in its original style, so prepared
// statements keep their binding positions across a round trip.
func (p *printer) param(x *core.ParamExpr) error {
	switch x.Style {
	case core.ParamQuestion:
		p.write("?")
	case core.ParamNamed:
		p.write(":" + x.Name)
	case core.ParamNumbered:
		p.write("$" + strconv.Itoa(x.Index))
	case core.ParamDollar:
		p.write("$" + x.Name)
	default:
		return renderErr(x, "unknown parameter style")
	}
	return nil
}

func (p *printer) binaryExpr(x *core.BinaryExpr) error {
	prec := opPrec(x.Op)
	if err := p.operand(x.Left, prec); err != nil {
		return err
	}
	p.space()
	p.write(x.Op.String())
	p.space()
	// Same-strength operators associate left; an unflagged right child
	// at equal strength needs parentheses to keep its shape.
	if err := p.operand(x.Right, prec+1); err != nil {
		return err
	}
	return nil
}

func (p *printer) unaryExpr(x *core.UnaryExpr) error {
	if x.Op == token.NOT {
		p.keyword("NOT ")
		return p.operand(x.Expr, precNot)
	}
	p.write(x.Op.String())
	return p.operand(x.Expr, precUnary)
}

func (p *printer) inExpr(x *core.InExpr) error {
	if err := p.operand(x.Expr, precComparison); err != nil {
		return err
	}
	if x.Not {
		p.keyword(" NOT")
	}
	p.keyword(" IN (")
	if x.Query != nil {
		if err := p.selectChain(x.Query); err != nil {
			return err
		}
	} else {
		if err := p.exprList(x.Values); err != nil {
			return err
		}
	}
	p.write(")")
	return nil
}

func (p *printer) betweenExpr(x *core.BetweenExpr) error {
	if err := p.operand(x.Expr, precComparison); err != nil {
		return err
	}
	if x.Not {
		p.keyword(" NOT")
	}
	p.keyword(" BETWEEN ")
	if err := p.operand(x.Low, precBitOr); err != nil {
		return err
	}
	p.keyword(" AND ")
	return p.operand(x.High, precBitOr)
}

func (p *printer) isNullExpr(x *core.IsNullExpr) error {
	if err := p.operand(x.Expr, precComparison); err != nil {
		return err
	}
	if x.Not {
		p.keyword(" IS NOT NULL")
	} else {
		p.keyword(" IS NULL")
	}
	return nil
}

func (p *printer) isBoolExpr(x *core.IsBoolExpr) error {
	if err := p.operand(x.Expr, precComparison); err != nil {
		return err
	}
	p.keyword(" IS ")
	if x.Not {
		p.keyword("NOT ")
	}
	if x.Value {
		p.keyword("TRUE")
	} else {
		p.keyword("FALSE")
	}
	return nil
}

func (p *printer) likeExpr(x *core.LikeExpr) error {
	if err := p.operand(x.Expr, precComparison); err != nil {
		return err
	}
	if x.Not {
		p.keyword(" NOT")
	}
	switch x.Op {
	case token.LIKE, token.ILIKE, token.RLIKE, token.REGEXP:
		p.space()
		p.keyword(x.Op.String())
		p.space()
	case token.SIMILAR:
		p.keyword(" SIMILAR TO ")
	default:
		return renderErr(x, "unknown pattern operator")
	}
	if err := p.operand(x.Pattern, precBitOr); err != nil {
		return err
	}
	if x.Escape != nil {
		p.keyword(" ESCAPE ")
		if err := p.operand(x.Escape, precBitOr); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) existsExpr(x *core.ExistsExpr) error {
	if x.Not {
		p.keyword("NOT ")
	}
	p.keyword("EXISTS (")
	if err := p.selectChain(x.Query); err != nil {
		return err
	}
	p.write(")")
	return nil
}

func (p *printer) caseExpr(x *core.CaseExpr) error {
	p.keyword("CASE")
	if x.Operand != nil {
		p.space()
		if err := p.expr(x.Operand); err != nil {
			return err
		}
	}
	if len(x.Whens) == 0 {
		return renderErr(x, "CASE without WHEN arms")
	}
	for _, when := range x.Whens {
		p.keyword(" WHEN ")
		if err := p.expr(when.Condition); err != nil {
			return err
		}
		p.keyword(" THEN ")
		if err := p.expr(when.Result); err != nil {
			return err
		}
	}
	if x.Else != nil {
		p.keyword(" ELSE ")
		if err := p.expr(x.Else); err != nil {
			return err
		}
	}
	p.keyword(" END")
	return nil
}

// castExpr renders CAST(x AS t), or the :: shorthand when the source
// used it and the dialect has the operator.
func (p *printer) castExpr(x *core.CastExpr) error {
	if x.Type == nil {
		return renderErr(x, "cast without a target type")
	}
	if x.Shorthand && p.cfg.CastOperator {
		if err := p.operand(x.Expr, precPostfix); err != nil {
			return err
		}
		p.write("::")
		p.write(x.Type.String())
		return nil
	}
	p.keyword("CAST(")
	if err := p.expr(x.Expr); err != nil {
		return err
	}
	p.keyword(" AS ")
	p.write(x.Type.String())
	p.write(")")
	return nil
}

func (p *printer) funcCall(x *core.FuncCall) error {
	p.write(x.Name)
	if !x.NoParens {
		p.write("(")
		switch {
		case x.Star:
			p.write("*")
		default:
			if x.Distinct {
				p.keyword("DISTINCT ")
			}
			if err := p.exprList(x.Args); err != nil {
				return err
			}
		}
		if len(x.OrderBy) > 0 {
			p.keyword(" ORDER BY ")
			if err := p.orderByList(x.OrderBy); err != nil {
				return err
			}
		}
		if x.Separator != nil {
			p.keyword(" SEPARATOR ")
			if err := p.expr(x.Separator); err != nil {
				return err
			}
		}
		p.write(")")
	}
	if x.Over != nil {
		p.keyword(" OVER ")
		if err := p.windowSpec(x.Over); err != nil {
			return err
		}
	}
	return nil
}

// windowSpec renders the body of an OVER clause or a named window.
func (p *printer) windowSpec(w *core.WindowSpec) error {
	// Bare name: OVER w
	if w.Name != "" && len(w.PartitionBy) == 0 && len(w.OrderBy) == 0 && w.Frame == nil {
		p.ident(w.Name)
		return nil
	}

	p.write("(")
	wrote := false
	if w.Name != "" {
		p.ident(w.Name)
		wrote = true
	}
	if len(w.PartitionBy) > 0 {
		if wrote {
			p.space()
		}
		p.keyword("PARTITION BY ")
		if err := p.exprList(w.PartitionBy); err != nil {
			return err
		}
		wrote = true
	}
	if len(w.OrderBy) > 0 {
		if wrote {
			p.space()
		}
		p.keyword("ORDER BY ")
		if err := p.orderByList(w.OrderBy); err != nil {
			return err
		}
		wrote = true
	}
	if w.Frame != nil {
		if wrote {
			p.space()
		}
		if err := p.frameSpec(w.Frame); err != nil {
			return err
		}
	}
	p.write(")")
	return nil
}

func (p *printer) frameSpec(f *core.FrameSpec) error {
	switch f.Unit {
	case core.FrameRows, core.FrameRange, core.FrameGroups:
		p.keyword(string(f.Unit))
	default:
		return renderErr(f, "unknown window frame unit")
	}
	p.space()
	if f.Start == nil {
		return renderErr(f, "window frame without a start bound")
	}
	if f.End != nil {
		p.keyword("BETWEEN ")
		if err := p.frameBound(f.Start); err != nil {
			return err
		}
		p.keyword(" AND ")
		return p.frameBound(f.End)
	}
	return p.frameBound(f.Start)
}

func (p *printer) frameBound(b *core.FrameBound) error {
	switch b.Kind {
	case core.BoundUnboundedPreceding, core.BoundUnboundedFollowing,
		core.BoundCurrentRow:
		p.keyword(string(b.Kind))
		return nil
	case core.BoundExprPreceding, core.BoundExprFollowing:
		if b.Offset == nil {
			return renderErr(b, "frame bound without an offset")
		}
		if err := p.operand(b.Offset, precBitOr); err != nil {
			return err
		}
		p.space()
		p.keyword(string(b.Kind))
		return nil
	default:
		return renderErr(b, "unknown frame bound kind")
	}
}

// orderByList renders ORDER BY items after the keywords.
func (p *printer) orderByList(items []*core.OrderByItem) error {
	for i, item := range items {
		if i > 0 {
			p.write(", ")
		}
		if err := p.expr(item.Expr); err != nil {
			return err
		}
		switch {
		case item.Desc:
			p.keyword(" DESC")
		case item.Asc:
			p.keyword(" ASC")
		}
		switch item.Nulls {
		case core.NullsFirst:
			p.keyword(" NULLS FIRST")
		case core.NullsLast:
			p.keyword(" NULLS LAST")
		}
	}
	return nil
}
