package parser

import (
	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Window specification parsing: OVER clauses, PARTITION BY, frames.
//
// Grammar:
//
//	window_spec   → identifier
//	              | "(" [identifier] [PARTITION BY expr_list]
//	                [ORDER BY order_list] [frame_spec] ")"
//	frame_spec    → (ROWS|RANGE|GROUPS) frame_extent
//	frame_extent  → BETWEEN frame_bound AND frame_bound | frame_bound
//	frame_bound   → UNBOUNDED PRECEDING | UNBOUNDED FOLLOWING
//	              | CURRENT ROW | expr PRECEDING | expr FOLLOWING

// parseWindowSpec parses the window after OVER.
func (p *Parser) parseWindowSpec() (*core.WindowSpec, error) {
	spec := &core.WindowSpec{}

	// Named window reference: OVER w
	if p.checkIdent() {
		spec.Name = p.cur().Literal
		p.next()
		return spec, nil
	}

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	// Base window name: OVER (w PARTITION BY ...)
	if p.checkIdent() {
		spec.Name = p.cur().Literal
		p.next()
	}

	if p.match(token.PARTITION) {
		if err := p.expectKeyword(token.BY); err != nil {
			return nil, err
		}
		exprs, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		spec.PartitionBy = exprs
	}

	if p.match(token.ORDER) {
		if err := p.expectKeyword(token.BY); err != nil {
			return nil, err
		}
		items, err := p.parseOrderByList()
		if err != nil {
			return nil, err
		}
		spec.OrderBy = items
	}

	if p.checkAny(token.ROWS, token.RANGE, token.GROUPS) {
		frame, err := p.parseFrameSpec()
		if err != nil {
			return nil, err
		}
		spec.Frame = frame
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return spec, nil
}

// parseFrameSpec parses a window frame.
func (p *Parser) parseFrameSpec() (*core.FrameSpec, error) {
	frame := &core.FrameSpec{}

	switch {
	case p.match(token.ROWS):
		frame.Unit = core.FrameRows
	case p.match(token.RANGE):
		frame.Unit = core.FrameRange
	case p.match(token.GROUPS):
		frame.Unit = core.FrameGroups
	}

	if p.match(token.BETWEEN) {
		start, err := p.parseFrameBound()
		if err != nil {
			return nil, err
		}
		frame.Start = start
		if err := p.expectKeyword(token.AND); err != nil {
			return nil, err
		}
		end, err := p.parseFrameBound()
		if err != nil {
			return nil, err
		}
		frame.End = end
		return frame, nil
	}

	start, err := p.parseFrameBound()
	if err != nil {
		return nil, err
	}
	frame.Start = start
	return frame, nil
}

// parseFrameBound parses one frame bound.
func (p *Parser) parseFrameBound() (*core.FrameBound, error) {
	bound := &core.FrameBound{}

	switch {
	case p.match(token.UNBOUNDED):
		switch {
		case p.match(token.PRECEDING):
			bound.Kind = core.BoundUnboundedPreceding
		case p.match(token.FOLLOWING):
			bound.Kind = core.BoundUnboundedFollowing
		default:
			return nil, p.fail("PRECEDING", "FOLLOWING")
		}

	case p.match(token.CURRENT):
		if err := p.expectKeyword(token.ROW); err != nil {
			return nil, err
		}
		bound.Kind = core.BoundCurrentRow

	default:
		offset, err := p.parseExpressionWithPrecedence(precBitOr)
		if err != nil {
			return nil, err
		}
		bound.Offset = offset
		switch {
		case p.match(token.PRECEDING):
			bound.Kind = core.BoundExprPreceding
		case p.match(token.FOLLOWING):
			bound.Kind = core.BoundExprFollowing
		default:
			return nil, p.fail("PRECEDING", "FOLLOWING")
		}
	}

	return bound, nil
}
