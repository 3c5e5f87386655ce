package core

import "github.com/leapstack-labs/sqlbridge/pkg/token"

// Node is the base interface for all AST nodes.
type Node interface {
	// Pos returns the position of the first character of the node.
	Pos() token.Position
	// End returns the position of the character immediately after the node.
	End() token.Position
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Statement is a marker interface for statement nodes.
type Statement interface {
	Node
	stmtNode()
}

// NodeInfo carries source-span metadata and is embedded in every node.
// It is never part of structural equality: tests and the round-trip
// property compare ASTs with NodeInfo ignored.
type NodeInfo struct {
	Span            token.Span       `json:"-"`
	LeadingComments []*token.Comment `json:"-"`
}

// Pos implements Node.
func (n NodeInfo) Pos() token.Position { return n.Span.Start }

// End implements Node.
func (n NodeInfo) End() token.Position { return n.Span.End }

// SetSpan records the source range covered by the node.
func (n *NodeInfo) SetSpan(s token.Span) { n.Span = s }

// AttachLeadingComment adds a comment that preceded the node in source.
func (n *NodeInfo) AttachLeadingComment(c *token.Comment) {
	n.LeadingComments = append(n.LeadingComments, c)
}
