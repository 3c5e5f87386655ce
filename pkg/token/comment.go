package token

// CommentKind distinguishes the three comment styles.
type CommentKind int

// Comment kinds.
const (
	LineComment  CommentKind = iota // -- comment
	HashComment                     // # comment (mysql family)
	BlockComment                    // /* comment */
)

// Comment represents a SQL comment with position. Comments are collected
// by the lexer as a side channel; they never appear in the token stream.
type Comment struct {
	Kind CommentKind
	Text string // includes delimiters (--, #, or /* */)
	Span Span
}

// IsLineComment returns true for -- and # comments.
func (c *Comment) IsLineComment() bool {
	return c.Kind == LineComment || c.Kind == HashComment
}

// IsBlockComment returns true if this is a block comment.
func (c *Comment) IsBlockComment() bool {
	return c.Kind == BlockComment
}
