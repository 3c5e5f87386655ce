package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// SyntaxError reports the position where parsing failed, the set of
// things that would have been valid there, and what was found instead.
//
// The position is the furthest point any parse attempt reached, not the
// start of the failing statement, so the message points at the actual
// problem even when the grammar backtracked.
type SyntaxError struct {
	Pos      token.Position
	Expected []string // deduplicated, in first-recorded order
	Found    string
}

func (e *SyntaxError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "syntax error at line %d, column %d", e.Pos.Line, e.Pos.Column)
	if len(e.Expected) > 0 {
		sb.WriteString(": expected ")
		sb.WriteString(joinAlternatives(e.Expected))
	}
	if e.Found != "" {
		if len(e.Expected) > 0 {
			sb.WriteString(" but found ")
		} else {
			sb.WriteString(": unexpected ")
		}
		sb.WriteString(e.Found)
	}
	return sb.String()
}

// joinAlternatives renders a list as "a", "a or b", "a, b or c".
func joinAlternatives(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
	}
}

// describeToken renders a token for error messages.
func describeToken(t token.Token) string {
	switch t.Type {
	case token.EOF:
		return "end of input"
	case token.IDENT, token.QIDENT:
		return fmt.Sprintf("identifier %q", t.Literal)
	case token.NUMBER:
		return fmt.Sprintf("number %s", t.Literal)
	case token.STRING:
		return fmt.Sprintf("string %q", t.Literal)
	case token.ILLEGAL:
		return fmt.Sprintf("unexpected character %q", t.Literal)
	default:
		return fmt.Sprintf("%q", t.Literal)
	}
}

// expectation tracks the furthest failure across all parse attempts.
// Attempts that fail earlier than the furthest point are discarded;
// attempts that fail at the same point merge their expected sets.
type expectation struct {
	offset   int
	tok      token.Token
	expected []string
	seen     map[string]bool
}

func (x *expectation) record(offset int, tok token.Token, wanted ...string) {
	if offset < x.offset {
		return
	}
	if offset > x.offset {
		x.offset = offset
		x.tok = tok
		x.expected = x.expected[:0]
		for k := range x.seen {
			delete(x.seen, k)
		}
	}
	if x.seen == nil {
		x.seen = make(map[string]bool)
	}
	for _, w := range wanted {
		if !x.seen[w] {
			x.seen[w] = true
			x.expected = append(x.expected, w)
		}
	}
}

func (x *expectation) err() *SyntaxError {
	return &SyntaxError{
		Pos:      x.tok.Pos,
		Expected: append([]string(nil), x.expected...),
		Found:    describeToken(x.tok),
	}
}
