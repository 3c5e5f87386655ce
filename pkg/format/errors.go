package format

import "fmt"

// RenderError reports an AST the renderer cannot turn into SQL: an
// unknown node type, a malformed window frame, or a construct the
// target dialect has no spelling for. Rendering stops at the first one;
// no partial output is returned.
type RenderError struct {
	Node   any
	Reason string
}

func (e *RenderError) Error() string {
	if e.Node != nil {
		return fmt.Sprintf("cannot render %T: %s", e.Node, e.Reason)
	}
	return "cannot render: " + e.Reason
}

// renderErr builds a RenderError for the given node.
func renderErr(node any, reason string) error {
	return &RenderError{Node: node, Reason: reason}
}
