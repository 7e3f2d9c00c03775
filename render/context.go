package render

import (
	"errors"
	"fmt"

	"github.com/signadot/tmpl/ir"
)

var ErrBadContext = errors.New("context root must be an object")

// Context is the set of variables a template renders against.
type Context struct {
	vars map[string]any
}

// NewContext binds the top-level keys of node.  A nil or Null node
// gives an empty context; any other non-object fails with
// ErrBadContext.
func NewContext(node *ir.Node) (*Context, error) {
	if node == nil || node.Type == ir.NullType {
		return &Context{vars: map[string]any{}}, nil
	}
	if node.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w, got %s", ErrBadContext, node.Type)
	}
	return &Context{vars: ir.ToAny(node).(map[string]any)}, nil
}
