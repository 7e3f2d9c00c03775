package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr/ast"
)

var ErrVariableNotFound = errors.New("variable not found in context")

// checker walks an expression and reports references to unbound
// variables and to keys missing along static member paths.
type checker struct {
	vars map[string]any
	lets map[string]int
}

func (c *checker) check(node ast.Node) error {
	if node == nil {
		return nil
	}
	switch n := node.(type) {
	case *ast.IdentifierNode:
		return c.resolve(n.Value, nil)
	case *ast.MemberNode:
		root, path, ok := staticPath(n)
		if ok {
			return c.resolve(root, path)
		}
		if optional(n) {
			return nil
		}
		if err := c.check(n.Node); err != nil {
			return err
		}
		return c.check(n.Property)
	case *ast.ChainNode:
		// optional chaining tolerates missing keys.
		return nil
	case *ast.BinaryNode:
		if n.Operator != "??" {
			if err := c.check(n.Left); err != nil {
				return err
			}
		}
		return c.check(n.Right)
	case *ast.UnaryNode:
		return c.check(n.Node)
	case *ast.ConditionalNode:
		return c.checkAll(n.Cond, n.Exp1, n.Exp2)
	case *ast.ArrayNode:
		return c.checkAll(n.Nodes...)
	case *ast.MapNode:
		return c.checkAll(n.Pairs...)
	case *ast.PairNode:
		return c.check(n.Value)
	case *ast.SliceNode:
		return c.checkAll(n.Node, n.From, n.To)
	case *ast.CallNode:
		return c.checkAll(n.Arguments...)
	case *ast.BuiltinNode:
		return c.checkAll(n.Arguments...)
	case *ast.PredicateNode:
		return c.check(n.Node)
	case *ast.VariableDeclaratorNode:
		if err := c.check(n.Value); err != nil {
			return err
		}
		c.lets[n.Name]++
		defer func() { c.lets[n.Name]-- }()
		return c.check(n.Expr)
	case *ast.SequenceNode:
		return c.checkAll(n.Nodes...)
	}
	return nil
}

func (c *checker) checkAll(nodes ...ast.Node) error {
	for _, node := range nodes {
		if err := c.check(node); err != nil {
			return err
		}
	}
	return nil
}

// resolve follows path from the variable root through nested objects.
// Values that are not objects end the check; expr reports those.
func (c *checker) resolve(root string, path []string) error {
	if c.lets[root] > 0 {
		return nil
	}
	cur, ok := c.vars[root]
	if !ok {
		return fmt.Errorf("%w: %s", ErrVariableNotFound, root)
	}
	for i, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[key]
		if !ok {
			name := root + "." + strings.Join(path[:i+1], ".")
			return fmt.Errorf("%w: %s", ErrVariableNotFound, name)
		}
	}
	return nil
}

// staticPath returns the variable and keys of a chain like a.b["c"].
func staticPath(n *ast.MemberNode) (string, []string, bool) {
	var rev []string
	var cur ast.Node = n
	for {
		switch x := cur.(type) {
		case *ast.MemberNode:
			if x.Optional {
				return "", nil, false
			}
			prop, ok := x.Property.(*ast.StringNode)
			if !ok {
				return "", nil, false
			}
			rev = append(rev, prop.Value)
			cur = x.Node
		case *ast.IdentifierNode:
			path := make([]string, len(rev))
			for i, key := range rev {
				path[len(rev)-1-i] = key
			}
			return x.Value, path, true
		default:
			return "", nil, false
		}
	}
}

func optional(n *ast.MemberNode) bool {
	var cur ast.Node = n
	for {
		x, ok := cur.(*ast.MemberNode)
		if !ok {
			return false
		}
		if x.Optional {
			return true
		}
		cur = x.Node
	}
}
