// Package render renders templates against a Context.
//
// A template is literal text with {{ expression }} interpolations and
// {# comments #}.  Expressions use the expr language
// (github.com/expr-lang/expr): member access (user.name), indexing,
// operators, builtins and pipes (user.name | upper()).  A '-' just
// inside a delimiter trims the whitespace on that side of the tag.
//
// Variable resolution is strict: an unbound variable or a missing key
// on a static path such as user.name fails with ErrVariableNotFound.
// The ?? operator and optional chaining (?.) opt out.
package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/tmpl/debug"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/parser"
)

type Template struct {
	segs []segment
}

// Parse splits src into text and expressions.  Expressions are compiled
// against the context at Execute time.
func Parse(src string) (*Template, error) {
	segs, err := lex(src)
	if err != nil {
		return nil, err
	}
	return &Template{segs: segs}, nil
}

// Render parses src and executes it against ctx.
func Render(src string, ctx *Context, escape bool) (string, error) {
	t, err := Parse(src)
	if err != nil {
		return "", err
	}
	return t.Execute(ctx, escape)
}

// Execute renders the template.  With escape, interpolated values are
// passed through EscapeHTML; literal text never is.
func (t *Template) Execute(ctx *Context, escape bool) (string, error) {
	if ctx == nil {
		ctx = &Context{vars: map[string]any{}}
	}
	buf := &strings.Builder{}
	for _, seg := range t.segs {
		if seg.kind == textSeg {
			buf.WriteString(seg.text)
			continue
		}
		s, err := evalSegment(seg, ctx)
		if err != nil {
			return "", fmt.Errorf("line %d: {{ %s }}: %w", seg.line, seg.text, err)
		}
		if escape {
			s = EscapeHTML(s)
		}
		buf.WriteString(s)
	}
	return buf.String(), nil
}

func evalSegment(seg segment, ctx *Context) (string, error) {
	tree, err := parser.Parse(seg.text)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	c := &checker{vars: ctx.vars, lets: map[string]int{}}
	if err := c.check(tree.Node); err != nil {
		return "", err
	}
	program, err := expr.Compile(seg.text, expr.Env(ctx.vars), expr.AllowUndefinedVariables())
	if err != nil {
		return "", err
	}
	v, err := expr.Run(program, ctx.vars)
	if err != nil {
		return "", err
	}
	if debug.Render() {
		debug.Logf("render: line %d: %s gave %#v\n", seg.line, seg.text, v)
	}
	return toText(v)
}

// toText formats an expression result for output.
func toText(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case json.Number:
		return string(x), nil
	case map[string]any, []any:
		buf := &strings.Builder{}
		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(x); err != nil {
			return "", err
		}
		return strings.TrimSuffix(buf.String(), "\n"), nil
	default:
		return fmt.Sprint(x), nil
	}
}
