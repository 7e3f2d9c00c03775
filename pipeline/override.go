package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/tmpl/format"
	"github.com/signadot/tmpl/ir"
	"github.com/signadot/tmpl/parse"
)

var ErrBadOverride = errors.New("expected path=value")

// ParseOverride turns "a.b.c=value" into {a: {b: {c: value}}}.  The
// value is read as YAML, so "3" is a number and "[x, y]" an array.
func ParseOverride(arg string) (*ir.Node, error) {
	key, val, ok := strings.Cut(arg, "=")
	if !ok {
		return nil, fmt.Errorf("%w, got %q", ErrBadOverride, arg)
	}
	parts := strings.Split(key, ".")
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: empty key in path %q", ErrBadOverride, key)
		}
	}
	res := ir.FromString("")
	if val != "" {
		var err error
		res, err = parse.Parse([]byte(val), parse.ParseFormat(format.YAMLFormat))
		if err != nil {
			return nil, fmt.Errorf("value of %s: %w", key, err)
		}
	}
	for i := len(parts) - 1; i >= 0; i-- {
		obj := ir.Object()
		obj.Set(parts[i], res)
		res = obj
	}
	return res, nil
}
