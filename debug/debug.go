// Package debug switches on diagnostic output to stderr from
// TMPL_DEBUG_* environment variables.
package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/signadot/tmpl/ir"
)

type debug struct {
	Load   bool
	Merge  bool
	Render bool
}

var (
	d   *debug
	out io.Writer = os.Stderr
)

func init() {
	d = &debug{}
	d.Load = boolEnv("TMPL_DEBUG_LOAD")
	d.Merge = boolEnv("TMPL_DEBUG_MERGE")
	d.Render = boolEnv("TMPL_DEBUG_RENDER")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Load() bool {
	return d.Load
}
func Merge() bool {
	return d.Merge
}
func Render() bool {
	return d.Render
}

// Logf writes to stderr, rendering *ir.Node and JSON-like arguments as
// indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			if x == nil {
				args[i] = "<nil>"
				continue
			}
			d, err := x.MarshalJSON()
			if err != nil {
				args[i] = fmt.Sprintf("[raw *ir.Node] %v", x)
				continue
			}
			args[i] = string(d)
		default:
		}
	}
	fmt.Fprintf(out, msg, args...)
}
