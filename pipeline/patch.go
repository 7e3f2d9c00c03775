package pipeline

import (
	"fmt"

	"github.com/signadot/tmpl/ir"
	"github.com/signadot/tmpl/parse"
	"github.com/signadot/tmpl/source"

	jsonpatch "github.com/evanphx/json-patch"
)

// ApplyPatch applies the RFC 6902 patch stored at path to vars.  The
// patch file may be in any source format.  Object keys of the result
// are sorted.
func ApplyPatch(vars *ir.Node, path string) (*ir.Node, error) {
	d, err := source.ReadFile(path)
	if err != nil {
		return nil, err
	}
	patchDoc, err := parse.Parse(d, parse.ParseFormat(source.FormatOf(path)))
	if err != nil {
		return nil, err
	}
	pd, err := patchDoc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch(pd)
	if err != nil {
		return nil, fmt.Errorf("invalid patch: %w", err)
	}
	doc, err := vars.MarshalJSON()
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(doc)
	if err != nil {
		return nil, err
	}
	return parse.Parse(out)
}
