// Package merge combines value trees: objects merge key by key, every
// other pairing is replaced by the overlay.
package merge

import (
	"strings"

	"github.com/signadot/tmpl/debug"
	"github.com/signadot/tmpl/ir"
)

type frame struct {
	base, overlay *ir.Node
	path          string
}

// Merge applies overlay on top of base, modifying base in place.
//
// When both are objects, every key of overlay is merged into the value
// base has at that key (Null if absent) and keys only in base are kept.
// Otherwise base becomes a deep copy of overlay.  Arrays are replaced,
// never merged element-wise.  overlay is not modified and shares no
// memory with base afterwards.
func Merge(base, overlay *ir.Node) {
	work := []frame{{base: base, overlay: overlay, path: "$"}}
	for len(work) > 0 {
		n := len(work) - 1
		f := work[n]
		work = work[:n]
		if f.base == f.overlay {
			continue
		}
		if f.base.Type == ir.ObjectType && f.overlay.Type == ir.ObjectType {
			for i, field := range f.overlay.Fields {
				key := field.String
				child := f.base.Get(key)
				if child == nil {
					child = ir.Null()
					f.base.Set(key, child)
				}
				work = append(work, frame{
					base:    child,
					overlay: f.overlay.Values[i],
					path:    childPath(f.path, key),
				})
			}
			continue
		}
		if debug.Merge() {
			debug.Logf("merge: replace %s (%s) with %v\n", f.path, f.base.Type, f.overlay)
		}
		f.overlay.CloneTo(f.base)
	}
}

// Fold merges docs in order onto Null.  Later documents win.
func Fold(docs ...*ir.Node) *ir.Node {
	res := ir.Null()
	for _, doc := range docs {
		Merge(res, doc)
	}
	return res
}

func childPath(parent, key string) string {
	if key != "" && strings.IndexAny(key, "'.*$[] ") == -1 {
		return parent + "." + key
	}
	return parent + ".'" + strings.ReplaceAll(key, "'", "\\'") + "'"
}
