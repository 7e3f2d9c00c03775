// Package parse decodes JSON, YAML and CBOR documents into *ir.Node.
package parse

import (
	"fmt"

	"github.com/signadot/tmpl/debug"
	"github.com/signadot/tmpl/format"
	"github.com/signadot/tmpl/ir"
)

// Parse decodes a single document.  Errors wrap ErrParse.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{format: format.JSONFormat}
	for _, opt := range opts {
		opt(pOpts)
	}
	var (
		node *ir.Node
		err  error
	)
	switch pOpts.format {
	case format.JSONFormat:
		node, err = parseJSON(d)
	case format.YAMLFormat:
		node, err = parseYAML(d)
	case format.CBORFormat:
		node, err = parseCBOR(d)
	default:
		return nil, fmt.Errorf("%w: %w: %d", ErrParse, format.ErrBadFormat, pOpts.format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, pOpts.format, err)
	}
	if debug.Load() {
		debug.Logf("parsed %s document: %v\n", pOpts.format, node)
	}
	return node, nil
}
