package parse

import (
	"github.com/signadot/tmpl/ir"

	"github.com/fxamacker/cbor/v2"
)

// cborDecMode decodes maps into map[any]any so that integer keys are
// accepted; ir.FromAny turns them into string keys.
var cborDecMode cbor.DecMode

func init() {
	var err error
	cborDecMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("parse: CBOR decoder initialization failed: " + err.Error())
	}
}

func parseCBOR(d []byte) (*ir.Node, error) {
	var v any
	if err := cborDecMode.Unmarshal(d, &v); err != nil {
		return nil, err
	}
	return ir.FromAny(v)
}
