// Package encode writes *ir.Node values as JSON, YAML or CBOR.
package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/signadot/tmpl/format"
	"github.com/signadot/tmpl/ir"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"
)

var cborEncMode cbor.EncMode

func init() {
	var err error
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("encode: CBOR encoder initialization failed: " + err.Error())
	}
}

// Encode writes node to w.  Text formats end with a newline.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{format: format.JSONFormat, indent: "  "}
	for _, opt := range opts {
		opt(es)
	}
	var (
		d   []byte
		err error
	)
	switch es.format {
	case format.JSONFormat:
		d, err = encodeJSON(node, es.indent)
	case format.YAMLFormat:
		d, err = yaml.Marshal(ToYAML(node))
	case format.CBORFormat:
		d, err = cborEncMode.Marshal(ir.ToAny(node))
	default:
		return fmt.Errorf("%w: %d", format.ErrBadFormat, es.format)
	}
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", es.format, err)
	}
	_, err = w.Write(d)
	return err
}

func encodeJSON(node *ir.Node, indent string) ([]byte, error) {
	d, err := node.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if indent == "" {
		return append(d, '\n'), nil
	}
	buf := bytes.NewBuffer(nil)
	if err := json.Indent(buf, d, "", indent); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// ToYAML converts node to values go-yaml encodes with object keys in
// order.
func ToYAML(node *ir.Node) any {
	switch node.Type {
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i, f := range node.Fields {
			res[i] = yaml.MapItem{Key: f.String, Value: ToYAML(node.Values[i])}
		}
		return res
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = ToYAML(v)
		}
		return res
	default:
		return ir.ToAny(node)
	}
}
