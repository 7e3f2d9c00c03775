package parse

import (
	"fmt"

	"github.com/signadot/tmpl/ir"

	"github.com/goccy/go-yaml"
)

// parseYAML decodes the first YAML document, keeping mapping order.
func parseYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return FromYAML(v)
}

// FromYAML converts a value decoded by go-yaml with ordered maps.
func FromYAML(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		res := ir.Object()
		for _, item := range x {
			key := fmt.Sprint(item.Key)
			if item.Key == nil {
				key = "null"
			}
			val, err := FromYAML(item.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			res.Set(key, val)
		}
		return res, nil
	case []any:
		res := ir.FromSlice(make([]*ir.Node, len(x)))
		for i, elt := range x {
			val, err := FromYAML(elt)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			res.Values[i] = val
		}
		return res, nil
	default:
		return ir.FromAny(v)
	}
}
