package ir

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"math/big"
	"slices"
	"strconv"
	"time"
)

// ToAny converts a node to plain Go values: map[string]any, []any,
// string, int, float64, bool and nil.
func ToAny(node *Node) any {
	switch node.Type {
	case ObjectType:
		res := make(map[string]any, len(node.Fields))
		for i, f := range node.Fields {
			res[f.String] = ToAny(node.Values[i])
		}
		return res
	case ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToAny(elt)
		}
		return res
	case StringType:
		return node.String
	case NumberType:
		if node.Int64 != nil {
			return int(*node.Int64)
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return json.Number(node.Number)
	case BoolType:
		return node.Bool
	case NullType:
		return nil
	default:
		panic("impossible production")
	}
}

// FromAny converts decoded Go values to a node.  Maps produce objects
// with sorted keys.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x.Clone(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case []byte:
		return FromString(string(x)), nil
	case json.Number:
		return FromNumber(string(x)), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case *big.Int:
		return FromNumber(x.String()), nil
	case time.Time:
		return FromString(x.Format(time.RFC3339Nano)), nil
	case []any:
		res := FromSlice(make([]*Node, len(x)))
		for i, elt := range x {
			n, err := FromAny(elt)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			res.Values[i] = n
		}
		return res, nil
	case map[string]any:
		res := Object()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			n, err := FromAny(x[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			res.Set(k, n)
		}
		return res, nil
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, elt := range x {
			m[keyString(k)] = elt
		}
		return FromAny(m)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, v)
	}
}

func fromUint(u uint64) *Node {
	if u <= math.MaxInt64 {
		return FromInt(int64(u))
	}
	return FromNumber(strconv.FormatUint(u, 10))
}

func keyString(k any) string {
	switch x := k.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}
