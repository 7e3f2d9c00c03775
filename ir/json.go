package ir

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// MarshalJSON encodes the value as plain JSON, keeping object keys in
// insertion order.
func (y *Node) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := y.writeJSON(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (y *Node) writeJSON(buf *bytes.Buffer) error {
	switch y.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(y.Bool))
	case NumberType:
		buf.WriteString(y.numberText())
	case StringType:
		if err := writeJSONString(buf, y.String); err != nil {
			return err
		}
	case ArrayType:
		buf.WriteByte('[')
		for i, v := range y.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := v.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i, f := range y.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, f.String); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := y.Values[i].writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// writeJSONString quotes s without escaping <, > and &.
func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}

func (y *Node) numberText() string {
	switch {
	case y.Number != "":
		return y.Number
	case y.Int64 != nil:
		return strconv.FormatInt(*y.Int64, 10)
	case y.Float64 != nil:
		return strconv.FormatFloat(*y.Float64, 'g', -1, 64)
	default:
		return "0"
	}
}
