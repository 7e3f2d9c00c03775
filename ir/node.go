// Package ir holds the in-memory value tree shared by parsing, merging
// and rendering.
package ir

import "strconv"

// Node is a tagged union over Null, Bool, Number, String, Array and
// Object values.  Objects keep their keys in Fields (string nodes) in
// insertion order, parallel to Values.  Arrays use only Values.
type Node struct {
	Type   Type
	Fields []*Node
	Values []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:   NumberType,
		Number: strconv.FormatInt(v, 10),
		Int64:  &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Number:  strconv.FormatFloat(f, 'g', -1, 64),
		Float64: &f,
	}
}

// FromNumber records a number given as text, keeping an Int64 or
// Float64 when the text parses as one.
func FromNumber(text string) *Node {
	res := &Node{Type: NumberType, Number: text}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		res.Int64 = &i
		return res
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		res.Float64 = &f
	}
	return res
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func FromSlice(vs []*Node) *Node {
	return &Node{
		Type:   ArrayType,
		Values: vs,
	}
}

// Object builds an empty object.
func Object() *Node {
	return &Node{Type: ObjectType}
}

// Index returns the position of key in an object, or -1.
func (y *Node) Index(key string) int {
	if y.Type != ObjectType {
		return -1
	}
	for i, f := range y.Fields {
		if f.String == key {
			return i
		}
	}
	return -1
}

// Get returns the value at key in an object, or nil.
func (y *Node) Get(key string) *Node {
	i := y.Index(key)
	if i == -1 {
		return nil
	}
	return y.Values[i]
}

// Set replaces the value at key, appending the key if it is absent.
// Set panics if y is not an object.
func (y *Node) Set(key string, v *Node) {
	if y.Type != ObjectType {
		panic("Set on " + y.Type.String())
	}
	if i := y.Index(key); i != -1 {
		y.Values[i] = v
		return
	}
	y.Fields = append(y.Fields, FromString(key))
	y.Values = append(y.Values, v)
}

func (y *Node) Keys() []string {
	res := make([]string, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = f.String
	}
	return res
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

// CloneTo deep copies y into dst, overwriting dst, and returns dst.
func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Fields = nil
	dst.Values = nil
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, f := range y.Fields {
			dst.Fields[i] = f.Clone()
		}
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			dst.Values[i] = v.Clone()
		}
	}
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Number = y.Number
	dst.Float64 = nil
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	dst.Int64 = nil
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	return dst
}
