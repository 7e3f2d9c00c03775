package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/signadot/tmpl/ir"

	"github.com/tidwall/jsonc"
)

// parseJSON accepts JSON with comments and trailing commas.  Object
// keys keep their document order; a repeated key keeps its first
// position and its last value.
func parseJSON(d []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(d)))
	dec.UseNumber()
	node, err := decodeJSON(dec)
	if err != nil {
		return nil, err
	}
	tok, err := dec.Token()
	if err == nil {
		return nil, fmt.Errorf("unexpected %v after top-level value", tok)
	}
	if !errors.Is(err, io.EOF) {
		return nil, err
	}
	return node, nil
}

func decodeJSON(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch x := tok.(type) {
	case json.Delim:
		switch x {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected %q at offset %d", x, dec.InputOffset())
		}
	case string:
		return ir.FromString(x), nil
	case json.Number:
		return ir.FromNumber(string(x)), nil
	case bool:
		return ir.FromBool(x), nil
	case nil:
		return ir.Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeJSONObject(dec *json.Decoder) (*ir.Node, error) {
	res := ir.Object()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		val, err := decodeJSON(dec)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", key, err)
		}
		res.Set(key, val)
	}
	if err := closeDelim(dec); err != nil {
		return nil, err
	}
	return res, nil
}

func decodeJSONArray(dec *json.Decoder) (*ir.Node, error) {
	res := ir.FromSlice([]*ir.Node{})
	for dec.More() {
		val, err := decodeJSON(dec)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", len(res.Values), err)
		}
		res.Values = append(res.Values, val)
	}
	if err := closeDelim(dec); err != nil {
		return nil, err
	}
	return res, nil
}

func closeDelim(dec *json.Decoder) error {
	_, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
