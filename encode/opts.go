package encode

import "github.com/signadot/tmpl/format"

type EncState struct {
	format format.Format
	indent string
}

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// EncodeIndent sets the JSON indentation; the empty string gives
// compact output.
func EncodeIndent(indent string) EncodeOption {
	return func(es *EncState) { es.indent = indent }
}
