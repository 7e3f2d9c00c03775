package parse

import "github.com/signadot/tmpl/format"

type parseOpts struct {
	format format.Format
}

type ParseOption func(*parseOpts)

// ParseFormat selects the document format.  The default is JSON.
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}
