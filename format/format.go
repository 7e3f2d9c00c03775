// Package format names the document formats tmpl reads and writes.
package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
	CBORFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"j":    JSONFormat,
		"json": JSONFormat,
		"y":    YAMLFormat,
		"yaml": YAMLFormat,
		"c":    CBORFormat,
		"cbor": CBORFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// FromPath picks a format from the extension of path.  Unknown
// extensions are read as JSON.
func FromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLFormat
	case ".cbor":
		return CBORFormat
	default:
		return JSONFormat
	}
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case CBORFormat:
		return []byte("cbor"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}
