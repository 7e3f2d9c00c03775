// Package source opens source documents, decompressing .gz, .zst and
// .lz4 files on the fly.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/signadot/tmpl/format"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

type Compression int

const (
	NoCompression Compression = iota
	GzipCompression
	ZstdCompression
	LZ4Compression
)

func (c Compression) String() string {
	switch c {
	case GzipCompression:
		return "gzip"
	case ZstdCompression:
		return "zstd"
	case LZ4Compression:
		return "lz4"
	default:
		return "none"
	}
}

// Split returns the compression named by the extension of path and the
// path without that extension.
func Split(path string) (Compression, string) {
	ext := filepath.Ext(path)
	c, ok := map[string]Compression{
		".gz":   GzipCompression,
		".gzip": GzipCompression,
		".zst":  ZstdCompression,
		".zstd": ZstdCompression,
		".lz4":  LZ4Compression,
	}[strings.ToLower(ext)]
	if !ok {
		return NoCompression, path
	}
	return c, strings.TrimSuffix(path, ext)
}

// FormatOf picks the document format from path, looking through any
// compression extension.
func FormatOf(path string) format.Format {
	_, base := Split(path)
	return format.FromPath(base)
}

type readCloser struct {
	io.Reader
	closers []func() error
}

func (rc *readCloser) Close() error {
	var errs []error
	for i := len(rc.closers) - 1; i >= 0; i-- {
		errs = append(errs, rc.closers[i]())
	}
	return errors.Join(errs...)
}

// Open opens path for reading.  Closing the result closes the
// decompressor and the file.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc := &readCloser{Reader: f, closers: []func() error{f.Close}}
	c, _ := Split(path)
	switch c {
	case GzipCompression:
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", c, err)
		}
		rc.Reader = zr
		rc.closers = append(rc.closers, zr.Close)
	case ZstdCompression:
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", c, err)
		}
		rc.Reader = zr
		rc.closers = append(rc.closers, func() error {
			zr.Close()
			return nil
		})
	case LZ4Compression:
		rc.Reader = lz4.NewReader(f)
	}
	return rc, nil
}

// ReadFile reads the whole, decompressed content of path.
func ReadFile(path string) ([]byte, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	d, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}
