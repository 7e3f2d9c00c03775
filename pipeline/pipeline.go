// Package pipeline runs one rendering: load the source documents, fold
// them into one variable tree, render the template against it and write
// the result.
//
// Stages run in order and the first failure ends the run with an
// *Error naming the stage.  Nothing is written to the output until the
// template has rendered.
package pipeline

import (
	"bytes"
	"io"
	"os"

	"github.com/signadot/tmpl/debug"
	"github.com/signadot/tmpl/encode"
	"github.com/signadot/tmpl/format"
	"github.com/signadot/tmpl/ir"
	"github.com/signadot/tmpl/merge"
	"github.com/signadot/tmpl/parse"
	"github.com/signadot/tmpl/render"
	"github.com/signadot/tmpl/source"
)

type Config struct {
	// Sources are merged in order, later ones winning.
	Sources []string
	// Template is the template file; standard input when empty.
	Template string
	// Output is the output file; standard output when empty.  The file
	// is created or truncated.
	Output string
	// Escape HTML-escapes interpolated values.
	Escape bool

	// InFormat overrides the format detected from source extensions.
	InFormat *format.Format
	// Overrides are path=value assignments merged after the sources.
	Overrides []string
	// Patch is a JSON patch file applied to the merged variables.
	Patch string
	// Show writes the variables in ShowFormat instead of rendering.
	Show       bool
	ShowFormat format.Format
	// Check compares the rendering with Output instead of writing it.
	Check bool
}

// IO carries the standard streams of a run.  Err receives -check diffs.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run executes cfg.
func Run(cfg *Config, streams *IO) error {
	docs, err := Load(cfg.Sources, cfg.InFormat)
	if err != nil {
		return err
	}
	vars := merge.Fold(docs...)
	for _, o := range cfg.Overrides {
		ov, err := ParseOverride(o)
		if err != nil {
			return &Error{Stage: Override, Path: o, Err: err}
		}
		merge.Merge(vars, ov)
	}
	if cfg.Patch != "" {
		vars, err = ApplyPatch(vars, cfg.Patch)
		if err != nil {
			return &Error{Stage: Patch, Path: cfg.Patch, Err: err}
		}
	}
	if cfg.Show {
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(vars, buf, encode.EncodeFormat(cfg.ShowFormat)); err != nil {
			return &Error{Stage: Encode, Err: err}
		}
		return writeOutput(cfg.Output, buf.Bytes(), streams.Out)
	}
	rctx, err := render.NewContext(vars)
	if err != nil {
		return &Error{Stage: ContextBuild, Err: err}
	}
	src, err := readTemplate(cfg.Template, streams.In)
	if err != nil {
		return err
	}
	text, err := render.Render(src, rctx, cfg.Escape)
	if err != nil {
		return &Error{Stage: Render, Path: cfg.Template, Err: err}
	}
	if cfg.Check {
		return checkOutput(cfg.Output, text, streams.Err)
	}
	return writeOutput(cfg.Output, []byte(text), streams.Out)
}

// Load reads and parses paths in order, stopping at the first failure.
// A nil inFormat selects each document's format from its extension.
func Load(paths []string, inFormat *format.Format) ([]*ir.Node, error) {
	docs := make([]*ir.Node, 0, len(paths))
	for _, path := range paths {
		d, err := source.ReadFile(path)
		if err != nil {
			return nil, &Error{Stage: DocumentOpen, Path: path, Err: err}
		}
		f := source.FormatOf(path)
		if inFormat != nil {
			f = *inFormat
		}
		if debug.Load() {
			debug.Logf("load: %s as %s (%d bytes)\n", path, f, len(d))
		}
		doc, err := parse.Parse(d, parse.ParseFormat(f))
		if err != nil {
			return nil, &Error{Stage: DocumentParse, Path: path, Err: err}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func readTemplate(path string, in io.Reader) (string, error) {
	if path != "" {
		d, err := os.ReadFile(path)
		if err != nil {
			return "", &Error{Stage: TemplateOpen, Path: path, Err: err}
		}
		return string(d), nil
	}
	d, err := io.ReadAll(in)
	if err != nil {
		return "", &Error{Stage: StdinRead, Err: err}
	}
	return string(d), nil
}

func writeOutput(path string, d []byte, out io.Writer) error {
	if path == "" {
		if _, err := out.Write(d); err != nil {
			return &Error{Stage: OutputWrite, Err: err}
		}
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return &Error{Stage: OutputOpen, Path: path, Err: err}
	}
	if _, err := f.Write(d); err != nil {
		f.Close()
		return &Error{Stage: OutputWrite, Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &Error{Stage: OutputWrite, Path: path, Err: err}
	}
	return nil
}
