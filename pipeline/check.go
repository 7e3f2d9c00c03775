package pipeline

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

var ErrDrift = errors.New("output is out of date")

// checkOutput compares text with the content of path.  A missing file
// counts as empty.  Differences are written to w as a line diff.
func checkOutput(path, text string, w io.Writer) error {
	if path == "" {
		return &Error{Stage: Check, Err: errors.New("no output file to check against")}
	}
	d, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &Error{Stage: OutputOpen, Path: path, Err: err}
	}
	if string(d) == text {
		return nil
	}
	if w != nil {
		io.WriteString(w, LineDiff(path, string(d), text))
	}
	return &Error{Stage: Check, Path: path, Err: ErrDrift}
}

// LineDiff formats the line differences from one text to another with
// -, + and space prefixes.
func LineDiff(name, from, to string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	buf := &strings.Builder{}
	buf.WriteString("--- " + name + "\n+++ " + name + " (rendered)\n")
	for _, diff := range diffs {
		prefix := " "
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, ln := range strings.SplitAfter(diff.Text, "\n") {
			if ln == "" {
				continue
			}
			buf.WriteString(prefix + ln)
			if !strings.HasSuffix(ln, "\n") {
				buf.WriteString("\n\\ No newline at end of file\n")
			}
		}
	}
	return buf.String()
}
