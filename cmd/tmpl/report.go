package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/tmpl/pipeline"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// report prints err and its causes one per line, outermost first.
func report(w io.Writer, err error, colored bool) {
	head := color.New(color.FgRed, color.Bold)
	if colored {
		head.EnableColor()
	} else {
		head.DisableColor()
	}
	for i, cause := range pipeline.Causes(err) {
		if i == 0 {
			cause = head.Sprint(cause)
		}
		fmt.Fprintln(w, cause)
	}
}

func colorable(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
