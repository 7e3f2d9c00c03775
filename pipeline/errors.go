package pipeline

import (
	"errors"
	"strconv"
	"strings"
)

// Stage identifies the step of a run that failed.
type Stage int

const (
	DocumentOpen Stage = iota
	DocumentParse
	Override
	Patch
	Encode
	ContextBuild
	TemplateOpen
	StdinRead
	Render
	OutputOpen
	OutputWrite
	Check
)

func (s Stage) String() string {
	d, ok := map[Stage]string{
		DocumentOpen:  "Failed to open source document",
		DocumentParse: "Failed to parse source document",
		Override:      "Failed to apply variable override",
		Patch:         "Failed to apply variable patch",
		Encode:        "Failed to encode variables",
		ContextBuild:  "Failed to build render context",
		TemplateOpen:  "Failed to load template from file",
		StdinRead:     "Failed to read template from stdin",
		Render:        "Failed to render template",
		OutputOpen:    "Failed to open output file",
		OutputWrite:   "Failed to write output",
		Check:         "Rendered output differs from output file",
	}[s]
	if !ok {
		return "<unknown stage " + strconv.Itoa(int(s)) + ">"
	}
	return d
}

// Error is the terminal error of a run.
type Error struct {
	Stage Stage
	// Path names the file or argument involved, if any.
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Stage.String()
	if e.Path != "" {
		msg += " " + strconv.Quote(e.Path)
	}
	if e.Err == nil {
		return msg
	}
	return msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StageOf reports the stage of the first *Error in err's chain.
func StageOf(err error) (Stage, bool) {
	var pe *Error
	if !errors.As(err, &pe) {
		return 0, false
	}
	return pe.Stage, true
}

// Causes splits err into the messages of its wrapping layers, outermost
// first.  Each layer contributes its own text without the text of the
// error it wraps.  When a layer wraps several errors the last one is
// followed.  A layer that starts with the text of the error it wraps,
// as in fmt.Errorf("%w: detail", ErrSentinel), is the last cause.
func Causes(err error) []string {
	var res []string
	for err != nil {
		next := unwrapLast(err)
		msg := err.Error()
		if next != nil {
			nmsg := next.Error()
			if strings.HasPrefix(msg, nmsg) {
				next = nil
			} else {
				msg = strings.TrimSuffix(msg, ": "+nmsg)
			}
		}
		res = append(res, msg)
		err = next
	}
	return res
}

func unwrapLast(err error) error {
	switch x := err.(type) {
	case interface{ Unwrap() error }:
		return x.Unwrap()
	case interface{ Unwrap() []error }:
		errs := x.Unwrap()
		if len(errs) == 0 {
			return nil
		}
		return errs[len(errs)-1]
	default:
		return nil
	}
}
