package render

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSyntax    = errors.New("template syntax error")
	ErrStatement = errors.New("unsupported template statement")
)

type segKind int

const (
	textSeg segKind = iota
	exprSeg
)

type segment struct {
	kind segKind
	text string
	line int
}

const trimSet = " \t\r\n"

// lex splits src into literal text and {{ expression }} segments,
// dropping {# comments #} and applying '-' whitespace control.
func lex(src string) ([]segment, error) {
	var (
		segs     []segment
		trimNext bool
	)
	i := 0
	for i < len(src) {
		j := nextTag(src, i)
		text := src[i:]
		if j != -1 {
			text = src[i:j]
		}
		if trimNext {
			text = strings.TrimLeft(text, trimSet)
			trimNext = false
		}
		if j == -1 {
			segs = appendText(segs, text, lineAt(src, i))
			break
		}
		open := src[j : j+2]
		line := lineAt(src, j)
		start := j + 2
		if start < len(src) && src[start] == '-' {
			text = strings.TrimRight(text, trimSet)
			start++
		}
		segs = appendText(segs, text, lineAt(src, i))
		var (
			end int
			err error
		)
		switch open {
		case "{{":
			end, err = closeExpr(src, start)
		case "{#":
			end = strings.Index(src[start:], "#}")
			if end != -1 {
				end += start
			}
		case "{%":
			return nil, fmt.Errorf("%w: line %d: statement blocks {%% %%} are not supported", ErrStatement, line)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if end == -1 {
			return nil, fmt.Errorf("%w: line %d: unclosed %q", ErrSyntax, line, open)
		}
		body := src[start:end]
		if strings.HasSuffix(body, "-") {
			body = body[:len(body)-1]
			trimNext = true
		}
		if open == "{{" {
			body = strings.TrimSpace(body)
			if body == "" {
				return nil, fmt.Errorf("%w: line %d: empty expression", ErrSyntax, line)
			}
			segs = append(segs, segment{kind: exprSeg, text: body, line: line})
		}
		i = end + 2
	}
	return segs, nil
}

func appendText(segs []segment, text string, line int) []segment {
	if text == "" {
		return segs
	}
	return append(segs, segment{kind: textSeg, text: text, line: line})
}

// nextTag returns the index of the next "{{", "{#" or "{%" at or after
// i, or -1.
func nextTag(src string, i int) int {
	for {
		k := strings.IndexByte(src[i:], '{')
		if k == -1 || i+k+1 >= len(src) {
			return -1
		}
		k += i
		switch src[k+1] {
		case '{', '#', '%':
			return k
		}
		i = k + 1
	}
}

// closeExpr finds the "}}" ending an expression that starts at i,
// skipping over quoted strings.
func closeExpr(src string, i int) (int, error) {
	var quote byte
	for k := i; k < len(src); k++ {
		c := src[k]
		if quote != 0 {
			switch {
			case c == '\\' && quote != '`':
				k++
			case c == quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
		case '}':
			if k+1 < len(src) && src[k+1] == '}' {
				return k, nil
			}
		}
	}
	if quote != 0 {
		return -1, fmt.Errorf("%w: unterminated string in expression", ErrSyntax)
	}
	return -1, nil
}

func lineAt(src string, i int) int {
	return strings.Count(src[:i], "\n") + 1
}
