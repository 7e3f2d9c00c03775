package render

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// EscapeHTML escapes the characters that are unsafe in HTML text and
// attribute values, including '/'.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
