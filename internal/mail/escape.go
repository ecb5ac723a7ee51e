package mail

import "strings"

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes user text for interpolation into an HTML body
func EscapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

// escapeMultiline escapes s and turns line breaks into <br>.
func escapeMultiline(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(EscapeHTML(s), "\n", "<br>")
}
