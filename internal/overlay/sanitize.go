package overlay

import (
	"regexp"
	"strings"
)

// markupStripper removes characters significant to markup parsers.
// Messages and snippets are stored and exported as plain text, so the
// characters are removed outright rather than entity-escaped.
var markupStripper = strings.NewReplacer(
	"<", "",
	">", "",
	`"`, "",
	"'", "",
	"&", "",
)

// scriptScheme matches URL schemes that execute code when followed.
var scriptScheme = regexp.MustCompile(`(?i)(javascript|vbscript|livescript)\s*:`)

// eventHandlerFragment matches inline event-handler key=value
// fragments (onclick=..., onerror="..."), quoted or bare.
var eventHandlerFragment = regexp.MustCompile(`(?i)\bon[a-z]+\s*=\s*("[^"]*"|'[^']*'|\S+)`)

// Sanitize strips markup-significant characters, script-execution URL
// schemes, and inline event-handler fragments from s. The order
// matters: handler fragments and schemes are matched against the
// original text before the quote characters they rely on are removed.
func Sanitize(s string) string {
	s = eventHandlerFragment.ReplaceAllString(s, "")
	s = scriptScheme.ReplaceAllString(s, "")
	s = markupStripper.Replace(s)
	return strings.TrimSpace(s)
}

// truncate shortens s to at most n runes, appending an ellipsis when
// anything was cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
