// Package log provides logging for the scanner on top of the standard
// slog package, with automatic sanitization of page-derived content.
//
// Log records routinely carry strings lifted from the scanned document:
// attribute values, link text, element snippets. A hostile page can put
// markup, script URLs, or terminal-hostile fragments in any of those.
// The SanitizingHandler strips markup-significant characters, script
// execution schemes, and inline event-handler fragments from string
// attributes before the record reaches the underlying handler, so log
// output is safe to render in a terminal or aggregate elsewhere.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Warn("element rejected",
//	    "snippet", "<img onerror=alert(1)>",  // sanitized before output
//	)
package log
