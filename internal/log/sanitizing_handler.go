package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// markupChars matches characters that are significant to markup parsers
// or terminal renderers. They are removed, not escaped, because log
// output is plain text and nothing downstream unescapes it.
var markupChars = strings.NewReplacer(
	"<", "",
	">", "",
	`"`, "",
	"'", "",
	"&", "",
)

// scriptSchemes matches URL schemes that execute code when followed.
var scriptSchemes = regexp.MustCompile(`(?i)(javascript|vbscript|livescript)\s*:`)

// eventHandlers matches inline event-handler fragments such as
// onclick=... or onerror = "...". The value may be quoted or bare.
var eventHandlers = regexp.MustCompile(`(?i)\bon[a-z]+\s*=\s*("[^"]*"|'[^']*'|\S+)`)

// SanitizingHandler wraps an slog.Handler and sanitizes string attribute
// values before passing records on. It intercepts every record, strips
// page-derived hazards from string attributes, and delegates to the
// underlying handler.
//
// Design decision: We use a handler wrapper rather than sanitizing at
// each call site because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites cannot forget it
type SanitizingHandler struct {
	handler slog.Handler
}

// NewSanitizingHandler creates a SanitizingHandler wrapping the given
// handler. If handler is nil, slog.Default().Handler() is used.
func NewSanitizingHandler(handler slog.Handler) *SanitizingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SanitizingHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given
// level. It delegates to the underlying handler.
func (h *SanitizingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle sanitizes the record's attributes and passes it on.
func (h *SanitizingHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(h.sanitizeAttr(a))
		return true
	})
	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs returns a new handler with the given attributes added,
// sanitized first.
func (h *SanitizingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitizedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		sanitizedAttrs[i] = h.sanitizeAttr(a)
	}
	return &SanitizingHandler{handler: h.handler.WithAttrs(sanitizedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *SanitizingHandler) WithGroup(name string) slog.Handler {
	return &SanitizingHandler{handler: h.handler.WithGroup(name)}
}

// sanitizeAttr sanitizes a single attribute, recursively handling
// groups. Only string values are touched; numeric and time attributes
// cannot carry markup.
func (h *SanitizingHandler) sanitizeAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		sanitizedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			sanitizedAttrs[i] = h.sanitizeAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(sanitizedAttrs...)}
	}

	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, CleanString(a.Value.String()))
	}
	return a
}

// CleanString strips markup-significant characters, script-execution
// URL schemes, and inline event-handler fragments from s.
func CleanString(s string) string {
	s = eventHandlers.ReplaceAllString(s, "")
	s = scriptSchemes.ReplaceAllString(s, "")
	s = markupChars.Replace(s)
	return s
}

// NewLogger creates an slog.Logger with markup sanitization over a text
// handler.
//
// Parameters:
//   - w: the io.Writer to write log output to (typically os.Stderr)
//   - verbose: if true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewSanitizingHandler(textHandler))
}

// NewJSONLogger creates an slog.Logger with markup sanitization that
// outputs JSON format, for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewSanitizingHandler(jsonHandler))
}
