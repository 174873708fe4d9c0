package dom

import (
	"strconv"
	"strings"
)

// defaultFontSize is the browser default in pixels, used when no
// ancestor declares an inline font-size.
const defaultFontSize = 16.0

// parseStyle splits an inline style attribute into a property map.
// Properties are lowercased; values keep their case. Malformed
// declarations are skipped.
func parseStyle(raw string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(raw, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if prop != "" && val != "" {
			out[prop] = val
		}
	}
	return out
}

// resolveFontSize resolves the effective font size of an element from
// inline declarations. Absolute units resolve directly; em and percent
// resolve against the parent's resolved size. Elements without any
// declaration inherit from the nearest declaring ancestor, bottoming
// out at the 16px default.
func resolveFontSize(e *Element) float64 {
	decl := e.Style("font-size")
	if decl == "" {
		if p := e.Parent(); p != nil {
			return resolveFontSize(p)
		}
		return defaultFontSize
	}

	parent := defaultFontSize
	if p := e.Parent(); p != nil {
		parent = resolveFontSize(p)
	}
	if px, ok := parseFontSize(decl, parent); ok {
		return px
	}
	return parent
}

// parseFontSize converts a CSS font-size value to pixels. Supported
// units: px, pt, em, rem, %. Unknown units and unparsable values report
// false so the caller can fall back to the inherited size.
func parseFontSize(decl string, parentPx float64) (float64, bool) {
	decl = strings.ToLower(strings.TrimSpace(decl))

	switch {
	case strings.HasSuffix(decl, "px"):
		if v, err := strconv.ParseFloat(strings.TrimSuffix(decl, "px"), 64); err == nil {
			return v, true
		}
	case strings.HasSuffix(decl, "pt"):
		if v, err := strconv.ParseFloat(strings.TrimSuffix(decl, "pt"), 64); err == nil {
			return v * 96.0 / 72.0, true
		}
	case strings.HasSuffix(decl, "rem"):
		if v, err := strconv.ParseFloat(strings.TrimSuffix(decl, "rem"), 64); err == nil {
			return v * defaultFontSize, true
		}
	case strings.HasSuffix(decl, "em"):
		if v, err := strconv.ParseFloat(strings.TrimSuffix(decl, "em"), 64); err == nil {
			return v * parentPx, true
		}
	case strings.HasSuffix(decl, "%"):
		if v, err := strconv.ParseFloat(strings.TrimSuffix(decl, "%"), 64); err == nil {
			return v / 100.0 * parentPx, true
		}
	}
	return 0, false
}
