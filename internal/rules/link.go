package rules

import (
	"strings"

	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// scriptHrefSchemes are URL schemes in href values that execute script
// instead of navigating.
var scriptHrefSchemes = []string{"javascript:", "vbscript:", "livescript:"}

// LinkChecker detects link defects: empty links, placeholder or
// script-execution hrefs, generic link text, and titles that merely
// repeat the text. The four checks are independent; a single anchor
// can produce all four findings.
type LinkChecker struct {
	cfg config.LinksConfig
}

// NewLinkChecker creates a LinkChecker bound to its configuration.
func NewLinkChecker(cfg config.LinksConfig) *LinkChecker {
	return &LinkChecker{cfg: cfg}
}

// Name returns the checker name.
func (c *LinkChecker) Name() string { return "links" }

// Category returns the rule category.
func (c *LinkChecker) Category() model.Category { return model.CategoryLinks }

// Kind returns the element kind this checker claims.
func (c *LinkChecker) Kind() dom.ElementKind { return dom.KindLink }

// Check evaluates one link (an anchor element or anything with
// role="link").
func (c *LinkChecker) Check(e *dom.Element) []model.Finding {
	var out []model.Finding

	text := e.TrimmedText()
	title, _ := e.Attr("title")
	title = strings.TrimSpace(title)

	if c.cfg.EmptyLink && text == "" && !e.HasAccessibleName() {
		out = append(out, finding("empty-link", model.CategoryLinks,
			model.SeverityError, "link has no accessible name and no text content", e))
	}

	if c.cfg.InvalidHref {
		if href, ok := e.Attr("href"); ok && invalidHref(href) {
			out = append(out, finding("invalid-href", model.CategoryLinks,
				model.SeverityError, "link href is a placeholder or executes script", e))
		}
	}

	if c.cfg.GenericText && text != "" && inFoldedList(text, genericLinkText) {
		out = append(out, finding("generic-link-text", model.CategoryLinks,
			model.SeverityError, "link text is generic: "+text, e))
	}

	if c.cfg.RedundantTitle && title != "" && text != "" && foldEqual(title, text) {
		out = append(out, finding("redundant-title", model.CategoryLinks,
			model.SeverityWarning, "link title repeats the link text", e))
	}

	return out
}

// invalidHref reports whether the href is exactly the "#" placeholder
// or starts with a script-execution scheme.
func invalidHref(href string) bool {
	href = strings.TrimSpace(href)
	if href == "#" {
		return true
	}
	lower := strings.ToLower(href)
	for _, scheme := range scriptHrefSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}
