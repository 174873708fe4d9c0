package rules

import (
	"fmt"
	"strings"

	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// textBearingTags is the restricted tag set the small-text check
// applies to. Containers are covered through their own direct text,
// not their descendants', so one undersized paragraph produces one
// finding rather than one per ancestor.
var textBearingTags = map[string]bool{
	"p":          true,
	"span":       true,
	"div":        true,
	"li":         true,
	"td":         true,
	"th":         true,
	"a":          true,
	"label":      true,
	"legend":     true,
	"caption":    true,
	"blockquote": true,
	"h1":         true,
	"h2":         true,
	"h3":         true,
	"h4":         true,
	"h5":         true,
	"h6":         true,
}

// TextSizeChecker flags text rendered below the configured minimum
// font size.
type TextSizeChecker struct {
	cfg config.TextConfig
}

// NewTextSizeChecker creates a TextSizeChecker bound to its
// configuration.
func NewTextSizeChecker(cfg config.TextConfig) *TextSizeChecker {
	return &TextSizeChecker{cfg: cfg}
}

// Name returns the checker name.
func (c *TextSizeChecker) Name() string { return "text-size" }

// Category returns the rule category.
func (c *TextSizeChecker) Category() model.Category { return model.CategoryText }

// Kind marks this as a supplemental checker.
func (c *TextSizeChecker) Kind() dom.ElementKind { return dom.KindNone }

// Applies restricts the check to text-bearing tags with non-empty
// direct text.
func (c *TextSizeChecker) Applies(e *dom.Element) bool {
	return textBearingTags[e.Tag()] && strings.TrimSpace(e.OwnText()) != ""
}

// Check evaluates one text-bearing element against the threshold.
func (c *TextSizeChecker) Check(e *dom.Element) []model.Finding {
	if !c.cfg.SmallText {
		return nil
	}
	size := e.FontSize()
	if size >= c.cfg.MinFontSize {
		return nil
	}
	msg := fmt.Sprintf("text size %.3gpx is below the %.3gpx minimum", size, c.cfg.MinFontSize)
	return []model.Finding{finding("small-text", model.CategoryText,
		model.SeverityWarning, msg, e)}
}
