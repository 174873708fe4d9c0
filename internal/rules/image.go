package rules

import (
	"strings"

	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// ImageChecker detects alternative-text defects on img elements.
//
// The four checks are independent and ordered from most to least
// severe a defect: a missing attribute blocks everything downstream,
// so once it fires the value-based checks cannot apply anyway.
type ImageChecker struct {
	cfg config.ImagesConfig
}

// NewImageChecker creates an ImageChecker bound to its configuration.
func NewImageChecker(cfg config.ImagesConfig) *ImageChecker {
	return &ImageChecker{cfg: cfg}
}

// Name returns the checker name.
func (c *ImageChecker) Name() string { return "images" }

// Category returns the rule category.
func (c *ImageChecker) Category() model.Category { return model.CategoryImages }

// Kind returns the element kind this checker claims.
func (c *ImageChecker) Kind() dom.ElementKind { return dom.KindImage }

// Check evaluates one image element.
func (c *ImageChecker) Check(e *dom.Element) []model.Finding {
	var out []model.Finding

	alt, hasAlt := e.Attr("alt")
	title, _ := e.Attr("title")
	title = strings.TrimSpace(title)

	if !hasAlt {
		if c.cfg.MissingAlt {
			out = append(out, finding("missing-alt", model.CategoryImages,
				model.SeverityError, "image has no alt attribute", e))
		}
		return out
	}

	if c.cfg.UninformativeAlt && inFoldedList(alt, uninformativeAltText) {
		out = append(out, finding("uninformative-alt", model.CategoryImages,
			model.SeverityError, "image alt text is uninformative: "+strings.TrimSpace(alt), e))
	}

	if c.cfg.EmptyAltWithTitle && strings.TrimSpace(alt) == "" && title != "" {
		out = append(out, finding("empty-alt-with-title", model.CategoryImages,
			model.SeverityError, "image has empty alt but a non-empty title", e))
	}

	if c.cfg.AltTitleMismatch && strings.TrimSpace(alt) != "" && title != "" && !foldEqual(alt, title) {
		out = append(out, finding("alt-title-mismatch", model.CategoryImages,
			model.SeverityError, "image alt and title disagree", e))
	}

	return out
}
