package rules

import (
	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// MediaChecker detects audio/video defects: autoplay, which interferes
// with screen reader output the user cannot preempt, and missing
// caption tracks. The two checks are independent.
type MediaChecker struct {
	cfg config.MediaConfig
}

// NewMediaChecker creates a MediaChecker bound to its configuration.
func NewMediaChecker(cfg config.MediaConfig) *MediaChecker {
	return &MediaChecker{cfg: cfg}
}

// Name returns the checker name.
func (c *MediaChecker) Name() string { return "media" }

// Category returns the rule category.
func (c *MediaChecker) Category() model.Category { return model.CategoryMedia }

// Kind returns the element kind this checker claims.
func (c *MediaChecker) Kind() dom.ElementKind { return dom.KindMedia }

// Check evaluates one audio or video element.
func (c *MediaChecker) Check(e *dom.Element) []model.Finding {
	var out []model.Finding

	if c.cfg.Autoplay && e.HasAttr("autoplay") {
		out = append(out, finding("autoplay", model.CategoryMedia,
			model.SeverityError, "media element is set to autoplay", e))
	}

	if c.cfg.Captions && !e.HasDescendant(`track[kind="captions"]`) {
		out = append(out, finding("missing-captions", model.CategoryMedia,
			model.SeverityError, "media element has no captions track", e))
	}

	return out
}
