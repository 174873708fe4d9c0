package rules

import (
	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// FrameChecker detects iframes without a title attribute. The title is
// the only name assistive technology can announce before entering the
// frame's separate document.
type FrameChecker struct {
	cfg config.FramesConfig
}

// NewFrameChecker creates a FrameChecker bound to its configuration.
func NewFrameChecker(cfg config.FramesConfig) *FrameChecker {
	return &FrameChecker{cfg: cfg}
}

// Name returns the checker name.
func (c *FrameChecker) Name() string { return "frames" }

// Category returns the rule category.
func (c *FrameChecker) Category() model.Category { return model.CategoryFrames }

// Kind returns the element kind this checker claims.
func (c *FrameChecker) Kind() dom.ElementKind { return dom.KindIframe }

// Check evaluates one iframe element.
func (c *FrameChecker) Check(e *dom.Element) []model.Finding {
	if !c.cfg.Title || e.HasAttr("title") {
		return nil
	}
	return []model.Finding{finding("missing-frame-title", model.CategoryFrames,
		model.SeverityError, "iframe has no title attribute", e)}
}
