package rules

import (
	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// LandmarkChecker is the one-shot whole-document check: it fires when
// the document contains no landmark element or landmark role at all,
// leaving screen reader users with no structural navigation targets.
type LandmarkChecker struct {
	cfg config.LandmarksConfig
}

// NewLandmarkChecker creates a LandmarkChecker bound to its
// configuration.
func NewLandmarkChecker(cfg config.LandmarksConfig) *LandmarkChecker {
	return &LandmarkChecker{cfg: cfg}
}

// Name returns the checker name.
func (c *LandmarkChecker) Name() string { return "landmarks" }

// Category returns the rule category.
func (c *LandmarkChecker) Category() model.Category { return model.CategoryLandmarks }

// CheckDocument evaluates the whole document once per session.
func (c *LandmarkChecker) CheckDocument(d *dom.Document) []model.Finding {
	if !c.cfg.Present || d.Has(landmarkSelector) {
		return nil
	}
	return []model.Finding{finding("no-landmarks", model.CategoryLandmarks,
		model.SeverityWarning, "document has no landmark regions", nil)}
}
