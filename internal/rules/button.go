package rules

import (
	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// ButtonChecker detects buttons with no accessible name: no aria-label,
// aria-labelledby, or title, and no text content for assistive
// technology to announce.
type ButtonChecker struct {
	cfg config.ButtonsConfig
}

// NewButtonChecker creates a ButtonChecker bound to its configuration.
func NewButtonChecker(cfg config.ButtonsConfig) *ButtonChecker {
	return &ButtonChecker{cfg: cfg}
}

// Name returns the checker name.
func (c *ButtonChecker) Name() string { return "buttons" }

// Category returns the rule category.
func (c *ButtonChecker) Category() model.Category { return model.CategoryButtons }

// Kind returns the element kind this checker claims.
func (c *ButtonChecker) Kind() dom.ElementKind { return dom.KindButton }

// Check evaluates one button (a button element or anything with
// role="button").
//
// An anchor reclassified as a button by role="button" is exempt from
// the no-content flag: the explicit role is authored intent, and the
// link otherwise carries link semantics the no-content heuristic was
// not written for.
func (c *ButtonChecker) Check(e *dom.Element) []model.Finding {
	if !c.cfg.MissingName {
		return nil
	}
	if e.Tag() == "a" {
		return nil
	}
	if e.HasAccessibleName() || e.TrimmedText() != "" {
		return nil
	}

	return []model.Finding{finding("empty-button", model.CategoryButtons,
		model.SeverityError, "button has no accessible name and no text content", e)}
}
