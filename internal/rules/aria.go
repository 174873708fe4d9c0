package rules

import (
	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// RoleImageChecker detects elements declared as images via role="img"
// but carrying no accessible name. Unlike a real img there is no alt
// attribute to fall back to, so the name must come from aria-label,
// aria-labelledby, or title.
type RoleImageChecker struct {
	cfg config.ARIAConfig
}

// NewRoleImageChecker creates a RoleImageChecker bound to its
// configuration.
func NewRoleImageChecker(cfg config.ARIAConfig) *RoleImageChecker {
	return &RoleImageChecker{cfg: cfg}
}

// Name returns the checker name.
func (c *RoleImageChecker) Name() string { return "role-images" }

// Category returns the rule category.
func (c *RoleImageChecker) Category() model.Category { return model.CategoryARIA }

// Kind returns the element kind this checker claims.
func (c *RoleImageChecker) Kind() dom.ElementKind { return dom.KindGenericRole }

// Check evaluates one role-carrying element; only role="img" is of
// interest to this checker.
func (c *RoleImageChecker) Check(e *dom.Element) []model.Finding {
	if !c.cfg.RoleImgName || e.Role() != "img" {
		return nil
	}
	if e.HasAccessibleName() {
		return nil
	}
	return []model.Finding{finding("role-img-name", model.CategoryARIA,
		model.SeverityError, "element with role=img has no accessible name", e)}
}

// TabIndexChecker detects non-interactive, role-less elements forced
// into the tab order. A tabindex of zero or more inserts the element
// into keyboard navigation with nothing announced for it; negative
// values only enable programmatic focus and are fine.
type TabIndexChecker struct {
	cfg config.ARIAConfig
}

// NewTabIndexChecker creates a TabIndexChecker bound to its
// configuration.
func NewTabIndexChecker(cfg config.ARIAConfig) *TabIndexChecker {
	return &TabIndexChecker{cfg: cfg}
}

// Name returns the checker name.
func (c *TabIndexChecker) Name() string { return "tabindex" }

// Category returns the rule category.
func (c *TabIndexChecker) Category() model.Category { return model.CategoryARIA }

// Kind marks this as a supplemental checker.
func (c *TabIndexChecker) Kind() dom.ElementKind { return dom.KindNone }

// Applies restricts the check to non-interactive, role-less elements
// that actually carry a parsable tabindex.
func (c *TabIndexChecker) Applies(e *dom.Element) bool {
	if dom.Interactive(e) {
		return false
	}
	_, ok := dom.TabIndex(e)
	return ok
}

// Check evaluates one tabindexed element.
func (c *TabIndexChecker) Check(e *dom.Element) []model.Finding {
	if !c.cfg.PositiveTabindex {
		return nil
	}
	v, ok := dom.TabIndex(e)
	if !ok || v < 0 {
		return nil
	}
	return []model.Finding{finding("positive-tabindex", model.CategoryARIA,
		model.SeverityWarning, "non-interactive element is in the tab order", e)}
}
