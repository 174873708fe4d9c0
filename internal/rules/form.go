package rules

import (
	"strings"

	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// unlabeledExemptTypes are input types that do not need an external
// label: submit buttons label themselves via value, image inputs are
// checked for alt instead, and hidden inputs never render.
var unlabeledExemptTypes = map[string]bool{
	"submit": true,
	"image":  true,
	"hidden": true,
}

// FieldsetChecker detects fieldsets with no legend, which leaves the
// grouped controls without a group label.
type FieldsetChecker struct {
	cfg config.FormsConfig
}

// NewFieldsetChecker creates a FieldsetChecker bound to its
// configuration.
func NewFieldsetChecker(cfg config.FormsConfig) *FieldsetChecker {
	return &FieldsetChecker{cfg: cfg}
}

// Name returns the checker name.
func (c *FieldsetChecker) Name() string { return "fieldsets" }

// Category returns the rule category.
func (c *FieldsetChecker) Category() model.Category { return model.CategoryForms }

// Kind returns the element kind this checker claims.
func (c *FieldsetChecker) Kind() dom.ElementKind { return dom.KindFieldset }

// Check evaluates one fieldset element.
func (c *FieldsetChecker) Check(e *dom.Element) []model.Finding {
	if !c.cfg.FieldsetLegend {
		return nil
	}
	if e.HasDescendant("legend") {
		return nil
	}
	return []model.Finding{finding("missing-legend", model.CategoryForms,
		model.SeverityError, "fieldset has no legend", e)}
}

// InputChecker detects unlabeled form inputs. Image inputs need alt
// text or an accessible-name attribute; every other non-exempt input
// needs an id with a matching label association.
type InputChecker struct {
	cfg config.FormsConfig
}

// NewInputChecker creates an InputChecker bound to its configuration.
func NewInputChecker(cfg config.FormsConfig) *InputChecker {
	return &InputChecker{cfg: cfg}
}

// Name returns the checker name.
func (c *InputChecker) Name() string { return "inputs" }

// Category returns the rule category.
func (c *InputChecker) Category() model.Category { return model.CategoryForms }

// Kind returns the element kind this checker claims.
func (c *InputChecker) Kind() dom.ElementKind { return dom.KindInput }

// Check evaluates one input element.
func (c *InputChecker) Check(e *dom.Element) []model.Finding {
	typ, _ := e.Attr("type")
	typ = strings.ToLower(strings.TrimSpace(typ))

	if typ == "image" {
		if !c.cfg.ImageInputAlt {
			return nil
		}
		if alt, ok := e.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			return nil
		}
		if e.HasAccessibleName() {
			return nil
		}
		return []model.Finding{finding("image-input-alt", model.CategoryForms,
			model.SeverityError, "image input has no alt text or accessible name", e)}
	}

	if !c.cfg.InputLabel || unlabeledExemptTypes[typ] {
		return nil
	}

	// Ids containing selector metacharacters cannot match a sane label
	// association and would break the selector, so they count as
	// unlabeled.
	if id, ok := e.Attr("id"); ok && strings.TrimSpace(id) != "" && !strings.ContainsAny(id, "\"'\\") {
		if len(e.Document().FindAll(`label[for="`+strings.TrimSpace(id)+`"]`)) > 0 {
			return nil
		}
	}

	return []model.Finding{finding("missing-label", model.CategoryForms,
		model.SeverityError, "form input has no associated label", e)}
}
