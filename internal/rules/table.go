package rules

import (
	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// TableChecker detects table structure defects: data tables with no
// header cells, tables nested inside other tables' cells, and summary
// attributes admitting the table is used for layout.
//
// The headers check is structural: any th descendant satisfies it,
// even one whose text is empty or whitespace-only. Detecting
// uninformative header text would be a separate check; conflating the
// two makes the result depend on which path noticed the cell first.
type TableChecker struct {
	cfg config.TablesConfig
}

// NewTableChecker creates a TableChecker bound to its configuration.
func NewTableChecker(cfg config.TablesConfig) *TableChecker {
	return &TableChecker{cfg: cfg}
}

// Name returns the checker name.
func (c *TableChecker) Name() string { return "tables" }

// Category returns the rule category.
func (c *TableChecker) Category() model.Category { return model.CategoryTables }

// Kind returns the element kind this checker claims.
func (c *TableChecker) Kind() dom.ElementKind { return dom.KindTable }

// Check evaluates one table element. The three checks are independent;
// a nested table with no headers produces both findings.
func (c *TableChecker) Check(e *dom.Element) []model.Finding {
	var out []model.Finding

	if c.cfg.Headers && !e.HasDescendant("th") {
		out = append(out, finding("no-headers", model.CategoryTables,
			model.SeverityError, "table has no header cells", e))
	}

	if c.cfg.Nesting && e.HasAncestor("th, td") {
		out = append(out, finding("nested-table", model.CategoryTables,
			model.SeverityError, "table is nested inside another table's cell", e))
	}

	if c.cfg.LayoutSummary {
		if summary, ok := e.Attr("summary"); ok && containsFoldedTerm(summary, layoutSummaryTerms) {
			out = append(out, finding("layout-summary", model.CategoryTables,
				model.SeverityError, "table summary indicates a layout table", e))
		}
	}

	return out
}
