package rules

import (
	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// Checker is one rule family: a predicate-plus-message generator bound
// to one element kind. Implementations are stateless beyond the
// configuration snapshot they were constructed with.
//
// Design decision: We dispatch on a closed ElementKind rather than a
// tag-name switch so that adding a new family means adding a variant
// and a checker, not extending a switch in the middle of the engine.
type Checker interface {
	// Name returns the checker's name for logging.
	Name() string

	// Category returns the rule category the checker belongs to.
	Category() model.Category

	// Kind returns the element kind this checker claims. KindNone marks
	// a supplemental checker that declares its own applicability.
	Kind() dom.ElementKind

	// Check evaluates one element and returns zero or more findings.
	// Returned findings carry type, category, severity, message, and
	// element; the annotation manager assigns ids and timestamps.
	Check(e *dom.Element) []model.Finding
}

// SupplementalChecker is a checker that applies orthogonally to the
// primary kind dispatch (small text, positive tabindex). Applies is
// consulted for every element regardless of its kind.
type SupplementalChecker interface {
	Checker
	Applies(e *dom.Element) bool
}

// DocumentChecker runs once per session against the whole document
// rather than per element.
type DocumentChecker interface {
	// Name returns the checker's name for logging.
	Name() string

	// Category returns the rule category the checker belongs to.
	Category() model.Category

	// CheckDocument evaluates the whole document.
	CheckDocument(d *dom.Document) []model.Finding
}

// Catalog dispatches elements to the checkers registered for their
// kind. A Catalog is bound to one configuration snapshot for its whole
// lifetime; reconfiguring means building a new Catalog for the next
// session.
type Catalog struct {
	cfg          *config.RuleConfig
	byKind       map[dom.ElementKind][]Checker
	supplemental []SupplementalChecker
	document     []DocumentChecker
}

// NewCatalog builds a catalog with all built-in checkers bound to the
// given configuration snapshot.
func NewCatalog(cfg *config.RuleConfig) *Catalog {
	c := &Catalog{
		cfg:    cfg,
		byKind: make(map[dom.ElementKind][]Checker),
	}

	c.register(NewImageChecker(cfg.Images))
	c.register(NewButtonChecker(cfg.Buttons))
	c.register(NewLinkChecker(cfg.Links))
	c.register(NewFieldsetChecker(cfg.Forms))
	c.register(NewInputChecker(cfg.Forms))
	c.register(NewTableChecker(cfg.Tables))
	c.register(NewFrameChecker(cfg.Frames))
	c.register(NewMediaChecker(cfg.Media))
	c.register(NewRoleImageChecker(cfg.ARIA))

	c.registerSupplemental(NewTabIndexChecker(cfg.ARIA))
	c.registerSupplemental(NewTextSizeChecker(cfg.Text))

	c.registerDocument(NewLandmarkChecker(cfg.Landmarks))

	return c
}

// register adds a kind-dispatched checker.
func (c *Catalog) register(ch Checker) {
	c.byKind[ch.Kind()] = append(c.byKind[ch.Kind()], ch)
}

// registerSupplemental adds a checker consulted for every element.
func (c *Catalog) registerSupplemental(ch SupplementalChecker) {
	c.supplemental = append(c.supplemental, ch)
}

// registerDocument adds a once-per-session whole-document checker.
func (c *Catalog) registerDocument(ch DocumentChecker) {
	c.document = append(c.document, ch)
}

// Evaluate runs all applicable checks against one element and returns
// the findings in checker order. Families whose category is disabled
// are skipped entirely.
func (c *Catalog) Evaluate(e *dom.Element) []model.Finding {
	var out []model.Finding

	kind := dom.Classify(e)
	for _, ch := range c.byKind[kind] {
		if !c.cfg.CategoryEnabled(ch.Category()) {
			continue
		}
		out = append(out, ch.Check(e)...)
	}

	for _, ch := range c.supplemental {
		if !c.cfg.CategoryEnabled(ch.Category()) {
			continue
		}
		if ch.Applies(e) {
			out = append(out, ch.Check(e)...)
		}
	}

	return out
}

// EvaluateDocument runs the whole-document checks. The scheduler calls
// this once, before traversal begins.
func (c *Catalog) EvaluateDocument(d *dom.Document) []model.Finding {
	var out []model.Finding
	for _, ch := range c.document {
		if !c.cfg.CategoryEnabled(ch.Category()) {
			continue
		}
		out = append(out, ch.CheckDocument(d)...)
	}
	return out
}

// finding assembles the fields every checker fills the same way.
// Document-level findings pass a nil element; the Element interface is
// left untyped-nil in that case so downstream nil checks hold.
func finding(typ string, cat model.Category, sev model.Severity, msg string, e *dom.Element) model.Finding {
	f := model.Finding{
		Type:         typ,
		Category:     cat,
		Severity:     sev,
		SeverityText: sev.String(),
		Message:      msg,
		Location:     "document",
	}
	if e != nil {
		f.Element = e
		f.Location = e.Path()
	}
	return f
}
