package overlay

import (
	"log/slog"
	"time"

	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// Annotation is the manager's record of one marker: the finding it
// belongs to, the geometry snapshot taken at creation, and the current
// visibility.
type Annotation struct {
	// FindingID is the id of the owning finding.
	FindingID int

	// Severity and Category mirror the finding for filtering without a
	// log lookup.
	Severity model.Severity
	Category model.Category

	// Geometry is the absolute box snapshot taken at creation time.
	Geometry dom.Rect

	// Visible is the current filter outcome.
	Visible bool
}

// Filter is the annotation visibility predicate: a marker is visible
// when its severity is in the shown set and its category is enabled.
type Filter struct {
	ShowErrors   bool
	ShowWarnings bool
	Categories   map[model.Category]bool
}

// Matches evaluates the predicate for one annotation.
func (f Filter) Matches(a *Annotation) bool {
	switch a.Severity {
	case model.SeverityError:
		if !f.ShowErrors {
			return false
		}
	case model.SeverityWarning:
		if !f.ShowWarnings {
			return false
		}
	}
	return f.Categories[a.Category]
}

// Manager owns annotation lifecycle: validated creation, atomic
// teardown, and on-demand visibility filtering. One Manager serves one
// document at a time; its finding log is the session's finding log.
type Manager struct {
	renderer    Renderer
	log         *model.FindingLog
	logger      *slog.Logger
	markerClass string
	snippetLen  int

	annotations []*Annotation
	nav         *Navigator

	// cancelInFlight cancels the running scan session, if any. Wired by
	// the engine so RemoveAll can honor its cancel-then-clear contract.
	cancelInFlight func()
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithMarkerClass sets the overlay class token. An empty token makes
// every creation request fail validation, which is the specified
// behavior rather than a crash.
func WithMarkerClass(class string) ManagerOption {
	return func(m *Manager) {
		m.markerClass = class
	}
}

// WithManagerLogger sets the diagnostics logger.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithSnippetLength overrides the maximum stored snippet length.
func WithSnippetLength(n int) ManagerOption {
	return func(m *Manager) {
		if n > 0 {
			m.snippetLen = n
		}
	}
}

// NewManager creates a Manager writing findings to the given log and
// markers to the given renderer.
func NewManager(renderer Renderer, log *model.FindingLog, opts ...ManagerOption) *Manager {
	m := &Manager{
		renderer:    renderer,
		log:         log,
		markerClass: defaultMarkerClass,
		snippetLen:  defaultSnippetLength,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.nav = NewNavigator(m)
	return m
}

// Defaults mirrored from the config package. Declared here too so the
// overlay package stays import-light; the engine passes the configured
// values through options.
const (
	defaultMarkerClass   = "a11yscan-marker"
	defaultSnippetLength = 200
)

// SetCanceller wires the in-flight session cancel hook used by
// RemoveAll. A nil canceller is allowed and means nothing to cancel.
func (m *Manager) SetCanceller(cancel func()) {
	m.cancelInFlight = cancel
}

// Navigator returns the finding navigation cursor.
func (m *Manager) Navigator() *Navigator {
	return m.nav
}

// Log returns the session finding log.
func (m *Manager) Log() *model.FindingLog {
	return m.log
}

// Annotations returns the current annotations in creation order.
func (m *Manager) Annotations() []*Annotation {
	return m.annotations
}

// Create validates a finding produced by the rule catalog, registers
// its marker, and appends it to the finding log. It returns the stored
// finding and whether anything was created.
//
// Rejections (empty class token, invalid severity, empty message,
// zero-area geometry) are diagnostics, not errors: they are logged and
// the method returns normally with ok=false, per the engine's
// no-propagation policy.
func (m *Manager) Create(f model.Finding) (model.Finding, bool) {
	if m.markerClass == "" {
		m.logger.Warn("annotation rejected: empty overlay class token", "type", f.Type)
		return model.Finding{}, false
	}
	if !f.Severity.Valid() {
		m.logger.Warn("annotation rejected: severity outside the closed set",
			"type", f.Type, "severity", int(f.Severity))
		return model.Finding{}, false
	}

	f.Message = Sanitize(f.Message)
	if f.Message == "" {
		m.logger.Warn("annotation rejected: empty message after sanitization", "type", f.Type)
		return model.Finding{}, false
	}
	f.SeverityText = f.Severity.String()
	f.Timestamp = time.Now()

	// A typed-nil *dom.Element inside the interface still asserts
	// successfully, so check the pointer too.
	el, hasElement := f.Element.(*dom.Element)
	if !hasElement || el == nil {
		// Document-level findings (no anchoring element) go into the
		// log without a marker; there is nothing to draw a box around.
		stored := m.log.Append(f)
		return stored, true
	}

	box := el.BoundingBox()
	if box.Empty() {
		m.logger.Debug("annotation skipped: element not visibly renderable",
			"type", f.Type, "location", f.Location)
		return model.Finding{}, false
	}

	f.Snippet = truncate(Sanitize(el.OuterHTML()), m.snippetLen)
	stored := m.log.Append(f)

	// Absolute position: viewport-relative box plus scroll offsets,
	// clamped so a partially scrolled-out element cannot produce a
	// marker at negative coordinates.
	viewport := el.Document().Viewport()
	marker := Marker{
		FindingID: stored.ID,
		Class:     m.markerClass,
		Severity:  stored.Severity,
		Category:  stored.Category,
		X:         max(box.X+viewport.ScrollX, 0),
		Y:         max(box.Y+viewport.ScrollY, 0),
		Width:     box.Width,
		Height:    box.Height,
		Visible:   true,
	}
	if err := m.renderer.Create(marker); err != nil {
		m.logger.Warn("marker creation failed", "type", f.Type, "error", err)
	}

	m.annotations = append(m.annotations, &Annotation{
		FindingID: stored.ID,
		Severity:  stored.Severity,
		Category:  stored.Category,
		Geometry:  dom.Rect{X: marker.X, Y: marker.Y, Width: marker.Width, Height: marker.Height},
		Visible:   true,
	})
	return stored, true
}

// RemoveAll cancels any in-flight scan session, destroys every
// annotation, empties the finding log, and resets the navigation
// cursor. Markers whose backing node already disappeared are skipped
// silently; teardown never fails.
func (m *Manager) RemoveAll() {
	if m.cancelInFlight != nil {
		m.cancelInFlight()
	}

	for _, a := range m.annotations {
		if err := m.renderer.Remove(a.FindingID); err != nil {
			m.logger.Debug("marker removal failed", "finding_id", a.FindingID, "error", err)
		}
	}
	m.annotations = m.annotations[:0]
	m.log.Clear()
	m.nav.Reset()
}

// ApplyFilter re-evaluates the visibility predicate over all
// annotations and pushes the outcome to the renderer. The finding log
// is never touched: filtering is a display concern only.
func (m *Manager) ApplyFilter(f Filter) {
	for _, a := range m.annotations {
		visible := f.Matches(a)
		if visible == a.Visible {
			continue
		}
		a.Visible = visible
		if err := m.renderer.SetVisible(a.FindingID, visible); err != nil {
			m.logger.Debug("marker visibility toggle failed", "finding_id", a.FindingID, "error", err)
		}
	}
}
