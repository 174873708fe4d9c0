package overlay

import (
	"sort"
	"sync"

	"github.com/a11yscan/a11yscan/internal/model"
)

// Marker is one on-screen annotation box as the rendering surface sees
// it: absolute document coordinates, a class token for styling, and a
// severity-derived styling category.
type Marker struct {
	// FindingID ties the marker to its finding; markers and findings
	// are strictly 1:1.
	FindingID int

	// Class is the overlay class token applied to the marker node.
	Class string

	// Severity selects the severity-derived styling.
	Severity model.Severity

	// Category is the finding's rule category, used by the filter.
	Category model.Category

	// X, Y, Width, Height is the absolute box, clamped non-negative.
	X, Y, Width, Height float64

	// Visible is the marker's current visibility.
	Visible bool
}

// Renderer is the narrow boundary to the rendering surface. The engine
// appends and removes its own overlay nodes through this interface and
// never touches the document tree any other way.
//
// Implementations must tolerate Remove for markers whose backing node
// already disappeared externally: that is a no-op, not an error.
type Renderer interface {
	// Create adds a marker to the surface.
	Create(m Marker) error

	// Remove deletes the marker for the given finding id. Removing a
	// marker that no longer exists is a no-op.
	Remove(findingID int) error

	// SetVisible toggles a marker's visibility without destroying it.
	// Unknown ids are a no-op.
	SetVisible(findingID int, visible bool) error

	// List returns the current markers in finding-id order.
	List() []Marker
}

// MemoryRenderer is the in-memory Renderer used in tests and headless
// runs. It records markers in a map keyed by finding id.
type MemoryRenderer struct {
	mu      sync.Mutex
	markers map[int]Marker
}

// NewMemoryRenderer creates an empty in-memory renderer.
func NewMemoryRenderer() *MemoryRenderer {
	return &MemoryRenderer{markers: make(map[int]Marker)}
}

// Create implements Renderer.
func (r *MemoryRenderer) Create(m Marker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markers[m.FindingID] = m
	return nil
}

// Remove implements Renderer. Unknown ids are a no-op.
func (r *MemoryRenderer) Remove(findingID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.markers, findingID)
	return nil
}

// SetVisible implements Renderer. Unknown ids are a no-op.
func (r *MemoryRenderer) SetVisible(findingID int, visible bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.markers[findingID]; ok {
		m.Visible = visible
		r.markers[findingID] = m
	}
	return nil
}

// List implements Renderer.
func (r *MemoryRenderer) List() []Marker {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Marker, 0, len(r.markers))
	for _, m := range r.markers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FindingID < out[j].FindingID })
	return out
}
