package overlay

// cursorUnset is the navigation cursor's "no position" value.
const cursorUnset = -1

// Navigator is the cursor over visible annotations used to step
// through findings one at a time. The cursor is an index into the
// manager's annotation list; hidden annotations are skipped. Clearing
// annotations resets the cursor to its unset value.
type Navigator struct {
	mgr    *Manager
	cursor int
}

// NewNavigator creates a navigator with an unset cursor.
func NewNavigator(mgr *Manager) *Navigator {
	return &Navigator{mgr: mgr, cursor: cursorUnset}
}

// Cursor returns the raw cursor value; cursorUnset (-1) means no
// current position.
func (n *Navigator) Cursor() int {
	return n.cursor
}

// Current returns the annotation under the cursor, or nil when the
// cursor is unset or the annotation set changed underneath it.
func (n *Navigator) Current() *Annotation {
	anns := n.mgr.Annotations()
	if n.cursor < 0 || n.cursor >= len(anns) {
		return nil
	}
	return anns[n.cursor]
}

// Next advances to the next visible annotation, wrapping around at the
// end. Returns nil when no annotation is visible.
func (n *Navigator) Next() *Annotation {
	return n.step(1)
}

// Prev steps back to the previous visible annotation, wrapping around
// at the start. Returns nil when no annotation is visible.
func (n *Navigator) Prev() *Annotation {
	return n.step(-1)
}

// Reset returns the cursor to its unset value.
func (n *Navigator) Reset() {
	n.cursor = cursorUnset
}

// step moves the cursor by dir until it lands on a visible annotation,
// trying each position at most once.
func (n *Navigator) step(dir int) *Annotation {
	anns := n.mgr.Annotations()
	if len(anns) == 0 {
		return nil
	}

	pos := n.cursor
	for range anns {
		pos += dir
		switch {
		case pos >= len(anns):
			pos = 0
		case pos < 0:
			pos = len(anns) - 1
		}
		if anns[pos].Visible {
			n.cursor = pos
			return anns[pos]
		}
	}
	return nil
}
