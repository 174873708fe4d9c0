package model

// Severity represents the impact level of an accessibility finding.
//
// The set is deliberately closed to two values. Accessibility defects
// either break access to content for some users (error) or degrade it
// (warning); a finer-grained scale invites inconsistent triage without
// adding information the annotation layer can act on.
//
// Design decision: We use iota-based constants rather than string
// constants for efficiency in comparisons and so the zero value is
// meaningful (SeverityError, the stricter reading).
type Severity int

const (
	// SeverityError indicates a defect that blocks access for some users.
	// Examples: an image with no alternative text, a form control with no
	// label, a frame with no title.
	SeverityError Severity = iota

	// SeverityWarning indicates a defect that degrades the experience but
	// does not fully block access. Examples: positive tabindex values,
	// text below the minimum readable size, a missing landmark region.
	SeverityWarning
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether s is one of the two defined severity levels.
// The annotation manager rejects creation requests carrying any other
// value, so validity is checked in one place rather than at every use.
func (s Severity) Valid() bool {
	return s == SeverityError || s == SeverityWarning
}
