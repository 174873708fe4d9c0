package model

import (
	"time"
)

// Category identifies the rule family that produced a finding.
// Each category corresponds to one configuration subtree and one
// annotation filter toggle.
type Category string

// Rule categories. The set is closed: the configuration schema, the
// annotation filter, and the report writers all enumerate exactly these.
const (
	CategoryImages    Category = "images"
	CategoryButtons   Category = "buttons"
	CategoryLinks     Category = "links"
	CategoryForms     Category = "forms"
	CategoryTables    Category = "tables"
	CategoryFrames    Category = "frames"
	CategoryMedia     Category = "media"
	CategoryARIA      Category = "aria"
	CategoryText      Category = "text"
	CategoryLandmarks Category = "landmarks"
)

// Categories returns all rule categories in stable order.
// Report writers and the filter UI iterate this instead of hardcoding
// the list in multiple places.
func Categories() []Category {
	return []Category{
		CategoryImages, CategoryButtons, CategoryLinks, CategoryForms,
		CategoryTables, CategoryFrames, CategoryMedia, CategoryARIA,
		CategoryText, CategoryLandmarks,
	}
}

// ElementRef is an opaque handle to the tree node a finding is anchored
// to. The model package only needs identity and display information;
// the full accessor surface (attributes, text, geometry) belongs to the
// dom package, whose Element satisfies this interface.
type ElementRef interface {
	// Tag returns the lowercase element tag name.
	Tag() string

	// Path returns a stable document-order locator for the element,
	// unique within one parsed document. It doubles as the visited-set
	// key during traversal.
	Path() string
}

// Finding is one detected accessibility defect instance.
//
// Findings are immutable once appended to the log. The Message and
// Snippet fields are sanitized by the annotation manager before the
// finding is constructed; nothing downstream re-escapes them.
type Finding struct {
	// ID is the 1-based position of the finding in its session's log.
	// Because traversal order is deterministic, IDs are stable across
	// scans of an unchanged document.
	ID int `json:"id"`

	// Type identifies the specific check that fired (e.g. "missing-alt",
	// "invalid-href"). Types are unique across categories.
	Type string `json:"type"`

	// Category is the rule family the check belongs to.
	Category Category `json:"category"`

	// Severity is the impact level: error or warning.
	Severity Severity `json:"-"`

	// SeverityText is the string form of Severity for serialization.
	SeverityText string `json:"severity"`

	// Message is the sanitized, non-empty human-readable description.
	Message string `json:"message"`

	// Element is the offending tree node. Nil only for document-level
	// findings such as the missing-landmark check.
	Element ElementRef `json:"-"`

	// Location is the element path (or "document" for document-level
	// findings), kept as a string for serialization.
	Location string `json:"location"`

	// Snippet is a truncated, sanitized copy of the element's serialized
	// form, recorded for audit and export.
	Snippet string `json:"snippet,omitempty"`

	// Timestamp is when the finding was recorded.
	Timestamp time.Time `json:"timestamp"`
}
