package dom

import (
	"strconv"
	"strings"
)

// ElementKind is the closed classification the rule catalog dispatches
// on. Every renderable element maps to at most one primary kind; the
// supplemental checks (small text, positive tabindex) have their own
// applicability predicates and run independently of the primary kind.
type ElementKind int

const (
	// KindNone means no rule family claims the element.
	KindNone ElementKind = iota
	// KindImage covers img elements.
	KindImage
	// KindButton covers button elements and any element with
	// role="button".
	KindButton
	// KindLink covers anchor elements and any element with role="link".
	KindLink
	// KindFieldset covers fieldset elements.
	KindFieldset
	// KindInput covers input elements.
	KindInput
	// KindTable covers table elements.
	KindTable
	// KindIframe covers iframe elements.
	KindIframe
	// KindMedia covers audio and video elements.
	KindMedia
	// KindGenericRole covers otherwise-unclassified elements carrying an
	// explicit role attribute; the role is read from Element.Role.
	KindGenericRole
)

// String returns the kind name for logging.
func (k ElementKind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindButton:
		return "button"
	case KindLink:
		return "link"
	case KindFieldset:
		return "fieldset"
	case KindInput:
		return "input"
	case KindTable:
		return "table"
	case KindIframe:
		return "iframe"
	case KindMedia:
		return "media"
	case KindGenericRole:
		return "generic-role"
	default:
		return "none"
	}
}

// interactiveTags are natively focusable elements. The tabindex check
// only applies outside this set.
var interactiveTags = map[string]bool{
	"a":        true,
	"area":     true,
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
	"iframe":   true,
	"summary":  true,
}

// Classify maps an element to its primary rule-family kind.
//
// An explicit role wins over the native tag where both apply: an anchor
// with role="button" is classified as a button, which is also what
// suppresses the empty-content link checks for it.
func Classify(e *Element) ElementKind {
	role := e.Role()
	tag := e.Tag()

	if role == "button" {
		return KindButton
	}
	if role == "link" {
		return KindLink
	}

	switch tag {
	case "img":
		return KindImage
	case "button":
		return KindButton
	case "a":
		return KindLink
	case "fieldset":
		return KindFieldset
	case "input":
		return KindInput
	case "table":
		return KindTable
	case "iframe":
		return KindIframe
	case "audio", "video":
		return KindMedia
	}

	if role != "" {
		return KindGenericRole
	}
	return KindNone
}

// TabIndex parses the element's tabindex attribute. ok is false when
// the attribute is absent or does not parse to an integer.
func TabIndex(e *Element) (int, bool) {
	raw, present := e.Attr("tabindex")
	if !present {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}

// Interactive reports whether the element is natively interactive or
// carries an explicit role. The positive-tabindex check skips these.
func Interactive(e *Element) bool {
	return interactiveTags[e.Tag()] || e.Role() != ""
}
