package rules

import (
	"strings"

	"golang.org/x/text/cases"
)

// folder performs Unicode case folding for the prohibited-word
// comparisons. EqualFold covers ASCII, but alt text and link text come
// from arbitrary pages, so comparisons go through full case folding.
var folder = cases.Fold()

// uninformativeAltText are alt values that describe nothing. A match
// (case-folded, trimmed) means the image effectively has no
// alternative text even though the attribute is present.
var uninformativeAltText = []string{
	"image",
	"img",
	"photo",
	"photograph",
	"picture",
	"graphic",
	"logo",
	"icon",
	"spacer",
	"blank",
	"chart",
	"screenshot",
	"placeholder",
	"untitled",
}

// genericLinkText are link texts that carry no information about the
// destination when read out of context, which is how screen reader
// users typically navigate link lists.
var genericLinkText = []string{
	"click here",
	"click",
	"here",
	"more",
	"read more",
	"learn more",
	"more info",
	"link",
	"this",
	"go",
	"continue",
	"details",
}

// layoutSummaryTerms are summary-attribute fragments that reveal a
// table used for layout. Layout tables should not exist at all, and a
// summary admitting to one confuses assistive technology.
var layoutSummaryTerms = []string{
	"layout",
	"formatting",
	"for position",
}

// landmarkSelector matches any landmark element or landmark role. The
// whole-document check fires only when this matches nothing.
const landmarkSelector = "main, nav, header, footer, aside, " +
	"[role=main], [role=navigation], [role=banner], [role=contentinfo], " +
	"[role=complementary], [role=search], [role=region]"

// foldEqual reports whether a and b are equal after trimming and case
// folding.
func foldEqual(a, b string) bool {
	return folder.String(strings.TrimSpace(a)) == folder.String(strings.TrimSpace(b))
}

// inFoldedList reports whether s, trimmed and case-folded, equals any
// list entry.
func inFoldedList(s string, list []string) bool {
	folded := folder.String(strings.TrimSpace(s))
	for _, entry := range list {
		if folded == folder.String(entry) {
			return true
		}
	}
	return false
}

// containsFoldedTerm reports whether s, case-folded, contains any list
// entry as a substring.
func containsFoldedTerm(s string, list []string) bool {
	folded := folder.String(s)
	for _, entry := range list {
		if strings.Contains(folded, folder.String(entry)) {
			return true
		}
	}
	return false
}
