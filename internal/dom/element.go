package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Element is an opaque handle to one tree node. It satisfies
// model.ElementRef and adds the accessor surface the rule catalog
// needs. Elements are cheap wrappers; two Elements for the same node
// compare equal through Path.
type Element struct {
	doc  *Document
	node *html.Node
	path string
}

// Tag returns the lowercase element tag name.
func (e *Element) Tag() string {
	return strings.ToLower(e.node.Data)
}

// Path returns the element's stable document-order locator.
func (e *Element) Path() string {
	if e.path == "" {
		e.path = nodePath(e.node)
	}
	return e.path
}

// Attr returns the value of the named attribute and whether it is
// present. Attribute names are matched case-insensitively, as HTML
// requires.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present, regardless of
// value.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// Role returns the lowercase trimmed value of the role attribute, or
// empty when absent.
func (e *Element) Role() string {
	role, _ := e.Attr("role")
	return strings.ToLower(strings.TrimSpace(role))
}

// Text returns the concatenated text content of the element's subtree.
func (e *Element) Text() string {
	return e.selection().Text()
}

// TrimmedText returns the text content with surrounding whitespace
// removed. Most emptiness checks in the catalog operate on this.
func (e *Element) TrimmedText() string {
	return strings.TrimSpace(e.Text())
}

// OwnText returns the concatenated direct text-node children of the
// element, excluding descendant elements' text. The small-text check
// uses this so a wrapper is not flagged for text that belongs to a
// nested element.
func (e *Element) OwnText() string {
	var b strings.Builder
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// HasAccessibleName reports whether the element carries a non-empty
// accessible-name attribute: aria-label, aria-labelledby, or title.
func (e *Element) HasAccessibleName() bool {
	for _, name := range []string{"aria-label", "aria-labelledby", "title"} {
		if v, ok := e.Attr(name); ok && strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// OuterHTML returns the element's serialized form, or empty string if
// serialization fails. Used for finding snippets only, so a failure is
// not worth surfacing.
func (e *Element) OuterHTML() string {
	s, err := goquery.OuterHtml(e.selection())
	if err != nil {
		return ""
	}
	return s
}

// Parent returns the parent element, or nil at the tree root.
func (e *Element) Parent() *Element {
	for p := e.node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return e.doc.elementFor(p)
		}
	}
	return nil
}

// HasDescendant reports whether any descendant matches the selector.
func (e *Element) HasDescendant(selector string) bool {
	return e.selection().Find(selector).Length() > 0
}

// HasAncestor reports whether any ancestor matches the selector.
func (e *Element) HasAncestor(selector string) bool {
	return e.selection().ParentsFiltered(selector).Length() > 0
}

// Children returns the direct child elements in document order.
func (e *Element) Children() []*Element {
	out := make([]*Element, 0, 4)
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.elementFor(c))
		}
	}
	return out
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// BoundingBox returns the element's viewport-relative box from the
// document's box model. The box is a snapshot; it is not tracked across
// later layout changes.
func (e *Element) BoundingBox() Rect {
	return e.doc.boxes.BoundingBox(e)
}

// Style returns the value of an inline style property, or empty when
// not declared on this element.
func (e *Element) Style(property string) string {
	raw, ok := e.Attr("style")
	if !ok {
		return ""
	}
	return parseStyle(raw)[strings.ToLower(property)]
}

// FontSize returns the resolved font size in pixels: the nearest inline
// font-size declaration on the element or its ancestors, with relative
// units resolved against the parent, defaulting to 16px.
func (e *Element) FontSize() float64 {
	return resolveFontSize(e)
}

// Hidden reports whether the element is not rendered: display:none,
// visibility hidden or collapse, or the hidden attribute, on itself or
// any ancestor.
func (e *Element) Hidden() bool {
	for cur := e; cur != nil; cur = cur.Parent() {
		if cur.hiddenSelf() {
			return true
		}
	}
	return false
}

// hiddenSelf checks only this element's own hiding declarations. The
// traversal prunes hidden subtrees, so it never needs the ancestor walk.
func (e *Element) hiddenSelf() bool {
	if e.HasAttr("hidden") {
		return true
	}
	if strings.EqualFold(e.Style("display"), "none") {
		return true
	}
	vis := strings.ToLower(e.Style("visibility"))
	return vis == "hidden" || vis == "collapse"
}

// selection returns a single-node goquery selection for this element.
func (e *Element) selection() *goquery.Selection {
	return newSingleSelection(e.doc.doc, e.node)
}

// newSingleSelection builds a selection containing exactly one node.
func newSingleSelection(doc *goquery.Document, n *html.Node) *goquery.Selection {
	return doc.FindNodes(n)
}
