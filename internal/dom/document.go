package dom

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrNoBody is returned when the parsed document has no body element.
// goquery synthesizes html/head/body for fragments, so this only occurs
// for inputs that are not HTML at all.
var ErrNoBody = errors.New("document has no body element")

// skippedTags are elements that never render and are excluded from
// traversal along with their subtrees.
var skippedTags = map[string]bool{
	"head":     true,
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"meta":     true,
	"link":     true,
	"title":    true,
	"base":     true,
}

// Viewport carries the scroll offsets used to translate viewport-
// relative boxes into absolute document coordinates.
type Viewport struct {
	ScrollX float64
	ScrollY float64
}

// Document wraps a parsed HTML tree and provides the read-only surface
// the scanner consumes.
type Document struct {
	doc      *goquery.Document
	boxes    BoxModel
	viewport Viewport
}

// Option configures a Document.
type Option func(*Document)

// WithBoxModel substitutes the geometry provider. Hosts that know real
// layout plug in exact boxes here; tests use fixed ones.
func WithBoxModel(b BoxModel) Option {
	return func(d *Document) {
		d.boxes = b
	}
}

// WithViewport sets the scroll offsets for absolute positioning.
func WithViewport(v Viewport) Option {
	return func(d *Document) {
		d.viewport = v
	}
}

// Parse reads HTML from r and builds a Document.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	gq, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	d := &Document{doc: gq}
	for _, opt := range opts {
		opt(d)
	}
	if d.boxes == nil {
		d.boxes = NewEstimatedBoxModel()
	}

	if gq.Find("body").Length() == 0 {
		return nil, ErrNoBody
	}
	return d, nil
}

// ParseString is a convenience wrapper around Parse for in-memory HTML.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

// Viewport returns the current scroll offsets.
func (d *Document) Viewport() Viewport {
	return d.viewport
}

// Elements returns the renderable elements of the document body in
// document (pre)order. Non-rendering tags (script, style, head content)
// and hidden elements are excluded together with their subtrees, which
// keeps the traversal plan identical to what a sighted user can see.
//
// The returned order is deterministic for a fixed tree, which is what
// makes repeated scans produce identical finding logs.
func (d *Document) Elements() []*Element {
	out := make([]*Element, 0, 64)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			tag := strings.ToLower(n.Data)
			if skippedTags[tag] {
				return
			}
			el := d.elementFor(n)
			if el.hiddenSelf() {
				return
			}
			out = append(out, el)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	body := d.doc.Find("body")
	if body.Length() > 0 {
		for c := body.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	return out
}

// FindAll returns all elements matching the CSS selector, in document
// order. Hidden elements are included; callers that need visibility
// filtering use Element.Hidden.
func (d *Document) FindAll(selector string) []*Element {
	sel := d.doc.Find(selector)
	out := make([]*Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, d.elementFor(s.Nodes[0]))
	})
	return out
}

// Has reports whether any element matches the CSS selector.
func (d *Document) Has(selector string) bool {
	return d.doc.Find(selector).Length() > 0
}

// elementFor wraps a parsed node in an Element bound to this document.
func (d *Document) elementFor(n *html.Node) *Element {
	return &Element{doc: d, node: n}
}

// nodePath computes a stable document-order locator for a node, e.g.
// "html/body/div[2]/img[1]". The index is the 1-based position among
// same-tag element siblings, so the path is unique within one tree and
// doubles as the visited-set key.
func nodePath(n *html.Node) string {
	var segments []string
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		idx := 1
		for sib := cur.PrevSibling; sib != nil; sib = sib.PrevSibling {
			if sib.Type == html.ElementNode && sib.Data == cur.Data {
				idx++
			}
		}
		segments = append(segments, cur.Data+"["+strconv.Itoa(idx)+"]")
	}

	// Reverse into root-first order.
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, "/")
}
