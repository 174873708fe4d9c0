// Package dom is the document tree provider: it parses HTML into a
// tree and exposes the narrow read-only surface the scanner consumes:
// find-all by selector, document-order traversal, attribute and text
// accessors, bounding geometry, and a small subset of computed style
// (font size, display, visibility).
//
// Parsing is delegated to goquery over golang.org/x/net/html, which
// tolerates the malformed markup common in the wild. The scanner never
// mutates the tree through this package.
//
// Because no rendering engine is attached, bounding boxes come from a
// pluggable BoxModel. The default estimator derives sizes from width
// and height attributes, inline styles, text length, and nominal boxes
// for replaced elements. Hosts with real layout information substitute
// their own BoxModel.
package dom
