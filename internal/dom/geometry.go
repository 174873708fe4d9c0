package dom

import (
	"strconv"
	"strings"
)

// Rect is a viewport-relative bounding box in CSS pixels.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Empty reports whether the box has zero width or height, meaning the
// element is not visibly renderable.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// BoxModel provides bounding geometry for elements. The scanner treats
// boxes as snapshots taken at evaluation time.
type BoxModel interface {
	// BoundingBox returns the element's viewport-relative box. A zero
	// width or height means the element is not visibly renderable.
	BoundingBox(e *Element) Rect
}

// Nominal fallback sizes for replaced and interactive elements that
// render without declared dimensions. The iframe and video defaults
// are the CSS replaced-element defaults; the rest approximate common
// user-agent styles.
var nominalBoxes = map[string]Rect{
	"img":      {Width: 100, Height: 100},
	"iframe":   {Width: 300, Height: 150},
	"video":    {Width: 300, Height: 150},
	"audio":    {Width: 300, Height: 54},
	"input":    {Width: 150, Height: 32},
	"select":   {Width: 150, Height: 32},
	"textarea": {Width: 200, Height: 64},
	"button":   {Width: 120, Height: 32},
}

// EstimatedBoxModel derives bounding boxes from markup alone: width and
// height attributes win, then inline styles, then nominal boxes for
// replaced elements, then a text-length estimate. Elements with none of
// those are reported as zero-area.
//
// Positions are always zero: without layout there is no meaningful
// offset, and the annotation manager only needs offsets when a real
// host supplies a real BoxModel.
type EstimatedBoxModel struct{}

// NewEstimatedBoxModel creates the default markup-derived box model.
func NewEstimatedBoxModel() *EstimatedBoxModel {
	return &EstimatedBoxModel{}
}

// BoundingBox implements BoxModel.
func (m *EstimatedBoxModel) BoundingBox(e *Element) Rect {
	w, wok := dimension(e, "width")
	h, hok := dimension(e, "height")
	if wok && hok {
		return Rect{Width: w, Height: h}
	}

	if box, ok := nominalBoxes[e.Tag()]; ok {
		if wok {
			box.Width = w
		}
		if hok {
			box.Height = h
		}
		return box
	}

	if text := e.TrimmedText(); text != "" {
		size := e.FontSize()
		box := Rect{
			// Rough advance width of 0.5em per rune, capped at a
			// nominal line length.
			Width:  min(float64(len([]rune(text)))*size*0.5, 480),
			Height: size * 1.4,
		}
		if wok {
			box.Width = w
		}
		if hok {
			box.Height = h
		}
		return box
	}

	return Rect{Width: w, Height: h}
}

// dimension reads a pixel dimension from the inline style or the
// width/height attribute.
func dimension(e *Element, name string) (float64, bool) {
	if decl := e.Style(name); decl != "" {
		if v, ok := parsePixels(decl); ok {
			return v, true
		}
	}
	if attr, ok := e.Attr(name); ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(attr), 64); err == nil && v >= 0 {
			return v, true
		}
	}
	return 0, false
}

// parsePixels converts a CSS length to pixels. Only absolute px values
// (with or without the suffix) are accepted; relative lengths cannot be
// resolved without layout.
func parsePixels(decl string) (float64, bool) {
	decl = strings.ToLower(strings.TrimSpace(decl))
	decl = strings.TrimSuffix(decl, "px")
	v, err := strconv.ParseFloat(strings.TrimSpace(decl), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
