// Package overlay derives highlight rectangles for view ranges on a
// scrollable text surface. Rectangles live in the coordinate space of the
// container's content and are recomputed whenever geometry may have changed;
// derivation is pure, so recomputation is always safe.
package overlay

import (
	"github.com/counselops/brief/internal/engine/offsetmap"
)

// Rect is one highlight box in container-content coordinates. Units are
// character cells: Top is a row index, Left a column, Height a row count.
type Rect struct {
	Top    int
	Left   int
	Width  int
	Height int
}

// Geometry is a rendering surface that can report where a view range lands
// on screen, plus the container's own box and scroll position. The screen
// rectangles may include degenerate boxes at line-wrap boundaries; RectsFor
// filters those.
type Geometry interface {
	// ClientRects returns the screen-space rectangles covered by the view
	// range, one per visual row.
	ClientRects(vr offsetmap.ViewRange) []Rect
	// Bounds returns the container's box in the same screen space.
	Bounds() Rect
	// Scroll returns the container's current scroll offsets.
	Scroll() (x, y int)
}

// RectsFor re-expresses the view range's screen rectangles in
// container-content coordinates: the container origin is subtracted and the
// scroll offsets added, so a rect keeps its position relative to the text as
// the container scrolls. Zero-width and zero-height rectangles are dropped.
func RectsFor(g Geometry, vr offsetmap.ViewRange) []Rect {
	bounds := g.Bounds()
	scrollX, scrollY := g.Scroll()

	var out []Rect
	for _, r := range g.ClientRects(vr) {
		if r.Width <= 0 || r.Height <= 0 {
			continue
		}
		r.Top = r.Top - bounds.Top + scrollY
		r.Left = r.Left - bounds.Left + scrollX
		out = append(out, r)
	}
	return out
}
