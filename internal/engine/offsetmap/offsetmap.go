// Package offsetmap converts between view-level text ranges on a rendering
// surface and character offsets into the surface's plain-text content.
//
// A surface only has to expose its leaf text nodes in document order; both
// directions depend on nothing but the concatenated text, so mappings are
// stable across re-renders that preserve content.
package offsetmap

import (
	"strings"

	"github.com/counselops/brief/internal/engine/anchor"
)

// Surface is a rendered text surface: an ordered sequence of leaf text
// nodes whose concatenation is the surface's plain-text content.
type Surface interface {
	Nodes() []string
}

// Point addresses a character position inside one node of a surface.
type Point struct {
	Node   int // index into Surface.Nodes()
	Offset int // rune offset within that node
}

// ViewRange is a view-level selection between two points.
type ViewRange struct {
	Start Point
	End   Point
}

// Collapsed reports whether the range covers no characters.
func (v ViewRange) Collapsed() bool {
	return v.Start == v.End
}

// FlatSurface adapts a flat text-entry widget (a single undivided buffer)
// to the Surface interface. Native selection indices map to offsets
// directly.
type FlatSurface string

// Nodes returns the single node backing the flat surface.
func (f FlatSurface) Nodes() []string {
	return []string{string(f)}
}

// ToOffsets converts a view range into a span of character offsets. It
// returns false when the range is collapsed, addresses nodes outside the
// surface, or has offsets past a node's length. Selections are frequent and
// often invalid, so failure is a silent nil result rather than an error.
func ToOffsets(s Surface, vr ViewRange) (anchor.Span, bool) {
	if vr.Collapsed() {
		return anchor.Span{}, false
	}

	nodes := s.Nodes()
	start, ok := pointOffset(nodes, vr.Start)
	if !ok {
		return anchor.Span{}, false
	}
	end, ok := pointOffset(nodes, vr.End)
	if !ok {
		return anchor.Span{}, false
	}
	if end <= start {
		return anchor.Span{}, false
	}

	return anchor.Span{Start: start, End: end}, true
}

// ToViewRange reconstructs the view range addressing a span of character
// offsets. It returns false when the span is empty or the surface's total
// text is shorter than the span's end.
func ToViewRange(s Surface, sp anchor.Span) (ViewRange, bool) {
	if sp.Empty() || sp.Start < 0 {
		return ViewRange{}, false
	}

	nodes := s.Nodes()
	start, ok := locate(nodes, sp.Start, false)
	if !ok {
		return ViewRange{}, false
	}
	end, ok := locate(nodes, sp.End, true)
	if !ok {
		return ViewRange{}, false
	}

	return ViewRange{Start: start, End: end}, true
}

// Content returns the textual content covered by a view range.
func Content(s Surface, vr ViewRange) (string, bool) {
	sp, ok := ToOffsets(s, vr)
	if !ok {
		return "", false
	}

	var b strings.Builder
	pos := 0
	for _, node := range s.Nodes() {
		runes := []rune(node)
		for _, r := range runes {
			if pos >= sp.Start && pos < sp.End {
				b.WriteRune(r)
			}
			pos++
		}
		if pos >= sp.End {
			break
		}
	}
	return b.String(), true
}

// Text returns the concatenated plain-text content of the surface.
func Text(s Surface) string {
	var b strings.Builder
	for _, node := range s.Nodes() {
		b.WriteString(node)
	}
	return b.String()
}

// pointOffset returns the global character offset of a point, validating
// containment within the surface.
func pointOffset(nodes []string, p Point) (int, bool) {
	if p.Node < 0 || p.Node >= len(nodes) || p.Offset < 0 {
		return 0, false
	}

	total := 0
	for i := 0; i < p.Node; i++ {
		total += len([]rune(nodes[i]))
	}

	nodeLen := len([]rune(nodes[p.Node]))
	if p.Offset > nodeLen {
		return 0, false
	}
	return total + p.Offset, true
}

// locate walks the nodes in document order accumulating length until it
// reaches the node containing the global offset. An offset landing exactly
// on a node boundary resolves to the end of the earlier node when atEnd is
// set, so that range ends stay inside the text they cover.
func locate(nodes []string, offset int, atEnd bool) (Point, bool) {
	pos := 0
	for i, node := range nodes {
		nodeLen := len([]rune(node))
		if offset < pos+nodeLen || (atEnd && offset == pos+nodeLen) {
			return Point{Node: i, Offset: offset - pos}, true
		}
		pos += nodeLen
	}
	if !atEnd && offset == pos {
		// Start of a range may sit at the very end of the text only when
		// the text is empty; otherwise the span was validated non-empty.
		return Point{}, false
	}
	return Point{}, false
}
