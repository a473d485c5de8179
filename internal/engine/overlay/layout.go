package overlay

import (
	"strings"

	"github.com/counselops/brief/internal/engine/anchor"
	"github.com/counselops/brief/internal/engine/offsetmap"
)

// Layout wraps a buffer's text into visual rows of a fixed cell width. It
// doubles as the offset-mapping surface for the wrapped text: its nodes are
// the logical lines (newlines included), so the concatenated node content
// equals the buffer text exactly.
type Layout struct {
	width int
	lines []string
	rows  []row
}

// row is one visual row after wrapping.
type row struct {
	start   int  // global character offset of the first cell
	length  int  // displayed cells
	newline bool // a newline character follows the cells
}

// NewLayout wraps text at the given width. A width of zero or less disables
// wrapping.
func NewLayout(text string, width int) *Layout {
	l := &Layout{width: width}
	l.lines = splitKeep(text)

	offset := 0
	for _, line := range l.lines {
		runes := []rune(line)
		display := runes
		hasNewline := false
		if n := len(runes); n > 0 && runes[n-1] == '\n' {
			display = runes[:n-1]
			hasNewline = true
		}

		if len(display) == 0 {
			l.rows = append(l.rows, row{start: offset, length: 0, newline: hasNewline})
			offset += len(runes)
			continue
		}

		for pos := 0; pos < len(display); {
			n := len(display) - pos
			if l.width > 0 && n > l.width {
				n = l.width
			}
			last := pos+n == len(display)
			l.rows = append(l.rows, row{
				start:   offset + pos,
				length:  n,
				newline: last && hasNewline,
			})
			pos += n
		}
		offset += len(runes)
	}

	return l
}

// Nodes returns the logical lines of the text, newlines included.
func (l *Layout) Nodes() []string {
	return l.lines
}

// RowCount returns the number of visual rows after wrapping.
func (l *Layout) RowCount() int {
	return len(l.rows)
}

// RowAt returns the visual row index containing the given character offset,
// or the last row when the offset is past the end.
func (l *Layout) RowAt(offset int) int {
	for i, r := range l.rows {
		span := r.length
		if r.newline {
			span++
		}
		if offset < r.start+span {
			return i
		}
	}
	if len(l.rows) == 0 {
		return 0
	}
	return len(l.rows) - 1
}

// RowStart returns the character offset of the first cell of the given
// visual row, clamped to the valid row range.
func (l *Layout) RowStart(i int) int {
	if len(l.rows) == 0 {
		return 0
	}
	if i < 0 {
		i = 0
	}
	if i >= len(l.rows) {
		i = len(l.rows) - 1
	}
	return l.rows[i].start
}

// OffsetBelow moves an offset one visual row down, preserving the column
// where the lower row is long enough. Offsets on the last row stay put.
func (l *Layout) OffsetBelow(offset int) int {
	return l.offsetOnRow(offset, l.RowAt(offset)+1)
}

// OffsetAbove moves an offset one visual row up, preserving the column where
// the upper row is long enough. Offsets on the first row stay put.
func (l *Layout) OffsetAbove(offset int) int {
	return l.offsetOnRow(offset, l.RowAt(offset)-1)
}

func (l *Layout) offsetOnRow(offset, target int) int {
	if target < 0 || target >= len(l.rows) {
		return offset
	}
	col := offset - l.rows[l.RowAt(offset)].start
	r := l.rows[target]
	if col > r.length {
		col = r.length
	}
	return r.start + col
}

// SpanRects returns the rectangles covered by a span of character offsets,
// one per visual row, in layout coordinates (row 0 at the top of the text).
// Rows the span only touches at a wrap boundary yield zero-width rects.
func (l *Layout) SpanRects(sp anchor.Span) []Rect {
	var out []Rect
	for i, r := range l.rows {
		covered := r.length
		if r.newline {
			covered++
		}
		if sp.Start >= r.start+covered || sp.End <= r.start {
			continue
		}

		left := sp.Start - r.start
		if left < 0 {
			left = 0
		}
		right := sp.End - r.start
		if right > r.length {
			right = r.length
		}
		width := right - left
		if width < 0 {
			width = 0
		}
		if left > r.length {
			left = r.length
		}
		out = append(out, Rect{Top: i, Left: left, Width: width, Height: 1})
	}
	return out
}

// splitKeep splits text into lines, keeping the trailing newline on each.
func splitKeep(text string) []string {
	if text == "" {
		return []string{""}
	}
	var lines []string
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
		if text == "" {
			break
		}
	}
	return lines
}

// Container places a layout inside a scrollable box on screen and supplies
// the Geometry contract for RectsFor.
type Container struct {
	Layout  *Layout
	OriginX int // container box position on screen
	OriginY int
	ScrollX int // current scroll offsets
	ScrollY int
	Width   int
	Height  int
}

// ClientRects reports where the view range lands on screen given the
// container's origin and scroll position.
func (c *Container) ClientRects(vr offsetmap.ViewRange) []Rect {
	sp, ok := offsetmap.ToOffsets(c.Layout, vr)
	if !ok {
		return nil
	}

	rects := c.Layout.SpanRects(sp)
	for i := range rects {
		rects[i].Top = rects[i].Top - c.ScrollY + c.OriginY
		rects[i].Left = rects[i].Left - c.ScrollX + c.OriginX
	}
	return rects
}

// Bounds returns the container's box on screen.
func (c *Container) Bounds() Rect {
	return Rect{Top: c.OriginY, Left: c.OriginX, Width: c.Width, Height: c.Height}
}

// Scroll returns the container's scroll offsets.
func (c *Container) Scroll() (x, y int) {
	return c.ScrollX, c.ScrollY
}
