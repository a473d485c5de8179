package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/counselops/brief/internal/engine/anchor"
	"github.com/counselops/brief/internal/engine/offsetmap"
)

func TestLayout_Wrapping(t *testing.T) {
	// "0123456789" wrapped at 4 -> rows of 4, 4, 2 cells.
	l := NewLayout("0123456789", 4)
	assert.Equal(t, 3, l.RowCount())

	rects := l.SpanRects(anchor.Span{Start: 0, End: 10})
	assert.Equal(t, []Rect{
		{Top: 0, Left: 0, Width: 4, Height: 1},
		{Top: 1, Left: 0, Width: 4, Height: 1},
		{Top: 2, Left: 0, Width: 2, Height: 1},
	}, rects)
}

func TestLayout_NewlinesAndNodes(t *testing.T) {
	text := "alpha\nbeta\n\ngamma"
	l := NewLayout(text, 80)

	// Nodes concatenate back to the exact text, so offset mapping holds.
	assert.Equal(t, []string{"alpha\n", "beta\n", "\n", "gamma"}, l.Nodes())
	assert.Equal(t, text, offsetmap.Text(l))
	assert.Equal(t, 4, l.RowCount())
}

func TestLayout_SpanRects(t *testing.T) {
	// Rows: "alpha"(0-4,nl@5) "beta"(6-9,nl@10) "gamma"(11-15)
	l := NewLayout("alpha\nbeta\ngamma", 80)

	tests := []struct {
		name string
		span anchor.Span
		want []Rect
	}{
		{
			name: "inside one row",
			span: anchor.Span{Start: 1, End: 4},
			want: []Rect{{Top: 0, Left: 1, Width: 3, Height: 1}},
		},
		{
			name: "across rows",
			span: anchor.Span{Start: 2, End: 8},
			want: []Rect{
				{Top: 0, Left: 2, Width: 3, Height: 1},
				{Top: 1, Left: 0, Width: 2, Height: 1},
			},
		},
		{
			name: "newline only is degenerate",
			span: anchor.Span{Start: 5, End: 6},
			want: []Rect{{Top: 0, Left: 5, Width: 0, Height: 1}},
		},
		{
			name: "last row",
			span: anchor.Span{Start: 11, End: 16},
			want: []Rect{{Top: 2, Left: 0, Width: 5, Height: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.SpanRects(tt.span))
		})
	}
}

func TestLayout_RowAt(t *testing.T) {
	l := NewLayout("alpha\nbeta\ngamma", 80)

	assert.Equal(t, 0, l.RowAt(0))
	assert.Equal(t, 0, l.RowAt(5)) // the newline belongs to its row
	assert.Equal(t, 1, l.RowAt(6))
	assert.Equal(t, 2, l.RowAt(11))
	assert.Equal(t, 2, l.RowAt(999))
}

func TestRectsFor(t *testing.T) {
	l := NewLayout("alpha\nbeta\ngamma", 80)
	c := &Container{Layout: l, OriginX: 3, OriginY: 2, ScrollY: 1, Width: 40, Height: 10}

	vr, ok := offsetmap.ToViewRange(l, anchor.Span{Start: 6, End: 9})
	require.True(t, ok)

	rects := RectsFor(c, vr)
	// Screen rect (top 1-1+2=2, left 0+3=3) mapped back to content
	// coordinates: subtract origin, add scroll.
	assert.Equal(t, []Rect{{Top: 1, Left: 0, Width: 3, Height: 1}}, rects)
}

func TestRectsFor_FiltersDegenerate(t *testing.T) {
	l := NewLayout("alpha\nbeta", 80)
	c := &Container{Layout: l, Width: 40, Height: 10}

	// Span covering the newline and the next row: the newline produces a
	// zero-width screen rect which must be dropped.
	vr, ok := offsetmap.ToViewRange(l, anchor.Span{Start: 5, End: 10})
	require.True(t, ok)

	rects := RectsFor(c, vr)
	assert.Equal(t, []Rect{{Top: 1, Left: 0, Width: 4, Height: 1}}, rects)
}

// RectsFor is pure: identical geometry yields identical rectangles.
func TestRectsFor_Idempotent(t *testing.T) {
	l := NewLayout("a long paragraph of wrapped text for the idempotence check", 12)
	c := &Container{Layout: l, OriginX: 1, OriginY: 1, ScrollY: 2, Width: 12, Height: 4}

	vr, ok := offsetmap.ToViewRange(l, anchor.Span{Start: 7, End: 31})
	require.True(t, ok)

	first := RectsFor(c, vr)
	second := RectsFor(c, vr)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestLayout_RowNavigation(t *testing.T) {
	// "alpha\nbeta\n\ngamma" -> rows start at 0, 6, 11, 12.
	l := NewLayout("alpha\nbeta\n\ngamma", 80)

	assert.Equal(t, 0, l.RowStart(0))
	assert.Equal(t, 6, l.RowStart(1))
	assert.Equal(t, 11, l.RowStart(2))
	assert.Equal(t, 12, l.RowStart(3))
	assert.Equal(t, 12, l.RowStart(99), "clamps past the end")

	// Column preserved moving down from "alpha" to "beta".
	assert.Equal(t, 8, l.OffsetBelow(2))
	// "beta" back up to "alpha".
	assert.Equal(t, 2, l.OffsetAbove(8))
	// Column clamps on the shorter empty row.
	assert.Equal(t, 11, l.OffsetBelow(9))
	// First and last rows stay put.
	assert.Equal(t, 2, l.OffsetAbove(2))
	assert.Equal(t, 14, l.OffsetBelow(14))
}
