// Package textbuf provides the mutable plain-text buffers that the anchor
// engine operates on. Every offset in the engine is a rune index into a
// buffer; callers never see byte positions.
package textbuf

// Buffer is a named, mutable sequence of characters. One buffer exists per
// open document plus one for the narrative summary. Buffers are mutated only
// through the highlight coordinator's entry points so that anchor adjustment
// always observes every change.
type Buffer struct {
	id    string
	runes []rune
}

// New creates a buffer with the given id and initial text.
func New(id, text string) *Buffer {
	return &Buffer{id: id, runes: []rune(text)}
}

// ID returns the buffer's identity.
func (b *Buffer) ID() string {
	return b.id
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	return string(b.runes)
}

// Len returns the buffer length in characters.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// Slice returns the text in the half-open range [start, end). Out-of-bounds
// or inverted ranges are clamped; an empty range yields "".
func (b *Buffer) Slice(start, end int) string {
	start, end = b.clamp(start, end)
	return string(b.runes[start:end])
}

// Replace substitutes the text in [start, end) with s. The range is clamped
// to the buffer bounds.
func (b *Buffer) Replace(start, end int, s string) {
	start, end = b.clamp(start, end)
	next := make([]rune, 0, len(b.runes)-(end-start)+len(s))
	next = append(next, b.runes[:start]...)
	next = append(next, []rune(s)...)
	next = append(next, b.runes[end:]...)
	b.runes = next
}

// SetText replaces the entire buffer content.
func (b *Buffer) SetText(s string) {
	b.runes = []rune(s)
}

func (b *Buffer) clamp(start, end int) (int, int) {
	if start < 0 {
		start = 0
	}
	if start > len(b.runes) {
		start = len(b.runes)
	}
	if end < start {
		end = start
	}
	if end > len(b.runes) {
		end = len(b.runes)
	}
	return start, end
}
