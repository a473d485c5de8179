// Package anchor models durable references to spans of buffer text and the
// adjustment rules that keep them valid as the text mutates.
package anchor

import (
	"github.com/counselops/brief/internal/engine/textdiff"
)

// Kind identifies what an anchor is for. The set is closed; there is no
// free-form payload.
type Kind int

const (
	// KindPendingSelection is the single ephemeral selection awaiting
	// promotion. Replaced on every new selection, cleared on escape.
	KindPendingSelection Kind = iota
	// KindChatContext is a promoted span included in outgoing chat
	// requests. Its text is re-sliced from the live buffer, never cached.
	KindChatContext
	// KindChecklistEvidence is a server-sourced evidence span. Used only
	// for rendering; adjusted server-side on re-fetch, not locally.
	KindChecklistEvidence
	// KindSuggestion maps a literal substring of the summary to a proposed
	// replacement. Located by substring search at render time.
	KindSuggestion
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindPendingSelection:
		return "pending-selection"
	case KindChatContext:
		return "chat-context"
	case KindChecklistEvidence:
		return "checklist-evidence"
	case KindSuggestion:
		return "suggestion"
	default:
		return "unknown"
	}
}

// Span is a half-open [Start, End) range of character offsets into one
// buffer. Start == End denotes an empty span, which is never stored as a
// durable anchor.
type Span struct {
	Start int
	End   int
}

// Empty reports whether the span covers no characters.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Len returns the number of characters covered.
func (s Span) Len() int {
	if s.Empty() {
		return 0
	}
	return s.End - s.Start
}

// Anchor is a durable reference to a span of text in a buffer.
type Anchor struct {
	ID       string
	BufferID string
	Span     Span
	Kind     Kind

	// Label and Color carry the checklist category for evidence anchors.
	Label string
	Color string
}

// Adjust computes the new position of a span after the edit described by d,
// clamped to the new buffer length.
//
// An edit entirely before the span shifts it; an edit entirely after leaves
// it alone. An overlapping edit widens the span to include the edit rather
// than splitting it: the start is pulled down to the edit start when the
// edit begins before the span, and the end always absorbs the length delta.
func Adjust(s Span, d textdiff.Result, newLen int) Span {
	delta := d.Delta()

	switch {
	case d.End() <= s.Start:
		s.Start += delta
		s.End += delta
	case d.Start >= s.End:
		// Edit after the span: no change.
	default:
		if d.Start < s.Start {
			s.Start = d.Start
		}
		s.End += delta
	}

	if s.Start < 0 {
		s.Start = 0
	}
	if s.End < s.Start {
		s.End = s.Start
	}
	if s.End > newLen {
		s.End = newLen
	}
	if s.Start > s.End {
		s.Start = s.End
	}
	return s
}

// AdjustAll applies d to every anchor referencing bufferID, dropping anchors
// whose span collapses to empty. Anchors on other buffers pass through
// untouched.
func AdjustAll(anchors []Anchor, bufferID string, d textdiff.Result, newLen int) []Anchor {
	out := anchors[:0]
	for _, a := range anchors {
		if a.BufferID != bufferID {
			out = append(out, a)
			continue
		}
		a.Span = Adjust(a.Span, d, newLen)
		if a.Span.Empty() {
			continue
		}
		out = append(out, a)
	}
	return out
}
