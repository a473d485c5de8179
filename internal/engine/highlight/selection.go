package highlight

import (
	"github.com/google/uuid"

	"github.com/counselops/brief/internal/engine/anchor"
)

// SetSelection records the one pending selection, replacing any previous
// one. Empty spans and unknown buffers clear it instead.
func (c *Coordinator) SetSelection(bufferID string, span anchor.Span, from Origin) {
	buf := c.buffers[bufferID]
	if buf == nil || span.Empty() || span.Start < 0 || span.End > buf.Len() {
		c.pending = nil
		return
	}

	c.pending = &anchor.Anchor{
		ID:       uuid.NewString(),
		BufferID: bufferID,
		Span:     span,
		Kind:     anchor.KindPendingSelection,
	}
	c.pendingFrom = from
}

// ClearSelection drops the pending selection (click-away, Escape).
func (c *Coordinator) ClearSelection() {
	c.pending = nil
}

// PendingSelection returns the selection awaiting promotion, if any.
func (c *Coordinator) PendingSelection() (anchor.Anchor, bool) {
	if c.pending == nil {
		return anchor.Anchor{}, false
	}
	return *c.pending, true
}

// CanPromote reports whether the pending selection may be promoted under
// the current interaction mode.
func (c *Coordinator) CanPromote() bool {
	return c.pending != nil && c.mode.AllowsPromotion(c.pendingFrom)
}

// PromoteSelection turns the pending selection into a durable chat-context
// anchor. The gesture is gated by the interaction mode; a blocked or absent
// selection is a silent no-op.
func (c *Coordinator) PromoteSelection() (anchor.Anchor, bool) {
	if !c.CanPromote() {
		return anchor.Anchor{}, false
	}

	a := *c.pending
	a.Kind = anchor.KindChatContext
	c.contexts = append(c.contexts, a)
	c.pending = nil

	c.log.Debug().
		Str("buffer", a.BufferID).
		Int("start", a.Span.Start).
		Int("end", a.Span.End).
		Msg("selection promoted to chat context")
	return a, true
}

// Contexts returns the live chat-context anchors.
func (c *Coordinator) Contexts() []anchor.Anchor {
	return c.contexts
}

// ContextText re-slices a context anchor's text from the live buffer, so it
// always reflects the current content rather than what was selected.
func (c *Coordinator) ContextText(a anchor.Anchor) string {
	buf := c.buffers[a.BufferID]
	if buf == nil {
		return ""
	}
	return buf.Slice(a.Span.Start, a.Span.End)
}

// RemoveContext deletes a chat-context anchor by id.
func (c *Coordinator) RemoveContext(id string) {
	out := c.contexts[:0]
	for _, a := range c.contexts {
		if a.ID == id {
			continue
		}
		out = append(out, a)
	}
	c.contexts = out
}

// SetEvidence replaces the checklist-evidence anchors. Evidence is
// server-sourced and re-fetched rather than adjusted locally.
func (c *Coordinator) SetEvidence(anchors []anchor.Anchor) {
	c.evidence = anchors
}

// Evidence returns evidence anchors for the given buffer.
func (c *Coordinator) Evidence(bufferID string) []anchor.Anchor {
	var out []anchor.Anchor
	for _, a := range c.evidence {
		if a.BufferID == bufferID {
			out = append(out, a)
		}
	}
	return out
}

// SetSuggestions replaces the suggestion set. Suggestions are re-derived
// from the current summary text by the assistant, so stored offsets would
// go stale immediately; they are located by substring search instead.
func (c *Coordinator) SetSuggestions(suggestions []Suggestion) {
	c.suggestions = suggestions
}

// Suggestions returns the current suggestion set.
func (c *Coordinator) Suggestions() []Suggestion {
	return c.suggestions
}

// SuggestionSpan locates a suggestion in the summary by substring search
// against the live text. False when the substring no longer occurs.
func (c *Coordinator) SuggestionSpan(s Suggestion) (anchor.Span, bool) {
	buf := c.buffers[SummaryBufferID]
	if buf == nil || s.Find == "" {
		return anchor.Span{}, false
	}

	runes := []rune(buf.Text())
	find := []rune(s.Find)
	idx := runeIndex(runes, find)
	if idx < 0 {
		return anchor.Span{}, false
	}
	return anchor.Span{Start: idx, End: idx + len(find)}, true
}

// runeIndex finds the first occurrence of needle in haystack, counting in
// runes so the result is a character offset.
func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
