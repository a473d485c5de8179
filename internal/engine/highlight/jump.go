package highlight

import (
	"github.com/counselops/brief/internal/engine/anchor"
)

// RequestHighlight records a new highlight-and-scroll target and returns
// its request. Any previously pending request is superseded: consumers that
// resolve a request after the next render pass must check Latest and drop
// stale tokens.
func (c *Coordinator) RequestHighlight(bufferID string, span anchor.Span, center bool) *Request {
	if bufferID != SummaryBufferID && bufferID != c.activeDoc {
		// Jumping to an anchor in a non-active document switches the
		// document first; resolution happens on the next render pass.
		c.SetActiveDocument(bufferID)
	}

	c.seq++
	c.latest = &Request{
		Token:    c.seq,
		BufferID: bufferID,
		Span:     span,
		Center:   center,
	}
	return c.latest
}

// Latest returns the pending highlight request, if any.
func (c *Coordinator) Latest() (Request, bool) {
	if c.latest == nil {
		return Request{}, false
	}
	return *c.latest, true
}

// IsCurrent reports whether a token still identifies the latest request.
// Superseded requests must be ignored by their holders.
func (c *Coordinator) IsCurrent(token uint64) bool {
	return c.latest != nil && c.latest.Token == token
}

// ClearHighlight drops the active highlight: entering summary edit mode,
// clicking outside tracked surfaces, or a reconstruction failure all end
// here.
func (c *Coordinator) ClearHighlight() {
	c.latest = nil
	c.patches.ClearPreview()
}

// JumpToAnchor requests a centered highlight on an existing anchor's
// current span. Unknown ids are a silent no-op.
func (c *Coordinator) JumpToAnchor(id string) (*Request, bool) {
	for _, a := range c.contexts {
		if a.ID == id {
			return c.RequestHighlight(a.BufferID, a.Span, true), true
		}
	}
	for _, a := range c.evidence {
		if a.ID == id {
			return c.RequestHighlight(a.BufferID, a.Span, true), true
		}
	}
	return nil, false
}

// JumpToSuggestion locates a suggestion in the live summary and requests a
// centered highlight on it. False when the suggestion text no longer
// occurs.
func (c *Coordinator) JumpToSuggestion(id string) (*Request, bool) {
	for _, s := range c.suggestions {
		if s.ID != id {
			continue
		}
		span, ok := c.SuggestionSpan(s)
		if !ok {
			return nil, false
		}
		return c.RequestHighlight(SummaryBufferID, span, true), true
	}
	return nil, false
}
