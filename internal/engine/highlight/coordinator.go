// Package highlight owns the canonical text buffers and every live anchor
// over them, and re-derives what should be highlighted as buffers, scroll
// positions and viewports change. All mutation of buffer text flows through
// the coordinator so that anchor adjustment observes every edit.
package highlight

import (
	"github.com/rs/zerolog"

	"github.com/counselops/brief/internal/engine/anchor"
	"github.com/counselops/brief/internal/engine/patch"
	"github.com/counselops/brief/internal/engine/textbuf"
	"github.com/counselops/brief/internal/engine/textdiff"
)

// SummaryBufferID is the reserved buffer id for the narrative summary.
const SummaryBufferID = "summary"

// Source describes which path mutated a buffer. Patch-manager mutations do
// not stale the active action; everything else does.
type Source int

const (
	SourceUser Source = iota
	SourceAssistant
	SourcePatch
)

// Suggestion maps a literal substring of the summary to a proposed
// replacement. Suggestions are derived fresh from the current summary text,
// so they carry no stored offsets; spans are located by substring search at
// render time.
type Suggestion struct {
	ID      string
	Find    string
	Replace string
	Note    string
}

// Request is a pending highlight-and-scroll request. The coordinator hands
// out monotonically increasing tokens; consumers resolve a request one
// render pass later and must discard it if a newer request exists ("last
// event wins").
type Request struct {
	Token    uint64
	BufferID string
	Span     anchor.Span
	Center   bool
}

// Coordinator is the single owner of buffers, anchors, the patch manager
// and the active highlight.
type Coordinator struct {
	mode      Mode
	buffers   map[string]*textbuf.Buffer
	activeDoc string

	pending     *anchor.Anchor // the one selection awaiting promotion
	pendingFrom Origin
	contexts    []anchor.Anchor // chat-context anchors
	evidence    []anchor.Anchor // checklist-evidence anchors (render-only)
	suggestions []Suggestion

	patches *patch.Manager

	latest *Request
	seq    uint64

	log zerolog.Logger
}

// NewCoordinator creates a coordinator with an empty buffer set.
func NewCoordinator(log zerolog.Logger) *Coordinator {
	return &Coordinator{
		buffers: make(map[string]*textbuf.Buffer),
		patches: patch.NewManager(log),
		log:     log,
	}
}

// Mode returns the active interaction mode.
func (c *Coordinator) Mode() Mode {
	return c.mode
}

// SetMode switches the interaction mode when a top-level view activates.
func (c *Coordinator) SetMode(m Mode) {
	c.mode = m
}

// OpenBuffer registers a buffer with the given text. Re-opening an already
// registered buffer keeps its anchors: identical content is a no-op, changed
// content flows through the usual diff-and-adjust path.
func (c *Coordinator) OpenBuffer(id, text string) {
	if buf, ok := c.buffers[id]; ok {
		if buf.Text() == text {
			return
		}
		c.SetText(id, text, SourceUser)
		return
	}
	c.buffers[id] = textbuf.New(id, text)
}

// DiscardBuffer removes a buffer and every anchor referencing it.
func (c *Coordinator) DiscardBuffer(id string) {
	delete(c.buffers, id)
	c.contexts = dropBuffer(c.contexts, id)
	c.evidence = dropBuffer(c.evidence, id)
	if c.pending != nil && c.pending.BufferID == id {
		c.pending = nil
	}
	c.patches.Dismiss(id)
	if c.latest != nil && c.latest.BufferID == id {
		c.latest = nil
	}
}

// Buffer returns the buffer with the given id, or nil.
func (c *Coordinator) Buffer(id string) *textbuf.Buffer {
	return c.buffers[id]
}

// ActiveDocument returns the id of the document buffer in view.
func (c *Coordinator) ActiveDocument() string {
	return c.activeDoc
}

// SetActiveDocument switches the document in view. A document-scoped active
// highlight belonging to the previous document is cleared.
func (c *Coordinator) SetActiveDocument(id string) {
	if c.activeDoc == id {
		return
	}
	if c.latest != nil && c.latest.BufferID == c.activeDoc && c.latest.BufferID != SummaryBufferID {
		c.latest = nil
	}
	c.activeDoc = id
}

// SetText mutates a buffer to the given content, running one diff and
// adjusting every anchor that references it. Mutations from any source but
// the patch manager mark the buffer's active patch action stale. Unknown
// buffer ids are ignored.
func (c *Coordinator) SetText(id, next string, source Source) {
	buf := c.buffers[id]
	if buf == nil {
		return
	}

	d := textdiff.Diff(buf.Text(), next)
	if d == nil {
		return
	}
	buf.SetText(next)
	c.applyDiff(id, *d, buf.Len())

	if source != SourcePatch {
		c.patches.MarkStale(id)
	}
}

// applyDiff propagates one edit region through every anchor on the buffer,
// pruning anchors that collapse to empty, and drops the active highlight if
// its span no longer resolves.
func (c *Coordinator) applyDiff(id string, d textdiff.Result, newLen int) {
	c.contexts = anchor.AdjustAll(c.contexts, id, d, newLen)
	c.contexts = c.pruneEmptySlices(c.contexts)

	if c.pending != nil && c.pending.BufferID == id {
		span := anchor.Adjust(c.pending.Span, d, newLen)
		if span.Empty() {
			c.pending = nil
		} else {
			c.pending.Span = span
		}
	}

	if c.latest != nil && c.latest.BufferID == id {
		span := anchor.Adjust(c.latest.Span, d, newLen)
		if span.Empty() {
			c.latest = nil
		} else {
			c.latest.Span = span
		}
	}
}

// dropBuffer removes every anchor referencing the given buffer.
func dropBuffer(anchors []anchor.Anchor, bufferID string) []anchor.Anchor {
	out := anchors[:0]
	for _, a := range anchors {
		if a.BufferID == bufferID {
			continue
		}
		out = append(out, a)
	}
	return out
}

// pruneEmptySlices drops anchors whose re-sliced buffer text is empty; the
// span survived adjustment but no longer selects any text. Whitespace-only
// spans are kept.
func (c *Coordinator) pruneEmptySlices(anchors []anchor.Anchor) []anchor.Anchor {
	out := anchors[:0]
	for _, a := range anchors {
		buf := c.buffers[a.BufferID]
		if buf == nil {
			continue
		}
		if buf.Slice(a.Span.Start, a.Span.End) == "" {
			c.log.Debug().Str("anchor", a.ID).Str("kind", a.Kind.String()).Msg("anchor pruned after edit")
			continue
		}
		out = append(out, a)
	}
	return out
}
