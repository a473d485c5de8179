// Package patch models the atomic summary edits produced by an assistant
// turn: an ordered action of delete-then-insert patches that can be
// individually previewed and reverted, and that goes stale when the buffer
// changes underneath it.
package patch

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/counselops/brief/internal/engine/anchor"
	"github.com/counselops/brief/internal/engine/textbuf"
	"github.com/counselops/brief/internal/engine/textdiff"
)

// Status is the lifecycle state of a single patch. Within one action the
// transition is one-way: applied -> reverted.
type Status int

const (
	StatusApplied Status = iota
	StatusReverted
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusReverted:
		return "reverted"
	default:
		return "unknown"
	}
}

// Edit is one incoming edit instruction from an assistant reply, positioned
// against the buffer as it stood before the whole action.
type Edit struct {
	Start        int
	DeleteLength int
	InsertText   string
}

// Patch is one atomic delete-then-insert edit.
type Patch struct {
	ID       string
	BufferID string

	// Location in the pre-action buffer.
	OriginalStart int
	OriginalEnd   int

	// Location in the current buffer, kept consistent as other patches in
	// the same action are reverted. While applied the span covers the
	// inserted text; after revert it covers the restored text.
	CurrentStart int
	CurrentEnd   int

	DeletedText string
	InsertText  string
	Status      Status
}

// Span returns the patch's current span in the buffer.
func (p *Patch) Span() anchor.Span {
	return anchor.Span{Start: p.CurrentStart, End: p.CurrentEnd}
}

// Description renders the human-readable audit line for the patch.
func (p *Patch) Description() string {
	deleted := strings.TrimSpace(p.DeletedText)
	inserted := strings.TrimSpace(p.InsertText)

	switch {
	case deleted == "" && inserted == "":
		return "Minor whitespace adjustment"
	case deleted == "":
		return fmt.Sprintf("Inserted '%s'", p.InsertText)
	case inserted == "":
		return fmt.Sprintf("Removed '%s'", p.DeletedText)
	default:
		return fmt.Sprintf("Replaced '%s' with '%s'", p.DeletedText, p.InsertText)
	}
}

// Action is the ordered set of patches from a single assistant turn.
type Action struct {
	ID       string
	BufferID string
	Patches  []*Patch

	// Stale is set when the buffer mutates outside this action's own
	// revert operations. A stale action serves descriptions for audit but
	// rejects preview and revert permanently.
	Stale bool
}

// Patch returns the patch with the given id, or nil.
func (a *Action) Patch(id string) *Patch {
	for _, p := range a.Patches {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AppliedCount returns how many patches are still applied.
func (a *Action) AppliedCount() int {
	n := 0
	for _, p := range a.Patches {
		if p.Status == StatusApplied {
			n++
		}
	}
	return n
}

// Descriptions returns the audit lines for every patch in order. Available
// even on stale actions.
func (a *Action) Descriptions() []string {
	out := make([]string, len(a.Patches))
	for i, p := range a.Patches {
		out[i] = p.Description()
	}
	return out
}

// NewAction builds an action from edit instructions and applies it to the
// buffer. Instructions are positioned against the pre-action text; they are
// applied in ascending start order with a running delta so that each
// patch's current span lands correctly. The onApply callback receives the
// exact diff of each individual patch so the caller can adjust anchors
// per-patch rather than from one collapsed region.
func NewAction(buf *textbuf.Buffer, edits []Edit, onApply func(textdiff.Result)) (*Action, error) {
	if len(edits) == 0 {
		return nil, fmt.Errorf("action requires at least one edit")
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	for i, e := range sorted {
		if e.Start < 0 || e.DeleteLength < 0 || e.Start+e.DeleteLength > buf.Len() {
			return nil, fmt.Errorf("edit %d out of bounds: start %d delete %d (buffer %d)", i, e.Start, e.DeleteLength, buf.Len())
		}
		if i > 0 && sorted[i-1].Start+sorted[i-1].DeleteLength > e.Start {
			return nil, fmt.Errorf("edit %d overlaps previous edit", i)
		}
	}

	action := &Action{
		ID:       uuid.NewString(),
		BufferID: buf.ID(),
	}

	delta := 0
	for _, e := range sorted {
		insertLen := utf8.RuneCountInString(e.InsertText)
		p := &Patch{
			ID:            uuid.NewString(),
			BufferID:      buf.ID(),
			OriginalStart: e.Start,
			OriginalEnd:   e.Start + e.DeleteLength,
			CurrentStart:  e.Start + delta,
			CurrentEnd:    e.Start + delta + insertLen,
			DeletedText:   buf.Slice(e.Start+delta, e.Start+delta+e.DeleteLength),
			InsertText:    e.InsertText,
			Status:        StatusApplied,
		}

		d := textdiff.Result{
			Start:       p.CurrentStart,
			RemovedLen:  e.DeleteLength,
			InsertedLen: insertLen,
		}
		buf.Replace(p.CurrentStart, p.CurrentStart+e.DeleteLength, e.InsertText)
		if onApply != nil {
			onApply(d)
		}

		action.Patches = append(action.Patches, p)
		delta += insertLen - e.DeleteLength
	}

	return action, nil
}
