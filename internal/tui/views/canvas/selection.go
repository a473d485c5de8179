package canvas

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/counselops/brief/internal/core/casefile"
	"github.com/counselops/brief/internal/core/eventbus"
	"github.com/counselops/brief/internal/engine/anchor"
	"github.com/counselops/brief/internal/engine/highlight"
	"github.com/counselops/brief/internal/engine/overlay"
)

func (v View) startSelection() (View, tea.Cmd) {
	text := v.summaryText()
	if text == "" {
		return v, nil
	}

	layout := overlay.NewLayout(text, v.summary.Width)
	start := layout.RowStart(v.summary.YOffset)

	v.selecting = true
	v.selStart = start
	v.selCursor = start
	v.pushSelection()
	v.refreshSummary()
	return v, nil
}

func (v View) handleSelectionKey(msg tea.KeyMsg) (View, tea.Cmd) {
	text := []rune(v.summaryText())
	layout := overlay.NewLayout(string(text), v.summary.Width)

	switch msg.String() {
	case "esc":
		v.selecting = false
		v.coord.ClearSelection()
		v.refreshSummary()
		return v, nil
	case "l", "right":
		if v.selCursor < len(text) {
			v.selCursor++
		}
	case "h", "left":
		if v.selCursor > 0 {
			v.selCursor--
		}
	case "j", "down":
		v.selCursor = layout.OffsetBelow(v.selCursor)
	case "k", "up":
		v.selCursor = layout.OffsetAbove(v.selCursor)
	case "w":
		v.selCursor = nextWord(text, v.selCursor)
	case "b":
		v.selCursor = prevWord(text, v.selCursor)
	default:
		return v, nil
	}

	v.pushSelection()
	v.scrollIntoView(v.selCursor)
	v.refreshSummary()
	return v, nil
}

// pushSelection mirrors the visual selection into the coordinator so it is
// tracked as a live anchor.
func (v *View) pushSelection() {
	start, end := v.selStart, v.selCursor
	if end < start {
		start, end = end, start
	}
	v.coord.SetSelection(highlight.SummaryBufferID, anchor.Span{Start: start, End: end + 1}, highlight.OriginSummary)
}

// Promote converts the pending selection into a chat context chip. The root
// model calls this once the promote keybinding has cleared mode gating.
func (v View) Promote() (View, tea.Cmd) {
	if _, ok := v.coord.PromoteSelection(); !ok {
		return v, nil
	}
	v.selecting = false
	v.refreshSummary()
	return v, nil
}

// RevertSelected reverts the patch under the cursor.
func (v View) RevertSelected() (View, tea.Cmd) {
	p := v.selectedPatch()
	if p == nil {
		return v, nil
	}
	if v.coord.RevertPatch(highlight.SummaryBufferID, p.ID) {
		v.bus.PublishPatchReverted(eventbus.PatchRevertedPayload{
			BufferID: highlight.SummaryBufferID,
			PatchID:  p.ID,
		})
		v.refreshSummary()
		return v, saveSummary(v.ws, v.summaryText())
	}
	return v, nil
}

// RevertAll reverts every applied patch of the active action.
func (v View) RevertAll() (View, tea.Cmd) {
	action := v.coord.PatchAction(highlight.SummaryBufferID)
	if action == nil {
		return v, nil
	}
	v.coord.RevertAllPatches(highlight.SummaryBufferID)
	v.bus.PublishPatchReverted(eventbus.PatchRevertedPayload{
		BufferID: highlight.SummaryBufferID,
		PatchID:  "*",
	})
	v.refreshSummary()
	return v, saveSummary(v.ws, v.summaryText())
}

// Dismiss drops the active patch action without touching the buffer.
func (v View) Dismiss() (View, tea.Cmd) {
	if v.coord.PatchAction(highlight.SummaryBufferID) == nil {
		return v, nil
	}
	v.coord.DismissPatchAction(highlight.SummaryBufferID)
	v.patchCursor = 0
	v.bus.PublishPatchDismissed(eventbus.PatchDismissedPayload{BufferID: highlight.SummaryBufferID})
	v.refreshSummary()
	return v, nil
}

func (v View) jumpNextSuggestion() (View, tea.Cmd) {
	sugs := v.coord.Suggestions()
	if len(sugs) == 0 {
		return v, nil
	}

	// Rotate through suggestions that still locate in the current text.
	for _, s := range sugs {
		if _, ok := v.coord.SuggestionSpan(s); !ok {
			continue
		}
		if req, ok := v.coord.JumpToSuggestion(s.ID); ok {
			return v, resolveHighlight(req.Token)
		}
	}
	return v, nil
}

func (v View) contextRefs() []casefile.ContextRef {
	anchors := v.coord.Contexts()
	refs := make([]casefile.ContextRef, 0, len(anchors))
	for _, a := range anchors {
		refType := casefile.RefSummary
		docID := ""
		if a.BufferID != highlight.SummaryBufferID {
			refType = casefile.RefDocument
			docID = a.BufferID
		}
		refs = append(refs, casefile.ContextRef{
			Type:       refType,
			DocumentID: docID,
			Text:       v.coord.ContextText(a),
			Start:      a.Span.Start,
			End:        a.Span.End,
		})
	}
	return refs
}

func nextWord(text []rune, pos int) int {
	i := pos
	for i < len(text) && !isSpace(text[i]) {
		i++
	}
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	if i >= len(text) {
		return len(text) - 1
	}
	return i
}

func prevWord(text []rune, pos int) int {
	i := pos
	for i > 0 && isSpace(text[i-1]) {
		i--
	}
	for i > 0 && !isSpace(text[i-1]) {
		i--
	}
	return i
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t'
}
