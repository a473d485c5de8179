package checklist

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"

	"github.com/counselops/brief/internal/core/casefile"
	"github.com/counselops/brief/internal/engine/anchor"
	"github.com/counselops/brief/internal/engine/highlight"
	"github.com/counselops/brief/internal/engine/overlay"
)

func (v View) startSelection() (View, tea.Cmd) {
	docID := v.coord.ActiveDocument()
	buf := v.coord.Buffer(docID)
	if buf == nil || buf.Len() == 0 {
		return v, nil
	}

	layout := overlay.NewLayout(buf.Text(), v.docView.Width)
	start := layout.RowStart(v.docView.YOffset)

	v.selecting = true
	v.selStart = start
	v.selCursor = start
	v.pushSelection()
	v.refreshDocument()
	return v, nil
}

func (v View) handleSelectionKey(msg tea.KeyMsg) (View, tea.Cmd) {
	docID := v.coord.ActiveDocument()
	buf := v.coord.Buffer(docID)
	if buf == nil {
		v.selecting = false
		return v, nil
	}
	text := []rune(buf.Text())
	layout := overlay.NewLayout(string(text), v.docView.Width)

	switch msg.String() {
	case "esc":
		v.selecting = false
		v.coord.ClearSelection()
		v.refreshDocument()
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
	default:
		return v, nil
	}

	v.pushSelection()
	v.scrollIntoView(v.selCursor)
	v.refreshDocument()
	return v, nil
}

func (v *View) pushSelection() {
	start, end := v.selStart, v.selCursor
	if end < start {
		start, end = end, start
	}
	v.coord.SetSelection(v.coord.ActiveDocument(), anchor.Span{Start: start, End: end + 1}, highlight.OriginDocument)
}

// Promote opens the add-evidence form over the pending document selection.
// The root model calls this once the promote keybinding has cleared mode
// gating.
func (v View) Promote() (View, tea.Cmd) {
	a, ok := v.coord.PendingSelection()
	if !ok || !v.coord.CanPromote() {
		return v, nil
	}
	buf := v.coord.Buffer(a.BufferID)
	if buf == nil {
		return v, nil
	}

	v.formSpan = pendingSpan{
		documentID: a.BufferID,
		start:      a.Span.Start,
		end:        a.Span.End,
		text:       buf.Slice(a.Span.Start, a.Span.End),
	}
	v.formText = v.formSpan.text
	v.formCategory = ""
	if len(v.categories) > 0 {
		v.formCategory = v.categories[0].ID
	}

	opts := make([]huh.Option[string], 0, len(v.categories))
	for _, c := range v.categories {
		opts = append(opts, huh.NewOption(c.Label, c.ID))
	}

	v.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Category").
			Options(opts...).
			Value(&v.formCategory),
		huh.NewInput().
			Title("Fact").
			Value(&v.formText),
	))
	return v, v.form.Init()
}

func (v View) handleFormMsg(msg tea.Msg) (View, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		v.form = nil
		return v, nil
	}

	model, cmd := v.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateCompleted:
		span := v.formSpan
		item := casefile.Item{
			Text:        v.formText,
			DocumentID:  span.documentID,
			StartOffset: span.start,
			EndOffset:   span.end,
		}
		categoryID := v.formCategory
		v.form = nil
		v.selecting = false
		v.coord.ClearSelection()
		v.refreshDocument()
		return v, tea.Batch(cmd, addEvidence(v.ws, categoryID, item))
	case huh.StateAborted:
		v.form = nil
		return v, cmd
	}
	return v, cmd
}

// evidenceAnchors flattens the checklist into render anchors carrying their
// category color.
func evidenceAnchors(categories []casefile.Category) []anchor.Anchor {
	var anchors []anchor.Anchor
	for _, c := range categories {
		for _, it := range c.Values {
			if !it.HasEvidence() {
				continue
			}
			anchors = append(anchors, anchor.Anchor{
				ID:       it.ID,
				BufferID: it.DocumentID,
				Span:     anchor.Span{Start: it.StartOffset, End: it.EndOffset},
				Kind:     anchor.KindChecklistEvidence,
				Label:    c.Label,
				Color:    c.Color,
			})
		}
	}
	if len(anchors) > 0 {
		log.Debug().Int("count", len(anchors)).Msg("evidence anchors rebuilt")
	}
	return anchors
}
