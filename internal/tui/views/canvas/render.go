package canvas

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/counselops/brief/internal/core/casefile"
	"github.com/counselops/brief/internal/core/styles"
	"github.com/counselops/brief/internal/engine/anchor"
	"github.com/counselops/brief/internal/engine/highlight"
	"github.com/counselops/brief/internal/engine/overlay"
	"github.com/counselops/brief/internal/engine/patch"
)

// View renders the canvas view.
func (v View) View() string {
	left := v.renderSummaryPanel()
	if patches := v.renderPatchPanel(); patches != "" {
		left = lipgloss.JoinVertical(lipgloss.Left, left, patches)
	}
	right := v.renderChatPanel()
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (v View) summaryText() string {
	if buf := v.coord.Buffer(highlight.SummaryBufferID); buf != nil {
		return buf.Text()
	}
	return ""
}

func (v View) selectedPatch() *patch.Patch {
	action := v.coord.PatchAction(highlight.SummaryBufferID)
	if action == nil || v.patchCursor >= len(action.Patches) {
		return nil
	}
	return action.Patches[v.patchCursor]
}

func (v View) summaryBounds() (int, int) {
	w := v.width*2/3 - 2
	h := v.height - 3
	if v.coord.PatchAction(highlight.SummaryBufferID) != nil {
		h -= v.patchPanelHeight()
	}
	if w < 10 {
		w = 10
	}
	if h < 3 {
		h = 3
	}
	return w, h
}

func (v View) patchPanelHeight() int {
	h := v.height / 3
	if h < 6 {
		h = 6
	}
	return h
}

func (v View) chatWidth() int {
	w := v.width - (v.width*2/3 - 2) - 4
	if w < 20 {
		w = 20
	}
	return w
}

// refreshSummary re-renders the viewport content from the current buffer
// and highlight state.
func (v *View) refreshSummary() {
	text := v.summaryText()

	if v.selecting || v.highlightActive() {
		v.summary.SetContent(v.renderHighlighted(text))
		return
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(v.summary.Width),
	)
	if err != nil {
		v.summary.SetContent(text)
		return
	}
	out, err := renderer.Render(text)
	if err != nil {
		log.Debug().Err(err).Msg("markdown render failed, falling back to raw text")
		v.summary.SetContent(text)
		return
	}
	v.summary.SetContent(out)
}

// highlightActive reports whether any span styling needs the raw text view.
func (v View) highlightActive() bool {
	if len(v.coord.Contexts()) > 0 {
		return true
	}
	if _, ok := v.coord.PreviewedPatch(); ok {
		return true
	}
	if req, ok := v.coord.Latest(); ok && req.BufferID == highlight.SummaryBufferID {
		return true
	}
	return false
}

type styledSpan struct {
	span  anchor.Span
	style lipgloss.Style
	prio  int
}

// collectSpans gathers every live span over the summary with its priority.
// Higher priority wins where spans overlap.
func (v View) collectSpans() []styledSpan {
	var spans []styledSpan

	for _, s := range v.coord.Suggestions() {
		if sp, ok := v.coord.SuggestionSpan(s); ok {
			spans = append(spans, styledSpan{span: sp, style: styles.SuggestionStyle, prio: 1})
		}
	}
	for _, a := range v.coord.Contexts() {
		if a.BufferID == highlight.SummaryBufferID {
			spans = append(spans, styledSpan{span: a.Span, style: styles.ContextStyle, prio: 2})
		}
	}
	if id, ok := v.coord.PreviewedPatch(); ok {
		if action := v.coord.PatchAction(highlight.SummaryBufferID); action != nil {
			if p := action.Patch(id); p != nil {
				spans = append(spans, styledSpan{span: p.Span(), style: styles.PreviewStyle, prio: 3})
			}
		}
	}
	if req, ok := v.coord.Latest(); ok && req.BufferID == highlight.SummaryBufferID {
		spans = append(spans, styledSpan{span: req.Span, style: styles.JumpFlashStyle, prio: 4})
	}
	if a, ok := v.coord.PendingSelection(); ok && a.BufferID == highlight.SummaryBufferID {
		spans = append(spans, styledSpan{span: a.Span, style: styles.SelectionStyle, prio: 5})
	}

	return spans
}

// renderHighlighted wraps the raw text and applies span styles per row.
func (v View) renderHighlighted(text string) string {
	spans := v.collectSpans()
	layout := overlay.NewLayout(text, v.summary.Width)
	runes := []rune(text)

	// Best-priority style per rune.
	best := make([]int, len(runes)) // index into spans + 1; 0 = unstyled
	for i, s := range spans {
		for p := s.span.Start; p < s.span.End && p < len(runes); p++ {
			if p < 0 {
				continue
			}
			if best[p] == 0 || spans[best[p]-1].prio < s.prio {
				best[p] = i + 1
			}
		}
	}

	var b strings.Builder
	for i := 0; i < layout.RowCount(); i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		start := layout.RowStart(i)
		end := start
		for end < len(runes) && runes[end] != '\n' && (v.summary.Width <= 0 || end-start < v.summary.Width) {
			end++
		}
		v.renderRow(&b, runes, best, spans, start, end)
	}
	return b.String()
}

func (v View) renderRow(b *strings.Builder, runes []rune, best []int, spans []styledSpan, start, end int) {
	seg := start
	for seg < end {
		cur := best[seg]
		next := seg
		for next < end && best[next] == cur {
			next++
		}
		chunk := string(runes[seg:next])
		if cur == 0 {
			b.WriteString(chunk)
		} else {
			b.WriteString(spans[cur-1].style.Render(chunk))
		}
		seg = next
	}
}

// centerOn scrolls the viewport so the given offset sits mid-screen.
func (v *View) centerOn(offset int) {
	layout := overlay.NewLayout(v.summaryText(), v.summary.Width)
	row := layout.RowAt(offset)
	target := row - v.summary.Height/2
	if target < 0 {
		target = 0
	}
	v.summary.SetYOffset(target)
}

// scrollIntoView nudges the viewport just enough to keep the offset visible.
func (v *View) scrollIntoView(offset int) {
	layout := overlay.NewLayout(v.summaryText(), v.summary.Width)
	row := layout.RowAt(offset)
	if row < v.summary.YOffset {
		v.summary.SetYOffset(row)
	} else if row >= v.summary.YOffset+v.summary.Height {
		v.summary.SetYOffset(row - v.summary.Height + 1)
	}
}

func (v View) renderSummaryPanel() string {
	title := styles.PanelTitleStyle.Render(styles.IconDocument + "Summary")

	var body string
	switch {
	case v.editing:
		body = v.editor.View()
	default:
		body = v.summary.View()
	}

	panel := styles.PanelStyle
	if v.focus == FocusSummary && !v.chatInput.Focused() {
		panel = styles.PanelFocusedStyle
	}
	w, h := v.summaryBounds()
	return panel.Width(w).Height(h + 1).Render(title + "\n" + body)
}

func (v View) renderChatPanel() string {
	w := v.chatWidth()
	title := styles.PanelTitleStyle.Render(styles.IconChat + " Chat")

	var b strings.Builder
	b.WriteString(title)
	b.WriteByte('\n')

	for _, m := range v.messages {
		switch m.Role {
		case casefile.RoleUser:
			b.WriteString(styles.ChatUserStyle.Render("you ") + wrapText(m.Content, w-6))
		default:
			b.WriteString(styles.ChatAssistantStyle.Render("asst ") + wrapText(m.Content, w-6))
		}
		b.WriteByte('\n')
	}

	if v.thinking {
		b.WriteString(v.spin.View() + styles.ChatAssistantStyle.Render(" thinking"))
		b.WriteByte('\n')
	}

	// Context chips attached to the next outgoing message.
	for _, a := range v.coord.Contexts() {
		chip := styles.ChatContextStyle.Render(
			styles.IconContext + " " + truncate(v.coord.ContextText(a), w-8))
		b.WriteString(chip)
		b.WriteByte('\n')
	}

	b.WriteString(v.chatInput.View())

	panel := styles.PanelStyle
	if v.chatInput.Focused() {
		panel = styles.PanelFocusedStyle
	}
	return panel.Width(w).Height(v.height - 2).Render(b.String())
}

func (v View) renderPatchPanel() string {
	action := v.coord.PatchAction(highlight.SummaryBufferID)
	if action == nil {
		return ""
	}

	w, _ := v.summaryBounds()
	title := styles.PanelTitleStyle.Render(styles.IconPatch + " Patches")

	var b strings.Builder
	b.WriteString(title)
	if action.Stale {
		b.WriteString(" " + styles.PatchStaleStyle.Render(styles.IconStale+"outdated by manual edits"))
	}
	b.WriteByte('\n')

	previewed, _ := v.coord.PreviewedPatch()
	for i, p := range action.Patches {
		cursor := "  "
		if i == v.patchCursor && v.focus == FocusPatches {
			cursor = styles.CommandStyle.Render("> ")
		}
		b.WriteString(cursor + patchLine(p, w-4))
		b.WriteByte('\n')

		if p.ID == previewed {
			b.WriteString(indent(renderInlineDiff(p.DeletedText, p.InsertText), 4))
			b.WriteByte('\n')
		}
	}

	panel := styles.PanelStyle
	if v.focus == FocusPatches {
		panel = styles.PanelFocusedStyle
	}
	return panel.Width(w).Render(strings.TrimRight(b.String(), "\n"))
}

func patchLine(p *patch.Patch, width int) string {
	var icon string
	var style lipgloss.Style
	switch p.Status {
	case patch.StatusApplied:
		icon = styles.IconApplied
		style = styles.PatchAppliedStyle
	default:
		icon = styles.IconReverted
		style = styles.PatchRevertedStyle
	}

	return style.Render(icon) + truncate(p.Description(), width-4)
}

// renderInlineDiff shows a word-level diff between the removed and inserted
// text of one patch.
func renderInlineDiff(deleted, inserted string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(deleted, inserted, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString(styles.DiffDeleteStyle.Render(d.Text))
		case diffmatchpatch.DiffInsert:
			b.WriteString(styles.DiffInsertStyle.Render(d.Text))
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

func wrapText(s string, width int) string {
	if width < 8 {
		width = 8
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

func truncate(s string, width int) string {
	if width < 4 {
		width = 4
	}
	runes := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(runes) <= width {
		return string(runes)
	}
	return string(runes[:width-1]) + "…"
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}
