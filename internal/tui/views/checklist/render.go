package checklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/counselops/brief/internal/core/styles"
	"github.com/counselops/brief/internal/engine/anchor"
	"github.com/counselops/brief/internal/engine/overlay"
)

// View renders the checklist view.
func (v View) View() string {
	if v.form != nil {
		return styles.ModalStyle.Render(
			styles.ModalTitleStyle.Render("Add evidence") + "\n" + v.form.View())
	}

	docs := v.renderDocList()
	document := v.renderDocumentPanel()
	items := v.renderItemsPanel()
	return lipgloss.JoinHorizontal(lipgloss.Top, docs, document, items)
}

func (v View) listWidth() int {
	w := v.width / 4
	if w < 20 {
		w = 20
	}
	return w
}

func (v View) documentWidth() int {
	w := v.width/2 - 2
	if w < 20 {
		w = 20
	}
	return w
}

func (v View) itemsWidth() int {
	w := v.width - v.listWidth() - v.documentWidth() - 6
	if w < 20 {
		w = 20
	}
	return w
}

func (v View) renderDocList() string {
	panel := styles.PanelStyle
	if v.focus == FocusDocs {
		panel = styles.PanelFocusedStyle
	}
	return panel.Width(v.listWidth()).Height(v.height - 2).Render(v.docList.View())
}

func (v View) renderDocumentPanel() string {
	title := styles.PanelTitleStyle.Render(styles.IconDocument + v.activeDocTitle())

	panel := styles.PanelStyle
	if v.focus == FocusDocument {
		panel = styles.PanelFocusedStyle
	}
	return panel.Width(v.documentWidth()).Height(v.height - 2).
		Render(title + "\n" + v.docView.View())
}

func (v View) activeDocTitle() string {
	id := v.coord.ActiveDocument()
	if doc, ok := v.ws.Document(id); ok {
		return doc.Title
	}
	return "Document"
}

// refreshDocument re-renders the raw document text with evidence, selection
// and jump highlights.
func (v *View) refreshDocument() {
	docID := v.coord.ActiveDocument()
	buf := v.coord.Buffer(docID)
	if buf == nil {
		v.docView.SetContent("")
		return
	}

	spans := v.collectSpans(docID)
	v.docView.SetContent(renderHighlighted(buf.Text(), v.docView.Width, spans))
}

type styledSpan struct {
	span  anchor.Span
	style lipgloss.Style
	prio  int
}

func (v View) collectSpans(docID string) []styledSpan {
	var spans []styledSpan

	for _, a := range v.coord.Evidence(docID) {
		spans = append(spans, styledSpan{span: a.Span, style: styles.EvidenceStyle(a.Color), prio: 1})
	}
	for _, a := range v.coord.Contexts() {
		if a.BufferID == docID {
			spans = append(spans, styledSpan{span: a.Span, style: styles.ContextStyle, prio: 2})
		}
	}
	if req, ok := v.coord.Latest(); ok && req.BufferID == docID {
		spans = append(spans, styledSpan{span: req.Span, style: styles.JumpFlashStyle, prio: 3})
	}
	if a, ok := v.coord.PendingSelection(); ok && a.BufferID == docID {
		spans = append(spans, styledSpan{span: a.Span, style: styles.SelectionStyle, prio: 4})
	}

	return spans
}

// renderHighlighted wraps the text and applies span styles per row. Higher
// priority wins where spans overlap.
func renderHighlighted(text string, width int, spans []styledSpan) string {
	layout := overlay.NewLayout(text, width)
	runes := []rune(text)

	best := make([]int, len(runes))
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
		for end < len(runes) && runes[end] != '\n' && (width <= 0 || end-start < width) {
			end++
		}

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
	return b.String()
}

func (v *View) centerOn(offset int) {
	buf := v.coord.Buffer(v.coord.ActiveDocument())
	if buf == nil {
		return
	}
	layout := overlay.NewLayout(buf.Text(), v.docView.Width)
	target := layout.RowAt(offset) - v.docView.Height/2
	if target < 0 {
		target = 0
	}
	v.docView.SetYOffset(target)
}

func (v *View) scrollIntoView(offset int) {
	buf := v.coord.Buffer(v.coord.ActiveDocument())
	if buf == nil {
		return
	}
	layout := overlay.NewLayout(buf.Text(), v.docView.Width)
	row := layout.RowAt(offset)
	if row < v.docView.YOffset {
		v.docView.SetYOffset(row)
	} else if row >= v.docView.YOffset+v.docView.Height {
		v.docView.SetYOffset(row - v.docView.Height + 1)
	}
}

func (v View) renderItemsPanel() string {
	w := v.itemsWidth()
	title := styles.PanelTitleStyle.Render(styles.IconCheckList + "Checklist")

	var b strings.Builder
	b.WriteString(title)
	b.WriteByte('\n')

	for i, fi := range v.flat {
		if fi.header {
			marker := styles.EvidenceStyle(fi.category.Color).Render("█ ")
			b.WriteString(marker + styles.CategoryStyle.Render(fi.category.Label))
			b.WriteByte('\n')
			continue
		}

		cursor := "  "
		if i == v.itemCursor && v.focus == FocusItems {
			cursor = styles.CommandStyle.Render("> ")
		}

		line := itemLine(fi)
		b.WriteString(cursor + truncate(line, w-4))
		b.WriteByte('\n')
	}

	if len(v.flat) == 0 {
		b.WriteString(styles.HelpStyle.Render("no checklist entries yet"))
	}

	panel := styles.PanelStyle
	if v.focus == FocusItems {
		panel = styles.PanelFocusedStyle
	}
	return panel.Width(w).Height(v.height - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func itemLine(fi flatItem) string {
	var b strings.Builder
	if fi.item.Done {
		b.WriteString(styles.ItemDoneStyle.Render(styles.IconItemDone + fi.item.Text))
	} else {
		b.WriteString(styles.ItemOpenStyle.Render(styles.IconItemOpen + fi.item.Text))
	}
	if fi.item.HasEvidence() {
		b.WriteString(styles.EvidenceStyle(fi.category.Color).Render(
			fmt.Sprintf(" [%s]", styles.IconDocument)))
	}
	return b.String()
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
