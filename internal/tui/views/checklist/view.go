// Package checklist implements the document-and-checklist view: the case
// document browser, the raw document viewer with evidence highlights and
// the categorized fact checklist.
package checklist

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"

	"github.com/counselops/brief/internal/core/casefile"
	"github.com/counselops/brief/internal/core/eventbus"
	"github.com/counselops/brief/internal/engine/highlight"
)

// Workspace is the slice of the case workspace the checklist view needs.
type Workspace interface {
	Documents() []casefile.Document
	Document(id string) (casefile.Document, bool)
	Categories(ctx context.Context) ([]casefile.Category, error)
	AddEvidence(ctx context.Context, categoryID string, item casefile.Item) (casefile.Item, error)
	ToggleItem(ctx context.Context, itemID string, done bool) error
	RemoveItem(ctx context.Context, itemID string) error
}

// Focus identifies which checklist panel has input focus.
type Focus int

const (
	FocusDocs Focus = iota
	FocusDocument
	FocusItems
)

// docItem adapts a casefile.Document to the bubbles list contract.
type docItem struct {
	doc casefile.Document
}

func (d docItem) Title() string       { return d.doc.Title }
func (d docItem) Description() string { return d.doc.ID }
func (d docItem) FilterValue() string { return d.doc.Title }

// flatItem is one checklist row with its category, flattened for cursor
// navigation.
type flatItem struct {
	category casefile.Category
	item     casefile.Item
	header   bool // true for category header rows
}

// View is the Bubble Tea sub-model for the checklist tab.
type View struct {
	ws    Workspace
	coord *highlight.Coordinator
	bus   *eventbus.EventBus

	docList list.Model
	docView viewport.Model

	categories []casefile.Category
	flat       []flatItem
	itemCursor int

	form         *huh.Form
	formCategory string
	formText     string
	formSpan     pendingSpan

	focus     Focus
	selecting bool
	selStart  int
	selCursor int

	width  int
	height int
	active bool
}

// pendingSpan is the selection captured when the add-evidence form opened.
type pendingSpan struct {
	documentID string
	start      int
	end        int
	text       string
}

// New creates a new checklist View.
func New(ws Workspace, coord *highlight.Coordinator, bus *eventbus.EventBus) View {
	items := make([]list.Item, 0)
	for _, d := range ws.Documents() {
		items = append(items, docItem{doc: d})
	}

	delegate := list.NewDefaultDelegate()
	dl := list.New(items, delegate, 0, 0)
	dl.Title = "Documents"
	dl.SetShowHelp(false)
	dl.SetFilteringEnabled(false)
	dl.SetShowStatusBar(false)

	return View{
		ws:      ws,
		coord:   coord,
		bus:     bus,
		docList: dl,
		docView: viewport.New(0, 0),
	}
}

// Init returns the initial commands for the checklist view.
func (v View) Init() tea.Cmd {
	return tea.Batch(loadCategories(v.ws), v.openSelectedDocument())
}

// Update handles messages for the checklist view.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	if v.form != nil {
		return v.handleFormMsg(msg)
	}

	switch msg := msg.(type) {
	case categoriesLoadedMsg:
		return v.handleCategoriesLoaded(msg)
	case evidenceAddedMsg:
		return v.handleEvidenceAdded(msg)
	case itemMutatedMsg:
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("checklist mutation failed")
			return v, nil
		}
		return v, loadCategories(v.ws)
	case highlightResolveMsg:
		return v.handleHighlightResolve(msg)
	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height

	lw := v.listWidth()
	v.docList.SetSize(lw, height-2)
	v.docView.Width = v.documentWidth()
	v.docView.Height = height - 3
	v.refreshDocument()
}

// SetActive marks whether this view is the currently active tab.
func (v *View) SetActive(active bool) {
	v.active = active
}

// HasEditorFocus reports whether the add-evidence form is consuming keys.
func (v View) HasEditorFocus() bool {
	return v.form != nil
}

// Selecting reports whether visual selection mode is active.
func (v View) Selecting() bool {
	return v.selecting
}

func (v View) handleCategoriesLoaded(msg categoriesLoadedMsg) (View, tea.Cmd) {
	if msg.err != nil {
		log.Error().Err(msg.err).Msg("failed to load checklist")
		return v, nil
	}
	v.categories = msg.categories
	v.rebuildFlat()
	v.pushEvidenceAnchors()
	v.refreshDocument()
	return v, nil
}

func (v View) handleEvidenceAdded(msg evidenceAddedMsg) (View, tea.Cmd) {
	if msg.err != nil {
		log.Error().Err(msg.err).Msg("failed to add evidence")
		return v, nil
	}
	v.bus.PublishChecklistItemAdded(eventbus.ChecklistItemAddedPayload{
		CategoryID: msg.categoryID,
		Item:       msg.item,
	})
	return v, loadCategories(v.ws)
}

func (v View) handleHighlightResolve(msg highlightResolveMsg) (View, tea.Cmd) {
	if !v.coord.IsCurrent(msg.token) {
		return v, nil
	}
	req, ok := v.coord.Latest()
	if !ok || req.BufferID == highlight.SummaryBufferID {
		return v, nil
	}

	// The jump may target a document that is not open yet.
	if v.coord.ActiveDocument() != v.selectedDocID() {
		if cmd := v.selectDocument(req.BufferID); cmd != nil {
			return v, tea.Batch(cmd, resolveHighlight(msg.token))
		}
	}
	if req.Center {
		v.centerOn(req.Span.Start)
	}
	v.refreshDocument()
	return v, nil
}

func (v View) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	if v.selecting {
		return v.handleSelectionKey(msg)
	}

	switch msg.String() {
	case "tab":
		v.focus = (v.focus + 1) % 3
		return v, nil
	}

	switch v.focus {
	case FocusDocs:
		return v.handleDocListKey(msg)
	case FocusDocument:
		return v.handleDocumentKey(msg)
	case FocusItems:
		return v.handleItemsKey(msg)
	}
	return v, nil
}

func (v View) handleDocListKey(msg tea.KeyMsg) (View, tea.Cmd) {
	if msg.String() == "enter" {
		return v, v.openSelectedDocument()
	}
	var cmd tea.Cmd
	v.docList, cmd = v.docList.Update(msg)
	return v, cmd
}

func (v View) handleDocumentKey(msg tea.KeyMsg) (View, tea.Cmd) {
	if msg.String() == "v" {
		return v.startSelection()
	}
	var cmd tea.Cmd
	v.docView, cmd = v.docView.Update(msg)
	return v, cmd
}

func (v View) handleItemsKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		v.moveItemCursor(1)
	case "k", "up":
		v.moveItemCursor(-1)
	case " ":
		if fi, ok := v.selectedItem(); ok {
			v.bus.PublishChecklistItemToggled(eventbus.ChecklistItemToggledPayload{
				ItemID: fi.item.ID,
				Done:   !fi.item.Done,
			})
			return v, toggleItem(v.ws, fi.item.ID, !fi.item.Done)
		}
	case "d":
		if fi, ok := v.selectedItem(); ok {
			return v, removeItem(v.ws, fi.item.ID)
		}
	case "enter":
		if fi, ok := v.selectedItem(); ok && fi.item.HasEvidence() {
			if req, ok := v.coord.JumpToAnchor(fi.item.ID); ok {
				return v, resolveHighlight(req.Token)
			}
		}
	}
	return v, nil
}

func (v *View) moveItemCursor(delta int) {
	next := v.itemCursor + delta
	for next >= 0 && next < len(v.flat) && v.flat[next].header {
		next += delta
	}
	if next >= 0 && next < len(v.flat) {
		v.itemCursor = next
	}
}

func (v View) selectedItem() (flatItem, bool) {
	if v.itemCursor < 0 || v.itemCursor >= len(v.flat) {
		return flatItem{}, false
	}
	fi := v.flat[v.itemCursor]
	if fi.header {
		return flatItem{}, false
	}
	return fi, true
}

func (v *View) rebuildFlat() {
	v.flat = v.flat[:0]
	for _, c := range v.categories {
		v.flat = append(v.flat, flatItem{category: c, header: true})
		for _, it := range c.Values {
			v.flat = append(v.flat, flatItem{category: c, item: it})
		}
	}
	if v.itemCursor >= len(v.flat) {
		v.itemCursor = len(v.flat) - 1
	}
	if v.itemCursor < 0 {
		v.itemCursor = 0
	}
	// Never park the cursor on a header.
	if v.itemCursor < len(v.flat) && v.flat[v.itemCursor].header {
		v.moveItemCursor(1)
	}
}

// pushEvidenceAnchors replaces the coordinator's evidence anchor set from
// the freshly loaded checklist.
func (v *View) pushEvidenceAnchors() {
	anchors := evidenceAnchors(v.categories)
	v.coord.SetEvidence(anchors)
}

func (v View) selectedDocID() string {
	if it, ok := v.docList.SelectedItem().(docItem); ok {
		return it.doc.ID
	}
	return ""
}

// openSelectedDocument makes the highlighted list entry the active document.
func (v *View) openSelectedDocument() tea.Cmd {
	id := v.selectedDocID()
	if id == "" {
		return nil
	}
	doc, ok := v.ws.Document(id)
	if !ok {
		return nil
	}

	// A document the coordinator already tracks keeps its buffer, anchors
	// and scroll position.
	if v.coord.Buffer(doc.ID) == nil {
		v.coord.OpenBuffer(doc.ID, doc.Content)
		v.docView.SetYOffset(0)
	}
	v.coord.SetActiveDocument(doc.ID)
	v.refreshDocument()

	bus := v.bus
	return func() tea.Msg {
		bus.PublishDocumentOpened(eventbus.DocumentOpenedPayload{Document: doc})
		return nil
	}
}

// selectDocument moves the doc list cursor to the given id and opens it.
func (v *View) selectDocument(id string) tea.Cmd {
	for i, it := range v.docList.Items() {
		if d, ok := it.(docItem); ok && d.doc.ID == id {
			v.docList.Select(i)
			return v.openSelectedDocument()
		}
	}
	return nil
}
