// Package canvas implements the summary-and-chat view: the rendered
// narrative summary, the assistant chat panel and the patch panel for the
// active edit action.
package canvas

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/counselops/brief/internal/core/casefile"
	"github.com/counselops/brief/internal/core/eventbus"
	"github.com/counselops/brief/internal/core/styles"
	"github.com/counselops/brief/internal/engine/highlight"
)

// Workspace is the slice of the case workspace the canvas view needs.
type Workspace interface {
	Messages(ctx context.Context) ([]casefile.Message, error)
	Chat(ctx context.Context, text string, refs []casefile.ContextRef) (casefile.ChatReply, error)
	Summary(ctx context.Context) (string, error)
	SaveSummary(ctx context.Context, text string) error
	GenerateSummary(ctx context.Context) (string, error)
	Suggestions(ctx context.Context, summary string) ([]casefile.Suggestion, error)
}

// Focus identifies which canvas panel has input focus.
type Focus int

const (
	FocusSummary Focus = iota
	FocusChat
	FocusPatches
)

// View is the Bubble Tea sub-model for the canvas tab.
type View struct {
	ws    Workspace
	coord *highlight.Coordinator
	bus   *eventbus.EventBus

	summary   viewport.Model
	editor    textarea.Model
	chatInput textinput.Model
	spin      spinner.Model

	messages []casefile.Message

	focus       Focus
	selecting   bool
	selStart    int // rune offset where the selection was opened
	selCursor   int
	editing     bool
	thinking    bool
	patchCursor int

	width  int
	height int
	active bool
}

// New creates a new canvas View.
func New(ws Workspace, coord *highlight.Coordinator, bus *eventbus.EventBus) View {
	ed := textarea.New()
	ed.CharLimit = 0

	ci := textinput.New()
	ci.Placeholder = "ask about the case..."

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.ChatAssistantStyle

	return View{
		ws:        ws,
		coord:     coord,
		bus:       bus,
		summary:   viewport.New(0, 0),
		editor:    ed,
		chatInput: ci,
		spin:      sp,
	}
}

// Init returns the initial commands for the canvas view.
func (v View) Init() tea.Cmd {
	return tea.Batch(
		loadSummary(v.ws),
		loadMessages(v.ws),
	)
}

// Update handles messages for the canvas view.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		return v.handleSummaryLoaded(msg)
	case messagesLoadedMsg:
		if msg.err != nil {
			log.Debug().Err(msg.err).Msg("failed to load chat history")
			return v, nil
		}
		v.messages = msg.messages
		return v, nil
	case chatRepliedMsg:
		return v.handleChatReplied(msg)
	case summaryGeneratedMsg:
		return v.handleSummaryGenerated(msg)
	case suggestionsMsg:
		return v.handleSuggestions(msg)
	case highlightResolveMsg:
		return v.handleHighlightResolve(msg)
	case spinner.TickMsg:
		if v.thinking {
			var cmd tea.Cmd
			v.spin, cmd = v.spin.Update(msg)
			return v, cmd
		}
		return v, nil
	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height

	sw, sh := v.summaryBounds()
	v.summary.Width = sw
	v.summary.Height = sh
	v.editor.SetWidth(sw)
	v.editor.SetHeight(sh)
	v.chatInput.Width = v.chatWidth() - 4
	v.refreshSummary()
}

// SetActive marks whether this view is the currently active tab.
func (v *View) SetActive(active bool) {
	v.active = active
}

// HasEditorFocus reports whether a text input is consuming keys.
func (v View) HasEditorFocus() bool {
	return v.editing || v.chatInput.Focused()
}

// Selecting reports whether visual selection mode is active.
func (v View) Selecting() bool {
	return v.selecting
}

func (v View) handleSummaryLoaded(msg summaryLoadedMsg) (View, tea.Cmd) {
	if msg.err != nil {
		log.Debug().Err(msg.err).Msg("failed to load summary")
		return v, nil
	}
	v.coord.OpenBuffer(highlight.SummaryBufferID, msg.text)
	v.refreshSummary()
	return v, nil
}

func (v View) handleChatReplied(msg chatRepliedMsg) (View, tea.Cmd) {
	v.thinking = false
	if msg.err != nil {
		log.Error().Err(msg.err).Msg("chat request failed")
		return v, nil
	}

	var cmd tea.Cmd
	v.messages = nil
	cmd = loadMessages(v.ws)
	v.bus.PublishAssistantReplyReceived(eventbus.AssistantReplyReceivedPayload{Reply: msg.reply})

	// The buffer mutates here, on the event loop, never mid-render.
	if len(msg.reply.Edits) > 0 {
		edits := toPatchEdits(msg.reply.Edits)
		action, err := v.coord.ApplyEdits(highlight.SummaryBufferID, edits)
		if err != nil {
			log.Error().Err(err).Msg("failed to apply assistant edits")
		} else {
			v.patchCursor = 0
			v.bus.PublishPatchApplied(eventbus.PatchAppliedPayload{
				BufferID: highlight.SummaryBufferID,
				ActionID: action.ID,
				Count:    len(action.Patches),
			})
			return v, tea.Batch(cmd, saveSummary(v.ws, v.summaryText()))
		}
	}

	v.refreshSummary()
	return v, cmd
}

func (v View) handleSummaryGenerated(msg summaryGeneratedMsg) (View, tea.Cmd) {
	v.thinking = false
	if msg.err != nil {
		log.Error().Err(msg.err).Msg("summary generation failed")
		return v, nil
	}
	v.coord.SetText(highlight.SummaryBufferID, msg.text, highlight.SourceAssistant)
	v.bus.PublishSummarySaved(eventbus.SummarySavedPayload{Length: len(msg.text)})
	v.refreshSummary()
	return v, nil
}

func (v View) handleSuggestions(msg suggestionsMsg) (View, tea.Cmd) {
	v.thinking = false
	if msg.err != nil {
		log.Error().Err(msg.err).Msg("suggestion request failed")
		return v, nil
	}
	v.coord.SetSuggestions(toHighlightSuggestions(msg.suggestions))
	v.refreshSummary()
	return v, nil
}

// handleHighlightResolve consumes a deferred highlight request one frame
// after it was issued. Superseded tokens are dropped.
func (v View) handleHighlightResolve(msg highlightResolveMsg) (View, tea.Cmd) {
	if !v.coord.IsCurrent(msg.token) {
		return v, nil
	}
	req, ok := v.coord.Latest()
	if !ok || req.BufferID != highlight.SummaryBufferID {
		return v, nil
	}
	if req.Center {
		v.centerOn(req.Span.Start)
	}
	v.refreshSummary()
	return v, nil
}

func (v View) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	if v.editing {
		return v.handleEditorKey(msg)
	}
	if v.chatInput.Focused() {
		return v.handleChatKey(msg)
	}
	if v.selecting {
		return v.handleSelectionKey(msg)
	}
	return v.handleNormalKey(msg)
}

func (v View) handleNormalKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "tab":
		v.focus = (v.focus + 1) % 3
		if v.focus == FocusChat {
			v.chatInput.Focus()
		}
		return v, nil
	case "v":
		if v.focus == FocusSummary {
			return v.startSelection()
		}
	case "e":
		if v.focus == FocusSummary {
			// Editing invalidates any in-flight highlight request.
			v.coord.ClearHighlight()
			v.editing = true
			v.editor.SetValue(v.summaryText())
			return v, v.editor.Focus()
		}
	case "g":
		if !v.thinking {
			v.thinking = true
			return v, tea.Batch(generateSummary(v.ws), v.spin.Tick)
		}
	case "s":
		if !v.thinking {
			v.thinking = true
			return v, tea.Batch(loadSuggestions(v.ws, v.summaryText()), v.spin.Tick)
		}
	case "n":
		return v.jumpNextSuggestion()
	}

	switch v.focus {
	case FocusSummary:
		var cmd tea.Cmd
		v.summary, cmd = v.summary.Update(msg)
		return v, cmd
	case FocusPatches:
		return v.handlePatchKey(msg)
	}
	return v, nil
}

func (v View) handleEditorKey(msg tea.KeyMsg) (View, tea.Cmd) {
	if msg.String() == "esc" {
		v.editing = false
		v.editor.Blur()
		text := v.editor.Value()
		v.coord.SetText(highlight.SummaryBufferID, text, highlight.SourceUser)
		if action := v.coord.PatchAction(highlight.SummaryBufferID); action != nil && action.Stale {
			v.bus.PublishPatchStale(eventbus.PatchStalePayload{BufferID: highlight.SummaryBufferID})
		}
		v.refreshSummary()
		return v, saveSummary(v.ws, text)
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

func (v View) handleChatKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.chatInput.Blur()
		v.focus = FocusSummary
		return v, nil
	case "enter":
		text := v.chatInput.Value()
		if text == "" || v.thinking {
			return v, nil
		}
		v.chatInput.SetValue("")
		refs := v.contextRefs()
		v.thinking = true
		return v, tea.Batch(sendChat(v.ws, text, refs), v.spin.Tick)
	}

	var cmd tea.Cmd
	v.chatInput, cmd = v.chatInput.Update(msg)
	return v, cmd
}

func (v View) handlePatchKey(msg tea.KeyMsg) (View, tea.Cmd) {
	action := v.coord.PatchAction(highlight.SummaryBufferID)
	if action == nil {
		return v, nil
	}

	switch msg.String() {
	case "j", "down":
		if v.patchCursor < len(action.Patches)-1 {
			v.patchCursor++
		}
	case "k", "up":
		if v.patchCursor > 0 {
			v.patchCursor--
		}
	case "p":
		if p := v.selectedPatch(); p != nil {
			v.coord.PreviewPatch(highlight.SummaryBufferID, p.ID)
			v.refreshSummary()
		}
	case "enter":
		if p := v.selectedPatch(); p != nil {
			if req := v.coord.RequestHighlight(highlight.SummaryBufferID, p.Span(), true); req != nil {
				return v, resolveHighlight(req.Token)
			}
		}
	}
	return v, nil
}
