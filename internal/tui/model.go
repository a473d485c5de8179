// Package tui is the terminal workspace for reviewing a case: the canvas
// view for the summary and chat, and the checklist view for documents and
// evidence.
package tui

import (
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/counselops/brief/internal/core/config"
	"github.com/counselops/brief/internal/core/eventbus"
	"github.com/counselops/brief/internal/core/styles"
	"github.com/counselops/brief/internal/engine/highlight"
	"github.com/counselops/brief/internal/tui/components"
	"github.com/counselops/brief/internal/tui/views/canvas"
	"github.com/counselops/brief/internal/tui/views/checklist"
)

// notificationMsg carries one bus notification onto the event loop.
type notificationMsg struct {
	payload eventbus.NotificationPublishedPayload
}

type shellDoneMsg struct {
	err error
}

// Model is the root Bubble Tea model.
type Model struct {
	cfg     *config.Config
	caseDir string
	coord   *highlight.Coordinator
	bus     *eventbus.EventBus
	handler *KeybindingHandler

	view      ViewType
	canvas    canvas.View
	checklist checklist.View

	confirm *components.ConfirmModal
	pending Action

	notifications chan eventbus.NotificationPublishedPayload
	lastNote      eventbus.NotificationPublishedPayload
	hasNote       bool

	showHelp bool
	width    int
	height   int
}

// New creates the root model and subscribes it to bus notifications.
func New(cfg *config.Config, caseDir string, ws Service, coord *highlight.Coordinator, bus *eventbus.EventBus) Model {
	m := Model{
		cfg:           cfg,
		caseDir:       caseDir,
		coord:         coord,
		bus:           bus,
		handler:       NewKeybindingHandler(cfg.Keybindings),
		canvas:        canvas.New(ws, coord, bus),
		checklist:     checklist.New(ws, coord, bus),
		notifications: make(chan eventbus.NotificationPublishedPayload, 16),
	}

	ch := m.notifications
	bus.SubscribeNotificationPublished(func(p eventbus.NotificationPublishedPayload) {
		select {
		case ch <- p:
		default:
		}
	})

	m.canvas.SetActive(true)
	coord.SetMode(highlight.ModeCanvas)
	return m
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	bus := m.bus
	return tea.Batch(
		m.canvas.Init(),
		m.checklist.Init(),
		m.waitForNotification(),
		func() tea.Msg {
			bus.PublishTuiStarted(eventbus.TUIStartedPayload{})
			return nil
		},
	)
}

func (m Model) waitForNotification() tea.Cmd {
	ch := m.notifications
	return func() tea.Msg {
		return notificationMsg{payload: <-ch}
	}
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.canvas.SetSize(msg.Width, msg.Height-2)
		m.checklist.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case notificationMsg:
		m.lastNote = msg.payload
		m.hasNote = true
		return m, m.waitForNotification()

	case shellDoneMsg:
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("shell keybinding failed")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Non-key messages fan out to both views; each ignores what is not
	// its own.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.canvas, cmd = m.canvas.Update(msg)
	cmds = append(cmds, cmd)
	m.checklist, cmd = m.checklist.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}

	if msg.String() == "ctrl+c" {
		m.bus.PublishTuiStopped(eventbus.TUIStoppedPayload{})
		return m, tea.Quit
	}

	editing := m.activeHasEditorFocus()

	if !editing {
		switch msg.String() {
		case "1":
			return m.switchView(ViewCanvas)
		case "2":
			return m.switchView(ViewChecklist)
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "q":
			if !m.activeSelecting() {
				m.bus.PublishTuiStopped(eventbus.TUIStoppedPayload{})
				return m, tea.Quit
			}
		}

		if action, ok := m.handler.Resolve(msg.String(), m.coord.ActiveDocument()); ok {
			if action.NeedsConfirm() {
				modal := components.NewConfirmModal(action.Confirm)
				m.confirm = &modal
				m.pending = action
				return m, nil
			}
			return m.dispatchAction(action)
		}
	}

	return m.routeKey(msg)
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	modal, cmd := m.confirm.Update(msg)
	m.confirm = &modal

	switch {
	case modal.Confirmed():
		action := m.pending
		m.confirm = nil
		m.pending = Action{}
		model, dispatchCmd := m.dispatchAction(action)
		return model, tea.Batch(cmd, dispatchCmd)
	case modal.Cancelled():
		m.confirm = nil
		m.pending = Action{}
	}
	return m, cmd
}

func (m Model) switchView(view ViewType) (tea.Model, tea.Cmd) {
	if m.view == view {
		return m, nil
	}
	m.view = view

	mode := highlight.ModeCanvas
	if view == ViewChecklist {
		mode = highlight.ModeChecklist
	}
	m.coord.SetMode(mode)
	m.bus.PublishModeChanged(eventbus.ModeChangedPayload{Mode: mode})

	m.canvas.SetActive(view == ViewCanvas)
	m.checklist.SetActive(view == ViewChecklist)
	return m, nil
}

func (m Model) dispatchAction(action Action) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch action.Type {
	case ActionTypePromote:
		// Promotion is mode-gated: only the surface matching the active
		// view may offer its selection.
		if !m.coord.CanPromote() {
			return m, nil
		}
		if m.view == ViewCanvas {
			m.canvas, cmd = m.canvas.Promote()
		} else {
			m.checklist, cmd = m.checklist.Promote()
		}
	case ActionTypeRevert:
		m.canvas, cmd = m.canvas.RevertSelected()
	case ActionTypeRevertAll:
		m.canvas, cmd = m.canvas.RevertAll()
	case ActionTypeDismiss:
		m.canvas, cmd = m.canvas.Dismiss()
	case ActionTypeShell:
		docPath := filepath.Join(m.caseDir, filepath.FromSlash(action.DocumentID))
		handler := m.handler
		cmd = func() tea.Msg {
			return shellDoneMsg{err: handler.ExecuteShell(context.Background(), action, docPath)}
		}
	}
	return m, cmd
}

func (m Model) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ViewCanvas:
		m.canvas, cmd = m.canvas.Update(msg)
	case ViewChecklist:
		m.checklist, cmd = m.checklist.Update(msg)
	}
	return m, cmd
}

func (m Model) activeHasEditorFocus() bool {
	switch m.view {
	case ViewCanvas:
		return m.canvas.HasEditorFocus()
	case ViewChecklist:
		return m.checklist.HasEditorFocus()
	}
	return false
}

func (m Model) activeSelecting() bool {
	switch m.view {
	case ViewCanvas:
		return m.canvas.Selecting()
	case ViewChecklist:
		return m.checklist.Selecting()
	}
	return false
}

// View renders the full screen.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	if m.confirm != nil {
		return m.confirm.View()
	}

	var body string
	switch m.view {
	case ViewCanvas:
		body = m.canvas.View()
	case ViewChecklist:
		body = m.checklist.View()
	}

	return body + "\n" + m.statusBar()
}

func (m Model) statusBar() string {
	mode := styles.StatusModeStyle.Render(" " + m.view.String() + " ")

	var note string
	if m.hasNote {
		switch m.lastNote.Level {
		case eventbus.LevelError:
			note = styles.PatchStaleStyle.Render(m.lastNote.Message)
		case eventbus.LevelWarning:
			note = styles.PatchStaleStyle.Render(m.lastNote.Message)
		default:
			note = styles.HelpStyle.Render(m.lastNote.Message)
		}
	}

	help := styles.HelpStyle.Render("[1] canvas  [2] checklist  [?] keys  [ctrl+c] quit")
	if m.showHelp {
		help = styles.HelpStyle.Render(m.handler.HelpString())
	}

	return styles.StatusBarStyle.Width(m.width).Render(mode + " " + note + " " + help)
}
