package tui

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/counselops/brief/internal/core/config"
	"github.com/counselops/brief/pkg/executil"
)

// ActionType identifies the kind of action a keybinding triggers.
type ActionType int

const (
	ActionTypeNone ActionType = iota
	ActionTypePromote
	ActionTypeRevert
	ActionTypeRevertAll
	ActionTypeDismiss
	ActionTypeShell
)

// Action represents a resolved keybinding action ready for execution.
type Action struct {
	Type       ActionType
	Key        string
	Help       string
	Confirm    string // Non-empty if confirmation required
	ShellCmd   string // For shell actions
	DocumentID string
}

// NeedsConfirm returns true if the action requires user confirmation.
func (a Action) NeedsConfirm() bool {
	return a.Confirm != ""
}

// KeybindingHandler resolves key presses to actions via the merged
// keybinding config.
type KeybindingHandler struct {
	keybindings map[string]config.Keybinding
	exec        executil.Executor
}

// NewKeybindingHandler creates a new handler with the given config.
func NewKeybindingHandler(keybindings map[string]config.Keybinding) *KeybindingHandler {
	return &KeybindingHandler{
		keybindings: keybindings,
		exec:        &executil.RealExecutor{},
	}
}

// Resolve attempts to resolve a key press to an action. documentID is the
// document the gesture targets, empty for the summary.
func (h *KeybindingHandler) Resolve(keyStr, documentID string) (Action, bool) {
	kb, exists := h.keybindings[keyStr]
	if !exists {
		return Action{}, false
	}

	action := Action{
		Key:        keyStr,
		Help:       kb.Help,
		Confirm:    kb.Confirm,
		DocumentID: documentID,
	}

	switch kb.Action {
	case config.ActionPromote:
		action.Type = ActionTypePromote
	case config.ActionRevert:
		action.Type = ActionTypeRevert
	case config.ActionRevertAll:
		action.Type = ActionTypeRevertAll
	case config.ActionDismiss:
		action.Type = ActionTypeDismiss
	default:
		if kb.Sh == "" {
			return Action{}, false
		}
		action.Type = ActionTypeShell
		action.ShellCmd = kb.Sh
	}

	if action.Help == "" && kb.Action != "" {
		action.Help = kb.Action
	}

	return action, true
}

// ExecuteShell runs a shell action command. The target document path is
// passed as the first positional argument.
func (h *KeybindingHandler) ExecuteShell(ctx context.Context, action Action, docPath string) error {
	out, err := h.exec.Run(ctx, "sh", "-c", action.ShellCmd, "sh", docPath)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("command failed: %s", msg)
		}
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

// HelpEntries returns all configured keybindings for display, sorted by key.
func (h *KeybindingHandler) HelpEntries() []string {
	keys := slices.Sorted(maps.Keys(h.keybindings))

	entries := make([]string, 0, len(keys))
	for _, k := range keys {
		kb := h.keybindings[k]
		help := kb.Help
		if help == "" {
			help = kb.Action
		}
		if help == "" {
			help = "shell command"
		}
		entries = append(entries, fmt.Sprintf("[%s] %s", k, help))
	}
	return entries
}

// HelpString returns a formatted help string for all keybindings.
func (h *KeybindingHandler) HelpString() string {
	return strings.Join(h.HelpEntries(), "  ")
}

// KeyBindings returns key.Binding objects for the bubbles help system.
func (h *KeybindingHandler) KeyBindings() []key.Binding {
	keys := slices.Sorted(maps.Keys(h.keybindings))
	bindings := make([]key.Binding, 0, len(keys))

	for _, k := range keys {
		kb := h.keybindings[k]
		help := kb.Help
		if help == "" {
			help = kb.Action
		}
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, help),
		))
	}
	return bindings
}
