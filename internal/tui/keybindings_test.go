package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/counselops/brief/internal/core/config"
	"github.com/counselops/brief/pkg/executil"
)

func TestKeybindingHandler_Resolve(t *testing.T) {
	handler := NewKeybindingHandler(map[string]config.Keybinding{
		"a": {Action: config.ActionPromote, Help: "add selection to chat"},
		"u": {Action: config.ActionRevert},
		"U": {Action: config.ActionRevertAll, Confirm: "Revert every applied patch?"},
		"o": {Sh: `open "$1"`, Help: "open in pager"},
	})

	t.Run("builtin action", func(t *testing.T) {
		action, ok := handler.Resolve("a", "doc-1")
		require.True(t, ok)
		assert.Equal(t, ActionTypePromote, action.Type)
		assert.Equal(t, "add selection to chat", action.Help)
		assert.Equal(t, "doc-1", action.DocumentID)
		assert.False(t, action.NeedsConfirm())
	})

	t.Run("help falls back to action name", func(t *testing.T) {
		action, ok := handler.Resolve("u", "")
		require.True(t, ok)
		assert.Equal(t, ActionTypeRevert, action.Type)
		assert.Equal(t, "revert", action.Help)
	})

	t.Run("confirm carried through", func(t *testing.T) {
		action, ok := handler.Resolve("U", "")
		require.True(t, ok)
		assert.Equal(t, ActionTypeRevertAll, action.Type)
		assert.True(t, action.NeedsConfirm())
	})

	t.Run("shell command", func(t *testing.T) {
		action, ok := handler.Resolve("o", "doc-1")
		require.True(t, ok)
		assert.Equal(t, ActionTypeShell, action.Type)
		assert.Equal(t, `open "$1"`, action.ShellCmd)
	})

	t.Run("unbound key", func(t *testing.T) {
		_, ok := handler.Resolve("z", "")
		assert.False(t, ok)
	})
}

func TestKeybindingHandler_Help(t *testing.T) {
	handler := NewKeybindingHandler(map[string]config.Keybinding{
		"a": {Action: config.ActionPromote, Help: "promote"},
		"x": {Action: config.ActionDismiss, Help: "dismiss patch set"},
	})

	entries := handler.HelpEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "[a] promote", entries[0])
	assert.Equal(t, "[x] dismiss patch set", entries[1])

	assert.Equal(t, "[a] promote  [x] dismiss patch set", handler.HelpString())

	bindings := handler.KeyBindings()
	require.Len(t, bindings, 2)
	assert.Equal(t, "promote", bindings[0].Help().Desc)
}

func TestKeybindingHandler_ExecuteShell(t *testing.T) {
	handler := NewKeybindingHandler(map[string]config.Keybinding{
		"o": {Sh: `open "$1"`},
	})
	rec := &executil.RecordingExecutor{}
	handler.exec = rec

	action, ok := handler.Resolve("o", "doc-1")
	require.True(t, ok)

	err := handler.ExecuteShell(context.Background(), action, "/case/lease.md")
	require.NoError(t, err)
	require.Len(t, rec.Commands, 1)
	assert.Equal(t, "sh", rec.Commands[0].Cmd)
	assert.Equal(t, []string{"-c", `open "$1"`, "sh", "/case/lease.md"}, rec.Commands[0].Args)
}

func TestKeybindingHandler_ExecuteShellError(t *testing.T) {
	handler := NewKeybindingHandler(map[string]config.Keybinding{
		"o": {Sh: "false"},
	})
	handler.exec = &executil.RecordingExecutor{
		Outputs: map[string][]byte{"sh": []byte("no such file\n")},
		Errors:  map[string]error{"sh": errors.New("exit status 1")},
	}

	action, _ := handler.Resolve("o", "")
	err := handler.ExecuteShell(context.Background(), action, "/case/lease.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such file")
}
