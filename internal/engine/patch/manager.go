package patch

import (
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/counselops/brief/internal/engine/anchor"
	"github.com/counselops/brief/internal/engine/textbuf"
	"github.com/counselops/brief/internal/engine/textdiff"
)

// Manager tracks the active patch action per buffer, the previewed patch,
// and staleness. Invalid operations (stale action, wrong status, unknown
// ids) are silent no-ops: the UI disables their affordances, and the engine
// must never fail the session over them.
type Manager struct {
	actions map[string]*Action // buffer id -> active action
	preview string             // previewed patch id, "" when none
	log     zerolog.Logger
}

// NewManager creates an empty patch manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		actions: make(map[string]*Action),
		log:     log,
	}
}

// Begin applies a fresh action built from edits to the buffer and makes it
// the active action for that buffer, replacing any previous one. The
// onApply callback is invoked per patch with its exact diff.
func (m *Manager) Begin(buf *textbuf.Buffer, edits []Edit, onApply func(textdiff.Result)) (*Action, error) {
	action, err := NewAction(buf, edits, onApply)
	if err != nil {
		return nil, err
	}

	m.actions[buf.ID()] = action
	m.preview = ""
	m.log.Debug().
		Str("buffer", buf.ID()).
		Int("patches", len(action.Patches)).
		Msg("patch action started")
	return action, nil
}

// Action returns the active action for a buffer, or nil.
func (m *Manager) Action(bufferID string) *Action {
	return m.actions[bufferID]
}

// MarkStale flags the buffer's active action as stale. Called by the
// coordinator whenever the buffer mutates outside this manager's own revert
// operations. Preview and revert are permanently disabled afterwards.
func (m *Manager) MarkStale(bufferID string) {
	action := m.actions[bufferID]
	if action == nil || action.Stale {
		return
	}
	action.Stale = true
	if p, ok := m.Previewed(); ok && action.Patch(p) != nil {
		m.preview = ""
	}
	m.log.Debug().Str("buffer", bufferID).Msg("patch action went stale")
}

// TogglePreview marks the patch's current span as the active highlight
// target, or clears the preview when the same id is toggled again. Returns
// the span and true when a preview is now active. No-op on stale actions
// and non-applied patches.
func (m *Manager) TogglePreview(bufferID, patchID string) (anchor.Span, bool) {
	if m.preview == patchID {
		m.preview = ""
		return anchor.Span{}, false
	}

	action := m.actions[bufferID]
	if action == nil || action.Stale {
		return anchor.Span{}, false
	}
	p := action.Patch(patchID)
	if p == nil || p.Status != StatusApplied {
		return anchor.Span{}, false
	}

	m.preview = patchID
	return p.Span(), true
}

// Previewed returns the id of the currently previewed patch, if any.
func (m *Manager) Previewed() (string, bool) {
	return m.preview, m.preview != ""
}

// ClearPreview drops any active preview.
func (m *Manager) ClearPreview() {
	m.preview = ""
}

// Revert undoes exactly one applied patch: the inserted text at its current
// span is replaced by the deleted text, every other applied patch in the
// action is shifted with the same adjustment rule as any other anchor, and
// the patch is marked reverted. The returned diff lets the coordinator
// adjust its anchors; ok is false when the operation was a no-op.
func (m *Manager) Revert(buf *textbuf.Buffer, patchID string) (textdiff.Result, bool) {
	action := m.actions[buf.ID()]
	if action == nil || action.Stale {
		return textdiff.Result{}, false
	}
	p := action.Patch(patchID)
	if p == nil || p.Status != StatusApplied {
		return textdiff.Result{}, false
	}

	insertLen := utf8.RuneCountInString(p.InsertText)
	deletedLen := utf8.RuneCountInString(p.DeletedText)

	d := textdiff.Result{
		Start:       p.CurrentStart,
		RemovedLen:  insertLen,
		InsertedLen: deletedLen,
	}
	buf.Replace(p.CurrentStart, p.CurrentStart+insertLen, p.DeletedText)

	p.Status = StatusReverted
	p.CurrentEnd = p.CurrentStart + deletedLen

	for _, other := range action.Patches {
		if other == p || other.Status != StatusApplied {
			continue
		}
		span := anchor.Adjust(other.Span(), d, buf.Len())
		other.CurrentStart = span.Start
		other.CurrentEnd = span.End
	}

	if m.preview == patchID {
		m.preview = ""
	}

	m.log.Debug().
		Str("buffer", buf.ID()).
		Str("patch", patchID).
		Msg("patch reverted")
	return d, true
}

// RevertAll reverts every applied patch in the buffer's action, most recent
// first, and returns the individual diffs in the order they were applied to
// the buffer.
func (m *Manager) RevertAll(buf *textbuf.Buffer) []textdiff.Result {
	action := m.actions[buf.ID()]
	if action == nil || action.Stale {
		return nil
	}

	var diffs []textdiff.Result
	for i := len(action.Patches) - 1; i >= 0; i-- {
		p := action.Patches[i]
		if p.Status != StatusApplied {
			continue
		}
		if d, ok := m.Revert(buf, p.ID); ok {
			diffs = append(diffs, d)
		}
	}
	return diffs
}

// Dismiss removes the buffer's action from tracking without touching the
// buffer. Its patches can no longer be previewed or reverted.
func (m *Manager) Dismiss(bufferID string) {
	action := m.actions[bufferID]
	if action == nil {
		return
	}
	if p, ok := m.Previewed(); ok && action.Patch(p) != nil {
		m.preview = ""
	}
	delete(m.actions, bufferID)
}
