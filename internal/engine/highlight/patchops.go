package highlight

import (
	"fmt"

	"github.com/counselops/brief/internal/engine/patch"
	"github.com/counselops/brief/internal/engine/textdiff"
)

// ApplyEdits turns an assistant reply's edit instructions into a fresh
// patch action on the buffer, applying each patch and adjusting anchors
// with that patch's exact diff. The new action replaces any previous one
// for the buffer.
func (c *Coordinator) ApplyEdits(bufferID string, edits []patch.Edit) (*patch.Action, error) {
	buf := c.buffers[bufferID]
	if buf == nil {
		return nil, fmt.Errorf("unknown buffer %q", bufferID)
	}

	return c.patches.Begin(buf, edits, func(d textdiff.Result) {
		c.applyDiff(bufferID, d, buf.Len())
	})
}

// PatchAction returns the active patch action for a buffer, or nil.
func (c *Coordinator) PatchAction(bufferID string) *patch.Action {
	return c.patches.Action(bufferID)
}

// PreviewPatch toggles the patch preview and points the active highlight at
// the patch's span. No-op on stale actions or non-applied patches.
func (c *Coordinator) PreviewPatch(bufferID, patchID string) bool {
	span, ok := c.patches.TogglePreview(bufferID, patchID)
	if !ok {
		if c.latest != nil && c.latest.BufferID == bufferID {
			c.latest = nil
		}
		return false
	}
	c.RequestHighlight(bufferID, span, true)
	return true
}

// PreviewedPatch returns the id of the patch under preview, if any.
func (c *Coordinator) PreviewedPatch() (string, bool) {
	return c.patches.Previewed()
}

// RevertPatch undoes one applied patch and propagates the revert's diff to
// every anchor on the buffer. False when the operation was a no-op.
func (c *Coordinator) RevertPatch(bufferID, patchID string) bool {
	buf := c.buffers[bufferID]
	if buf == nil {
		return false
	}

	d, ok := c.patches.Revert(buf, patchID)
	if !ok {
		return false
	}
	c.applyDiff(bufferID, d, buf.Len())
	return true
}

// RevertAllPatches undoes every applied patch in the buffer's action, most
// recent first.
func (c *Coordinator) RevertAllPatches(bufferID string) {
	buf := c.buffers[bufferID]
	if buf == nil {
		return
	}

	for _, p := range appliedReversed(c.patches.Action(bufferID)) {
		if d, ok := c.patches.Revert(buf, p); ok {
			c.applyDiff(bufferID, d, buf.Len())
		}
	}
}

// DismissPatchAction clears the action from tracking without altering the
// buffer.
func (c *Coordinator) DismissPatchAction(bufferID string) {
	c.patches.Dismiss(bufferID)
}

// appliedReversed returns the ids of applied patches most recent first.
func appliedReversed(a *patch.Action) []string {
	if a == nil {
		return nil
	}
	var ids []string
	for i := len(a.Patches) - 1; i >= 0; i-- {
		if a.Patches[i].Status == patch.StatusApplied {
			ids = append(ids, a.Patches[i].ID)
		}
	}
	return ids
}
