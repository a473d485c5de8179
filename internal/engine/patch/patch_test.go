package patch

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/counselops/brief/internal/engine/textbuf"
	"github.com/counselops/brief/internal/engine/textdiff"
)

func newManager() *Manager {
	return NewManager(zerolog.Nop())
}

func TestNewAction_AppliesInOrder(t *testing.T) {
	buf := textbuf.New("summary", "The cat sat on the mat.")

	var diffs []textdiff.Result
	action, err := NewAction(buf, []Edit{
		{Start: 4, DeleteLength: 3, InsertText: "dog"},
		{Start: 19, DeleteLength: 3, InsertText: "rug"},
	}, func(d textdiff.Result) { diffs = append(diffs, d) })
	require.NoError(t, err)

	assert.Equal(t, "The dog sat on the rug.", buf.Text())
	require.Len(t, action.Patches, 2)

	p1, p2 := action.Patches[0], action.Patches[1]
	assert.Equal(t, "cat", p1.DeletedText)
	assert.Equal(t, 4, p1.CurrentStart)
	assert.Equal(t, 7, p1.CurrentEnd)
	assert.Equal(t, "mat", p2.DeletedText)
	assert.Equal(t, 19, p2.CurrentStart)
	assert.Equal(t, 22, p2.CurrentEnd)
	assert.Equal(t, StatusApplied, p1.Status)

	// One precise diff per patch, not one collapsed region.
	assert.Equal(t, []textdiff.Result{
		{Start: 4, RemovedLen: 3, InsertedLen: 3},
		{Start: 19, RemovedLen: 3, InsertedLen: 3},
	}, diffs)
}

func TestNewAction_RunningDelta(t *testing.T) {
	buf := textbuf.New("summary", "aaa bbb ccc")

	action, err := NewAction(buf, []Edit{
		{Start: 0, DeleteLength: 3, InsertText: "aaaaaa"}, // +3
		{Start: 8, DeleteLength: 3, InsertText: "c"},      // positioned pre-action
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "aaaaaa bbb c", buf.Text())
	p2 := action.Patches[1]
	assert.Equal(t, 8, p2.OriginalStart)
	assert.Equal(t, 11, p2.CurrentStart)
	assert.Equal(t, "ccc", p2.DeletedText)
}

func TestNewAction_Validation(t *testing.T) {
	buf := textbuf.New("summary", "short")

	_, err := NewAction(buf, nil, nil)
	assert.Error(t, err)

	_, err = NewAction(buf, []Edit{{Start: 3, DeleteLength: 10}}, nil)
	assert.Error(t, err)

	_, err = NewAction(buf, []Edit{
		{Start: 0, DeleteLength: 4, InsertText: "x"},
		{Start: 2, DeleteLength: 2, InsertText: "y"},
	}, nil)
	assert.Error(t, err, "overlapping edits must be rejected")

	assert.Equal(t, "short", buf.Text(), "failed actions must not touch the buffer")
}

// Revert is the exact inverse of apply, byte for byte, and re-deriving the
// diff across the revert yields the inverse of the original apply diff.
func TestRevert_IsInverse(t *testing.T) {
	const original = "prefix foo suffix"
	buf := textbuf.New("summary", original)
	m := newManager()

	action, err := m.Begin(buf, []Edit{{Start: 7, DeleteLength: 3, InsertText: "bar"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "prefix bar suffix", buf.Text())

	before := buf.Text()
	d, ok := m.Revert(buf, action.Patches[0].ID)
	require.True(t, ok)

	assert.Equal(t, original, buf.Text())
	assert.Equal(t, StatusReverted, action.Patches[0].Status)

	rederived := textdiff.Diff(before, buf.Text())
	require.NotNil(t, rederived)
	assert.Equal(t, d, *rederived)
	assert.Equal(t, textdiff.Result{Start: 7, RemovedLen: 3, InsertedLen: 3}, *rederived)
}

func TestRevert_ShiftsLaterPatches(t *testing.T) {
	// P1 inserts 5 characters at offset 10; P2 edits at offset 30. After
	// reverting P1, P2's current span must shift left by exactly 5.
	text := "0123456789" + "0123456789" + "0123456789" + "0123456789"
	buf := textbuf.New("summary", text)
	m := newManager()

	action, err := m.Begin(buf, []Edit{
		{Start: 10, DeleteLength: 0, InsertText: "AAAAA"},
		{Start: 30, DeleteLength: 2, InsertText: "BB"},
	}, nil)
	require.NoError(t, err)

	p1, p2 := action.Patches[0], action.Patches[1]
	assert.Equal(t, 35, p2.CurrentStart)
	assert.Equal(t, 37, p2.CurrentEnd)

	_, ok := m.Revert(buf, p1.ID)
	require.True(t, ok)

	assert.Equal(t, 30, p2.CurrentStart)
	assert.Equal(t, 32, p2.CurrentEnd)
	assert.Equal(t, "BB", buf.Slice(p2.CurrentStart, p2.CurrentEnd))
}

func TestRevertAll_MostRecentFirst(t *testing.T) {
	buf := textbuf.New("summary", "one two three")
	m := newManager()

	_, err := m.Begin(buf, []Edit{
		{Start: 0, DeleteLength: 3, InsertText: "ONE"},
		{Start: 4, DeleteLength: 3, InsertText: "2"},
		{Start: 8, DeleteLength: 5, InsertText: "THREE"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ONE 2 THREE", buf.Text())

	diffs := m.RevertAll(buf)
	assert.Len(t, diffs, 3)
	assert.Equal(t, "one two three", buf.Text())
	assert.Equal(t, 0, m.Action("summary").AppliedCount())
}

func TestRevert_AlreadyReverted(t *testing.T) {
	buf := textbuf.New("summary", "hello world")
	m := newManager()

	action, err := m.Begin(buf, []Edit{{Start: 0, DeleteLength: 5, InsertText: "goodbye"}}, nil)
	require.NoError(t, err)

	_, ok := m.Revert(buf, action.Patches[0].ID)
	require.True(t, ok)

	_, ok = m.Revert(buf, action.Patches[0].ID)
	assert.False(t, ok, "second revert must be a no-op")
	assert.Equal(t, "hello world", buf.Text())
}

func TestStaleAction_RejectsOperationsKeepsAudit(t *testing.T) {
	buf := textbuf.New("summary", "draft text here")
	m := newManager()

	action, err := m.Begin(buf, []Edit{
		{Start: 0, DeleteLength: 5, InsertText: "final"},
		{Start: 11, DeleteLength: 4, InsertText: "now"},
	}, nil)
	require.NoError(t, err)

	// The user types directly into the buffer.
	buf.Replace(0, 0, "!! ")
	m.MarkStale("summary")
	require.True(t, action.Stale)

	_, ok := m.TogglePreview("summary", action.Patches[0].ID)
	assert.False(t, ok)
	_, ok = m.Revert(buf, action.Patches[0].ID)
	assert.False(t, ok)
	assert.Nil(t, m.RevertAll(buf))

	// The human-readable audit list is still served.
	assert.Equal(t, []string{
		"Replaced 'draft' with 'final'",
		"Replaced 'here' with 'now'",
	}, action.Descriptions())
}

func TestTogglePreview(t *testing.T) {
	buf := textbuf.New("summary", "alpha beta")
	m := newManager()

	action, err := m.Begin(buf, []Edit{{Start: 0, DeleteLength: 5, InsertText: "gamma"}}, nil)
	require.NoError(t, err)
	id := action.Patches[0].ID

	span, ok := m.TogglePreview("summary", id)
	require.True(t, ok)
	assert.Equal(t, 0, span.Start)
	assert.Equal(t, 5, span.End)

	previewed, ok := m.Previewed()
	require.True(t, ok)
	assert.Equal(t, id, previewed)

	// Toggling the same id again clears the preview.
	_, ok = m.TogglePreview("summary", id)
	assert.False(t, ok)
	_, ok = m.Previewed()
	assert.False(t, ok)
}

func TestDismiss(t *testing.T) {
	buf := textbuf.New("summary", "alpha beta")
	m := newManager()

	action, err := m.Begin(buf, []Edit{{Start: 0, DeleteLength: 5, InsertText: "gamma"}}, nil)
	require.NoError(t, err)

	m.Dismiss("summary")
	assert.Nil(t, m.Action("summary"))

	// The buffer is untouched and further operations are no-ops.
	assert.Equal(t, "gamma beta", buf.Text())
	_, ok := m.Revert(buf, action.Patches[0].ID)
	assert.False(t, ok)
}

func TestDescriptions(t *testing.T) {
	tests := []struct {
		name    string
		deleted string
		insert  string
		want    string
	}{
		{"replacement", "cat", "dog", "Replaced 'cat' with 'dog'"},
		{"removal", "obsolete clause", "", "Removed 'obsolete clause'"},
		{"insertion", "", "new clause", "Inserted 'new clause'"},
		{"whitespace only", "  ", "\n", "Minor whitespace adjustment"},
		{"both empty", "", "", "Minor whitespace adjustment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Patch{DeletedText: tt.deleted, InsertText: tt.insert}
			assert.Equal(t, tt.want, p.Description())
		})
	}
}
