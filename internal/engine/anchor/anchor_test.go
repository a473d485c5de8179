package anchor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/counselops/brief/internal/engine/textdiff"
)

func TestAdjust(t *testing.T) {
	tests := []struct {
		name   string
		span   Span
		diff   textdiff.Result
		newLen int
		want   Span
	}{
		{
			name:   "edit entirely after span",
			span:   Span{Start: 2, End: 5},
			diff:   textdiff.Result{Start: 5, RemovedLen: 2, InsertedLen: 4},
			newLen: 22,
			want:   Span{Start: 2, End: 5},
		},
		{
			name:   "edit entirely before span shifts by delta",
			span:   Span{Start: 5, End: 10},
			diff:   textdiff.Result{Start: 0, RemovedLen: 2, InsertedLen: 8},
			newLen: 26,
			want:   Span{Start: 11, End: 16},
		},
		{
			name:   "deletion before span shifts left",
			span:   Span{Start: 10, End: 14},
			diff:   textdiff.Result{Start: 2, RemovedLen: 4, InsertedLen: 0},
			newLen: 16,
			want:   Span{Start: 6, End: 10},
		},
		{
			name:   "equal length replacement inside span keeps bounds",
			span:   Span{Start: 4, End: 7},
			diff:   textdiff.Result{Start: 4, RemovedLen: 3, InsertedLen: 3},
			newLen: 12,
			want:   Span{Start: 4, End: 7},
		},
		{
			name:   "overlap from before widens start to edit start",
			span:   Span{Start: 5, End: 10},
			diff:   textdiff.Result{Start: 3, RemovedLen: 4, InsertedLen: 1},
			newLen: 17,
			want:   Span{Start: 3, End: 7},
		},
		{
			name:   "edit inside span grows end",
			span:   Span{Start: 5, End: 10},
			diff:   textdiff.Result{Start: 6, RemovedLen: 1, InsertedLen: 5},
			newLen: 24,
			want:   Span{Start: 5, End: 14},
		},
		{
			// End shifts by -6 past Start and is clamped back up; the
			// resulting empty span is the collection's signal to drop it.
			name:   "overlap past end collapses to empty",
			span:   Span{Start: 5, End: 10},
			diff:   textdiff.Result{Start: 8, RemovedLen: 6, InsertedLen: 0},
			newLen: 14,
			want:   Span{Start: 5, End: 5},
		},
		{
			name:   "span swallowed by deletion collapses",
			span:   Span{Start: 5, End: 8},
			diff:   textdiff.Result{Start: 3, RemovedLen: 10, InsertedLen: 0},
			newLen: 10,
			want:   Span{Start: 3, End: 3},
		},
		{
			name:   "end clamped to new length",
			span:   Span{Start: 5, End: 10},
			diff:   textdiff.Result{Start: 7, RemovedLen: 3, InsertedLen: 0},
			newLen: 7,
			want:   Span{Start: 5, End: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Adjust(tt.span, tt.diff, tt.newLen)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdjust_LengthPreservedForPriorEdits(t *testing.T) {
	// For any edit entirely before the anchor, the adjusted anchor keeps its
	// length and shifts by the net delta.
	span := Span{Start: 20, End: 33}
	diffs := []textdiff.Result{
		{Start: 0, RemovedLen: 0, InsertedLen: 7},
		{Start: 5, RemovedLen: 7, InsertedLen: 0},
		{Start: 10, RemovedLen: 4, InsertedLen: 4},
		{Start: 2, RemovedLen: 3, InsertedLen: 9},
	}

	for _, d := range diffs {
		got := Adjust(span, d, 100)
		assert.Equal(t, span.Len(), got.Len(), "diff %+v", d)
		assert.Equal(t, span.Start+d.Delta(), got.Start, "diff %+v", d)
	}
}

func TestAdjustAll(t *testing.T) {
	anchors := []Anchor{
		{ID: "a", BufferID: "doc-1", Span: Span{Start: 0, End: 3}, Kind: KindChatContext},
		{ID: "b", BufferID: "doc-1", Span: Span{Start: 10, End: 14}, Kind: KindChatContext},
		{ID: "c", BufferID: "doc-2", Span: Span{Start: 4, End: 8}, Kind: KindChatContext},
	}

	// Delete [0,5) in doc-1: anchor "a" collapses and is dropped, "b" shifts
	// left, "c" is on another buffer and passes through.
	d := textdiff.Result{Start: 0, RemovedLen: 5, InsertedLen: 0}
	got := AdjustAll(anchors, "doc-1", d, 15)

	assert.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, Span{Start: 5, End: 9}, got[0].Span)
	assert.Equal(t, "c", got[1].ID)
	assert.Equal(t, Span{Start: 4, End: 8}, got[1].Span)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "pending-selection", KindPendingSelection.String())
	assert.Equal(t, "chat-context", KindChatContext.String())
	assert.Equal(t, "checklist-evidence", KindChecklistEvidence.String())
	assert.Equal(t, "suggestion", KindSuggestion.String())
}
