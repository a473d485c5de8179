package stores

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/counselops/brief/internal/core/casefile"
	"github.com/counselops/brief/internal/data/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *CaseStore {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "brief.db"), db.DefaultOpenOptions())
	require.NoError(t, err, "Open")
	t.Cleanup(func() { _ = database.Close() })
	return NewCaseStore(database)
}

func TestCaseStore_Categories(t *testing.T) {
	ctx := context.Background()

	t.Run("empty database", func(t *testing.T) {
		store := openStore(t)

		categories, err := store.Categories(ctx)
		require.NoError(t, err)
		assert.Empty(t, categories)
	})

	t.Run("add and list with items", func(t *testing.T) {
		store := openStore(t)

		require.NoError(t, store.AddCategory(ctx, casefile.Category{
			ID: "cat-timeline", Label: "Timeline", Color: "#7aa2f7",
		}))
		require.NoError(t, store.AddCategory(ctx, casefile.Category{
			ID: "cat-evidence", Label: "Evidence", Color: "#9ece6a",
		}))

		created := time.Now()
		require.NoError(t, store.AddItem(ctx, "cat-timeline", casefile.Item{
			ID:          "item-1",
			Text:        "lease signed March 3",
			DocumentID:  "doc-lease",
			StartOffset: 10,
			EndOffset:   32,
			CreatedAt:   created,
		}))
		require.NoError(t, store.AddItem(ctx, "cat-timeline", casefile.Item{
			ID:   "item-2",
			Text: "notice served",
			Done: true,
		}))

		categories, err := store.Categories(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 2)

		// Insertion order is preserved via position.
		assert.Equal(t, "Timeline", categories[0].Label)
		assert.Equal(t, "Evidence", categories[1].Label)
		assert.Empty(t, categories[1].Values)

		require.Len(t, categories[0].Values, 2)
		first := categories[0].Values[0]
		assert.Equal(t, "lease signed March 3", first.Text)
		assert.Equal(t, "doc-lease", first.DocumentID)
		assert.Equal(t, 10, first.StartOffset)
		assert.Equal(t, 32, first.EndOffset)
		assert.True(t, first.HasEvidence())
		assert.WithinDuration(t, created, first.CreatedAt, time.Millisecond)

		second := categories[0].Values[1]
		assert.True(t, second.Done)
		assert.False(t, second.HasEvidence())
	})
}

func TestCaseStore_ItemLifecycle(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	require.NoError(t, store.AddCategory(ctx, casefile.Category{
		ID: "cat-1", Label: "Facts", Color: "#e0af68",
	}))
	require.NoError(t, store.AddItem(ctx, "cat-1", casefile.Item{ID: "item-1", Text: "a fact"}))

	require.NoError(t, store.SetItemDone(ctx, "item-1", true))

	categories, err := store.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories[0].Values, 1)
	assert.True(t, categories[0].Values[0].Done)

	require.NoError(t, store.DeleteItem(ctx, "item-1"))

	categories, err = store.Categories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories[0].Values)

	assert.ErrorIs(t, store.SetItemDone(ctx, "item-1", false), casefile.ErrNotFound)
	assert.ErrorIs(t, store.DeleteItem(ctx, "item-1"), casefile.ErrNotFound)
}

func TestCaseStore_Messages(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	messages, err := store.Messages(ctx)
	require.NoError(t, err)
	assert.Empty(t, messages)

	refs := []casefile.ContextRef{{
		Type:       casefile.RefDocument,
		DocumentID: "doc-lease",
		Text:       "the premises at 14 Rue Cler",
		Start:      40,
		End:        67,
	}}

	require.NoError(t, store.AppendMessage(ctx, casefile.Message{
		ID:        "msg-1",
		Role:      casefile.RoleUser,
		Content:   "what does this clause mean?",
		Context:   refs,
		CreatedAt: time.Now(),
	}))
	require.NoError(t, store.AppendMessage(ctx, casefile.Message{
		ID:        "msg-2",
		Role:      casefile.RoleAssistant,
		Content:   "it fixes the rental address",
		CreatedAt: time.Now().Add(time.Millisecond),
	}))

	messages, err = store.Messages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, casefile.RoleUser, messages[0].Role)
	require.Len(t, messages[0].Context, 1)
	assert.Equal(t, refs[0], messages[0].Context[0])

	assert.Equal(t, casefile.RoleAssistant, messages[1].Role)
	assert.Empty(t, messages[1].Context)
}

func TestCaseStore_Summary(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	text, err := store.Summary(ctx)
	require.NoError(t, err)
	assert.Empty(t, text, "fresh database has no summary")

	require.NoError(t, store.SaveSummary(ctx, "# Case Summary\n\nFirst draft."))
	require.NoError(t, store.SaveSummary(ctx, "# Case Summary\n\nSecond draft."))

	text, err = store.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "# Case Summary\n\nSecond draft.", text)
}
