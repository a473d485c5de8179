package eventbus_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/counselops/brief/internal/core/casefile"
	"github.com/counselops/brief/internal/core/eventbus"
	"github.com/counselops/brief/internal/core/eventbus/testbus"
)

func latestNotificationPayload(tb *testbus.Bus, t *testing.T) eventbus.NotificationPublishedPayload {
	t.Helper()
	tb.AssertPublished(t, eventbus.EventNotificationPublished)

	var payload eventbus.NotificationPublishedPayload
	for _, e := range tb.Events() {
		if e.Event != eventbus.EventNotificationPublished {
			continue
		}
		p, ok := e.Payload.(eventbus.NotificationPublishedPayload)
		require.True(t, ok)
		payload = p
	}

	return payload
}

func TestNotificationRouter_PatchApplied(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishPatchApplied(eventbus.PatchAppliedPayload{BufferID: "summary", ActionID: "a1", Count: 3})
	p := latestNotificationPayload(tb, t)

	assert.Equal(t, eventbus.LevelInfo, p.Level)
	assert.Contains(t, p.Message, "3 edit(s)")
}

func TestNotificationRouter_PatchStale(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishPatchStale(eventbus.PatchStalePayload{BufferID: "summary", ActionID: "a1"})
	p := latestNotificationPayload(tb, t)

	assert.Equal(t, eventbus.LevelWarning, p.Level)
	assert.Contains(t, p.Message, "outdated")
}

func TestNotificationRouter_ChecklistItemAdded(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishChecklistItemAdded(eventbus.ChecklistItemAddedPayload{
		CategoryID: "dates",
		Item:       casefile.Item{ID: "i1", Text: "Deed signed 12 March 2019"},
	})
	p := latestNotificationPayload(tb, t)

	assert.Equal(t, eventbus.LevelInfo, p.Level)
	assert.Contains(t, p.Message, "Deed signed")
}

func TestNotificationRouter_SummarySaved(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishSummarySaved(eventbus.SummarySavedPayload{Length: 120})
	p := latestNotificationPayload(tb, t)

	assert.Equal(t, eventbus.LevelInfo, p.Level)
	assert.Contains(t, p.Message, "summary saved")
}

func TestNotificationRouter_PatchReverted_doesNotPublish(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishPatchReverted(eventbus.PatchRevertedPayload{BufferID: "summary", PatchID: "p1"})
	tb.AssertNotPublished(t, eventbus.EventNotificationPublished, 100*time.Millisecond)
}

func TestNotificationRouter_DocumentOpened_doesNotPublish(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishDocumentOpened(eventbus.DocumentOpenedPayload{Document: casefile.Document{ID: "d1"}})
	tb.AssertNotPublished(t, eventbus.EventNotificationPublished, 100*time.Millisecond)
}
