// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within brief.
package eventbus

import (
	"github.com/counselops/brief/internal/core/casefile"
	"github.com/counselops/brief/internal/core/config"
	"github.com/counselops/brief/internal/engine/highlight"
)

// Event names, kept sorted A-Z.
const (
	EventAssistantReplyReceived Event = "assistant.reply-received"
	EventChecklistItemAdded     Event = "checklist.item-added"
	EventChecklistItemToggled   Event = "checklist.item-toggled"
	EventConfigReloaded         Event = "config.reloaded"
	EventDocumentOpened         Event = "document.opened"
	EventModeChanged            Event = "mode.changed"
	EventNotificationPublished  Event = "notification.published"
	EventPatchApplied           Event = "patch.applied"
	EventPatchDismissed         Event = "patch.dismissed"
	EventPatchReverted          Event = "patch.reverted"
	EventPatchStale             Event = "patch.stale"
	EventSummarySaved           Event = "summary.saved"
	EventTuiStarted             Event = "tui.started"
	EventTuiStopped             Event = "tui.stopped"
)

// AssistantReplyReceivedPayload is emitted when a chat turn completes.
type AssistantReplyReceivedPayload struct {
	Reply casefile.ChatReply
}

// ChecklistItemAddedPayload is emitted when evidence is added to a category.
type ChecklistItemAddedPayload struct {
	CategoryID string
	Item       casefile.Item
}

// ChecklistItemToggledPayload is emitted when an item's done state flips.
type ChecklistItemToggledPayload struct {
	ItemID string
	Done   bool
}

// ConfigReloadedPayload is emitted when configuration is reloaded.
type ConfigReloadedPayload struct {
	Config *config.Config
}

// DocumentOpenedPayload is emitted when a document becomes the active one.
type DocumentOpenedPayload struct {
	Document casefile.Document
}

// ModeChangedPayload is emitted when the interaction mode switches.
type ModeChangedPayload struct {
	Mode highlight.Mode
}

// PatchAppliedPayload is emitted when an assistant patch action lands.
type PatchAppliedPayload struct {
	BufferID string
	ActionID string
	Count    int
}

// PatchDismissedPayload is emitted when a patch action is dismissed.
type PatchDismissedPayload struct {
	BufferID string
	ActionID string
}

// PatchRevertedPayload is emitted when a single patch is reverted.
type PatchRevertedPayload struct {
	BufferID string
	PatchID  string
}

// PatchStalePayload is emitted when a manual edit outdates a patch action.
type PatchStalePayload struct {
	BufferID string
	ActionID string
}

// SummarySavedPayload is emitted when the summary is persisted.
type SummarySavedPayload struct {
	Length int
}

// TUIStartedPayload is emitted when the TUI starts.
type TUIStartedPayload struct{}

// TUIStoppedPayload is emitted when the TUI stops.
type TUIStoppedPayload struct{}

// PublishAssistantReplyReceived publishes an assistant.reply-received event.
func (bus *EventBus) PublishAssistantReplyReceived(p AssistantReplyReceivedPayload) {
	bus.send(EventAssistantReplyReceived, p)
}

// SubscribeAssistantReplyReceived registers a handler for assistant.reply-received.
func (bus *EventBus) SubscribeAssistantReplyReceived(fn func(AssistantReplyReceivedPayload)) {
	bus.subscribe(EventAssistantReplyReceived, func(v any) { fn(v.(AssistantReplyReceivedPayload)) })
}

// PublishChecklistItemAdded publishes a checklist.item-added event.
func (bus *EventBus) PublishChecklistItemAdded(p ChecklistItemAddedPayload) {
	bus.send(EventChecklistItemAdded, p)
}

// SubscribeChecklistItemAdded registers a handler for checklist.item-added.
func (bus *EventBus) SubscribeChecklistItemAdded(fn func(ChecklistItemAddedPayload)) {
	bus.subscribe(EventChecklistItemAdded, func(v any) { fn(v.(ChecklistItemAddedPayload)) })
}

// PublishChecklistItemToggled publishes a checklist.item-toggled event.
func (bus *EventBus) PublishChecklistItemToggled(p ChecklistItemToggledPayload) {
	bus.send(EventChecklistItemToggled, p)
}

// SubscribeChecklistItemToggled registers a handler for checklist.item-toggled.
func (bus *EventBus) SubscribeChecklistItemToggled(fn func(ChecklistItemToggledPayload)) {
	bus.subscribe(EventChecklistItemToggled, func(v any) { fn(v.(ChecklistItemToggledPayload)) })
}

// PublishConfigReloaded publishes a config.reloaded event.
func (bus *EventBus) PublishConfigReloaded(p ConfigReloadedPayload) {
	bus.send(EventConfigReloaded, p)
}

// SubscribeConfigReloaded registers a handler for config.reloaded.
func (bus *EventBus) SubscribeConfigReloaded(fn func(ConfigReloadedPayload)) {
	bus.subscribe(EventConfigReloaded, func(v any) { fn(v.(ConfigReloadedPayload)) })
}

// PublishDocumentOpened publishes a document.opened event.
func (bus *EventBus) PublishDocumentOpened(p DocumentOpenedPayload) {
	bus.send(EventDocumentOpened, p)
}

// SubscribeDocumentOpened registers a handler for document.opened.
func (bus *EventBus) SubscribeDocumentOpened(fn func(DocumentOpenedPayload)) {
	bus.subscribe(EventDocumentOpened, func(v any) { fn(v.(DocumentOpenedPayload)) })
}

// PublishModeChanged publishes a mode.changed event.
func (bus *EventBus) PublishModeChanged(p ModeChangedPayload) {
	bus.send(EventModeChanged, p)
}

// SubscribeModeChanged registers a handler for mode.changed.
func (bus *EventBus) SubscribeModeChanged(fn func(ModeChangedPayload)) {
	bus.subscribe(EventModeChanged, func(v any) { fn(v.(ModeChangedPayload)) })
}

// PublishNotificationPublished publishes a notification.published event.
func (bus *EventBus) PublishNotificationPublished(p NotificationPublishedPayload) {
	bus.send(EventNotificationPublished, p)
}

// SubscribeNotificationPublished registers a handler for notification.published.
func (bus *EventBus) SubscribeNotificationPublished(fn func(NotificationPublishedPayload)) {
	bus.subscribe(EventNotificationPublished, func(v any) { fn(v.(NotificationPublishedPayload)) })
}

// PublishPatchApplied publishes a patch.applied event.
func (bus *EventBus) PublishPatchApplied(p PatchAppliedPayload) {
	bus.send(EventPatchApplied, p)
}

// SubscribePatchApplied registers a handler for patch.applied.
func (bus *EventBus) SubscribePatchApplied(fn func(PatchAppliedPayload)) {
	bus.subscribe(EventPatchApplied, func(v any) { fn(v.(PatchAppliedPayload)) })
}

// PublishPatchDismissed publishes a patch.dismissed event.
func (bus *EventBus) PublishPatchDismissed(p PatchDismissedPayload) {
	bus.send(EventPatchDismissed, p)
}

// SubscribePatchDismissed registers a handler for patch.dismissed.
func (bus *EventBus) SubscribePatchDismissed(fn func(PatchDismissedPayload)) {
	bus.subscribe(EventPatchDismissed, func(v any) { fn(v.(PatchDismissedPayload)) })
}

// PublishPatchReverted publishes a patch.reverted event.
func (bus *EventBus) PublishPatchReverted(p PatchRevertedPayload) {
	bus.send(EventPatchReverted, p)
}

// SubscribePatchReverted registers a handler for patch.reverted.
func (bus *EventBus) SubscribePatchReverted(fn func(PatchRevertedPayload)) {
	bus.subscribe(EventPatchReverted, func(v any) { fn(v.(PatchRevertedPayload)) })
}

// PublishPatchStale publishes a patch.stale event.
func (bus *EventBus) PublishPatchStale(p PatchStalePayload) {
	bus.send(EventPatchStale, p)
}

// SubscribePatchStale registers a handler for patch.stale.
func (bus *EventBus) SubscribePatchStale(fn func(PatchStalePayload)) {
	bus.subscribe(EventPatchStale, func(v any) { fn(v.(PatchStalePayload)) })
}

// PublishSummarySaved publishes a summary.saved event.
func (bus *EventBus) PublishSummarySaved(p SummarySavedPayload) {
	bus.send(EventSummarySaved, p)
}

// SubscribeSummarySaved registers a handler for summary.saved.
func (bus *EventBus) SubscribeSummarySaved(fn func(SummarySavedPayload)) {
	bus.subscribe(EventSummarySaved, func(v any) { fn(v.(SummarySavedPayload)) })
}

// PublishTuiStarted publishes a tui.started event.
func (bus *EventBus) PublishTuiStarted(p TUIStartedPayload) {
	bus.send(EventTuiStarted, p)
}

// SubscribeTuiStarted registers a handler for tui.started.
func (bus *EventBus) SubscribeTuiStarted(fn func(TUIStartedPayload)) {
	bus.subscribe(EventTuiStarted, func(v any) { fn(v.(TUIStartedPayload)) })
}

// PublishTuiStopped publishes a tui.stopped event.
func (bus *EventBus) PublishTuiStopped(p TUIStoppedPayload) {
	bus.send(EventTuiStopped, p)
}

// SubscribeTuiStopped registers a handler for tui.stopped.
func (bus *EventBus) SubscribeTuiStopped(fn func(TUIStoppedPayload)) {
	bus.subscribe(EventTuiStopped, func(v any) { fn(v.(TUIStoppedPayload)) })
}
