package eventbus

import "fmt"

// Level grades a user-facing notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// NotificationPublishedPayload is emitted when a toast-worthy event occurs.
type NotificationPublishedPayload struct {
	Level   Level
	Message string
}

// NotificationRouter maps domain events to user-facing notifications.
type NotificationRouter struct {
	bus *EventBus
}

// NewNotificationRouter constructs a router for event-to-notification mappings.
func NewNotificationRouter(bus *EventBus) *NotificationRouter {
	return &NotificationRouter{bus: bus}
}

// Register subscribes all supported event mappings.
func (r *NotificationRouter) Register() {
	if r == nil || r.bus == nil {
		return
	}

	r.bus.SubscribePatchApplied(func(p PatchAppliedPayload) {
		r.notifyf(LevelInfo, "assistant applied %d edit(s)", p.Count)
	})

	r.bus.SubscribePatchStale(func(p PatchStalePayload) {
		r.notifyf(LevelWarning, "manual edit outdated the pending patches")
	})

	r.bus.SubscribePatchDismissed(func(p PatchDismissedPayload) {
		r.notifyf(LevelInfo, "patch set dismissed")
	})

	r.bus.SubscribeChecklistItemAdded(func(p ChecklistItemAddedPayload) {
		r.notifyf(LevelInfo, "evidence added: %s", p.Item.Text)
	})

	r.bus.SubscribeSummarySaved(func(p SummarySavedPayload) {
		r.notifyf(LevelInfo, "summary saved")
	})
}

func (r *NotificationRouter) notifyf(level Level, format string, args ...any) {
	r.bus.PublishNotificationPublished(NotificationPublishedPayload{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}
