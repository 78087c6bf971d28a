package eventbus

import (
	"fmt"

	"github.com/hay-kot/taskmon/internal/core/notify"
)

// Notification titles.
const (
	TitleTaskVerified     = "Task Verified"
	TitleTaskAutoVerified = "Task Auto-Verified"
	TitleTaskRemoved      = "Task Removed"
	TitleReportExported   = "Report Exported"
	TitleConfigReloaded   = "Config Reloaded"
)

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

	r.bus.SubscribeTaskVerified(func(p TaskVerifiedPayload) {
		if p.Auto {
			r.notifyf(notify.LevelInfo, TitleTaskAutoVerified,
				"Task %q was verified when you opened %s.", p.Task.Name, p.Application)
			return
		}
		r.notifyf(notify.LevelInfo, TitleTaskVerified, "Task has been verified and archived.")
	})

	r.bus.SubscribeTaskFailed(func(TaskFailedPayload) {
		r.notifyf(notify.LevelWarning, TitleTaskRemoved, "Failed task has been removed.")
	})

	r.bus.SubscribeReportExported(func(p ReportExportedPayload) {
		r.notifyf(notify.LevelInfo, TitleReportExported, "%s has been written.", p.Path)
	})

	r.bus.SubscribeConfigReloaded(func(ConfigReloadedPayload) {
		r.notifyf(notify.LevelInfo, TitleConfigReloaded, "Monitored applications updated.")
	})
}

func (r *NotificationRouter) notifyf(level notify.Level, title, format string, args ...any) {
	r.bus.PublishNotificationPublished(NotificationPublishedPayload{
		Level:   level,
		Title:   title,
		Message: fmt.Sprintf(format, args...),
	})
}
