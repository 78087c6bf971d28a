// Package eventbus provides a typed publish/subscribe event bus that carries
// task lifecycle events from the tracker to its consumers (TUI, notification
// router, logs).
package eventbus

import (
	"github.com/hay-kot/taskmon/internal/core/config"
	"github.com/hay-kot/taskmon/internal/core/notify"
	"github.com/hay-kot/taskmon/internal/core/task"
)

// Event names a bus topic.
type Event string

// Keep list sorted A-Z.
const (
	EventConfigReloaded           Event = "config.reloaded"
	EventNotificationPublished    Event = "notification.published"
	EventReportExported           Event = "report.exported"
	EventSimulationChanged        Event = "simulation.changed"
	EventTaskAwaitingVerification Event = "task.awaiting-verification"
	EventTaskCreated              Event = "task.created"
	EventTaskFailed               Event = "task.failed"
	EventTaskRemoved              Event = "task.removed"
	EventTaskStatusChanged        Event = "task.status-changed"
	EventTaskVerified             Event = "task.verified"
)

// ConfigReloadedPayload is emitted when the config file is reloaded.
type ConfigReloadedPayload struct {
	Config *config.Config
}

// NotificationPublishedPayload is a user-facing notification.
type NotificationPublishedPayload struct {
	Level   notify.Level
	Title   string
	Message string
}

// ReportExportedPayload is emitted after a report file is written.
type ReportExportedPayload struct {
	Path  string
	Tasks int
}

// SimulationChangedPayload is emitted when the simulator starts or stops.
type SimulationChangedPayload struct {
	Running      bool
	Enabled      bool
	Applications []string // enabled application names
}

// TaskAwaitingVerificationPayload is emitted when a task reaches full
// progress, whether by the user or by the simulator.
type TaskAwaitingVerificationPayload struct {
	Task task.Task
}

// TaskCreatedPayload is emitted when a task is added.
type TaskCreatedPayload struct {
	Task task.Task
}

// TaskFailedPayload is emitted when a task awaiting verification is marked
// failed and removed.
type TaskFailedPayload struct {
	Task task.Task
}

// TaskRemovedPayload is emitted when a read task is removed.
type TaskRemovedPayload struct {
	Task task.Task
}

// TaskStatusChangedPayload is emitted when a task toggles between active
// and paused.
type TaskStatusChangedPayload struct {
	Task      task.Task
	OldStatus task.Status
}

// TaskVerifiedPayload is emitted when a task is archived as completed. Auto
// is set when the verification came from a matching application event.
type TaskVerifiedPayload struct {
	Task        task.Task
	Auto        bool
	Application string
}
