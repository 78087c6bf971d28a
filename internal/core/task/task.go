// Package task defines the Task domain model, its lifecycle transitions and
// the in-memory store that owns every task for the length of a session.
package task

import "time"

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusActive               Status = "active"
	StatusPaused               Status = "paused"
	StatusAwaitingVerification Status = "awaiting_verification"
	StatusCompleted            Status = "completed"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusActive,
	StatusPaused,
	StatusAwaitingVerification,
	StatusCompleted,
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusAwaitingVerification, StatusCompleted:
		return true
	default:
		return false
	}
}

// Running reports whether the task is still in progress (active or paused).
func (s Status) Running() bool {
	return s == StatusActive || s == StatusPaused
}

// Source classifies how a task was created.
type Source string

const (
	// SourceManual is a task added by the user.
	SourceManual Source = "manual"
	// SourceSystem is a task generated by the activity simulator.
	SourceSystem Source = "system"
)

// Icon is a display-only symbol attached to a task.
type Icon string

const (
	IconZap    Icon = "zap"
	IconLayers Icon = "layers"
	IconChart  Icon = "chart"
	IconBrain  Icon = "brain"
)

// SystemIcons are the icons the simulator picks from.
var SystemIcons = []Icon{IconZap, IconLayers, IconChart}

// ParseIcon returns the icon for name, falling back to IconBrain for
// unknown values.
func ParseIcon(name string) Icon {
	switch Icon(name) {
	case IconZap, IconLayers, IconChart, IconBrain:
		return Icon(name)
	default:
		return IconBrain
	}
}

const (
	// MinEstimate is the floor applied to every estimated duration.
	MinEstimate = time.Minute
	// MaxProgress is the progress value that completes a task.
	MaxProgress = 100
)

// Task is a trackable unit of work with progress and time accounting.
type Task struct {
	ID            string
	Name          string
	Icon          Icon
	Status        Status
	Progress      int
	StartTime     time.Time
	TotalTime     time.Duration
	LastUpdated   time.Time
	Read          bool
	Source        Source
	Application   string // set only for SourceSystem
	EstimatedTime time.Duration
}

// IsSystem reports whether the task was created by the simulator.
func (t Task) IsSystem() bool {
	return t.Source == SourceSystem
}

// Overdue reports whether accrued time exceeds the estimate.
func (t Task) Overdue() bool {
	return t.TotalTime > t.EstimatedTime
}

// Removable reports whether the task may be deleted by the user.
func (t Task) Removable() bool {
	return t.Status == StatusCompleted && t.Read
}

// NewManual builds a user-created task.
func NewManual(id, name string, icon Icon, estimate time.Duration, now time.Time) Task {
	return Task{
		ID:            id,
		Name:          name,
		Icon:          icon,
		Status:        StatusActive,
		StartTime:     now,
		LastUpdated:   now,
		Source:        SourceManual,
		EstimatedTime: ClampEstimate(estimate),
	}
}

// NewSystem builds a simulator-created task bound to an application.
func NewSystem(id, name, application string, icon Icon, estimate time.Duration, now time.Time) Task {
	return Task{
		ID:            id,
		Name:          name,
		Icon:          icon,
		Status:        StatusActive,
		StartTime:     now,
		LastUpdated:   now,
		Source:        SourceSystem,
		Application:   application,
		EstimatedTime: ClampEstimate(estimate),
	}
}

// ClampProgress bounds p to [0, 100].
func ClampProgress(p int) int {
	return min(max(p, 0), MaxProgress)
}

// ClampEstimate enforces the one minute floor on an estimate.
func ClampEstimate(d time.Duration) time.Duration {
	return max(d, MinEstimate)
}
