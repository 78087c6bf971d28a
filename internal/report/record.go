package report

import (
	"time"

	"github.com/hay-kot/taskmon/internal/core/task"
)

// Record is the JSON shape of a task. Durations are milliseconds.
type Record struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Icon          string    `json:"icon"`
	Status        string    `json:"status"`
	Progress      int       `json:"progress"`
	StartTime     time.Time `json:"startTime"`
	TotalTime     int64     `json:"totalTime"`
	LastUpdated   time.Time `json:"lastUpdated"`
	Read          bool      `json:"read"`
	Source        string    `json:"source"`
	Application   string    `json:"application,omitempty"`
	EstimatedTime int64     `json:"estimatedTime"`
}

// NewRecord converts a task.
func NewRecord(t task.Task) Record {
	return Record{
		ID:            t.ID,
		Name:          t.Name,
		Icon:          string(t.Icon),
		Status:        string(t.Status),
		Progress:      t.Progress,
		StartTime:     t.StartTime,
		TotalTime:     t.TotalTime.Milliseconds(),
		LastUpdated:   t.LastUpdated,
		Read:          t.Read,
		Source:        string(t.Source),
		Application:   t.Application,
		EstimatedTime: t.EstimatedTime.Milliseconds(),
	}
}

// Task converts the record back, clamping progress and estimate.
func (r Record) Task() task.Task {
	return task.Task{
		ID:            r.ID,
		Name:          r.Name,
		Icon:          task.ParseIcon(r.Icon),
		Status:        task.Status(r.Status),
		Progress:      task.ClampProgress(r.Progress),
		StartTime:     r.StartTime,
		TotalTime:     time.Duration(r.TotalTime) * time.Millisecond,
		LastUpdated:   r.LastUpdated,
		Read:          r.Read,
		Source:        task.Source(r.Source),
		Application:   r.Application,
		EstimatedTime: task.ClampEstimate(time.Duration(r.EstimatedTime) * time.Millisecond),
	}
}

// Records converts a task slice.
func Records(tasks []task.Task) []Record {
	out := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewRecord(t))
	}
	return out
}

// Tasks converts records back to tasks, dropping entries with an unknown
// status.
func Tasks(records []Record) []task.Task {
	out := make([]task.Task, 0, len(records))
	for _, r := range records {
		t := r.Task()
		if !t.Status.IsValid() {
			continue
		}
		out = append(out, t)
	}
	return out
}
