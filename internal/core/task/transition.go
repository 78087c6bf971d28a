package task

import "time"

// The functions in this file are pure transitions over a single task value.
// Each returns the new value and whether anything changed; an unchanged
// result is always equal to the input.

// touch stamps LastUpdated. An active task first settles the span it accrued
// since its previous stamp, otherwise re-stamping would drop that time.
func touch(t Task, now time.Time) Task {
	if settled, ok := Accrue(t, now); ok {
		return settled
	}
	if now.After(t.LastUpdated) {
		t.LastUpdated = now
	}
	return t
}

// Toggle flips a task between active and paused. Any other status is left
// untouched.
func Toggle(t Task, now time.Time) (Task, bool) {
	switch t.Status {
	case StatusActive:
		t = touch(t, now)
		t.Status = StatusPaused
	case StatusPaused:
		t = touch(t, now)
		t.Status = StatusActive
	default:
		return t, false
	}
	return t, true
}

// Complete moves a running task to awaiting verification with full progress.
func Complete(t Task, now time.Time) (Task, bool) {
	if !t.Status.Running() {
		return t, false
	}
	t = touch(t, now)
	t.Status = StatusAwaitingVerification
	t.Progress = MaxProgress
	return t, true
}

// Verify archives a task that is awaiting verification.
func Verify(t Task, now time.Time) (Task, bool) {
	if t.Status != StatusAwaitingVerification {
		return t, false
	}
	t = touch(t, now)
	t.Status = StatusCompleted
	t.Read = true
	return t, true
}

// MarkRead flags a completed task as read.
func MarkRead(t Task, now time.Time) (Task, bool) {
	if t.Status != StatusCompleted || t.Read {
		return t, false
	}
	t = touch(t, now)
	t.Read = true
	return t, true
}

// SetProgress stores a clamped progress value on a running task. Reaching
// 100 completes the task in the same step so a running task is never
// observed at full progress.
func SetProgress(t Task, progress int, now time.Time) (Task, bool) {
	if !t.Status.Running() {
		return t, false
	}
	progress = ClampProgress(progress)
	if progress == MaxProgress {
		return Complete(t, now)
	}
	if progress == t.Progress {
		return t, false
	}
	t = touch(t, now)
	t.Progress = progress
	return t, true
}

// AdvanceProgress adds delta to the progress of a running task.
func AdvanceProgress(t Task, delta int, now time.Time) (Task, bool) {
	if delta <= 0 {
		return t, false
	}
	return SetProgress(t, t.Progress+delta, now)
}

// DriftEstimate scales the estimate by (1 + factor), respecting the floor.
func DriftEstimate(t Task, factor float64, now time.Time) (Task, bool) {
	next := ClampEstimate(time.Duration(float64(t.EstimatedTime) * (1 + factor)))
	if next == t.EstimatedTime {
		return t, false
	}
	t = touch(t, now)
	t.EstimatedTime = next
	return t, true
}

// Accrue adds the wall-clock span since LastUpdated to an active task. The
// delta is measured against the task's own LastUpdated so a task resumed
// mid-period only accrues its true active span.
func Accrue(t Task, now time.Time) (Task, bool) {
	if t.Status != StatusActive {
		return t, false
	}
	if !now.After(t.LastUpdated) {
		return t, false
	}
	t.TotalTime += now.Sub(t.LastUpdated)
	t.LastUpdated = now
	return t, true
}
