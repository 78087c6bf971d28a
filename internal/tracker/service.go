// Package tracker wires the task store to its periodic engines (time
// accrual, activity simulator, auto-verifier) and exposes the user-facing
// task operations.
package tracker

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hay-kot/taskmon/internal/core/eventbus"
	"github.com/hay-kot/taskmon/internal/core/logging"
	"github.com/hay-kot/taskmon/internal/core/schedule"
	"github.com/hay-kot/taskmon/internal/core/task"
)

// Service owns the task store and performs every task mutation. Operations
// on unknown ids, or on tasks in a state the operation does not apply to,
// are silent no-ops reported through the returned bool.
type Service struct {
	store *task.Store
	clock schedule.Clock
	bus   *eventbus.EventBus
	log   zerolog.Logger
}

// NewService creates a Service over store.
func NewService(store *task.Store, clock schedule.Clock, bus *eventbus.EventBus, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		clock: clock,
		bus:   bus,
		log:   log,
	}
}

// Tasks returns the current task collection.
func (s *Service) Tasks() []task.Task {
	return s.store.Snapshot()
}

// Task returns a single task by id.
func (s *Service) Task(id string) (task.Task, bool) {
	return s.store.Get(id)
}

// Stats returns per-status counters.
func (s *Service) Stats() task.Stats {
	return s.store.Stats()
}

// AddTask creates an active manual task.
func (s *Service) AddTask(name string, icon task.Icon, estimatedMinutes int) task.Task {
	t := task.NewManual(
		"manual-"+uuid.NewString(),
		strings.TrimSpace(name),
		icon,
		time.Duration(estimatedMinutes)*time.Minute,
		s.clock.Now(),
	)
	s.store.Add(t)

	s.logTask(t.ID).Info().Str("name", t.Name).Dur("estimate", t.EstimatedTime).Msg("task added")
	s.bus.PublishTaskCreated(eventbus.TaskCreatedPayload{Task: t})
	return t
}

// ToggleStatus flips a task between active and paused.
func (s *Service) ToggleStatus(id string) (task.Task, bool) {
	return s.update(id, task.Toggle)
}

// CompleteTask moves a running task to awaiting verification.
func (s *Service) CompleteTask(id string) (task.Task, bool) {
	return s.update(id, task.Complete)
}

// VerifyTask archives a task awaiting verification.
func (s *Service) VerifyTask(id string) (task.Task, bool) {
	return s.update(id, task.Verify)
}

// MarkRead flags a completed task as read.
func (s *Service) MarkRead(id string) (task.Task, bool) {
	return s.update(id, task.MarkRead)
}

// UpdateProgress sets the progress of a running task, clamped to [0, 100].
// Reaching 100 moves the task to awaiting verification.
func (s *Service) UpdateProgress(id string, progress int) (task.Task, bool) {
	return s.update(id, func(t task.Task, now time.Time) (task.Task, bool) {
		return task.SetProgress(t, progress, now)
	})
}

// MarkFailed deletes a task awaiting verification.
func (s *Service) MarkFailed(id string) (task.Task, bool) {
	removed, ok := s.store.Remove(id, func(t task.Task) bool {
		return t.Status != task.StatusAwaitingVerification
	})
	if !ok {
		return removed, false
	}

	s.logTask(id).Info().Msg("task marked failed")
	s.bus.PublishTaskFailed(eventbus.TaskFailedPayload{Task: removed})
	return removed, true
}

// RemoveTask deletes a completed task that has been read.
func (s *Service) RemoveTask(id string) (task.Task, bool) {
	removed, ok := s.store.Remove(id, func(t task.Task) bool {
		return !t.Removable()
	})
	if !ok {
		return removed, false
	}

	s.logTask(id).Info().Msg("task removed")
	s.bus.PublishTaskRemoved(eventbus.TaskRemovedPayload{Task: removed})
	return removed, true
}

// update applies a single-task transition and publishes the lifecycle
// events it implies.
func (s *Service) update(id string, fn func(task.Task, time.Time) (task.Task, bool)) (task.Task, bool) {
	now := s.clock.Now()

	var before task.Task
	after, changed := s.store.Update(id, func(t task.Task) (task.Task, bool) {
		before = t
		return fn(t, now)
	})
	if !changed {
		return after, false
	}

	s.publishTransition(before, after, "")
	return after, true
}

// publishTransition emits the bus events for a status change. application
// is set when an auto-verification caused the change.
func (s *Service) publishTransition(before, after task.Task, application string) {
	if before.Status == after.Status {
		return
	}

	s.logTask(after.ID).Debug().
		Str("from", string(before.Status)).
		Str("to", string(after.Status)).
		Msg("task transitioned")

	switch after.Status {
	case task.StatusActive, task.StatusPaused:
		s.bus.PublishTaskStatusChanged(eventbus.TaskStatusChangedPayload{Task: after, OldStatus: before.Status})
	case task.StatusAwaitingVerification:
		s.bus.PublishTaskAwaitingVerification(eventbus.TaskAwaitingVerificationPayload{Task: after})
	case task.StatusCompleted:
		s.bus.PublishTaskVerified(eventbus.TaskVerifiedPayload{
			Task:        after,
			Auto:        application != "",
			Application: application,
		})
	}
}

func (s *Service) logTask(id string) *zerolog.Logger {
	l := logging.ForTask(s.log, id)
	return &l
}
