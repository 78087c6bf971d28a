package tracker

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/taskmon/internal/core/task"
)

// Accrual advances TotalTime for every active task. Each task accrues the
// span since its own LastUpdated, so a task resumed mid-period only counts
// its true active time.
type Accrual struct {
	store *task.Store
	log   zerolog.Logger
}

// NewAccrual creates the time accrual engine.
func NewAccrual(store *task.Store, log zerolog.Logger) *Accrual {
	return &Accrual{store: store, log: log}
}

// Tick accrues time up to now and returns how many tasks were advanced.
func (a *Accrual) Tick(now time.Time) int {
	accrued := 0
	a.store.Apply(func(tasks []task.Task) []task.Task {
		for i, t := range tasks {
			if next, ok := task.Accrue(t, now); ok {
				tasks[i] = next
				accrued++
			}
		}
		return tasks
	})

	if accrued > 0 {
		a.log.Debug().Int("tasks", accrued).Msg("time accrued")
	}
	return accrued
}
