package tracker

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hay-kot/taskmon/internal/core/eventbus"
	"github.com/hay-kot/taskmon/internal/core/task"
)

const (
	// spawnProgressStep bounds the progress added per spawner tick: [0, 10).
	spawnProgressStep = 10
	// tickProgressStep bounds the progress added per ticker tick: [0, 3).
	tickProgressStep = 3

	minSpawnEstimate = 5  // minutes
	maxSpawnEstimate = 60 // minutes

	minDrift = 0.1
	maxDrift = 0.4
)

// SimulatorOptions tunes the activity simulator.
type SimulatorOptions struct {
	TaskTypes        []string
	SpawnProbability float64
	DriftProbability float64
}

// Simulator emulates monitored applications: the spawner creates system
// tasks and nudges their progress and estimates, the ticker adds smaller
// progress steps in between.
type Simulator struct {
	svc  *Service
	rand Rand
	opts SimulatorOptions
	apps func() []string
	log  zerolog.Logger
}

// NewSimulator creates a simulator. apps returns the enabled application
// names at the time of each tick.
func NewSimulator(svc *Service, rnd Rand, opts SimulatorOptions, apps func() []string, log zerolog.Logger) *Simulator {
	return &Simulator{
		svc:  svc,
		rand: rnd,
		opts: opts,
		apps: apps,
		log:  log,
	}
}

// Spawn runs one spawner tick. It may create a system task and then
// advances every active system task, occasionally drifting its estimate.
// The created task, if any, is returned.
func (s *Simulator) Spawn(now time.Time) (task.Task, bool) {
	created, ok := s.maybeCreate(now)

	s.advance(now, func(t task.Task) (task.Task, bool) {
		var drifted, advanced bool
		if s.rand.Float64() < s.opts.DriftProbability {
			t, drifted = task.DriftEstimate(t, s.driftFactor(), now)
		}
		t, advanced = task.AdvanceProgress(t, s.rand.IntN(spawnProgressStep), now)
		return t, drifted || advanced
	})

	return created, ok
}

// Tick runs one ticker step, adding a small amount of progress to every
// active system task. Reaching 100 transitions the task immediately.
func (s *Simulator) Tick(now time.Time) {
	s.advance(now, func(t task.Task) (task.Task, bool) {
		return task.AdvanceProgress(t, s.rand.IntN(tickProgressStep), now)
	})
}

func (s *Simulator) maybeCreate(now time.Time) (task.Task, bool) {
	if s.rand.Float64() >= s.opts.SpawnProbability {
		return task.Task{}, false
	}

	apps := s.apps()
	if len(apps) == 0 || len(s.opts.TaskTypes) == 0 {
		return task.Task{}, false
	}

	var (
		app      = apps[s.rand.IntN(len(apps))]
		kind     = s.opts.TaskTypes[s.rand.IntN(len(s.opts.TaskTypes))]
		minutes  = s.rand.IntN(maxSpawnEstimate-minSpawnEstimate+1) + minSpawnEstimate
		icon     = task.SystemIcons[s.rand.IntN(len(task.SystemIcons))]
		name     = fmt.Sprintf("%s in %s", kind, app)
		estimate = time.Duration(minutes) * time.Minute
	)

	t := task.NewSystem("system-"+uuid.NewString(), name, app, icon, estimate, now)
	s.svc.store.Add(t)

	s.svc.logTask(t.ID).Info().
		Str("name", t.Name).
		Str("application", app).
		Dur("estimate", estimate).
		Msg("system task spawned")
	s.svc.bus.PublishTaskCreated(eventbus.TaskCreatedPayload{Task: t})
	return t, true
}

// driftFactor returns a signed factor with magnitude in [minDrift, maxDrift).
func (s *Simulator) driftFactor() float64 {
	sign := 1.0
	if s.rand.Float64() < 0.5 {
		sign = -1.0
	}
	return sign * (s.rand.Float64()*(maxDrift-minDrift) + minDrift)
}

// advance applies fn to every active system task in one store pass and
// publishes the transitions it caused.
func (s *Simulator) advance(now time.Time, fn func(task.Task) (task.Task, bool)) {
	type change struct{ before, after task.Task }
	var changes []change

	s.svc.store.Apply(func(tasks []task.Task) []task.Task {
		for i, t := range tasks {
			if !t.IsSystem() || t.Status != task.StatusActive {
				continue
			}
			next, ok := fn(t)
			if !ok {
				continue
			}
			tasks[i] = next
			changes = append(changes, change{before: t, after: next})
		}
		return tasks
	})

	for _, c := range changes {
		s.svc.publishTransition(c.before, c.after, "")
	}
}
