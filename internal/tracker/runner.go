package tracker

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/taskmon/internal/core/config"
	"github.com/hay-kot/taskmon/internal/core/eventbus"
	"github.com/hay-kot/taskmon/internal/core/logging"
	"github.com/hay-kot/taskmon/internal/core/schedule"
)

// Job names registered with the scheduler.
const (
	JobAccrual  = "accrual"
	JobSpawner  = "spawner"
	JobTicker   = "ticker"
	JobVerifier = "verifier"
)

// Intervals holds the period of every engine.
type Intervals struct {
	Accrual time.Duration
	Spawn   time.Duration
	Ticker  time.Duration
	Verify  time.Duration
}

// IntervalsFromConfig reads the engine periods from cfg.
func IntervalsFromConfig(cfg *config.Config) Intervals {
	return Intervals{
		Accrual: cfg.AccrualInterval.Std(),
		Spawn:   cfg.Simulation.SpawnInterval.Std(),
		Ticker:  cfg.Simulation.TickerInterval.Std(),
		Verify:  cfg.Simulation.VerifyInterval.Std(),
	}
}

// Runner owns the lifecycle of the periodic engines. Time accrual runs for
// as long as the runner is started; the spawner, ticker and verifier run
// only while simulation is enabled and at least one application is enabled.
type Runner struct {
	svc       *Service
	sched     schedule.Scheduler
	intervals Intervals
	log       zerolog.Logger

	accrual  *Accrual
	sim      *Simulator
	verifier *Verifier

	// settingsMu guards the control inputs read by job bodies. It is never
	// held while jobs are cancelled, so a job can read settings while a
	// setter waits for it to finish.
	settingsMu sync.RWMutex
	enabled    bool
	apps       []config.Application

	lifeMu   sync.Mutex
	started  bool
	stopped  chan struct{} // closed by Stop, one per Start
	base     schedule.Group
	simJobs  schedule.Group
	announce bool
}

// NewRunner builds the engines from cfg. Call Start to begin scheduling.
func NewRunner(svc *Service, sched schedule.Scheduler, cfg *config.Config, rnd Rand, log zerolog.Logger) *Runner {
	r := &Runner{
		svc:       svc,
		sched:     sched,
		intervals: IntervalsFromConfig(cfg),
		log:       log,
		enabled:   cfg.Simulation.Enabled,
		apps:      slices.Clone(cfg.Applications),
	}

	r.accrual = NewAccrual(svc.store, logging.ForJob(log, JobAccrual))
	r.sim = NewSimulator(svc, rnd, SimulatorOptions{
		TaskTypes:        slices.Clone(cfg.TaskTypes),
		SpawnProbability: cfg.Simulation.SpawnProbability,
		DriftProbability: cfg.Simulation.DriftProbability,
	}, r.EnabledApplications, logging.ForJob(log, JobSpawner))
	r.verifier = NewVerifier(svc, rnd, cfg.Simulation.OpenProbability, r.EnabledApplications,
		logging.ForJob(log, JobVerifier))

	return r
}

// Start schedules the engines. They are cancelled when ctx is done or Stop
// is called. Calling Start on a started runner is a no-op. Cancelling the ctx
// of an earlier, already stopped run has no effect on a later one.
func (r *Runner) Start(ctx context.Context) {
	r.lifeMu.Lock()
	if r.started {
		r.lifeMu.Unlock()
		return
	}
	r.started = true
	stopped := make(chan struct{})
	r.stopped = stopped
	r.base.Add(r.sched.Every(JobAccrual, r.intervals.Accrual, func(now time.Time) {
		r.accrual.Tick(now)
	}))
	r.syncLocked()
	r.lifeMu.Unlock()

	r.log.Info().Msg("engines started")

	go func() {
		select {
		case <-ctx.Done():
			r.stop(stopped)
		case <-stopped:
		}
	}()
}

// Stop cancels every scheduled engine. No engine mutates the store after
// Stop returns.
func (r *Runner) Stop() {
	r.lifeMu.Lock()
	defer r.lifeMu.Unlock()
	r.stopLocked()
}

// stop ends the run identified by stopped, if it is still the current one.
func (r *Runner) stop(stopped chan struct{}) {
	r.lifeMu.Lock()
	defer r.lifeMu.Unlock()
	if r.stopped != stopped {
		return
	}
	r.stopLocked()
}

func (r *Runner) stopLocked() {
	if !r.started {
		return
	}
	r.started = false
	close(r.stopped)
	r.stopped = nil
	r.base.Cancel()
	r.syncLocked()

	r.log.Info().Msg("engines stopped")
}

// SetSimulationEnabled turns the simulator and auto-verifier on or off.
func (r *Runner) SetSimulationEnabled(enabled bool) {
	r.settingsMu.Lock()
	changed := r.enabled != enabled
	r.enabled = enabled
	r.settingsMu.Unlock()

	r.sync(changed)
}

// SetMonitoredApplications replaces the monitored application list.
func (r *Runner) SetMonitoredApplications(apps []config.Application) {
	r.settingsMu.Lock()
	changed := !slices.Equal(r.apps, apps)
	r.apps = slices.Clone(apps)
	r.settingsMu.Unlock()

	r.sync(changed)
}

// SimulationEnabled reports the simulation flag.
func (r *Runner) SimulationEnabled() bool {
	r.settingsMu.RLock()
	defer r.settingsMu.RUnlock()
	return r.enabled
}

// SimulationRunning reports whether the simulator jobs are scheduled.
func (r *Runner) SimulationRunning() bool {
	r.lifeMu.Lock()
	defer r.lifeMu.Unlock()
	return r.simJobs.Len() > 0
}

// Applications returns a copy of the monitored application list.
func (r *Runner) Applications() []config.Application {
	r.settingsMu.RLock()
	defer r.settingsMu.RUnlock()
	return slices.Clone(r.apps)
}

// EnabledApplications returns the names of the enabled applications.
func (r *Runner) EnabledApplications() []string {
	r.settingsMu.RLock()
	defer r.settingsMu.RUnlock()
	return config.EnabledNames(r.apps)
}

func (r *Runner) sync(settingsChanged bool) {
	r.lifeMu.Lock()
	defer r.lifeMu.Unlock()
	r.announce = r.announce || settingsChanged
	r.syncLocked()
}

// syncLocked starts or cancels the simulation jobs to match the current
// settings and publishes a simulation.changed event when anything moved.
// Callers hold lifeMu.
func (r *Runner) syncLocked() {
	var (
		enabled = r.SimulationEnabled()
		apps    = r.EnabledApplications()
		want    = r.started && enabled && len(apps) > 0
		running = r.simJobs.Len() > 0
	)

	switch {
	case want && !running:
		r.simJobs.Add(r.sched.Every(JobSpawner, r.intervals.Spawn, func(now time.Time) { r.sim.Spawn(now) }))
		r.simJobs.Add(r.sched.Every(JobTicker, r.intervals.Ticker, r.sim.Tick))
		r.simJobs.Add(r.sched.Every(JobVerifier, r.intervals.Verify, func(now time.Time) { r.verifier.Tick(now) }))
		r.log.Info().Strs("applications", apps).Msg("simulation started")
	case !want && running:
		r.simJobs.Cancel()
		r.log.Info().Bool("enabled", enabled).Int("applications", len(apps)).Msg("simulation stopped")
	default:
		if !r.announce {
			return
		}
	}

	r.announce = false
	r.svc.bus.PublishSimulationChanged(eventbus.SimulationChangedPayload{
		Running:      want,
		Enabled:      enabled,
		Applications: apps,
	})
}
