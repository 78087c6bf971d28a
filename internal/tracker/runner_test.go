package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/taskmon/internal/core/config"
	"github.com/hay-kot/taskmon/internal/core/eventbus"
	"github.com/hay-kot/taskmon/internal/core/task"
)

func newRunner(t *testing.T, h *harness, cfg *config.Config, rnd Rand) *Runner {
	t.Helper()
	r := NewRunner(h.svc, h.sched, cfg, rnd, zerolog.Nop())
	t.Cleanup(r.Stop)
	return r
}

func systemTasks(h *harness) []task.Task {
	return task.Select(h.svc.Tasks(), task.WithSource(task.SourceSystem))
}

func TestRunner_StartSchedulesEngines(t *testing.T) {
	h := newHarness(t)
	r := newRunner(t, h, testConfig(t), fixedRand{f: 0.99})

	r.Start(context.Background())

	assert.Equal(t, []string{JobAccrual, JobSpawner, JobTicker, JobVerifier}, h.sched.Jobs())
	assert.True(t, r.SimulationRunning())
	h.bus.AssertPublished(t, eventbus.EventSimulationChanged)
}

func TestRunner_SimulationDisabledAtStart(t *testing.T) {
	h := newHarness(t)
	cfg := testConfig(t)
	cfg.Simulation.Enabled = false
	r := newRunner(t, h, cfg, fixedRand{f: 0})

	r.Start(context.Background())
	h.sched.Advance(time.Minute)

	assert.Equal(t, []string{JobAccrual}, h.sched.Jobs())
	assert.Empty(t, systemTasks(h))
}

func TestRunner_NoEnabledApplicationsStopsSimulation(t *testing.T) {
	h := newHarness(t)
	r := newRunner(t, h, testConfig(t), fixedRand{f: 0})
	r.Start(context.Background())

	r.SetMonitoredApplications([]config.Application{
		{Name: "Blender", Enabled: false},
		{Name: "Figma", Enabled: false},
	})

	assert.False(t, r.SimulationRunning())
	assert.True(t, r.SimulationEnabled(), "flag is independent of the application list")
	assert.Empty(t, r.EnabledApplications())

	r.SetMonitoredApplications([]config.Application{{Name: "Chrome", Enabled: true}})
	assert.True(t, r.SimulationRunning())
	assert.Equal(t, []config.Application{{Name: "Chrome", Enabled: true}}, r.Applications())
}

func TestRunner_DisableSimulationMidRun(t *testing.T) {
	h := newHarness(t)
	r := newRunner(t, h, testConfig(t), fixedRand{i: 1, f: 0})
	r.Start(context.Background())

	h.sched.Advance(3 * time.Second)
	require.Len(t, systemTasks(h), 1, "first spawner tick creates a task")

	r.SetSimulationEnabled(false)
	before := systemTasks(h)

	h.sched.Advance(5 * time.Minute)

	after := systemTasks(h)
	require.Len(t, after, len(before), "no further system tasks")
	for i := range before {
		assert.Equal(t, before[i].Progress, after[i].Progress)
		assert.Equal(t, before[i].EstimatedTime, after[i].EstimatedTime)
		assert.Equal(t, before[i].Status, after[i].Status)
	}
	assert.Equal(t, []string{JobAccrual}, h.sched.Jobs())

	r.SetSimulationEnabled(true)
	assert.Equal(t, []string{JobAccrual, JobSpawner, JobTicker, JobVerifier}, h.sched.Jobs(), "restarts cleanly")
}

func TestRunner_PausedTaskAccruesNothing(t *testing.T) {
	h := newHarness(t)
	cfg := testConfig(t)
	cfg.Simulation.Enabled = false
	r := newRunner(t, h, cfg, fixedRand{})
	r.Start(context.Background())

	added := h.svc.AddTask("Focus", task.IconBrain, 25)

	h.sched.Advance(5 * time.Second)
	assert.Equal(t, 5*time.Second, h.mustGet(t, added.ID).TotalTime)

	_, _ = h.svc.ToggleStatus(added.ID)
	h.sched.Advance(10 * time.Second)
	assert.Equal(t, 5*time.Second, h.mustGet(t, added.ID).TotalTime)

	_, _ = h.svc.ToggleStatus(added.ID)
	h.sched.Advance(3500 * time.Millisecond)
	assert.Equal(t, 8*time.Second, h.mustGet(t, added.ID).TotalTime)
}

func TestRunner_StopCancelsEverything(t *testing.T) {
	h := newHarness(t)
	r := newRunner(t, h, testConfig(t), fixedRand{f: 0})
	r.Start(context.Background())

	r.Stop()
	snapshot := h.svc.Tasks()
	h.sched.Advance(time.Minute)

	assert.Empty(t, h.sched.Jobs())
	assert.Equal(t, snapshot, h.svc.Tasks())
	assert.False(t, r.SimulationRunning())
}

func TestRunner_ContextCancelStops(t *testing.T) {
	h := newHarness(t)
	r := newRunner(t, h, testConfig(t), fixedRand{f: 0.99})

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	cancel()

	assert.Eventually(t, func() bool { return len(h.sched.Jobs()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestRunner_EarlierContextDoesNotStopRestart(t *testing.T) {
	h := newHarness(t)
	r := newRunner(t, h, testConfig(t), fixedRand{f: 0.99})

	first, cancelFirst := context.WithCancel(context.Background())
	r.Start(first)
	r.Stop()
	r.Start(context.Background())
	jobs := h.sched.Jobs()
	require.NotEmpty(t, jobs)

	cancelFirst()

	assert.Never(t, func() bool { return len(h.sched.Jobs()) == 0 }, 100*time.Millisecond, 5*time.Millisecond)
	assert.Equal(t, jobs, h.sched.Jobs())
}

func TestRunner_AutoVerifiesSimulatedTasks(t *testing.T) {
	h := newHarness(t)
	cfg := testConfig(t)
	cfg.Simulation.SpawnProbability = 1
	r := newRunner(t, h, cfg, fixedRand{i: 9, f: 0})
	r.Start(context.Background())

	// The first task spawns at 3s and gains 15 points every 3s, reaching 100
	// at 21s. The verifier next fires at 30s and opens every application.
	h.sched.Advance(30 * time.Second)

	var completed int
	for _, tk := range systemTasks(h) {
		if tk.Status == task.StatusCompleted {
			completed++
			assert.True(t, tk.Read)
		}
	}
	assert.Positive(t, completed)
	h.bus.AssertPublished(t, eventbus.EventTaskVerified)
}
