package commands

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/taskmon/internal/core/config"
	"github.com/hay-kot/taskmon/internal/core/eventbus"
	"github.com/hay-kot/taskmon/internal/core/task"
)

var simStart = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func runSim(t *testing.T, cfg *config.Config, d time.Duration, seed uint64) simulation {
	t.Helper()
	sim, err := simulate(context.Background(), cfg, simulateOptions{
		Duration: d,
		Step:     time.Second,
		Seed:     seed,
		Start:    simStart,
	})
	require.NoError(t, err)
	return sim
}

// shape drops the random ids so two runs can be compared.
type shape struct {
	Name     string
	Status   task.Status
	Progress int
	Total    time.Duration
	Estimate time.Duration
}

func shapes(tasks []task.Task) []shape {
	out := make([]shape, 0, len(tasks))
	for _, tk := range tasks {
		out = append(out, shape{tk.Name, tk.Status, tk.Progress, tk.TotalTime, tk.EstimatedTime})
	}
	return out
}

func TestSimulate_IsReproducible(t *testing.T) {
	cfg := testConfig(t)

	a := runSim(t, cfg, 2*time.Minute, 42)
	b := runSim(t, cfg, 2*time.Minute, 42)

	assert.Equal(t, shapes(a.Tasks), shapes(b.Tasks))
	assert.Len(t, b.Notifications, len(a.Notifications))
	assert.Equal(t, simStart.Add(2*time.Minute), a.End)
}

func TestSimulate_StepSizeDoesNotChangeOutput(t *testing.T) {
	cfg := testConfig(t)
	cfg.Notifications.History = 100_000

	run := func(step time.Duration) simulation {
		sim, err := simulate(context.Background(), cfg, simulateOptions{
			Duration: time.Hour,
			Step:     step,
			Seed:     7,
			Start:    simStart,
		})
		require.NoError(t, err)
		return sim
	}

	fine := run(time.Second)
	coarse := run(time.Hour)

	// An hour of spawning publishes far more events than the bus buffers.
	require.Greater(t, fine.Events, busBuffer)
	assert.Equal(t, fine.Events, coarse.Events)
	assert.Equal(t, shapes(fine.Tasks), shapes(coarse.Tasks))
	require.Len(t, coarse.Notifications, len(fine.Notifications))
	for i := range fine.Notifications {
		assert.Equal(t, fine.Notifications[i].Title, coarse.Notifications[i].Title)
		assert.Equal(t, fine.Notifications[i].CreatedAt, coarse.Notifications[i].CreatedAt)
	}
}

func TestSimulate_SpawnsEveryInterval(t *testing.T) {
	cfg := testConfig(t)
	cfg.Simulation.SpawnProbability = 1
	cfg.Simulation.OpenProbability = 0

	sim := runSim(t, cfg, 30*time.Second, 7)

	require.Len(t, sim.Tasks, 10, "one task per 3s spawn tick")
	for _, tk := range sim.Tasks {
		assert.Equal(t, task.SourceSystem, tk.Source)
		assert.NotEmpty(t, tk.Application)
	}
	assert.Positive(t, sim.Events)
}

func TestSimulate_DisabledSimulation(t *testing.T) {
	cfg := testConfig(t)
	cfg.Simulation.Enabled = false

	sim := runSim(t, cfg, time.Minute, 1)

	assert.Empty(t, sim.Tasks)
	assert.Empty(t, sim.Notifications)
}

func TestSimulate_AutoVerifiesOpenedApplication(t *testing.T) {
	cfg := testConfig(t)
	cfg.Applications = []config.Application{{Name: "Blender", Enabled: true}}
	cfg.Simulation.SpawnProbability = 1
	cfg.Simulation.OpenProbability = 1

	sim := runSim(t, cfg, 5*time.Minute, 3)

	var titles []string
	for _, n := range sim.Notifications {
		titles = append(titles, n.Title)
	}
	assert.Contains(t, titles, eventbus.TitleTaskAutoVerified)
	assert.NotEmpty(t, task.Select(sim.Tasks, task.WithStatus(task.StatusCompleted)))

	for i := 1; i < len(sim.Notifications); i++ {
		assert.False(t, sim.Notifications[i].CreatedAt.Before(sim.Notifications[i-1].CreatedAt), "oldest first")
	}
}

func TestSimulateOptions_Validate(t *testing.T) {
	err := simulateOptions{Duration: 0, Step: -time.Second, Speed: -1}.validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"duration", "step", "speed"}, fields)
}

func TestWriteTaskTable(t *testing.T) {
	var buf bytes.Buffer
	writeTaskTable(&buf, []task.Task{
		task.NewManual("m1", "Write docs", task.IconBrain, 30*time.Minute, simStart),
	})

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Write docs")
	assert.Contains(t, out, "00:30:00")
	assert.Contains(t, out, "manual")

	buf.Reset()
	writeTaskTable(&buf, nil)
	assert.Equal(t, "No tasks\n", buf.String())
}
