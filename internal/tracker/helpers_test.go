package tracker

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/taskmon/internal/core/config"
	"github.com/hay-kot/taskmon/internal/core/eventbus"
	"github.com/hay-kot/taskmon/internal/core/eventbus/testbus"
	"github.com/hay-kot/taskmon/internal/core/schedule"
	"github.com/hay-kot/taskmon/internal/core/task"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// fixedRand returns the same draw every time. IntN is clamped into range.
type fixedRand struct {
	i int
	f float64
}

func (r fixedRand) IntN(n int) int   { return min(r.i, n-1) }
func (r fixedRand) Float64() float64 { return r.f }

type harness struct {
	sched *schedule.Manual
	bus   *testbus.Bus
	store *task.Store
	svc   *Service
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		sched: schedule.NewManual(epoch),
		bus:   testbus.New(t),
		store: task.NewStore(),
	}
	h.svc = NewService(h.store, h.sched, h.bus.EventBus, zerolog.Nop())
	eventbus.NewNotificationRouter(h.bus.EventBus).Register()
	return h
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Applications = []config.Application{
		{Name: "Blender", Enabled: true},
		{Name: "Figma", Enabled: true},
	}
	return &cfg
}

// spawnSystem inserts an active system task directly into the store.
func (h *harness) spawnSystem(t *testing.T, id, app string, progress int) task.Task {
	t.Helper()
	st := task.NewSystem(id, "Rendering in "+app, app, task.IconZap, 20*time.Minute, h.sched.Now())
	st.Progress = progress
	require.True(t, h.store.Add(st))
	return st
}

func (h *harness) mustGet(t *testing.T, id string) task.Task {
	t.Helper()
	got, ok := h.store.Get(id)
	require.True(t, ok, "task %s not found", id)
	return got
}

func notificationTitles(bus *testbus.Bus) []string {
	var titles []string
	for _, p := range bus.Of(eventbus.EventNotificationPublished) {
		titles = append(titles, p.(eventbus.NotificationPublishedPayload).Title)
	}
	return titles
}
