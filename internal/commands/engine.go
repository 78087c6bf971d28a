package commands

import (
	"github.com/hay-kot/taskmon/internal/core/config"
	"github.com/hay-kot/taskmon/internal/core/eventbus"
	"github.com/hay-kot/taskmon/internal/core/logging"
	"github.com/hay-kot/taskmon/internal/core/notify"
	"github.com/hay-kot/taskmon/internal/core/schedule"
	"github.com/hay-kot/taskmon/internal/core/task"
	"github.com/hay-kot/taskmon/internal/tracker"
)

const busBuffer = 256

// engine bundles the components shared by every command that runs tasks.
type engine struct {
	bus     *eventbus.EventBus
	svc     *tracker.Service
	runner  *tracker.Runner
	history *notify.History
}

// newEngine wires a fresh task store to sched. A zero seed falls back to the
// configured seed, and then to the wall clock.
func newEngine(cfg *config.Config, sched schedule.Scheduler, seed uint64) *engine {
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}

	bus := eventbus.New(busBuffer)
	eventbus.NewNotificationRouter(bus).Register()
	eventbus.RegisterDebugLogger(bus, logging.Component("eventbus"))

	svc := tracker.NewService(task.NewStore(), sched, bus, logging.Component("tracker"))
	runner := tracker.NewRunner(svc, sched, cfg, tracker.NewRand(seed), logging.Component("runner"))

	return &engine{
		bus:     bus,
		svc:     svc,
		runner:  runner,
		history: notify.NewHistory(cfg.Notifications.History),
	}
}
