package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskmon/internal/core/config"
	"github.com/hay-kot/taskmon/internal/core/eventbus"
	"github.com/hay-kot/taskmon/internal/core/notify"
	"github.com/hay-kot/taskmon/internal/core/schedule"
	"github.com/hay-kot/taskmon/internal/core/task"
	"github.com/hay-kot/taskmon/internal/printer"
	"github.com/hay-kot/taskmon/internal/report"
	"github.com/hay-kot/taskmon/pkg/iojson"
)

type SimulateCmd struct {
	flags *Flags

	duration   time.Duration
	step       time.Duration
	speed      float64
	seed       uint64
	jsonOutput bool
	format     string
	out        string
}

// NewSimulateCmd creates a new simulate command.
func NewSimulateCmd(flags *Flags) *SimulateCmd {
	return &SimulateCmd{flags: flags}
}

// Register adds the simulate command to the application.
func (cmd *SimulateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "simulate",
		Usage:     "Run the engines headless on a virtual clock",
		UsageText: "taskmon simulate [--duration 2m] [--step 1s] [--seed N] [--report csv|json|markdown [--out DIR]]",
		Description: `Runs time accrual, the activity simulator and the auto-verifier against a
virtual clock, as fast as possible unless --speed is set.

Prints the notifications raised during the run, followed by the final task
table. Use --json for one task record per line.

With --report the final tasks are exported instead of the table, to stdout
or, with --out, into a file named task-report-all-<date>.<ext>.`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:        "duration",
				Aliases:     []string{"d"},
				Usage:       "virtual time to simulate",
				Value:       2 * time.Minute,
				Destination: &cmd.duration,
			},
			&cli.DurationFlag{
				Name:        "step",
				Usage:       "virtual time advanced per step",
				Value:       time.Second,
				Destination: &cmd.step,
			},
			&cli.FloatFlag{
				Name:        "speed",
				Usage:       "virtual seconds per wall second (0 runs unpaced)",
				Destination: &cmd.speed,
			},
			&cli.Uint64Flag{
				Name:        "seed",
				Usage:       "random seed (0 uses simulation.seed or the clock)",
				Destination: &cmd.seed,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the final tasks as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "report",
				Usage:       "export the final tasks (csv, json, markdown)",
				Destination: &cmd.format,
			},
			&cli.StringFlag{
				Name:        "out",
				Usage:       "directory to write the report into",
				TakesFile:   true,
				Destination: &cmd.out,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SimulateCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	var format report.Format
	if cmd.format != "" {
		f, err := report.ParseFormat(cmd.format)
		if err != nil {
			return err
		}
		format = f
	}

	sim, err := simulate(ctx, cmd.flags.Config, simulateOptions{
		Duration: cmd.duration,
		Step:     cmd.step,
		Speed:    cmd.speed,
		Seed:     cmd.seed,
		Start:    time.Now(),
	})
	if err != nil {
		return err
	}

	for _, n := range sim.Notifications {
		printNotification(p, n)
	}
	p.Infof("Simulated %s: %d tasks, %d events", cmd.duration, len(sim.Tasks), sim.Events)

	out := c.Root().Writer

	if format != "" {
		r := report.Build(sim.Tasks, report.DefaultOptions(), sim.End)
		if cmd.out == "" {
			return writeReport(out, r, format)
		}
		path, err := report.WriteFile(cmd.out, r, format)
		if err != nil {
			return err
		}
		p.Successf("Wrote report: %s", path)
		return nil
	}

	if cmd.jsonOutput {
		for _, rec := range report.Records(sim.Tasks) {
			if err := iojson.WriteLine(out, rec); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	writeTaskTable(out, sim.Tasks)
	return nil
}

type simulateOptions struct {
	Duration time.Duration
	Step     time.Duration
	Speed    float64
	Seed     uint64
	Start    time.Time
}

func (o simulateOptions) validate() error {
	var errs criterio.FieldErrorsBuilder
	if o.Duration <= 0 {
		errs = errs.Append("duration", errors.New("must be positive"))
	}
	if o.Step <= 0 {
		errs = errs.Append("step", errors.New("must be positive"))
	}
	if o.Speed < 0 {
		errs = errs.Append("speed", errors.New("cannot be negative"))
	}
	return errs.ToError()
}

// simulation is the outcome of a headless run.
type simulation struct {
	End           time.Time
	Tasks         []task.Task
	Notifications []notify.Notification // oldest first
	Events        int
}

// simulate drives a fresh engine on a manual clock. The bus is drained on
// this goroutine after every fired job, so notifications are delivered in
// firing order and the run is reproducible for a fixed seed at any step.
func simulate(ctx context.Context, cfg *config.Config, o simulateOptions) (simulation, error) {
	if err := o.validate(); err != nil {
		return simulation{}, err
	}

	clock := schedule.NewManual(o.Start)
	eng := newEngine(cfg, clock, o.Seed)
	eng.bus.SubscribeNotificationPublished(func(n eventbus.NotificationPublishedPayload) {
		_, _ = eng.history.Save(ctx, notify.Notification{
			Level:     n.Level,
			Title:     n.Title,
			Message:   n.Message,
			CreatedAt: clock.Now(),
		})
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	eng.runner.Start(runCtx)
	defer eng.runner.Stop()

	var pace <-chan time.Time
	if o.Speed > 0 {
		ticker := time.NewTicker(time.Duration(float64(o.Step) / o.Speed))
		defer ticker.Stop()
		pace = ticker.C
	}

	// Draining after every fired job keeps the bus buffer from overflowing
	// on large steps and makes the output independent of the step size.
	events := eng.bus.Drain()
	clock.AfterFire(func(time.Time) { events += eng.bus.Drain() })

	for elapsed := time.Duration(0); elapsed < o.Duration; {
		d := min(o.Step, o.Duration-elapsed)
		clock.Advance(d)
		events += eng.bus.Drain()
		elapsed += d

		if pace == nil {
			if err := ctx.Err(); err != nil {
				return simulation{}, err
			}
			continue
		}
		select {
		case <-ctx.Done():
			return simulation{}, ctx.Err()
		case <-pace:
		}
	}

	notes, err := eng.history.List(ctx)
	if err != nil {
		return simulation{}, fmt.Errorf("list notifications: %w", err)
	}
	slices.Reverse(notes)

	return simulation{
		End:           clock.Now(),
		Tasks:         eng.svc.Tasks(),
		Notifications: notes,
		Events:        events,
	}, nil
}

func printNotification(p *printer.Printer, n notify.Notification) {
	switch n.Level {
	case notify.LevelError:
		p.Errorf("%s: %s", n.Title, n.Message)
	case notify.LevelWarning:
		p.Warnf("%s: %s", n.Title, n.Message)
	default:
		p.Infof("%s: %s", n.Title, n.Message)
	}
}

func writeTaskTable(out io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(out, "No tasks")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSTATUS\tPROGRESS\tELAPSED\tESTIMATE\tSOURCE\tAPPLICATION")
	for _, t := range tasks {
		app := t.Application
		if app == "" {
			app = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d%%\t%s\t%s\t%s\t%s\n",
			t.Name, t.Status, t.Progress,
			report.FormatDuration(t.TotalTime), report.FormatDuration(t.EstimatedTime),
			t.Source, app)
	}
	_ = w.Flush()
}
