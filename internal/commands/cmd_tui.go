package commands

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskmon/internal/core/logging"
	"github.com/hay-kot/taskmon/internal/core/schedule"
	"github.com/hay-kot/taskmon/internal/profiler"
	"github.com/hay-kot/taskmon/internal/tracker"
	"github.com/hay-kot/taskmon/internal/tui"
)

type TuiCmd struct {
	flags        *Flags
	seed         uint64
	profilerAddr string
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Uint64Flag{
			Name:        "seed",
			Usage:       "seed for the activity simulator (0 uses simulation.seed or the clock)",
			Sources:     cli.EnvVars("TASKMON_SEED"),
			Destination: &cmd.seed,
		},
		&cli.StringFlag{
			Name:        "profiler-addr",
			Usage:       "serve pprof on this address (e.g. localhost:6060), empty disables",
			Sources:     cli.EnvVars("TASKMON_PROFILER_ADDR"),
			Destination: &cmd.profilerAddr,
		},
	}
}

// Register adds the tui command to the application.
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Open the interactive task panel",
		UsageText: "taskmon tui [--seed N] [--profiler-addr ADDR]",
		Flags:     cmd.Flags(),
		Action:    cmd.Run,
	})
	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cmd.profilerAddr != "" {
		prof := profiler.New(cmd.profilerAddr, logging.Component("profiler"))
		if err := prof.Start(ctx); err != nil {
			return fmt.Errorf("start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := prof.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shut down profiler")
			}
		}()
	}

	cfg := cmd.flags.Config
	sched := schedule.NewRealtime(logging.Component("schedule"))
	eng := newEngine(cfg, sched, cmd.seed)

	go eng.bus.Start(ctx)

	eng.runner.Start(ctx)
	defer eng.runner.Stop()

	if cfg.WatchConfig {
		watcher := tracker.NewConfigWatcher(cmd.flags.ConfigPath, cfg.DataDir, eng.runner, eng.bus, logging.Component("watcher"))
		go func() {
			if err := watcher.Run(ctx); err != nil {
				log.Warn().Err(err).Msg("config watcher stopped")
			}
		}()
	}

	m := tui.New(tui.Options{
		Service: eng.svc,
		Runner:  eng.runner,
		Bus:     eng.bus,
		Config:  cfg,
		History: eng.history,
		Clock:   sched,
		Log:     logging.Component("tui"),
	})

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
