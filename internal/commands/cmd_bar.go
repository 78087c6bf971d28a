package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskmon/internal/core/segments"
	"github.com/hay-kot/taskmon/internal/printer"
	"github.com/hay-kot/taskmon/internal/report"
	"github.com/hay-kot/taskmon/internal/tui"
	"github.com/hay-kot/taskmon/pkg/iojson"
)

type BarCmd struct {
	progress   int
	estimate   time.Duration
	elapsed    time.Duration
	width      int
	jsonOutput bool
}

// NewBarCmd creates a new bar command.
func NewBarCmd() *BarCmd {
	return &BarCmd{}
}

// Register adds the bar command to the application.
func (cmd *BarCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "bar",
		Usage:     "Render the segmented progress bar for a hypothetical task",
		UsageText: "taskmon bar --progress 60 --estimate 10m --elapsed 20m [--width 60] [--json]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "progress",
				Aliases:     []string{"p"},
				Usage:       "progress percentage (clamped to 0-100)",
				Destination: &cmd.progress,
			},
			&cli.DurationFlag{
				Name:        "estimate",
				Usage:       "estimated duration",
				Value:       time.Hour,
				Destination: &cmd.estimate,
			},
			&cli.DurationFlag{
				Name:        "elapsed",
				Usage:       "accrued working time",
				Destination: &cmd.elapsed,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "terminal cells to draw the bar across",
				Value:       60,
				Destination: &cmd.width,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the segment breakdown as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// barInfo is the JSON form of a mapped bar.
type barInfo struct {
	Progress      int      `json:"progress"`
	Estimate      string   `json:"estimate"`
	Elapsed       string   `json:"elapsed"`
	Count         int      `json:"count"`
	Active        int      `json:"active"`
	Critical      int      `json:"critical"`
	TimeRatio     float64  `json:"timeRatio"`
	Overrun       bool     `json:"overrun"`
	MarkerPercent *float64 `json:"markerPercent,omitempty"`
	MarkerIndex   *int     `json:"markerIndex,omitempty"`
	Segments      []string `json:"segments"`
}

func newBarInfo(progress int, estimate, elapsed time.Duration) (segments.Bar, barInfo) {
	bar := segments.Map(progress, estimate, elapsed)

	info := barInfo{
		Progress:  min(max(progress, 0), 100),
		Estimate:  report.FormatDuration(estimate),
		Elapsed:   report.FormatDuration(elapsed),
		Count:     bar.Count(),
		Active:    bar.Active,
		Critical:  bar.CriticalCount(),
		TimeRatio: bar.TimeRatio,
		Overrun:   bar.Overrun(),
		Segments:  make([]string, 0, bar.Count()),
	}
	if pct, ok := bar.MarkerPercent(); ok {
		info.MarkerPercent = &pct
	}
	if idx, ok := bar.MarkerIndex(); ok {
		info.MarkerIndex = &idx
	}
	for _, s := range bar.Segments {
		info.Segments = append(info.Segments, s.String())
	}
	return bar, info
}

func (cmd *BarCmd) run(_ context.Context, c *cli.Command) error {
	if cmd.estimate <= 0 {
		return fmt.Errorf("estimate must be positive")
	}

	bar, info := newBarInfo(cmd.progress, cmd.estimate, cmd.elapsed)
	if cmd.jsonOutput {
		return iojson.WriteTo(c.Root().Writer, info)
	}

	p := printer.New(c.Root().Writer)
	p.Printf("%s %3d%%", tui.RenderBar(bar, max(cmd.width, 1)), info.Progress)
	p.KeyValue("segments", fmt.Sprintf("%d (%d filled, %d critical)", info.Count, info.Active, info.Critical))
	p.KeyValue("elapsed", fmt.Sprintf("%s of %s (%.0f%%)", info.Elapsed, info.Estimate, info.TimeRatio*100))
	if info.MarkerPercent != nil {
		p.KeyValue("marker", fmt.Sprintf("%.1f%% (segment %d)", *info.MarkerPercent, *info.MarkerIndex))
	}
	return nil
}
