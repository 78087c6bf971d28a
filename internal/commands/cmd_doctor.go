package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskmon/internal/core/doctor"
	"github.com/hay-kot/taskmon/internal/printer"
	"github.com/hay-kot/taskmon/pkg/iojson"
)

type DoctorCmd struct {
	flags   *Flags
	format  string
	autofix bool
}

func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{flags: flags}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your taskmon setup",
		UsageText:   "taskmon doctor [options]",
		Description: "Checks configuration, data directories, monitored applications, and the terminal.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "autofix",
				Usage:       "create missing data and report directories",
				Destination: &cmd.autofix,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) checks() []doctor.Check {
	cfg := cmd.flags.Config
	return []doctor.Check{
		doctor.NewConfigCheck(cfg, cmd.flags.ConfigPath),
		doctor.NewDirsCheck([]doctor.Dir{
			{Label: "data dir", Path: cfg.DataDir},
			{Label: "reports dir", Path: cfg.ReportsDir()},
		}, cmd.autofix),
		doctor.NewApplicationsCheck(cfg.Applications, cfg.Simulation.Enabled),
		doctor.NewTerminalCheck(),
	}
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := doctor.RunAll(ctx, cmd.checks())

	switch cmd.format {
	case "json":
		return iojson.WriteTo(c.Root().Writer, newDoctorReport(results))
	case "text":
		if failed := outputDoctorText(printer.Ctx(ctx), results, cmd.autofix); failed > 0 {
			return cli.Exit("", 1)
		}
		return nil
	default:
		return fmt.Errorf("invalid format %q: expected text or json", cmd.format)
	}
}

type doctorReport struct {
	Healthy bool            `json:"healthy"`
	Summary doctor.Tally    `json:"summary"`
	Checks  []doctor.Result `json:"checks"`
}

func newDoctorReport(results []doctor.Result) doctorReport {
	tally := doctor.Count(results)
	return doctorReport{Healthy: tally.Healthy(), Summary: tally, Checks: results}
}

// outputDoctorText prints every check and returns the number of failed items.
func outputDoctorText(p *printer.Printer, results []doctor.Result, autofix bool) int {
	for _, result := range results {
		p.Section(result.Name)
		for _, item := range result.Items {
			switch item.Status {
			case doctor.StatusPass:
				p.CheckItem(item.Label, item.Detail)
			case doctor.StatusWarn:
				p.WarnItem(item.Label, item.Detail)
			case doctor.StatusFail:
				p.FailItem(item.Label, item.Detail)
			}
		}
		p.Printf("")
	}

	tally := doctor.Count(results)
	p.Printf("%d passed  %d warnings  %d failed", tally.Passed, tally.Warned, tally.Failed)

	if !autofix && tally.Fixable > 0 {
		p.Infof("Run 'taskmon doctor --autofix' to fix %d issue(s)", tally.Fixable)
	}

	return tally.Failed
}
