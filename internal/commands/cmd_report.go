package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/taskmon/internal/printer"
	"github.com/hay-kot/taskmon/internal/report"
	"github.com/hay-kot/taskmon/pkg/iojson"
)

const defaultRenderWidth = 100

type ReportCmd struct {
	input iojson.FileReader[[]report.Record]

	reportType string
	dateRange  string
	groupBy    string
	format     string
	out        string
}

// NewReportCmd creates a new report command.
func NewReportCmd() *ReportCmd {
	return &ReportCmd{
		input: iojson.FileReader[[]report.Record]{
			Usage: "path to a JSON array of task records (reads from stdin if not provided)",
		},
	}
}

// Register adds the report command to the application.
func (cmd *ReportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "report",
		Usage:     "Filter, group and export a task snapshot",
		UsageText: "taskmon report [-f tasks.json] [--type all] [--range all] [--group none] [--format markdown] [--out DIR]",
		Description: `Reads task records in the JSON report format, for example the output of
'taskmon simulate --report json', and re-exports them.

Markdown written to a terminal is rendered with the active theme.`,
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.StringFlag{
				Name:        "type",
				Aliases:     []string{"t"},
				Usage:       fmt.Sprintf("tasks to include %v", report.Types),
				Value:       string(report.TypeAll),
				Destination: &cmd.reportType,
			},
			&cli.StringFlag{
				Name:        "range",
				Aliases:     []string{"r"},
				Usage:       fmt.Sprintf("start time window %v", report.Ranges),
				Value:       string(report.RangeAll),
				Destination: &cmd.dateRange,
			},
			&cli.StringFlag{
				Name:        "group",
				Aliases:     []string{"g"},
				Usage:       fmt.Sprintf("grouping %v", report.Groupings),
				Value:       string(report.GroupNone),
				Destination: &cmd.groupBy,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       fmt.Sprintf("output format %v", report.Formats),
				Value:       string(report.FormatMarkdown),
				Destination: &cmd.format,
			},
			&cli.StringFlag{
				Name:        "out",
				Usage:       "directory to write the report into instead of stdout",
				TakesFile:   true,
				Destination: &cmd.out,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ReportCmd) options() (report.Options, report.Format, error) {
	opts := report.Options{
		Type:    report.Type(cmd.reportType),
		Range:   report.Range(cmd.dateRange),
		GroupBy: report.GroupBy(cmd.groupBy),
	}
	if err := opts.Validate(); err != nil {
		return opts, "", err
	}

	format, err := report.ParseFormat(cmd.format)
	if err != nil {
		return opts, "", err
	}
	return opts, format, nil
}

func (cmd *ReportCmd) run(ctx context.Context, c *cli.Command) error {
	opts, format, err := cmd.options()
	if err != nil {
		return err
	}

	records, err := cmd.input.Read()
	if err != nil {
		return err
	}

	r := report.Build(report.Tasks(records), opts, time.Now())

	if cmd.out != "" {
		path, err := report.WriteFile(cmd.out, r, format)
		if err != nil {
			return err
		}
		printer.Ctx(ctx).Successf("Wrote %d tasks to %s", len(r.Tasks), path)
		return nil
	}

	return writeReport(c.Root().Writer, r, format)
}

// writeReport renders Markdown for terminals and writes the raw encoding
// everywhere else.
func writeReport(w io.Writer, r report.Report, format report.Format) error {
	width, tty := terminalWidth(w)
	if format != report.FormatMarkdown || !tty {
		return report.Write(w, r, format)
	}

	out, err := report.Render(r, width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultRenderWidth, true
	}
	return width, true
}
