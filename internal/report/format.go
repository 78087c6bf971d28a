package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/hay-kot/taskmon/internal/core/styles"
	"github.com/hay-kot/taskmon/internal/core/task"
)

// Format is an output encoding.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formats lists every format.
var Formats = []Format{FormatCSV, FormatJSON, FormatMarkdown}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want one of %v)", s, Formats)
}

// Ext returns the file extension without the dot.
func (f Format) Ext() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// Filename returns task-report-<type>-<YYYY-MM-DD>.<ext>.
func Filename(t Type, f Format, now time.Time) string {
	return fmt.Sprintf("task-report-%s-%s.%s", t, now.Format(time.DateOnly), f.Ext())
}

const startTimeLayout = "2006-01-02 15:04:05"

var (
	csvHeader        = []string{"Name", "Status", "Progress", "Start Time", "Total Time", "Estimated Time", "Source", "Application"}
	csvGroupedHeader = csvHeader[:len(csvHeader)-1]
)

// Write encodes r to w.
func Write(w io.Writer, r Report, f Format) error {
	switch f {
	case FormatCSV:
		return writeCSV(w, r)
	case FormatJSON:
		return writeJSON(w, r)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(r))
		return err
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// WriteFile writes r into dir under its conventional filename and returns
// the path written.
func WriteFile(dir string, r Report, f Format) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(dir, Filename(r.Options.Type, f, r.GeneratedAt))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}

	if err := Write(file, r, f); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close report file: %w", err)
	}
	return path, nil
}

func csvRow(t Record, withApp bool) []string {
	row := []string{
		t.Name,
		t.Status,
		strconv.Itoa(t.Progress) + "%",
		t.StartTime.Local().Format(startTimeLayout),
		FormatDuration(time.Duration(t.TotalTime) * time.Millisecond),
		FormatDuration(time.Duration(t.EstimatedTime) * time.Millisecond),
		t.Source,
	}
	if withApp {
		app := t.Application
		if app == "" {
			app = "N/A"
		}
		row = append(row, app)
	}
	return row
}

func writeCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)

	if !r.Grouped() {
		_ = cw.Write(csvHeader)
		for _, rec := range Records(r.Tasks) {
			_ = cw.Write(csvRow(rec, true))
		}
		cw.Flush()
		return cw.Error()
	}

	for _, g := range r.Groups {
		// Single-field rows are quoted only when needed, so the section
		// marker reads as a plain line.
		_ = cw.Write([]string{"Group: " + g.Name})
		_ = cw.Write(csvGroupedHeader)
		for _, rec := range Records(g.Tasks) {
			_ = cw.Write(csvRow(rec, false))
		}
		cw.Flush()
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, r Report) error {
	var payload any = Records(r.Tasks)
	if r.Grouped() {
		grouped := make(map[string][]Record, len(r.Groups))
		for _, g := range r.Groups {
			grouped[g.Name] = Records(g.Tasks)
		}
		payload = grouped
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// Markdown renders the report as a Markdown document with one table per
// group.
func Markdown(r Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Task Report: %s\n\n", r.Options.Type)
	fmt.Fprintf(&b, "Generated %s · range `%s` · %d tasks\n\n",
		r.GeneratedAt.Local().Format(startTimeLayout), r.Options.Range, len(r.Tasks))

	if !r.Grouped() {
		markdownTable(&b, r.Tasks)
		return b.String()
	}

	for _, g := range r.Groups {
		fmt.Fprintf(&b, "## %s\n\n", g.Name)
		markdownTable(&b, g.Tasks)
	}
	return b.String()
}

func markdownTable(b *strings.Builder, tasks []task.Task) {
	if len(tasks) == 0 {
		b.WriteString("_No tasks._\n\n")
		return
	}

	b.WriteString("| " + strings.Join(csvHeader, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(csvHeader)) + "\n")
	for _, rec := range Records(tasks) {
		cells := csvRow(rec, true)
		for i, c := range cells {
			cells[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	b.WriteString("\n")
}

// Render renders the Markdown form of r for a terminal of the given width
// using the active theme.
func Render(r Report, width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := renderer.Render(Markdown(r))
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return out, nil
}
