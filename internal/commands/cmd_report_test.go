package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskmon/internal/core/task"
	"github.com/hay-kot/taskmon/internal/report"
)

func writeRecords(t *testing.T) string {
	t.Helper()

	now := time.Now()
	done := task.NewSystem("s1", "Rendering in Blender", "Blender", task.IconZap, 10*time.Minute, now.Add(-time.Hour))
	done.Status = task.StatusCompleted
	done.Progress = 100
	running := task.NewManual("m1", "Write, docs", task.IconBrain, 30*time.Minute, now.Add(-time.Minute))

	data, err := json.Marshal(report.Records([]task.Task{done, running}))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func runReport(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	app := NewReportCmd().Register(&cli.Command{Name: "taskmon", Writer: &buf, ErrWriter: &buf})
	err := app.Run(context.Background(), append([]string{"taskmon", "report"}, args...))
	return buf.String(), err
}

func TestReportCmd_FiltersAndWritesCSV(t *testing.T) {
	path := writeRecords(t)

	out, err := runReport(t, "-f", path, "--type", "completed", "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Name,Status,Progress,Start Time,Total Time,Estimated Time,Source,Application", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Rendering in Blender,completed,100%"))
}

func TestReportCmd_MarkdownToPipeIsRaw(t *testing.T) {
	path := writeRecords(t)

	out, err := runReport(t, "-f", path, "--group", "source")
	require.NoError(t, err)

	assert.Contains(t, out, "# Task Report: all")
	assert.Contains(t, out, "## system")
	assert.Contains(t, out, "## manual")
}

func TestReportCmd_WritesFileToOut(t *testing.T) {
	path := writeRecords(t)
	dir := t.TempDir()

	_, err := runReport(t, "-f", path, "--format", "json", "--out", dir)
	require.NoError(t, err)

	written := filepath.Join(dir, report.Filename(report.TypeAll, report.FormatJSON, time.Now()))
	data, err := os.ReadFile(written)
	require.NoError(t, err)

	var records []report.Record
	require.NoError(t, json.Unmarshal(data, &records))
	assert.Len(t, records, 2)
}

func TestReportCmd_InvalidOptions(t *testing.T) {
	path := writeRecords(t)

	_, err := runReport(t, "-f", path, "--type", "someday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type")

	_, err = runReport(t, "-f", path, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestTerminalWidth_NonFile(t *testing.T) {
	_, tty := terminalWidth(&bytes.Buffer{})
	assert.False(t, tty)
}
