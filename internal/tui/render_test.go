package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hay-kot/taskmon/internal/core/segments"
	"github.com/hay-kot/taskmon/internal/core/task"
	"github.com/hay-kot/taskmon/pkg/tuitest"
)

func TestRenderBar_OverrunMarksCriticalTail(t *testing.T) {
	bar := segments.Map(100, 10*time.Minute, 20*time.Minute)

	out := []rune(tuitest.StripANSI(renderBar(bar, bar.Count())))

	assert.Len(t, out, 30)
	assert.Equal(t, markerGlyph, string(out[15]), "estimate boundary sits at 50%")
	assert.Equal(t, 29, strings.Count(string(out), segmentGlyph))
	assert.Equal(t, 15, bar.CriticalCount())
}

func TestRenderBar_NoMarkerWithinBudget(t *testing.T) {
	bar := segments.Map(50, time.Hour, 10*time.Minute)

	out := tuitest.StripANSI(renderBar(bar, bar.Count()))

	assert.Equal(t, strings.Repeat(segmentGlyph, 25)+strings.Repeat(emptyGlyph, 25), out)
}

func TestRenderBar_ScalesToWidth(t *testing.T) {
	bar := segments.Map(50, time.Hour, 0)

	out := tuitest.StripANSI(renderBar(bar, 10))

	assert.Equal(t, strings.Repeat(segmentGlyph, 5)+strings.Repeat(emptyGlyph, 5), out)
	assert.Empty(t, renderBar(bar, 0))
}

func TestVisibleWindow(t *testing.T) {
	tests := []struct {
		cursor, n, perPage int
		start, end         int
	}{
		{0, 3, 5, 0, 3},
		{0, 20, 5, 0, 5},
		{9, 20, 5, 7, 12},
		{19, 20, 5, 15, 20},
		{4, 20, 0, 0, 20},
	}

	for _, tt := range tests {
		start, end := visibleWindow(tt.cursor, tt.n, tt.perPage)
		assert.Equal(t, tt.start, start, "start for cursor %d", tt.cursor)
		assert.Equal(t, tt.end, end, "end for cursor %d", tt.cursor)
	}
}

func TestRenderRow_SystemOverdueTask(t *testing.T) {
	tk := task.NewSystem("system-1", "Rendering in Blender", "Blender", task.IconZap, 10*time.Minute, epoch)
	tk.Progress = 80
	tk.TotalTime = 15 * time.Minute

	out := tuitest.StripANSI(renderRow(tk, 100, true))

	assert.Contains(t, out, "Rendering in Blender")
	assert.Contains(t, out, "Blender")
	assert.Contains(t, out, "active")
	assert.Contains(t, out, " 80%")
	assert.Contains(t, out, "elapsed 00:15:00 / est 00:10:00")
	assert.Contains(t, out, "over by 00:05:00")
}

func TestRenderRow_ManualTaskWithinBudget(t *testing.T) {
	tk := task.NewManual("manual-1", "Write docs", task.IconBrain, 30*time.Minute, epoch)

	out := tuitest.StripANSI(renderRow(tk, 80, false))

	assert.Contains(t, out, "Write docs")
	assert.NotContains(t, out, "over by")
}

func TestRenderStats(t *testing.T) {
	out := tuitest.StripANSI(renderStats(task.Stats{Active: 2, AwaitingVerification: 1}, 3, 6, true))

	assert.Contains(t, out, "active 2")
	assert.Contains(t, out, "awaiting 1")
	assert.Contains(t, out, "apps 3/6")
	assert.Contains(t, out, "simulation on")
}
