package tui

import (
	"fmt"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/taskmon/internal/core/segments"
	"github.com/hay-kot/taskmon/internal/core/styles"
	"github.com/hay-kot/taskmon/internal/core/task"
	"github.com/hay-kot/taskmon/internal/report"
)

const (
	segmentGlyph = "█"
	emptyGlyph   = "░"
	markerGlyph  = "┃"

	// rowHeight is the rendered height of one task row including spacing.
	rowHeight = 4
	minBar    = 20
)

// renderBar draws the segmented bar in width cells. Each cell shows the
// segment beneath it, so bars with different segment counts line up. When
// the task is over budget a marker replaces the cell at the estimate
// boundary.
// RenderBar draws bar across width terminal cells.
func RenderBar(bar segments.Bar, width int) string {
	return renderBar(bar, width)
}

func renderBar(bar segments.Bar, width int) string {
	count := bar.Count()
	if count == 0 || width <= 0 {
		return ""
	}

	marker := -1
	if pct, ok := bar.MarkerPercent(); ok {
		marker = min(int(pct/100*float64(width)), width-1)
	}

	var b strings.Builder
	for cell := range width {
		if cell == marker {
			b.WriteString(styles.SegmentMarkerStyle.Render(markerGlyph))
			continue
		}
		switch bar.Segments[cell*count/width] {
		case segments.Filled:
			b.WriteString(styles.SegmentFilledStyle.Render(segmentGlyph))
		case segments.Critical:
			b.WriteString(styles.SegmentCriticalStyle.Render(segmentGlyph))
		default:
			b.WriteString(styles.SegmentEmptyStyle.Render(emptyGlyph))
		}
	}
	return b.String()
}

func statusBadge(s task.Status) string {
	switch s {
	case task.StatusActive:
		return styles.StatusActiveStyle.Render(styles.IconPlay + " active")
	case task.StatusPaused:
		return styles.StatusPausedStyle.Render(styles.IconPause + " paused")
	case task.StatusAwaitingVerification:
		return styles.StatusAwaitingStyle.Render(styles.IconHourly + " awaiting")
	default:
		return styles.StatusCompletedStyle.Render(styles.IconCheck + " completed")
	}
}

// renderRow draws one task as a title line, the segmented bar and a line of
// timing details.
func renderRow(t task.Task, width int, selected bool) string {
	inner := max(width-4, minBar)

	nameStyle := styles.TaskNameStyle
	if t.Status == task.StatusCompleted && !t.Read {
		nameStyle = styles.TaskUnreadStyle
	}

	title := styles.TaskIcon(string(t.Icon)) + " " + nameStyle.Render(t.Name)
	if t.Status == task.StatusCompleted && !t.Read {
		title += " " + styles.StatusAwaitingStyle.Render(styles.IconUnread)
	}
	if t.IsSystem() {
		badge := styles.SourceBadgeStyle.Background(styles.ColorForString(t.Application))
		title += " " + badge.Render(styles.IconMonitor+" "+t.Application)
	}

	right := statusBadge(t.Status) + "  " + styles.StatValueStyle.Render(fmt.Sprintf("%3d%%", t.Progress))
	gap := max(inner-lipgloss.Width(title)-lipgloss.Width(right), 1)
	header := title + strings.Repeat(" ", gap) + right

	bar := segments.Map(t.Progress, t.EstimatedTime, t.TotalTime)

	meta := fmt.Sprintf("elapsed %s / est %s", report.FormatDuration(t.TotalTime), report.FormatDuration(t.EstimatedTime))
	metaLine := styles.TaskMetaStyle.Render(meta)
	if t.Overdue() {
		over := fmt.Sprintf("  over by %s (%d critical)", report.FormatDuration(t.TotalTime-t.EstimatedTime), bar.CriticalCount())
		metaLine += styles.TaskOverdueStyle.Render(over)
	}

	body := lipgloss.JoinVertical(lipgloss.Left, header, renderBar(bar, inner), metaLine)
	if selected {
		return styles.RowSelectedStyle.Render(body)
	}
	return styles.RowStyle.Render(body)
}

// visibleWindow returns the [start, end) slice of n rows that keeps cursor
// on screen when only perPage rows fit.
func visibleWindow(cursor, n, perPage int) (int, int) {
	if perPage <= 0 || n <= perPage {
		return 0, n
	}
	start := min(max(cursor-perPage/2, 0), n-perPage)
	return start, start + perPage
}

func renderStats(stats task.Stats, enabledApps, totalApps int, simulating bool) string {
	stat := func(label string, v any) string {
		return styles.StatLabelStyle.Render(label+" ") + styles.StatValueStyle.Render(fmt.Sprint(v))
	}

	sim := styles.StatusPausedStyle.Render("off")
	if simulating {
		sim = styles.StatusActiveStyle.Render("on")
	}

	return strings.Join([]string{
		stat("active", stats.Active),
		stat("paused", stats.Paused),
		stat("awaiting", stats.AwaitingVerification),
		stat("completed", stats.Completed),
		stat("unread", stats.Unread),
		stat("apps", fmt.Sprintf("%d/%d", enabledApps, totalApps)),
		styles.StatLabelStyle.Render("simulation ") + sim,
	}, styles.DividerStyle.Render("  │  "))
}

func renderTabs(current tab, counts map[tab]int) string {
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		label := fmt.Sprintf("%s (%d)", t, counts[t])
		if t == current {
			parts = append(parts, styles.ViewSelectedStyle.Render(label))
		} else {
			parts = append(parts, styles.ViewNormalStyle.Render(label))
		}
	}
	return strings.Join(parts, "   ")
}
