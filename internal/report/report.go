// Package report selects, groups and serializes task snapshots for export.
package report

import (
	"fmt"
	"slices"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/taskmon/internal/core/task"
)

// Type selects which tasks a report covers.
type Type string

const (
	TypeAll                  Type = "all"
	TypeActive               Type = "active" // active and paused
	TypePaused               Type = "paused"
	TypeAwaitingVerification Type = "awaiting_verification"
	TypeCompleted            Type = "completed"
	TypeOverdue              Type = "overdue"
)

// Types lists every report type.
var Types = []Type{TypeAll, TypeActive, TypePaused, TypeAwaitingVerification, TypeCompleted, TypeOverdue}

// Range limits a report to tasks started within a window ending now.
type Range string

const (
	RangeAll   Range = "all"
	RangeToday Range = "today" // since local midnight
	RangeWeek  Range = "week"  // last 7 days
	RangeMonth Range = "month" // last 30 days
)

// Ranges lists every range.
var Ranges = []Range{RangeAll, RangeToday, RangeWeek, RangeMonth}

// GroupBy partitions the selected tasks.
type GroupBy string

const (
	GroupNone        GroupBy = "none"
	GroupApplication GroupBy = "application"
	GroupStatus      GroupBy = "status"
	GroupSource      GroupBy = "source"
)

// Groupings lists every grouping.
var Groupings = []GroupBy{GroupNone, GroupApplication, GroupStatus, GroupSource}

// ManualGroup names the application group of tasks without an application.
const ManualGroup = "Manual"

// Options configures Build.
type Options struct {
	Type    Type
	Range   Range
	GroupBy GroupBy
}

// DefaultOptions selects every task without grouping.
func DefaultOptions() Options {
	return Options{Type: TypeAll, Range: RangeAll, GroupBy: GroupNone}
}

// Validate checks every option against its known values.
func (o Options) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("type", string(o.Type), oneOf(Types)),
		criterio.Run("range", string(o.Range), oneOf(Ranges)),
		criterio.Run("group_by", string(o.GroupBy), oneOf(Groupings)),
	)
}

func oneOf[T ~string](allowed []T) func(string) error {
	return func(v string) error {
		if !slices.Contains(allowed, T(v)) {
			return fmt.Errorf("must be one of %v, got %v", allowed, v)
		}
		return nil
	}
}

// Group is a named subset of a report.
type Group struct {
	Name  string
	Tasks []task.Task
}

// Report is a filtered, optionally grouped task selection.
type Report struct {
	Options     Options
	GeneratedAt time.Time
	Tasks       []task.Task // every selected task, in store order
	Groups      []Group     // empty when Options.GroupBy is none
}

// Grouped reports whether the report is partitioned.
func (r Report) Grouped() bool {
	return r.Options.GroupBy != GroupNone && r.Options.GroupBy != ""
}

// Build selects tasks per opts relative to now.
func Build(tasks []task.Task, opts Options, now time.Time) Report {
	selected := task.Select(tasks, typeFilter(opts.Type), rangeFilter(opts.Range, now))

	r := Report{
		Options:     opts,
		GeneratedAt: now,
		Tasks:       selected,
	}
	if r.Grouped() {
		r.Groups = group(selected, opts.GroupBy)
	}
	return r
}

func typeFilter(t Type) task.Filter {
	switch t {
	case TypeActive:
		return task.WithStatus(task.StatusActive, task.StatusPaused)
	case TypePaused:
		return task.WithStatus(task.StatusPaused)
	case TypeAwaitingVerification:
		return task.WithStatus(task.StatusAwaitingVerification)
	case TypeCompleted:
		return task.WithStatus(task.StatusCompleted)
	case TypeOverdue:
		return task.Task.Overdue
	default:
		return nil
	}
}

func rangeFilter(r Range, now time.Time) task.Filter {
	var since time.Time
	switch r {
	case RangeToday:
		y, m, d := now.Date()
		since = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case RangeWeek:
		since = now.Add(-7 * 24 * time.Hour)
	case RangeMonth:
		since = now.Add(-30 * 24 * time.Hour)
	default:
		return nil
	}
	return func(t task.Task) bool { return !t.StartTime.Before(since) }
}

// group partitions tasks preserving first-seen group order. Source groups
// always include both sources, system first.
func group(tasks []task.Task, by GroupBy) []Group {
	var groups []Group
	index := map[string]int{}

	if by == GroupSource {
		for _, src := range []task.Source{task.SourceSystem, task.SourceManual} {
			index[string(src)] = len(groups)
			groups = append(groups, Group{Name: string(src), Tasks: []task.Task{}})
		}
	}

	for _, t := range tasks {
		key := groupKey(t, by)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Name: key})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	return groups
}

func groupKey(t task.Task, by GroupBy) string {
	switch by {
	case GroupApplication:
		if t.Application == "" {
			return ManualGroup
		}
		return t.Application
	case GroupStatus:
		return string(t.Status)
	default:
		return string(t.Source)
	}
}

// FormatDuration renders d as zero-padded HH:MM:SS. Hours are not wrapped.
func FormatDuration(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
