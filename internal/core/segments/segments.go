// Package segments maps a task's continuous progress and time ratio onto a
// discrete segmented bar with an over-budget marker.
package segments

import (
	"math"
	"time"
)

// State is the display state of a single segment.
type State int

const (
	Empty State = iota
	Filled
	Critical
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Filled:
		return "filled"
	case Critical:
		return "critical"
	default:
		return "empty"
	}
}

const (
	// BaseCount is the segment count for a one hour estimate.
	BaseCount = 50
	MinCount  = 30
	MaxCount  = 100

	// MaxRatio caps the elapsed/estimated ratio at 200%.
	MaxRatio = 2.0

	referenceEstimate = time.Hour
)

// Bar is the segmented representation of one task.
type Bar struct {
	Segments  []State
	Active    int     // number of segments at or below progress
	TimeRatio float64 // elapsed / estimated, capped at MaxRatio
}

// Count returns the number of segments.
func (b Bar) Count() int { return len(b.Segments) }

// Overrun reports whether elapsed time exceeds the estimate.
func (b Bar) Overrun() bool { return b.TimeRatio > 1 }

// MarkerPercent returns the horizontal position, in percent, of the
// estimate boundary. It is only meaningful when Overrun is true.
func (b Bar) MarkerPercent() (float64, bool) {
	if !b.Overrun() {
		return 0, false
	}
	return 100 / b.TimeRatio, true
}

// MarkerIndex returns the first segment index past the estimate boundary.
func (b Bar) MarkerIndex() (int, bool) {
	if !b.Overrun() {
		return 0, false
	}
	return boundary(len(b.Segments), b.TimeRatio), true
}

// CriticalCount returns how many segments are marked critical.
func (b Bar) CriticalCount() int {
	n := 0
	for _, s := range b.Segments {
		if s == Critical {
			n++
		}
	}
	return n
}

// SegmentCount scales the segment count with the estimate relative to one
// hour, clamped to [MinCount, MaxCount].
func SegmentCount(estimated time.Duration) int {
	n := math.Floor(BaseCount * float64(estimated) / float64(referenceEstimate))
	return int(min(max(n, MinCount), MaxCount))
}

// TimeRatio returns elapsed/estimated capped at MaxRatio, or 0 when there is
// no estimate.
func TimeRatio(estimated, elapsed time.Duration) float64 {
	if estimated <= 0 {
		return 0
	}
	return min(float64(elapsed)/float64(estimated), MaxRatio)
}

// Map builds the segmented bar. It is deterministic and side-effect free.
func Map(progress int, estimated, elapsed time.Duration) Bar {
	progress = min(max(progress, 0), 100)

	count := SegmentCount(estimated)
	ratio := TimeRatio(estimated, elapsed)
	active := int(math.Floor(float64(progress) / 100 * float64(count)))

	segs := make([]State, count)
	for i := range segs {
		switch {
		case i >= active:
			segs[i] = Empty
		case ratio > 1 && i >= boundary(count, ratio):
			segs[i] = Critical
		default:
			segs[i] = Filled
		}
	}

	return Bar{Segments: segs, Active: active, TimeRatio: ratio}
}

// ProgressForSegment returns the progress selected by clicking segment i of
// a bar with count segments.
func ProgressForSegment(i, count int) int {
	if count <= 0 {
		return 0
	}
	i = min(max(i, 0), count-1)
	return int(math.Round(float64(i+1) / float64(count) * 100))
}

func boundary(count int, ratio float64) int {
	return int(math.Floor(float64(count) / ratio))
}
