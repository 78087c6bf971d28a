// Package schedule runs named periodic jobs against a clock. The realtime
// scheduler drives jobs from time.Ticker; the manual scheduler advances a
// virtual clock so periodic behaviour can be tested deterministically.
package schedule

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Func is a periodic job body. now is the time of the tick that fired it.
type Func func(now time.Time)

// Handle cancels a scheduled job. After Cancel returns the job body is never
// invoked again. Cancel is idempotent.
type Handle interface {
	Cancel()
}

// Scheduler registers periodic jobs.
type Scheduler interface {
	Clock
	// Every runs fn each interval, first firing one interval from now.
	Every(name string, interval time.Duration, fn Func) Handle
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Group collects handles so they can be cancelled together.
type Group struct {
	handles []Handle
}

// Add tracks h.
func (g *Group) Add(h Handle) {
	g.handles = append(g.handles, h)
}

// Len returns the number of tracked handles.
func (g *Group) Len() int {
	return len(g.handles)
}

// Cancel cancels every tracked handle and forgets them.
func (g *Group) Cancel() {
	for _, h := range g.handles {
		h.Cancel()
	}
	g.handles = nil
}
