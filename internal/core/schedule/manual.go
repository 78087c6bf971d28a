package schedule

import (
	"sync"
	"time"
)

// Manual is a virtual clock whose jobs fire only when Advance is called.
// Jobs run synchronously on the caller's goroutine in time order; jobs due
// at the same instant fire in registration order.
type Manual struct {
	mu   sync.Mutex
	now  time.Time
	seq  int
	jobs []*manualJob

	afterFire func(time.Time)
}

type manualJob struct {
	seq      int
	name     string
	interval time.Duration
	next     time.Time
	fn       Func

	owner     *Manual
	cancelled bool
}

// NewManual creates a manual scheduler starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now implements Clock.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Every implements Scheduler.
func (m *Manual) Every(name string, interval time.Duration, fn Func) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	job := &manualJob{
		seq:      m.seq,
		name:     name,
		interval: interval,
		next:     m.now.Add(interval),
		fn:       fn,
		owner:    m,
	}
	m.jobs = append(m.jobs, job)
	return job
}

// AfterFire sets fn to run on the caller's goroutine after every job fires,
// before the next due job is considered.
func (m *Manual) AfterFire(fn func(now time.Time)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.afterFire = fn
}

// Jobs returns the names of all live jobs in registration order.
func (m *Manual) Jobs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.jobs))
	for _, j := range m.jobs {
		names = append(names, j.name)
	}
	return names
}

// Advance moves the clock forward by d, firing every job that becomes due.
// Jobs registered or cancelled by a firing job take effect immediately.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		job := m.nextDue(target)
		if job == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = job.next
		job.next = job.next.Add(job.interval)
		now := m.now
		after := m.afterFire
		m.mu.Unlock()

		job.fn(now)
		if after != nil {
			after(now)
		}
	}
}

// nextDue returns the earliest live job due at or before target.
func (m *Manual) nextDue(target time.Time) *manualJob {
	var best *manualJob
	for _, j := range m.jobs {
		if j.next.After(target) {
			continue
		}
		if best == nil || j.next.Before(best.next) || (j.next.Equal(best.next) && j.seq < best.seq) {
			best = j
		}
	}
	return best
}

func (j *manualJob) Cancel() {
	m := j.owner
	m.mu.Lock()
	defer m.mu.Unlock()

	if j.cancelled {
		return
	}
	j.cancelled = true
	for i, other := range m.jobs {
		if other == j {
			m.jobs = append(m.jobs[:i:i], m.jobs[i+1:]...)
			break
		}
	}
}
