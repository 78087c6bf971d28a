package schedule

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Realtime runs each job on its own goroutine driven by a time.Ticker.
type Realtime struct {
	SystemClock
	log zerolog.Logger
}

// NewRealtime creates a wall-clock scheduler.
func NewRealtime(log zerolog.Logger) *Realtime {
	return &Realtime{log: log}
}

type realtimeJob struct {
	name string
	log  zerolog.Logger

	mu      sync.Mutex // held while fn runs
	stopped bool
	done    chan struct{}
	once    sync.Once
}

// Every implements Scheduler.
func (r *Realtime) Every(name string, interval time.Duration, fn Func) Handle {
	job := &realtimeJob{
		name: name,
		log:  r.log,
		done: make(chan struct{}),
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-job.done:
				return
			case now := <-ticker.C:
				job.run(now, fn)
			}
		}
	}()

	r.log.Debug().Str("job", name).Dur("interval", interval).Msg("job scheduled")
	return job
}

func (j *realtimeJob) run(now time.Time, fn Func) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.stopped {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			j.log.Error().Str("job", j.name).Interface("panic", r).Msg("job panicked")
		}
	}()

	fn(now)
}

// Cancel waits for an in-flight run to finish. It must not be called from
// inside the job's own body.
func (j *realtimeJob) Cancel() {
	j.once.Do(func() {
		j.mu.Lock()
		j.stopped = true
		j.mu.Unlock()
		close(j.done)
		j.log.Debug().Str("job", j.name).Msg("job cancelled")
	})
}
