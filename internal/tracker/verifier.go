package tracker

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/taskmon/internal/core/task"
)

// Verifier promotes system tasks awaiting verification to completed when
// their application is "opened". Each enabled application is opened with
// OpenProbability per tick. Manual tasks have no application and are never
// touched.
type Verifier struct {
	svc             *Service
	rand            Rand
	openProbability float64
	apps            func() []string
	log             zerolog.Logger
}

// NewVerifier creates the auto-verification engine.
func NewVerifier(svc *Service, rnd Rand, openProbability float64, apps func() []string, log zerolog.Logger) *Verifier {
	return &Verifier{
		svc:             svc,
		rand:            rnd,
		openProbability: openProbability,
		apps:            apps,
		log:             log,
	}
}

// Tick runs one verification pass and returns the tasks it completed.
func (v *Verifier) Tick(now time.Time) []task.Task {
	opened := make(map[string]bool)
	for _, app := range v.apps() {
		if v.rand.Float64() < v.openProbability {
			opened[app] = true
		}
	}
	if len(opened) == 0 {
		return nil
	}

	v.log.Debug().Int("opened", len(opened)).Msg("applications opened")

	type change struct{ before, after task.Task }
	var changes []change

	v.svc.store.Apply(func(tasks []task.Task) []task.Task {
		for i, t := range tasks {
			if t.Status != task.StatusAwaitingVerification || !opened[t.Application] {
				continue
			}
			next, ok := task.Verify(t, now)
			if !ok {
				continue
			}
			tasks[i] = next
			changes = append(changes, change{before: t, after: next})
		}
		return tasks
	})

	verified := make([]task.Task, 0, len(changes))
	for _, c := range changes {
		v.svc.logTask(c.after.ID).Info().Str("application", c.after.Application).Msg("task auto-verified")
		v.svc.publishTransition(c.before, c.after, c.after.Application)
		verified = append(verified, c.after)
	}
	return verified
}
