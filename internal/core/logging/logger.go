package logging

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component returns the global logger tagged with cmp=name.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// ForTask returns l with a context carrying the task id, which ContextHook
// writes as task_id on every event.
func ForTask(l zerolog.Logger, taskID string) zerolog.Logger {
	return l.With().Ctx(WithTaskID(context.Background(), taskID)).Logger()
}

// ForJob returns l with a context carrying the periodic job name, which
// ContextHook writes as job on every event.
func ForJob(l zerolog.Logger, job string) zerolog.Logger {
	return l.With().Ctx(WithJob(context.Background(), job)).Logger()
}
