package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextFields are the context values ContextHook copies onto events.
var contextFields = []struct {
	key string
	get func(context.Context) string
}{
	{"task_id", GetTaskID},
	{"job", GetJob},
}

// ContextHook writes the task id and job name carried by an event's context
// as fields. Install it on the global logger so component loggers inherit it.
type ContextHook struct{}

func (ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil {
		return
	}
	for _, f := range contextFields {
		if v := f.get(ctx); v != "" {
			e.Str(f.key, v)
		}
	}
}
