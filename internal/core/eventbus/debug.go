package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RegisterDebugLogger logs all bus activity: published events at debug
// level, dropped events as warnings and subscriber panics as errors.
func RegisterDebugLogger(bus *EventBus, logger zerolog.Logger) {
	bus.OnPublish(func(event Event, payload any) {
		e := logger.Debug().Str("event", string(event))
		if id := taskID(payload); id != "" {
			e = e.Str("task_id", id)
		}
		e.Msg("event fired")
	})

	bus.OnDrop(func(event Event, _ any) {
		logger.Warn().Str("event", string(event)).Msg("event dropped: buffer full")
	})

	bus.OnPanic(func(event Event, _ any, recovered any) {
		logger.Error().
			Str("event", string(event)).
			Str("panic", fmt.Sprint(recovered)).
			Msg("subscriber panicked")
	})
}

func taskID(payload any) string {
	switch p := payload.(type) {
	case TaskCreatedPayload:
		return p.Task.ID
	case TaskStatusChangedPayload:
		return p.Task.ID
	case TaskAwaitingVerificationPayload:
		return p.Task.ID
	case TaskVerifiedPayload:
		return p.Task.ID
	case TaskFailedPayload:
		return p.Task.ID
	case TaskRemovedPayload:
		return p.Task.ID
	default:
		return ""
	}
}
