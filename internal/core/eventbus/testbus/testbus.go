// Package testbus runs a real event bus for tests and records what its
// subscribers receive.
package testbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hay-kot/taskmon/internal/core/eventbus"
)

// pollEvery is how often WaitFor re-checks the recording.
const pollEvery = 5 * time.Millisecond

type recorded struct {
	event   eventbus.Event
	payload any
}

// Bus is a started EventBus that records every delivered event. Recording
// happens on the dispatch goroutine, ahead of subscribers added after New.
type Bus struct {
	*eventbus.EventBus

	mu     sync.Mutex
	events []recorded
}

// New starts a bus for the duration of t.
func New(t *testing.T) *Bus {
	t.Helper()

	tb := &Bus{EventBus: eventbus.New(256)}

	capture(tb, eventbus.EventTaskCreated, tb.SubscribeTaskCreated)
	capture(tb, eventbus.EventTaskStatusChanged, tb.SubscribeTaskStatusChanged)
	capture(tb, eventbus.EventTaskAwaitingVerification, tb.SubscribeTaskAwaitingVerification)
	capture(tb, eventbus.EventTaskVerified, tb.SubscribeTaskVerified)
	capture(tb, eventbus.EventTaskFailed, tb.SubscribeTaskFailed)
	capture(tb, eventbus.EventTaskRemoved, tb.SubscribeTaskRemoved)
	capture(tb, eventbus.EventSimulationChanged, tb.SubscribeSimulationChanged)
	capture(tb, eventbus.EventConfigReloaded, tb.SubscribeConfigReloaded)
	capture(tb, eventbus.EventNotificationPublished, tb.SubscribeNotificationPublished)
	capture(tb, eventbus.EventReportExported, tb.SubscribeReportExported)

	ctx, cancel := context.WithCancel(context.Background())
	go tb.Start(ctx)
	t.Cleanup(cancel)

	return tb
}

func capture[T any](tb *Bus, event eventbus.Event, subscribe func(func(T))) {
	subscribe(func(p T) {
		tb.mu.Lock()
		defer tb.mu.Unlock()
		tb.events = append(tb.events, recorded{event: event, payload: p})
	})
}

// Of returns the payloads recorded for event, in delivery order.
func (tb *Bus) Of(event eventbus.Event) []any {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	var out []any
	for _, r := range tb.events {
		if r.event == event {
			out = append(out, r.payload)
		}
	}
	return out
}

// WaitFor reports whether event is recorded within timeout.
func (tb *Bus) WaitFor(event eventbus.Event, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if len(tb.Of(event)) > 0 {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollEvery)
	}
}

// AssertPublished fails t unless event is delivered within half a second.
func (tb *Bus) AssertPublished(t *testing.T, event eventbus.Event) {
	t.Helper()
	if !tb.WaitFor(event, 500*time.Millisecond) {
		t.Errorf("event %q was not published", event)
	}
}

// AssertNotPublished waits for wait and fails t if event was delivered.
func (tb *Bus) AssertNotPublished(t *testing.T, event eventbus.Event, wait time.Duration) {
	t.Helper()
	time.Sleep(wait)
	if n := len(tb.Of(event)); n > 0 {
		t.Errorf("event %q was published %d time(s)", event, n)
	}
}
