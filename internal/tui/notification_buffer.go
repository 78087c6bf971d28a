package tui

import (
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/hay-kot/taskmon/internal/core/eventbus"
	"github.com/hay-kot/taskmon/internal/core/notify"
)

type drainNotificationsMsg struct{}

// NotificationBuffer collects notifications published from engine
// goroutines and wakes the program loop with one coalesced signal.
type NotificationBuffer struct {
	mu            sync.Mutex
	notifications []notify.Notification
	signal        chan struct{}
	now           func() time.Time
}

// NewNotificationBuffer creates an empty buffer. now stamps notifications
// that arrive without a creation time; nil uses time.Now.
func NewNotificationBuffer(now func() time.Time) *NotificationBuffer {
	if now == nil {
		now = time.Now
	}
	return &NotificationBuffer{
		signal: make(chan struct{}, 1),
		now:    now,
	}
}

// Attach feeds every published notification on bus into the buffer.
func (b *NotificationBuffer) Attach(bus *eventbus.EventBus) {
	bus.SubscribeNotificationPublished(func(p eventbus.NotificationPublishedPayload) {
		b.Push(notify.Notification{Level: p.Level, Title: p.Title, Message: p.Message})
	})
}

// Push queues n and raises the drain signal without blocking.
func (b *NotificationBuffer) Push(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = b.now()
	}

	b.mu.Lock()
	b.notifications = append(b.notifications, n)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Drain returns the queued notifications in arrival order and empties the
// buffer.
func (b *NotificationBuffer) Drain() []notify.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.notifications) == 0 {
		return nil
	}
	out := b.notifications
	b.notifications = nil
	return out
}

// WaitForSignal returns a command that blocks until something is queued.
func (b *NotificationBuffer) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return drainNotificationsMsg{}
	}
}
