// Package notify defines user-facing notifications and an in-memory history
// of the notifications raised during a session.
package notify

import (
	"context"
	"sync"
	"time"
)

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single notification event.
type Notification struct {
	ID        int64
	Level     Level
	Title     string
	Message   string
	CreatedAt time.Time
}

// Store records notifications.
type Store interface {
	Save(ctx context.Context, n Notification) (int64, error)
	List(ctx context.Context) ([]Notification, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

// DefaultHistory is the default number of notifications retained.
const DefaultHistory = 50

// History is a bounded Store that keeps the most recent notifications.
type History struct {
	mu     sync.Mutex
	limit  int
	nextID int64
	items  []Notification
}

var _ Store = (*History)(nil)

// NewHistory creates a history retaining at most limit notifications.
// A non-positive limit uses DefaultHistory.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistory
	}
	return &History{limit: limit}
}

// Save appends n, evicting the oldest entry when full.
func (h *History) Save(_ context.Context, n Notification) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	n.ID = h.nextID
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	h.items = append(h.items, n)
	if len(h.items) > h.limit {
		h.items = h.items[len(h.items)-h.limit:]
	}
	return n.ID, nil
}

// List returns notifications newest first.
func (h *History) List(_ context.Context) ([]Notification, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Notification, len(h.items))
	for i, n := range h.items {
		out[len(h.items)-1-i] = n
	}
	return out, nil
}

// Clear removes every notification.
func (h *History) Clear(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = nil
	return nil
}

// Count returns the number of retained notifications.
func (h *History) Count(_ context.Context) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return int64(len(h.items)), nil
}
