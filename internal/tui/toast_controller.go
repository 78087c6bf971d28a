package tui

import (
	"time"

	"github.com/hay-kot/taskmon/internal/core/notify"
)

const (
	defaultToastTTL   = 5 * time.Second
	defaultMaxToasts  = 4
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 44
)

type toast struct {
	notification notify.Notification
	repeat       int
	remaining    time.Duration
}

// ToastController tracks the toasts currently on screen. A notification
// identical to the newest toast is folded into it and restarts its TTL.
type ToastController struct {
	toasts  []toast
	ttl     time.Duration
	limit   int
	ticking bool
}

// NewToastController creates a controller. Non-positive arguments fall back
// to defaultToastTTL and defaultMaxToasts.
func NewToastController(ttl time.Duration, limit int) *ToastController {
	if ttl <= 0 {
		ttl = defaultToastTTL
	}
	if limit <= 0 {
		limit = defaultMaxToasts
	}
	return &ToastController{ttl: ttl, limit: limit}
}

// Push shows n, evicting the oldest toast when the stack is full.
func (c *ToastController) Push(n notify.Notification) {
	if last := len(c.toasts) - 1; last >= 0 && sameToast(c.toasts[last].notification, n) {
		c.toasts[last].repeat++
		c.toasts[last].remaining = c.ttl
		return
	}

	c.toasts = append(c.toasts, toast{notification: n, repeat: 1, remaining: c.ttl})
	if len(c.toasts) > c.limit {
		c.toasts = c.toasts[len(c.toasts)-c.limit:]
	}
}

func sameToast(a, b notify.Notification) bool {
	return a.Level == b.Level && a.Title == b.Title && a.Message == b.Message
}

// Tick ages every toast by d and drops the expired ones.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss removes the newest toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

// DismissAll clears the stack.
func (c *ToastController) DismissAll() {
	c.toasts = c.toasts[:0]
}

func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

// Toasts returns the stack, oldest first.
func (c *ToastController) Toasts() []toast {
	return c.toasts
}

// Ticking reports whether a toast tick is scheduled.
func (c *ToastController) Ticking() bool {
	return c.ticking
}

func (c *ToastController) SetTicking(v bool) {
	c.ticking = v
}
