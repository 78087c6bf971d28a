package tui

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/taskmon/internal/core/notify"
)

func info(msg string) notify.Notification {
	return notify.Notification{Level: notify.LevelInfo, Title: "Note", Message: msg}
}

func TestToastController_Push(t *testing.T) {
	c := NewToastController(0, 0)

	c.Push(info("hello"))

	require.True(t, c.HasToasts())
	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, "hello", c.Toasts()[0].notification.Message)
	assert.Equal(t, defaultToastTTL, c.Toasts()[0].remaining)
	assert.Equal(t, 1, c.Toasts()[0].repeat)
}

func TestToastController_Push_evictsOldest(t *testing.T) {
	c := NewToastController(time.Second, 3)

	for i := range 5 {
		c.Push(info(strconv.Itoa(i)))
	}

	require.Len(t, c.Toasts(), 3)
	assert.Equal(t, "2", c.Toasts()[0].notification.Message)
	assert.Equal(t, "4", c.Toasts()[2].notification.Message)
}

func TestToastController_Push_foldsRepeats(t *testing.T) {
	c := NewToastController(time.Second, 0)

	c.Push(info("same"))
	c.Tick(600 * time.Millisecond)
	c.Push(info("same"))

	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, 2, c.Toasts()[0].repeat)
	assert.Equal(t, time.Second, c.Toasts()[0].remaining, "repeat restarts the TTL")

	c.Push(notify.Notification{Level: notify.LevelWarning, Title: "Note", Message: "same"})
	assert.Len(t, c.Toasts(), 2, "a different level is a different toast")
}

func TestToastController_Tick(t *testing.T) {
	c := NewToastController(time.Second, 0)
	c.Push(info("expires"))
	c.Tick(500 * time.Millisecond)
	c.Push(info("survives"))

	c.Tick(600 * time.Millisecond)

	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, "survives", c.Toasts()[0].notification.Message)
	assert.Equal(t, 400*time.Millisecond, c.Toasts()[0].remaining)
}

func TestToastController_Dismiss(t *testing.T) {
	c := NewToastController(0, 0)
	c.Dismiss()
	assert.False(t, c.HasToasts())

	c.Push(info("first"))
	c.Push(info("second"))
	c.Dismiss()

	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, "first", c.Toasts()[0].notification.Message)

	c.DismissAll()
	assert.False(t, c.HasToasts())
}

func TestToastController_Ticking(t *testing.T) {
	c := NewToastController(0, 0)
	assert.False(t, c.Ticking())

	c.SetTicking(true)
	assert.True(t, c.Ticking())
}
