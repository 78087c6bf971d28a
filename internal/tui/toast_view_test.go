package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/taskmon/internal/core/notify"
	"github.com/hay-kot/taskmon/internal/core/styles"
	"github.com/hay-kot/taskmon/pkg/tuitest"
)

func TestToastView_View_empty(t *testing.T) {
	v := NewToastView(NewToastController(0, 0))
	assert.Empty(t, v.View())
}

func TestToastView_View_levels(t *testing.T) {
	tests := []struct {
		level notify.Level
		icon  string
	}{
		{notify.LevelError, styles.IconNotifyError},
		{notify.LevelWarning, styles.IconNotifyWarning},
		{notify.LevelInfo, styles.IconNotifyInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			c := NewToastController(0, 0)
			c.Push(notify.Notification{Level: tt.level, Title: "Heads up", Message: "body text"})

			out := tuitest.StripANSI(NewToastView(c).View())
			assert.Contains(t, out, tt.icon+" Heads up")
			assert.Contains(t, out, "body text")
		})
	}
}

func TestToastView_View_repeatCount(t *testing.T) {
	c := NewToastController(0, 0)
	c.Push(info("again"))
	c.Push(info("again"))

	assert.Contains(t, tuitest.StripANSI(NewToastView(c).View()), "Note (x2)")
}

func TestToastView_View_stacksOldestFirst(t *testing.T) {
	c := NewToastController(0, 0)
	c.Push(info("first"))
	c.Push(notify.Notification{Level: notify.LevelError, Title: "Oops", Message: "second"})

	out := NewToastView(c).View()
	first, second := strings.Index(out, "first"), strings.Index(out, "second")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}

func TestToastView_Overlay(t *testing.T) {
	c := NewToastController(0, 0)
	v := NewToastView(c)

	assert.Equal(t, "background", v.Overlay("background", 80, 24))

	c.Push(info("positioned"))

	const width, height = 120, 40
	rows := make([]string, height)
	for i := range rows {
		rows[i] = strings.Repeat(" ", width)
	}
	lines := strings.Split(v.Overlay(strings.Join(rows, "\n"), width, height), "\n")

	at := -1
	for i, line := range lines {
		if strings.Contains(line, "positioned") {
			at = i
			break
		}
	}
	require.NotEqual(t, -1, at)
	assert.Greater(t, at, height/2)
}
