package tui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/taskmon/internal/core/notify"
	"github.com/hay-kot/taskmon/internal/core/styles"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders the toast stack and composites it over the panel.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

// View stacks the toasts vertically, newest at the bottom.
func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, renderToast(t))
	}
	return strings.Join(rendered, "\n")
}

func renderToast(t toast) string {
	icon, style := toastLevel(t.notification.Level)

	title := t.notification.Title
	if title == "" {
		title = string(t.notification.Level)
	}
	if t.repeat > 1 {
		title = fmt.Sprintf("%s (x%d)", title, t.repeat)
	}

	lines := []string{styles.ToastTitleStyle.Render(icon + " " + title)}
	if t.notification.Message != "" {
		lines = append(lines, styles.ToastMessageStyle.Render(t.notification.Message))
	}
	return style.Width(toastWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func toastLevel(level notify.Level) (string, lipgloss.Style) {
	switch level {
	case notify.LevelError:
		return styles.IconNotifyError, styles.ToastErrorStyle
	case notify.LevelWarning:
		return styles.IconNotifyWarning, styles.ToastWarningStyle
	default:
		return styles.IconNotifyInfo, styles.ToastInfoStyle
	}
}

// Overlay draws the stack in the lower-right corner of background.
func (v *ToastView) Overlay(background string, width, height int) string {
	content := v.View()
	if content == "" {
		return background
	}

	x := max(width-lipgloss.Width(content)-1, 0)
	y := max(height-lipgloss.Height(content)-1, 0)

	layer := lipgloss.NewLayer(content).X(x).Y(y).Z(2)
	return lipgloss.NewCompositor(lipgloss.NewLayer(background), layer).Render()
}
