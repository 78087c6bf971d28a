// Package tuitest provides helpers for driving bubbletea models in tests.
package tuitest

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes escape sequences and trailing blanks from a rendered
// view so assertions can match the visible text.
func StripANSI(s string) string {
	lines := strings.Split(ansi.Strip(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// KeyPress returns a press of the single key r, as matched by key bindings.
func KeyPress(r rune) tea.Msg {
	return tea.KeyPressMsg{Code: r}
}

// Key returns a press of a special key such as tea.KeyEnter, with optional
// modifiers.
func Key(code rune, mods ...tea.KeyMod) tea.Msg {
	msg := tea.KeyPressMsg{Code: code}
	for _, m := range mods {
		msg.Mod |= m
	}
	return msg
}

// Type returns the presses that enter s into a focused text input.
func Type(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return msgs
}

// WindowSize returns a resize to w columns by h rows.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}
