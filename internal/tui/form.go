package tui

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/taskmon/internal/core/styles"
	"github.com/hay-kot/taskmon/internal/core/task"
)

const defaultEstimateMinutes = 30

type iconOption struct {
	icon  task.Icon
	label string
}

var iconOptions = []iconOption{
	{task.IconBrain, "AI"},
	{task.IconChart, "Analytics"},
	{task.IconLayers, "Process"},
	{task.IconZap, "Automation"},
}

const (
	fieldName = iota
	fieldIcon
	fieldMinutes
	fieldCount
)

// AddTaskForm collects the name, icon and estimate of a manual task. Tab
// and enter advance through the fields; enter on the last field submits.
type AddTaskForm struct {
	name    textinput.Model
	minutes textinput.Model
	icon    int
	focused int
	err     string

	submitted bool
	cancelled bool
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.CharLimit = limit
	in.SetWidth(36)
	inputStyles := textinput.DefaultStyles(true)
	inputStyles.Cursor.Color = styles.ColorPrimary
	in.SetStyles(inputStyles)
	return in
}

// NewAddTaskForm creates a form focused on the name field.
func NewAddTaskForm() *AddTaskForm {
	f := &AddTaskForm{
		name:    newInput("Enter task name...", 64),
		minutes: newInput(strconv.Itoa(defaultEstimateMinutes), 4),
	}
	f.minutes.SetValue(strconv.Itoa(defaultEstimateMinutes))
	f.name.Focus()
	return f
}

// Update routes a message to the focused field.
func (f *AddTaskForm) Update(msg tea.Msg) (*AddTaskForm, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return f.updateFocused(msg)
	}

	switch keyMsg.String() {
	case "esc":
		f.cancelled = true
		return f, nil
	case "tab", "down":
		return f.moveFocus(1, false)
	case "shift+tab", "up":
		return f.moveFocus(-1, false)
	case "enter":
		return f.moveFocus(1, true)
	}

	if f.focused == fieldIcon {
		switch keyMsg.String() {
		case "left", "h":
			f.icon = (f.icon + len(iconOptions) - 1) % len(iconOptions)
		case "right", "l", "space":
			f.icon = (f.icon + 1) % len(iconOptions)
		}
		return f, nil
	}

	return f.updateFocused(msg)
}

func (f *AddTaskForm) moveFocus(delta int, submit bool) (*AddTaskForm, tea.Cmd) {
	next := f.focused + delta
	if next >= fieldCount {
		if submit {
			f.submit()
		}
		return f, nil
	}
	if next < 0 {
		return f, nil
	}

	f.name.Blur()
	f.minutes.Blur()
	f.focused = next

	switch f.focused {
	case fieldName:
		return f, f.name.Focus()
	case fieldMinutes:
		return f, f.minutes.Focus()
	}
	return f, nil
}

func (f *AddTaskForm) submit() {
	if strings.TrimSpace(f.name.Value()) == "" {
		f.err = "task name is required"
		f.focused = fieldName
		f.minutes.Blur()
		f.name.Focus()
		return
	}
	f.err = ""
	f.submitted = true
}

func (f *AddTaskForm) updateFocused(msg tea.Msg) (*AddTaskForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focused {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldMinutes:
		f.minutes, cmd = f.minutes.Update(msg)
	}
	return f, cmd
}

// Values returns the entered task. An estimate that is not a positive
// number falls back to defaultEstimateMinutes.
func (f *AddTaskForm) Values() (name string, icon task.Icon, minutes int) {
	minutes, err := strconv.Atoi(strings.TrimSpace(f.minutes.Value()))
	if err != nil || minutes < 1 {
		minutes = defaultEstimateMinutes
	}
	return strings.TrimSpace(f.name.Value()), iconOptions[f.icon].icon, minutes
}

func (f *AddTaskForm) Submitted() bool { return f.submitted }

func (f *AddTaskForm) Cancelled() bool { return f.cancelled }

// View renders the fields stacked vertically.
func (f *AddTaskForm) View() string {
	parts := []string{
		f.field(fieldName, "Name", f.name.View()),
		"",
		f.field(fieldIcon, "Icon", f.iconPicker()),
		"",
		f.field(fieldMinutes, "Estimated minutes", f.minutes.View()),
	}
	if f.err != "" {
		parts = append(parts, "", styles.FormErrorStyle.Render(f.err))
	}
	parts = append(parts, styles.ModalHelpStyle.Render("tab: next  ←/→: icon  enter: submit  esc: cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (f *AddTaskForm) field(idx int, label, body string) string {
	style := styles.FormFieldStyle
	if f.focused == idx {
		style = styles.FormFieldFocusedStyle
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, styles.StatLabelStyle.Render(label), body))
}

func (f *AddTaskForm) iconPicker() string {
	opts := make([]string, 0, len(iconOptions))
	for i, o := range iconOptions {
		label := styles.TaskIcon(string(o.icon)) + " " + o.label
		if i == f.icon {
			opts = append(opts, styles.ViewSelectedStyle.Render(label))
		} else {
			opts = append(opts, styles.ViewNormalStyle.Render(label))
		}
	}
	return strings.Join(opts, "  ")
}
