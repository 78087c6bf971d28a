// Package tui implements the interactive task panel.
package tui

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/hay-kot/taskmon/internal/core/config"
	"github.com/hay-kot/taskmon/internal/core/eventbus"
	"github.com/hay-kot/taskmon/internal/core/notify"
	"github.com/hay-kot/taskmon/internal/core/schedule"
	"github.com/hay-kot/taskmon/internal/core/styles"
	"github.com/hay-kot/taskmon/internal/core/task"
	"github.com/hay-kot/taskmon/internal/report"
	"github.com/hay-kot/taskmon/internal/tracker"
)

// progressStep is the progress change applied by the +/- keys.
const progressStep = 10

type tab int

const (
	tabActive tab = iota
	tabAwaiting
	tabCompleted
)

var tabs = []tab{tabActive, tabAwaiting, tabCompleted}

func (t tab) String() string {
	switch t {
	case tabAwaiting:
		return "Awaiting"
	case tabCompleted:
		return "Completed"
	default:
		return "Active"
	}
}

func (t tab) filter() task.Filter {
	switch t {
	case tabAwaiting:
		return task.WithStatus(task.StatusAwaitingVerification)
	case tabCompleted:
		return task.WithStatus(task.StatusCompleted)
	default:
		return task.WithStatus(task.StatusActive, task.StatusPaused)
	}
}

type modelState int

const (
	stateNormal modelState = iota
	stateAdding
)

type (
	refreshTickMsg time.Time
	exportDoneMsg  struct {
		path  string
		tasks int
		err   error
	}
)

// Options wires the panel to the tracker.
type Options struct {
	Service *tracker.Service
	Runner  *tracker.Runner
	Bus     *eventbus.EventBus
	Config  *config.Config
	History notify.Store
	Clock   schedule.Clock
	Log     zerolog.Logger
}

// Model is the bubbletea model for the task panel.
type Model struct {
	svc     *tracker.Service
	runner  *tracker.Runner
	bus     *eventbus.EventBus
	cfg     *config.Config
	history notify.Store
	clock   schedule.Clock
	log     zerolog.Logger

	keys KeyMap
	help help.Model

	state modelState
	form  *AddTaskForm

	tab    tab
	cursor int
	rows   []task.Task
	counts map[tab]int
	stats  task.Stats

	toastController *ToastController
	toastView       *ToastView
	notifications   *NotificationBuffer

	width    int
	height   int
	quitting bool
}

// New builds the model and subscribes it to published notifications.
func New(opts Options) Model {
	clock := opts.Clock
	if clock == nil {
		clock = schedule.SystemClock{}
	}
	history := opts.History
	if history == nil {
		history = notify.NewHistory(opts.Config.Notifications.History)
	}

	h := help.New()
	h.Styles.ShortKey = styles.HelpStyle
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.ShortSeparator = styles.HelpStyle
	h.ShortSeparator = " • "

	toasts := NewToastController(defaultToastTTL, defaultMaxToasts)
	buffer := NewNotificationBuffer(clock.Now)
	if opts.Bus != nil {
		buffer.Attach(opts.Bus)
	}

	m := Model{
		svc:             opts.Service,
		runner:          opts.Runner,
		bus:             opts.Bus,
		cfg:             opts.Config,
		history:         history,
		clock:           clock,
		log:             opts.Log,
		keys:            DefaultKeyMap(),
		help:            h,
		toastController: toasts,
		toastView:       NewToastView(toasts),
		notifications:   buffer,
	}
	m.reload()
	return m
}

func (m Model) refreshInterval() time.Duration {
	if d := m.cfg.TUI.RefreshEvery.Std(); d > 0 {
		return d
	}
	return time.Second
}

func (m Model) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.refreshInterval(), func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// Init starts the repaint ticker and the notification listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.scheduleRefresh(), m.notifications.WaitForSignal())
}

// reload snapshots the store into the rows of the current tab and keeps
// the cursor in range.
func (m *Model) reload() {
	all := m.svc.Tasks()

	m.counts = make(map[tab]int, len(tabs))
	for _, t := range tabs {
		m.counts[t] = len(task.Select(all, t.filter()))
	}
	m.rows = task.Select(all, m.tab.filter())
	m.stats = m.svc.Stats()
	m.cursor = min(max(m.cursor, 0), max(len(m.rows)-1, 0))
}

func (m Model) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return task.Task{}, false
	}
	return m.rows[m.cursor], true
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case refreshTickMsg:
		m.reload()
		return m, m.scheduleRefresh()
	case drainNotificationsMsg:
		return m.handleNotifications()
	case toastTickMsg:
		return m.handleToastTick()
	case exportDoneMsg:
		return m.handleExportDone(msg)
	case tea.KeyPressMsg:
		if m.state == stateAdding {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)
	}

	if m.state == stateAdding {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) handleNotifications() (tea.Model, tea.Cmd) {
	for _, n := range m.notifications.Drain() {
		if _, err := m.history.Save(context.Background(), n); err != nil {
			m.log.Warn().Err(err).Msg("failed to record notification")
		}
		m.toastController.Push(n)
	}

	cmds := []tea.Cmd{m.notifications.WaitForSignal()}
	if m.toastController.HasToasts() && !m.toastController.Ticking() {
		m.toastController.SetTicking(true)
		cmds = append(cmds, scheduleToastTick())
	}
	m.reload()
	return m, tea.Batch(cmds...)
}

func (m Model) handleToastTick() (tea.Model, tea.Cmd) {
	m.toastController.Tick(toastTickInterval)
	if !m.toastController.HasToasts() {
		m.toastController.SetTicking(false)
		return m, nil
	}
	return m, scheduleToastTick()
}

// pushToast shows a notification that did not come through the bus.
func (m Model) pushToast(level notify.Level, title, message string) (tea.Model, tea.Cmd) {
	m.notifications.Push(notify.Notification{Level: level, Title: title, Message: message})
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Dismiss):
		m.toastController.Dismiss()
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab(1), nil
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab(-1), nil
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, max(len(m.rows)-1, 0))
		return m, nil
	case key.Matches(msg, m.keys.Add):
		m.state = stateAdding
		m.form = NewAddTaskForm()
		return m, nil
	case key.Matches(msg, m.keys.Simulation):
		return m.toggleSimulation()
	case key.Matches(msg, m.keys.Export):
		return m, m.exportReport()
	}

	return m.handleTaskKey(msg)
}

// handleTaskKey applies the per-task actions available on the current tab.
func (m Model) handleTaskKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	t, ok := m.selected()
	if !ok {
		return m, nil
	}

	var acted bool
	switch m.tab {
	case tabActive:
		switch {
		case key.Matches(msg, m.keys.Toggle):
			_, acted = m.svc.ToggleStatus(t.ID)
		case key.Matches(msg, m.keys.Complete):
			_, acted = m.svc.CompleteTask(t.ID)
		// System task progress is driven by the simulator only.
		case key.Matches(msg, m.keys.Increase) && !t.IsSystem():
			_, acted = m.svc.UpdateProgress(t.ID, t.Progress+progressStep)
		case key.Matches(msg, m.keys.Decrease) && !t.IsSystem():
			_, acted = m.svc.UpdateProgress(t.ID, t.Progress-progressStep)
		}
	case tabAwaiting:
		switch {
		case key.Matches(msg, m.keys.Verify):
			_, acted = m.svc.VerifyTask(t.ID)
		case key.Matches(msg, m.keys.Fail):
			_, acted = m.svc.MarkFailed(t.ID)
		}
	case tabCompleted:
		switch {
		case key.Matches(msg, m.keys.Read):
			_, acted = m.svc.MarkRead(t.ID)
		case key.Matches(msg, m.keys.Remove):
			_, acted = m.svc.RemoveTask(t.ID)
		}
	}

	if acted {
		m.log.Debug().Str("task_id", t.ID).Str("key", msg.String()).Msg("task action")
		m.reload()
	}
	return m, nil
}

func (m Model) switchTab(delta int) Model {
	m.tab = tabs[(int(m.tab)+delta+len(tabs))%len(tabs)]
	m.cursor = 0
	m.reload()
	return m
}

func (m Model) toggleSimulation() (tea.Model, tea.Cmd) {
	if m.runner == nil {
		return m, nil
	}
	m.runner.SetSimulationEnabled(!m.runner.SimulationEnabled())
	return m, nil
}

// exportReport writes every task to the configured reports directory off the
// update loop.
func (m Model) exportReport() tea.Cmd {
	tasks := m.svc.Tasks()
	now := m.clock.Now()
	dir := m.cfg.ReportsDir()
	format := report.Format(m.cfg.Export.Format)

	return func() tea.Msg {
		r := report.Build(tasks, report.DefaultOptions(), now)
		path, err := report.WriteFile(dir, r, format)
		return exportDoneMsg{path: path, tasks: len(r.Tasks), err: err}
	}
}

func (m Model) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("report export failed")
		return m.pushToast(notify.LevelError, "Export Failed", msg.err.Error())
	}
	m.log.Info().Str("path", msg.path).Int("tasks", msg.tasks).Msg("report exported")
	if m.bus != nil {
		m.bus.PublishReportExported(eventbus.ReportExportedPayload{Path: msg.path, Tasks: msg.tasks})
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)

	switch {
	case m.form.Cancelled():
		m.state = stateNormal
		m.form = nil
	case m.form.Submitted():
		name, icon, minutes := m.form.Values()
		created := m.svc.AddTask(name, icon, minutes)
		m.log.Debug().Str("task_id", created.ID).Msg("task added from panel")
		m.state = stateNormal
		m.form = nil
		m.tab = tabActive
		m.reload()
		m.cursor = len(m.rows) - 1
	}
	return m, cmd
}

// View renders the panel with any form and toast overlays.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	content := m.renderMain(w, h)

	if m.state == stateAdding && m.form != nil {
		modal := styles.ModalStyle.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			styles.ModalTitleStyle.Render("New Task"),
			"",
			m.form.View(),
		))
		x := max((w-lipgloss.Width(modal))/2, 0)
		y := max((h-lipgloss.Height(modal))/2, 0)
		content = lipgloss.NewCompositor(
			lipgloss.NewLayer(content),
			lipgloss.NewLayer(modal).X(x).Y(y).Z(1),
		).Render()
	}

	if m.toastController.HasToasts() {
		content = m.toastView.Overlay(content, w, h)
	}
	return content
}

func (m Model) renderMain(w, h int) string {
	enabled, total := 0, 0
	simulating := false
	if m.runner != nil {
		enabled = len(m.runner.EnabledApplications())
		total = len(m.runner.Applications())
		simulating = m.runner.SimulationRunning()
	}

	header := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.TitleStyle.Render(styles.IconMonitor+" taskmon")+"  "+renderStats(m.stats, enabled, total, simulating),
		"",
		renderTabs(m.tab, m.counts),
		styles.DividerStyle.Render(strings.Repeat("─", w)),
	)
	footer := m.help.ShortHelpView(m.keys.ShortHelp(m.tab))

	avail := h - lipgloss.Height(header) - lipgloss.Height(footer) - 1
	body := m.renderRows(w, avail)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderRows(w, avail int) string {
	if len(m.rows) == 0 {
		return lipgloss.NewStyle().Height(max(avail, 1)).Render(styles.TaskMetaStyle.Render("  No tasks."))
	}

	start, end := visibleWindow(m.cursor, len(m.rows), max(avail/rowHeight, 1))
	parts := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		parts = append(parts, renderRow(m.rows[i], w, i == m.cursor), "")
	}
	return lipgloss.NewStyle().Height(max(avail, 1)).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
