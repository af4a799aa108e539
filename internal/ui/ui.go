package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"milestone/internal/api"
	"milestone/internal/caldate"
	"milestone/internal/calendar"
	"milestone/internal/config"
	"milestone/internal/refresh"
)

type route int

const (
	routeCalendar route = iota
	routeDay
	routeChat
)

type tasksLoadedMsg struct {
	tasks []api.Task
	keep  bool
}

type Model struct {
	ctx    context.Context
	keys   config.Keymap
	deps   Deps
	logger *log.Logger
	banner *banner

	route   route
	tasks   []api.Task
	loading bool

	cal       calendarView
	container viewport.Model
	day       dayView
	dialog    Dialog
	sending   bool
	spinner   spinner.Model
	width     int
	height    int

	chat        *chatView
	chatSession int
}

// New builds the root model. Missing capabilities fall back to the
// terminal defaults: route messages, tea.Tick, a status banner and the
// transcript dialog.
func New(ctx context.Context, cfg config.Config, deps Deps) *Model {
	if deps.Clock == nil {
		deps.Clock = caldate.SystemClock{}
	}
	if deps.Navigator == nil {
		deps.Navigator = routeNavigator{}
	}
	if deps.Reloader == nil {
		deps.Reloader = pageReloader{}
	}
	if deps.Scheduler == nil {
		deps.Scheduler = tickScheduler{}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	b := &banner{}
	if deps.Alerter == nil {
		deps.Alerter = b
	}
	if deps.Dialog == nil {
		deps.Dialog = newTranscriptDialog(dialogWidth)
	}

	m := &Model{
		ctx:       ctx,
		keys:      cfg.Keys,
		deps:      deps,
		logger:    deps.Logger,
		banner:    b,
		route:     routeCalendar,
		cal:       newCalendarView(deps.Clock, deps.Icons),
		container: viewport.New(80, 20),
		dialog:    deps.Dialog,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.cal.render(&m.container, m.cal.year, m.cal.month, nil)
	return m
}

// Run starts the program and blocks until it exits.
func Run(ctx context.Context, cfg config.Config, deps Deps) error {
	if deps.Service == nil {
		return errors.New("ui: no task service")
	}
	if deps.Icons == nil {
		deps.Icons = IconsFor(cfg.Icons)
	}
	m := New(ctx, cfg, deps)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	r, err := refresh.New(cfg.RefreshCron, func() { program.Send(RefreshMsg{}) }, m.logger)
	if err != nil {
		return err
	}
	r.Start()
	defer r.Stop()

	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(false), m.spinner.Tick)
}

// load fetches the snapshot. With keep, pending checkboxes survive it.
func (m *Model) load(keep bool) tea.Cmd {
	m.loading = true
	ctx, svc, logger := m.ctx, m.deps.Service, m.logger
	return func() tea.Msg {
		return tasksLoadedMsg{tasks: calendar.FetchTasks(ctx, svc, logger), keep: keep}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tasksLoadedMsg:
		m.loading = false
		m.tasks = msg.tasks
		m.cal.render(&m.container, m.cal.year, m.cal.month, m.tasks)
		if m.route == routeDay {
			m.day.sync(m.tasks, msg.keep)
		}
	case NavigateMsg:
		return m, m.navigate(msg.Path)
	case ReloadMsg:
		return m, m.reload()
	case reloadDueMsg:
		return m, m.deps.Reloader.Reload()
	case RefreshMsg:
		if m.loading {
			return m, nil
		}
		return m, m.load(true)
	case describedMsg:
		return m, m.handleDescribed(msg)
	case validatedMsg:
		return m, m.handleValidated(msg)
	case chatRepliedMsg:
		m.handleChatReply(msg)
	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn("copy transcript failed", "err", msg.err)
			m.deps.Alerter.Alert(fmt.Sprintf("Copy failed: %v", msg.err))
		} else {
			m.deps.Alerter.Alert("Transcript copied")
		}
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// navigate switches routes. Every route change is a fresh page: the dialog
// and chat are dropped, the calendar returns to the current month and the
// snapshot is refetched.
func (m *Model) navigate(path string) tea.Cmd {
	m.closeDialog()
	m.chat = nil
	switch {
	case path == "/":
		m.route = routeCalendar
		m.resetCalendar()
		return m.load(false)
	case path == ChatPath:
		m.route = routeChat
		m.openChat()
		return nil
	case strings.HasPrefix(path, "/tasks/date/"):
		date, err := caldate.Parse(strings.TrimPrefix(path, "/tasks/date/"))
		if err != nil {
			m.logger.Warn("bad day route", "path", path, "err", err)
			m.deps.Alerter.Alert(alertInvalidDate)
			return m.deps.Navigator.Navigate("/")
		}
		m.route = routeDay
		m.day = newDayView(date, m.tasks)
		return m.load(false)
	default:
		m.logger.Warn("unknown route", "path", path)
		return m.deps.Navigator.Navigate("/")
	}
}

func (m *Model) reload() tea.Cmd {
	m.closeDialog()
	m.banner.clear()
	switch m.route {
	case routeCalendar:
		m.resetCalendar()
	case routeChat:
		m.openChat()
	}
	return m.load(false)
}

func (m *Model) resetCalendar() {
	m.cal = newCalendarView(m.deps.Clock, m.deps.Icons)
	m.cal.render(&m.container, m.cal.year, m.cal.month, m.tasks)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.container.Width = width
	if h := height - 4; h > 0 {
		m.container.Height = h
	}
	m.dialog.SetWidth(width)
	if m.chat != nil {
		m.chat.pane.setWidth(width)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if _, open := m.activeDialog(); open {
		return m.updateDialog(key, msg)
	}
	if m.route == routeChat && m.chat != nil {
		return m.updateChat(key, msg)
	}
	switch key {
	case m.keys.Quit:
		return m, tea.Quit
	case m.keys.Refresh:
		return m, m.deps.Reloader.Reload()
	}
	if m.route == routeDay {
		return m.updateDay(key)
	}
	return m.updateCalendar(key)
}

func (m *Model) updateCalendar(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.keys.Left, "left":
		m.cal.move(&m.container, m.tasks, -1)
	case m.keys.Right, "right":
		m.cal.move(&m.container, m.tasks, 1)
	case m.keys.Up, "up":
		m.cal.move(&m.container, m.tasks, -7)
	case m.keys.Down, "down":
		m.cal.move(&m.container, m.tasks, 7)
	case m.keys.PrevMonth:
		m.cal.prev(&m.container, m.tasks)
	case m.keys.NextMonth:
		m.cal.next(&m.container, m.tasks)
	case m.keys.Today:
		return m, m.deps.Navigator.Navigate(calendar.DayPath(caldate.Today(m.deps.Clock)))
	case m.keys.Open:
		return m, m.deps.Navigator.Navigate(calendar.DayPath(m.cal.selected()))
	case m.keys.Chat:
		return m, m.deps.Navigator.Navigate(ChatPath)
	}
	return m, nil
}

func (m *Model) updateDay(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.keys.Up, "up":
		m.day.cursor = clampCursor(m.day.cursor-1, len(m.day.tasks))
	case m.keys.Down, "down":
		m.day.cursor = clampCursor(m.day.cursor+1, len(m.day.tasks))
	case m.keys.Toggle:
		return m, m.toggle()
	case m.keys.Back, m.keys.Close:
		return m, m.deps.Navigator.Navigate("/")
	}
	return m, nil
}

func (m *Model) updateDialog(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.keys.Close:
		m.closeDialog()
		return m, nil
	case m.keys.Send:
		return m, m.submit()
	case m.keys.Copy:
		return m, copyCmd(m.dialog.Transcript())
	}
	return m, m.dialog.Update(msg)
}

func (m *Model) View() string {
	var b strings.Builder
	spin := m.spinner.View()
	switch {
	case m.route == routeChat && m.chat != nil:
		b.WriteString(replaceIcons(m.deps.Icons, m.chat.view(m.keys, spin)))
	case m.route == routeDay:
		b.WriteString(replaceIcons(m.deps.Icons, m.day.view(spin)))
	default:
		b.WriteString(m.container.View())
	}
	if _, open := m.activeDialog(); open {
		b.WriteString("\n")
		b.WriteString(replaceIcons(m.deps.Icons, m.dialog.View(m.keys, spin, m.sending)))
	}
	b.WriteString("\n")
	if m.loading {
		b.WriteString(spin + " loading tasks\n")
	}
	if m.banner.text != "" {
		b.WriteString(alertStyle.Render(m.banner.text))
		b.WriteString("\n")
	}
	b.WriteString(renderHelp(m.keys, m.route))
	return b.String()
}

func renderHelp(k config.Keymap, r route) string {
	var help string
	switch r {
	case routeDay:
		help = fmt.Sprintf("%s/%s move • %s complete • %s back • %s reload • %s quit",
			k.Up, k.Down, "space", k.Back, k.Refresh, k.Quit)
	case routeChat:
		help = "ctrl+c quit"
	default:
		help = fmt.Sprintf("%s/%s/%s/%s move • %s/%s month • %s today • %s open • %s chat • %s reload • %s quit",
			k.Left, k.Down, k.Up, k.Right, k.PrevMonth, k.NextMonth, k.Today, k.Open, k.Chat, k.Refresh, k.Quit)
	}
	return helpStyle.Render(help)
}
