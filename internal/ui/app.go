package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tracepanel/internal/prefs"
	"github.com/five82/tracepanel/internal/tracelog"
	"github.com/five82/tracepanel/internal/widgets"
)

// View represents the current active view.
type View int

const (
	ViewLogs View = iota
	ViewWidgets
)

func (v View) String() string {
	if v == ViewWidgets {
		return "widgets"
	}
	return "logs"
}

// ParseView maps a view name to a View. Unknown names select the logs view.
func ParseView(name string) View {
	if strings.EqualFold(strings.TrimSpace(name), "widgets") {
		return ViewWidgets
	}
	return ViewLogs
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Log       *tracelog.Log
	Collector *tracelog.Collector
	PollTick  time.Duration
	ThemeName string
	View      string
	PrefsPath string
	// Logger receives widget events. Defaults to slog.Default().
	Logger *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	log       *tracelog.Log
	collector *tracelog.Collector
	logger    *slog.Logger
	prefsPath string
	pollTick  time.Duration
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	lastTick    time.Time

	// Log state
	logViewport viewport.Model
	logState    logState

	// Widgets state
	widgets widgetsState

	// Help overlay
	showHelp bool

	// Modal dialog; nil when closed.
	modal Modal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultPollTick
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = DefaultThemeName
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := Model{
		ctx:         ctx,
		log:         opts.Log,
		collector:   opts.Collector,
		logger:      logger,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ParseView(opts.View),
	}
	m.initLogState()
	m.initWidgets()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.pollTick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initLogViewport()
		}
		m.ready = true
		m.logState.contentVersion++
		m.updateLogViewport()
		m.resizeWidgets()
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		m.lastTick = now
		m.drainLog(now)
		return m, tickCmd(m.pollTick)

	case filtersAppliedMsg:
		m.applyFilter(msg.filter)
		return m, nil

	case widgets.ChangedMsg:
		m.onWidgetChanged(msg.ID)
		return m, nil

	case widgets.SelectedMsg:
		m.logger.Info("service selected", "widget", msg.ID, "id", msg.ItemID)
		return m, nil
	}

	// Cursor blinks and other input plumbing go to whatever owns the cursor.
	var cmd tea.Cmd
	switch {
	case m.modal != nil:
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)
	case m.currentView == ViewLogs && m.logState.searchActive:
		m.logState.searchInput, cmd = m.logState.searchInput.Update(msg)
	case m.currentView == ViewWidgets:
		cmd = m.updateFocusedWidget(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// capturing reports whether a text field in the current view owns the keyboard.
func (m Model) capturing() bool {
	switch m.currentView {
	case ViewLogs:
		return m.logState.searchActive
	case ViewWidgets:
		return m.widgets.capturing()
	}
	return false
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if !m.capturing() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil

		case key.Matches(msg, m.keys.CycleTheme):
			m.setTheme(GetTheme(NextTheme(m.theme.Name)))
			m.savePrefs()
			return m, nil

		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
			m.switchView()
			m.savePrefs()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewLogs:
		cmd = m.handleLogsKey(msg)
	case ViewWidgets:
		cmd = m.handleWidgetsKey(msg)
	}
	return m, cmd
}

// switchView toggles between the two views.
func (m *Model) switchView() {
	if m.currentView == ViewLogs {
		m.currentView = ViewWidgets
		return
	}
	m.currentView = ViewLogs
	m.updateLogViewport()
}

// setTheme installs theme and re-renders everything that caches colors.
func (m *Model) setTheme(theme Theme) {
	m.theme = theme
	m.applyWidgetStyles()
	m.logState.contentVersion++
	m.updateLogViewport()
}

// savePrefs persists the theme and view. Failures are logged and otherwise ignored.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, View: m.currentView.String()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save preferences failed", "path", m.prefsPath, "error", err)
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewWidgets:
		return m.renderWidgets()
	default:
		return m.renderLogs()
	}
}

// Messages

type tickMsg time.Time

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until it exits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, progOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
