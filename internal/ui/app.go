package ui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/perch/internal/config"
	"github.com/five82/perch/internal/logtail"
	"github.com/five82/perch/internal/prefs"
	"github.com/five82/perch/internal/state"
	"github.com/five82/perch/internal/theme"
)

// Section is one page of the inspector.
type Section int

const (
	SectionThemes Section = iota
	SectionServers
	SectionKeyboard
	SectionNotifications
	SectionFileTransfer
	SectionGeneral
	SectionLog
)

var sections = []Section{
	SectionThemes,
	SectionServers,
	SectionKeyboard,
	SectionNotifications,
	SectionFileTransfer,
	SectionGeneral,
	SectionLog,
}

func (s Section) String() string {
	switch s {
	case SectionThemes:
		return "Themes"
	case SectionServers:
		return "Servers"
	case SectionKeyboard:
		return "Keyboard"
	case SectionNotifications:
		return "Notifications"
	case SectionFileTransfer:
		return "File transfers"
	case SectionGeneral:
		return "General"
	case SectionLog:
		return "Log"
	default:
		return ""
	}
}

func sectionNamed(name string) (Section, bool) {
	for _, s := range sections {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

const logTailLines = 200

// Options configures the UI.
type Options struct {
	Store      *state.Store
	Reload     func() // asks the reloader for a fresh load
	Prefs      prefs.Prefs
	PrefsPath  string
	ConfigPath string
	LogPath    string // tailed by the Log section; empty hides it
	Logger     *log.Logger
	PollTick   time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	store      *state.Store
	reload     func()
	prefsPath  string
	configPath string
	logPath    string
	logger     *log.Logger
	pollTick   time.Duration

	// UI state
	prefs   prefs.Prefs
	keys    keyMap
	help    help.Model
	sidebar Sidebar
	cursor  int     // highlighted sidebar entry
	open    Section // section shown in the content pane
	back    Section // section to return to when file transfers close
	width   int
	height  int
	ready   bool

	// Data state
	snapshot   state.Snapshot
	generation uint64
	logLines   []string
	logErr     error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = 250 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	reload := opts.Reload
	if reload == nil {
		reload = func() {}
	}

	return Model{
		store:      opts.Store,
		reload:     reload,
		prefsPath:  opts.PrefsPath,
		configPath: opts.ConfigPath,
		logPath:    opts.LogPath,
		logger:     logger,
		pollTick:   pollTick,
		prefs:      opts.Prefs,
		keys:       newKeyMap(config.DefaultKeyboard()),
		help:       help.New(),
		sidebar:    NewSidebar(opts.Prefs.SidebarHidden),
		open:       SectionThemes,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.logPath != "" {
		cmds = append(cmds, fetchLogCmd(m.logPath))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		if m.logPath != "" && m.open == SectionLog {
			cmds = append(cmds, fetchLogCmd(m.logPath))
		}
		cmds = append(cmds, tickCmd(m.pollTick))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case logMsg:
		m.logLines = msg.lines
		m.logErr = msg.err
		return m, nil
	}

	return m, nil
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if snap.HasConfig && snap.Generation != m.generation {
		m.generation = snap.Generation
		m.keys = newKeyMap(snap.Config.Keyboard)
	}
}

// handleKey maps keys to sidebar events, then acts on the event.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cyclePreviewTheme()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.sidebar.ToggleVisibility()
		m.prefs.SidebarHidden = m.sidebar.Hidden()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(sections)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.cursor = (m.cursor + 1) % len(sections)
		return m.dispatch(Event{Kind: EventOpen, Buffer: sections[m.cursor].String()})

	case key.Matches(msg, m.keys.Previous):
		m.cursor = (m.cursor + len(sections) - 1) % len(sections)
		return m.dispatch(Event{Kind: EventOpen, Buffer: sections[m.cursor].String()})

	case key.Matches(msg, m.keys.Open):
		return m.dispatch(m.openEvent(sections[m.cursor].String()))

	case key.Matches(msg, m.keys.Reload):
		return m.dispatch(Event{Kind: EventReloadConfigFile})

	case key.Matches(msg, m.keys.FileTransfers):
		return m.dispatch(Event{Kind: EventToggleFileTransfers})

	case key.Matches(msg, m.keys.CommandBar):
		return m.dispatch(Event{Kind: EventToggleCommandBar})
	}
	return m, nil
}

// dispatch runs ev through the sidebar and handles the intents the
// inspector understands. Pane events have no meaning here and are dropped.
func (m Model) dispatch(ev Event) (tea.Model, tea.Cmd) {
	ev = m.sidebar.Handle(ev)
	m.logger.Debug("sidebar event", "kind", ev.Kind, "buffer", ev.Buffer)

	switch ev.Kind {
	case EventOpen, EventReplace:
		if s, ok := sectionNamed(ev.Buffer); ok {
			m.open = s
		}
	case EventToggleBuffer:
		if s, ok := sectionNamed(ev.Buffer); ok {
			if s == m.open {
				m.open = m.back
			} else {
				m.back = m.open
				m.open = s
			}
		}
	case EventReloadConfigFile:
		m.reload()
	case EventToggleFileTransfers:
		if m.open == SectionFileTransfer {
			m.open = m.back
		} else {
			m.back = m.open
			m.open = SectionFileTransfer
		}
	case EventToggleCommandBar:
		m.help.ShowAll = !m.help.ShowAll
	}
	if m.open == SectionLog && m.logPath != "" {
		return m, fetchLogCmd(m.logPath)
	}
	return m, nil
}

// openEvent is what selecting buffer raises, following
// [sidebar].default_action.
func (m Model) openEvent(buffer string) Event {
	var action string
	if m.snapshot.HasConfig {
		action = m.snapshot.Config.Sidebar.DefaultAction
	}
	switch action {
	case "replace-pane":
		return Event{Kind: EventReplace, Buffer: buffer}
	case "toggle-pane":
		return Event{Kind: EventToggleBuffer, Buffer: buffer}
	default:
		return Event{Kind: EventOpen, Buffer: buffer}
	}
}

// activeTheme is the preview theme when it still exists, else the
// configured default.
func (m Model) activeTheme() theme.Theme {
	if !m.snapshot.HasConfig {
		return theme.Default()
	}
	themes := m.snapshot.Config.Themes
	if m.prefs.PreviewTheme != "" {
		if th, ok := themes.Find(m.prefs.PreviewTheme); ok {
			return th
		}
	}
	return themes.Default
}

func (m *Model) cyclePreviewTheme() {
	if !m.snapshot.HasConfig {
		return
	}
	next := m.snapshot.Config.Themes.Next(m.activeTheme())
	m.prefs.PreviewTheme = next.Name
	m.savePrefs()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs failed", "err", err)
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type logMsg struct {
	lines []string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func fetchLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Tail(path, logTailLines)
		return logMsg{lines: lines, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// program is killed.
func Run(opts Options, programOpts ...tea.ProgramOption) error {
	m := New(opts)
	programOpts = append([]tea.ProgramOption{tea.WithAltScreen()}, programOpts...)
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	return err
}
