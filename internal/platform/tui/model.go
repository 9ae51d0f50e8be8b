package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/session"
)

// footerHeight is the number of lines below the board: status and help.
const footerHeight = 2

// Controller accepts player commands. session.Session implements it.
type Controller interface {
	Start() error
	Turn(dir snake.Direction) error
	SetSpeed(interval time.Duration) error
}

// Options configures a game screen.
type Options struct {
	Config    config.SnakeConfig
	Speed     config.SpeedPreset // starting preset, empty for the configured default
	HighScore int                // best stored score, shown in the footer
	Logger    *log.Logger
	ScreenW   int
	ScreenH   int
}

// Model is the Bubble Tea model for the game screen.
type Model struct {
	ctrl   Controller
	events EventSource
	opts   Options
	logger *log.Logger

	screen *core.Screen
	snap   snake.Snapshot
	ready  bool // a snapshot has arrived
	speed  config.SpeedPreset
	best   int
	last   *session.RunResult

	keys     KeyMap
	help     help.Model
	notice   string // transient footer message
	quitting bool
}

// NewModel creates a game screen driven by ctrl and fed by events.
func NewModel(ctrl Controller, events EventSource, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.ScreenW <= 0 || opts.ScreenH <= 0 {
		def := core.DefaultConfig()
		opts.ScreenW, opts.ScreenH = def.ScreenW, def.ScreenH
	}
	speed := opts.Speed
	if speed == "" {
		speed = opts.Config.Speed.Default
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		ctrl:   ctrl,
		events: events,
		opts:   opts,
		logger: opts.Logger,
		screen: core.NewScreen(opts.ScreenW, max(1, opts.ScreenH-footerHeight)),
		speed:  speed,
		best:   opts.HighScore,
		keys:   DefaultKeyMap(),
		help:   h,
	}
}

// Init starts listening for session events.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(1, msg.Height-footerHeight))
		m.help.Width = msg.Width
		return m, nil

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, waitForEvent(m.events)

	case ClosedMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.notice = m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.MapKey(msg)
	var err error
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionStart:
		err = m.ctrl.Start()
	case core.ActionFaster, core.ActionSlower:
		err = m.changeSpeed(action == core.ActionFaster)
	default:
		if dir, ok := directionFor(action); ok {
			err = m.ctrl.Turn(dir)
		}
	}
	if err != nil {
		m.logger.Warn("command failed", "action", action, "error", err)
		m.notice = err.Error()
	}
	return m, nil
}

// changeSpeed steps to the neighbouring preset.
func (m *Model) changeSpeed(faster bool) error {
	next := m.opts.Config.StepSpeed(m.speed, faster)
	if next == m.speed {
		return nil
	}
	interval, err := m.opts.Config.Interval(next)
	if err != nil {
		return err
	}
	if err := m.ctrl.SetSpeed(interval); err != nil {
		return err
	}
	m.speed = next
	m.notice = fmt.Sprintf("speed: %s", next)
	return nil
}

func (m *Model) handleEvent(evt session.Event) {
	switch e := evt.(type) {
	case session.SnapshotEvent:
		m.snap = e.Snapshot
		m.ready = true
		if e.Snapshot.State == snake.StateRunning {
			m.notice = ""
		}
	case session.RunEndedEvent:
		result := e.Result
		m.last = &result
		if result.Score > m.best {
			m.best = result.Score
			m.notice = "New high score!"
		}
	}
}

// saveScreenshot writes the current board as plain text and returns a notice.
func (m *Model) saveScreenshot() string {
	snake.Render(m.snap, m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "screenshot failed"
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return "screenshot failed"
	}

	name := fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return "screenshot failed"
	}
	m.logger.Info("screenshot saved", "path", path)
	return "saved " + name
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Connecting to game..."
	}

	snake.Render(m.snap, m.screen)
	board := RenderScreen(m.screen)

	status := statusStyle.Render(fmt.Sprintf(" speed %s  best %d  round %d", m.speed, m.best, m.snap.Round))
	if m.last != nil && m.snap.State.Terminal() {
		status += statusStyle.Render(fmt.Sprintf("  last run %d rounds in %s", m.last.Rounds, m.last.Duration.Round(time.Second)))
	}
	if m.notice != "" {
		status += "  " + noticeStyle.Render(m.notice)
	}

	return board + "\n" + status + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for the game screen.
func Run(ctrl Controller, events EventSource, opts Options) error {
	p := tea.NewProgram(
		NewModel(ctrl, events, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
