package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bs-replay/internal/config"
	"github.com/vovakirdan/bs-replay/internal/core"
	"github.com/vovakirdan/bs-replay/internal/registry"
	"github.com/vovakirdan/bs-replay/internal/replay"
	"github.com/vovakirdan/bs-replay/internal/scene"
	"github.com/vovakirdan/bs-replay/internal/storage"
)

// chromeHeight is the number of rows below the board: status, progress and help.
const chromeHeight = 3

// Options configures a replay viewer.
type Options struct {
	Game   *replay.Game
	Path   string // Replay file, recorded in history
	Source string // "play" or "serve"
	Config config.Config
	Store  *storage.Store // Optional
	Logger *log.Logger
	Width  int
	Height int
}

// Model is the Bubble Tea model for watching a replay.
type Model struct {
	engine   *scene.Engine
	game     *replay.Game
	path     string
	views    []registry.ViewInfo
	viewIdx  int
	view     registry.View
	screen   *core.Screen
	styles   styleCache
	keys     KeyMap
	help     help.Model
	progress progress.Model
	store    *storage.Store
	logger   *log.Logger
	tickRate int
	width    int
	height   int
	playID   int64
	recorded *bool // Completion already stored; shared across model copies
	quitting bool
}

// NewModel creates a replay viewer and records the playback in history.
func NewModel(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	views := registry.List()
	viewIdx := 0
	for i, v := range views {
		if v.ID == opts.Config.Playback.View {
			viewIdx = i
		}
	}
	if len(views) == 0 {
		return Model{}, fmt.Errorf("tui: no views registered")
	}
	view, err := registry.Create(views[viewIdx].ID)
	if err != nil {
		return Model{}, err
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		rc := core.DefaultConfig()
		width, height = rc.ScreenW, rc.ScreenH
	}

	m := Model{
		engine:   scene.NewEngine(opts.Game, opts.Config, logger),
		game:     opts.Game,
		path:     opts.Path,
		views:    views,
		viewIdx:  viewIdx,
		view:     view,
		screen:   core.NewScreen(width, core.Max(height-chromeHeight, 1)),
		styles:   styleCache{},
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		store:    opts.Store,
		logger:   logger,
		tickRate: opts.Config.Playback.TickRate,
		width:    width,
		height:   height,
		recorded: new(bool),
	}
	m.progress.Width = core.Max(width-4, 10)
	m.help.Width = width

	if m.store != nil {
		id, err := m.store.SavePlay(storage.PlayRecord{
			Path:    opts.Path,
			Width:   opts.Game.Board.Width,
			Height:  opts.Game.Board.Height,
			Snakes:  len(opts.Game.Snakes),
			Frames:  len(opts.Game.Frames),
			Dropped: opts.Game.Dropped,
			Mode:    string(opts.Config.Playback.Mode),
			Source:  opts.Source,
		})
		if err != nil {
			logger.Warn("could not record playback", "error", err)
		}
		m.playID = id
	}

	return m, nil
}

// Init starts playback and the tick loop.
func (m Model) Init() tea.Cmd {
	m.engine.Start()
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if !m.engine.Finished() {
			m.logger.Info("replay abandoned", "path", m.path, "frame", m.engine.Player().Issued())
		}
		m.engine.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		paused := m.engine.TogglePause()
		m.logger.Debug("pause toggled", "paused", paused)

	case key.Matches(msg, m.keys.Faster):
		m.engine.SetSpeed(m.engine.Speed() * speedStep)

	case key.Matches(msg, m.keys.Slower):
		m.engine.SetSpeed(m.engine.Speed() / speedStep)

	case key.Matches(msg, m.keys.Restart):
		m.engine.Restart()

	case key.Matches(msg, m.keys.View):
		m.viewIdx = (m.viewIdx + 1) % len(m.views)
		if v, err := registry.Create(m.views[m.viewIdx].ID); err == nil {
			m.view = v
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.screen.Resize(msg.Width, core.Max(msg.Height-chromeHeight, 1))
	m.progress.Width = core.Max(msg.Width-4, 10)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the animations.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.engine.Tick(now)

	if m.engine.Finished() && !*m.recorded {
		*m.recorded = true
		m.logger.Info("replay finished", "path", m.path, "elapsed", m.engine.Elapsed())
		if m.store != nil && m.playID != 0 {
			if err := m.store.MarkCompleted(m.playID); err != nil {
				m.logger.Warn("could not record completion", "error", err)
			}
		}
	}

	return m, tickCmd(m.tickRate)
}

var (
	statusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.view.Draw(m.screen, registry.Scene{
		Graph:    m.engine.Graph(),
		Board:    m.engine.World().Board(),
		Geometry: m.engine.Config().Geometry,
	})

	var b strings.Builder
	b.WriteString(renderScreen(m.screen, m.styles))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n ")
	b.WriteString(m.progress.ViewAs(m.engine.Player().Progress()))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// statusLine summarises playback state.
func (m Model) statusLine() string {
	p := m.engine.Player()
	state := "playing"
	switch {
	case m.engine.Paused():
		state = pausedStyle.Render("PAUSED")
	case p.Finished():
		state = "finished"
	case !m.engine.World().Ready():
		state = "setting up"
	}

	name := filepath.Base(m.path)
	if m.path == "" {
		name = "replay"
	}

	return fmt.Sprintf(" %s  %s  %s",
		statusStyle.Render(name),
		state,
		mutedStyle.Render(fmt.Sprintf("frame %d/%d  %gx  %s", p.Issued(), p.Total(), m.engine.Speed(), m.view.Title())),
	)
}

// Engine returns the playback engine.
func (m Model) Engine() *scene.Engine {
	return m.engine
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithOutput(os.Stdout),
	)

	_, err = p.Run()
	return err
}
