package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bs-replay/internal/core"
	"github.com/vovakirdan/bs-replay/internal/storage"
)

// maxHistory is the number of playbacks loaded into the history table.
const maxHistory = 100

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing past playbacks.
type HistoryModel struct {
	plays    []storage.PlayRecord
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a history browser over the given records.
func NewHistoryModel(plays []storage.PlayRecord, width, height int) HistoryModel {
	m := HistoryModel{
		plays:  plays,
		help:   help.New(),
		keys:   DefaultHistoryKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// HistoryRows converts playback records to table rows.
func HistoryRows(plays []storage.PlayRecord) []table.Row {
	rows := make([]table.Row, len(plays))
	for i, p := range plays {
		done := "-"
		if p.Completed {
			done = "yes"
		}
		rows[i] = table.Row{
			filepath.Base(p.Path),
			fmt.Sprintf("%dx%d", p.Width, p.Height),
			fmt.Sprintf("%d", p.Snakes),
			fmt.Sprintf("%d", p.Frames),
			p.Source,
			done,
			p.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Replay", Width: 20},
		{Title: "Board", Width: 7},
		{Title: "Snakes", Width: 6},
		{Title: "Frames", Width: 6},
		{Title: "Via", Width: 6},
		{Title: "Done", Width: 4},
		{Title: "Date", Width: 12},
	}

	// Give any spare width to the replay name
	spare := m.width - 4 - 75
	if spare > 0 {
		columns[0].Width += core.Min(spare, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-6, 5)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *HistoryModel) updateTableRows() {
	m.table.SetRows(HistoryRows(m.plays))
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("REPLAY HISTORY"))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.plays) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No replays played yet.\nRun bsreplay play <file> to watch one!")))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunHistory runs the history screen.
func RunHistory(store *storage.Store, width, height int) error {
	plays, err := store.RecentPlays(maxHistory)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		NewHistoryModel(plays, width, height),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}
