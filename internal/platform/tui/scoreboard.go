package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/coin-runner/internal/core"
	"github.com/vovakirdan/coin-runner/internal/leaderboard"
)

const (
	tableMinHeight = 5
	nameMaxWidth   = 24
)

// ScoreTable renders leaderboard entries as a scrollable table.
type ScoreTable struct {
	table   table.Model
	entries []leaderboard.Entry
	width   int
	height  int
}

// NewScoreTable creates an empty table sized for the given area.
func NewScoreTable(width, height int) ScoreTable {
	t := ScoreTable{width: width, height: height}
	t.table = t.createTable()
	return t
}

func (t ScoreTable) createTable() table.Model {
	nameWidth := t.width - 6 - 8 - 14 - 8 // rank, score, date, cell padding
	nameWidth = core.Clamp(nameWidth, 8, nameMaxWidth)

	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Name", Width: nameWidth},
		{Title: "Score", Width: 8},
		{Title: "Date", Width: 14},
	}

	tm := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(t.height, tableMinHeight)),
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
	tm.SetStyles(s)

	return tm
}

// SetSize rebuilds the table for a new area, keeping its rows.
func (t *ScoreTable) SetSize(width, height int) {
	t.width, t.height = width, height
	t.table = t.createTable()
	t.table.SetRows(scoreRows(t.entries))
}

// SetEntries replaces the rows.
func (t *ScoreTable) SetEntries(entries []leaderboard.Entry) {
	t.entries = entries
	t.table.SetRows(scoreRows(entries))
}

// Len returns the number of rows.
func (t ScoreTable) Len() int {
	return len(t.entries)
}

// Update forwards scrolling keys to the table.
func (t ScoreTable) Update(msg tea.Msg) (ScoreTable, tea.Cmd) {
	var cmd tea.Cmd
	t.table, cmd = t.table.Update(msg)
	return t, cmd
}

// View renders the table or an empty message.
func (t ScoreTable) View() string {
	if len(t.entries) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2).
			Render("No scores recorded yet.\nFinish a run to set a high score!")
	}
	return t.table.View()
}

// scoreRows formats entries for display.
func scoreRows(entries []leaderboard.Entry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		date := ""
		if !e.CreatedAt.IsZero() {
			date = e.CreatedAt.Local().Format("Jan 02 15:04")
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			leaderboard.DisplayName(e.Name),
			fmt.Sprintf("%d", e.Score),
			date,
		}
	}
	return rows
}

// ScoreboardKeyMap defines the key bindings for the standalone scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Refresh, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// boardLoadedMsg reports the end of a synchronous leaderboard reload.
type boardLoadedMsg struct{ err error }

// ScoreboardModel is the Bubble Tea model for the standalone leaderboard.
type ScoreboardModel struct {
	board    *leaderboard.Board
	table    ScoreTable
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	err      error
	loaded   bool
	quitting bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(board *leaderboard.Board, width, height int) ScoreboardModel {
	return ScoreboardModel{
		board: board,
		table: NewScoreTable(width-4, height-8),
		help:  help.New(),
		keys:  DefaultScoreboardKeyMap(),
		width: width,
	}
}

func (m ScoreboardModel) reload() tea.Cmd {
	board := m.board
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), leaderboard.DefaultTimeout)
		defer cancel()
		return boardLoadedMsg{err: board.RefreshNow(ctx)}
	}
}

// Init loads the leaderboard.
func (m ScoreboardModel) Init() tea.Cmd {
	return m.reload()
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		m.err = msg.err
		m.loaded = true
		m.table.SetEntries(m.board.Entries())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.reload()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetSize(msg.Width-4, msg.Height-8)
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("HIGH SCORES - top %d", m.board.Limit())
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(dimStyle.Render("  loading..."))
	default:
		b.WriteString(panelStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("  could not reload: " + m.err.Error()))
		b.WriteString("\n")
	} else if updated := m.board.Updated(); !updated.IsZero() {
		b.WriteString(dimStyle.Render("  updated " + updated.Local().Format("15:04:05")))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunScoreboard shows the leaderboard until the user quits.
func RunScoreboard(board *leaderboard.Board, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(board, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// centerText pads s so it is centered in width columns.
func centerText(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)
