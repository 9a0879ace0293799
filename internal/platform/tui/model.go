package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/coin-runner/internal/core"
	"github.com/vovakirdan/coin-runner/internal/leaderboard"
	"github.com/vovakirdan/coin-runner/internal/runner"
)

// Publisher receives every frame of a run, e.g. a spectator hub.
type Publisher interface {
	Publish(runner.Snapshot)
	PublishGameOver(runner.Result, []leaderboard.Entry)
}

type view int

const (
	viewName view = iota
	viewPlaying
	viewGameOver
)

// nameMaxLen bounds the name entry field.
const nameMaxLen = 32

// Model is the Bubble Tea model hosting one engine.
type Model struct {
	engine *runner.Engine
	board  *leaderboard.Board
	pub    Publisher
	config core.RuntimeConfig

	keys   KeyMap
	help   help.Model
	input  textinput.Model
	scores ScoreTable
	screen *core.Screen

	view     view
	lastTick time.Time
	result   runner.Result
	message  string
	quitting bool
}

// NewModel creates a model for the engine. board and pub may be nil.
// name pre-fills the name entry field.
func NewModel(engine *runner.Engine, board *leaderboard.Board, pub Publisher, cfg core.RuntimeConfig, name string) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	input := textinput.New()
	input.Placeholder = "@handle"
	input.CharLimit = nameMaxLen
	input.Width = nameMaxLen
	input.SetValue(name)
	input.Focus()

	m := Model{
		engine: engine,
		board:  board,
		pub:    pub,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  input,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH-1),
	}
	m.scores = NewScoreTable(cfg.ScreenW, m.tableHeight())
	m.loadScores()
	return m
}

// Init starts cursor blinking and leaderboard polling.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, boardCmd())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if m.view != viewPlaying {
			return m, nil
		}
		return m.handleTick(time.Time(msg))

	case BoardMsg:
		m.loadScores()
		return m, boardCmd()

	case tea.KeyMsg:
		switch m.view {
		case viewName:
			return m.updateName(msg)
		case viewPlaying:
			return m.updatePlaying(msg)
		case viewGameOver:
			return m.updateGameOver(msg)
		}
	}

	if m.view == viewName {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height-1)
	m.scores.SetSize(msg.Width, m.tableHeight())
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.quit()
	case tea.KeyEnter:
		return m.start()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.message = ""
	return m, cmd
}

func (m Model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Shot) {
		m.saveScreenshot()
		return m, nil
	}

	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		return m.quit()
	case core.ActionJump:
		m.engine.RequestJump()
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Shot) {
		m.saveScreenshot()
		return m, nil
	}
	if key.Matches(msg, m.keys.Up) || key.Matches(msg, m.keys.Down) {
		var cmd tea.Cmd
		m.scores, cmd = m.scores.Update(msg)
		return m, cmd
	}

	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		return m.quit()
	case core.ActionRestart:
		if err := m.engine.Reset(); err != nil {
			m.message = err.Error()
			return m, nil
		}
		return m.play()
	case core.ActionBack:
		m.view = viewName
		m.input.Focus()
		return m, textinput.Blink
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// start begins a run with the entered name.
func (m Model) start() (tea.Model, tea.Cmd) {
	if err := m.engine.Start(m.input.Value()); err != nil {
		if errors.Is(err, runner.ErrBlankName) {
			m.message = "Enter a name to start."
		} else {
			m.message = err.Error()
		}
		return m, nil
	}
	m.input.Blur()
	return m.play()
}

func (m Model) play() (tea.Model, tea.Cmd) {
	m.view = viewPlaying
	m.message = ""
	m.lastTick = time.Time{}
	return m, tickCmd(m.config.TickRate)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.engine.Stop()
	m.quitting = true
	return m, tea.Quit
}

// handleTick advances the engine by the wall time since the previous tick.
// Scheduling stops as soon as the engine says so.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	delta := 1000.0 / float64(m.config.TickRate)
	if !m.lastTick.IsZero() {
		delta = float64(now.Sub(m.lastTick)) / float64(time.Millisecond)
	}
	m.lastTick = now

	res := m.engine.Tick(delta)
	if m.pub != nil {
		m.pub.Publish(m.engine.Snapshot())
	}

	if res.GameOver != nil {
		m.result = *res.GameOver
		m.view = viewGameOver
		if m.pub != nil {
			m.pub.PublishGameOver(m.result, m.entries())
		}
		return m, nil
	}
	if !res.Continue {
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) loadScores() {
	m.scores.SetEntries(m.entries())
}

func (m Model) entries() []leaderboard.Entry {
	if m.board == nil {
		return nil
	}
	return m.board.Entries()
}

func (m Model) tableHeight() int {
	return max(m.config.ScreenH-14, tableMinHeight)
}

// saveScreenshot saves the current playfield as plain text.
func (m *Model) saveScreenshot() {
	Paint(m.screen, m.engine.Snapshot())

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".runner", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("runner_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewPlaying:
		Paint(m.screen, m.engine.Snapshot())
		return RenderScreen(m.screen) + "\n" + dimStyle.Render(m.help.View(m.keys))
	case viewGameOver:
		return m.viewGameOver()
	default:
		return m.viewName()
	}
}

func (m Model) viewName() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("C O I N   R U N N E R"))
	b.WriteString("\n\n")
	b.WriteString("Jump barriers, grab coins. Two jumps before you land.\n\n")
	b.WriteString("Name: ")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(errorStyle.Render(m.message))
	}
	b.WriteString("\n\n")

	if m.board != nil {
		b.WriteString(panelStyle.Render(m.scores.View()))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("enter: start • esc: quit"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) viewGameOver() string {
	var b strings.Builder

	b.WriteString(errorStyle.Bold(true).Render("G A M E   O V E R"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s scored %d in %.1fs\n",
		leaderboard.DisplayName(m.result.Name), m.result.Score, m.result.ElapsedMs/1000)
	if m.message != "" {
		b.WriteString(errorStyle.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.board != nil {
		if err := m.board.Err(); err != nil {
			b.WriteString(dimStyle.Render("leaderboard may be stale: " + err.Error()))
			b.WriteString("\n")
		}
		b.WriteString(panelStyle.Render(m.scores.View()))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// Result returns the most recent finished run, if any.
func (m Model) Result() (runner.Result, bool) {
	return m.engine.LastResult()
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(engine *runner.Engine, board *leaderboard.Board, pub Publisher, cfg core.RuntimeConfig, name string) error {
	p := tea.NewProgram(
		NewModel(engine, board, pub, cfg, name),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	engine.Stop()
	return err
}
