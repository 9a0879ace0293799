// Package tui provides the Bubble Tea host for the runner. It owns the
// terminal loop, maps keys to engine commands and paints snapshots.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// BoardMsg is sent to re-read the cached leaderboard.
type BoardMsg time.Time

// boardPollInterval is how often the game over view re-reads the leaderboard.
const boardPollInterval = 500 * time.Millisecond

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func boardCmd() tea.Cmd {
	return tea.Tick(boardPollInterval, func(t time.Time) tea.Msg {
		return BoardMsg(t)
	})
}
