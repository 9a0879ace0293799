package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/coin-runner/internal/core"
	"github.com/vovakirdan/coin-runner/internal/leaderboard"
	"github.com/vovakirdan/coin-runner/internal/runner"
)

// hudRows is the number of rows above the playfield.
const hudRows = 1

// Paint draws a snapshot onto the screen, scaling the canvas to fit.
// The top row holds the score, player name and speed.
func Paint(scr *core.Screen, s runner.Snapshot) {
	scr.Clear()

	w, h := scr.Width(), scr.Height()
	if w <= 0 || h <= hudRows || s.CanvasWidth <= 0 || s.CanvasHeight <= 0 {
		return
	}

	v := viewport{
		sx: float64(w) / s.CanvasWidth,
		sy: float64(h-hudRows) / s.CanvasHeight,
	}

	ground := v.row(s.GroundY)
	for y := ground; y < h; y++ {
		scr.DrawHLine(0, y, w, '░', core.ColorGray)
	}

	for _, c := range s.Coins {
		scr.DrawRect(v.rect(c.Pos.X, c.Pos.Y, c.Size, c.Size), 'o', core.ColorYellow)
	}
	for _, b := range s.Barriers {
		scr.DrawRect(v.rect(b.Pos.X, b.Pos.Y, b.Width, b.Height), '█', core.ColorRed)
	}

	p := s.Player
	scr.DrawRect(v.rect(p.X, p.Y, p.Size, p.Size), '█', core.ColorCyan)

	paintHUD(scr, s)
}

func paintHUD(scr *core.Screen, s runner.Snapshot) {
	score := fmt.Sprintf("SCORE %d", s.Score)
	scr.DrawTextColored(1, 0, score, core.ColorYellow)

	speed := fmt.Sprintf("SPEED %.1f", s.ScrollSpeed)
	scr.DrawTextColored(scr.Width()-len(speed)-1, 0, speed, core.ColorWhite)

	if name := leaderboard.DisplayName(s.PlayerName); name != "" {
		scr.DrawTextCentered(0, name)
	}
}

// viewport maps canvas units to screen cells.
type viewport struct {
	sx, sy float64
}

func (v viewport) row(y float64) int {
	return hudRows + int(math.Round(y*v.sy))
}

// rect converts a canvas box to cells. Anything visible covers at least
// one cell.
func (v viewport) rect(x, y, w, h float64) core.Rect {
	x0 := int(math.Floor(x * v.sx))
	y0 := hudRows + int(math.Floor(y*v.sy))
	x1 := int(math.Ceil((x + w) * v.sx))
	y1 := hudRows + int(math.Ceil((y+h)*v.sy))
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}
