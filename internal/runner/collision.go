package runner

import (
	"github.com/vovakirdan/coin-runner/internal/config"
	"github.com/vovakirdan/coin-runner/internal/core"
)

// CoinPicked reports whether the coin lies within the pickup tolerance of the
// player's top-left corner on both axes.
func CoinPicked(cfg *config.RunnerConfig, p PlayerState, c Coin) bool {
	tol := cfg.Coins.PickupTolerance
	return core.Abs(c.Pos.X-p.Pos.X) < tol && core.Abs(c.Pos.Y-p.Pos.Y) < tol
}

// collectCoins removes every coin the player touches and adds one point per
// coin. It filters in place and returns the number collected.
func collectCoins(cfg *config.RunnerConfig, s *RunState) int {
	kept := s.Coins[:0]
	collected := 0
	for _, c := range s.Coins {
		if CoinPicked(cfg, s.Player, c) {
			collected++
			continue
		}
		kept = append(kept, c)
	}
	s.Coins = kept
	s.Difficulty.Score += collected
	return collected
}

// HitBarrier returns the index of the first barrier overlapping the player's
// hit-box, or -1.
func HitBarrier(cfg *config.RunnerConfig, p PlayerState, barriers []Barrier) int {
	box := HitBox(cfg, p)
	for i, b := range barriers {
		if box.Overlaps(b.Box()) {
			return i
		}
	}
	return -1
}
