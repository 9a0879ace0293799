package runner

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/coin-runner/internal/config"
	"github.com/vovakirdan/coin-runner/internal/core"
)

// Source yields uniformly distributed numbers in [0, 1).
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded pseudo-random source. A zero seed is replaced
// with the current time.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// scroll moves every entity left by speed and drops those that reached their
// retirement margin. It filters in place, so s must own its slices.
func scroll(cfg *config.RunnerConfig, s *RunState) {
	speed := s.Difficulty.ScrollSpeed

	barriers := s.Barriers[:0]
	for _, b := range s.Barriers {
		b.Pos.X -= speed
		if b.Pos.X > cfg.Barriers.RetireX {
			barriers = append(barriers, b)
		}
	}
	s.Barriers = barriers

	coins := s.Coins[:0]
	for _, c := range s.Coins {
		c.Pos.X -= speed
		if c.Pos.X > cfg.Coins.RetireX {
			coins = append(coins, c)
		}
	}
	s.Coins = coins
}

// spawn rolls for a new barrier, then for a new coin, at the right edge.
// The barrier roll happens before the coin roll so a seeded source yields a
// reproducible sequence.
func spawn(cfg *config.RunnerConfig, src Source, s *RunState) {
	if src.Float64() < cfg.Barriers.SpawnChance {
		s.Barriers = append(s.Barriers, NewBarrier(cfg, src.Float64(), s.Difficulty.ElapsedMs))
	}

	roll := src.Float64()
	if roll < cfg.Coins.SpawnChance || len(s.Coins) < cfg.Coins.MinActive {
		s.Coins = append(s.Coins, NewCoin(cfg, src.Float64()))
	}
}

// BarrierHeight returns the height for a barrier given a roll in [0, 1).
func BarrierHeight(cfg *config.RunnerConfig, roll, elapsedMs float64) float64 {
	roll = core.ClampF(roll, 0, 1)
	return cfg.Barriers.BaseHeight + roll*cfg.Barriers.HeightRange*DifficultyFactor(cfg, elapsedMs)
}

// NewBarrier creates a barrier at the right edge standing on the floor.
func NewBarrier(cfg *config.RunnerConfig, roll, elapsedMs float64) Barrier {
	height := BarrierHeight(cfg, roll, elapsedMs)
	return Barrier{
		Pos:    core.Vec2{X: cfg.Canvas.Width, Y: cfg.GroundY() - height},
		Width:  cfg.Barriers.Width,
		Height: height,
	}
}

// NewCoin creates a coin at the right edge, floating between FloorGap and
// FloorGap+Jitter above the floor.
func NewCoin(cfg *config.RunnerConfig, roll float64) Coin {
	roll = core.ClampF(roll, 0, 1)
	return Coin{
		Pos:  core.Vec2{X: cfg.Canvas.Width, Y: cfg.GroundY() - cfg.Coins.FloorGap - roll*cfg.Coins.Jitter},
		Size: cfg.Coins.Size,
	}
}
