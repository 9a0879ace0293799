package runner

import (
	"math"

	"github.com/vovakirdan/coin-runner/internal/config"
)

// maxDeltaMs bounds a single tick's time step. Hosts that stall longer than
// this (suspended laptop, debugger) advance by at most one minute.
const maxDeltaMs = 60_000

// NewDifficulty returns the initial difficulty state.
func NewDifficulty(cfg *config.RunnerConfig) DifficultyState {
	return DifficultyState{
		ScrollSpeed:     cfg.Difficulty.InitialSpeed,
		NextThresholdMs: cfg.Difficulty.IntervalMs,
	}
}

// AdvanceDifficulty accumulates elapsed time and raises the scroll speed
// once for every interval boundary crossed.
//
// Boundaries are tracked with NextThresholdMs rather than a modulo test, so
// the number of increments does not depend on how time was sliced into ticks.
func AdvanceDifficulty(cfg *config.RunnerConfig, d DifficultyState, deltaMs float64) DifficultyState {
	d.ElapsedMs += sanitizeDelta(deltaMs)

	interval := cfg.Difficulty.IntervalMs
	if interval <= 0 {
		return d
	}
	for d.ElapsedMs >= d.NextThresholdMs {
		d.ScrollSpeed += cfg.Difficulty.SpeedStep
		d.NextThresholdMs += interval
	}
	return d
}

// DifficultyFactor maps elapsed time to the obstacle height factor in
// [0, CapFraction]. It grows linearly over the ramp window, then saturates.
func DifficultyFactor(cfg *config.RunnerConfig, elapsedMs float64) float64 {
	window := cfg.Barriers.RampWindowMs
	if window <= 0 || elapsedMs <= 0 {
		return 0
	}
	return math.Min(elapsedMs/window, cfg.Barriers.CapFraction)
}

func sanitizeDelta(deltaMs float64) float64 {
	switch {
	case math.IsNaN(deltaMs) || deltaMs < 0:
		return 0
	case deltaMs > maxDeltaMs:
		return maxDeltaMs
	default:
		return deltaMs
	}
}
