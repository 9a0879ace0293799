package runner

import "github.com/vovakirdan/coin-runner/internal/config"

// Input is everything a single tick consumes.
type Input struct {
	Jump    bool    // At most one jump per tick
	DeltaMs float64 // Wall time since the previous tick
}

// Outcome describes what happened during a tick.
type Outcome struct {
	Collected int  // Coins picked up this tick
	Ended     bool // A barrier was hit this tick
	HitIndex  int  // Index of the fatal barrier, -1 if none
}

// Step advances the simulation by one tick and returns the new state.
// The given state is never modified. Outside PhaseRunning the state is
// returned unchanged.
//
// Order within a tick: jump, gravity, scroll and retire, spawn, coin pickup,
// barrier check, difficulty. A fatal hit stops the tick before difficulty.
func Step(cfg *config.RunnerConfig, src Source, state RunState, in Input) (RunState, Outcome) {
	out := Outcome{HitIndex: -1}
	if state.Phase != PhaseRunning {
		return state, out
	}

	next := state.Clone()
	next.Ticks++

	if in.Jump {
		next.Player = RequestJump(cfg, next.Player)
	}
	next.Player = ApplyGravity(cfg, next.Player)

	scroll(cfg, &next)
	spawn(cfg, src, &next)

	out.Collected = collectCoins(cfg, &next)

	if idx := HitBarrier(cfg, next.Player, next.Barriers); idx >= 0 {
		next.Phase = PhaseEnded
		out.Ended = true
		out.HitIndex = idx
		return next, out
	}

	next.Difficulty = AdvanceDifficulty(cfg, next.Difficulty, in.DeltaMs)
	return next, out
}
