// Package runner implements the side-scrolling runner simulation: the player
// jumps (with one extra air jump) over barriers and collects coins while the
// scroll speed increases over time.
//
// The package is pure in-memory state transformation. Step advances an
// immutable RunState by one tick; Engine owns the current state slot and
// exposes the commands a host needs (start, jump, tick, stop).
package runner

import (
	"github.com/vovakirdan/coin-runner/internal/config"
	"github.com/vovakirdan/coin-runner/internal/core"
)

// MaxJumps is the number of jumps available before landing again.
const MaxJumps = 2

// Phase is the lifecycle stage of a run.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseEnded
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name for spectator frames.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// PlayerState is the player's kinematic state. X is fixed in the scroll frame.
type PlayerState struct {
	Pos       core.Vec2 `json:"pos"`
	VelocityY float64   `json:"velocity_y"`
	JumpsUsed int       `json:"jumps_used"`
	Size      float64   `json:"size"`
}

// Barrier is a fatal obstacle standing on the floor.
type Barrier struct {
	Pos    core.Vec2 `json:"pos"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
}

// Box returns the barrier's collision box.
func (b Barrier) Box() core.Box {
	return core.NewBox(b.Pos.X, b.Pos.Y, b.Width, b.Height)
}

// Coin is a pickup worth one point.
type Coin struct {
	Pos  core.Vec2 `json:"pos"`
	Size float64   `json:"size"`
}

// DifficultyState tracks elapsed time, scroll speed and score for a run.
type DifficultyState struct {
	ElapsedMs       float64 `json:"elapsed_ms"`
	ScrollSpeed     float64 `json:"scroll_speed"`
	NextThresholdMs float64 `json:"next_threshold_ms"`
	Score           int     `json:"score"`
}

// RunState is the complete simulation state. Barriers and Coins keep spawn
// order. Values handed out by Step and Engine never alias each other's slices.
type RunState struct {
	Player     PlayerState
	Barriers   []Barrier
	Coins      []Coin
	Difficulty DifficultyState
	Phase      Phase
	PlayerName string
	Ticks      int
}

// NewRunState returns a fresh state in the given phase: player resting on
// the floor, no entities, difficulty at its initial values.
func NewRunState(cfg *config.RunnerConfig, phase Phase, name string) RunState {
	return RunState{
		Player: PlayerState{
			Pos:  core.Vec2{X: cfg.Player.X, Y: cfg.FloorY()},
			Size: cfg.Player.Size,
		},
		Barriers:   make([]Barrier, 0, 8),
		Coins:      make([]Coin, 0, 8),
		Difficulty: NewDifficulty(cfg),
		Phase:      phase,
		PlayerName: name,
	}
}

// Clone returns a copy that shares no slices with s.
func (s RunState) Clone() RunState {
	out := s
	out.Barriers = append(make([]Barrier, 0, len(s.Barriers)+1), s.Barriers...)
	out.Coins = append(make([]Coin, 0, len(s.Coins)+1), s.Coins...)
	return out
}

// Result is the immutable record of a finished run handed to persistence.
type Result struct {
	Name      string  `json:"name"`
	Score     int     `json:"score"`
	ElapsedMs float64 `json:"elapsed_ms"`
	Ticks     int     `json:"ticks"`
}

// resultOf copies the fields persistence needs out of a state.
func resultOf(s RunState) Result {
	return Result{
		Name:      s.PlayerName,
		Score:     s.Difficulty.Score,
		ElapsedMs: s.Difficulty.ElapsedMs,
		Ticks:     s.Ticks,
	}
}
