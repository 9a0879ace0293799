// Package config provides YAML-based configuration loading and difficulty
// presets for the runner.
package config

import "math"

// RunnerConfig contains all tunables of the runner simulation.
type RunnerConfig struct {
	Canvas      CanvasConfig      `yaml:"canvas"`
	Player      PlayerConfig      `yaml:"player"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Barriers    BarrierConfig     `yaml:"barriers"`
	Coins       CoinConfig        `yaml:"coins"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// CanvasConfig defines the logical play field. All coordinates in the
// simulation are in canvas units, independent of the terminal size.
type CanvasConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	FloorHeight float64 `yaml:"floor_height"`
}

// PlayerConfig defines the player's placement and boxes.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Size   float64 `yaml:"size"`    // Sprite square side
	HitBox float64 `yaml:"hit_box"` // Collision square side, smaller than the sprite
}

// PhysicsConfig defines vertical motion.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"` // Negative = up
}

// BarrierConfig defines barrier spawning and retirement.
type BarrierConfig struct {
	SpawnChance  float64 `yaml:"spawn_chance"` // Per tick
	Width        float64 `yaml:"width"`
	BaseHeight   float64 `yaml:"base_height"`
	HeightRange  float64 `yaml:"height_range"`
	RampWindowMs float64 `yaml:"ramp_window_ms"`
	CapFraction  float64 `yaml:"cap_fraction"`
	RetireX      float64 `yaml:"retire_x"`
}

// CoinConfig defines coin spawning, pickup and retirement.
type CoinConfig struct {
	SpawnChance     float64 `yaml:"spawn_chance"`
	MinActive       int     `yaml:"min_active"`
	Size            float64 `yaml:"size"`
	FloorGap        float64 `yaml:"floor_gap"`
	Jitter          float64 `yaml:"jitter"`
	PickupTolerance float64 `yaml:"pickup_tolerance"`
	RetireX         float64 `yaml:"retire_x"`
}

// DifficultyConfig defines scroll speed progression.
type DifficultyConfig struct {
	InitialSpeed float64 `yaml:"initial_speed"`
	SpeedStep    float64 `yaml:"speed_step"`
	IntervalMs   float64 `yaml:"interval_ms"`
	TickMs       float64 `yaml:"tick_ms"` // Nominal frame duration used by hosts without a clock
}

// LeaderboardConfig defines how many entries are fetched for display.
type LeaderboardConfig struct {
	Limit int `yaml:"limit"`
}

// FloorY returns the resting Y of the player's top edge.
func (c RunnerConfig) FloorY() float64 {
	return c.Canvas.Height - c.Canvas.FloorHeight - c.Player.Size
}

// GroundY returns the Y of the floor surface.
func (c RunnerConfig) GroundY() float64 {
	return c.Canvas.Height - c.Canvas.FloorHeight
}

// Validate replaces out-of-range values with defaults or clamps them.
// A config never fails validation; bad values are normalized.
func (c *RunnerConfig) Validate() {
	d := DefaultRunnerConfig()

	positive(&c.Canvas.Width, d.Canvas.Width)
	positive(&c.Canvas.Height, d.Canvas.Height)
	nonNegative(&c.Canvas.FloorHeight)
	positive(&c.Player.Size, d.Player.Size)
	positive(&c.Player.HitBox, d.Player.HitBox)
	if c.Canvas.FloorHeight+c.Player.Size > c.Canvas.Height {
		c.Canvas = d.Canvas
	}
	c.Player.X = clampF(c.Player.X, 0, c.Canvas.Width)

	nonNegative(&c.Physics.Gravity)
	if c.Physics.JumpImpulse >= 0 || math.IsNaN(c.Physics.JumpImpulse) {
		c.Physics.JumpImpulse = d.Physics.JumpImpulse
	}

	c.Barriers.SpawnChance = clampF(c.Barriers.SpawnChance, 0, 1)
	positive(&c.Barriers.Width, d.Barriers.Width)
	positive(&c.Barriers.BaseHeight, d.Barriers.BaseHeight)
	nonNegative(&c.Barriers.HeightRange)
	positive(&c.Barriers.RampWindowMs, d.Barriers.RampWindowMs)
	c.Barriers.CapFraction = clampF(c.Barriers.CapFraction, 0, 1)

	c.Coins.SpawnChance = clampF(c.Coins.SpawnChance, 0, 1)
	if c.Coins.MinActive < 0 {
		c.Coins.MinActive = 0
	}
	positive(&c.Coins.Size, d.Coins.Size)
	nonNegative(&c.Coins.FloorGap)
	nonNegative(&c.Coins.Jitter)
	positive(&c.Coins.PickupTolerance, d.Coins.PickupTolerance)

	positive(&c.Difficulty.InitialSpeed, d.Difficulty.InitialSpeed)
	nonNegative(&c.Difficulty.SpeedStep)
	positive(&c.Difficulty.IntervalMs, d.Difficulty.IntervalMs)
	positive(&c.Difficulty.TickMs, d.Difficulty.TickMs)

	if c.Leaderboard.Limit <= 0 {
		c.Leaderboard.Limit = d.Leaderboard.Limit
	}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal and the empty preset leave the loaded config untouched.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.InitialSpeed = 2.5
		cfg.Difficulty.SpeedStep = 0.25
		cfg.Barriers.CapFraction = 0.4
	case DifficultyHard:
		cfg.Difficulty.InitialSpeed = 4
		cfg.Difficulty.SpeedStep = 0.75
		cfg.Barriers.RampWindowMs = 60000
		cfg.Barriers.CapFraction = 1
	case DifficultyFixed:
		cfg.Difficulty.SpeedStep = 0
	}
}

func positive(v *float64, fallback float64) {
	if *v <= 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
		*v = fallback
	}
}

func nonNegative(v *float64) {
	if *v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
		*v = 0
	}
}

// clampF restricts a float64 to [min, max]. NaN maps to min.
func clampF(val, min, max float64) float64 {
	if math.IsNaN(val) {
		return min
	}
	return math.Max(min, math.Min(max, val))
}
