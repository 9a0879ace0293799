package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Canvas: CanvasConfig{
			Width:       800,
			Height:      400,
			FloorHeight: 50,
		},
		Player: PlayerConfig{
			X:      50,
			Size:   50,
			HitBox: 40,
		},
		Physics: PhysicsConfig{
			Gravity:     0.6,
			JumpImpulse: -15,
		},
		Barriers: BarrierConfig{
			SpawnChance:  0.01,
			Width:        30,
			BaseHeight:   60,
			HeightRange:  60,
			RampWindowMs: 120000, // Height variance saturates after two minutes
			CapFraction:  0.7,
			RetireX:      -100,
		},
		Coins: CoinConfig{
			SpawnChance:     0.05,
			MinActive:       3,
			Size:            30,
			FloorGap:        30,
			Jitter:          100,
			PickupTolerance: 40,
			RetireX:         -30,
		},
		Difficulty: DifficultyConfig{
			InitialSpeed: 3,
			SpeedStep:    0.5,
			IntervalMs:   10000,
			TickMs:       16,
		},
		Leaderboard: LeaderboardConfig{
			Limit: 50,
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `runner config`.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
