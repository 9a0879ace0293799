package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg RunnerConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != DefaultRunnerConfig() {
		t.Errorf("embedded defaults drifted from DefaultRunnerConfig():\n got %+v\nwant %+v", cfg, DefaultRunnerConfig())
	}
}

func TestFloorY(t *testing.T) {
	cfg := DefaultRunnerConfig()
	if got := cfg.FloorY(); got != 300 {
		t.Errorf("FloorY() = %v, expected 300", got)
	}
	if got := cfg.GroundY(); got != 350 {
		t.Errorf("GroundY() = %v, expected 350", got)
	}
}

func TestLoadRunnerCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	data := []byte("physics:\n  gravity: 1.2\ndifficulty:\n  initial_speed: 5\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner() failed: %v", err)
	}
	if cfg.Physics.Gravity != 1.2 {
		t.Errorf("Gravity = %v, expected 1.2", cfg.Physics.Gravity)
	}
	if cfg.Difficulty.InitialSpeed != 5 {
		t.Errorf("InitialSpeed = %v, expected 5", cfg.Difficulty.InitialSpeed)
	}
	// Untouched keys keep their defaults
	if cfg.Physics.JumpImpulse != -15 {
		t.Errorf("JumpImpulse = %v, expected default -15", cfg.Physics.JumpImpulse)
	}
}

func TestLoadRunnerErrors(t *testing.T) {
	if _, err := LoadRunner(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics: [not a map"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadRunner(path)
	if err == nil {
		t.Error("expected parse error")
	}
	if cfg != DefaultRunnerConfig() {
		t.Error("parse failure should return defaults")
	}
}

func TestValidateNormalizes(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.Canvas.Width = -1
	cfg.Physics.JumpImpulse = 4
	cfg.Barriers.SpawnChance = 3
	cfg.Barriers.CapFraction = -0.5
	cfg.Coins.MinActive = -2
	cfg.Difficulty.IntervalMs = 0
	cfg.Difficulty.SpeedStep = math.NaN()
	cfg.Leaderboard.Limit = 0

	cfg.Validate()

	d := DefaultRunnerConfig()
	tests := []struct {
		name      string
		got, want float64
	}{
		{"canvas width", cfg.Canvas.Width, d.Canvas.Width},
		{"jump impulse", cfg.Physics.JumpImpulse, d.Physics.JumpImpulse},
		{"barrier chance", cfg.Barriers.SpawnChance, 1},
		{"cap fraction", cfg.Barriers.CapFraction, 0},
		{"min active", float64(cfg.Coins.MinActive), 0},
		{"interval", cfg.Difficulty.IntervalMs, d.Difficulty.IntervalMs},
		{"speed step", cfg.Difficulty.SpeedStep, 0},
		{"leaderboard limit", float64(cfg.Leaderboard.Limit), float64(d.Leaderboard.Limit)},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s = %v, expected %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestValidateRejectsFloorTallerThanCanvas(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.Canvas.FloorHeight = 390
	cfg.Validate()
	if cfg.Canvas != DefaultRunnerConfig().Canvas {
		t.Errorf("impossible canvas should reset to defaults, got %+v", cfg.Canvas)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		wantSpeed float64
		wantStep  float64
	}{
		{DifficultyEasy, 2.5, 0.25},
		{DifficultyNormal, 3, 0.5},
		{DifficultyHard, 4, 0.75},
		{DifficultyFixed, 3, 0},
		{"", 3, 0.5},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Difficulty.InitialSpeed != tc.wantSpeed {
				t.Errorf("InitialSpeed = %v, expected %v", cfg.Difficulty.InitialSpeed, tc.wantSpeed)
			}
			if cfg.Difficulty.SpeedStep != tc.wantStep {
				t.Errorf("SpeedStep = %v, expected %v", cfg.Difficulty.SpeedStep, tc.wantStep)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("ParsePreset(hard) should be DifficultyHard")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("unknown presets should map to empty")
	}
}
