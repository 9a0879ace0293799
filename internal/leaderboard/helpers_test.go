package leaderboard

import "github.com/vovakirdan/coin-runner/internal/config"

// alwaysBarrier spawns a minimal barrier every tick, so runs end quickly.
type alwaysBarrier struct{}

func (alwaysBarrier) Float64() float64 { return 0 }

func runnerConfig() config.RunnerConfig {
	return config.DefaultRunnerConfig()
}
