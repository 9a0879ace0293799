package runner

import (
	"github.com/vovakirdan/coin-runner/internal/config"
	"github.com/vovakirdan/coin-runner/internal/core"
)

// scriptedSource replays fixed values, then returns fallback forever.
type scriptedSource struct {
	vals     []float64
	i        int
	fallback float64
}

func (s *scriptedSource) Float64() float64 {
	if s.i >= len(s.vals) {
		return s.fallback
	}
	v := s.vals[s.i]
	s.i++
	return v
}

// quietSource never spawns barriers and only tops coins up to the minimum.
func quietSource() *scriptedSource {
	return &scriptedSource{fallback: 0.99}
}

func testConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Validate()
	return cfg
}

func runningEngine(name string) *Engine {
	e := NewEngine(testConfig(), WithSource(quietSource()))
	if err := e.Start(name); err != nil {
		panic(err)
	}
	return e
}

// fakeReporter records calls without doing I/O.
type fakeReporter struct {
	reports   []Result
	refreshes int
}

func (f *fakeReporter) Report(r Result) { f.reports = append(f.reports, r) }
func (f *fakeReporter) Refresh()        { f.refreshes++ }

func coreVec(x, y float64) core.Vec2 {
	return core.Vec2{X: x, Y: y}
}
