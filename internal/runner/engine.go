package runner

import (
	"errors"
	"strings"

	"github.com/vovakirdan/coin-runner/internal/config"
)

var (
	// ErrBlankName is returned by Start when the player name is empty or
	// whitespace. The engine state is left untouched.
	ErrBlankName = errors.New("runner: player name must not be blank")

	// ErrNoPlayer is returned by Reset before any run has been started.
	ErrNoPlayer = errors.New("runner: no run has been started")
)

// Reporter receives finished runs and leaderboard refresh requests.
// Implementations must not block: the engine calls them from inside Tick.
type Reporter interface {
	// Report is called exactly once per completed run.
	Report(Result)
	// Refresh requests a fresh leaderboard snapshot.
	Refresh()
}

// TickResult is returned by Engine.Tick.
type TickResult struct {
	Phase     Phase
	Collected int
	GameOver  *Result // Non-nil only on the tick that ended the run
	Continue  bool    // False once the host should stop scheduling ticks
}

// Option configures an Engine.
type Option func(*Engine)

// WithSource sets the random source used for spawning.
func WithSource(src Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.src = src
		}
	}
}

// WithReporter sets the persistence reporter.
func WithReporter(r Reporter) Option {
	return func(e *Engine) {
		e.reporter = r
	}
}

// WithGameOver registers a listener called once per run when it ends.
func WithGameOver(fn func(Result)) Option {
	return func(e *Engine) {
		e.OnGameOver(fn)
	}
}

// Engine owns the authoritative RunState and turns host commands into state
// transitions. It is driven externally: the host calls Tick once per frame.
//
// An Engine is not safe for concurrent use; the host must serialize calls.
type Engine struct {
	cfg         config.RunnerConfig
	src         Source
	state       RunState
	pendingJump bool
	stopped     bool
	reporter    Reporter
	listeners   []func(Result)
	last        *Result
}

// NewEngine creates an engine in PhaseIdle. The config is validated first.
// When a reporter is configured it is asked for an initial leaderboard.
func NewEngine(cfg config.RunnerConfig, opts ...Option) *Engine {
	cfg.Validate()

	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.src == nil {
		e.src = NewSource(0)
	}
	e.state = NewRunState(&e.cfg, PhaseIdle, "")

	if e.reporter != nil {
		e.reporter.Refresh()
	}
	return e
}

// OnGameOver registers a listener for finished runs.
func (e *Engine) OnGameOver(fn func(Result)) {
	if fn != nil {
		e.listeners = append(e.listeners, fn)
	}
}

// Start begins a new run for the named player from any phase. A blank name
// is rejected with ErrBlankName and nothing changes.
func (e *Engine) Start(playerName string) error {
	name := strings.TrimSpace(playerName)
	if name == "" {
		return ErrBlankName
	}

	e.state = NewRunState(&e.cfg, PhaseRunning, name)
	e.pendingJump = false
	e.stopped = false
	return nil
}

// Reset starts a new run for the most recently started player.
func (e *Engine) Reset() error {
	if e.state.PlayerName == "" {
		return ErrNoPlayer
	}
	return e.Start(e.state.PlayerName)
}

// RequestJump latches a jump for the next tick. Several requests between two
// ticks still produce a single jump. Ignored outside PhaseRunning.
func (e *Engine) RequestJump() {
	if e.state.Phase == PhaseRunning && !e.stopped {
		e.pendingJump = true
	}
}

// Tick advances the run by one frame. deltaMs is the wall time since the
// previous tick; negative or NaN values count as zero.
//
// Ticks while idle, ended or stopped change nothing.
func (e *Engine) Tick(deltaMs float64) TickResult {
	if e.stopped || e.state.Phase != PhaseRunning {
		return TickResult{Phase: e.state.Phase}
	}

	in := Input{Jump: e.pendingJump, DeltaMs: deltaMs}
	e.pendingJump = false

	next, out := Step(&e.cfg, e.src, e.state, in)
	e.state = next

	res := TickResult{
		Phase:     next.Phase,
		Collected: out.Collected,
		Continue:  next.Phase == PhaseRunning,
	}
	if out.Ended {
		res.GameOver = e.finish()
	}
	return res
}

// finish snapshots the result and notifies the reporter and listeners.
func (e *Engine) finish() *Result {
	result := resultOf(e.state)
	e.last = &result

	if e.reporter != nil {
		e.reporter.Report(result)
	}
	for _, fn := range e.listeners {
		fn(result)
	}

	out := result
	return &out
}

// Stop tells the engine that no further ticks will be scheduled. It is
// idempotent and safe in any phase. A later Start re-arms the engine.
func (e *Engine) Stop() {
	e.stopped = true
	e.pendingJump = false
}

// Stopped reports whether Stop was called since the last Start.
func (e *Engine) Stopped() bool {
	return e.stopped
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.state.Phase
}

// State returns a copy of the current state.
func (e *Engine) State() RunState {
	return e.state.Clone()
}

// LastResult returns the result of the most recently finished run.
func (e *Engine) LastResult() (Result, bool) {
	if e.last == nil {
		return Result{}, false
	}
	return *e.last, true
}

// Config returns the validated configuration in use.
func (e *Engine) Config() config.RunnerConfig {
	return e.cfg
}

// Snapshot returns a read-only view of the current state for renderers.
func (e *Engine) Snapshot() Snapshot {
	return NewSnapshot(&e.cfg, e.state)
}
