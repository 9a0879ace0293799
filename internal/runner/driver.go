package runner

import (
	"context"
	"sync"
	"time"
)

// Ticker is anything that can be advanced frame by frame. *Engine satisfies it.
type Ticker interface {
	Tick(deltaMs float64) TickResult
}

// Driver calls a Ticker on a fixed wall-clock cadence until the run stops,
// the context is cancelled or Stop is called. It is the headless counterpart
// of a render loop's per-frame callback.
type Driver struct {
	target   Ticker
	interval time.Duration
	frame    func(TickResult)

	stopOnce sync.Once
	stop     chan struct{}
}

// NewDriver creates a driver ticking target every interval.
// Non-positive intervals default to 60 Hz.
func NewDriver(target Ticker, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &Driver{
		target:   target,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// OnFrame registers a callback invoked after every tick, on the driver's
// goroutine. Must be called before Run.
func (d *Driver) OnFrame(fn func(TickResult)) {
	d.frame = fn
}

// Run ticks until the target reports Continue == false, Stop is called or
// ctx is done. The delta passed to each tick is the measured wall time since
// the previous tick. A stop request never interrupts a tick in progress.
func (d *Driver) Run(ctx context.Context) error {
	t := time.NewTicker(d.interval)
	defer t.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.stop:
			return nil
		case now := <-t.C:
			delta := float64(now.Sub(last)) / float64(time.Millisecond)
			last = now

			res := d.target.Tick(delta)
			if d.frame != nil {
				d.frame(res)
			}
			if !res.Continue {
				return nil
			}
		}
	}
}

// Stop ends Run after the current tick. Safe to call more than once and
// from any goroutine.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() {
		close(d.stop)
	})
}
