package anim

import "time"

// Tween interpolates a single value between two endpoints over time.
// Tweens are created by a Scheduler and advanced by its Update.
type Tween struct {
	from     float64
	to       float64
	start    time.Duration
	duration time.Duration
	onTick   func(float64)
	signal   *Signal
	stopped  bool
}

// Tick registers the per-update callback that receives the interpolated value.
// Returns the tween for chaining.
func (t *Tween) Tick(fn func(float64)) *Tween {
	t.onTick = fn
	return t
}

// Done registers a continuation that runs when the tween completes or is stopped.
// Returns the tween for chaining.
func (t *Tween) Done(fn func()) *Tween {
	t.signal.Then(fn)
	return t
}

// Signal returns the tween's completion signal.
func (t *Tween) Signal() *Signal {
	return t.signal
}

// Stop cancels the tween. It is retired the next time the scheduler
// evaluates it, without another tick callback, and its signal resolves as
// cancelled at that point.
func (t *Tween) Stop() {
	t.stopped = true
}

// Start returns the clock time at which interpolation begins.
func (t *Tween) Start() time.Duration {
	return t.start
}
