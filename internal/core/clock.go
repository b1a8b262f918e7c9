package core

import "time"

// Clock is the replay's monotonic time source.
// It is sampled exactly once per render tick by the driving loop and read by
// the animation scheduler. Time only moves forward, and only while unpaused.
type Clock struct {
	now    time.Duration
	delta  time.Duration
	last   time.Time
	speed  float64
	paused bool
}

// NewClock creates a clock at time zero running at normal speed.
func NewClock() *Clock {
	return &Clock{speed: 1}
}

// Now returns the elapsed replay time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Delta returns the time elapsed at the most recent sample.
func (c *Clock) Delta() time.Duration {
	return c.delta
}

// Advance moves the clock forward by d scaled by the current speed.
// Negative deltas and advances while paused are recorded as zero.
func (c *Clock) Advance(d time.Duration) {
	if c.paused || d < 0 {
		c.delta = 0
		return
	}
	c.delta = time.Duration(float64(d) * c.speed)
	c.now += c.delta
}

// Sample advances the clock by the wall time elapsed since the previous sample.
// The first sample only establishes the reference point.
func (c *Clock) Sample(t time.Time) {
	if c.last.IsZero() {
		c.last = t
		c.delta = 0
		return
	}
	d := t.Sub(c.last)
	c.last = t
	c.Advance(d)
}

// SetPaused freezes or resumes the clock.
func (c *Clock) SetPaused(paused bool) {
	c.paused = paused
}

// Paused reports whether the clock is frozen.
func (c *Clock) Paused() bool {
	return c.paused
}

// SetSpeed sets the playback speed multiplier. Non-positive values are ignored.
func (c *Clock) SetSpeed(speed float64) {
	if speed <= 0 {
		return
	}
	c.speed = speed
}

// Speed returns the playback speed multiplier.
func (c *Clock) Speed() float64 {
	return c.speed
}
