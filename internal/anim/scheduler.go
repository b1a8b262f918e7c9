package anim

import (
	"fmt"
	"time"

	"github.com/vovakirdan/bs-replay/internal/core"
)

// Scheduler owns the set of live tweens and advances them once per clock tick.
type Scheduler struct {
	clock  *core.Clock
	tweens []*Tween

	// During Update: tweens not yet evaluated this pass, and survivors so far.
	running []*Tween
	kept    []*Tween
}

// NewScheduler creates a scheduler reading time from the given clock.
func NewScheduler(clock *core.Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// Create registers a tween from one value to another.
// Interpolation starts delay after the current clock time.
// Panics if duration is not positive.
func (s *Scheduler) Create(from, to float64, duration, delay time.Duration) *Tween {
	if duration <= 0 {
		panic(fmt.Sprintf("anim: non-positive tween duration %v", duration))
	}
	if delay < 0 {
		delay = 0
	}

	t := &Tween{
		from:     from,
		to:       to,
		start:    s.clock.Now() + delay,
		duration: duration,
		signal:   NewSignal(),
	}
	s.tweens = append(s.tweens, t)
	return t
}

// Update advances every live tween to the current clock time.
// Tweens created while Update runs (from tick callbacks or continuations) are
// first evaluated on the following Update.
func (s *Scheduler) Update() {
	s.running = s.tweens
	s.tweens = nil
	s.kept = make([]*Tween, 0, len(s.running))

	now := s.clock.Now()
	for len(s.running) > 0 {
		t := s.running[0]
		s.running = s.running[1:]
		if s.advance(t, now) {
			s.kept = append(s.kept, t)
		}
	}

	// Anything appended during this pass goes after the survivors.
	s.tweens = append(s.kept, s.tweens...)
	s.running, s.kept = nil, nil
}

// advance evaluates one tween and reports whether it stays live.
func (s *Scheduler) advance(t *Tween, now time.Duration) bool {
	if t.stopped {
		t.signal.Cancel()
		return false
	}

	if now < t.start {
		// Still waiting to start at some time in the future
		return true
	}

	progress := float64(now-t.start) / float64(t.duration)
	if progress >= 1 {
		// Land exactly on the end value instead of trusting the formula
		if t.onTick != nil {
			t.onTick(t.to)
		}
		t.signal.Resolve()
		return false
	}

	if t.onTick != nil {
		t.onTick(t.from + (t.to-t.from)*progress)
	}
	return true
}

// Len returns the number of live tweens, including any still pending
// evaluation when called from inside Update.
func (s *Scheduler) Len() int {
	return len(s.tweens) + len(s.running) + len(s.kept)
}

// StopAll stops every live tween. Each resolves as cancelled on its next
// evaluation, which is later in the current pass when called from a
// continuation inside Update.
func (s *Scheduler) StopAll() {
	for _, list := range [][]*Tween{s.running, s.kept, s.tweens} {
		for _, t := range list {
			t.Stop()
		}
	}
}
