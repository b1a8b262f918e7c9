// Package anim implements time-based tweening for the replay scene.
//
// Everything in this package is single-threaded: tweens are advanced by one
// Scheduler.Update call per render tick and completion is delivered through
// Signal continuations that run synchronously inside that call.
package anim

// Signal is a one-shot completion notification.
// Continuations registered with Then run exactly once, either when the signal
// resolves or immediately if it already has.
type Signal struct {
	resolved  bool
	cancelled bool
	waiters   []func()
}

// NewSignal creates an unresolved signal.
func NewSignal() *Signal {
	return &Signal{}
}

// Resolved returns a signal that has already completed.
func Resolved() *Signal {
	return &Signal{resolved: true}
}

// Done reports whether the signal has resolved.
func (s *Signal) Done() bool {
	return s.resolved
}

// Cancelled reports whether the signal resolved because its work was stopped.
func (s *Signal) Cancelled() bool {
	return s.cancelled
}

// Then registers a continuation.
func (s *Signal) Then(fn func()) {
	if fn == nil {
		return
	}
	if s.resolved {
		fn()
		return
	}
	s.waiters = append(s.waiters, fn)
}

// Resolve completes the signal and runs its continuations in registration order.
// Returns false if the signal was already resolved.
func (s *Signal) Resolve() bool {
	return s.finish(false)
}

// Cancel completes the signal as cancelled.
// Continuations still run so nothing waiting on it is stranded.
func (s *Signal) Cancel() bool {
	return s.finish(true)
}

func (s *Signal) finish(cancelled bool) bool {
	if s.resolved {
		return false
	}
	s.resolved = true
	s.cancelled = cancelled
	waiters := s.waiters
	s.waiters = nil
	for _, fn := range waiters {
		fn()
	}
	return true
}

// All returns a signal that resolves once every given signal has resolved.
// The joined signal is cancelled if any of its inputs was cancelled.
// With no inputs it is already resolved.
func All(signals ...*Signal) *Signal {
	joined := NewSignal()
	pending := 0
	for _, s := range signals {
		if s != nil && !s.Done() {
			pending++
		}
	}

	cancelled := false
	for _, s := range signals {
		if s != nil && s.Done() && s.Cancelled() {
			cancelled = true
		}
	}

	if pending == 0 {
		joined.finish(cancelled)
		return joined
	}

	for _, s := range signals {
		if s == nil || s.Done() {
			continue
		}
		s := s
		s.Then(func() {
			if s.Cancelled() {
				cancelled = true
			}
			pending--
			if pending == 0 {
				joined.finish(cancelled)
			}
		})
	}
	return joined
}
