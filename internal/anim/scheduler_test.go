package anim

import (
	"testing"
	"time"

	"github.com/vovakirdan/bs-replay/internal/core"
)

func newTestScheduler() (*Scheduler, *core.Clock) {
	clock := core.NewClock()
	return NewScheduler(clock), clock
}

func TestLinearInterpolation(t *testing.T) {
	s, clock := newTestScheduler()

	var values []float64
	tw := s.Create(0, 10, 100*time.Millisecond, 0).Tick(func(v float64) {
		values = append(values, v)
	})

	s.Update() // t = start
	clock.Advance(50 * time.Millisecond)
	s.Update() // t = start + 50
	clock.Advance(50 * time.Millisecond)
	s.Update() // t = start + 100

	expected := []float64{0, 5, 10}
	if len(values) != len(expected) {
		t.Fatalf("got %d tick callbacks, expected %d: %v", len(values), len(expected), values)
	}
	for i, v := range expected {
		if values[i] != v {
			t.Errorf("value[%d] = %v, expected %v", i, values[i], v)
		}
	}
	if !tw.Signal().Done() {
		t.Error("tween should have completed at start+duration")
	}
	if tw.Signal().Cancelled() {
		t.Error("completed tween should not be cancelled")
	}
}

func TestEndValueIsExact(t *testing.T) {
	s, clock := newTestScheduler()

	var last float64
	s.Create(0.1, 0.7, 30*time.Millisecond, 0).Tick(func(v float64) { last = v })

	// Overshoot the duration by an awkward amount
	clock.Advance(33 * time.Millisecond)
	s.Update()

	if last != 0.7 {
		t.Errorf("final value = %v, expected exactly 0.7", last)
	}
}

func TestRetirement(t *testing.T) {
	s, clock := newTestScheduler()

	calls := 0
	completions := 0
	s.Create(0, 1, 10*time.Millisecond, 0).
		Tick(func(float64) { calls++ }).
		Done(func() { completions++ })

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1", s.Len())
	}

	clock.Advance(20 * time.Millisecond)
	s.Update()

	if s.Len() != 0 {
		t.Errorf("Len() = %d after completion, expected 0", s.Len())
	}
	if calls != 1 || completions != 1 {
		t.Errorf("calls=%d completions=%d, expected 1 and 1", calls, completions)
	}

	// Further updates produce nothing for the retired tween
	clock.Advance(20 * time.Millisecond)
	s.Update()
	s.Update()
	if calls != 1 || completions != 1 {
		t.Errorf("retired tween fired again: calls=%d completions=%d", calls, completions)
	}
}

func TestDelayedStart(t *testing.T) {
	s, clock := newTestScheduler()

	var values []float64
	tw := s.Create(0, 1, 100*time.Millisecond, 50*time.Millisecond).Tick(func(v float64) {
		values = append(values, v)
	})

	if tw.Start() != 50*time.Millisecond {
		t.Errorf("Start() = %v, expected 50ms", tw.Start())
	}

	s.Update()
	clock.Advance(40 * time.Millisecond)
	s.Update()
	if len(values) != 0 {
		t.Fatalf("tween ticked before its start time: %v", values)
	}

	clock.Advance(10 * time.Millisecond)
	s.Update()
	if len(values) != 1 || values[0] != 0 {
		t.Fatalf("expected a single tick at the start value, got %v", values)
	}

	clock.Advance(100 * time.Millisecond)
	s.Update()
	if values[len(values)-1] != 1 || !tw.Signal().Done() {
		t.Errorf("delayed tween did not complete: %v", values)
	}
}

func TestStopResolvesAsCancelled(t *testing.T) {
	s, clock := newTestScheduler()

	ticks := 0
	continued := false
	tw := s.Create(0, 1, 100*time.Millisecond, 0).
		Tick(func(float64) { ticks++ }).
		Done(func() { continued = true })

	clock.Advance(10 * time.Millisecond)
	s.Update()
	if ticks != 1 {
		t.Fatalf("ticks = %d, expected 1", ticks)
	}

	tw.Stop()
	if tw.Signal().Done() {
		t.Error("stop should take effect on the next update, not immediately")
	}

	clock.Advance(10 * time.Millisecond)
	s.Update()

	if ticks != 1 {
		t.Errorf("stopped tween ticked again: ticks = %d", ticks)
	}
	if !continued {
		t.Error("continuation waiting on a stopped tween was stranded")
	}
	if !tw.Signal().Cancelled() {
		t.Error("stopped tween signal should report cancellation")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, expected stopped tween to be retired", s.Len())
	}
}

func TestStopAll(t *testing.T) {
	s, _ := newTestScheduler()

	a := s.Create(0, 1, time.Second, 0)
	b := s.Create(0, 1, time.Second, time.Second)
	s.StopAll()
	s.Update()

	if !a.Signal().Cancelled() || !b.Signal().Cancelled() {
		t.Error("StopAll should cancel every live tween")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", s.Len())
	}
}

func TestTweenCreatedDuringUpdate(t *testing.T) {
	s, clock := newTestScheduler()

	var second *Tween
	secondTicks := 0
	s.Create(0, 1, 10*time.Millisecond, 0).Done(func() {
		second = s.Create(1, 2, 10*time.Millisecond, 0).Tick(func(float64) { secondTicks++ })
	})

	clock.Advance(10 * time.Millisecond)
	s.Update()

	if second == nil {
		t.Fatal("continuation did not run")
	}
	if secondTicks != 0 {
		t.Error("tween created during Update should not be evaluated in the same pass")
	}
	if second.Start() != 10*time.Millisecond {
		t.Errorf("chained tween starts at %v, expected 10ms", second.Start())
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, expected the chained tween to be live", s.Len())
	}

	clock.Advance(5 * time.Millisecond)
	s.Update()
	if secondTicks != 1 {
		t.Errorf("secondTicks = %d, expected 1", secondTicks)
	}
}

func TestCreateRejectsNonPositiveDuration(t *testing.T) {
	s, _ := newTestScheduler()

	defer func() {
		if recover() == nil {
			t.Error("Create with zero duration should panic")
		}
	}()
	s.Create(0, 1, 0, 0)
}

func TestIntermediateValuesUseExactProgress(t *testing.T) {
	s, clock := newTestScheduler()

	var values []float64
	s.Create(0, 100000, 3*time.Millisecond, 0).Tick(func(v float64) {
		values = append(values, v)
	})

	clock.Advance(time.Millisecond)
	s.Update()
	clock.Advance(time.Millisecond)
	s.Update()

	expected := []float64{
		0 + (100000-0)*(float64(time.Millisecond)/float64(3*time.Millisecond)),
		0 + (100000-0)*(float64(2*time.Millisecond)/float64(3*time.Millisecond)),
	}
	if len(values) != len(expected) {
		t.Fatalf("got %d tick callbacks, expected %d: %v", len(values), len(expected), values)
	}
	for i, v := range expected {
		if values[i] != v {
			t.Errorf("value[%d] = %v, expected %v", i, values[i], v)
		}
	}
}

func TestContinuationSeesLiveTweens(t *testing.T) {
	s, clock := newTestScheduler()

	long := s.Create(0, 1, time.Second, 0)
	liveFromContinuation := -1
	s.Create(0, 1, 10*time.Millisecond, 0).Done(func() {
		liveFromContinuation = s.Len()
		s.StopAll()
	})
	late := s.Create(0, 1, time.Second, 0)

	clock.Advance(10 * time.Millisecond)
	s.Update()

	if liveFromContinuation != 2 {
		t.Errorf("Len() inside continuation = %d, expected 2", liveFromContinuation)
	}
	if !late.Signal().Cancelled() {
		t.Error("tween evaluated after the continuation should be cancelled in the same pass")
	}
	if long.Signal().Done() {
		t.Error("tween already evaluated this pass should be cancelled on the next update")
	}

	s.Update()
	if !long.Signal().Cancelled() {
		t.Error("StopAll from a continuation missed an already evaluated tween")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", s.Len())
	}
}
