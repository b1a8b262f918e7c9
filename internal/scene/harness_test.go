package scene

import (
	"time"

	"github.com/vovakirdan/bs-replay/internal/anim"
	"github.com/vovakirdan/bs-replay/internal/config"
	"github.com/vovakirdan/bs-replay/internal/core"
	"github.com/vovakirdan/bs-replay/internal/render"
	"github.com/vovakirdan/bs-replay/internal/replay"
)

const tick = 10 * time.Millisecond

type harness struct {
	clock *core.Clock
	sched *anim.Scheduler
	graph *render.Graph
	cfg   config.Config
}

func newHarness() *harness {
	clock := core.NewClock()
	return &harness{
		clock: clock,
		sched: anim.NewScheduler(clock),
		graph: render.NewGraph(),
		cfg:   config.Default(),
	}
}

// run advances synthetic time by d in fixed ticks, updating the scheduler each tick.
func (h *harness) run(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += tick {
		h.clock.Advance(tick)
		h.sched.Update()
	}
}

// runUntil ticks until cond holds or limit elapses. Reports whether cond held.
func (h *harness) runUntil(cond func() bool, limit time.Duration) bool {
	for elapsed := time.Duration(0); elapsed < limit; elapsed += tick {
		if cond() {
			return true
		}
		h.clock.Advance(tick)
		h.sched.Update()
	}
	return cond()
}

func (h *harness) snake(body ...core.Point) *Snake {
	return NewSnake(0, replay.Snake{Color: core.ColorRed, Body: body}, h.graph, h.sched, h.cfg, nil)
}

func frameOf(body ...core.Point) replay.SnakeFrame {
	return replay.SnakeFrame{Body: body}
}

func pt(x, y int) core.Point {
	return core.Point{X: x, Y: y}
}
