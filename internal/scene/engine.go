package scene

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bs-replay/internal/anim"
	"github.com/vovakirdan/bs-replay/internal/config"
	"github.com/vovakirdan/bs-replay/internal/core"
	"github.com/vovakirdan/bs-replay/internal/render"
	"github.com/vovakirdan/bs-replay/internal/replay"
)

// Engine wires one replay playback together: clock, scheduler, scene graph,
// world and player. The owner drives it by calling Tick or Step once per frame.
type Engine struct {
	clock  *core.Clock
	sched  *anim.Scheduler
	graph  *render.Graph
	world  *World
	player *Player
	cfg    config.Config
	ticks  int
}

// NewEngine prepares playback of game. Nothing moves until Start.
func NewEngine(game *replay.Game, cfg config.Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := core.NewClock()
	clock.SetSpeed(cfg.Playback.Speed)
	sched := anim.NewScheduler(clock)
	graph := render.NewGraph()
	world := NewWorld(graph, sched, cfg, logger)

	return &Engine{
		clock:  clock,
		sched:  sched,
		graph:  graph,
		world:  world,
		player: NewPlayer(world, game, cfg.Playback.Mode, logger),
		cfg:    cfg,
	}
}

// Start begins playback. The returned signal resolves when every frame has played.
func (e *Engine) Start() *anim.Signal {
	return e.player.Start()
}

// Restart plays the game again from the beginning.
func (e *Engine) Restart() *anim.Signal {
	return e.player.Restart()
}

// Stop abandons playback. Every animation in flight is cancelled and
// settled at once, along with any that their continuations start.
func (e *Engine) Stop() {
	e.player.Stop()
	for e.sched.Len() > 0 {
		e.sched.StopAll()
		e.sched.Update()
	}
}

// Tick samples wall time and advances every animation.
func (e *Engine) Tick(now time.Time) {
	e.clock.Sample(now)
	e.update()
}

// Step advances by a fixed amount of replay time, for headless runs.
func (e *Engine) Step(d time.Duration) {
	e.clock.Advance(d)
	e.update()
}

func (e *Engine) update() {
	e.sched.Update()
	e.ticks++
}

// TogglePause freezes or resumes replay time.
func (e *Engine) TogglePause() bool {
	e.clock.SetPaused(!e.clock.Paused())
	return e.clock.Paused()
}

// SetSpeed sets the playback speed, clamped to [0.25, 8].
func (e *Engine) SetSpeed(speed float64) {
	e.clock.SetSpeed(core.ClampF(speed, 0.25, 8))
}

// Speed returns the current playback speed.
func (e *Engine) Speed() float64 {
	return e.clock.Speed()
}

// Paused reports whether replay time is frozen.
func (e *Engine) Paused() bool {
	return e.clock.Paused()
}

// Finished reports whether the current playback has completed.
func (e *Engine) Finished() bool {
	return e.player.Finished()
}

// Elapsed returns the replay time played so far.
func (e *Engine) Elapsed() time.Duration {
	return e.clock.Now()
}

// Ticks returns the number of scheduler updates so far.
func (e *Engine) Ticks() int {
	return e.ticks
}

// LiveTweens returns the number of animations in flight.
func (e *Engine) LiveTweens() int {
	return e.sched.Len()
}

// Graph returns the scene graph views draw from.
func (e *Engine) Graph() *render.Graph {
	return e.graph
}

// World returns the scene.
func (e *Engine) World() *World {
	return e.world
}

// Player returns the frame feeder.
func (e *Engine) Player() *Player {
	return e.player
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.Config {
	return e.cfg
}
