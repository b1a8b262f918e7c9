package scene

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bs-replay/internal/anim"
	"github.com/vovakirdan/bs-replay/internal/config"
	"github.com/vovakirdan/bs-replay/internal/core"
	"github.com/vovakirdan/bs-replay/internal/render"
	"github.com/vovakirdan/bs-replay/internal/replay"
)

// backlogged is a frame issued while a reset was still tearing down the old scene.
type backlogged struct {
	frame replay.Frame
	done  *anim.Signal
}

// World owns everything on screen: board tiles, snakes and food.
//
// Resets are serialized. Each reset tears the previous scene down completely
// before the new one is built, and the new snakes only start moving once the
// tiles and snakes have finished animating in.
type World struct {
	renderer render.Renderer
	sched    *anim.Scheduler
	cfg      config.Config
	logger   *log.Logger

	board  replay.Board
	tiles  []*prop
	snakes []*Snake
	foods  *Collection[core.Point, *prop]

	last     *anim.Signal // Completion of the most recent reset
	building bool         // A reset is in progress; frames go to backlog
	backlog  []backlogged
	ready    bool
	resets   int
}

// NewWorld creates an empty scene.
func NewWorld(r render.Renderer, sched *anim.Scheduler, cfg config.Config, logger *log.Logger) *World {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &World{
		renderer: r,
		sched:    sched,
		cfg:      cfg,
		logger:   logger,
		foods:    NewCollection[core.Point, *prop](),
		last:     anim.Resolved(),
	}
}

// Ready reports whether the most recent reset has finished and snakes are moving.
func (w *World) Ready() bool {
	return w.ready
}

// Board returns the current board dimensions.
func (w *World) Board() replay.Board {
	return w.board
}

// Snakes returns the current snake controllers in header order.
func (w *World) Snakes() []*Snake {
	return w.snakes
}

// Food returns the tracked food cells.
func (w *World) Food() []core.Point {
	return w.foods.Keys()
}

// Tiles returns the number of board tiles in the scene.
func (w *World) Tiles() int {
	return len(w.tiles)
}

// Resets returns the number of resets that finished without being superseded.
func (w *World) Resets() int {
	return w.resets
}

// Reset replaces the scene with a new board and set of snakes.
// The returned signal resolves once the new snakes are ready to move.
func (w *World) Reset(board replay.Board, snakes []replay.Snake) *anim.Signal {
	prev := w.last
	done := anim.NewSignal()
	w.last = done
	w.ready = false
	w.building = true

	prev.Then(func() {
		w.logger.Debug("tearing down scene", "tiles", len(w.tiles), "snakes", len(w.snakes))
		w.teardown().Then(func() {
			if w.last != done {
				// A newer reset is queued behind this one; skip straight to it
				done.Cancel()
				return
			}
			w.setup(board, snakes, done).Then(func() {
				if w.last == done {
					w.ready = true
					w.resets++
				}
				w.logger.Debug("scene ready", "width", board.Width, "height", board.Height, "snakes", len(snakes))
				done.Resolve()
			})
		})
	})
	return done
}

// teardown runs every exit animation. Once they have all finished the old
// snakes, tiles and food are removed.
func (w *World) teardown() *anim.Signal {
	if len(w.tiles) == 0 && len(w.snakes) == 0 && w.foods.Len() == 0 {
		return anim.Resolved()
	}

	var signals []*anim.Signal
	for _, s := range w.snakes {
		s.Retire()
		signals = append(signals, s.AnimateOut())
	}
	signals = append(signals, w.animateTiles(w.cfg.Geometry.TileHiddenY()))

	snakes, tiles := w.snakes, w.tiles
	done := anim.NewSignal()
	anim.All(signals...).Then(func() {
		for _, s := range snakes {
			s.Teardown()
		}
		for _, t := range tiles {
			t.remove()
		}
		w.foods.Clear(func(_ core.Point, f *prop) { f.remove() })
		w.snakes, w.tiles = nil, nil
		done.Resolve()
	})
	return done
}

// setup builds the new scene and animates it in: tiles first, then snakes.
// Frames that arrived during the reset are handed to the new snakes once the
// tiles are up, unless a newer reset has taken over by then.
func (w *World) setup(board replay.Board, snakes []replay.Snake, done *anim.Signal) *anim.Signal {
	w.renderer.Clear()
	w.board = board
	w.tiles = w.buildTiles(board)
	w.foods = NewCollection[core.Point, *prop]()

	w.snakes = make([]*Snake, 0, len(snakes))
	for i, s := range snakes {
		w.snakes = append(w.snakes, NewSnake(i, s, w.renderer, w.sched, w.cfg, w.logger))
	}

	ready := anim.NewSignal()
	w.animateTiles(w.cfg.Geometry.TileRestY()).Then(func() {
		if w.last == done {
			w.flushBacklog()
		}

		var in []*anim.Signal
		for _, s := range w.snakes {
			in = append(in, s.AnimateIn())
		}
		anim.All(in...).Then(func() {
			for _, s := range w.snakes {
				s.Start()
			}
			ready.Resolve()
		})
	})
	return ready
}

// flushBacklog stops queuing frames and replays the queued ones in order.
func (w *World) flushBacklog() {
	w.building = false
	backlog := w.backlog
	w.backlog = nil
	if len(backlog) > 0 {
		w.logger.Debug("replaying frames issued during reset", "frames", len(backlog))
	}
	for _, b := range backlog {
		forward(w.NextFrame(b.frame), b.done)
	}
}

// NextFrame hands each snake its next body and reconciles food.
// The returned signal resolves once every snake has finished this frame's move.
// Frames issued while a reset is in progress are queued, never dropped.
func (w *World) NextFrame(frame replay.Frame) *anim.Signal {
	if w.building {
		done := anim.NewSignal()
		w.backlog = append(w.backlog, backlogged{frame: frame, done: done})
		return done
	}

	if len(frame.Snakes) != len(w.snakes) {
		w.logger.Debug("frame snake count differs from scene", "frame", len(frame.Snakes), "scene", len(w.snakes))
	}

	signals := make([]*anim.Signal, 0, len(w.snakes))
	for i, sf := range frame.Snakes {
		if i >= len(w.snakes) {
			break
		}
		signals = append(signals, w.snakes[i].Submit(sf))
	}

	w.reconcileFood(frame.Food)
	return anim.All(signals...)
}

// forward completes dst the same way src completes.
func forward(src, dst *anim.Signal) {
	src.Then(func() {
		if src.Cancelled() {
			dst.Cancel()
			return
		}
		dst.Resolve()
	})
}
