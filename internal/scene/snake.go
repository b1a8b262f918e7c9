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

// State is the lifecycle state of a snake's movement controller.
type State int

const (
	StateUninitialized State = iota
	StateWaitingForReady
	StateIdle
	StateAnimating
	StateTornDown
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateWaitingForReady:
		return "waiting"
	case StateIdle:
		return "idle"
	case StateAnimating:
		return "animating"
	case StateTornDown:
		return "torn down"
	default:
		return "unknown"
	}
}

// move is a submitted frame waiting for its turn.
type move struct {
	frame replay.SnakeFrame
	done  *anim.Signal
}

// Snake animates one competitor through its sequence of bodies.
//
// Submissions are processed strictly one at a time in submission order: a
// transition starts only after the snake was started and the previous
// transition fully resolved, including removal of the old tail.
type Snake struct {
	index int
	color core.Color

	body     []core.Point
	segments []*prop
	opacity  float64

	state State
	queue []move
	steps int

	renderer render.Renderer
	sched    *anim.Scheduler
	cfg      config.Config
	logger   *log.Logger
}

// NewSnake builds a snake's segments floating above the board, fully transparent.
// The snake accepts submissions immediately but holds them until Start.
func NewSnake(index int, s replay.Snake, r render.Renderer, sched *anim.Scheduler, cfg config.Config, logger *log.Logger) *Snake {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sn := &Snake{
		index:    index,
		color:    s.Color,
		renderer: r,
		sched:    sched,
		cfg:      cfg,
		logger:   logger,
	}

	sn.body = make([]core.Point, len(s.Body))
	copy(sn.body, s.Body)
	for _, p := range sn.body {
		sn.segments = append(sn.segments, sn.newSegment(core.CellPosition(p, cfg.Geometry.SnakeFloatHeight)))
	}

	sn.state = StateWaitingForReady
	return sn
}

// Index returns the snake's position in the replay header.
func (s *Snake) Index() int {
	return s.index
}

// Color returns the snake's display color.
func (s *Snake) Color() core.Color {
	return s.color
}

// State returns the controller's lifecycle state.
func (s *Snake) State() State {
	return s.state
}

// Body returns a copy of the logical body, head first.
func (s *Snake) Body() []core.Point {
	out := make([]core.Point, len(s.body))
	copy(out, s.body)
	return out
}

// Segments returns the number of live visual segments.
func (s *Snake) Segments() int {
	return len(s.segments)
}

// Opacity returns the opacity shared by every segment.
func (s *Snake) Opacity() float64 {
	return s.opacity
}

// Pending returns the number of submissions not yet started.
func (s *Snake) Pending() int {
	return len(s.queue)
}

// Steps returns the number of completed transitions.
func (s *Snake) Steps() int {
	return s.steps
}

// Submit queues the next body. The returned signal resolves once this
// submission's transition, or no-op, has completed. Submissions after
// teardown resolve immediately as cancelled.
func (s *Snake) Submit(frame replay.SnakeFrame) *anim.Signal {
	done := anim.NewSignal()
	if s.state == StateTornDown {
		done.Cancel()
		return done
	}

	body := make([]core.Point, len(frame.Body))
	copy(body, frame.Body)
	s.queue = append(s.queue, move{frame: replay.SnakeFrame{Body: body}, done: done})
	s.pump()
	return done
}

// Start marks the snake ready and begins draining queued submissions.
func (s *Snake) Start() {
	if s.state != StateWaitingForReady {
		return
	}
	s.state = StateIdle
	s.pump()
}

// pump starts the next queued transition when the snake is idle.
func (s *Snake) pump() {
	for s.state == StateIdle && len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]

		step := s.step(next.frame)
		if step == nil {
			next.done.Resolve()
			continue
		}

		s.state = StateAnimating
		step.Then(func() {
			if s.state == StateAnimating {
				s.state = StateIdle
				s.steps++
			}
			next.done.Resolve()
			s.pump()
		})
		return
	}
}

// step begins the transition to frame, or returns nil when it is a no-op.
func (s *Snake) step(frame replay.SnakeFrame) *anim.Signal {
	head, ok := frame.Head()
	if !ok || len(s.body) == 0 || len(s.segments) == 0 {
		s.logger.Debug("empty body, skipping move", "snake", s.index)
		return nil
	}

	dir := DirectionBetween(s.body[0], head)
	if dir == DirNone {
		return nil
	}
	if d := dir.Delta(); head != (core.Point{X: s.body[0].X + d.X, Y: s.body[0].Y + d.Y}) {
		s.logger.Debug("head moved more than one cell", "snake", s.index, "from", s.body[0], "to", head, "dir", dir)
	}

	if len(frame.Body) < len(s.body) {
		s.logger.Warn("snake body shrank, keeping tail", "snake", s.index, "from", len(s.body), "to", len(frame.Body))
	}
	advanceTail := len(frame.Body) == len(s.body)

	return s.advance(head, advanceTail)
}

// advance adds a head segment at the old head and slides it into the new head
// cell; when the snake did not grow, the tail slides onto its neighbour and is
// dropped once it arrives.
func (s *Snake) advance(newHead core.Point, advanceTail bool) *anim.Signal {
	prev := s.segments[0]
	head := s.newSegment(core.Vec3{X: prev.pos.X, Y: 0, Z: prev.pos.Z})
	s.segments = append([]*prop{head}, s.segments...)
	s.body = append([]core.Point{newHead}, s.body...)

	duration := s.cfg.Timing.SnakeMove()
	target := core.CellPosition(newHead, 0)

	var signals []*anim.Signal
	if target.X != head.pos.X {
		signals = append(signals, s.sched.Create(head.pos.X, target.X, duration, 0).Tick(head.setX).Signal())
	}
	if target.Z != head.pos.Z {
		signals = append(signals, s.sched.Create(head.pos.Z, target.Z, duration, 0).Tick(head.setZ).Signal())
	}
	if advanceTail {
		signals = append(signals, s.advanceTail())
	}
	return anim.All(signals...)
}

func (s *Snake) advanceTail() *anim.Signal {
	n := len(s.segments)
	tail, neighbour := s.segments[n-1], s.segments[n-2]
	duration := s.cfg.Timing.SnakeMove()

	var tw *anim.Tween
	if tail.pos.Z == neighbour.pos.Z {
		tw = s.sched.Create(tail.pos.X, neighbour.pos.X, duration, 0).Tick(tail.setX)
	} else {
		tw = s.sched.Create(tail.pos.Z, neighbour.pos.Z, duration, 0).Tick(tail.setZ)
	}

	done := anim.NewSignal()
	tw.Done(func() {
		tail.remove()
		if s.state != StateTornDown && len(s.segments) > 0 && s.segments[len(s.segments)-1] == tail {
			s.segments = s.segments[:len(s.segments)-1]
			s.body = s.body[:len(s.body)-1]
		}
		done.Resolve()
	})
	return done
}

// AnimateIn fades the snake in and lowers every segment onto the board.
func (s *Snake) AnimateIn() *anim.Signal {
	return s.animateTo(1, 0)
}

// AnimateOut fades the snake out and lifts every segment to float height.
func (s *Snake) AnimateOut() *anim.Signal {
	return s.animateTo(0, s.cfg.Geometry.SnakeFloatHeight)
}

func (s *Snake) animateTo(opacity, height float64) *anim.Signal {
	duration := s.cfg.Timing.SnakeInOut()
	signals := []*anim.Signal{
		s.sched.Create(s.opacity, opacity, duration, 0).Tick(s.setOpacity).Signal(),
	}
	for _, seg := range s.segments {
		signals = append(signals, s.sched.Create(seg.pos.Y, height, duration, 0).Tick(seg.setY).Signal())
	}
	return anim.All(signals...)
}

// Retire stops accepting submissions. Queued submissions resolve as
// cancelled; segments stay in the scene so an exit animation can still run.
func (s *Snake) Retire() {
	if s.state == StateTornDown {
		return
	}
	s.state = StateTornDown
	queued := s.queue
	s.queue = nil
	for _, m := range queued {
		m.done.Cancel()
	}
}

// Teardown retires the snake and removes all of its segments.
func (s *Snake) Teardown() {
	s.Retire()
	for _, seg := range s.segments {
		seg.remove()
	}
	s.segments = nil
}

func (s *Snake) setOpacity(o float64) {
	s.opacity = o
	for _, seg := range s.segments {
		seg.fade(o)
	}
}

func (s *Snake) newSegment(pos core.Vec3) *prop {
	spec := render.Spec{Kind: render.KindSegment, Color: s.color, Owner: s.index}
	return newProp(s.renderer, spec, pos, s.opacity)
}
