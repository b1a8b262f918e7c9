package scene

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bs-replay/internal/anim"
	"github.com/vovakirdan/bs-replay/internal/config"
	"github.com/vovakirdan/bs-replay/internal/replay"
)

// Player feeds a loaded game's frames into a World.
//
// In paced mode a frame is issued only after every snake finished the
// previous one, so food stays in step with movement. In burst mode every
// frame is issued as soon as the scene is ready and the snakes' own queues
// provide the ordering.
type Player struct {
	world  *World
	game   *replay.Game
	mode   config.PlaybackMode
	logger *log.Logger

	gen      int
	issued   int
	finished *anim.Signal
}

// NewPlayer creates a player for game. Call Start to begin playback.
func NewPlayer(world *World, game *replay.Game, mode config.PlaybackMode, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if mode != config.PlaybackBurst {
		mode = config.PlaybackPaced
	}
	return &Player{
		world:    world,
		game:     game,
		mode:     mode,
		logger:   logger,
		finished: anim.NewSignal(),
	}
}

// Start resets the world to the game's initial state and begins issuing frames.
// The returned signal resolves when every frame has been fully animated.
func (p *Player) Start() *anim.Signal {
	return p.Restart()
}

// Restart plays the game again from the first frame. Any playback in flight
// is abandoned; its signal resolves as cancelled.
func (p *Player) Restart() *anim.Signal {
	p.gen++
	gen := p.gen
	p.issued = 0

	old := p.finished
	p.finished = anim.NewSignal()
	old.Cancel()

	p.logger.Info("starting playback", "frames", len(p.game.Frames), "snakes", len(p.game.Snakes), "mode", string(p.mode))
	p.world.Reset(p.game.Board, p.game.Snakes).Then(func() {
		if gen != p.gen {
			return
		}
		switch p.mode {
		case config.PlaybackBurst:
			p.burst(gen)
		default:
			p.paced(gen)
		}
	})
	return p.finished
}

// Stop abandons playback. No further frames are issued and the playback
// signal resolves as cancelled.
func (p *Player) Stop() {
	p.gen++
	p.finished.Cancel()
}

func (p *Player) burst(gen int) {
	signals := make([]*anim.Signal, 0, len(p.game.Frames))
	for _, f := range p.game.Frames {
		signals = append(signals, p.world.NextFrame(f))
		p.issued++
	}
	finished := p.finished
	anim.All(signals...).Then(func() {
		if gen == p.gen {
			p.finish(finished)
		}
	})
}

func (p *Player) paced(gen int) {
	for gen == p.gen && p.issued < len(p.game.Frames) {
		sig := p.world.NextFrame(p.game.Frames[p.issued])
		p.issued++
		if !sig.Done() {
			sig.Then(func() { p.paced(gen) })
			return
		}
	}
	if gen == p.gen {
		p.finish(p.finished)
	}
}

func (p *Player) finish(sig *anim.Signal) {
	if sig.Resolve() {
		p.logger.Info("playback finished", "frames", p.issued)
	}
}

// Issued returns the number of frames handed to the world so far.
func (p *Player) Issued() int {
	return p.issued
}

// Total returns the number of frames in the game.
func (p *Player) Total() int {
	return len(p.game.Frames)
}

// Progress returns the fraction of frames issued, in [0, 1].
func (p *Player) Progress() float64 {
	if len(p.game.Frames) == 0 {
		return 1
	}
	return float64(p.issued) / float64(len(p.game.Frames))
}

// Finished reports whether the current playback has fully completed.
func (p *Player) Finished() bool {
	return p.finished.Done() && !p.finished.Cancelled()
}

// Mode returns the playback mode.
func (p *Player) Mode() config.PlaybackMode {
	return p.mode
}

// Game returns the game being played.
func (p *Player) Game() *replay.Game {
	return p.game
}
